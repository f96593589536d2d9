package ingest

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("ingestion not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const ingestionColumns = `
	id, restaurant_id, file_url, file_name, file_type,
	COALESCE(target_language, ''), status, COALESCE(raw_text, ''),
	items, translated_items, COALESCE(qr_code, ''),
	COALESCE(error_reason, ''), created_at, updated_at
`

func scanIngestion(row pgx.Row) (*Ingestion, error) {
	var ing Ingestion
	var items, translated []byte
	err := row.Scan(
		&ing.ID,
		&ing.RestaurantID,
		&ing.FileURL,
		&ing.FileName,
		&ing.FileType,
		&ing.TargetLanguage,
		&ing.Status,
		&ing.RawText,
		&items,
		&translated,
		&ing.QRCode,
		&ing.ErrorReason,
		&ing.CreatedAt,
		&ing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if items != nil {
		_ = json.Unmarshal(items, &ing.Items)
	}
	if translated != nil {
		_ = json.Unmarshal(translated, &ing.TranslatedItems)
	}
	return &ing, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, ing *Ingestion) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO menu_ingestions (restaurant_id, file_url, file_name, file_type, target_language, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, ing.RestaurantID, ing.FileURL, ing.FileName, ing.FileType, ing.TargetLanguage, ing.Status).
		Scan(&ing.ID, &ing.CreatedAt)
}

func (r *PostgresRepository) Get(ctx context.Context, id int) (*Ingestion, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+ingestionColumns+`
		FROM menu_ingestions
		WHERE id = $1
	`, id)

	ing, err := scanIngestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*Ingestion, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+ingestionColumns+`
		FROM menu_ingestions
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
		LIMIT 50
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Ingestion
	for rows.Next() {
		ing, err := scanIngestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

// FetchPending claims the oldest uploaded file for processing. The
// UPDATE guards against two workers grabbing the same row.
func (r *PostgresRepository) FetchPending(ctx context.Context) (*Ingestion, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE menu_ingestions
		SET status = 'PROCESSING', updated_at = NOW()
		WHERE id = (
			SELECT id FROM menu_ingestions
			WHERE status = 'UPLOADED'
			ORDER BY created_at ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING `+ingestionColumns+`
	`)

	ing, err := scanIngestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id int, status, errorReason string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE menu_ingestions
		SET status = $2, error_reason = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $1
	`, id, status, errorReason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SaveResult(ctx context.Context, ing *Ingestion) error {
	items, _ := json.Marshal(ing.Items)
	translated, _ := json.Marshal(ing.TranslatedItems)

	tag, err := r.db.Exec(ctx, `
		UPDATE menu_ingestions
		SET status = 'PARSED', raw_text = $2, items = $3, translated_items = $4,
		    qr_code = $5, error_reason = NULL, updated_at = NOW()
		WHERE id = $1
	`, ing.ID, ing.RawText, items, translated, ing.QRCode)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Retry puts a failed ingestion back in the queue.
func (r *PostgresRepository) Retry(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE menu_ingestions
		SET status = 'UPLOADED', error_reason = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'FAILED'
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
