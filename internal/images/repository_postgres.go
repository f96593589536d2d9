package images

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const imageColumns = `
	i.id, i.restaurant_id, i.url, i.source,
	COALESCE(i.prompt, ''), COALESCE(i.menu_item_name, ''), i.created_at
`

func collectImages(rows pgx.Rows) ([]*LibraryImage, error) {
	defer rows.Close()

	var out []*LibraryImage
	for rows.Next() {
		var img LibraryImage
		err := rows.Scan(
			&img.ID,
			&img.RestaurantID,
			&img.URL,
			&img.Source,
			&img.Prompt,
			&img.MenuItemName,
			&img.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, &img)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Insert(ctx context.Context, img *LibraryImage) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO image_library (restaurant_id, url, source, prompt, menu_item_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, img.RestaurantID, img.URL, img.Source, img.Prompt, img.MenuItemName).Scan(&img.ID, &img.CreatedAt)
}

// ListByUser returns images across every restaurant the user owns.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*LibraryImage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+imageColumns+`
		FROM image_library i
		JOIN restaurants res ON res.id = i.restaurant_id
		WHERE res.owner_id = $1
		ORDER BY i.created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	return collectImages(rows)
}

func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID, userID string) ([]*LibraryImage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+imageColumns+`
		FROM image_library i
		JOIN restaurants res ON res.id = i.restaurant_id
		WHERE i.restaurant_id = $1 AND res.owner_id = $2
		ORDER BY i.created_at DESC
	`, restaurantID, userID)
	if err != nil {
		return nil, err
	}
	return collectImages(rows)
}

func (r *PostgresRepository) Search(ctx context.Context, userID, query string) ([]*LibraryImage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+imageColumns+`
		FROM image_library i
		JOIN restaurants res ON res.id = i.restaurant_id
		WHERE res.owner_id = $1
		  AND (i.menu_item_name ILIKE '%' || $2 || '%' OR i.prompt ILIKE '%' || $2 || '%')
		ORDER BY i.created_at DESC
		LIMIT 100
	`, userID, query)
	if err != nil {
		return nil, err
	}
	return collectImages(rows)
}

func (r *PostgresRepository) Recent(ctx context.Context, userID string, days, limit int) ([]*LibraryImage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+imageColumns+`
		FROM image_library i
		JOIN restaurants res ON res.id = i.restaurant_id
		WHERE res.owner_id = $1
		  AND i.created_at >= NOW() - make_interval(days => $2)
		ORDER BY i.created_at DESC
		LIMIT $3
	`, userID, days, limit)
	if err != nil {
		return nil, err
	}
	return collectImages(rows)
}
