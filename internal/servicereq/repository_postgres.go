package servicereq

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("service request not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const requestColumns = `
	id, restaurant_id, COALESCE(table_number, ''), request_type,
	COALESCE(note, ''), status, COALESCE(acknowledged_by, ''),
	acknowledged_at, completed_at, created_at
`

func scanRequest(row pgx.Row) (*ServiceRequest, error) {
	var r ServiceRequest
	err := row.Scan(
		&r.ID,
		&r.RestaurantID,
		&r.TableNumber,
		&r.RequestType,
		&r.Note,
		&r.Status,
		&r.AcknowledgedBy,
		&r.AcknowledgedAt,
		&r.CompletedAt,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *PostgresRepository) Create(ctx context.Context, req *ServiceRequest) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO service_requests (id, restaurant_id, table_number, request_type, note, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, req.ID, req.RestaurantID, req.TableNumber, req.RequestType, req.Note, req.Status)
	return err
}

func (r *PostgresRepository) Acknowledge(ctx context.Context, id, staffName string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE service_requests
		SET status = 'acknowledged', acknowledged_by = $2, acknowledged_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, id, staffName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Complete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE service_requests
		SET status = 'completed', completed_at = NOW()
		WHERE id = $1 AND status <> 'completed'
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID, status string) ([]*ServiceRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+requestColumns+`
		FROM service_requests
		WHERE restaurant_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT 100
	`, restaurantID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ServiceRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*ServiceRequest, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+requestColumns+`
		FROM service_requests
		WHERE id = $1
	`, id)

	req, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}
