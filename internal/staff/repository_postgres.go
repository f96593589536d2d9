package staff

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("staff member not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const memberColumns = `id, restaurant_id, name, role, pin_hash, is_active, created_at, updated_at`

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	err := row.Scan(
		&m.ID,
		&m.RestaurantID,
		&m.Name,
		&m.Role,
		&m.PINHash,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *PostgresRepository) Save(ctx context.Context, member *Member) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO staff (id, restaurant_id, name, role, pin_hash, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, member.ID, member.RestaurantID, member.Name, member.Role, member.PINHash, member.IsActive)
	return err
}

func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*Member, error) {
	return r.list(ctx, `
		SELECT `+memberColumns+`
		FROM staff
		WHERE restaurant_id = $1
		ORDER BY created_at ASC
	`, restaurantID)
}

func (r *PostgresRepository) ListActive(ctx context.Context, restaurantID string) ([]*Member, error) {
	return r.list(ctx, `
		SELECT `+memberColumns+`
		FROM staff
		WHERE restaurant_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`, restaurantID)
}

func (r *PostgresRepository) list(ctx context.Context, query, restaurantID string) ([]*Member, error) {
	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Member, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+memberColumns+`
		FROM staff
		WHERE id = $1
	`, id)

	m, err := scanMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) Update(ctx context.Context, member *Member) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE staff
		SET name = $2, role = $3, pin_hash = $4, is_active = $5, updated_at = NOW()
		WHERE id = $1
	`, member.ID, member.Name, member.Role, member.PINHash, member.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Activity log
// --------------------------------------------------

func (r *PostgresRepository) LogActivity(ctx context.Context, staffID, restaurantID, action string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO staff_activity (staff_id, restaurant_id, action)
		VALUES ($1, $2, $3)
	`, staffID, restaurantID, action)
	return err
}

func (r *PostgresRepository) RecentActivity(ctx context.Context, restaurantID string, limit int) ([]*Activity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.staff_id, COALESCE(s.name, ''), a.restaurant_id, a.action, a.created_at
		FROM staff_activity a
		LEFT JOIN staff s ON s.id = a.staff_id
		WHERE a.restaurant_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2
	`, restaurantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.StaffID, &a.StaffName, &a.RestaurantID, &a.Action, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
