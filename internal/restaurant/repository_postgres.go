package restaurant

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("restaurant not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const restaurantColumns = `
	id,
	user_id,
	name,
	COALESCE(slug, ''),
	COALESCE(description, ''),
	COALESCE(address, ''),
	COALESCE(phone, ''),
	COALESCE(email, ''),
	COALESCE(logo_url, ''),
	COALESCE(cover_image_url, ''),
	COALESCE(theme_color, ''),
	menu_template,
	hide_powered_by,
	primary_language,
	service_options,
	delivery_rates,
	delivery_settings,
	payment_settings,
	latitude,
	longitude,
	is_active,
	created_at,
	updated_at
`

func scanRestaurant(row pgx.Row) (*Restaurant, error) {
	var res Restaurant
	var serviceOptions, deliveryRates, deliverySettings, paymentSettings []byte

	if err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.Name,
		&res.Slug,
		&res.Description,
		&res.Address,
		&res.Phone,
		&res.Email,
		&res.LogoURL,
		&res.CoverImageURL,
		&res.ThemeColor,
		&res.MenuTemplate,
		&res.HidePoweredBy,
		&res.PrimaryLanguage,
		&serviceOptions,
		&deliveryRates,
		&deliverySettings,
		&paymentSettings,
		&res.Latitude,
		&res.Longitude,
		&res.IsActive,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if serviceOptions != nil {
		_ = json.Unmarshal(serviceOptions, &res.ServiceOptions)
	}
	if deliveryRates != nil {
		_ = json.Unmarshal(deliveryRates, &res.DeliveryRates)
	}
	if deliverySettings != nil {
		_ = json.Unmarshal(deliverySettings, &res.DeliverySettings)
	}
	if paymentSettings != nil {
		_ = json.Unmarshal(paymentSettings, &res.PaymentSettings)
	}

	return &res, nil
}

// --------------------------------------------------
// Create a new restaurant
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, res *Restaurant) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}

	serviceOptions, err := json.Marshal(res.ServiceOptions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO restaurants (
			id, user_id, name, slug, description, address, phone, email,
			primary_language, service_options, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		res.ID,
		res.UserID,
		res.Name,
		res.Slug,
		res.Description,
		res.Address,
		res.Phone,
		res.Email,
		res.PrimaryLanguage,
		serviceOptions,
		res.IsActive,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// --------------------------------------------------
// List restaurants owned by a user
// --------------------------------------------------
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Restaurant, error) {
	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*Restaurant
	for rows.Next() {
		res, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, res)
	}

	return restaurants, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	res, err := scanRestaurant(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, ErrNotFound
	}
	return res, nil
}

// GetByIDOrSlug resolves public identifiers: a UUID or a slug.
func (r *PostgresRepository) GetByIDOrSlug(ctx context.Context, idOrSlug string) (*Restaurant, error) {
	if _, err := uuid.Parse(idOrSlug); err == nil {
		return r.GetByID(ctx, idOrSlug)
	}

	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE slug = $1`

	res, err := scanRestaurant(r.db.QueryRow(ctx, query, idOrSlug))
	if err != nil {
		return nil, ErrNotFound
	}
	return res, nil
}

// --------------------------------------------------
// Update mutable columns (service merges first)
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, res *Restaurant) error {
	serviceOptions, err := json.Marshal(res.ServiceOptions)
	if err != nil {
		return err
	}

	var deliveryRates, deliverySettings, paymentSettings []byte
	if res.DeliveryRates != nil {
		deliveryRates, _ = json.Marshal(res.DeliveryRates)
	}
	if res.DeliverySettings != nil {
		deliverySettings, _ = json.Marshal(res.DeliverySettings)
	}
	if res.PaymentSettings != nil {
		paymentSettings, _ = json.Marshal(res.PaymentSettings)
	}

	query := `
		UPDATE restaurants SET
			name = $2,
			description = $3,
			address = $4,
			phone = $5,
			email = $6,
			logo_url = NULLIF($7, ''),
			cover_image_url = NULLIF($8, ''),
			theme_color = NULLIF($9, ''),
			menu_template = $10,
			hide_powered_by = $11,
			primary_language = $12,
			service_options = $13,
			delivery_rates = COALESCE($14, delivery_rates),
			delivery_settings = COALESCE($15, delivery_settings),
			payment_settings = COALESCE($16, payment_settings),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		res.ID,
		res.Name,
		res.Description,
		res.Address,
		res.Phone,
		res.Email,
		res.LogoURL,
		res.CoverImageURL,
		res.ThemeColor,
		res.MenuTemplate,
		res.HidePoweredBy,
		res.PrimaryLanguage,
		serviceOptions,
		deliveryRates,
		deliverySettings,
		paymentSettings,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive marks one restaurant active and the rest inactive.
func (r *PostgresRepository) SetActive(ctx context.Context, userID, restaurantID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE restaurants SET is_active = FALSE WHERE user_id = $1`,
		userID,
	); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE restaurants SET is_active = TRUE WHERE id = $1 AND user_id = $2`,
		restaurantID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// Ownership check (SECURITY)
// --------------------------------------------------
func (r *PostgresRepository) IsOwner(ctx context.Context, restaurantID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM restaurants
			WHERE id = $1
			  AND user_id = $2
		)
	`, restaurantID, userID).Scan(&exists)

	return exists, err
}

func (r *PostgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM restaurants WHERE slug = $1)`,
		slug,
	).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET latitude = $2, longitude = $3, updated_at = NOW()
		WHERE id = $1
	`, id, lat, lng)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
