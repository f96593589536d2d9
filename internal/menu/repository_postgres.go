package menu

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("menu item not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const itemColumns = `
	id,
	restaurant_id,
	name,
	COALESCE(name_en, ''),
	COALESCE(description, ''),
	COALESCE(description_en, ''),
	COALESCE(category, ''),
	price,
	COALESCE(image_url, ''),
	meat_options,
	addon_options,
	is_best_seller,
	best_seller_pinned,
	created_at,
	updated_at
`

func scanItem(row pgx.Row) (*MenuItem, error) {
	var item MenuItem
	var meats, addons []byte

	if err := row.Scan(
		&item.ID,
		&item.RestaurantID,
		&item.Name,
		&item.NameEN,
		&item.Description,
		&item.DescriptionEN,
		&item.Category,
		&item.Price,
		&item.ImageURL,
		&meats,
		&addons,
		&item.IsBestSeller,
		&item.BestSellerPinned,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if meats != nil {
		_ = json.Unmarshal(meats, &item.MeatOptions)
	}
	if addons != nil {
		_ = json.Unmarshal(addons, &item.AddonOptions)
	}

	return &item, nil
}

// --------------------------------------------------
// Save a menu item
// --------------------------------------------------
func (r *PostgresRepository) Save(ctx context.Context, item *MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	meats, _ := json.Marshal(item.MeatOptions)
	addons, _ := json.Marshal(item.AddonOptions)

	query := `
		INSERT INTO menu_items (
			id, restaurant_id, name, name_en, description, description_en,
			category, price, image_url, meat_options, addon_options,
			is_best_seller, best_seller_pinned
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		item.ID,
		item.RestaurantID,
		item.Name,
		item.NameEN,
		item.Description,
		item.DescriptionEN,
		item.Category,
		item.Price,
		item.ImageURL,
		meats,
		addons,
		item.IsBestSeller,
		item.BestSellerPinned,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*MenuItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY category, name
	`

	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*MenuItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*MenuItem, error) {
	query := `SELECT ` + itemColumns + ` FROM menu_items WHERE id = $1`

	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (r *PostgresRepository) Update(ctx context.Context, item *MenuItem) error {
	meats, _ := json.Marshal(item.MeatOptions)
	addons, _ := json.Marshal(item.AddonOptions)

	query := `
		UPDATE menu_items SET
			name = $2,
			name_en = $3,
			description = $4,
			description_en = $5,
			category = $6,
			price = $7,
			image_url = NULLIF($8, ''),
			meat_options = $9,
			addon_options = $10,
			is_best_seller = $11,
			best_seller_pinned = $12,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		item.ID,
		item.Name,
		item.NameEN,
		item.Description,
		item.DescriptionEN,
		item.Category,
		item.Price,
		item.ImageURL,
		meats,
		addons,
		item.IsBestSeller,
		item.BestSellerPinned,
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
	tag, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetImageURL(ctx context.Context, id, imageURL string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE menu_items SET image_url = $2, updated_at = NOW() WHERE id = $1`,
		id, imageURL,
	)
	return err
}

// --------------------------------------------------
// Menu stats
// --------------------------------------------------
func (r *PostgresRepository) Stats(ctx context.Context, restaurantID string) (*Stats, error) {
	var stats Stats

	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT category) FILTER (WHERE category IS NOT NULL AND category <> ''),
			COUNT(*) FILTER (WHERE image_url IS NOT NULL AND image_url <> '')
		FROM menu_items
		WHERE restaurant_id = $1
	`, restaurantID).Scan(&stats.TotalItems, &stats.Categories, &stats.ItemsWithImages)

	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// --------------------------------------------------
// Best sellers: sales aggregated from completed, paid orders
// --------------------------------------------------
func (r *PostgresRepository) SalesSince(ctx context.Context, restaurantID string, days, limit int) ([]*BestSeller, error) {
	query := `
		SELECT
			mi.id,
			mi.restaurant_id,
			mi.name,
			COALESCE(mi.name_en, ''),
			COALESCE(mi.description, ''),
			COALESCE(mi.description_en, ''),
			COALESCE(mi.category, ''),
			mi.price,
			COALESCE(mi.image_url, ''),
			mi.meat_options,
			mi.addon_options,
			mi.is_best_seller,
			mi.best_seller_pinned,
			mi.created_at,
			mi.updated_at,
			COALESCE(sales.total_sold, 0),
			COALESCE(sales.revenue, 0)
		FROM menu_items mi
		LEFT JOIN (
			SELECT
				(line->>'menu_id')::uuid AS menu_id,
				SUM((line->>'quantity')::int) AS total_sold,
				SUM((line->>'quantity')::int * (line->>'price')::numeric) AS revenue
			FROM orders o,
				jsonb_array_elements(o.items) AS line
			WHERE o.restaurant_id = $1
			  AND o.payment_status = 'paid'
			  AND o.status = 'completed'
			  AND o.created_at >= NOW() - make_interval(days => $2)
			  AND line->>'menu_id' ~* '^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$'
			GROUP BY 1
		) sales ON sales.menu_id = mi.id
		WHERE mi.restaurant_id = $1
		ORDER BY COALESCE(sales.total_sold, 0) DESC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, restaurantID, days, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*BestSeller
	for rows.Next() {
		var bs BestSeller
		var meats, addons []byte

		if err := rows.Scan(
			&bs.ID,
			&bs.RestaurantID,
			&bs.Name,
			&bs.NameEN,
			&bs.Description,
			&bs.DescriptionEN,
			&bs.Category,
			&bs.Price,
			&bs.ImageURL,
			&meats,
			&addons,
			&bs.IsBestSeller,
			&bs.BestSellerPinned,
			&bs.CreatedAt,
			&bs.UpdatedAt,
			&bs.TotalSold,
			&bs.Revenue,
		); err != nil {
			return nil, err
		}

		if meats != nil {
			_ = json.Unmarshal(meats, &bs.MeatOptions)
		}
		if addons != nil {
			_ = json.Unmarshal(addons, &bs.AddonOptions)
		}

		out = append(out, &bs)
	}

	return out, nil
}

// SetBestSellerFlags clears the computed flag (pinned items keep
// theirs) and sets it for the given items.
func (r *PostgresRepository) SetBestSellerFlags(ctx context.Context, restaurantID string, itemIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE menu_items
		SET is_best_seller = best_seller_pinned
		WHERE restaurant_id = $1
	`, restaurantID); err != nil {
		return err
	}

	if len(itemIDs) > 0 {
		if _, err := tx.Exec(ctx, `
			UPDATE menu_items
			SET is_best_seller = TRUE
			WHERE restaurant_id = $1
			  AND id = ANY($2::uuid[])
		`, restaurantID, itemIDs); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) ListRestaurantIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT restaurant_id FROM menu_items`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
