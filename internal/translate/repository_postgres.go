package translate

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// List cached translations for one restaurant + language
// --------------------------------------------------
func (r *PostgresRepository) ListByRestaurant(
	ctx context.Context,
	restaurantID string,
	languageCode string,
) ([]*MenuTranslation, error) {

	query := `
		SELECT
			id,
			restaurant_id,
			menu_id,
			language_code,
			COALESCE(name, ''),
			COALESCE(description, ''),
			COALESCE(category, ''),
			meat_options,
			addon_options,
			COALESCE(source_hash, ''),
			updated_at
		FROM menu_translations
		WHERE restaurant_id = $1
		  AND language_code = $2
		ORDER BY menu_id
	`

	rows, err := r.db.Query(ctx, query, restaurantID, languageCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var translations []*MenuTranslation

	for rows.Next() {
		var tr MenuTranslation
		var meats, addons []byte

		if err := rows.Scan(
			&tr.ID,
			&tr.RestaurantID,
			&tr.MenuID,
			&tr.LanguageCode,
			&tr.Name,
			&tr.Description,
			&tr.Category,
			&meats,
			&addons,
			&tr.SourceHash,
			&tr.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if meats != nil {
			_ = json.Unmarshal(meats, &tr.MeatOptions)
		}
		if addons != nil {
			_ = json.Unmarshal(addons, &tr.AddonOptions)
		}

		translations = append(translations, &tr)
	}

	return translations, nil
}

// --------------------------------------------------
// Upsert one translation row
// --------------------------------------------------
func (r *PostgresRepository) Upsert(ctx context.Context, tr *MenuTranslation) error {
	meats, err := json.Marshal(tr.MeatOptions)
	if err != nil {
		return err
	}
	addons, err := json.Marshal(tr.AddonOptions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO menu_translations (
			restaurant_id, menu_id, language_code,
			name, description, category,
			meat_options, addon_options, source_hash, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (restaurant_id, menu_id, language_code)
		DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			meat_options = EXCLUDED.meat_options,
			addon_options = EXCLUDED.addon_options,
			source_hash = EXCLUDED.source_hash,
			updated_at = NOW()
	`

	_, err = r.db.Exec(ctx, query,
		tr.RestaurantID,
		tr.MenuID,
		tr.LanguageCode,
		tr.Name,
		tr.Description,
		tr.Category,
		meats,
		addons,
		tr.SourceHash,
	)
	return err
}

func (r *PostgresRepository) DeleteByRestaurant(ctx context.Context, restaurantID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM menu_translations WHERE restaurant_id = $1`,
		restaurantID,
	)
	return err
}

func (r *PostgresRepository) DeleteByMenu(ctx context.Context, restaurantID, menuID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM menu_translations WHERE restaurant_id = $1 AND menu_id = $2`,
		restaurantID, menuID,
	)
	return err
}
