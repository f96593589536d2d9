package translate

import "context"

type Repository interface {
	ListByRestaurant(ctx context.Context, restaurantID, languageCode string) ([]*MenuTranslation, error)
	Upsert(ctx context.Context, tr *MenuTranslation) error
	DeleteByRestaurant(ctx context.Context, restaurantID string) error
	DeleteByMenu(ctx context.Context, restaurantID, menuID string) error
}
