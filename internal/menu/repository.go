package menu

import "context"

type Repository interface {
	Save(ctx context.Context, item *MenuItem) error
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*MenuItem, error)
	GetByID(ctx context.Context, id string) (*MenuItem, error)
	Update(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, restaurantID string) (*Stats, error)
	SetImageURL(ctx context.Context, id, imageURL string) error

	// best sellers
	SalesSince(ctx context.Context, restaurantID string, days, limit int) ([]*BestSeller, error)
	SetBestSellerFlags(ctx context.Context, restaurantID string, itemIDs []string) error
	ListRestaurantIDs(ctx context.Context) ([]string, error)
}
