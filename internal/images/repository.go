package images

import "context"

type Repository interface {
	Insert(ctx context.Context, img *LibraryImage) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*LibraryImage, error)
	ListByRestaurant(ctx context.Context, restaurantID, userID string) ([]*LibraryImage, error)
	Search(ctx context.Context, userID, query string) ([]*LibraryImage, error)
	Recent(ctx context.Context, userID string, days, limit int) ([]*LibraryImage, error)
}
