package restaurant

import "context"

type Repository interface {
	Create(ctx context.Context, r *Restaurant) error
	ListByUser(ctx context.Context, userID string) ([]*Restaurant, error)
	GetByID(ctx context.Context, id string) (*Restaurant, error)
	GetByIDOrSlug(ctx context.Context, idOrSlug string) (*Restaurant, error)
	Update(ctx context.Context, r *Restaurant) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, userID, restaurantID string) error
	IsOwner(ctx context.Context, restaurantID, userID string) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	UpdateLocation(ctx context.Context, id string, lat, lng float64) error
}
