package staff

import "context"

type Repository interface {
	Save(ctx context.Context, member *Member) error
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*Member, error)
	ListActive(ctx context.Context, restaurantID string) ([]*Member, error)
	GetByID(ctx context.Context, id string) (*Member, error)
	Update(ctx context.Context, member *Member) error
	LogActivity(ctx context.Context, staffID, restaurantID, action string) error
	RecentActivity(ctx context.Context, restaurantID string, limit int) ([]*Activity, error)
}
