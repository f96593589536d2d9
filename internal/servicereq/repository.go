package servicereq

import "context"

type Repository interface {
	Create(ctx context.Context, req *ServiceRequest) error
	ListByRestaurant(ctx context.Context, restaurantID, status string) ([]*ServiceRequest, error)
	GetByID(ctx context.Context, id string) (*ServiceRequest, error)
	Acknowledge(ctx context.Context, id, staffName string) error
	Complete(ctx context.Context, id string) error
}
