package orders

import "context"

type Repository interface {
	Create(ctx context.Context, order *Order) error
	ListByRestaurant(ctx context.Context, restaurantID, status string) ([]*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	SetPaymentIntent(ctx context.Context, id, intentID string) error
	SetPaymentStatus(ctx context.Context, id, paymentStatus string) error
	MarkPaid(ctx context.Context, id, receiptURL string) error
	SetSlipURL(ctx context.Context, id, slipURL string) error
}
