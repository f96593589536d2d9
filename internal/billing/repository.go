package billing

import (
	"context"
	"time"
)

const (
	FeatureImageEnhancement = "image_enhancement"
	FeatureImageGeneration  = "image_generation"
)

type Account struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	StripeCustomerID string    `json:"stripe_customer_id,omitempty"`
	SubscriptionID   string    `json:"subscription_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type Usage struct {
	Feature     string    `json:"feature"`
	UsedCount   int       `json:"used_count"`
	PeriodStart time.Time `json:"period_start"`
}

type Repository interface {
	GetAccount(ctx context.Context, userID string) (*Account, error)
	SetRole(ctx context.Context, userID, role string) error
	SetSubscription(ctx context.Context, userID, customerID, subscriptionID string) error
	ListAccounts(ctx context.Context) ([]*Account, error)

	GetUsage(ctx context.Context, userID string) ([]*Usage, error)
	// GetFeatureUsage counts uses since the window start. A zero since
	// counts the whole lifetime of the counter.
	GetFeatureUsage(ctx context.Context, userID, feature string, since time.Time) (int, error)
	// IncrementUsage bumps the counter, restarting it when its period
	// began before resetBefore. A zero resetBefore never restarts.
	IncrementUsage(ctx context.Context, userID, feature string, resetBefore time.Time) error
	ResetUsage(ctx context.Context, userID string) error
}
