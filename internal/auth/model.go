package auth

import "time"

// User is the domain entity.
type User struct {
	ID               string
	Name             string
	Email            string
	Password         string
	Role             string
	StripeCustomerID string
	SubscriptionID   string
	CreatedAt        time.Time
}
