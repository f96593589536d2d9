package billing

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/stripe/stripe-go/v75"
	portalsession "github.com/stripe/stripe-go/v75/billingportal/session"
	"github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/paymentintent"
	"github.com/stripe/stripe-go/v75/refund"
	"github.com/stripe/stripe-go/v75/subscription"
	"github.com/stripe/stripe-go/v75/webhook"
)

// StripeClient wraps the Stripe SDK. The v75 SDK carries no context
// on its calls, so ctx is accepted for symmetry but not forwarded.
type StripeClient struct {
	apiKey        string
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewStripeClient() *StripeClient {
	base := strings.TrimRight(os.Getenv("FRONTEND_BASE_URL"), "/")
	if base == "" {
		base = "http://localhost:3000"
	}
	return &StripeClient{
		apiKey:        os.Getenv("STRIPE_SECRET_KEY"),
		webhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		successURL:    base + "/billing/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:     base + "/billing/cancelled",
	}
}

func (c *StripeClient) Configured() bool {
	return c.apiKey != ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// --------------------------------------------------
// Subscriptions
// --------------------------------------------------

func centsFor(monthly float64, interval string) int64 {
	if interval == "year" {
		return int64(monthly*10) * 100
	}
	return int64(monthly * 100)
}

func (c *StripeClient) CreateCheckoutSession(ctx context.Context, userID, plan, interval string) (*stripe.CheckoutSession, error) {
	stripe.Key = c.apiKey

	var tier *Tier
	for i := range pricingTiers {
		if pricingTiers[i].Plan == plan {
			tier = &pricingTiers[i]
			break
		}
	}
	if tier == nil || tier.MonthlyPrice == 0 {
		return nil, fmt.Errorf("plan %q is not purchasable", plan)
	}
	if interval != "month" && interval != "year" {
		return nil, fmt.Errorf("interval must be month or year")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(tier.Currency),
					UnitAmount: stripe.Int64(centsFor(tier.MonthlyPrice, interval)),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(interval),
					},
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Smart Menu " + titleCase(tier.Plan)),
					},
				},
			},
		},
	}
	params.AddMetadata("user_id", userID)
	params.AddMetadata("plan", plan)
	params.AddMetadata("interval", interval)

	return session.New(params)
}

func (c *StripeClient) GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	stripe.Key = c.apiKey
	return session.Get(sessionID, nil)
}

func (c *StripeClient) GetSubscription(ctx context.Context, subscriptionID string) (*stripe.Subscription, error) {
	stripe.Key = c.apiKey
	return subscription.Get(subscriptionID, nil)
}

func (c *StripeClient) CancelSubscription(ctx context.Context, subscriptionID string) (*stripe.Subscription, error) {
	stripe.Key = c.apiKey
	return subscription.Cancel(subscriptionID, nil)
}

func (c *StripeClient) CreatePortalSession(ctx context.Context, customerID, returnURL string) (*stripe.BillingPortalSession, error) {
	stripe.Key = c.apiKey
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	return portalsession.New(params)
}

// --------------------------------------------------
// Order payments
// --------------------------------------------------

func (c *StripeClient) CreatePaymentIntent(ctx context.Context, amountCents int64, currency, orderID, idempotencyKey string) (*stripe.PaymentIntent, error) {
	stripe.Key = c.apiKey
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_id", orderID)
	params.SetIdempotencyKey(idempotencyKey)
	return paymentintent.New(params)
}

func (c *StripeClient) GetPaymentIntent(ctx context.Context, intentID string) (*stripe.PaymentIntent, error) {
	stripe.Key = c.apiKey
	return paymentintent.Get(intentID, nil)
}

func (c *StripeClient) RefundPayment(ctx context.Context, intentID string, amountCents int64, reason string) (*stripe.Refund, error) {
	stripe.Key = c.apiKey
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
	}
	if amountCents > 0 {
		params.Amount = stripe.Int64(amountCents)
	}
	if reason != "" {
		params.Reason = stripe.String(reason)
	}
	return refund.New(params)
}

// ConstructWebhookEvent verifies the Stripe signature and parses the
// payload.
func (c *StripeClient) ConstructWebhookEvent(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, c.webhookSecret)
}
