package billing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/auth"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/orders"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/storage"
)

var ErrStripeNotConfigured = errors.New("stripe is not configured")

// Registrar creates accounts. Satisfied by the auth service.
type Registrar interface {
	Register(name, email, password string) (*auth.User, error)
}

type Service struct {
	repo      Repository
	stripe    *StripeClient
	orders    orders.Repository
	storage   *storage.R2Client
	registrar Registrar
}

func NewService(repo Repository, stripeClient *StripeClient, orderRepo orders.Repository, store *storage.R2Client, registrar Registrar) *Service {
	return &Service{
		repo:      repo,
		stripe:    stripeClient,
		orders:    orderRepo,
		storage:   store,
		registrar: registrar,
	}
}

// --------------------------------------------------
// Roles
// --------------------------------------------------

// RoleOf reports the account role used for plan gating.
func (s *Service) RoleOf(ctx context.Context, userID string) (string, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return "", err
	}
	return account.Role, nil
}

func (s *Service) GetAccount(ctx context.Context, userID string) (*Account, error) {
	return s.repo.GetAccount(ctx, userID)
}

func (s *Service) SetRole(ctx context.Context, userID, role string) error {
	if !auth.IsValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}
	return s.repo.SetRole(ctx, userID, role)
}

func (s *Service) ListAccounts(ctx context.Context) ([]*Account, error) {
	return s.repo.ListAccounts(ctx)
}

// CreateAccount registers a user with an explicit role. Admin only.
func (s *Service) CreateAccount(ctx context.Context, name, email, password, role string) (*Account, error) {
	if !auth.IsValidRole(role) {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	user, err := s.registrar.Register(name, email, password)
	if err != nil {
		return nil, err
	}
	if role != auth.RoleFreeTrial {
		if err := s.repo.SetRole(ctx, user.ID, role); err != nil {
			return nil, err
		}
	}
	return s.repo.GetAccount(ctx, user.ID)
}

// --------------------------------------------------
// Subscriptions
// --------------------------------------------------

type CheckoutSummary struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

func (s *Service) CreateCheckoutSession(ctx context.Context, userID, plan, interval string) (*CheckoutSummary, error) {
	if !s.stripe.Configured() {
		return nil, ErrStripeNotConfigured
	}
	if _, err := s.repo.GetAccount(ctx, userID); err != nil {
		return nil, err
	}

	sess, err := s.stripe.CreateCheckoutSession(ctx, userID, plan, interval)
	if err != nil {
		return nil, err
	}
	return &CheckoutSummary{SessionID: sess.ID, CheckoutURL: sess.URL}, nil
}

type SubscriptionSummary struct {
	SubscriptionID string `json:"subscription_id"`
	CustomerID     string `json:"customer_id"`
	Plan           string `json:"plan"`
	Status         string `json:"status"`
}

// VerifySession confirms a completed checkout and upgrades the
// account to the purchased plan.
func (s *Service) VerifySession(ctx context.Context, sessionID string) (*SubscriptionSummary, error) {
	if !s.stripe.Configured() {
		return nil, ErrStripeNotConfigured
	}

	sess, err := s.stripe.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil, errors.New("checkout session is not paid")
	}

	userID := sess.Metadata["user_id"]
	plan := sess.Metadata["plan"]
	if userID == "" || plan == "" {
		return nil, errors.New("checkout session is missing metadata")
	}

	role := auth.RoleStarter
	for r, p := range roleToPlan {
		if p == plan && r != auth.RoleAdmin {
			role = r
		}
	}
	if err := s.repo.SetRole(ctx, userID, role); err != nil {
		return nil, err
	}

	var customerID, subscriptionID string
	if sess.Customer != nil {
		customerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		subscriptionID = sess.Subscription.ID
	}
	if err := s.repo.SetSubscription(ctx, userID, customerID, subscriptionID); err != nil {
		return nil, err
	}

	return &SubscriptionSummary{
		SubscriptionID: subscriptionID,
		CustomerID:     customerID,
		Plan:           plan,
		Status:         "active",
	}, nil
}

func (s *Service) GetSubscription(ctx context.Context, subscriptionID string) (*stripe.Subscription, error) {
	if !s.stripe.Configured() {
		return nil, ErrStripeNotConfigured
	}
	return s.stripe.GetSubscription(ctx, subscriptionID)
}

// CancelSubscription cancels at Stripe and drops the account back to
// the free trial role.
func (s *Service) CancelSubscription(ctx context.Context, userID string) error {
	if !s.stripe.Configured() {
		return ErrStripeNotConfigured
	}

	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return err
	}
	if account.SubscriptionID == "" {
		return errors.New("no active subscription")
	}

	if _, err := s.stripe.CancelSubscription(ctx, account.SubscriptionID); err != nil {
		return err
	}
	if err := s.repo.SetSubscription(ctx, userID, account.StripeCustomerID, ""); err != nil {
		return err
	}
	return s.repo.SetRole(ctx, userID, auth.RoleFreeTrial)
}

func (s *Service) CreatePortalSession(ctx context.Context, userID, returnURL string) (string, error) {
	if !s.stripe.Configured() {
		return "", ErrStripeNotConfigured
	}

	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return "", err
	}
	if account.StripeCustomerID == "" {
		return "", errors.New("no billing profile for this account")
	}

	sess, err := s.stripe.CreatePortalSession(ctx, account.StripeCustomerID, returnURL)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// --------------------------------------------------
// Order payments
// --------------------------------------------------

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

type IntentSummary struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

func (s *Service) CreateOrderIntent(ctx context.Context, orderID string) (*IntentSummary, error) {
	if !s.stripe.Configured() {
		return nil, ErrStripeNotConfigured
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == orders.PaymentPaid {
		return nil, errors.New("order is already paid")
	}

	intent, err := s.stripe.CreatePaymentIntent(ctx, toCents(order.Total), "nzd", order.ID, "order-intent-"+order.ID)
	if err != nil {
		return nil, err
	}
	if err := s.orders.SetPaymentIntent(ctx, order.ID, intent.ID); err != nil {
		return nil, err
	}

	return &IntentSummary{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		AmountCents:  intent.Amount,
		Currency:     string(intent.Currency),
	}, nil
}

// ConfirmOrderPayment checks the intent at Stripe and marks the order
// paid. The intent metadata must point at the same order.
func (s *Service) ConfirmOrderPayment(ctx context.Context, orderID, intentID string) error {
	if !s.stripe.Configured() {
		return ErrStripeNotConfigured
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	intent, err := s.stripe.GetPaymentIntent(ctx, intentID)
	if err != nil {
		return err
	}
	if intent.Metadata["order_id"] != order.ID {
		return errors.New("payment intent does not belong to this order")
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("payment intent is %s, not succeeded", intent.Status)
	}

	var receiptURL string
	if intent.LatestCharge != nil {
		receiptURL = intent.LatestCharge.ReceiptURL
	}
	return s.orders.MarkPaid(ctx, order.ID, receiptURL)
}

func (s *Service) RefundOrder(ctx context.Context, orderID string, amount float64, reason string) error {
	if !s.stripe.Configured() {
		return ErrStripeNotConfigured
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.PaymentIntentID == "" {
		return errors.New("order has no card payment to refund")
	}
	if amount < 0 || amount > order.Total {
		return errors.New("refund amount is out of range")
	}

	if _, err := s.stripe.RefundPayment(ctx, order.PaymentIntentID, toCents(amount), reason); err != nil {
		return err
	}
	return s.orders.SetPaymentStatus(ctx, order.ID, "refunded")
}

// ConfirmBankTransfer marks a bank transfer order paid. Manual, for
// owners who checked their bank statement.
func (s *Service) ConfirmBankTransfer(ctx context.Context, orderID string) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.PaymentStatus == orders.PaymentPaid {
		return errors.New("order is already paid")
	}
	return s.orders.MarkPaid(ctx, order.ID, "")
}

// UploadPaymentSlip stores a base64 transfer slip and moves the order
// to processing until the owner confirms it.
func (s *Service) UploadPaymentSlip(ctx context.Context, orderID, slipBase64 string) (string, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(slipBase64) == "" {
		return "", errors.New("slip image is required")
	}

	key := fmt.Sprintf("payment-slips/%s/%s.jpg", order.ID, uuid.New().String())
	url, err := s.storage.UploadBase64(ctx, key, slipBase64)
	if err != nil {
		return "", err
	}
	if err := s.orders.SetSlipURL(ctx, order.ID, url); err != nil {
		return "", err
	}
	return url, nil
}

// --------------------------------------------------
// Webhook
// --------------------------------------------------

// HandleWebhookEvent reacts to verified Stripe events. Only
// payment_intent.succeeded is acted on, everything else is ignored.
func (s *Service) HandleWebhookEvent(ctx context.Context, event stripe.Event) error {
	if event.Type != "payment_intent.succeeded" {
		return nil
	}

	metadata, _ := event.Data.Object["metadata"].(map[string]interface{})
	orderID, _ := metadata["order_id"].(string)
	if orderID == "" {
		return nil
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.PaymentStatus == orders.PaymentPaid {
		return nil
	}
	return s.orders.MarkPaid(ctx, order.ID, "")
}
