package billing

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	stripe  *StripeClient
	logger  *zap.Logger
}

func NewHandler(service *Service, stripeClient *StripeClient, logger *zap.Logger) *Handler {
	return &Handler{service: service, stripe: stripeClient, logger: logger}
}

func (h *Handler) fail(c *gin.Context, err error) {
	var limitErr *LimitExceededError
	switch {
	case errors.Is(err, ErrStripeNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &limitErr):
		c.JSON(http.StatusForbidden, gin.H{
			"error":     limitErr.Error(),
			"feature":   limitErr.Feature,
			"used":      limitErr.Used,
			"limit":     limitErr.Limit,
			"remaining": limitErr.Remaining,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// --------------------------------------------------
// POST /api/stripe/create-checkout-session
// --------------------------------------------------

func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		Plan     string `json:"plan"`
		Interval string `json:"interval"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Interval == "" {
		req.Interval = "month"
	}

	summary, err := h.service.CreateCheckoutSession(c.Request.Context(), userID, req.Plan, req.Interval)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --------------------------------------------------
// POST /api/stripe/verify-session
// --------------------------------------------------

func (h *Handler) VerifySession(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.SessionID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	summary, err := h.service.VerifySession(c.Request.Context(), req.SessionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --------------------------------------------------
// POST /api/stripe/cancel-subscription
// --------------------------------------------------

func (h *Handler) CancelSubscription(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.service.CancelSubscription(c.Request.Context(), userID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscription cancelled"})
}

// --------------------------------------------------
// GET /api/stripe/subscription/:id
// --------------------------------------------------

func (h *Handler) GetSubscription(c *gin.Context) {
	sub, err := h.service.GetSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subscription_id": sub.ID,
		"status":          string(sub.Status),
		"current_period_end": sub.CurrentPeriodEnd,
		"cancel_at_period_end": sub.CancelAtPeriodEnd,
	})
}

// --------------------------------------------------
// POST /api/billing/create-portal-session
// --------------------------------------------------

func (h *Handler) CreatePortalSession(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		ReturnURL string `json:"return_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ReturnURL == "" {
		req.ReturnURL = strings.TrimRight(os.Getenv("FRONTEND_BASE_URL"), "/") + "/billing"
	}

	url, err := h.service.CreatePortalSession(c.Request.Context(), userID, req.ReturnURL)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portal_url": url})
}

// --------------------------------------------------
// POST /api/payments/create-intent
// --------------------------------------------------

func (h *Handler) CreateOrderIntent(c *gin.Context) {
	var req struct {
		OrderID string `json:"order_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.OrderID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
		return
	}

	summary, err := h.service.CreateOrderIntent(c.Request.Context(), req.OrderID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --------------------------------------------------
// POST /api/payments/confirm
// --------------------------------------------------

func (h *Handler) ConfirmOrderPayment(c *gin.Context) {
	var req struct {
		OrderID  string `json:"order_id"`
		IntentID string `json:"intent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.ConfirmOrderPayment(c.Request.Context(), req.OrderID, req.IntentID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment confirmed"})
}

// --------------------------------------------------
// POST /api/payments/refund
// --------------------------------------------------

func (h *Handler) RefundOrder(c *gin.Context) {
	var req struct {
		OrderID string  `json:"order_id"`
		Amount  float64 `json:"amount"`
		Reason  string  `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.RefundOrder(c.Request.Context(), req.OrderID, req.Amount, req.Reason); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refund issued"})
}

// --------------------------------------------------
// POST /api/payments/bank-transfer/confirm
// --------------------------------------------------

func (h *Handler) ConfirmBankTransfer(c *gin.Context) {
	orderID := c.Query("order_id")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
		return
	}

	if err := h.service.ConfirmBankTransfer(c.Request.Context(), orderID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bank transfer confirmed"})
}

// --------------------------------------------------
// POST /api/payments/upload-slip
// --------------------------------------------------

func (h *Handler) UploadPaymentSlip(c *gin.Context) {
	var req struct {
		OrderID string `json:"order_id"`
		Slip    string `json:"slip"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	url, err := h.service.UploadPaymentSlip(c.Request.Context(), req.OrderID, req.Slip)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slip_url": url})
}

// --------------------------------------------------
// POST /api/stripe/webhook
// --------------------------------------------------

func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := h.stripe.ConstructWebhookEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.logger.Error("stripe signature verification failed", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.service.HandleWebhookEvent(c.Request.Context(), event); err != nil {
		h.logger.Error("stripe webhook", zap.String("event", string(event.Type)), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// --------------------------------------------------
// Trial endpoints
// --------------------------------------------------

func (h *Handler) TrialStatus(c *gin.Context) {
	status, err := h.service.GetTrialStatus(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) InitializeTrial(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.service.InitializeTrial(c.Request.Context(), userID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trial initialized"})
}

// --------------------------------------------------
// Role endpoints
// --------------------------------------------------

func (h *Handler) GetRole(c *gin.Context) {
	userID := c.GetString("userID")

	account, err := h.service.GetAccount(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"role": account.Role,
		"plan": PlanForRole(account.Role),
	})
}

func (h *Handler) SetRole(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.SetRole(c.Request.Context(), req.UserID, req.Role); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}

func (h *Handler) RoleLimits(c *gin.Context) {
	userID := c.GetString("userID")

	account, err := h.service.GetAccount(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"role":   account.Role,
		"limits": LimitsForRole(account.Role),
	})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	account, err := h.service.CreateAccount(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *Handler) ListUsers(c *gin.Context) {
	accounts, err := h.service.ListAccounts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": accounts})
}

// --------------------------------------------------
// GET /api/pricing, GET /api/features
// --------------------------------------------------

func (h *Handler) Pricing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tiers": PricingTiers()})
}

func (h *Handler) Features(c *gin.Context) {
	features := make(map[string][]string, len(pricingTiers))
	for _, tier := range pricingTiers {
		features[tier.Plan] = tier.Features
	}
	c.JSON(http.StatusOK, gin.H{"features": features})
}
