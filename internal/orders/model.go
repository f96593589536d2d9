package orders

import "time"

const (
	ServiceDineIn   = "dine_in"
	ServicePickup   = "pickup"
	ServiceDelivery = "delivery"
)

const (
	StatusPendingPayment = "pending_payment"
	StatusPending        = "pending"
	StatusPreparing      = "preparing"
	StatusReady          = "ready"
	StatusCompleted      = "completed"
	StatusCancelled      = "cancelled"
)

const (
	PaymentPending    = "pending"
	PaymentProcessing = "processing"
	PaymentPaid       = "paid"
	PaymentFailed     = "failed"
)

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusPreparing: true,
	StatusReady:     true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// OrderItem is one line of an order. Price is the unit price at
// order time, the menu can change later.
type OrderItem struct {
	MenuID          string   `json:"menu_id,omitempty"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	Quantity        int      `json:"quantity"`
	SelectedMeat    string   `json:"selected_meat,omitempty"`
	SelectedAddons  []string `json:"selected_addons,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// CustomerDetails are the per-service-type fields collected at
// checkout.
type CustomerDetails struct {
	Name        string `json:"name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	TableNumber string `json:"table_number,omitempty"`
	PickupTime  string `json:"pickup_time,omitempty"`
	Address     string `json:"address,omitempty"`
}

type Order struct {
	ID              string          `json:"id"`
	RestaurantID    string          `json:"restaurant_id"`
	OrderNumber     string          `json:"order_number"`
	ServiceType     string          `json:"service_type"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	Items           []OrderItem     `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	Tax             float64         `json:"tax"`
	DeliveryFee     float64         `json:"delivery_fee"`
	Total           float64         `json:"total"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
	ReceiptURL      string          `json:"receipt_url,omitempty"`
	PaymentSlipURL  string          `json:"payment_slip_url,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
