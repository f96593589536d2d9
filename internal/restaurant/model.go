package restaurant

import "time"

type Restaurant struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Description     string           `json:"description,omitempty"`
	Address         string           `json:"address,omitempty"`
	Phone           string           `json:"phone,omitempty"`
	Email           string           `json:"email,omitempty"`
	LogoURL         string           `json:"logo_url,omitempty"`
	CoverImageURL   string           `json:"cover_image_url,omitempty"`
	ThemeColor      string           `json:"theme_color,omitempty"`
	MenuTemplate    string           `json:"menu_template"`
	HidePoweredBy   bool             `json:"hide_powered_by"`
	PrimaryLanguage string           `json:"primary_language"`
	ServiceOptions  map[string]bool  `json:"service_options"`
	DeliveryRates   []DeliveryTier   `json:"delivery_rates,omitempty"`
	DeliverySettings *DeliverySettings `json:"delivery_settings,omitempty"`
	PaymentSettings *PaymentSettings `json:"payment_settings,omitempty"`
	Latitude        *float64         `json:"latitude,omitempty"`
	Longitude       *float64         `json:"longitude,omitempty"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// DeliveryTier prices a delivery up to MaxKM kilometres.
type DeliveryTier struct {
	MaxKM float64 `json:"max_km"`
	Price float64 `json:"price"`
}

// DeliverySettings configures per-kilometre pricing.
type DeliverySettings struct {
	PricingMode   string  `json:"pricing_mode"` // per_km | tiers
	BaseFee       float64 `json:"base_fee"`
	PricePerKM    float64 `json:"price_per_km"`
	MaxDistanceKM float64 `json:"max_distance_km"`
}

type BankAccount struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
}

type PaymentSettings struct {
	AcceptCard         bool          `json:"accept_card"`
	AcceptBankTransfer bool          `json:"accept_bank_transfer"`
	BankAccounts       []BankAccount `json:"bank_accounts"`
}

// Menu layout templates the frontend can render.
var MenuTemplates = map[string]bool{
	"list":     true,
	"grid":     true,
	"magazine": true,
	"elegant":  true,
	"casual":   true,
}

var serviceOptionKeys = map[string]bool{
	"dine_in":  true,
	"pickup":   true,
	"delivery": true,
}
