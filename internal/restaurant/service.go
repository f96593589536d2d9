package restaurant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/auth"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/translate"
)

// Plans resolves the subscription role of a user.
type Plans interface {
	RoleOf(ctx context.Context, userID string) (string, error)
}

// Storage is the object-storage surface this package needs.
type Storage interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Geocoder turns an address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (float64, float64, string, error)
}

type Service struct {
	repo     Repository
	plans    Plans
	storage  Storage
	geocoder Geocoder
}

func NewService(repo Repository, plans Plans, storage Storage, geocoder Geocoder) *Service {
	return &Service{repo: repo, plans: plans, storage: storage, geocoder: geocoder}
}

// --------------------------------------------------
// Slug + theme color helpers
// --------------------------------------------------

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug builds a URL-safe slug from a restaurant name.
// Non-latin names (e.g. Thai) fall back to a short random slug.
func GenerateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugCleaner.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if slug == "" {
		slug = "r-" + uuid.New().String()[:8]
	}
	return slug
}

var hexColorRe = regexp.MustCompile(`^#?([0-9a-fA-F]{6}|[0-9a-fA-F]{3})$`)

// NormalizeThemeColor validates a hex color and returns it as
// lowercase #rrggbb.
func NormalizeThemeColor(color string) (string, error) {
	color = strings.TrimSpace(color)
	m := hexColorRe.FindStringSubmatch(color)
	if m == nil {
		return "", errors.New("invalid hex color")
	}

	hex := strings.ToLower(m[1])
	if len(hex) == 3 {
		hex = fmt.Sprintf("%c%c%c%c%c%c", hex[0], hex[0], hex[1], hex[1], hex[2], hex[2])
	}
	return "#" + hex, nil
}

func isPremiumRole(role string) bool {
	return role == auth.RoleEnterprise || role == auth.RoleAdmin
}

// --------------------------------------------------
// CRUD
// --------------------------------------------------

func (s *Service) Create(ctx context.Context, userID, name, description, address, phone, email string) (*Restaurant, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("restaurant name is required")
	}

	slug := GenerateSlug(name)
	if exists, _ := s.repo.SlugExists(ctx, slug); exists {
		slug = slug + "-" + uuid.New().String()[:6]
	}

	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := &Restaurant{
		UserID:          userID,
		Name:            strings.TrimSpace(name),
		Slug:            slug,
		Description:     description,
		Address:         address,
		Phone:           phone,
		Email:           email,
		PrimaryLanguage: "th",
		ServiceOptions:  map[string]bool{"dine_in": true, "pickup": true, "delivery": false},
		IsActive:        len(existing) == 0,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Restaurant, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	return s.repo.ListByUser(ctx, userID)
}

type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
}

func (s *Service) Update(ctx context.Context, userID, restaurantID string, req UpdateRequest) (*Restaurant, error) {
	res, err := s.requireOwned(ctx, userID, restaurantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, errors.New("restaurant name cannot be empty")
		}
		res.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		res.Description = *req.Description
	}
	if req.Address != nil {
		res.Address = *req.Address
	}
	if req.Phone != nil {
		res.Phone = *req.Phone
	}
	if req.Email != nil {
		res.Email = *req.Email
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) Delete(ctx context.Context, userID, restaurantID string) error {
	if _, err := s.requireOwned(ctx, userID, restaurantID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, restaurantID)
}

func (s *Service) SetActive(ctx context.Context, userID, restaurantID string) error {
	if userID == "" || restaurantID == "" {
		return errors.New("user_id and restaurant_id are required")
	}
	return s.repo.SetActive(ctx, userID, restaurantID)
}

func (s *Service) requireOwned(ctx context.Context, userID, restaurantID string) (*Restaurant, error) {
	if userID == "" || restaurantID == "" {
		return nil, errors.New("user_id and restaurant_id are required")
	}

	owned, err := s.repo.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, errors.New("restaurant does not belong to this user")
	}

	return s.repo.GetByID(ctx, restaurantID)
}

// --------------------------------------------------
// Profile (restaurant + subscription summary)
// --------------------------------------------------

type Profile struct {
	Restaurant   *Restaurant `json:"restaurant"`
	Role         string      `json:"role"`
	Plan         string      `json:"plan"`
	PoweredBy    bool        `json:"powered_by"`
	MenuTemplate string      `json:"menu_template"`
}

var roleToPlan = map[string]string{
	auth.RoleFreeTrial:    "trial",
	auth.RoleStarter:      "starter",
	auth.RoleProfessional: "pro",
	auth.RoleEnterprise:   "premium",
	auth.RoleAdmin:        "premium",
}

// GetProfile returns the restaurant profile plus the plan summary.
// A user with no restaurant gets a default one created on the fly.
func (s *Service) GetProfile(ctx context.Context, userID, restaurantID string) (*Profile, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}

	var res *Restaurant
	var err error

	if restaurantID != "" {
		res, err = s.requireOwned(ctx, userID, restaurantID)
		if err != nil {
			return nil, err
		}
	} else {
		all, err := s.repo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, r := range all {
			if r.IsActive {
				res = r
				break
			}
		}
		if res == nil && len(all) > 0 {
			res = all[0]
		}
		if res == nil {
			res, err = s.Create(ctx, userID, "My Restaurant", "", "", "", "")
			if err != nil {
				return nil, err
			}
		}
	}

	role, err := s.plans.RoleOf(ctx, userID)
	if err != nil {
		role = auth.RoleFreeTrial
	}

	plan, ok := roleToPlan[role]
	if !ok {
		plan = "trial"
	}

	return &Profile{
		Restaurant:   res,
		Role:         role,
		Plan:         plan,
		PoweredBy:    !(res.HidePoweredBy && isPremiumRole(role)),
		MenuTemplate: res.MenuTemplate,
	}, nil
}

type ProfileUpdateRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	ThemeColor    *string `json:"theme_color"`
	MenuTemplate  *string `json:"menu_template"`
	HidePoweredBy *bool   `json:"hide_powered_by"`
}

func (s *Service) UpdateProfile(ctx context.Context, userID, restaurantID string, req ProfileUpdateRequest) (*Restaurant, error) {
	res, err := s.requireOwned(ctx, userID, restaurantID)
	if err != nil {
		return nil, err
	}

	role, _ := s.plans.RoleOf(ctx, userID)

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		res.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		res.Description = *req.Description
	}
	if req.Address != nil {
		res.Address = *req.Address
	}
	if req.Phone != nil {
		res.Phone = *req.Phone
	}
	if req.Email != nil {
		res.Email = *req.Email
	}

	if req.ThemeColor != nil {
		if role == auth.RoleFreeTrial || role == auth.RoleStarter {
			return nil, errors.New("theme color requires a paid plan above starter")
		}
		color, err := NormalizeThemeColor(*req.ThemeColor)
		if err != nil {
			return nil, err
		}
		res.ThemeColor = color
	}

	if req.MenuTemplate != nil {
		if !MenuTemplates[*req.MenuTemplate] {
			return nil, errors.New("unknown menu template: " + *req.MenuTemplate)
		}
		res.MenuTemplate = *req.MenuTemplate
	}

	if req.HidePoweredBy != nil {
		if !isPremiumRole(role) {
			return nil, errors.New("hiding branding requires the enterprise plan")
		}
		res.HidePoweredBy = *req.HidePoweredBy
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// --------------------------------------------------
// Service options + delivery configuration
// --------------------------------------------------

type ServiceOptionsRequest struct {
	RestaurantID     string            `json:"restaurant_id"`
	ServiceOptions   map[string]bool   `json:"service_options"`
	PrimaryLanguage  *string           `json:"primary_language"`
	DeliveryRates    []DeliveryTier    `json:"delivery_rates"`
	DeliverySettings *DeliverySettings `json:"delivery_settings"`
}

func (s *Service) UpdateServiceOptions(ctx context.Context, userID string, req ServiceOptionsRequest) (*Restaurant, error) {
	res, err := s.requireOwned(ctx, userID, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	if req.ServiceOptions != nil {
		for key := range req.ServiceOptions {
			if !serviceOptionKeys[key] {
				return nil, errors.New("unknown service option: " + key)
			}
		}
		if res.ServiceOptions == nil {
			res.ServiceOptions = map[string]bool{}
		}
		for key, val := range req.ServiceOptions {
			res.ServiceOptions[key] = val
		}
	}

	if req.PrimaryLanguage != nil {
		if !translate.IsSupportedLanguage(*req.PrimaryLanguage) {
			return nil, errors.New("unsupported language: " + *req.PrimaryLanguage)
		}
		res.PrimaryLanguage = *req.PrimaryLanguage
	}

	if req.DeliveryRates != nil {
		for _, tier := range req.DeliveryRates {
			if tier.MaxKM <= 0 || tier.Price < 0 {
				return nil, errors.New("invalid delivery rate tier")
			}
		}
		res.DeliveryRates = req.DeliveryRates
	}

	if req.DeliverySettings != nil {
		mode := req.DeliverySettings.PricingMode
		if mode != "" && mode != "per_km" && mode != "tiers" {
			return nil, errors.New("pricing_mode must be per_km or tiers")
		}
		res.DeliverySettings = req.DeliverySettings
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// --------------------------------------------------
// Payment settings
// --------------------------------------------------

func (s *Service) GetPaymentSettings(ctx context.Context, userID, restaurantID string) (*PaymentSettings, error) {
	res, err := s.requireOwned(ctx, userID, restaurantID)
	if err != nil {
		return nil, err
	}

	if res.PaymentSettings == nil {
		return &PaymentSettings{AcceptCard: true}, nil
	}
	return res.PaymentSettings, nil
}

func (s *Service) UpdatePaymentSettings(ctx context.Context, userID, restaurantID string, settings PaymentSettings) error {
	res, err := s.requireOwned(ctx, userID, restaurantID)
	if err != nil {
		return err
	}

	if !settings.AcceptCard && !settings.AcceptBankTransfer {
		return errors.New("at least one payment method must stay enabled")
	}

	if settings.AcceptBankTransfer && len(settings.BankAccounts) == 0 {
		return errors.New("bank transfer requires at least one bank account")
	}

	res.PaymentSettings = &settings
	return s.repo.Update(ctx, res)
}

// --------------------------------------------------
// Location
// --------------------------------------------------

func (s *Service) GetLocation(ctx context.Context, restaurantID string) (*Restaurant, error) {
	return s.repo.GetByID(ctx, restaurantID)
}

// UpdateLocation stores coordinates directly, or geocodes the
// address when no coordinates were supplied.
func (s *Service) UpdateLocation(ctx context.Context, userID, restaurantID string, lat, lng *float64, address string) (float64, float64, error) {
	if _, err := s.requireOwned(ctx, userID, restaurantID); err != nil {
		return 0, 0, err
	}

	if lat != nil && lng != nil {
		if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
			return 0, 0, errors.New("coordinates out of range")
		}
		return *lat, *lng, s.repo.UpdateLocation(ctx, restaurantID, *lat, *lng)
	}

	if strings.TrimSpace(address) == "" {
		return 0, 0, errors.New("coordinates or address required")
	}

	glat, glng, _, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return 0, 0, err
	}

	return glat, glng, s.repo.UpdateLocation(ctx, restaurantID, glat, glng)
}

// --------------------------------------------------
// Public lookup (QR menu, ordering)
// --------------------------------------------------

func (s *Service) ResolvePublic(ctx context.Context, idOrSlug string) (*Restaurant, error) {
	if idOrSlug == "" || idOrSlug == "default" {
		return nil, ErrNotFound
	}
	return s.repo.GetByIDOrSlug(ctx, idOrSlug)
}

// PublicView strips owner-only fields and applies the plan gate on
// the powered-by flag.
func (s *Service) PublicView(ctx context.Context, res *Restaurant) map[string]any {
	role, _ := s.plans.RoleOf(ctx, res.UserID)

	hidePoweredBy := res.HidePoweredBy && isPremiumRole(role)

	return map[string]any{
		"id":               res.ID,
		"name":             res.Name,
		"slug":             res.Slug,
		"description":      res.Description,
		"address":          res.Address,
		"phone":            res.Phone,
		"logo_url":         res.LogoURL,
		"cover_image_url":  res.CoverImageURL,
		"theme_color":      res.ThemeColor,
		"menu_template":    res.MenuTemplate,
		"hide_powered_by":  hidePoweredBy,
		"primary_language": res.PrimaryLanguage,
		"service_options":  res.ServiceOptions,
		"delivery_rates":   res.DeliveryRates,
		"payment_settings": res.PaymentSettings,
	}
}
