package restaurant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/auth"
)

const maxBrandingImageBytes = 4 << 20 // 4MB

// Customization is the branding subset exposed to the editor UI.
type Customization struct {
	RestaurantID  string `json:"restaurant_id"`
	ThemeColor    string `json:"theme_color,omitempty"`
	LogoURL       string `json:"logo_url,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	MenuTemplate  string `json:"menu_template"`
	HidePoweredBy bool   `json:"hide_powered_by"`
}

func (s *Service) GetCustomization(ctx context.Context, restaurantID string) (*Customization, error) {
	res, err := s.repo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	return &Customization{
		RestaurantID:  res.ID,
		ThemeColor:    res.ThemeColor,
		LogoURL:       res.LogoURL,
		CoverImageURL: res.CoverImageURL,
		MenuTemplate:  res.MenuTemplate,
		HidePoweredBy: res.HidePoweredBy,
	}, nil
}

func (s *Service) SetThemeColor(ctx context.Context, userID, restaurantID, color string) (string, error) {
	res, err := s.requireOwned(ctx, userID, restaurantID)
	if err != nil {
		return "", err
	}

	role, _ := s.plans.RoleOf(ctx, userID)
	if role == auth.RoleFreeTrial || role == auth.RoleStarter {
		return "", errors.New("theme color requires a paid plan above starter")
	}

	normalized, err := NormalizeThemeColor(color)
	if err != nil {
		return "", err
	}

	res.ThemeColor = normalized
	if err := s.repo.Update(ctx, res); err != nil {
		return "", err
	}
	return normalized, nil
}

func (s *Service) SetLogo(ctx context.Context, userID, restaurantID string, data []byte, contentType string) (string, error) {
	res, err := s.requireOwned(ctx, userID, restaurantID)
	if err != nil {
		return "", err
	}

	if len(data) == 0 || len(data) > maxBrandingImageBytes {
		return "", errors.New("logo must be a non-empty image up to 4MB")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.New("logo must be an image")
	}

	key := fmt.Sprintf("branding/%s/logo-%s", restaurantID, uuid.New().String()[:8])
	url, err := s.storage.UploadBytes(ctx, key, data, contentType)
	if err != nil {
		return "", err
	}

	res.LogoURL = url
	if err := s.repo.Update(ctx, res); err != nil {
		return "", err
	}
	return url, nil
}

// SetCover uploads a cover image. Enterprise feature.
func (s *Service) SetCover(ctx context.Context, userID, restaurantID string, data []byte, contentType string) (string, error) {
	res, err := s.requireOwned(ctx, userID, restaurantID)
	if err != nil {
		return "", err
	}

	role, _ := s.plans.RoleOf(ctx, userID)
	if !isPremiumRole(role) {
		return "", errors.New("cover images require the enterprise plan")
	}

	if len(data) == 0 || len(data) > maxBrandingImageBytes {
		return "", errors.New("cover must be a non-empty image up to 4MB")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.New("cover must be an image")
	}

	key := fmt.Sprintf("branding/%s/cover-%s", restaurantID, uuid.New().String()[:8])
	url, err := s.storage.UploadBytes(ctx, key, data, contentType)
	if err != nil {
		return "", err
	}

	res.CoverImageURL = url
	if err := s.repo.Update(ctx, res); err != nil {
		return "", err
	}
	return url, nil
}

func (s *Service) DeleteCover(ctx context.Context, userID, restaurantID string) error {
	res, err := s.requireOwned(ctx, userID, restaurantID)
	if err != nil {
		return err
	}

	role, _ := s.plans.RoleOf(ctx, userID)
	if !isPremiumRole(role) {
		return errors.New("cover images require the enterprise plan")
	}

	res.CoverImageURL = ""
	return s.repo.Update(ctx, res)
}
