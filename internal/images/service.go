package images

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/ai"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/auth"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/billing"
)

var ErrAINotConfigured = errors.New("image generation is not configured")

const maxUploadBytes = 8 << 20

var validStyles = map[string]bool{
	"professional": true,
	"natural":      true,
	"vibrant":      true,
}

// Limits gates and records AI feature usage. Satisfied by the billing
// service.
type Limits interface {
	CheckFeature(ctx context.Context, userID, feature string) error
	RecordUsage(ctx context.Context, userID, feature string) error
}

// Storage persists image bytes. Satisfied by the R2 client.
type Storage interface {
	UploadBase64(ctx context.Context, key, encoded string) (string, error)
}

// Owners answers whether a user owns a restaurant.
type Owners interface {
	IsOwner(ctx context.Context, restaurantID, userID string) (bool, error)
}

// Plans reports the account role for the search gate.
type Plans interface {
	RoleOf(ctx context.Context, userID string) (string, error)
}

// MenuItems lets a generated image be attached to a menu item.
type MenuItems interface {
	SetImageURL(ctx context.Context, itemID, url string) error
}

type Service struct {
	repo    Repository
	ai      ai.Client
	storage Storage
	limits  Limits
	owners  Owners
	plans   Plans
	menu    MenuItems
}

func NewService(repo Repository, aiClient ai.Client, store Storage, limits Limits, owners Owners, plans Plans, menuItems MenuItems) *Service {
	return &Service{
		repo:    repo,
		ai:      aiClient,
		storage: store,
		limits:  limits,
		owners:  owners,
		plans:   plans,
		menu:    menuItems,
	}
}

// --------------------------------------------------
// Library
// --------------------------------------------------

func (s *Service) Library(ctx context.Context, userID string, limit int) ([]*LibraryImage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) ByRestaurant(ctx context.Context, restaurantID, userID string) ([]*LibraryImage, error) {
	owned, err := s.owners.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, errors.New("restaurant does not belong to this account")
	}
	return s.repo.ListByRestaurant(ctx, restaurantID, userID)
}

// Search is an enterprise feature.
func (s *Service) Search(ctx context.Context, userID, query string) ([]*LibraryImage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("search query is required")
	}

	role, err := s.plans.RoleOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if role != auth.RoleEnterprise && role != auth.RoleAdmin {
		return nil, errors.New("image search requires the premium plan")
	}
	return s.repo.Search(ctx, userID, query)
}

func (s *Service) Recent(ctx context.Context, userID string, days, limit int) ([]*LibraryImage, error) {
	if days <= 0 {
		days = 7
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.Recent(ctx, userID, days, limit)
}

// --------------------------------------------------
// AI generation
// --------------------------------------------------

type GenerateRequest struct {
	RestaurantID string `json:"restaurant_id"`
	MenuID       string `json:"menu_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Cuisine      string `json:"cuisine"`
	Style        string `json:"style"`
}

// Generate creates a food photo from a dish description, stores it
// and optionally attaches it to a menu item. Usage counts only on
// success.
func (s *Service) Generate(ctx context.Context, userID string, req GenerateRequest) (*LibraryImage, error) {
	if !s.ai.Configured() {
		return nil, ErrAINotConfigured
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("dish name is required")
	}
	if req.Style != "" && !validStyles[req.Style] {
		return nil, errors.New("style must be professional, natural or vibrant")
	}

	owned, err := s.owners.IsOwner(ctx, req.RestaurantID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, errors.New("restaurant does not belong to this account")
	}

	if err := s.limits.CheckFeature(ctx, userID, billing.FeatureImageGeneration); err != nil {
		return nil, err
	}

	prompt := ai.BuildFoodImagePrompt(req.Name, req.Description, req.Cuisine, req.Style)
	b64, err := s.ai.GenerateImage(ctx, prompt, "1024x1024")
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("generated/%s/%s.png", req.RestaurantID, uuid.New().String())
	url, err := s.storage.UploadBase64(ctx, key, b64)
	if err != nil {
		return nil, err
	}

	img := &LibraryImage{
		RestaurantID: req.RestaurantID,
		URL:          url,
		Source:       SourceGenerated,
		Prompt:       prompt,
		MenuItemName: req.Name,
	}
	if err := s.repo.Insert(ctx, img); err != nil {
		return nil, err
	}

	if req.MenuID != "" {
		if err := s.menu.SetImageURL(ctx, req.MenuID, url); err != nil {
			return nil, err
		}
	}

	if err := s.limits.RecordUsage(ctx, userID, billing.FeatureImageGeneration); err != nil {
		return nil, err
	}
	return img, nil
}

// Enhance describes an uploaded photo with the vision model, then
// regenerates it as a clean food shot.
func (s *Service) Enhance(ctx context.Context, userID, restaurantID, style string, file multipart.File, header *multipart.FileHeader) (*LibraryImage, error) {
	if !s.ai.Configured() {
		return nil, ErrAINotConfigured
	}
	if style != "" && !validStyles[style] {
		return nil, errors.New("style must be professional, natural or vibrant")
	}

	owned, err := s.owners.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, errors.New("restaurant does not belong to this account")
	}

	if err := s.limits.CheckFeature(ctx, userID, billing.FeatureImageEnhancement); err != nil {
		return nil, err
	}

	if header.Size > maxUploadBytes {
		return nil, errors.New("image is larger than 8MB")
	}
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, err
	}
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)

	description, err := s.ai.ChatWithImage(ctx,
		"Describe this dish for a food photographer: the dish, its main ingredients, colors and plating. One short paragraph.",
		dataURL)
	if err != nil {
		return nil, err
	}

	prompt := ai.BuildFoodImagePrompt(description, "", "", style)
	b64, err := s.ai.GenerateImage(ctx, prompt, "1024x1024")
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("enhanced/%s/%s.png", restaurantID, uuid.New().String())
	url, err := s.storage.UploadBase64(ctx, key, b64)
	if err != nil {
		return nil, err
	}

	img := &LibraryImage{
		RestaurantID: restaurantID,
		URL:          url,
		Source:       SourceEnhanced,
		Prompt:       prompt,
	}
	if err := s.repo.Insert(ctx, img); err != nil {
		return nil, err
	}

	if err := s.limits.RecordUsage(ctx, userID, billing.FeatureImageEnhancement); err != nil {
		return nil, err
	}
	return img, nil
}

// Upload stores a caller-provided base64 image without AI involved.
func (s *Service) Upload(ctx context.Context, userID, restaurantID, imageBase64, menuItemName string) (*LibraryImage, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return nil, errors.New("image is required")
	}

	owned, err := s.owners.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, errors.New("restaurant does not belong to this account")
	}

	key := fmt.Sprintf("uploads/%s/%s.jpg", restaurantID, uuid.New().String())
	url, err := s.storage.UploadBase64(ctx, key, imageBase64)
	if err != nil {
		return nil, err
	}

	img := &LibraryImage{
		RestaurantID: restaurantID,
		URL:          url,
		Source:       SourceUploaded,
		MenuItemName: menuItemName,
	}
	if err := s.repo.Insert(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}
