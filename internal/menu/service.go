package menu

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/auth"
)

// Owners checks restaurant ownership.
type Owners interface {
	IsOwner(ctx context.Context, restaurantID, userID string) (bool, error)
}

// Plans resolves the subscription role of a user.
type Plans interface {
	RoleOf(ctx context.Context, userID string) (string, error)
}

type Service struct {
	repo   Repository
	owners Owners
	plans  Plans
}

func NewService(repo Repository, owners Owners, plans Plans) *Service {
	return &Service{repo: repo, owners: owners, plans: plans}
}

func validRestaurantID(restaurantID string) error {
	if restaurantID == "" || restaurantID == "default" {
		return errors.New("a valid restaurant_id is required, create a restaurant first")
	}
	if _, err := uuid.Parse(restaurantID); err != nil {
		return errors.New("restaurant_id must be a UUID")
	}
	return nil
}

// --------------------------------------------------
// Item CRUD
// --------------------------------------------------

func (s *Service) SaveItem(ctx context.Context, item *MenuItem) error {
	if err := validRestaurantID(item.RestaurantID); err != nil {
		return err
	}
	if strings.TrimSpace(item.Name) == "" {
		return errors.New("item name is required")
	}
	if item.Price < 0 {
		return errors.New("price cannot be negative")
	}

	return s.repo.Save(ctx, item)
}

func (s *Service) ListItems(ctx context.Context, restaurantID string) ([]*MenuItem, error) {
	// "default" means the frontend has no restaurant yet
	if restaurantID == "" || restaurantID == "default" {
		return []*MenuItem{}, nil
	}
	if _, err := uuid.Parse(restaurantID); err != nil {
		return nil, errors.New("restaurant_id must be a UUID")
	}

	items, err := s.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*MenuItem{}
	}
	return items, nil
}

func (s *Service) GetItem(ctx context.Context, id string) (*MenuItem, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

type ItemUpdateRequest struct {
	Name          *string   `json:"name"`
	NameEN        *string   `json:"name_en"`
	Description   *string   `json:"description"`
	DescriptionEN *string   `json:"description_en"`
	Category      *string   `json:"category"`
	Price         *float64  `json:"price"`
	ImageURL      *string   `json:"image_url"`
	MeatOptions   *[]string `json:"meat_options"`
	AddonOptions  *[]string `json:"addon_options"`
	BestSellerPin *bool     `json:"best_seller_pinned"`
}

func (s *Service) UpdateItem(ctx context.Context, id string, req ItemUpdateRequest) (*MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, errors.New("item name cannot be empty")
		}
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.NameEN != nil {
		item.NameEN = *req.NameEN
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.DescriptionEN != nil {
		item.DescriptionEN = *req.DescriptionEN
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, errors.New("price cannot be negative")
		}
		item.Price = *req.Price
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.MeatOptions != nil {
		item.MeatOptions = *req.MeatOptions
	}
	if req.AddonOptions != nil {
		item.AddonOptions = *req.AddonOptions
	}
	if req.BestSellerPin != nil {
		item.BestSellerPinned = *req.BestSellerPin
		if *req.BestSellerPin {
			item.IsBestSeller = true
		}
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Stats(ctx context.Context, restaurantID string) (*Stats, error) {
	if restaurantID == "" || restaurantID == "default" {
		return &Stats{}, nil
	}
	return s.repo.Stats(ctx, restaurantID)
}

// --------------------------------------------------
// Copy an item into another owned restaurant
// --------------------------------------------------
func (s *Service) CopyToRestaurant(ctx context.Context, userID, itemID, targetRestaurantID string) (*MenuItem, error) {
	role, _ := s.plans.RoleOf(ctx, userID)
	switch role {
	case auth.RoleEnterprise, auth.RoleAdmin:
	default:
		return nil, errors.New("copying menus requires an enterprise plan")
	}

	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	for _, restaurantID := range []string{item.RestaurantID, targetRestaurantID} {
		owned, err := s.owners.IsOwner(ctx, restaurantID, userID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, errors.New("restaurant does not belong to this user")
		}
	}

	copied := *item
	copied.ID = ""
	copied.RestaurantID = targetRestaurantID
	copied.IsBestSeller = false
	copied.BestSellerPinned = false

	if err := s.repo.Save(ctx, &copied); err != nil {
		return nil, err
	}
	return &copied, nil
}
