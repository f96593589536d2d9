package servicereq

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/restaurant"
)

// Restaurants resolves a public restaurant identifier to a full
// record, the way the public menu endpoint does.
type Restaurants interface {
	ResolvePublic(ctx context.Context, idOrSlug string) (*restaurant.Restaurant, error)
}

type Service struct {
	repo        Repository
	restaurants Restaurants
}

func NewService(repo Repository, restaurants Restaurants) *Service {
	return &Service{repo: repo, restaurants: restaurants}
}

type CreateRequest struct {
	RestaurantID string `json:"restaurant_id"`
	TableNumber  string `json:"table_number"`
	RequestType  string `json:"request_type"`
	Note         string `json:"note"`
}

// Create records a request from a diner. The restaurant may be
// identified by UUID or slug since requests come from the public
// menu page.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*ServiceRequest, error) {
	if !validTypes[req.RequestType] {
		return nil, errors.New("request_type must be call_waiter, request_sauce, request_water, request_bill or other")
	}
	if req.RequestType == TypeOther && strings.TrimSpace(req.Note) == "" {
		return nil, errors.New("note is required for other requests")
	}

	res, err := s.restaurants.ResolvePublic(ctx, req.RestaurantID)
	if err != nil {
		return nil, errors.New("restaurant not found")
	}

	sr := &ServiceRequest{
		ID:           uuid.New().String(),
		RestaurantID: res.ID,
		TableNumber:  strings.TrimSpace(req.TableNumber),
		RequestType:  req.RequestType,
		Note:         strings.TrimSpace(req.Note),
		Status:       StatusPending,
	}
	if err := s.repo.Create(ctx, sr); err != nil {
		return nil, err
	}
	return sr, nil
}

func (s *Service) List(ctx context.Context, restaurantID, status string) ([]*ServiceRequest, error) {
	if status != "" && status != StatusPending && status != StatusAcknowledged && status != StatusCompleted {
		return nil, errors.New("status must be pending, acknowledged or completed")
	}
	return s.repo.ListByRestaurant(ctx, restaurantID, status)
}

// Acknowledge marks a pending request as seen by a staff member.
func (s *Service) Acknowledge(ctx context.Context, id, staffName string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("request id is required")
	}
	return s.repo.Acknowledge(ctx, id, strings.TrimSpace(staffName))
}

func (s *Service) Complete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("request id is required")
	}
	return s.repo.Complete(ctx, id)
}
