package orders

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/restaurant"
)

// Restaurants resolves a public restaurant identifier (UUID or slug).
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

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func newOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%04d",
		time.Now().Format("060102"),
		rand.Intn(10000),
	)
}

type CreateRequest struct {
	RestaurantID    string          `json:"restaurant_id"`
	ServiceType     string          `json:"service_type"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	Items           []OrderItem     `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	Tax             float64         `json:"tax"`
	DeliveryFee     float64         `json:"delivery_fee"`
	Notes           string          `json:"notes"`
}

func validateCustomerDetails(serviceType string, d CustomerDetails) error {
	switch serviceType {
	case ServiceDineIn:
		if strings.TrimSpace(d.TableNumber) == "" {
			return errors.New("table_number is required for dine-in orders")
		}
	case ServicePickup:
		if strings.TrimSpace(d.Name) == "" {
			return errors.New("customer name is required for pickup orders")
		}
		if strings.TrimSpace(d.PickupTime) == "" {
			return errors.New("pickup_time is required for pickup orders")
		}
	case ServiceDelivery:
		if strings.TrimSpace(d.Name) == "" {
			return errors.New("customer name is required for delivery orders")
		}
		if strings.TrimSpace(d.Address) == "" {
			return errors.New("address is required for delivery orders")
		}
	default:
		return errors.New("service_type must be dine_in, pickup or delivery")
	}
	return nil
}

// Create validates and prices a new order. Payment happens after
// creation, so the order starts in pending_payment.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, errors.New("order must contain at least one item")
	}

	if err := validateCustomerDetails(req.ServiceType, req.CustomerDetails); err != nil {
		return nil, err
	}

	res, err := s.restaurants.ResolvePublic(ctx, req.RestaurantID)
	if err != nil {
		return nil, errors.New("restaurant not found")
	}

	if res.ServiceOptions != nil && !res.ServiceOptions[req.ServiceType] {
		return nil, fmt.Errorf("%s is not offered by this restaurant", req.ServiceType)
	}

	for i, item := range req.Items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("item %d has no name", i+1)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item %q has an invalid quantity", item.Name)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("item %q has a negative price", item.Name)
		}
		// menu_id is cast to uuid by the best-seller aggregation, so
		// anything that is not a UUID must not reach the database.
		if item.MenuID != "" {
			if _, err := uuid.Parse(item.MenuID); err != nil {
				req.Items[i].MenuID = ""
			}
		}
	}

	subtotal := req.Subtotal
	if subtotal == 0 {
		for _, item := range req.Items {
			subtotal += item.Price * float64(item.Quantity)
		}
	}
	subtotal = round2(subtotal)

	tax := round2(req.Tax)
	if tax < 0 {
		return nil, errors.New("tax cannot be negative")
	}

	// Delivery fee only applies to delivery orders.
	deliveryFee := 0.0
	if req.ServiceType == ServiceDelivery {
		if req.DeliveryFee < 0 {
			return nil, errors.New("delivery fee cannot be negative")
		}
		deliveryFee = round2(req.DeliveryFee)
	}

	order := &Order{
		RestaurantID:    res.ID,
		OrderNumber:     newOrderNumber(),
		ServiceType:     req.ServiceType,
		CustomerDetails: req.CustomerDetails,
		Items:           req.Items,
		Subtotal:        subtotal,
		Tax:             tax,
		DeliveryFee:     deliveryFee,
		Total:           round2(subtotal + tax + deliveryFee),
		Status:          StatusPendingPayment,
		PaymentStatus:   PaymentPending,
		Notes:           req.Notes,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) List(ctx context.Context, restaurantID, status string) ([]*Order, error) {
	if restaurantID == "" {
		return nil, errors.New("restaurant_id is required")
	}
	if status != "" && status != StatusPendingPayment && !validStatuses[status] {
		return nil, errors.New("unknown status filter: " + status)
	}

	orders, err := s.repo.ListByRestaurant(ctx, restaurantID, status)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if !validStatuses[status] {
		return errors.New("status must be one of pending, preparing, ready, completed, cancelled")
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
