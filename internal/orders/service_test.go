package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/restaurant"
)

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type fakeRepo struct {
	orders map[string]*Order
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: map[string]*Order{}}
}

func (f *fakeRepo) Create(ctx context.Context, order *Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	f.orders[order.ID] = order
	return nil
}

func (f *fakeRepo) ListByRestaurant(ctx context.Context, restaurantID, status string) ([]*Order, error) {
	var out []*Order
	for _, o := range f.orders {
		if o.RestaurantID == restaurantID && (status == "" || o.Status == status) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeRepo) SetPaymentIntent(ctx context.Context, id, intentID string) error { return nil }
func (f *fakeRepo) SetPaymentStatus(ctx context.Context, id, status string) error   { return nil }
func (f *fakeRepo) MarkPaid(ctx context.Context, id, receiptURL string) error       { return nil }
func (f *fakeRepo) SetSlipURL(ctx context.Context, id, slipURL string) error        { return nil }

type fakeRestaurants struct {
	restaurant *restaurant.Restaurant
}

func (f *fakeRestaurants) ResolvePublic(ctx context.Context, idOrSlug string) (*restaurant.Restaurant, error) {
	if f.restaurant == nil {
		return nil, restaurant.ErrNotFound
	}
	return f.restaurant, nil
}

func testRestaurant() *restaurant.Restaurant {
	return &restaurant.Restaurant{
		ID: uuid.New().String(),
		ServiceOptions: map[string]bool{
			"dine_in":  true,
			"pickup":   true,
			"delivery": true,
		},
	}
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestCreateComputesTotals(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeRestaurants{restaurant: testRestaurant()})

	order, err := svc.Create(context.Background(), CreateRequest{
		RestaurantID: "any",
		ServiceType:  ServiceDineIn,
		CustomerDetails: CustomerDetails{
			TableNumber: "7",
		},
		Items: []OrderItem{
			{Name: "Pad Thai", Price: 120, Quantity: 2},
			{Name: "Thai Tea", Price: 45.50, Quantity: 1},
		},
		Tax: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, 285.50, order.Subtotal)
	assert.Equal(t, 20.0, order.Tax)
	assert.Equal(t, 0.0, order.DeliveryFee)
	assert.Equal(t, 305.50, order.Total)
	assert.Equal(t, StatusPendingPayment, order.Status)
	assert.Equal(t, PaymentPending, order.PaymentStatus)
	assert.NotEmpty(t, order.OrderNumber)
}

func TestCreateDeliveryFeeOnlyForDelivery(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeRestaurants{restaurant: testRestaurant()})

	// A pickup order with a stray delivery fee ignores it.
	pickup, err := svc.Create(context.Background(), CreateRequest{
		RestaurantID: "any",
		ServiceType:  ServicePickup,
		CustomerDetails: CustomerDetails{
			Name:       "Somchai",
			PickupTime: "18:30",
		},
		Items:       []OrderItem{{Name: "Pad Thai", Price: 120, Quantity: 1}},
		DeliveryFee: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, pickup.DeliveryFee)
	assert.Equal(t, 120.0, pickup.Total)

	delivery, err := svc.Create(context.Background(), CreateRequest{
		RestaurantID: "any",
		ServiceType:  ServiceDelivery,
		CustomerDetails: CustomerDetails{
			Name:    "Somchai",
			Address: "123 Queen St, Auckland",
		},
		Items:       []OrderItem{{Name: "Pad Thai", Price: 120, Quantity: 1}},
		DeliveryFee: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, delivery.DeliveryFee)
	assert.Equal(t, 170.0, delivery.Total)
}

func TestCreateValidatesCustomerDetails(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeRestaurants{restaurant: testRestaurant()})

	cases := []CreateRequest{
		{ServiceType: ServiceDineIn, Items: []OrderItem{{Name: "x", Price: 1, Quantity: 1}}},
		{ServiceType: ServicePickup, CustomerDetails: CustomerDetails{Name: "A"}, Items: []OrderItem{{Name: "x", Price: 1, Quantity: 1}}},
		{ServiceType: ServiceDelivery, CustomerDetails: CustomerDetails{Name: "A"}, Items: []OrderItem{{Name: "x", Price: 1, Quantity: 1}}},
		{ServiceType: "drive_thru", Items: []OrderItem{{Name: "x", Price: 1, Quantity: 1}}},
	}

	for _, req := range cases {
		req.RestaurantID = "any"
		_, err := svc.Create(context.Background(), req)
		assert.Error(t, err, "service_type=%s details=%+v", req.ServiceType, req.CustomerDetails)
	}
}

func TestCreateDropsNonUUIDMenuIDs(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeRestaurants{restaurant: testRestaurant()})

	menuID := uuid.New().String()
	order, err := svc.Create(context.Background(), CreateRequest{
		RestaurantID:    "any",
		ServiceType:     ServiceDineIn,
		CustomerDetails: CustomerDetails{TableNumber: "2"},
		Items: []OrderItem{
			{MenuID: menuID, Name: "Pad Thai", Price: 120, Quantity: 1},
			{MenuID: "abc", Name: "Thai Tea", Price: 45, Quantity: 1},
			{Name: "Rice", Price: 20, Quantity: 1},
		},
	})
	require.NoError(t, err)

	stored := repo.orders[order.ID]
	assert.Equal(t, menuID, stored.Items[0].MenuID)
	assert.Empty(t, stored.Items[1].MenuID, "non-UUID menu_id must not be stored")
	assert.Empty(t, stored.Items[2].MenuID)
}

func TestCreateRejectsDisabledServiceType(t *testing.T) {
	res := testRestaurant()
	res.ServiceOptions["delivery"] = false
	svc := NewService(newFakeRepo(), &fakeRestaurants{restaurant: res})

	_, err := svc.Create(context.Background(), CreateRequest{
		RestaurantID: "any",
		ServiceType:  ServiceDelivery,
		CustomerDetails: CustomerDetails{
			Name:    "Somchai",
			Address: "123 Queen St",
		},
		Items: []OrderItem{{Name: "Pad Thai", Price: 120, Quantity: 1}},
	})
	assert.Error(t, err)
}

func TestCreateRejectsEmptyOrder(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeRestaurants{restaurant: testRestaurant()})

	_, err := svc.Create(context.Background(), CreateRequest{
		RestaurantID: "any",
		ServiceType:  ServiceDineIn,
		CustomerDetails: CustomerDetails{
			TableNumber: "1",
		},
	})
	assert.Error(t, err)
}

func TestUpdateStatusValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeRestaurants{restaurant: testRestaurant()})

	order, err := svc.Create(context.Background(), CreateRequest{
		RestaurantID:    "any",
		ServiceType:     ServiceDineIn,
		CustomerDetails: CustomerDetails{TableNumber: "3"},
		Items:           []OrderItem{{Name: "Pad Thai", Price: 120, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Error(t, svc.UpdateStatus(context.Background(), order.ID, "exploded"))
	assert.NoError(t, svc.UpdateStatus(context.Background(), order.ID, StatusPreparing))
	assert.Equal(t, StatusPreparing, repo.orders[order.ID].Status)
}
