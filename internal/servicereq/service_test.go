package servicereq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/restaurant"
)

type fakeRepo struct {
	requests map[string]*ServiceRequest
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{requests: map[string]*ServiceRequest{}}
}

func (f *fakeRepo) Create(ctx context.Context, req *ServiceRequest) error {
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRepo) ListByRestaurant(ctx context.Context, restaurantID, status string) ([]*ServiceRequest, error) {
	var out []*ServiceRequest
	for _, r := range f.requests {
		if r.RestaurantID == restaurantID && (status == "" || r.Status == status) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*ServiceRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (f *fakeRepo) Acknowledge(ctx context.Context, id, staffName string) error {
	r, ok := f.requests[id]
	if !ok || r.Status != StatusPending {
		return ErrNotFound
	}
	r.Status = StatusAcknowledged
	r.AcknowledgedBy = staffName
	return nil
}

func (f *fakeRepo) Complete(ctx context.Context, id string) error {
	r, ok := f.requests[id]
	if !ok {
		return ErrNotFound
	}
	r.Status = StatusCompleted
	return nil
}

type fakeRestaurants struct {
	restaurant *restaurant.Restaurant
}

func (f *fakeRestaurants) ResolvePublic(ctx context.Context, idOrSlug string) (*restaurant.Restaurant, error) {
	if f.restaurant == nil {
		return nil, restaurant.ErrNotFound
	}
	return f.restaurant, nil
}

func TestCreateServiceRequest(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeRestaurants{restaurant: &restaurant.Restaurant{ID: "res-1"}})

	sr, err := svc.Create(context.Background(), CreateRequest{
		RestaurantID: "thai-kitchen",
		TableNumber:  "5",
		RequestType:  TypeCallWaiter,
	})
	require.NoError(t, err)

	assert.Equal(t, "res-1", sr.RestaurantID)
	assert.Equal(t, StatusPending, sr.Status)
	assert.NotEmpty(t, sr.ID)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeRestaurants{restaurant: &restaurant.Restaurant{ID: "res-1"}})

	_, err := svc.Create(context.Background(), CreateRequest{
		RestaurantID: "res-1",
		RequestType:  "bring_karaoke",
	})
	assert.Error(t, err)
}

func TestCreateOtherRequiresNote(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeRestaurants{restaurant: &restaurant.Restaurant{ID: "res-1"}})

	_, err := svc.Create(context.Background(), CreateRequest{
		RestaurantID: "res-1",
		RequestType:  TypeOther,
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), CreateRequest{
		RestaurantID: "res-1",
		RequestType:  TypeOther,
		Note:         "extra chopsticks please",
	})
	assert.NoError(t, err)
}

func TestAcknowledgeAndComplete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeRestaurants{restaurant: &restaurant.Restaurant{ID: "res-1"}})

	sr, err := svc.Create(context.Background(), CreateRequest{
		RestaurantID: "res-1",
		RequestType:  TypeRequestBill,
		TableNumber:  "2",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Acknowledge(context.Background(), sr.ID, "Nok"))
	assert.Equal(t, StatusAcknowledged, repo.requests[sr.ID].Status)
	assert.Equal(t, "Nok", repo.requests[sr.ID].AcknowledgedBy)

	// A second acknowledgement of the same request fails.
	assert.Error(t, svc.Acknowledge(context.Background(), sr.ID, "Lek"))

	require.NoError(t, svc.Complete(context.Background(), sr.ID))
	assert.Equal(t, StatusCompleted, repo.requests[sr.ID].Status)
}

func TestListValidatesStatus(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeRestaurants{})

	_, err := svc.List(context.Background(), "res-1", "sleeping")
	assert.Error(t, err)
}
