package staff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	members  map[string]*Member
	activity []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{members: map[string]*Member{}}
}

func (f *fakeRepo) Save(ctx context.Context, m *Member) error {
	f.members[m.ID] = m
	return nil
}

func (f *fakeRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]*Member, error) {
	var out []*Member
	for _, m := range f.members {
		if m.RestaurantID == restaurantID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListActive(ctx context.Context, restaurantID string) ([]*Member, error) {
	var out []*Member
	for _, m := range f.members {
		if m.RestaurantID == restaurantID && m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

func (f *fakeRepo) Update(ctx context.Context, m *Member) error {
	if _, ok := f.members[m.ID]; !ok {
		return ErrNotFound
	}
	f.members[m.ID] = m
	return nil
}

func (f *fakeRepo) LogActivity(ctx context.Context, staffID, restaurantID, action string) error {
	f.activity = append(f.activity, action)
	return nil
}

func (f *fakeRepo) RecentActivity(ctx context.Context, restaurantID string, limit int) ([]*Activity, error) {
	return nil, nil
}

type fakeOwners struct {
	owner string
}

func (f *fakeOwners) IsOwner(ctx context.Context, restaurantID, userID string) (bool, error) {
	return userID == f.owner, nil
}

func TestCreateValidatesPINAndRole(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeOwners{owner: "u1"})

	_, err := svc.Create(context.Background(), "u1", CreateRequest{RestaurantID: "r1", Name: "Nok", Role: RoleWaiter, PIN: "12345"})
	assert.Error(t, err, "5 digit pin")

	_, err = svc.Create(context.Background(), "u1", CreateRequest{RestaurantID: "r1", Name: "Nok", Role: RoleWaiter, PIN: "12a456"})
	assert.Error(t, err, "non numeric pin")

	_, err = svc.Create(context.Background(), "u1", CreateRequest{RestaurantID: "r1", Name: "Nok", Role: "dj", PIN: "123456"})
	assert.Error(t, err, "unknown role")

	member, err := svc.Create(context.Background(), "u1", CreateRequest{RestaurantID: "r1", Name: "Nok", Role: RoleWaiter, PIN: "123456"})
	require.NoError(t, err)
	assert.True(t, member.IsActive)
	assert.NotEqual(t, "123456", member.PINHash)
}

func TestCreateRejectsForeignRestaurant(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeOwners{owner: "u1"})

	_, err := svc.Create(context.Background(), "intruder", CreateRequest{RestaurantID: "r1", Name: "Nok", Role: RoleWaiter, PIN: "123456"})
	assert.Error(t, err)
}

func TestVerifyPIN(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeOwners{owner: "u1"})

	created, err := svc.Create(context.Background(), "u1", CreateRequest{RestaurantID: "r1", Name: "Nok", Role: RoleChef, PIN: "246810"})
	require.NoError(t, err)

	member, err := svc.VerifyPIN(context.Background(), "r1", "246810")
	require.NoError(t, err)
	assert.Equal(t, created.ID, member.ID)
	assert.Equal(t, []string{"staff_login"}, repo.activity)

	_, err = svc.VerifyPIN(context.Background(), "r1", "000000")
	assert.Error(t, err)
}

func TestDeactivateDisablesPIN(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeOwners{owner: "u1"})

	created, err := svc.Create(context.Background(), "u1", CreateRequest{RestaurantID: "r1", Name: "Nok", Role: RoleChef, PIN: "246810"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID, "u1"))
	assert.False(t, repo.members[created.ID].IsActive)

	_, err = svc.VerifyPIN(context.Background(), "r1", "246810")
	assert.Error(t, err)
}

func TestUpdateRehashesPIN(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeOwners{owner: "u1"})

	created, err := svc.Create(context.Background(), "u1", CreateRequest{RestaurantID: "r1", Name: "Nok", Role: RoleWaiter, PIN: "123456"})
	require.NoError(t, err)
	oldHash := created.PINHash

	pin := "654321"
	updated, err := svc.Update(context.Background(), created.ID, "u1", UpdateRequest{PIN: &pin})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, updated.PINHash)

	_, err = svc.VerifyPIN(context.Background(), "r1", "654321")
	assert.NoError(t, err)
}

func TestUpdateRejectsForeignOwner(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeOwners{owner: "u1"})

	created, err := svc.Create(context.Background(), "u1", CreateRequest{RestaurantID: "r1", Name: "Nok", Role: RoleWaiter, PIN: "123456"})
	require.NoError(t, err)

	name := "Lek"
	_, err = svc.Update(context.Background(), created.ID, "intruder", UpdateRequest{Name: &name})
	assert.Error(t, err)
}
