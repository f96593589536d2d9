package images

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/auth"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/billing"
)

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type fakeRepo struct {
	inserted []*LibraryImage
}

func (f *fakeRepo) Insert(ctx context.Context, img *LibraryImage) error {
	img.ID = len(f.inserted) + 1
	f.inserted = append(f.inserted, img)
	return nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*LibraryImage, error) {
	return f.inserted, nil
}

func (f *fakeRepo) ListByRestaurant(ctx context.Context, restaurantID, userID string) ([]*LibraryImage, error) {
	return f.inserted, nil
}

func (f *fakeRepo) Search(ctx context.Context, userID, query string) ([]*LibraryImage, error) {
	return f.inserted, nil
}

func (f *fakeRepo) Recent(ctx context.Context, userID string, days, limit int) ([]*LibraryImage, error) {
	return f.inserted, nil
}

type fakeAI struct {
	configured bool
}

func (f *fakeAI) Configured() bool { return f.configured }

func (f *fakeAI) Chat(ctx context.Context, system, user string) (string, error) {
	return "answer", nil
}

func (f *fakeAI) ChatWithImage(ctx context.Context, prompt, imageDataURL string) (string, error) {
	return "green curry with jasmine rice", nil
}

func (f *fakeAI) GenerateImage(ctx context.Context, prompt, size string) (string, error) {
	return "aGVsbG8=", nil
}

type fakeStorage struct {
	keys []string
}

func (f *fakeStorage) UploadBase64(ctx context.Context, key, encoded string) (string, error) {
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}

type fakeLimits struct {
	remaining int
	recorded  int
}

func (f *fakeLimits) CheckFeature(ctx context.Context, userID, feature string) error {
	if f.remaining <= 0 {
		return &billing.LimitExceededError{Feature: feature, Limit: 2, Used: 2}
	}
	return nil
}

func (f *fakeLimits) RecordUsage(ctx context.Context, userID, feature string) error {
	f.remaining--
	f.recorded++
	return nil
}

type fakeOwners struct{ owner string }

func (f *fakeOwners) IsOwner(ctx context.Context, restaurantID, userID string) (bool, error) {
	return userID == f.owner, nil
}

type fakePlans struct{ role string }

func (f *fakePlans) RoleOf(ctx context.Context, userID string) (string, error) {
	return f.role, nil
}

type fakeMenu struct {
	attached map[string]string
}

func (f *fakeMenu) SetImageURL(ctx context.Context, itemID, url string) error {
	if f.attached == nil {
		f.attached = map[string]string{}
	}
	f.attached[itemID] = url
	return nil
}

func newTestService(repo *fakeRepo, limits *fakeLimits, menuItems *fakeMenu, role string) *Service {
	return NewService(repo, &fakeAI{configured: true}, &fakeStorage{}, limits, &fakeOwners{owner: "u1"}, &fakePlans{role: role}, menuItems)
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestGenerateStoresAndAttaches(t *testing.T) {
	repo := &fakeRepo{}
	limits := &fakeLimits{remaining: 2}
	menuItems := &fakeMenu{}
	svc := newTestService(repo, limits, menuItems, auth.RoleFreeTrial)

	img, err := svc.Generate(context.Background(), "u1", GenerateRequest{
		RestaurantID: "r1",
		MenuID:       "m1",
		Name:         "Green Curry",
		Cuisine:      "Thai",
		Style:        "natural",
	})
	require.NoError(t, err)

	assert.Equal(t, SourceGenerated, img.Source)
	assert.Contains(t, img.URL, "generated/r1/")
	assert.Equal(t, img.URL, menuItems.attached["m1"])
	assert.Equal(t, 1, limits.recorded)
}

func TestGenerateStopsAtLimit(t *testing.T) {
	limits := &fakeLimits{remaining: 0}
	svc := newTestService(&fakeRepo{}, limits, &fakeMenu{}, auth.RoleFreeTrial)

	_, err := svc.Generate(context.Background(), "u1", GenerateRequest{
		RestaurantID: "r1",
		Name:         "Green Curry",
	})
	require.Error(t, err)

	var limitErr *billing.LimitExceededError
	assert.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 0, limits.recorded)
}

func TestGenerateRejectsForeignRestaurant(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeLimits{remaining: 2}, &fakeMenu{}, auth.RoleFreeTrial)

	_, err := svc.Generate(context.Background(), "intruder", GenerateRequest{
		RestaurantID: "r1",
		Name:         "Green Curry",
	})
	assert.Error(t, err)
}

func TestGenerateValidatesStyle(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeLimits{remaining: 2}, &fakeMenu{}, auth.RoleFreeTrial)

	_, err := svc.Generate(context.Background(), "u1", GenerateRequest{
		RestaurantID: "r1",
		Name:         "Green Curry",
		Style:        "grunge",
	})
	assert.Error(t, err)
}

func TestSearchRequiresPremium(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeLimits{remaining: 2}, &fakeMenu{}, auth.RoleStarter)

	_, err := svc.Search(context.Background(), "u1", "curry")
	assert.Error(t, err)

	svc = newTestService(&fakeRepo{}, &fakeLimits{remaining: 2}, &fakeMenu{}, auth.RoleEnterprise)
	_, err = svc.Search(context.Background(), "u1", "curry")
	assert.NoError(t, err)
}

func TestUploadDoesNotTouchLimits(t *testing.T) {
	repo := &fakeRepo{}
	limits := &fakeLimits{remaining: 0}
	svc := newTestService(repo, limits, &fakeMenu{}, auth.RoleFreeTrial)

	img, err := svc.Upload(context.Background(), "u1", "r1", "aGVsbG8=", "Pad Thai")
	require.NoError(t, err)

	assert.Equal(t, SourceUploaded, img.Source)
	assert.Equal(t, 0, limits.recorded)
}
