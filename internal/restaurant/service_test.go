package restaurant

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/auth"
)

// --------------------------------------------------
// Mock Repository
// --------------------------------------------------

type mockRepository struct {
	byID map[string]*Restaurant
}

func newMockRepository() *mockRepository {
	return &mockRepository{byID: map[string]*Restaurant{}}
}

func (m *mockRepository) Create(ctx context.Context, r *Restaurant) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	copied := *r
	m.byID[r.ID] = &copied
	return nil
}

func (m *mockRepository) ListByUser(ctx context.Context, userID string) ([]*Restaurant, error) {
	var out []*Restaurant
	for _, r := range m.byID {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *mockRepository) GetByIDOrSlug(ctx context.Context, idOrSlug string) (*Restaurant, error) {
	if r, ok := m.byID[idOrSlug]; ok {
		copied := *r
		return &copied, nil
	}
	for _, r := range m.byID {
		if r.Slug == idOrSlug {
			copied := *r
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepository) Update(ctx context.Context, r *Restaurant) error {
	if _, ok := m.byID[r.ID]; !ok {
		return ErrNotFound
	}
	copied := *r
	m.byID[r.ID] = &copied
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *mockRepository) SetActive(ctx context.Context, userID, restaurantID string) error {
	for _, r := range m.byID {
		if r.UserID == userID {
			r.IsActive = r.ID == restaurantID
		}
	}
	return nil
}

func (m *mockRepository) IsOwner(ctx context.Context, restaurantID, userID string) (bool, error) {
	r, ok := m.byID[restaurantID]
	return ok && r.UserID == userID, nil
}

func (m *mockRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, r := range m.byID {
		if r.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	r, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	r.Latitude = &lat
	r.Longitude = &lng
	return nil
}

type mockPlans struct {
	role string
}

func (m *mockPlans) RoleOf(ctx context.Context, userID string) (string, error) {
	return m.role, nil
}

func newTestService(role string) (*Service, *mockRepository) {
	repo := newMockRepository()
	return NewService(repo, &mockPlans{role: role}, nil, nil), repo
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Sunchiro Shop":        "sunchiro-shop",
		"  Thai  Kitchen #1  ": "thai-kitchen-1",
	}

	for in, want := range cases {
		if got := GenerateSlug(in); got != want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", in, got, want)
		}
	}

	// Thai-only names fall back to a random slug
	if got := GenerateSlug("ร้านอาหารไทย"); got == "" {
		t.Errorf("expected fallback slug for non-latin name")
	}
}

func TestNormalizeThemeColor(t *testing.T) {
	got, err := NormalizeThemeColor("E63946")
	if err != nil || got != "#e63946" {
		t.Fatalf("expected #e63946, got %q (%v)", got, err)
	}

	got, err = NormalizeThemeColor("#FFF")
	if err != nil || got != "#ffffff" {
		t.Fatalf("expected #ffffff, got %q (%v)", got, err)
	}

	if _, err := NormalizeThemeColor("red"); err == nil {
		t.Fatalf("expected error for named color")
	}
	if _, err := NormalizeThemeColor("#12345"); err == nil {
		t.Fatalf("expected error for 5-digit hex")
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc, _ := newTestService(auth.RoleFreeTrial)

	if _, err := svc.Create(context.Background(), "user-1", "   ", "", "", "", ""); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestFirstRestaurantBecomesActive(t *testing.T) {
	svc, _ := newTestService(auth.RoleFreeTrial)

	first, err := svc.Create(context.Background(), "user-1", "First", "", "", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.IsActive {
		t.Fatalf("first restaurant should be active")
	}

	second, err := svc.Create(context.Background(), "user-1", "Second", "", "", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.IsActive {
		t.Fatalf("second restaurant should not be active")
	}
}

func TestUpdateRejectsForeignRestaurant(t *testing.T) {
	svc, _ := newTestService(auth.RoleFreeTrial)

	res, _ := svc.Create(context.Background(), "owner", "Mine", "", "", "", "")

	name := "Hijacked"
	_, err := svc.Update(context.Background(), "intruder", res.ID, UpdateRequest{Name: &name})
	if err == nil {
		t.Fatalf("expected ownership error")
	}
}

func TestThemeColorRequiresPaidPlan(t *testing.T) {
	for _, role := range []string{auth.RoleFreeTrial, auth.RoleStarter} {
		svc, _ := newTestService(role)

		res, _ := svc.Create(context.Background(), "user-1", "Mine", "", "", "", "")

		if _, err := svc.SetThemeColor(context.Background(), "user-1", res.ID, "#e63946"); err == nil {
			t.Fatalf("expected %s plan to be blocked from theme color", role)
		}

		color := "#ff5733"
		if _, err := svc.UpdateProfile(context.Background(), "user-1", res.ID, ProfileUpdateRequest{ThemeColor: &color}); err == nil {
			t.Fatalf("expected %s plan to be blocked from theme color via profile update", role)
		}
	}

	svc, _ := newTestService(auth.RoleProfessional)
	res, _ := svc.Create(context.Background(), "user-1", "Mine", "", "", "", "")
	if _, err := svc.SetThemeColor(context.Background(), "user-1", res.ID, "#e63946"); err != nil {
		t.Fatalf("unexpected error for professional plan: %v", err)
	}
}

func TestServiceOptionsValidation(t *testing.T) {
	svc, _ := newTestService(auth.RoleProfessional)

	res, _ := svc.Create(context.Background(), "user-1", "Mine", "", "", "", "")

	_, err := svc.UpdateServiceOptions(context.Background(), "user-1", ServiceOptionsRequest{
		RestaurantID:   res.ID,
		ServiceOptions: map[string]bool{"drive_thru": true},
	})
	if err == nil {
		t.Fatalf("expected unknown service option to be rejected")
	}

	updated, err := svc.UpdateServiceOptions(context.Background(), "user-1", ServiceOptionsRequest{
		RestaurantID:   res.ID,
		ServiceOptions: map[string]bool{"delivery": true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.ServiceOptions["delivery"] || !updated.ServiceOptions["dine_in"] {
		t.Fatalf("expected merge to keep existing options, got %v", updated.ServiceOptions)
	}
}

func TestPaymentSettingsRequireOneMethod(t *testing.T) {
	svc, _ := newTestService(auth.RoleProfessional)

	res, _ := svc.Create(context.Background(), "user-1", "Mine", "", "", "", "")

	err := svc.UpdatePaymentSettings(context.Background(), "user-1", res.ID, PaymentSettings{
		AcceptCard:         false,
		AcceptBankTransfer: false,
	})
	if err == nil {
		t.Fatalf("expected rejection when every payment method is disabled")
	}
}
