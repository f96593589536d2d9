package menu

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
	items map[string]*MenuItem
	sales []*BestSeller
	flags []string
}

func newMockRepository() *mockRepository {
	return &mockRepository{items: map[string]*MenuItem{}}
}

func (m *mockRepository) Save(ctx context.Context, item *MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	copied := *item
	m.items[item.ID] = &copied
	return nil
}

func (m *mockRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*MenuItem, error) {
	var out []*MenuItem
	for _, item := range m.items {
		if item.RestaurantID == restaurantID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*MenuItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *mockRepository) Update(ctx context.Context, item *MenuItem) error {
	if _, ok := m.items[item.ID]; !ok {
		return ErrNotFound
	}
	copied := *item
	m.items[item.ID] = &copied
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockRepository) Stats(ctx context.Context, restaurantID string) (*Stats, error) {
	return &Stats{}, nil
}

func (m *mockRepository) SetImageURL(ctx context.Context, id, imageURL string) error {
	return nil
}

func (m *mockRepository) SalesSince(ctx context.Context, restaurantID string, days, limit int) ([]*BestSeller, error) {
	if limit < len(m.sales) {
		return m.sales[:limit], nil
	}
	return m.sales, nil
}

func (m *mockRepository) SetBestSellerFlags(ctx context.Context, restaurantID string, itemIDs []string) error {
	m.flags = itemIDs
	return nil
}

func (m *mockRepository) ListRestaurantIDs(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var ids []string
	for _, item := range m.items {
		if !seen[item.RestaurantID] {
			seen[item.RestaurantID] = true
			ids = append(ids, item.RestaurantID)
		}
	}
	return ids, nil
}

type mockOwners struct{ owner string }

func (m *mockOwners) IsOwner(ctx context.Context, restaurantID, userID string) (bool, error) {
	return userID == m.owner, nil
}

type mockPlans struct{ role string }

func (m *mockPlans) RoleOf(ctx context.Context, userID string) (string, error) {
	return m.role, nil
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestSaveItemRejectsDefaultRestaurant(t *testing.T) {
	svc := NewService(newMockRepository(), &mockOwners{}, &mockPlans{})

	err := svc.SaveItem(context.Background(), &MenuItem{
		RestaurantID: "default",
		Name:         "Pad Thai",
		Price:        120,
	})
	if err == nil {
		t.Fatalf("expected rejection of restaurant_id=default")
	}
}

func TestSaveItemRejectsNonUUID(t *testing.T) {
	svc := NewService(newMockRepository(), &mockOwners{}, &mockPlans{})

	err := svc.SaveItem(context.Background(), &MenuItem{
		RestaurantID: "not-a-uuid",
		Name:         "Pad Thai",
		Price:        120,
	})
	if err == nil {
		t.Fatalf("expected rejection of non-UUID restaurant_id")
	}
}

func TestListItemsDefaultReturnsEmpty(t *testing.T) {
	svc := NewService(newMockRepository(), &mockOwners{}, &mockPlans{})

	items, err := svc.ListItems(context.Background(), "default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %d items", len(items))
	}
}

func TestUpdateItemPinForcesFlag(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, &mockOwners{}, &mockPlans{})

	restaurantID := uuid.New().String()
	item := &MenuItem{RestaurantID: restaurantID, Name: "Tom Yum", Price: 150}
	if err := svc.SaveItem(context.Background(), item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pin := true
	updated, err := svc.UpdateItem(context.Background(), item.ID, ItemUpdateRequest{BestSellerPin: &pin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.IsBestSeller || !updated.BestSellerPinned {
		t.Fatalf("pinned item should carry the best-seller flag")
	}
}

func TestCopyToRestaurantRequiresEnterprise(t *testing.T) {
	for _, role := range []string{auth.RoleFreeTrial, auth.RoleStarter, auth.RoleProfessional} {
		repo := newMockRepository()
		svc := NewService(repo, &mockOwners{owner: "user-1"}, &mockPlans{role: role})

		restaurantID := uuid.New().String()
		item := &MenuItem{RestaurantID: restaurantID, Name: "Green Curry", Price: 140}
		_ = svc.SaveItem(context.Background(), item)

		_, err := svc.CopyToRestaurant(context.Background(), "user-1", item.ID, uuid.New().String())
		if err == nil {
			t.Fatalf("expected %s plan to be blocked from menu copy", role)
		}
	}
}

func TestCopyToRestaurantClonesItem(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, &mockOwners{owner: "user-1"}, &mockPlans{role: auth.RoleEnterprise})

	source := uuid.New().String()
	target := uuid.New().String()
	item := &MenuItem{
		RestaurantID: source,
		Name:         "Green Curry",
		Price:        140,
		MeatOptions:  []string{"chicken", "pork"},
		IsBestSeller: true,
	}
	_ = svc.SaveItem(context.Background(), item)

	copied, err := svc.CopyToRestaurant(context.Background(), "user-1", item.ID, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if copied.ID == item.ID {
		t.Fatalf("copy must get a fresh id")
	}
	if copied.RestaurantID != target {
		t.Fatalf("copy must land in the target restaurant")
	}
	if copied.IsBestSeller {
		t.Fatalf("copy must not inherit the best-seller flag")
	}
	if len(copied.MeatOptions) != 2 {
		t.Fatalf("copy must keep the option lists")
	}
}

func TestUpdateBestSellersFlagsOnlySoldItems(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, &mockOwners{}, &mockPlans{})

	restaurantID := uuid.New().String()
	repo.sales = []*BestSeller{
		{MenuItem: MenuItem{ID: "a"}, TotalSold: 12},
		{MenuItem: MenuItem{ID: "b"}, TotalSold: 3},
		{MenuItem: MenuItem{ID: "c"}, TotalSold: 0},
	}

	flagged, err := svc.UpdateBestSellers(context.Background(), restaurantID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flagged != 2 {
		t.Fatalf("expected 2 flagged items, got %d", flagged)
	}
	if len(repo.flags) != 2 || repo.flags[0] != "a" || repo.flags[1] != "b" {
		t.Fatalf("unexpected flag set: %v", repo.flags)
	}
}

func TestGenerateQR(t *testing.T) {
	qr, err := GenerateQR("https://smartmenu.example.com/menu/abc", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qr == "" || qr[:22] != "data:image/png;base64," {
		t.Fatalf("expected a png data url, got %.40s", qr)
	}

	if _, err := GenerateQR("", 256); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
