package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/auth"
)

type fakeRepo struct {
	accounts map[string]*Account
	usage    map[string]map[string]*Usage
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accounts: map[string]*Account{},
		usage:    map[string]map[string]*Usage{},
	}
}

func (f *fakeRepo) GetAccount(ctx context.Context, userID string) (*Account, error) {
	a, ok := f.accounts[userID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

func (f *fakeRepo) SetRole(ctx context.Context, userID, role string) error {
	a, ok := f.accounts[userID]
	if !ok {
		return ErrAccountNotFound
	}
	a.Role = role
	return nil
}

func (f *fakeRepo) SetSubscription(ctx context.Context, userID, customerID, subscriptionID string) error {
	a, ok := f.accounts[userID]
	if !ok {
		return ErrAccountNotFound
	}
	a.StripeCustomerID = customerID
	a.SubscriptionID = subscriptionID
	return nil
}

func (f *fakeRepo) ListAccounts(ctx context.Context) ([]*Account, error) {
	var out []*Account
	for _, a := range f.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) GetUsage(ctx context.Context, userID string) ([]*Usage, error) {
	var out []*Usage
	for _, u := range f.usage[userID] {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeRepo) GetFeatureUsage(ctx context.Context, userID, feature string, since time.Time) (int, error) {
	u, ok := f.usage[userID][feature]
	if !ok {
		return 0, nil
	}
	if !since.IsZero() && u.PeriodStart.Before(since) {
		return 0, nil
	}
	return u.UsedCount, nil
}

func (f *fakeRepo) IncrementUsage(ctx context.Context, userID, feature string, resetBefore time.Time) error {
	if f.usage[userID] == nil {
		f.usage[userID] = map[string]*Usage{}
	}
	u, ok := f.usage[userID][feature]
	if !ok {
		f.usage[userID][feature] = &Usage{Feature: feature, UsedCount: 1, PeriodStart: time.Now()}
		return nil
	}
	if !resetBefore.IsZero() && u.PeriodStart.Before(resetBefore) {
		u.UsedCount = 1
		u.PeriodStart = time.Now()
		return nil
	}
	u.UsedCount++
	return nil
}

func (f *fakeRepo) ResetUsage(ctx context.Context, userID string) error {
	f.usage[userID] = map[string]*Usage{}
	return nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, NewStripeClient(), nil, nil, nil)
}

func TestCheckFeatureEnforcesTrialLimits(t *testing.T) {
	repo := newFakeRepo()
	repo.accounts["u1"] = &Account{ID: "u1", Role: auth.RoleFreeTrial}
	svc := newTestService(repo)

	// Free trial allows one enhancement.
	require.NoError(t, svc.CheckFeature(context.Background(), "u1", FeatureImageEnhancement))
	require.NoError(t, svc.RecordUsage(context.Background(), "u1", FeatureImageEnhancement))

	err := svc.CheckFeature(context.Background(), "u1", FeatureImageEnhancement)
	require.Error(t, err)

	var limitErr *LimitExceededError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 1, limitErr.Limit)
	assert.Equal(t, 1, limitErr.Used)
	assert.Equal(t, 0, limitErr.Remaining)

	// Generations have their own budget of two.
	require.NoError(t, svc.CheckFeature(context.Background(), "u1", FeatureImageGeneration))
}

func TestCheckFeatureUnlimitedForEnterprise(t *testing.T) {
	repo := newFakeRepo()
	repo.accounts["u1"] = &Account{ID: "u1", Role: auth.RoleEnterprise}
	svc := newTestService(repo)

	for i := 0; i < 20; i++ {
		require.NoError(t, svc.CheckFeature(context.Background(), "u1", FeatureImageGeneration))
		require.NoError(t, svc.RecordUsage(context.Background(), "u1", FeatureImageGeneration))
	}
}

func TestPaidPlanUsageReplenishesMonthly(t *testing.T) {
	repo := newFakeRepo()
	repo.accounts["u1"] = &Account{ID: "u1", Role: auth.RoleStarter}
	svc := newTestService(repo)

	// Spend the whole starter budget.
	for i := 0; i < 10; i++ {
		require.NoError(t, svc.CheckFeature(context.Background(), "u1", FeatureImageGeneration))
		require.NoError(t, svc.RecordUsage(context.Background(), "u1", FeatureImageGeneration))
	}
	require.Error(t, svc.CheckFeature(context.Background(), "u1", FeatureImageGeneration))

	// Counters from a previous month no longer count against the budget.
	repo.usage["u1"][FeatureImageGeneration].PeriodStart = time.Now().AddDate(0, -1, 0)

	require.NoError(t, svc.CheckFeature(context.Background(), "u1", FeatureImageGeneration))

	status, err := svc.GetTrialStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, status.Features[FeatureImageGeneration].Used)
	assert.Equal(t, 10, status.Features[FeatureImageGeneration].Remaining)

	// The next recorded use restarts the counter at one.
	require.NoError(t, svc.RecordUsage(context.Background(), "u1", FeatureImageGeneration))
	assert.Equal(t, 1, repo.usage["u1"][FeatureImageGeneration].UsedCount)
}

func TestTrialUsageNeverReplenishes(t *testing.T) {
	repo := newFakeRepo()
	repo.accounts["u1"] = &Account{ID: "u1", Role: auth.RoleFreeTrial}
	svc := newTestService(repo)

	require.NoError(t, svc.RecordUsage(context.Background(), "u1", FeatureImageEnhancement))
	require.Error(t, svc.CheckFeature(context.Background(), "u1", FeatureImageEnhancement))

	// Even a months-old trial counter keeps counting.
	repo.usage["u1"][FeatureImageEnhancement].PeriodStart = time.Now().AddDate(0, -3, 0)
	require.Error(t, svc.CheckFeature(context.Background(), "u1", FeatureImageEnhancement))
}

func TestTrialStatusReportsRemaining(t *testing.T) {
	repo := newFakeRepo()
	repo.accounts["u1"] = &Account{ID: "u1", Role: auth.RoleFreeTrial}
	svc := newTestService(repo)

	require.NoError(t, svc.RecordUsage(context.Background(), "u1", FeatureImageGeneration))

	status, err := svc.GetTrialStatus(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "trial", status.Plan)
	assert.Equal(t, 1, status.Features[FeatureImageGeneration].Used)
	assert.Equal(t, 1, status.Features[FeatureImageGeneration].Remaining)
	assert.Equal(t, 1, status.Features[FeatureImageEnhancement].Remaining)
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	repo := newFakeRepo()
	repo.accounts["u1"] = &Account{ID: "u1", Role: auth.RoleFreeTrial}
	svc := newTestService(repo)

	assert.Error(t, svc.SetRole(context.Background(), "u1", "galactic_overlord"))
	assert.NoError(t, svc.SetRole(context.Background(), "u1", auth.RoleProfessional))
	assert.Equal(t, auth.RoleProfessional, repo.accounts["u1"].Role)
}

func TestRoleOf(t *testing.T) {
	repo := newFakeRepo()
	repo.accounts["u1"] = &Account{ID: "u1", Role: auth.RoleStarter}
	svc := newTestService(repo)

	role, err := svc.RoleOf(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleStarter, role)

	_, err = svc.RoleOf(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
