package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/auth"
)

// FeatureStatus reports how much of a limited feature remains.
type FeatureStatus struct {
	Used      int  `json:"used"`
	Limit     int  `json:"limit"`
	Remaining int  `json:"remaining"`
	Unlimited bool `json:"unlimited"`
}

type TrialStatus struct {
	UserID   string                   `json:"user_id"`
	Role     string                   `json:"role"`
	Plan     string                   `json:"plan"`
	Features map[string]FeatureStatus `json:"features"`
}

// LimitExceededError carries the payload the frontend shows when a
// user runs out of a limited feature.
type LimitExceededError struct {
	Feature   string `json:"feature"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%s limit reached (%d of %d used)", e.Feature, e.Used, e.Limit)
}

// usageWindowStart is the moment the current budget began. Trial
// budgets never replenish; paying plans reset each calendar month.
func usageWindowStart(role string, now time.Time) time.Time {
	if role == auth.RoleFreeTrial {
		return time.Time{}
	}
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s *Service) featureStatus(ctx context.Context, userID, role, feature string) (FeatureStatus, error) {
	limit, ok := limitForFeature(role, feature)
	if !ok {
		return FeatureStatus{}, fmt.Errorf("unknown feature %q", feature)
	}

	used, err := s.repo.GetFeatureUsage(ctx, userID, feature, usageWindowStart(role, time.Now()))
	if err != nil {
		return FeatureStatus{}, err
	}

	st := FeatureStatus{Used: used, Limit: limit}
	if limit < 0 {
		st.Unlimited = true
	} else {
		st.Remaining = limit - used
		if st.Remaining < 0 {
			st.Remaining = 0
		}
	}
	return st, nil
}

func (s *Service) GetTrialStatus(ctx context.Context, userID string) (*TrialStatus, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &TrialStatus{
		UserID:   userID,
		Role:     account.Role,
		Plan:     PlanForRole(account.Role),
		Features: map[string]FeatureStatus{},
	}
	for _, feature := range []string{FeatureImageEnhancement, FeatureImageGeneration} {
		fs, err := s.featureStatus(ctx, userID, account.Role, feature)
		if err != nil {
			return nil, err
		}
		status.Features[feature] = fs
	}
	return status, nil
}

// InitializeTrial zeroes the usage counters. Called once when a new
// account first opens the dashboard.
func (s *Service) InitializeTrial(ctx context.Context, userID string) error {
	if _, err := s.repo.GetAccount(ctx, userID); err != nil {
		return err
	}
	return s.repo.ResetUsage(ctx, userID)
}

// CheckFeature returns a LimitExceededError when the feature budget
// is spent. Callers run the feature first and record usage with
// RecordUsage only after it succeeded.
func (s *Service) CheckFeature(ctx context.Context, userID, feature string) error {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return err
	}

	st, err := s.featureStatus(ctx, userID, account.Role, feature)
	if err != nil {
		return err
	}
	if st.Unlimited {
		return nil
	}
	if st.Remaining <= 0 {
		return &LimitExceededError{
			Feature:   feature,
			Used:      st.Used,
			Limit:     st.Limit,
			Remaining: 0,
		}
	}
	return nil
}

// RecordUsage increments the counter after a successful use. A stale
// counter from a previous month restarts at one for paying plans.
func (s *Service) RecordUsage(ctx context.Context, userID, feature string) error {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.IncrementUsage(ctx, userID, feature, usageWindowStart(account.Role, time.Now()))
}
