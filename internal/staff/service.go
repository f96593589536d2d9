package staff

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Owners answers whether a user owns a restaurant.
type Owners interface {
	IsOwner(ctx context.Context, restaurantID, userID string) (bool, error)
}

var pinPattern = regexp.MustCompile(`^\d{6}$`)

type Service struct {
	repo   Repository
	owners Owners
}

func NewService(repo Repository, owners Owners) *Service {
	return &Service{repo: repo, owners: owners}
}

func (s *Service) requireOwned(ctx context.Context, restaurantID, userID string) error {
	owned, err := s.owners.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return errors.New("restaurant does not belong to this account")
	}
	return nil
}

func hashPIN(pin string) (string, error) {
	if !pinPattern.MatchString(pin) {
		return "", errors.New("pin must be exactly 6 digits")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// --------------------------------------------------
// CRUD
// --------------------------------------------------

type CreateRequest struct {
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PIN          string `json:"pin"`
}

func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Member, error) {
	if err := s.requireOwned(ctx, req.RestaurantID, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("staff name is required")
	}
	if !validRoles[req.Role] {
		return nil, errors.New("role must be owner, manager, chef, waiter or cashier")
	}

	hash, err := hashPIN(req.PIN)
	if err != nil {
		return nil, err
	}

	member := &Member{
		ID:           uuid.New().String(),
		RestaurantID: req.RestaurantID,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		PINHash:      hash,
		IsActive:     true,
	}
	if err := s.repo.Save(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// List returns the active staff of a restaurant. PIN hashes never
// serialize.
func (s *Service) List(ctx context.Context, restaurantID, userID string) ([]*Member, error) {
	if err := s.requireOwned(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListActive(ctx, restaurantID)
}

type UpdateRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	PIN      *string `json:"pin"`
	IsActive *bool   `json:"is_active"`
}

func (s *Service) Update(ctx context.Context, staffID, userID string, req UpdateRequest) (*Member, error) {
	member, err := s.repo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwned(ctx, member.RestaurantID, userID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, errors.New("staff name is required")
		}
		member.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		if !validRoles[*req.Role] {
			return nil, errors.New("role must be owner, manager, chef, waiter or cashier")
		}
		member.Role = *req.Role
	}
	if req.PIN != nil {
		hash, err := hashPIN(*req.PIN)
		if err != nil {
			return nil, err
		}
		member.PINHash = hash
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Deactivate soft-deletes a staff member. The row stays for the
// activity log, but the PIN stops working.
func (s *Service) Deactivate(ctx context.Context, staffID, userID string) error {
	member, err := s.repo.GetByID(ctx, staffID)
	if err != nil {
		return err
	}
	if err := s.requireOwned(ctx, member.RestaurantID, userID); err != nil {
		return err
	}

	member.IsActive = false
	return s.repo.Update(ctx, member)
}

// --------------------------------------------------
// PIN login
// --------------------------------------------------

// VerifyPIN checks a 6 digit PIN against every active staff member of
// the restaurant and returns the matching member. A successful match
// is written to the activity log.
func (s *Service) VerifyPIN(ctx context.Context, restaurantID, pin string) (*Member, error) {
	if !pinPattern.MatchString(pin) {
		return nil, errors.New("pin must be exactly 6 digits")
	}

	members, err := s.repo.ListActive(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	for _, m := range members {
		if bcrypt.CompareHashAndPassword([]byte(m.PINHash), []byte(pin)) == nil {
			if err := s.repo.LogActivity(ctx, m.ID, restaurantID, "staff_login"); err != nil {
				return nil, err
			}
			return m, nil
		}
	}
	return nil, errors.New("invalid pin")
}

func (s *Service) RecentActivity(ctx context.Context, restaurantID, userID string) ([]*Activity, error) {
	if err := s.requireOwned(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	return s.repo.RecentActivity(ctx, restaurantID, 50)
}
