package staff

import "time"

const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleChef    = "chef"
	RoleWaiter  = "waiter"
	RoleCashier = "cashier"
)

var validRoles = map[string]bool{
	RoleOwner:   true,
	RoleManager: true,
	RoleChef:    true,
	RoleWaiter:  true,
	RoleCashier: true,
}

// Member is a staff account scoped to one restaurant. Staff log in
// with a 6 digit PIN on the shared tablet, not with email/password.
type Member struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PINHash      string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Activity struct {
	ID           int       `json:"id"`
	StaffID      string    `json:"staff_id"`
	StaffName    string    `json:"staff_name,omitempty"`
	RestaurantID string    `json:"restaurant_id"`
	Action       string    `json:"action"`
	CreatedAt    time.Time `json:"created_at"`
}
