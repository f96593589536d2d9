package auth

// Subscription roles stored on the users table.
const (
	RoleFreeTrial    = "free_trial"
	RoleStarter      = "starter"
	RoleProfessional = "professional"
	RoleEnterprise   = "enterprise"
	RoleAdmin        = "admin"
)

var validRoles = map[string]bool{
	RoleFreeTrial:    true,
	RoleStarter:      true,
	RoleProfessional: true,
	RoleEnterprise:   true,
	RoleAdmin:        true,
}

func IsValidRole(role string) bool {
	return validRoles[role]
}
