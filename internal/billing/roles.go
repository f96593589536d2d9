package billing

import "github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/auth"

// roleToPlan maps an account role to the plan name shown to the
// frontend and to Stripe metadata.
var roleToPlan = map[string]string{
	auth.RoleFreeTrial:    "trial",
	auth.RoleStarter:      "starter",
	auth.RoleProfessional: "pro",
	auth.RoleEnterprise:   "premium",
	auth.RoleAdmin:        "premium",
}

// FeatureLimits are monthly AI usage caps per role. -1 means
// unlimited.
type FeatureLimits struct {
	ImageEnhancement int `json:"image_enhancement"`
	ImageGeneration  int `json:"image_generation"`
}

var roleLimits = map[string]FeatureLimits{
	auth.RoleFreeTrial:    {ImageEnhancement: 1, ImageGeneration: 2},
	auth.RoleStarter:      {ImageEnhancement: 10, ImageGeneration: 10},
	auth.RoleProfessional: {ImageEnhancement: 50, ImageGeneration: 50},
	auth.RoleEnterprise:   {ImageEnhancement: -1, ImageGeneration: -1},
	auth.RoleAdmin:        {ImageEnhancement: -1, ImageGeneration: -1},
}

func PlanForRole(role string) string {
	if plan, ok := roleToPlan[role]; ok {
		return plan
	}
	return "trial"
}

func LimitsForRole(role string) FeatureLimits {
	if limits, ok := roleLimits[role]; ok {
		return limits
	}
	return roleLimits[auth.RoleFreeTrial]
}

func limitForFeature(role, feature string) (int, bool) {
	limits := LimitsForRole(role)
	switch feature {
	case FeatureImageEnhancement:
		return limits.ImageEnhancement, true
	case FeatureImageGeneration:
		return limits.ImageGeneration, true
	default:
		return 0, false
	}
}
