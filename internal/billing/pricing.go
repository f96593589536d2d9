package billing

// Static pricing table. Prices are NZD per month; yearly billing
// applies roughly two months free.
type Tier struct {
	Plan         string   `json:"plan"`
	Role         string   `json:"role"`
	MonthlyPrice float64  `json:"monthly_price"`
	YearlyPrice  float64  `json:"yearly_price"`
	Currency     string   `json:"currency"`
	Features     []string `json:"features"`
}

var pricingTiers = []Tier{
	{
		Plan:         "trial",
		Role:         "free_trial",
		MonthlyPrice: 0,
		YearlyPrice:  0,
		Currency:     "nzd",
		Features: []string{
			"1 restaurant",
			"Digital menu with QR code",
			"Online ordering",
			"1 AI image enhancement",
			"2 AI image generations",
		},
	},
	{
		Plan:         "starter",
		Role:         "starter",
		MonthlyPrice: 29,
		YearlyPrice:  290,
		Currency:     "nzd",
		Features: []string{
			"1 restaurant",
			"Digital menu with QR code",
			"Online ordering and payments",
			"Menu translation (12 languages)",
			"10 AI image enhancements / month",
			"10 AI image generations / month",
		},
	},
	{
		Plan:         "pro",
		Role:         "professional",
		MonthlyPrice: 59,
		YearlyPrice:  590,
		Currency:     "nzd",
		Features: []string{
			"Up to 3 restaurants",
			"Everything in Starter",
			"Custom theme colors and templates",
			"Copy menus between restaurants",
			"Staff accounts with PIN login",
			"50 AI image enhancements / month",
			"50 AI image generations / month",
		},
	},
	{
		Plan:         "premium",
		Role:         "enterprise",
		MonthlyPrice: 99,
		YearlyPrice:  990,
		Currency:     "nzd",
		Features: []string{
			"Unlimited restaurants",
			"Everything in Pro",
			"Cover images and full branding",
			"Remove powered-by footer",
			"Image library search",
			"Unlimited AI images",
			"Priority support",
		},
	},
}

func PricingTiers() []Tier {
	return pricingTiers
}
