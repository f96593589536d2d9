package menu

import "time"

type MenuItem struct {
	ID               string    `json:"id"`
	RestaurantID     string    `json:"restaurant_id"`
	Name             string    `json:"name"`
	NameEN           string    `json:"name_en,omitempty"`
	Description      string    `json:"description,omitempty"`
	DescriptionEN    string    `json:"description_en,omitempty"`
	Category         string    `json:"category,omitempty"`
	Price            float64   `json:"price"`
	ImageURL         string    `json:"image_url,omitempty"`
	MeatOptions      []string  `json:"meat_options,omitempty"`
	AddonOptions     []string  `json:"addon_options,omitempty"`
	IsBestSeller     bool      `json:"is_best_seller"`
	BestSellerPinned bool      `json:"best_seller_pinned"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Stats struct {
	TotalItems      int `json:"total_items"`
	Categories      int `json:"categories"`
	ItemsWithImages int `json:"items_with_images"`
}

// BestSeller is a menu item with its sales aggregate over the window.
type BestSeller struct {
	MenuItem
	TotalSold int     `json:"total_sold"`
	Revenue   float64 `json:"revenue"`
}
