package translate

import "time"

// MenuTranslation is one cached translation of one menu item
// into one target language.
type MenuTranslation struct {
	ID           int       `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	MenuID       string    `json:"menu_id"`
	LanguageCode string    `json:"language_code"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	MeatOptions  []string  `json:"meat_options,omitempty"`
	AddonOptions []string  `json:"addon_options,omitempty"`
	SourceHash   string    `json:"source_hash"`
	UpdatedAt    time.Time `json:"updated_at"`
}
