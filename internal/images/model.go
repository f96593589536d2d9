package images

import "time"

const (
	SourceGenerated = "generated"
	SourceEnhanced  = "enhanced"
	SourceUploaded  = "uploaded"
)

// LibraryImage is one stored image, tied to the restaurant it was
// made for.
type LibraryImage struct {
	ID           int       `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	URL          string    `json:"url"`
	Source       string    `json:"source"`
	Prompt       string    `json:"prompt,omitempty"`
	MenuItemName string    `json:"menu_item_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
