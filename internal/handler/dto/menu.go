package dto

// CreateMenuItemRequest is the payload for adding a catalog item.
type CreateMenuItemRequest struct {
	Name     string `json:"name"`
	Recipe   string `json:"recipe"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Price    Price  `json:"price"`
}

// UpdateMenuItemRequest is the payload for editing a catalog item.
type UpdateMenuItemRequest struct {
	Name     string `json:"name"`
	Recipe   string `json:"recipe"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Price    Price  `json:"price"`
}

// CreateReviewRequest is the payload for posting a review.
type CreateReviewRequest struct {
	Name    string  `json:"name"`
	Details string  `json:"details"`
	Rating  float64 `json:"rating"`
}

// AddCartItemRequest is the payload for adding a cart entry.
type AddCartItemRequest struct {
	Email      string `json:"email"`
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	Price      Price  `json:"price"`
}
