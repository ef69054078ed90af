package model

import "time"

// WishlistItem is one membership row. The (user_id, listing_id) pair is unique.
type WishlistItem struct {
	UserID    string    `db:"user_id" json:"user_id"`
	ListingID string    `db:"listing_id" json:"listing_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type WishlistResponse struct {
	ListingIDs []string `json:"listing_ids"`
}
