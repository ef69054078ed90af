package model

import "time"

// ListingEntity represents the listing table entity.
type ListingEntity struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	Title        string    `db:"title" json:"title"`
	Price        float64   `db:"price" json:"price"`
	Address      string    `db:"address" json:"address"`
	City         string    `db:"city" json:"city"`
	State        *string   `db:"state" json:"state,omitempty"`
	PropertyType string    `db:"property_type" json:"property_type"`
	Description  string    `db:"description" json:"description"`
	Bedrooms     int       `db:"bedrooms" json:"bedrooms"`
	Bathrooms    int       `db:"bathrooms" json:"bathrooms"`
	AreaSqft     *float64  `db:"area_sqft" json:"area_sqft,omitempty"`
	IsVisible    bool      `db:"is_visible" json:"is_visible"`
	IsDeleted    bool      `db:"is_deleted" json:"is_deleted"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ListingPhoto is a row of listing_photos. Position keeps upload order.
type ListingPhoto struct {
	ID        uint64 `db:"id" json:"-"`
	ListingID string `db:"listing_id" json:"listing_id"`
	PhotoURL  string `db:"photo_url" json:"photo_url"`
	IsPrimary bool   `db:"is_primary" json:"is_primary"`
	Position  int    `db:"position" json:"position"`
}

// Listing is a listing joined with its photos.
type Listing struct {
	ListingEntity
	Photos []ListingPhoto `json:"listing_photos"`
}

// ListingFilter narrows listing lookups. Zero values are ignored.
type ListingFilter struct {
	ID             string
	UserID         string
	OnlyVisible    bool
	IncludeDeleted bool
}

type CreateListingRequest struct {
	UserID       string   `json:"-"`
	Title        string   `json:"title" validate:"required,max=200"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	Address      string   `json:"address" validate:"max=255"`
	City         string   `json:"city" validate:"max=100"`
	State        *string  `json:"state,omitempty" validate:"omitempty,max=100"`
	PropertyType string   `json:"property_type" validate:"category"`
	Description  string   `json:"description" validate:"max=5000"`
	Bedrooms     *int     `json:"bedrooms,omitempty" validate:"omitempty,gte=0,lte=50"`
	Bathrooms    *int     `json:"bathrooms,omitempty" validate:"omitempty,gte=0,lte=50"`
	AreaSqft     *float64 `json:"area_sqft,omitempty" validate:"omitempty,gt=0"`
	IsVisible    *bool    `json:"is_visible,omitempty"`
}

type VisibilityRequest struct {
	IsVisible bool `json:"is_visible"`
}

type PhotoInput struct {
	PhotoURL  string `json:"photo_url" validate:"required,url"`
	IsPrimary bool   `json:"is_primary"`
}

type AddPhotosRequest struct {
	Photos []PhotoInput `json:"photos" validate:"required,min=1,dive"`
}

type UploadPhotoResponse struct {
	Path      string `json:"path"`
	PublicURL string `json:"public_url"`
}
