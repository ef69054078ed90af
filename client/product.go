package client

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/muhammadheryan/mogadishu-rentals/constant"
	"github.com/muhammadheryan/mogadishu-rentals/model"
)

// Product is the view-facing projection of a listing. Saved is filled in
// from the wishlist set each time a snapshot is taken and never stored.
type Product struct {
	ID          string
	OwnerID     string
	Title       string
	Price       float64
	Location    string
	Address     string
	City        string
	State       string
	Image       string
	Photos      []string
	Category    string
	Description string
	Bedrooms    int
	Bathrooms   int
	AreaSqft    *float64
	IsVisible   bool
	IsDeleted   bool
	Verified    bool
	CreatedAt   time.Time
	Saved       bool
}

// PlaceholderURL is the image used for a listing without photos. It only
// depends on the id.
func PlaceholderURL(listingID string) string {
	return fmt.Sprintf(constant.PlaceholderURLFormat, listingID)
}

// ProductFromListing builds the projection: primary photo first, the rest in
// their stored order, and the placeholder when there is nothing to show.
func ProductFromListing(l model.Listing) Product {
	photos := make([]model.ListingPhoto, 0, len(l.Photos))
	for _, p := range l.Photos {
		if p.PhotoURL != "" {
			photos = append(photos, p)
		}
	}
	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].IsPrimary && !photos[j].IsPrimary
	})

	urls := make([]string, 0, len(photos))
	for _, p := range photos {
		urls = append(urls, p.PhotoURL)
	}

	image := PlaceholderURL(l.ID)
	if len(urls) > 0 {
		image = urls[0]
	}

	state := ""
	if l.State != nil {
		state = *l.State
	}

	category := l.PropertyType
	if category == "" {
		category = constant.DefaultCategory
	}

	return Product{
		ID:          l.ID,
		OwnerID:     l.UserID,
		Title:       l.Title,
		Price:       l.Price,
		Location:    joinNonEmpty(", ", l.Address, l.City, state),
		Address:     l.Address,
		City:        l.City,
		State:       state,
		Image:       image,
		Photos:      urls,
		Category:    category,
		Description: l.Description,
		Bedrooms:    l.Bedrooms,
		Bathrooms:   l.Bathrooms,
		AreaSqft:    l.AreaSqft,
		IsVisible:   l.IsVisible,
		IsDeleted:   l.IsDeleted,
		Verified:    true,
		CreatedAt:   l.CreatedAt,
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
