package client_test

import (
	"testing"
	"time"

	"github.com/muhammadheryan/mogadishu-rentals/client"
	"github.com/muhammadheryan/mogadishu-rentals/model"
	"github.com/stretchr/testify/assert"
)

func TestPlaceholderURL(t *testing.T) {
	assert.Equal(t, "https://picsum.photos/seed/abc/400/300", client.PlaceholderURL("abc"))
	assert.Equal(t, client.PlaceholderURL("abc"), client.PlaceholderURL("abc"))
	assert.NotEqual(t, client.PlaceholderURL("abc"), client.PlaceholderURL("abd"))
}

func TestProductFromListing(t *testing.T) {
	state := "Banadir"
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("primary photo first, rest keep order", func(t *testing.T) {
		l := newListing("l1", "owner", 800, created,
			model.ListingPhoto{PhotoURL: "https://img/1.jpg", Position: 0},
			model.ListingPhoto{PhotoURL: "https://img/2.jpg", Position: 1},
			model.ListingPhoto{PhotoURL: "https://img/3.jpg", IsPrimary: true, Position: 2},
			model.ListingPhoto{PhotoURL: "", Position: 3},
		)
		l.State = &state

		p := client.ProductFromListing(l)
		assert.Equal(t, []string{"https://img/3.jpg", "https://img/1.jpg", "https://img/2.jpg"}, p.Photos)
		assert.Equal(t, "https://img/3.jpg", p.Image)
		assert.Equal(t, "Maka Al Mukarama, Mogadishu, Banadir", p.Location)
		assert.Equal(t, "Banadir", p.State)
		assert.Equal(t, "owner", p.OwnerID)
		assert.Equal(t, created, p.CreatedAt)
		assert.False(t, p.Saved)
	})

	t.Run("no photos uses the placeholder", func(t *testing.T) {
		l := newListing("l2", "owner", 800, created)
		l.PropertyType = ""
		l.Address = ""

		p := client.ProductFromListing(l)
		assert.Empty(t, p.Photos)
		assert.Equal(t, client.PlaceholderURL("l2"), p.Image)
		assert.Equal(t, "Apartments", p.Category)
		assert.Equal(t, "Mogadishu", p.Location)
	})
}
