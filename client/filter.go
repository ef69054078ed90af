package client

import (
	"fmt"
	"strings"

	"github.com/muhammadheryan/mogadishu-rentals/constant"
)

// PageSize is how many cards the feed shows before "load more".
const PageSize = 20

const filterAll = "All"

type PriceRange string

const (
	PriceAny        PriceRange = "all"
	PriceUnder500   PriceRange = "under500"
	Price500To1000  PriceRange = "500-1000"
	Price1000To2000 PriceRange = "1000-2000"
	PriceOver2000   PriceRange = "over2000"
)

// PriceRanges lists the buckets in display order.
var PriceRanges = []PriceRange{PriceAny, PriceUnder500, Price500To1000, Price1000To2000, PriceOver2000}

func ParsePriceRange(s string) (PriceRange, error) {
	if s == "" {
		return PriceAny, nil
	}
	for _, p := range PriceRanges {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown price range %q", s)
}

// Matches reports whether price falls in the bucket. Bucket edges follow the
// labels: 500 and 1000 belong to 500-1000, 2000 belongs to 1000-2000.
func (p PriceRange) Matches(price float64) bool {
	switch p {
	case PriceUnder500:
		return price < 500
	case Price500To1000:
		return price >= 500 && price <= 1000
	case Price1000To2000:
		return price > 1000 && price <= 2000
	case PriceOver2000:
		return price > 2000
	default:
		return true
	}
}

// Filter is the home feed filter bar. Empty or "All" category and location
// match everything.
type Filter struct {
	Search   string
	Category string
	Location string
	Price    PriceRange
}

func (f Filter) Matches(p Product) bool {
	if f.Category != "" && f.Category != filterAll && p.Category != f.Category {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Location != "" && f.Location != filterAll {
		loc := strings.ToLower(f.Location)
		if !strings.Contains(strings.ToLower(p.Location), loc) && !strings.Contains(strings.ToLower(p.Address), loc) {
			return false
		}
	}
	return f.Price.Matches(p.Price)
}

// Apply keeps the matching products in their original order.
func (f Filter) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Paginate returns the first pages*PageSize products and whether more remain.
func Paginate(products []Product, pages int) ([]Product, bool) {
	if pages < 1 {
		pages = 1
	}
	n := pages * PageSize
	if n >= len(products) {
		return products, false
	}
	return products[:n], true
}

// Categories are the property types offered by the filter bar, "All" first.
func Categories() []string {
	return append([]string{filterAll}, constant.Categories...)
}

func Districts() []string {
	return append([]string{filterAll}, constant.MogadishuDistricts...)
}
