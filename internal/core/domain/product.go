package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string
	Name          string
	Brand         string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Discount      int
	Category      string
	Description   string
	Images        []string
	Sizes         []string
	Colors        []string
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	p.Images = slices.Clone(p.Images)
	p.Sizes = slices.Clone(p.Sizes)
	p.Colors = slices.Clone(p.Colors)
	return p
}

// AllCategories matches every product in a category filter.
const AllCategories = "All"

func (p Product) InCategory(category string) bool {
	return category == "" || category == AllCategories || p.Category == category
}
