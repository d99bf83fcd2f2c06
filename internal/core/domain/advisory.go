package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

const DefaultDraftImage = "https://images.unsplash.com/photo-1515886657613-9f3515b0c78f?q=80&w=2020&auto=format&fit=crop"

// ProductDraft is the admin panel's unsaved product form.
type ProductDraft struct {
	Name          string
	Brand         string
	Category      string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Discount      int
	Description   string
	Sizes         []string
	Colors        []string
	Images        []string
}

func NewProductDraft() ProductDraft {
	return ProductDraft{
		Category:      "Women",
		Price:         decimal.Zero,
		OriginalPrice: decimal.Zero,
		Sizes:         []string{"S", "M", "L"},
		Colors:        []string{"Black"},
		Images:        []string{DefaultDraftImage},
	}
}

func (d ProductDraft) Clone() ProductDraft {
	d.Sizes = slices.Clone(d.Sizes)
	d.Colors = slices.Clone(d.Colors)
	d.Images = slices.Clone(d.Images)
	return d
}

func (d ProductDraft) ImagePrompt() string {
	return d.Brand + " " + d.Name + " " + d.Category
}

func (d ProductDraft) ToProduct(id string) Product {
	d = d.Clone()
	return Product{
		ID:            id,
		Name:          d.Name,
		Brand:         d.Brand,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Discount:      d.Discount,
		Category:      d.Category,
		Description:   d.Description,
		Images:        d.Images,
		Sizes:         d.Sizes,
		Colors:        d.Colors,
	}
}

type Author string

const (
	AuthorUser Author = "user"
	AuthorAI   Author = "ai"
)

type ChatMessage struct {
	Author Author
	Text   string
}

const StylistGreeting = "Hello! I am your personal AI stylist. Looking for an outfit for a specific occasion?"

// ClientEvent is a user activity notification.
type ClientEvent struct {
	Kind      string
	Email     string
	ProductID string
	Query     string
}

const (
	EventUserRegistered = "user_registered"
	EventProductViewed  = "product_viewed"
	EventStylistQueried = "stylist_queried"
)
