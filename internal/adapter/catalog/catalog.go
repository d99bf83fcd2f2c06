// Package catalog provides the storefront's seed products.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/niksmo/shop-fusion/internal/core/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var seed []byte

var ErrDuplicateID = errors.New("duplicate product id")

type productYAML struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Brand         string   `yaml:"brand"`
	Price         int64    `yaml:"price"`
	OriginalPrice int64    `yaml:"original_price"`
	Discount      int      `yaml:"discount"`
	Category      string   `yaml:"category"`
	Description   string   `yaml:"description"`
	Images        []string `yaml:"images"`
	Sizes         []string `yaml:"sizes"`
	Colors        []string `yaml:"colors"`
}

type catalogYAML struct {
	Products []productYAML `yaml:"products"`
}

// Seed returns the embedded catalog.
func Seed() ([]domain.Product, error) {
	return Parse(seed)
}

// Parse decodes a YAML catalog. Product ids must be non-empty and unique.
func Parse(b []byte) ([]domain.Product, error) {
	const op = "catalog.Parse"

	var c catalogYAML
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seen := make(map[string]struct{}, len(c.Products))
	ps := make([]domain.Product, 0, len(c.Products))
	for i, p := range c.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("%s: product %d has empty id", op, i)
		}
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("%s: %w: %q", op, ErrDuplicateID, p.ID)
		}
		seen[p.ID] = struct{}{}
		ps = append(ps, p.toDomain())
	}
	return ps, nil
}

func (p productYAML) toDomain() domain.Product {
	return domain.Product{
		ID:            p.ID,
		Name:          p.Name,
		Brand:         p.Brand,
		Price:         decimal.NewFromInt(p.Price),
		OriginalPrice: decimal.NewFromInt(p.OriginalPrice),
		Discount:      p.Discount,
		Category:      p.Category,
		Description:   p.Description,
		Images:        p.Images,
		Sizes:         p.Sizes,
		Colors:        p.Colors,
	}
}
