package service

import (
	"fmt"
	"slices"

	"github.com/niksmo/shop-fusion/internal/core/domain"
)

// Products returns the catalog in insertion order, filtered by category.
// An empty category or [domain.AllCategories] matches everything.
func (s *Service) Products(category string) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productsLocked(category)
}

func (s *Service) productsLocked(category string) []domain.Product {
	out := make([]domain.Product, 0, len(s.st.products))
	for _, p := range s.st.products {
		if p.InCategory(category) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Categories returns distinct categories in first-seen order.
func (s *Service) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, p := range s.st.products {
		if !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}

func (s *Service) Product(id string) (domain.Product, error) {
	const op = "Service.Product"

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.productLocked(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}
	return p.Clone(), nil
}

func (s *Service) productLocked(id string) (domain.Product, bool) {
	i := slices.IndexFunc(s.st.products, func(p domain.Product) bool {
		return p.ID == id
	})
	if i < 0 {
		return domain.Product{}, false
	}
	return s.st.products[i], true
}

// AddProduct appends p to the catalog. An empty id is generated; an id
// already in use is rejected with [domain.ErrDuplicateProduct].
func (s *Service) AddProduct(p domain.Product) (domain.Product, error) {
	const op = "Service.AddProduct"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdminLocked(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.addProductLocked(p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// addProductLocked rejects an id already in the catalog.
func (s *Service) addProductLocked(p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = s.newID()
	}
	if _, ok := s.productLocked(p.ID); ok {
		return domain.Product{}, domain.ErrDuplicateProduct
	}
	p = p.Clone()
	s.st.products = append(s.st.products, p)
	return p.Clone(), nil
}

func (s *Service) DeleteProduct(id string) error {
	const op = "Service.DeleteProduct"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdminLocked(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n := len(s.st.products)
	s.st.products = slices.DeleteFunc(s.st.products, func(p domain.Product) bool {
		return p.ID == id
	})
	if len(s.st.products) == n {
		return fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}
	return nil
}
