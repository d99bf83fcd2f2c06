package service

import (
	"fmt"

	"github.com/niksmo/shop-fusion/internal/core/domain"
)

func (s *Service) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartViewLocked()
}

func (s *Service) cartViewLocked() CartView {
	return CartView{
		Lines:  s.st.cart.Clone(),
		Totals: s.st.cart.Totals(),
	}
}

// AddToCart merges the product into the cart line keyed by
// (product id, size, color). Size and color are not checked against the
// product's declared sets.
func (s *Service) AddToCart(p domain.Product, size, color string) (CartView, error) {
	const op = "Service.AddToCart"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.addToCartLocked(p, size, color); err != nil {
		return s.cartViewLocked(), fmt.Errorf("%s: %w", op, err)
	}
	return s.cartViewLocked(), nil
}

// AddToCartByID looks the product up in the catalog and adds it.
func (s *Service) AddToCartByID(productID, size, color string) (CartView, error) {
	const op = "Service.AddToCartByID"

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.productLocked(productID)
	if !ok {
		return s.cartViewLocked(), fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}
	if err := s.addToCartLocked(p, size, color); err != nil {
		return s.cartViewLocked(), fmt.Errorf("%s: %w", op, err)
	}
	return s.cartViewLocked(), nil
}

func (s *Service) addToCartLocked(p domain.Product, size, color string) error {
	if size == "" || color == "" {
		return domain.ErrSelectionRequired
	}
	s.st.cart = s.st.cart.Add(p, size, color)
	return nil
}

// RemoveFromCart removes the matching line. A missing line leaves the cart
// unchanged and reports [domain.ErrLineNotFound].
func (s *Service) RemoveFromCart(productID, size, color string) (CartView, error) {
	const op = "Service.RemoveFromCart"

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.st.cart.Remove(domain.LineKey{
		ProductID: productID, Size: size, Color: color,
	})
	s.st.cart = cart
	if err != nil {
		return s.cartViewLocked(), fmt.Errorf("%s: %w", op, err)
	}
	return s.cartViewLocked(), nil
}

func (s *Service) UpdateCartQuantity(
	productID, size, color string, delta int,
) (CartView, error) {
	const op = "Service.UpdateCartQuantity"

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.st.cart.UpdateQuantity(domain.LineKey{
		ProductID: productID, Size: size, Color: color,
	}, delta)
	s.st.cart = cart
	if err != nil {
		return s.cartViewLocked(), fmt.Errorf("%s: %w", op, err)
	}
	return s.cartViewLocked(), nil
}

func (s *Service) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.cart = nil
}
