package service

import (
	"context"
	"fmt"

	"github.com/niksmo/shop-fusion/internal/core/domain"
)

func (s *Service) Navigation() domain.Navigation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.nav
}

// SetView replaces the current view without checking the target's
// preconditions; use [Service.ProceedToCheckout] for auth gating. Only the
// admin view is restricted by role.
func (s *Service) SetView(v domain.View) (domain.Navigation, error) {
	const op = "Service.SetView"

	s.mu.Lock()
	defer s.mu.Unlock()

	if v == domain.ViewAdmin {
		if s.st.identity == nil || !s.st.identity.IsAdmin() {
			return s.st.nav, fmt.Errorf("%s: %w", op, domain.ErrInvalidRoleTransition)
		}
	}

	s.setViewLocked(v)
	return s.st.nav, nil
}

// NavigateToProduct selects the product and opens its detail view.
func (s *Service) NavigateToProduct(
	ctx context.Context, productID string,
) (domain.Navigation, error) {
	const op = "Service.NavigateToProduct"

	nav, email, err := s.navigateToProduct(productID)
	if err != nil {
		return nav, fmt.Errorf("%s: %w", op, err)
	}

	s.emit(ctx, domain.ClientEvent{
		Kind:      domain.EventProductViewed,
		Email:     email,
		ProductID: productID,
	})
	return nav, nil
}

func (s *Service) navigateToProduct(
	productID string,
) (domain.Navigation, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.productLocked(productID); !ok {
		return s.st.nav, "", domain.ErrProductNotFound
	}

	s.st.nav.SelectedProductID = productID
	s.setViewLocked(domain.ViewProductDetail)

	var email string
	if s.st.identity != nil {
		email = s.st.identity.Email
	}
	return s.st.nav, email, nil
}
