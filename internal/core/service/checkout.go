package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/niksmo/shop-fusion/internal/core/domain"
)

// ProceedToCheckout opens the checkout view for a signed in user. Otherwise
// it routes to login and marks the checkout as pending.
func (s *Service) ProceedToCheckout() domain.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st.identity != nil {
		s.setViewLocked(domain.ViewCheckout)
	} else {
		s.st.nav.PendingCheckout = true
		s.setViewLocked(domain.ViewLogin)
	}
	return s.st.nav.CheckoutState()
}

// PlaceOrder turns the cart into a pending order, clears the cart and
// returns to the home view. The order keeps its own copy of the lines.
func (s *Service) PlaceOrder(
	ctx context.Context, address, paymentMethod string,
) (domain.Order, error) {
	const op = "Service.PlaceOrder"
	log := slog.With("op", op)

	order, err := s.placeOrder(address, paymentMethod)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(
		"order placed",
		"orderID", order.ID, "nItems", len(order.Items),
		"total", order.Total.String(),
	)

	if err := s.orders.ProduceOrder(ctx, order.Clone()); err != nil {
		log.Error("failed to publish order", "orderID", order.ID, "err", err)
	}
	return order, nil
}

func (s *Service) placeOrder(address, paymentMethod string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.requireIdentityLocked()
	if err != nil {
		return domain.Order{}, err
	}
	if len(s.st.cart) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}
	if strings.TrimSpace(paymentMethod) == "" {
		return domain.Order{}, domain.ErrPaymentMethodRequired
	}

	order := domain.Order{
		ID:            s.orderID(),
		UserID:        id.ID,
		Items:         s.st.cart.Clone(),
		Total:         s.st.cart.Subtotal(),
		Status:        domain.OrderStatusPending,
		Address:       address,
		PaymentMethod: paymentMethod,
		CreatedAt:     s.now().UTC(),
	}

	s.st.orders = append([]domain.Order{order}, s.st.orders...)
	s.st.cart = nil
	s.setViewLocked(domain.ViewHome)

	return order.Clone(), nil
}

// Orders returns the full order history, most recent first. Admin only.
func (s *Service) Orders() ([]domain.Order, error) {
	const op = "Service.Orders"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdminLocked(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cloneOrders(s.st.orders, ""), nil
}

// MyOrders returns the current identity's orders, most recent first.
func (s *Service) MyOrders() ([]domain.Order, error) {
	const op = "Service.MyOrders"

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.requireIdentityLocked()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cloneOrders(s.st.orders, id.ID), nil
}

func (s *Service) visibleOrdersLocked() []domain.Order {
	switch {
	case s.st.identity == nil:
		return nil
	case s.st.identity.IsAdmin():
		return cloneOrders(s.st.orders, "")
	default:
		return cloneOrders(s.st.orders, s.st.identity.ID)
	}
}

func cloneOrders(orders []domain.Order, userID string) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if userID == "" || o.UserID == userID {
			out = append(out, o.Clone())
		}
	}
	return out
}
