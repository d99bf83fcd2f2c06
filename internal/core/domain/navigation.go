package domain

import "fmt"

type View int

const (
	ViewHome View = iota
	ViewShop
	ViewProductDetail
	ViewCart
	ViewCheckout
	ViewLogin
	ViewRegister
	ViewAdmin
	ViewPolicy
)

var viewNames = [...]string{
	ViewHome:          "home",
	ViewShop:          "shop",
	ViewProductDetail: "product_detail",
	ViewCart:          "cart",
	ViewCheckout:      "checkout",
	ViewLogin:         "login",
	ViewRegister:      "register",
	ViewAdmin:         "admin",
	ViewPolicy:        "policy",
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

func ParseView(s string) (View, error) {
	for i, name := range viewNames {
		if name == s {
			return View(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, s)
}

type Navigation struct {
	View              View
	SelectedProductID string
	PendingCheckout   bool
}

type CheckoutState int

const (
	CheckoutIdle CheckoutState = iota
	CheckoutAwaitingAuth
	CheckoutActive
)

func (s CheckoutState) String() string {
	switch s {
	case CheckoutAwaitingAuth:
		return "awaiting_auth"
	case CheckoutActive:
		return "checkout"
	default:
		return "idle"
	}
}

func (n Navigation) CheckoutState() CheckoutState {
	switch {
	case n.PendingCheckout:
		return CheckoutAwaitingAuth
	case n.View == ViewCheckout:
		return CheckoutActive
	default:
		return CheckoutIdle
	}
}
