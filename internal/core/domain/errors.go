package domain

import "errors"

var (
	ErrLineNotFound          = errors.New("cart line not found")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrUnauthenticated       = errors.New("not authenticated")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidRoleTransition = errors.New("view is not allowed for role")
	ErrProductNotFound       = errors.New("product not found")
	ErrSelectionRequired     = errors.New("select size and color first")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrDraftIncomplete       = errors.New("draft is incomplete")
	ErrImageUnavailable      = errors.New("failed to generate image")
	ErrUnknownView           = errors.New("unknown view")
	ErrUnknownRole           = errors.New("unknown role")
	ErrDuplicateProduct      = errors.New("product id already exists")
)
