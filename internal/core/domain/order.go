package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusShipped OrderStatus = "shipped"
)

type Order struct {
	ID            string
	UserID        string
	Items         Cart
	Total         decimal.Decimal
	Status        OrderStatus
	Address       string
	PaymentMethod string
	CreatedAt     time.Time
}

func (o Order) Clone() Order {
	o.Items = o.Items.Clone()
	return o
}
