package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

type LineKey struct {
	ProductID string
	Size      string
	Color     string
}

type CartLine struct {
	Product  Product
	Quantity int
	Size     string
	Color    string
}

func (l CartLine) Key() LineKey {
	return LineKey{l.Product.ID, l.Size, l.Color}
}

func (l CartLine) Amount() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l CartLine) OriginalAmount() decimal.Decimal {
	return l.Product.OriginalPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type CartTotals struct {
	Subtotal  decimal.Decimal
	TotalMRP  decimal.Decimal
	Discount  decimal.Decimal
	ItemCount int
}

// Cart is an ordered list of lines, unique by [LineKey].
type Cart []CartLine

func (c Cart) index(key LineKey) int {
	for i := range c {
		if c[i].Key() == key {
			return i
		}
	}
	return -1
}

// Add increments the quantity of the matching line or appends a new line
// with quantity 1.
func (c Cart) Add(p Product, size, color string) Cart {
	key := LineKey{p.ID, size, color}
	if i := c.index(key); i >= 0 {
		c[i].Quantity++
		return c
	}
	return append(c, CartLine{
		Product:  p.Clone(),
		Quantity: 1,
		Size:     size,
		Color:    color,
	})
}

func (c Cart) Remove(key LineKey) (Cart, error) {
	i := c.index(key)
	if i < 0 {
		return c, ErrLineNotFound
	}
	return append(c[:i], c[i+1:]...), nil
}

// UpdateQuantity applies delta to the matching line. The quantity never
// drops below 1 and saturates at math.MaxInt.
func (c Cart) UpdateQuantity(key LineKey, delta int) (Cart, error) {
	i := c.index(key)
	if i < 0 {
		return c, ErrLineNotFound
	}
	q := c[i].Quantity
	if delta > 0 && q > math.MaxInt-delta {
		q = math.MaxInt
	} else {
		q += delta
	}
	c[i].Quantity = max(1, q)
	return c, nil
}

func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c {
		sum = sum.Add(l.Amount())
	}
	return sum
}

func (c Cart) Totals() CartTotals {
	t := CartTotals{
		Subtotal: decimal.Zero,
		TotalMRP: decimal.Zero,
	}
	for _, l := range c {
		t.Subtotal = t.Subtotal.Add(l.Amount())
		t.TotalMRP = t.TotalMRP.Add(l.OriginalAmount())
		t.ItemCount += l.Quantity
	}
	t.Discount = t.TotalMRP.Sub(t.Subtotal)
	return t
}

// Clone returns a deep copy, used to freeze cart contents into an order.
func (c Cart) Clone() Cart {
	if c == nil {
		return nil
	}
	out := make(Cart, len(c))
	for i, l := range c {
		l.Product = l.Product.Clone()
		out[i] = l
	}
	return out
}
