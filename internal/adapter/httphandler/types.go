package httphandler

import (
	"time"

	"github.com/niksmo/shop-fusion/internal/core/domain"
	"github.com/niksmo/shop-fusion/internal/core/service"
	"github.com/shopspring/decimal"
)

type (
	Product struct {
		ID            string          `json:"id"`
		Name          string          `json:"name"`
		Brand         string          `json:"brand"`
		Price         decimal.Decimal `json:"price"`
		OriginalPrice decimal.Decimal `json:"original_price"`
		Discount      int             `json:"discount"`
		Category      string          `json:"category"`
		Description   string          `json:"description"`
		Images        []string        `json:"images"`
		Sizes         []string        `json:"sizes"`
		Colors        []string        `json:"colors"`
	}

	CartLine struct {
		Product  Product         `json:"product"`
		Quantity int             `json:"quantity"`
		Size     string          `json:"size"`
		Color    string          `json:"color"`
		Amount   decimal.Decimal `json:"amount"`
	}

	CartTotals struct {
		Subtotal  decimal.Decimal `json:"subtotal"`
		TotalMRP  decimal.Decimal `json:"total_mrp"`
		Discount  decimal.Decimal `json:"discount"`
		ItemCount int             `json:"item_count"`
	}

	Cart struct {
		Lines  []CartLine `json:"lines"`
		Totals CartTotals `json:"totals"`
	}

	Identity struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}

	Order struct {
		ID            string          `json:"id"`
		UserID        string          `json:"user_id"`
		Items         []CartLine      `json:"items"`
		Total         decimal.Decimal `json:"total"`
		Status        string          `json:"status"`
		Address       string          `json:"address"`
		PaymentMethod string          `json:"payment_method"`
		CreatedAt     time.Time       `json:"created_at"`
	}

	Navigation struct {
		View              string `json:"view"`
		SelectedProductID string `json:"selected_product_id,omitempty"`
		PendingCheckout   bool   `json:"pending_checkout"`
		CheckoutState     string `json:"checkout_state"`
	}

	State struct {
		Products   []Product  `json:"products"`
		Cart       Cart       `json:"cart"`
		Identity   *Identity  `json:"identity"`
		Orders     []Order    `json:"orders"`
		Navigation Navigation `json:"navigation"`
	}

	Draft struct {
		Name          string          `json:"name"`
		Brand         string          `json:"brand"`
		Category      string          `json:"category"`
		Price         decimal.Decimal `json:"price"`
		OriginalPrice decimal.Decimal `json:"original_price"`
		Discount      int             `json:"discount"`
		Description   string          `json:"description"`
		Sizes         []string        `json:"sizes"`
		Colors        []string        `json:"colors"`
		Images        []string        `json:"images"`
	}

	DraftResult struct {
		Draft   Draft `json:"draft"`
		Applied bool  `json:"applied"`
	}

	ChatMessage struct {
		Author string `json:"author"`
		Text   string `json:"text"`
	}

	StylistResult struct {
		Messages []ChatMessage `json:"messages"`
		Answered bool          `json:"answered"`
	}
)

type (
	CartLineRequest struct {
		ProductID string `json:"product_id"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}

	QuantityRequest struct {
		CartLineRequest
		Delta int `json:"delta"`
	}

	CredentialsRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	LoginRequest struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}

	ViewRequest struct {
		View string `json:"view"`
	}

	ProductViewRequest struct {
		ProductID string `json:"product_id"`
	}

	PlaceOrderRequest struct {
		Address       string `json:"address"`
		PaymentMethod string `json:"payment_method"`
	}

	StylistRequest struct {
		Query string `json:"query"`
	}
)

func fromProduct(p domain.Product) Product {
	return Product{
		ID:            p.ID,
		Name:          p.Name,
		Brand:         p.Brand,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Discount:      p.Discount,
		Category:      p.Category,
		Description:   p.Description,
		Images:        p.Images,
		Sizes:         p.Sizes,
		Colors:        p.Colors,
	}
}

func fromProducts(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = fromProduct(p)
	}
	return out
}

func (p Product) toDomain() domain.Product {
	return domain.Product{
		ID:            p.ID,
		Name:          p.Name,
		Brand:         p.Brand,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Discount:      p.Discount,
		Category:      p.Category,
		Description:   p.Description,
		Images:        p.Images,
		Sizes:         p.Sizes,
		Colors:        p.Colors,
	}
}

func fromLines(c domain.Cart) []CartLine {
	out := make([]CartLine, len(c))
	for i, l := range c {
		out[i] = CartLine{
			Product:  fromProduct(l.Product),
			Quantity: l.Quantity,
			Size:     l.Size,
			Color:    l.Color,
			Amount:   l.Amount(),
		}
	}
	return out
}

func fromCartView(v service.CartView) Cart {
	return Cart{
		Lines: fromLines(v.Lines),
		Totals: CartTotals{
			Subtotal:  v.Totals.Subtotal,
			TotalMRP:  v.Totals.TotalMRP,
			Discount:  v.Totals.Discount,
			ItemCount: v.Totals.ItemCount,
		},
	}
}

func fromIdentity(id domain.Identity) Identity {
	return Identity{
		ID:    id.ID,
		Email: id.Email,
		Name:  id.Name,
		Role:  string(id.Role),
	}
}

func fromOrder(o domain.Order) Order {
	return Order{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         fromLines(o.Items),
		Total:         o.Total,
		Status:        string(o.Status),
		Address:       o.Address,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
	}
}

func fromOrders(orders []domain.Order) []Order {
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = fromOrder(o)
	}
	return out
}

func fromNavigation(n domain.Navigation) Navigation {
	return Navigation{
		View:              n.View.String(),
		SelectedProductID: n.SelectedProductID,
		PendingCheckout:   n.PendingCheckout,
		CheckoutState:     n.CheckoutState().String(),
	}
}

func fromSnapshot(s service.Snapshot) State {
	st := State{
		Products:   fromProducts(s.Products),
		Cart:       fromCartView(s.Cart),
		Orders:     fromOrders(s.Orders),
		Navigation: fromNavigation(s.Navigation),
	}
	if s.Identity != nil {
		id := fromIdentity(*s.Identity)
		st.Identity = &id
	}
	return st
}

func fromDraft(d domain.ProductDraft) Draft {
	return Draft{
		Name:          d.Name,
		Brand:         d.Brand,
		Category:      d.Category,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Discount:      d.Discount,
		Description:   d.Description,
		Sizes:         d.Sizes,
		Colors:        d.Colors,
		Images:        d.Images,
	}
}

func (d Draft) toDomain() domain.ProductDraft {
	return domain.ProductDraft{
		Name:          d.Name,
		Brand:         d.Brand,
		Category:      d.Category,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Discount:      d.Discount,
		Description:   d.Description,
		Sizes:         d.Sizes,
		Colors:        d.Colors,
		Images:        d.Images,
	}
}

func fromMessages(ms []domain.ChatMessage) []ChatMessage {
	out := make([]ChatMessage, len(ms))
	for i, m := range ms {
		out[i] = ChatMessage{Author: string(m.Author), Text: m.Text}
	}
	return out
}
