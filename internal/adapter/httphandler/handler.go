package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/niksmo/shop-fusion/internal/core/domain"
	"github.com/niksmo/shop-fusion/internal/core/service"
)

// Storefront is the store surface served over HTTP.
type Storefront interface {
	State() service.Snapshot

	Products(category string) []domain.Product
	Categories() []string
	Product(id string) (domain.Product, error)
	AddProduct(p domain.Product) (domain.Product, error)
	DeleteProduct(id string) error

	Cart() service.CartView
	AddToCartByID(productID, size, color string) (service.CartView, error)
	RemoveFromCart(productID, size, color string) (service.CartView, error)
	UpdateCartQuantity(productID, size, color string, delta int) (service.CartView, error)
	ClearCart()

	Identity() (domain.Identity, bool)
	Login(email string, role domain.Role) domain.Identity
	SignIn(email, password string) domain.Identity
	Register(ctx context.Context, email, password string) domain.Identity
	Logout()

	ProceedToCheckout() domain.CheckoutState
	PlaceOrder(ctx context.Context, address, paymentMethod string) (domain.Order, error)
	Orders() ([]domain.Order, error)
	MyOrders() ([]domain.Order, error)

	Navigation() domain.Navigation
	SetView(v domain.View) (domain.Navigation, error)
	NavigateToProduct(ctx context.Context, productID string) (domain.Navigation, error)

	Draft() (domain.ProductDraft, error)
	UpdateDraft(d domain.ProductDraft) (domain.ProductDraft, error)
	ResetDraft() (domain.ProductDraft, error)
	GenerateDraftDescription(ctx context.Context) (domain.ProductDraft, bool, error)
	GenerateDraftImage(ctx context.Context) (domain.ProductDraft, bool, error)
	SubmitDraft() (domain.Product, error)

	StylistMessages() []domain.ChatMessage
	AskStylist(ctx context.Context, query string) ([]domain.ChatMessage, bool)
}

var _ Storefront = (*service.Service)(nil)

const contentTypeJSON = "application/json"

type StoreHandler struct {
	store Storefront
}

// NewRouter mounts the store API under /v1.
func NewRouter(store Storefront) http.Handler {
	h := StoreHandler{store}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.AllowContentType(contentTypeJSON))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", h.GetState)

		r.Get("/products", h.GetProducts)
		r.Post("/products", h.PostProduct)
		r.Get("/products/{id}", h.GetProduct)
		r.Delete("/products/{id}", h.DeleteProduct)
		r.Get("/categories", h.GetCategories)

		r.Get("/navigation", h.GetNavigation)
		r.Put("/navigation", h.PutNavigation)
		r.Post("/navigation/product", h.PostNavigationProduct)

		r.Get("/cart", h.GetCart)
		r.Delete("/cart", h.DeleteCart)
		r.Post("/cart/lines", h.PostCartLine)
		r.Patch("/cart/lines", h.PatchCartLine)
		r.Delete("/cart/lines", h.DeleteCartLine)

		r.Get("/session", h.GetSession)
		r.Post("/session", h.PostSession)
		r.Post("/session/login", h.PostLogin)
		r.Post("/session/register", h.PostRegister)
		r.Delete("/session", h.DeleteSession)

		r.Post("/checkout", h.PostCheckout)
		r.Get("/orders", h.GetOrders)
		r.Post("/orders", h.PostOrder)
		r.Get("/orders/mine", h.GetMyOrders)

		r.Route("/admin/draft", func(r chi.Router) {
			r.Get("/", h.GetDraft)
			r.Put("/", h.PutDraft)
			r.Delete("/", h.DeleteDraft)
			r.Post("/description", h.PostDraftDescription)
			r.Post("/image", h.PostDraftImage)
			r.Post("/submit", h.PostDraftSubmit)
		})

		r.Get("/stylist/messages", h.GetStylistMessages)
		r.Post("/stylist/messages", h.PostStylistMessage)
	})
	return r
}

func (h StoreHandler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, fromSnapshot(h.store.State()))
}

// GET v1/products?category=Men (200 OK)
func (h StoreHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ps := h.store.Products(r.URL.Query().Get("category"))
	writeJSON(w, r, http.StatusOK, fromProducts(ps))
}

func (h StoreHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Product(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fromProduct(p))
}

// POST v1/products JSON Product (201 Created, 400, 401, 403)
func (h StoreHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	var req Product
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.store.AddProduct(req.toDomain())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, fromProduct(p))
}

func (h StoreHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteProduct(chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h StoreHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.store.Categories())
}

func (h StoreHandler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, fromNavigation(h.store.Navigation()))
}

// PUT v1/navigation JSON {"view": "shop"} (200 OK, 400, 403)
func (h StoreHandler) PutNavigation(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v, err := domain.ParseView(req.View)
	if err != nil {
		writeError(w, r, err)
		return
	}

	nav, err := h.store.SetView(v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fromNavigation(nav))
}

func (h StoreHandler) PostNavigationProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductViewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	nav, err := h.store.NavigateToProduct(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fromNavigation(nav))
}

func (h StoreHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, fromCartView(h.store.Cart()))
}

func (h StoreHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	h.store.ClearCart()
	writeJSON(w, r, http.StatusOK, fromCartView(h.store.Cart()))
}

// POST v1/cart/lines JSON {"product_id", "size", "color"} (200 OK, 400, 404)
func (h StoreHandler) PostCartLine(w http.ResponseWriter, r *http.Request) {
	var req CartLineRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v, err := h.store.AddToCartByID(req.ProductID, req.Size, req.Color)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fromCartView(v))
}

// PATCH v1/cart/lines JSON {"product_id", "size", "color", "delta"}
func (h StoreHandler) PatchCartLine(w http.ResponseWriter, r *http.Request) {
	var req QuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v, err := h.store.UpdateCartQuantity(
		req.ProductID, req.Size, req.Color, req.Delta,
	)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fromCartView(v))
}

// DELETE v1/cart/lines?product_id=1&size=M&color=Blue
func (h StoreHandler) DeleteCartLine(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v, err := h.store.RemoveFromCart(
		q.Get("product_id"), q.Get("size"), q.Get("color"),
	)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fromCartView(v))
}

func (h StoreHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.store.Identity()
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}
	writeJSON(w, r, http.StatusOK, fromIdentity(id))
}

// POST v1/session JSON {"email", "password"} (200 OK, 400)
func (h StoreHandler) PostSession(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.writeSession(w, r, h.store.SignIn(req.Email, req.Password))
}

// POST v1/session/login JSON {"email", "role"} (200 OK, 400)
func (h StoreHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeSession(w, r, h.store.Login(req.Email, role))
}

func (h StoreHandler) PostRegister(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.writeSession(w, r, h.store.Register(r.Context(), req.Email, req.Password))
}

func (h StoreHandler) writeSession(
	w http.ResponseWriter, r *http.Request, id domain.Identity,
) {
	type session struct {
		Identity   Identity   `json:"identity"`
		Navigation Navigation `json:"navigation"`
	}
	writeJSON(w, r, http.StatusOK, session{
		Identity:   fromIdentity(id),
		Navigation: fromNavigation(h.store.Navigation()),
	})
}

func (h StoreHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.store.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (h StoreHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	h.store.ProceedToCheckout()
	writeJSON(w, r, http.StatusOK, fromNavigation(h.store.Navigation()))
}

// POST v1/orders JSON {"address", "payment_method"} (201 Created, 400, 401)
func (h StoreHandler) PostOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.store.PlaceOrder(r.Context(), req.Address, req.PaymentMethod)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, fromOrder(o))
}

func (h StoreHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.Orders()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fromOrders(orders))
}

func (h StoreHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.MyOrders()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fromOrders(orders))
}

func (h StoreHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Draft()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fromDraft(d))
}

func (h StoreHandler) PutDraft(w http.ResponseWriter, r *http.Request) {
	var req Draft
	if !decodeJSON(w, r, &req) {
		return
	}

	d, err := h.store.UpdateDraft(req.toDomain())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fromDraft(d))
}

func (h StoreHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.ResetDraft()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fromDraft(d))
}

func (h StoreHandler) PostDraftDescription(w http.ResponseWriter, r *http.Request) {
	d, applied, err := h.store.GenerateDraftDescription(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, DraftResult{fromDraft(d), applied})
}

func (h StoreHandler) PostDraftImage(w http.ResponseWriter, r *http.Request) {
	d, applied, err := h.store.GenerateDraftImage(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, DraftResult{fromDraft(d), applied})
}

func (h StoreHandler) PostDraftSubmit(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.SubmitDraft()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, fromProduct(p))
}

func (h StoreHandler) GetStylistMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, fromMessages(h.store.StylistMessages()))
}

// POST v1/stylist/messages JSON {"query"} (200 OK, 400)
func (h StoreHandler) PostStylistMessage(w http.ResponseWriter, r *http.Request) {
	var req StylistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ms, answered := h.store.AskStylist(r.Context(), req.Query)
	writeJSON(w, r, http.StatusOK, StylistResult{fromMessages(ms), answered})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	const op = "httphandler.decodeJSON"

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Warn("failed to parse JSON", "op", op,
			"requestID", middleware.GetReqID(r.Context()), "err", err)
		writeJSON(w, r, http.StatusBadRequest,
			errorResponse{Error: "invalid JSON data"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op,
			"requestID", middleware.GetReqID(r.Context()), "err", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	const op = "httphandler.writeError"

	status := statusFor(err)
	log := slog.With(
		"op", op, "requestID", middleware.GetReqID(r.Context()),
	)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "err", err)
	} else {
		log.Warn("request rejected", "status", status, "err", err)
	}
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrInvalidRoleTransition):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrDuplicateProduct):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSelectionRequired),
		errors.Is(err, domain.ErrPaymentMethodRequired),
		errors.Is(err, domain.ErrDraftIncomplete),
		errors.Is(err, domain.ErrUnknownView),
		errors.Is(err, domain.ErrUnknownRole):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrImageUnavailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
