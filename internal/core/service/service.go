package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/shop-fusion/internal/core/domain"
	"github.com/niksmo/shop-fusion/internal/core/port"
)

const orderIDLen = 9

// AdminCredentials is the single credential pair that signs in as admin.
type AdminCredentials struct {
	Email    string
	Password string
}

type state struct {
	products []domain.Product
	cart     domain.Cart
	identity *domain.Identity
	orders   []domain.Order
	nav      domain.Navigation
	draft    domain.ProductDraft
	stylist  []domain.ChatMessage
}

// Service owns the storefront state. Every mutator runs under one lock, so
// a mutation completes before the next one starts. Advisory calls are made
// with the lock released.
type Service struct {
	mu     sync.Mutex
	st     state
	tokens generations

	advisor port.Advisor
	orders  port.OrdersProducer
	events  port.ClientEventsEmitter
	admin   AdminCredentials
	now     func() time.Time
	newID   func() string
}

type Opt func(*Service)

func AdvisorOpt(a port.Advisor) Opt {
	return func(s *Service) {
		if a != nil {
			s.advisor = a
		}
	}
}

func OrdersProducerOpt(p port.OrdersProducer) Opt {
	return func(s *Service) {
		if p != nil {
			s.orders = p
		}
	}
}

func ClientEventsEmitterOpt(e port.ClientEventsEmitter) Opt {
	return func(s *Service) {
		if e != nil {
			s.events = e
		}
	}
}

func AdminCredentialsOpt(c AdminCredentials) Opt {
	return func(s *Service) {
		s.admin = c
	}
}

// CatalogOpt seeds the catalog. Products are copied.
func CatalogOpt(ps []domain.Product) Opt {
	return func(s *Service) {
		s.st.products = make([]domain.Product, len(ps))
		for i, p := range ps {
			s.st.products[i] = p.Clone()
		}
	}
}

func ClockOpt(now func() time.Time) Opt {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(opts ...Opt) *Service {
	s := &Service{
		advisor: nopAdvisor{},
		orders:  nopPublisher{},
		events:  nopPublisher{},
		now:     time.Now,
		newID:   uuid.NewString,
	}
	s.st.nav.View = domain.ViewHome
	s.st.draft = domain.NewProductDraft()
	s.st.stylist = []domain.ChatMessage{
		{Author: domain.AuthorAI, Text: domain.StylistGreeting},
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CartView struct {
	Lines  domain.Cart
	Totals domain.CartTotals
}

type Snapshot struct {
	Products      []domain.Product
	Cart          CartView
	Identity      *domain.Identity
	Orders        []domain.Order
	Navigation    domain.Navigation
	CheckoutState domain.CheckoutState
}

// State returns a copy of the current state. Orders are limited to those
// visible to the current identity.
func (s *Service) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Products:      s.productsLocked(domain.AllCategories),
		Cart:          s.cartViewLocked(),
		Identity:      s.identityLocked(),
		Orders:        s.visibleOrdersLocked(),
		Navigation:    s.st.nav,
		CheckoutState: s.st.nav.CheckoutState(),
	}
}

// setViewLocked moves to v. Leaving the admin view invalidates in-flight
// draft requests.
func (s *Service) setViewLocked(v domain.View) {
	if s.st.nav.View == domain.ViewAdmin && v != domain.ViewAdmin {
		s.tokens.invalidate(draftDescription, draftImage)
	}
	s.st.nav.View = v
}

func (s *Service) identityLocked() *domain.Identity {
	if s.st.identity == nil {
		return nil
	}
	id := *s.st.identity
	return &id
}

func (s *Service) requireIdentityLocked() (domain.Identity, error) {
	if s.st.identity == nil {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return *s.st.identity, nil
}

func (s *Service) requireAdminLocked() error {
	id, err := s.requireIdentityLocked()
	if err != nil {
		return err
	}
	if !id.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

func (s *Service) orderID() string {
	id := strings.ReplaceAll(s.newID(), "-", "")
	if len(id) > orderIDLen {
		id = id[:orderIDLen]
	}
	return id
}

func (s *Service) emit(ctx context.Context, evt domain.ClientEvent) {
	const op = "Service.emit"

	if err := s.events.EmitEvent(ctx, evt); err != nil {
		slog.Error(
			"failed to emit client event",
			"op", op, "kind", evt.Kind, "err", err,
		)
	}
}

type nopPublisher struct{}

func (nopPublisher) ProduceOrder(context.Context, domain.Order) error {
	return nil
}

func (nopPublisher) EmitEvent(context.Context, domain.ClientEvent) error {
	return nil
}

type nopAdvisor struct{}

func (nopAdvisor) GenerateDescription(context.Context, string, string) string {
	return ""
}

func (nopAdvisor) GenerateImage(context.Context, string) (string, bool) {
	return "", false
}

func (nopAdvisor) GetAdvice(context.Context, string, []domain.Product) string {
	return ""
}
