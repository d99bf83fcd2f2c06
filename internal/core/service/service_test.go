package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/niksmo/shop-fusion/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var adminCreds = AdminCredentials{Email: "admin@lumiere.com", Password: "admin"}

type MockAdvisor struct {
	mock.Mock
}

func (m *MockAdvisor) GenerateDescription(ctx context.Context, name, category string) string {
	args := m.Called(ctx, name, category)
	return args.String(0)
}

func (m *MockAdvisor) GenerateImage(ctx context.Context, prompt string) (string, bool) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Bool(1)
}

func (m *MockAdvisor) GetAdvice(ctx context.Context, query string, catalog []domain.Product) string {
	args := m.Called(ctx, query, catalog)
	return args.String(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) ProduceOrder(ctx context.Context, o domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockPublisher) EmitEvent(ctx context.Context, e domain.ClientEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// blockingAdvisor holds every call until its result is sent on the channel
// published through started.
type blockingAdvisor struct {
	started chan chan string
}

func newBlockingAdvisor() *blockingAdvisor {
	return &blockingAdvisor{started: make(chan chan string, 4)}
}

func (b *blockingAdvisor) wait() string {
	release := make(chan string)
	b.started <- release
	return <-release
}

func (b *blockingAdvisor) GenerateDescription(context.Context, string, string) string {
	return b.wait()
}

func (b *blockingAdvisor) GenerateImage(context.Context, string) (string, bool) {
	v := b.wait()
	return v, v != ""
}

func (b *blockingAdvisor) GetAdvice(context.Context, string, []domain.Product) string {
	return b.wait()
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{
			ID: "1", Name: "Slim Fit Casual Shirt", Brand: "Roadster",
			Price: decimal.NewFromInt(699), OriginalPrice: decimal.NewFromInt(1299),
			Discount: 46, Category: "Men",
			Sizes: []string{"38", "40"}, Colors: []string{"Olive", "Navy"},
			Images: []string{"shirt.jpg"},
		},
		{
			ID: "5", Name: "Slim Fit Jeans", Brand: "Highlander",
			Price: decimal.NewFromInt(799), OriginalPrice: decimal.NewFromInt(1599),
			Discount: 50, Category: "Men",
			Sizes: []string{"30", "32"}, Colors: []string{"Blue", "Black"},
			Images: []string{"jeans.jpg"},
		},
		{
			ID: "2", Name: "Printed Anarkali Kurta", Brand: "Anouk",
			Price: decimal.NewFromInt(899), OriginalPrice: decimal.NewFromInt(2499),
			Discount: 64, Category: "Women",
			Sizes: []string{"S", "M"}, Colors: []string{"Navy", "Red"},
			Images: []string{"kurta.jpg"},
		},
	}
}

func newTestService(opts ...Opt) *Service {
	opts = append([]Opt{
		CatalogOpt(seedProducts()),
		AdminCredentialsOpt(adminCreds),
	}, opts...)
	s := New(opts...)

	var n int
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func TestCatalog(t *testing.T) {
	t.Run("FilterAndCategories", func(t *testing.T) {
		s := newTestService()
		assert.Len(t, s.Products(""), 3)
		assert.Len(t, s.Products(domain.AllCategories), 3)
		assert.Len(t, s.Products("Men"), 2)
		assert.Empty(t, s.Products("Kids"))
		assert.Equal(t, []string{"Men", "Women"}, s.Categories())
	})

	t.Run("CustomerCannotMutate", func(t *testing.T) {
		s := newTestService()

		_, err := s.AddProduct(domain.Product{Name: "x"})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)

		s.SignIn("jane@example.com", "secret")
		_, err = s.AddProduct(domain.Product{Name: "x"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.ErrorIs(t, s.DeleteProduct("1"), domain.ErrForbidden)
		assert.Len(t, s.Products(""), 3)
	})

	t.Run("AdminAddDelete", func(t *testing.T) {
		s := newTestService()
		s.SignIn(adminCreds.Email, adminCreds.Password)

		p, err := s.AddProduct(domain.Product{Name: "Party Frock", Category: "Kids"})
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)

		ps := s.Products("")
		require.Len(t, ps, 4)
		assert.Equal(t, p.ID, ps[3].ID)

		require.NoError(t, s.DeleteProduct("5"))
		assert.Len(t, s.Products(""), 3)
		assert.ErrorIs(t, s.DeleteProduct("5"), domain.ErrProductNotFound)
	})

	t.Run("DuplicateIDRejected", func(t *testing.T) {
		s := newTestService()
		s.SignIn(adminCreds.Email, adminCreds.Password)

		_, err := s.AddProduct(domain.Product{ID: "1", Name: "Copy"})
		assert.ErrorIs(t, err, domain.ErrDuplicateProduct)

		p, err := s.Product("1")
		require.NoError(t, err)
		assert.Equal(t, "Slim Fit Casual Shirt", p.Name)
		assert.Len(t, s.Products(""), 3)
	})

	t.Run("ReturnedProductIsDetached", func(t *testing.T) {
		s := newTestService()
		p, err := s.Product("1")
		require.NoError(t, err)
		p.Images[0] = "changed"

		p, err = s.Product("1")
		require.NoError(t, err)
		assert.Equal(t, "shirt.jpg", p.Images[0])
	})
}

func TestCartEngine(t *testing.T) {
	t.Run("RepeatedAddCountsCalls", func(t *testing.T) {
		s := newTestService()
		for range 4 {
			_, err := s.AddToCartByID("1", "40", "Navy")
			require.NoError(t, err)
		}
		view := s.Cart()
		require.Len(t, view.Lines, 1)
		assert.Equal(t, 4, view.Lines[0].Quantity)
	})

	t.Run("SelectionRequired", func(t *testing.T) {
		s := newTestService()
		_, err := s.AddToCartByID("1", "", "Navy")
		assert.ErrorIs(t, err, domain.ErrSelectionRequired)
		assert.Empty(t, s.Cart().Lines)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		s := newTestService()
		_, err := s.AddToCartByID("nope", "40", "Navy")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("DeletedProduct", func(t *testing.T) {
		s := newTestService()
		s.SignIn(adminCreds.Email, adminCreds.Password)
		require.NoError(t, s.DeleteProduct("5"))

		view, err := s.AddToCartByID("5", "32", "Blue")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.Empty(t, view.Lines)
	})

	t.Run("QuantityFloor", func(t *testing.T) {
		s := newTestService()
		_, err := s.AddToCartByID("1", "40", "Navy")
		require.NoError(t, err)

		view, err := s.UpdateCartQuantity("1", "40", "Navy", -5)
		require.NoError(t, err)
		assert.Equal(t, 1, view.Lines[0].Quantity)

		view, err = s.UpdateCartQuantity("1", "40", "Navy", 2)
		require.NoError(t, err)
		assert.Equal(t, 3, view.Lines[0].Quantity)
	})

	t.Run("RemoveMissingLine", func(t *testing.T) {
		s := newTestService()
		_, err := s.AddToCartByID("1", "40", "Navy")
		require.NoError(t, err)

		view, err := s.RemoveFromCart("1", "38", "Navy")
		assert.ErrorIs(t, err, domain.ErrLineNotFound)
		assert.Len(t, view.Lines, 1)

		view, err = s.RemoveFromCart("1", "40", "Navy")
		require.NoError(t, err)
		assert.Empty(t, view.Lines)
	})

	t.Run("Totals", func(t *testing.T) {
		s := newTestService()
		_, err := s.AddToCartByID("1", "40", "Navy")
		require.NoError(t, err)
		_, err = s.AddToCartByID("5", "32", "Blue")
		require.NoError(t, err)
		view, err := s.AddToCartByID("5", "32", "Blue")
		require.NoError(t, err)

		assert.Equal(t, "2297", view.Totals.Subtotal.String())
		assert.Equal(t, "4497", view.Totals.TotalMRP.String())
		assert.Equal(t, "2200", view.Totals.Discount.String())
	})

	t.Run("ClearCart", func(t *testing.T) {
		s := newTestService()
		_, err := s.AddToCartByID("1", "40", "Navy")
		require.NoError(t, err)
		s.ClearCart()
		assert.Empty(t, s.Cart().Lines)
		assert.True(t, s.Cart().Totals.Subtotal.IsZero())
	})
}

func TestSession(t *testing.T) {
	t.Run("RoleFromCredentials", func(t *testing.T) {
		s := newTestService()

		id := s.SignIn(adminCreds.Email, adminCreds.Password)
		assert.Equal(t, domain.RoleAdmin, id.Role)
		assert.Equal(t, "admin", id.Name)

		id = s.SignIn(adminCreds.Email, "wrong")
		assert.Equal(t, domain.RoleCustomer, id.Role)
	})

	t.Run("SecondLoginReplacesFirst", func(t *testing.T) {
		s := newTestService()
		s.Login("first@example.com", domain.RoleCustomer)
		second := s.Login("second@example.com", domain.RoleCustomer)

		got, ok := s.Identity()
		require.True(t, ok)
		assert.Equal(t, second, got)
		assert.Equal(t, "second", got.Name)
	})

	t.Run("LogoutResetsNavigation", func(t *testing.T) {
		s := newTestService()
		s.Login("jane@example.com", domain.RoleCustomer)
		_, err := s.SetView(domain.ViewCart)
		require.NoError(t, err)

		s.Logout()
		_, ok := s.Identity()
		assert.False(t, ok)
		assert.Equal(t, domain.ViewHome, s.Navigation().View)
	})

	t.Run("RegisterEmitsWelcome", func(t *testing.T) {
		events := new(MockPublisher)
		events.On("EmitEvent", mock.Anything, domain.ClientEvent{
			Kind:  domain.EventUserRegistered,
			Email: "jane@example.com",
		}).Return(nil).Once()

		s := newTestService(ClientEventsEmitterOpt(events))
		id := s.Register(t.Context(), "jane@example.com", "pw")
		assert.Equal(t, domain.RoleCustomer, id.Role)
		events.AssertExpectations(t)
	})
}

func TestCheckout(t *testing.T) {
	t.Run("PendingCheckoutResumesOnce", func(t *testing.T) {
		s := newTestService()

		state := s.ProceedToCheckout()
		assert.Equal(t, domain.CheckoutAwaitingAuth, state)
		assert.Equal(t, domain.ViewLogin, s.Navigation().View)

		s.Login("jane@example.com", domain.RoleCustomer)
		nav := s.Navigation()
		assert.Equal(t, domain.ViewCheckout, nav.View)
		assert.False(t, nav.PendingCheckout)

		s.Login("john@example.com", domain.RoleCustomer)
		assert.Equal(t, domain.ViewHome, s.Navigation().View)
	})

	t.Run("SignedInGoesStraightToCheckout", func(t *testing.T) {
		s := newTestService()
		s.Login("jane@example.com", domain.RoleCustomer)
		assert.Equal(t, domain.CheckoutActive, s.ProceedToCheckout())
	})

	t.Run("PlaceOrderRequiresIdentity", func(t *testing.T) {
		s := newTestService()
		_, err := s.AddToCartByID("1", "40", "Navy")
		require.NoError(t, err)

		_, err = s.PlaceOrder(t.Context(), "addr", "cod")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		assert.Len(t, s.Cart().Lines, 1)
	})

	t.Run("PlaceOrderValidation", func(t *testing.T) {
		s := newTestService()
		s.Login("jane@example.com", domain.RoleCustomer)

		_, err := s.PlaceOrder(t.Context(), "addr", "cod")
		assert.ErrorIs(t, err, domain.ErrEmptyCart)

		_, err = s.AddToCartByID("1", "40", "Navy")
		require.NoError(t, err)
		_, err = s.PlaceOrder(t.Context(), "addr", " ")
		assert.ErrorIs(t, err, domain.ErrPaymentMethodRequired)
		assert.Len(t, s.Cart().Lines, 1)
	})

	t.Run("OrderIsFrozen", func(t *testing.T) {
		now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		orders := new(MockPublisher)
		orders.On("ProduceOrder", mock.Anything, mock.AnythingOfType("domain.Order")).
			Return(nil).Once()

		s := newTestService(
			OrdersProducerOpt(orders),
			ClockOpt(func() time.Time { return now }),
		)
		id := s.Login("jane@example.com", domain.RoleCustomer)
		_, err := s.AddToCartByID("1", "40", "Navy")
		require.NoError(t, err)
		_, err = s.AddToCartByID("5", "32", "Blue")
		require.NoError(t, err)
		_, err = s.UpdateCartQuantity("5", "32", "Blue", 1)
		require.NoError(t, err)
		s.ProceedToCheckout()

		order, err := s.PlaceOrder(t.Context(), "221B Baker Street", "upi")
		require.NoError(t, err)

		assert.Equal(t, id.ID, order.UserID)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.Equal(t, "2297", order.Total.String())
		assert.Equal(t, now, order.CreatedAt)
		assert.NotEmpty(t, order.ID)
		assert.Empty(t, s.Cart().Lines)
		assert.Equal(t, domain.ViewHome, s.Navigation().View)
		orders.AssertExpectations(t)

		_, err = s.AddToCartByID("1", "40", "Navy")
		require.NoError(t, err)
		_, err = s.UpdateCartQuantity("1", "40", "Navy", 5)
		require.NoError(t, err)

		mine, err := s.MyOrders()
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Len(t, mine[0].Items, 2)
		assert.Equal(t, 1, mine[0].Items[0].Quantity)
		assert.Equal(t, "2297", mine[0].Total.String())
	})

	t.Run("PublishFailureDoesNotFailOrder", func(t *testing.T) {
		orders := new(MockPublisher)
		orders.On("ProduceOrder", mock.Anything, mock.Anything).
			Return(errors.New("broker down"))

		s := newTestService(OrdersProducerOpt(orders))
		s.Login("jane@example.com", domain.RoleCustomer)
		_, err := s.AddToCartByID("1", "40", "Navy")
		require.NoError(t, err)

		_, err = s.PlaceOrder(t.Context(), "addr", "cod")
		require.NoError(t, err)
		assert.Empty(t, s.Cart().Lines)
	})

	t.Run("HistoryMostRecentFirst", func(t *testing.T) {
		s := newTestService()
		jane := s.Login("jane@example.com", domain.RoleCustomer)
		for _, id := range []string{"1", "2"} {
			_, err := s.AddToCartByID(id, "M", "Red")
			require.NoError(t, err)
			_, err = s.PlaceOrder(t.Context(), "addr", "cod")
			require.NoError(t, err)
		}

		_, err := s.Orders()
		assert.ErrorIs(t, err, domain.ErrForbidden)

		s.SignIn(adminCreds.Email, adminCreds.Password)
		all, err := s.Orders()
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "2", all[0].Items[0].Product.ID)
		assert.Equal(t, jane.ID, all[1].UserID)

		mine, err := s.MyOrders()
		require.NoError(t, err)
		assert.Empty(t, mine)
	})
}

func TestNavigation(t *testing.T) {
	t.Run("SetViewUnconditional", func(t *testing.T) {
		s := newTestService()
		nav, err := s.SetView(domain.ViewCheckout)
		require.NoError(t, err)
		assert.Equal(t, domain.ViewCheckout, nav.View)
	})

	t.Run("AdminViewRequiresAdmin", func(t *testing.T) {
		s := newTestService()
		_, err := s.SetView(domain.ViewAdmin)
		assert.ErrorIs(t, err, domain.ErrInvalidRoleTransition)

		s.SignIn(adminCreds.Email, adminCreds.Password)
		nav, err := s.SetView(domain.ViewAdmin)
		require.NoError(t, err)
		assert.Equal(t, domain.ViewAdmin, nav.View)
	})

	t.Run("NavigateToProduct", func(t *testing.T) {
		events := new(MockPublisher)
		events.On("EmitEvent", mock.Anything, domain.ClientEvent{
			Kind:      domain.EventProductViewed,
			ProductID: "2",
		}).Return(nil).Once()

		s := newTestService(ClientEventsEmitterOpt(events))
		nav, err := s.NavigateToProduct(t.Context(), "2")
		require.NoError(t, err)
		assert.Equal(t, domain.ViewProductDetail, nav.View)
		assert.Equal(t, "2", nav.SelectedProductID)
		events.AssertExpectations(t)

		_, err = s.NavigateToProduct(t.Context(), "missing")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.Equal(t, "2", s.Navigation().SelectedProductID)
	})

	t.Run("SnapshotOrdersScopedToIdentity", func(t *testing.T) {
		s := newTestService()
		assert.Nil(t, s.State().Identity)
		assert.Empty(t, s.State().Orders)
	})
}

func TestDraft(t *testing.T) {
	t.Run("AdminOnly", func(t *testing.T) {
		s := newTestService()
		s.SignIn("jane@example.com", "pw")
		_, err := s.Draft()
		assert.ErrorIs(t, err, domain.ErrForbidden)
		_, _, err = s.GenerateDraftDescription(t.Context())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("DescriptionRequiresNameAndCategory", func(t *testing.T) {
		s := newTestService()
		s.SignIn(adminCreds.Email, adminCreds.Password)
		_, _, err := s.GenerateDraftDescription(t.Context())
		assert.ErrorIs(t, err, domain.ErrDraftIncomplete)
	})

	t.Run("DescriptionApplied", func(t *testing.T) {
		adv := new(MockAdvisor)
		adv.On("GenerateDescription", mock.Anything, "Linen Kurta", "Men").
			Return("Breezy linen.").Once()

		s := newTestService(AdvisorOpt(adv))
		s.SignIn(adminCreds.Email, adminCreds.Password)
		d := domain.NewProductDraft()
		d.Name, d.Category = "Linen Kurta", "Men"
		_, err := s.UpdateDraft(d)
		require.NoError(t, err)

		d, applied, err := s.GenerateDraftDescription(t.Context())
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, "Breezy linen.", d.Description)
		adv.AssertExpectations(t)
	})

	t.Run("ImageFailureKeepsPrior", func(t *testing.T) {
		adv := new(MockAdvisor)
		adv.On("GenerateImage", mock.Anything, "FabIndia Linen Kurta Men").
			Return("", false).Once()

		s := newTestService(AdvisorOpt(adv))
		s.SignIn(adminCreds.Email, adminCreds.Password)
		d := domain.NewProductDraft()
		d.Name, d.Brand, d.Category = "Linen Kurta", "FabIndia", "Men"
		_, err := s.UpdateDraft(d)
		require.NoError(t, err)

		_, applied, err := s.GenerateDraftImage(t.Context())
		assert.ErrorIs(t, err, domain.ErrImageUnavailable)
		assert.False(t, applied)

		got, err := s.Draft()
		require.NoError(t, err)
		assert.Equal(t, []string{domain.DefaultDraftImage}, got.Images)
	})

	t.Run("ImageApplied", func(t *testing.T) {
		adv := new(MockAdvisor)
		adv.On("GenerateImage", mock.Anything, "Linen Kurta Men").
			Return("data:image/jpeg;base64,AAAA", true).Once()

		s := newTestService(AdvisorOpt(adv))
		s.SignIn(adminCreds.Email, adminCreds.Password)
		d := domain.NewProductDraft()
		d.Name, d.Category = "Linen Kurta", "Men"
		_, err := s.UpdateDraft(d)
		require.NoError(t, err)

		d, applied, err := s.GenerateDraftImage(t.Context())
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, []string{"data:image/jpeg;base64,AAAA"}, d.Images)
	})

	t.Run("StaleDescriptionDiscarded", func(t *testing.T) {
		adv := newBlockingAdvisor()
		s := newTestService(AdvisorOpt(adv))
		s.SignIn(adminCreds.Email, adminCreds.Password)
		_, err := s.SetView(domain.ViewAdmin)
		require.NoError(t, err)
		d := domain.NewProductDraft()
		d.Name, d.Category = "Linen Kurta", "Men"
		_, err = s.UpdateDraft(d)
		require.NoError(t, err)

		applied := make(chan bool, 1)
		go func() {
			_, ok, _ := s.GenerateDraftDescription(context.Background())
			applied <- ok
		}()

		release := <-adv.started
		_, err = s.SetView(domain.ViewShop)
		require.NoError(t, err)
		release <- "late text"

		assert.False(t, <-applied)
		got, err := s.Draft()
		require.NoError(t, err)
		assert.Empty(t, got.Description)
	})

	t.Run("IdentityOrViewChangeDropsDescription", func(t *testing.T) {
		tests := []struct {
			name   string
			leave  func(s *Service)
			wantV  domain.View
			inCart bool
		}{
			{
				name:  "ProceedToCheckout",
				leave: func(s *Service) { s.ProceedToCheckout() },
				wantV: domain.ViewCheckout,
			},
			{
				name: "CustomerLogin",
				leave: func(s *Service) {
					s.Login("bob@example.com", domain.RoleCustomer)
				},
				wantV: domain.ViewHome,
			},
			{
				name: "PlaceOrder",
				leave: func(s *Service) {
					_, err := s.PlaceOrder(context.Background(), "12 MG Road", "upi")
					require.NoError(t, err)
				},
				wantV:  domain.ViewHome,
				inCart: true,
			},
			{
				name:  "Logout",
				leave: func(s *Service) { s.Logout() },
				wantV: domain.ViewHome,
			},
			{
				name: "NavigateToProduct",
				leave: func(s *Service) {
					_, err := s.NavigateToProduct(context.Background(), "2")
					require.NoError(t, err)
				},
				wantV: domain.ViewProductDetail,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				adv := newBlockingAdvisor()
				s := newTestService(AdvisorOpt(adv))
				s.SignIn(adminCreds.Email, adminCreds.Password)
				if tt.inCart {
					_, err := s.AddToCartByID("1", "40", "Navy")
					require.NoError(t, err)
				}
				_, err := s.SetView(domain.ViewAdmin)
				require.NoError(t, err)
				d := domain.NewProductDraft()
				d.Name, d.Category = "Linen Kurta", "Men"
				_, err = s.UpdateDraft(d)
				require.NoError(t, err)

				applied := make(chan bool, 1)
				go func() {
					_, ok, _ := s.GenerateDraftDescription(context.Background())
					applied <- ok
				}()

				release := <-adv.started
				tt.leave(s)
				assert.Equal(t, tt.wantV, s.Navigation().View)
				release <- "late text"
				assert.False(t, <-applied)

				s.SignIn(adminCreds.Email, adminCreds.Password)
				got, err := s.Draft()
				require.NoError(t, err)
				assert.Empty(t, got.Description)
			})
		}
	})

	t.Run("SignInOutsideAdminViewDropsImage", func(t *testing.T) {
		adv := newBlockingAdvisor()
		s := newTestService(AdvisorOpt(adv))
		s.SignIn(adminCreds.Email, adminCreds.Password)
		d := domain.NewProductDraft()
		d.Name, d.Category = "Linen Kurta", "Men"
		_, err := s.UpdateDraft(d)
		require.NoError(t, err)

		applied := make(chan bool, 1)
		go func() {
			_, ok, _ := s.GenerateDraftImage(context.Background())
			applied <- ok
		}()

		release := <-adv.started
		s.SignIn("jane@example.com", "secret")
		release <- "data:image/jpeg;base64,AAAA"
		assert.False(t, <-applied)

		s.SignIn(adminCreds.Email, adminCreds.Password)
		got, err := s.Draft()
		require.NoError(t, err)
		assert.Equal(t, []string{domain.DefaultDraftImage}, got.Images)
	})

	t.Run("SubmitDraft", func(t *testing.T) {
		s := newTestService()
		s.SignIn(adminCreds.Email, adminCreds.Password)

		_, err := s.SubmitDraft()
		assert.ErrorIs(t, err, domain.ErrDraftIncomplete)

		d := domain.NewProductDraft()
		d.Name = "Party Frock"
		d.Price = decimal.NewFromInt(1499)
		d.Images = []string{""}
		_, err = s.UpdateDraft(d)
		require.NoError(t, err)

		p, err := s.SubmitDraft()
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, []string{domain.DefaultDraftImage}, p.Images)
		assert.Len(t, s.Products(""), 4)

		got, err := s.Draft()
		require.NoError(t, err)
		assert.Empty(t, got.Name)
	})
}

func TestStylist(t *testing.T) {
	t.Run("Greeting", func(t *testing.T) {
		s := newTestService()
		msgs := s.StylistMessages()
		require.Len(t, msgs, 1)
		assert.Equal(t, domain.AuthorAI, msgs[0].Author)
	})

	t.Run("BlankQueryIgnored", func(t *testing.T) {
		s := newTestService()
		msgs, applied := s.AskStylist(t.Context(), "   ")
		assert.False(t, applied)
		assert.Len(t, msgs, 1)
	})

	t.Run("AdviceAppended", func(t *testing.T) {
		adv := new(MockAdvisor)
		adv.On("GetAdvice", mock.Anything, "wedding outfit", mock.MatchedBy(
			func(ps []domain.Product) bool { return len(ps) == 3 },
		)).Return("Try the Anarkali kurta.").Once()

		s := newTestService(AdvisorOpt(adv))
		msgs, applied := s.AskStylist(t.Context(), "wedding outfit")
		assert.True(t, applied)
		require.Len(t, msgs, 3)
		assert.Equal(t, domain.ChatMessage{Author: domain.AuthorUser, Text: "wedding outfit"}, msgs[1])
		assert.Equal(t, domain.ChatMessage{Author: domain.AuthorAI, Text: "Try the Anarkali kurta."}, msgs[2])
		adv.AssertExpectations(t)
	})

	t.Run("SupersededAdviceDropped", func(t *testing.T) {
		adv := newBlockingAdvisor()
		s := newTestService(AdvisorOpt(adv))

		first := make(chan bool, 1)
		go func() {
			_, ok := s.AskStylist(context.Background(), "first")
			first <- ok
		}()
		releaseFirst := <-adv.started

		second := make(chan bool, 1)
		go func() {
			_, ok := s.AskStylist(context.Background(), "second")
			second <- ok
		}()
		releaseSecond := <-adv.started

		releaseFirst <- "answer one"
		assert.False(t, <-first)
		releaseSecond <- "answer two"
		assert.True(t, <-second)

		msgs := s.StylistMessages()
		require.Len(t, msgs, 4)
		assert.Equal(t, "answer two", msgs[3].Text)
	})
}
