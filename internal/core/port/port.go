package port

import (
	"context"

	"github.com/niksmo/shop-fusion/internal/core/domain"
)

type closer interface {
	Close()
}

// Advisor is the generative service boundary. Implementations never
// return errors; failures surface as fallback values.
type Advisor interface {
	GenerateDescription(ctx context.Context, name, category string) string
	GenerateImage(ctx context.Context, prompt string) (string, bool)
	GetAdvice(ctx context.Context, query string, catalog []domain.Product) string
}

type OrdersProducer interface {
	ProduceOrder(context.Context, domain.Order) error
}

type ClientEventsEmitter interface {
	EmitEvent(context.Context, domain.ClientEvent) error
}

type OrdersPublisher interface {
	OrdersProducer
	closer
}

type ClientEventsPublisher interface {
	ClientEventsEmitter
	closer
}
