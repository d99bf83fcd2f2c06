package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/shop-fusion/internal/core/domain"
	"github.com/niksmo/shop-fusion/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

const currencyINR = "INR"

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

// ProducerClientOpt creates a [kgo.Client] producing to topic. A nil
// tlsCfg dials in plaintext.
func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string, tlsCfg *tls.Config,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kgoOpts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		}
		if tlsCfg != nil {
			kgoOpts = append(kgoOpts, kgo.DialTLSConfig(tlsCfg))
		}

		cl, err := kgo.NewClient(kgoOpts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// ProducerWithClientOpt uses an already built client.
func ProducerWithClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("producer client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func orderToSchemaV1(v domain.Order) (s schema.OrderPlacedV1) {
	s.OrderID = v.ID
	s.UserID = v.UserID
	s.Total = v.Total.String()
	s.Currency = currencyINR
	s.Status = string(v.Status)
	s.Address = v.Address
	s.PaymentMethod = v.PaymentMethod
	s.CreatedAt = v.CreatedAt.UnixMilli()

	s.Items = make([]schema.OrderLineV1, len(v.Items))
	for i, l := range v.Items {
		s.Items[i] = schema.OrderLineV1{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Brand:     l.Product.Brand,
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
			Price:     l.Product.Price.String(),
		}
	}
	return
}

func clientEventToSchemaV1(
	v domain.ClientEvent, occurredAt int64,
) schema.ClientEventV1 {
	return schema.ClientEventV1{
		Kind:       v.Kind,
		Email:      v.Email,
		ProductID:  v.ProductID,
		Query:      v.Query,
		OccurredAt: occurredAt,
	}
}
