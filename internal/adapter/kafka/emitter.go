package kafka

import (
	"context"
	"crypto/tls"
	"log/slog"
	"time"

	"github.com/lovoo/goka"
	"github.com/niksmo/shop-fusion/internal/core/domain"
	"github.com/niksmo/shop-fusion/internal/core/port"
	"github.com/niksmo/shop-fusion/pkg/schema"
)

var _ port.ClientEventsPublisher = (*ClientEventsEmitter)(nil)

// A clientEventCodec used for serde [schema.ClientEventV1]
type clientEventCodec struct {
	serde Serde
}

func (c clientEventCodec) Encode(v any) ([]byte, error) {
	const op = "clientEventCodec.Encode"
	if _, ok := v.(schema.ClientEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c clientEventCodec) Decode(data []byte) (any, error) {
	const op = "clientEventCodec.Decode"
	var s schema.ClientEventV1
	if err := c.serde.Decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

type gokaEmitter interface {
	EmitSync(key string, msg any) error
	Finish() error
}

// A ClientEventsEmitter publishes [domain.ClientEvent] keyed by email.
type ClientEventsEmitter struct {
	ge  gokaEmitter
	now func() time.Time
}

// NewClientEventsEmitter creates a goka emitter for topic. A nil tlsCfg
// dials in plaintext.
func NewClientEventsEmitter(
	seedBrokers []string, topic string, serde Serde, tlsCfg *tls.Config,
) (ClientEventsEmitter, error) {
	const op = "NewClientEventsEmitter"

	saramaCfg := goka.DefaultConfig()
	if tlsCfg != nil {
		saramaCfg.Net.TLS.Enable = true
		saramaCfg.Net.TLS.Config = tlsCfg
	}

	ge, err := goka.NewEmitter(
		seedBrokers, goka.Stream(topic), clientEventCodec{serde},
		goka.WithEmitterProducerBuilder(
			goka.ProducerBuilderWithConfig(saramaCfg),
		),
	)
	if err != nil {
		return ClientEventsEmitter{}, opErr(err, op)
	}
	return ClientEventsEmitter{ge: ge, now: time.Now}, nil
}

func (e ClientEventsEmitter) EmitEvent(
	ctx context.Context, evt domain.ClientEvent,
) error {
	const op = "ClientEventsEmitter.EmitEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	s := clientEventToSchemaV1(evt, e.now().UnixMilli())
	if err := e.ge.EmitSync(evt.Email, s); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (e ClientEventsEmitter) Close() {
	const op = "ClientEventsEmitter.Close"
	log := slog.With("op", op)

	log.Info("closing emitter...")
	if err := e.ge.Finish(); err != nil {
		log.Error("failed to finish gracefully", "err", err)
		return
	}
	log.Info("emitter is closed")
}
