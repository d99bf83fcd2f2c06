package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/shop-fusion/config"
	"github.com/niksmo/shop-fusion/internal/adapter"
	"github.com/niksmo/shop-fusion/internal/adapter/catalog"
	"github.com/niksmo/shop-fusion/internal/adapter/gemini"
	"github.com/niksmo/shop-fusion/internal/adapter/httphandler"
	"github.com/niksmo/shop-fusion/internal/adapter/kafka"
	"github.com/niksmo/shop-fusion/internal/core/port"
	"github.com/niksmo/shop-fusion/internal/core/service"
	"github.com/niksmo/shop-fusion/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	orderPlaced schema.Serde
	clientEvent schema.Serde
}

// publishers are nil when no seed brokers are configured.
type publishers struct {
	orders       port.OrdersPublisher
	clientEvents port.ClientEventsPublisher
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	tlsCfg     *tls.Config
	serdes     serdes
	publishers publishers
	advisor    port.Advisor
	service    *service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	if cfg.Broker.Enabled() {
		app.initTLS()
		app.initSerdes()
		app.initOutboundAdapters()
	} else {
		slog.Warn("seed brokers are not set, notifications are disabled")
	}
	app.initAdvisor()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initTLS() {
	const op = "App.initTLS"
	t := app.cfg.Broker.TLS

	tlsCfg, err := adapter.MakeTLSConfig(t.CAFile, t.CertFile, t.KeyFile)
	if err != nil {
		app.fallDown(op, err)
	}
	app.tlsCfg = tlsCfg
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srOpts := []sr.ClientOpt{sr.URLs(urls...)}
	if app.tlsCfg != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(app.tlsCfg))
	}
	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	orderPlacedSS := app.cfg.Broker.Topics.Orders + "-value"
	orderPlacedSerde, err := schema.NewSerdeOrderPlacedV1(
		ctx,
		schema.SubjectOpt(orderPlacedSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	clientEventSS := app.cfg.Broker.Topics.ClientEvents + "-value"
	clientEventSerde, err := schema.NewSerdeClientEventV1(
		ctx,
		schema.SubjectOpt(clientEventSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.orderPlaced = orderPlacedSerde
	app.serdes.clientEvent = clientEventSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	topics := app.cfg.Broker.Topics

	ordersProducer, err := kafka.NewOrdersProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, topics.Orders, app.tlsCfg),
		kafka.ProducerEncoderOpt(app.serdes.orderPlaced),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	clientEventsEmitter, err := kafka.NewClientEventsEmitter(
		seedBrokers, topics.ClientEvents, app.serdes.clientEvent, app.tlsCfg,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.publishers.orders = ordersProducer
	app.publishers.clientEvents = clientEventsEmitter
}

func (app *App) initAdvisor() {
	const op = "App.initAdvisor"
	a := app.cfg.Advisory

	advisor, err := gemini.New(app.ctx, gemini.Config{
		APIKey:      a.APIKey,
		TextModel:   a.TextModel,
		ImageModel:  a.ImageModel,
		MaxAttempts: a.MaxAttempts,
	})
	if err != nil {
		app.fallDown(op, err)
	}
	app.advisor = advisor
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	products, err := catalog.Seed()
	if err != nil {
		app.fallDown(op, err)
	}

	opts := []service.Opt{
		service.CatalogOpt(products),
		service.AdvisorOpt(app.advisor),
		service.AdminCredentialsOpt(service.AdminCredentials{
			Email:    app.cfg.Admin.Email,
			Password: app.cfg.Admin.Password,
		}),
	}
	if app.publishers.orders != nil {
		opts = append(opts, service.OrdersProducerOpt(app.publishers.orders))
	}
	if app.publishers.clientEvents != nil {
		opts = append(opts,
			service.ClientEventsEmitterOpt(app.publishers.clientEvents))
	}

	app.service = service.New(opts...)
	slog.Info("catalog is seeded", "nProducts", len(products))
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	handler := httphandler.NewRouter(app.service)
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.publishers.orders != nil {
		app.publishers.orders.Close()
	}
	if app.publishers.clientEvents != nil {
		app.publishers.clientEvents.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
