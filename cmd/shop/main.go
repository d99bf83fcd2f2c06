package main

import (
	"context"
	"time"

	"github.com/niksmo/shop-fusion/config"
	"github.com/niksmo/shop-fusion/internal/app"
	"github.com/niksmo/shop-fusion/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	shop := app.New(sigCtx, cfg)

	shop.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	shop.Close(ctx)
}
