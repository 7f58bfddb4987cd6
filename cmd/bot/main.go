package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"momentum_bot/pkg/logger"
	"momentum_bot/pkg/tracing"

	"momentum_bot/internal/modules/config"
	"momentum_bot/internal/modules/exchange"
	"momentum_bot/internal/modules/health"
	"momentum_bot/internal/modules/journal"
	"momentum_bot/internal/modules/pricefeed"
	telegram "momentum_bot/internal/modules/telegram_bot"
	"momentum_bot/internal/runner"
)

func main() {
	// .env до всего: конфиг читает окружение
	_ = godotenv.Load()

	if err := logger.Init("momentum-bot"); err != nil {
		log.Fatalf("logger init: %v", err)
	}

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		journal.Module(),
		exchange.Module(),
		pricefeed.Module(),
		runner.Module(),
		telegram.Module(),
		health.Module(),
		fx.Invoke(initTracing),
	)
	app.Run()
}

func initTracing(lc fx.Lifecycle, cfg *config.Config) error {
	if !cfg.Tracing.Enabled {
		return nil
	}
	tracing.SetServiceName(cfg.Tracing.Service)
	_, closeTracer, err := tracing.InitTracer(tracing.Config{
		Host: cfg.Tracing.AgentHost,
		Port: cfg.Tracing.AgentPort,
	})
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeTracer()
			return nil
		},
	})
	return nil
}
