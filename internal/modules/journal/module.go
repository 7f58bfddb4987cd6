package journal

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"momentum_bot/internal/modules/config"
	"momentum_bot/internal/modules/journal/service"
	"momentum_bot/pkg/db"
)

// Module выбирает бэкенд журнала по конфигу: файл по умолчанию,
// postgres — когда задан DSN.
func Module() fx.Option {
	return fx.Module("journal",
		fx.Provide(
			func(ctx context.Context, cfg *config.Config) (service.Store, error) {
				switch cfg.Journal.Backend {
				case "", "file":
					return service.NewFile(cfg.Journal.Path), nil
				case "postgres":
					pool, err := db.NewPool(ctx, db.PoolConfig{DSN: cfg.Journal.PostgresDSN})
					if err != nil {
						return nil, fmt.Errorf("journal pool: %w", err)
					}
					if err := pool.Ping(ctx); err != nil {
						return nil, fmt.Errorf("journal ping: %w", err)
					}
					return service.NewPg(ctx, db.NewPgTxManager(pool))
				default:
					return nil, fmt.Errorf("unknown journal backend %q", cfg.Journal.Backend)
				}
			},
		),
	)
}
