package pricefeed

import (
	"context"

	"go.uber.org/fx"

	"momentum_bot/internal/modules/pricefeed/service"
)

func Module() fx.Option {
	return fx.Module("pricefeed",
		fx.Provide(
			service.NewFeed,
		),
		fx.Invoke(
			func(lc fx.Lifecycle, f *service.Feed) {
				ctx, cancel := context.WithCancel(context.Background())
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						go f.Run(ctx)
						return nil
					},
					OnStop: func(context.Context) error {
						cancel()
						return nil
					},
				})
			},
		),
	)
}
