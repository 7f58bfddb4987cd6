package runner

import (
	"context"

	"go.uber.org/fx"

	"momentum_bot/internal/evaluator"
	exchsvc "momentum_bot/internal/modules/exchange/service"
	feedsvc "momentum_bot/internal/modules/pricefeed/service"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			evaluator.New,
			func(c *exchsvc.Client) Exchange { return c },
			func(f *feedsvc.Feed) PriceSource { return f },
			New,
		),
		fx.Invoke(
			func(lc fx.Lifecycle, r *Runner) {
				ctx, cancel := context.WithCancel(context.Background())
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						go r.Run(ctx)
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
