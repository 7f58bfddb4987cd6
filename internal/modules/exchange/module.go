package exchange

import (
	"go.uber.org/fx"

	"momentum_bot/internal/modules/exchange/service"
)

func Module() fx.Option {
	return fx.Module("exchange",
		fx.Provide(
			service.NewClient,
		),
	)
}
