package telegram

import (
	"context"

	"go.uber.org/fx"

	"momentum_bot/pkg/logger"

	"momentum_bot/internal/modules/config"
	journalsvc "momentum_bot/internal/modules/journal/service"
	"momentum_bot/internal/modules/telegram_bot/service"
	"momentum_bot/internal/notify"
	"momentum_bot/internal/runner"
)

func Module() fx.Option {
	return fx.Module("telegram",
		// Notifier: без токена/чата — stdout-заглушка
		fx.Provide(
			func(cfg *config.Config, repo journalsvc.Store) (notify.Notifier, error) {
				if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
					logger.Info("[TG] token/chat_id не заданы, уведомления в stdout")
					return notify.NewStdout(), nil
				}
				return service.NewTelegram(cfg, repo)
			},
		),

		// Привязка раннера и запуск цикла обновлений.
		// Контроллер вяжем здесь, а не в конструкторе: иначе цикл
		// telegram <-> runner в графе зависимостей.
		fx.Invoke(
			func(lc fx.Lifecycle, n notify.Notifier, r *runner.Runner) {
				tg, ok := n.(*service.Telegram)
				if !ok {
					return
				}
				tg.BindController(r)

				ctx, cancel := context.WithCancel(context.Background())
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						tg.Start(ctx)
						return nil
					},
					OnStop: func(context.Context) error {
						cancel()
						tg.Stop()
						return nil
					},
				})
			},
		),
	)
}
