package service

import (
	"context"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const recentLogsN = 10

// Start — long-polling: команды + callback окна отмены.
func (t *Telegram) Start(ctx context.Context) {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message", "callback_query"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd := <-updates:
				t.handleUpdate(ctx, upd)
			}
		}
	}()
}

func (t *Telegram) handleUpdate(ctx context.Context, upd tgbot.Update) {
	if upd.CallbackQuery != nil {
		t.handleCallback(upd.CallbackQuery)
		return
	}

	msg := upd.Message
	if msg == nil || msg.Chat == nil || msg.Chat.ID != t.chatID || !msg.IsCommand() {
		return
	}

	switch msg.Command() {
	case "start":
		t.Send(menuText)
	case "status":
		t.handleStatus()
	case "logs":
		t.handleLogs(ctx)
	case "pause":
		t.handlePause()
	case "resume":
		t.handleResume()
	case "settings":
		t.Send(formatSettings(&t.cfg.Strategy, &t.cfg.Sizing))
	default:
		t.Send("🤷 Неизвестная команда, /start покажет меню")
	}
}

const menuText = "*🤖 Momentum bot*\n\n" +
	"/status — позиция, капитал, живая цена\n" +
	"/logs — последние записи журнала\n" +
	"/settings — активные пороги стратегии\n" +
	"/pause — не открывать новые позиции\n" +
	"/resume — снять паузу\n"

func (t *Telegram) handleStatus() {
	if t.ctl == nil {
		t.Send("❗️ Раннер ещё не поднялся")
		return
	}
	t.Send(formatStatus(t.ctl.Status()))
}

func (t *Telegram) handleLogs(ctx context.Context) {
	recs, err := t.repo.Recent(ctx, recentLogsN)
	if err != nil {
		t.Sendf("❗️ Ошибка чтения журнала: %v", err)
		return
	}
	t.Send(formatRecords(recs))
}

func (t *Telegram) handlePause() {
	if t.ctl == nil {
		t.Send("❗️ Раннер ещё не поднялся")
		return
	}
	t.ctl.Pause()
	t.Send("⏸ Пауза: решения не принимаются, статус продолжает обновляться")
}

func (t *Telegram) handleResume() {
	if t.ctl == nil {
		t.Send("❗️ Раннер ещё не поднялся")
		return
	}
	t.ctl.Resume()
	t.Send("▶️ Пауза снята")
}
