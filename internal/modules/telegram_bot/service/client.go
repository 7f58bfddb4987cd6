package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"momentum_bot/pkg/logger"

	"momentum_bot/internal/models"
	"momentum_bot/internal/modules/config"
	journalsvc "momentum_bot/internal/modules/journal/service"
)

// Controller — управление раннером из чата. Привязывается после сборки
// графа (BindController), чтобы не закольцевать конструкторы.
type Controller interface {
	Status() models.BotStatus
	Pause()
	Resume()
}

type pending struct {
	ch     chan bool
	msgID  int
	prompt string
}

// Telegram — единственный чат: исходящие уведомления, окно отмены ордера,
// read-only команды над статусом и журналом.
type Telegram struct {
	bot    *tgbot.BotAPI
	cfg    *config.Config
	chatID int64
	repo   journalsvc.Store

	mu       sync.Mutex
	pendings map[string]*pending

	ctl Controller
}

func NewTelegram(cfg *config.Config, repo journalsvc.Store) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}

	return &Telegram{
		bot:      b,
		cfg:      cfg,
		chatID:   cfg.Telegram.ChatID,
		repo:     repo,
		pendings: make(map[string]*pending),
	}, nil
}

func (t *Telegram) BindController(ctl Controller) { t.ctl = ctl }

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	m := tgbot.NewMessage(t.chatID, msg)
	m.ParseMode = tgbot.ModeMarkdown
	if _, err := t.bot.Send(m); err != nil {
		// fire-and-forget: доставка не критична
		logger.Error("[TG] send error: %v", err)
	}
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

func (t *Telegram) editReplyMarkupRemove(chatID int64, msgID int) error {
	rm := tgbot.InlineKeyboardMarkup{InlineKeyboard: [][]tgbot.InlineKeyboardButton{}}
	edit := tgbot.NewEditMessageReplyMarkup(chatID, msgID, rm)
	_, err := t.bot.Request(edit)
	return err
}

func (t *Telegram) editText(chatID int64, msgID int, text string) error {
	edit := tgbot.NewEditMessageText(chatID, msgID, text)
	_, err := t.bot.Request(edit)
	return err
}

// ConfirmCancel — сообщение с кнопкой отмены. Таймаут = ордер идёт,
// нажатие CANCEL до таймаута = ордер снят. Обратная полярность к
// обычному confirm: молчание здесь — согласие.
func (t *Telegram) ConfirmCancel(ctx context.Context, prompt string, delay time.Duration) bool {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return true
	}

	token := fmt.Sprintf("%d", time.Now().UnixNano())
	p := &pending{
		ch:     make(chan bool, 1),
		prompt: prompt,
	}

	t.mu.Lock()
	t.pendings[token] = p
	t.mu.Unlock()

	btn := tgbot.NewInlineKeyboardButtonData("❌ Отменить ордер", "CANCEL::"+token)
	kb := tgbot.NewInlineKeyboardMarkup(tgbot.NewInlineKeyboardRow(btn))

	msg := tgbot.NewMessage(t.chatID, fmt.Sprintf("%s\n\n⏳ Ордер уйдёт через %s", prompt, delay))
	msg.ReplyMarkup = kb

	sent, _ := t.bot.Send(msg)
	p.msgID = sent.MessageID

	tmr := time.NewTimer(delay)
	defer tmr.Stop()

	cleanup := func(suffix string) {
		_ = t.editReplyMarkupRemove(t.chatID, p.msgID)
		_ = t.editText(t.chatID, p.msgID, fmt.Sprintf("%s\n\n%s", prompt, suffix))
		t.mu.Lock()
		delete(t.pendings, token)
		t.mu.Unlock()
	}

	select {
	case <-p.ch:
		cleanup("❌ Отменено вручную")
		return false
	case <-tmr.C:
		cleanup("📤 Ордер отправлен")
		return true
	case <-ctx.Done():
		cleanup("⛔️ Остановка бота, ордер снят")
		return false
	}
}

// handleCallback — ждём CANCEL::token от кнопки окна отмены.
func (t *Telegram) handleCallback(cb *tgbot.CallbackQuery) {
	if cb == nil {
		return
	}

	// ответ Telegram для остановки спиннера
	_, _ = t.bot.Request(tgbot.NewCallback(cb.ID, ""))

	data := cb.Data
	var verb, token string
	for i := 0; i < len(data); i++ {
		if i+1 < len(data) && data[i] == ':' && data[i+1] == ':' {
			verb, token = data[:i], data[i+2:]
			break
		}
	}
	if verb != "CANCEL" || token == "" {
		return
	}

	t.mu.Lock()
	p, ok := t.pendings[token]
	t.mu.Unlock()
	if !ok {
		return
	}

	p.ch <- true
	close(p.ch)
}

func (t *Telegram) Stop() {}
