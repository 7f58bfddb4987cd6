package notify

import (
	"context"
	"log"
	"time"
)

// Notifier — исходящие сообщения. Send/Sendf — fire-and-forget:
// ошибки доставки логируются и глотаются, бизнес-логика их не видит.
type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
	// ConfirmCancel — окно ручной отмены перед отправкой ордера:
	// true по истечении delay (ставим ордер), false если отменили.
	ConfirmCancel(ctx context.Context, prompt string, delay time.Duration) bool
}

// Stdout — заглушка без телеграма: всё в лог, ордера без задержки.
type Stdout struct{}

func NewStdout() *Stdout                           { return &Stdout{} }
func (s *Stdout) Send(msg string)                  { log.Println(msg) }
func (s *Stdout) Sendf(format string, args ...any) { log.Printf(format, args...) }
func (s *Stdout) ConfirmCancel(ctx context.Context, prompt string, delay time.Duration) bool {
	log.Printf("ORDER (auto, no cancel window): %s", prompt)
	return true
}
