package models

import "time"

// BotStatus — read-only снимок состояния для телеграм-команд и health.
// Пересобирается циклом в конце каждого тика.
type BotStatus struct {
	Symbol string
	Paused bool

	Capital  float64
	Position *Position // копия, не живой указатель

	LastPrice float64 // из WS-фида, 0 если фид молчит
	PriceAt   time.Time
	LastTick  time.Time

	PendingSide Side // направление с висящим отложенным ордером
}
