package models

import "time"

type TradeAction string

const (
	TradeEntry TradeAction = "ENTRY"
	TradeExit  TradeAction = "EXIT"
)

// TradeRecord — одна строка журнала сделок. Журнал append-only.
type TradeRecord struct {
	ID      string      `json:"id"`
	Time    time.Time   `json:"time"`
	Symbol  string      `json:"symbol"`
	Action  TradeAction `json:"action"`
	Price   float64     `json:"price"`
	Qty     float64     `json:"qty"`
	Reason  string      `json:"reason"`
	Capital float64     `json:"capital"` // капитал после применения компаундинга
}
