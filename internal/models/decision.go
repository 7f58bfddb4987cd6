package models

// Side — направление ордера: "BUY"/"SELL" или пустая строка.
type Side string

const (
	SideNone Side = ""
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ExitReason — причина выхода. Порядок приоритета фиксированный:
// hard-stop -> trailing -> take-profit -> разворот EMA -> разворот PSAR.
type ExitReason string

const (
	ExitNone          ExitReason = ""
	ExitHardStop      ExitReason = "HARD_STOP"
	ExitTrailingStop  ExitReason = "TRAILING_STOP"
	ExitTakeProfit    ExitReason = "TAKE_PROFIT"
	ExitTrendReversal ExitReason = "TREND_REVERSAL"
	ExitParabolic     ExitReason = "PSAR_FLIP"
)

// EntryOrder — решение на вход: рассчитанные уровни для новой позиции.
type EntryOrder struct {
	Qty float64
	SL  float64
	TP  float64
	ATR float64 // ATR на момент решения, ляжет в Position.EntryATR
}
