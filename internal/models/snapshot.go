package models

import "time"

// IndicatorSnapshot — неизменяемый срез индикаторов на один тик.
// Все последовательности хронологические, решающая логика смотрит
// только на последние 1-2 элемента.
type IndicatorSnapshot struct {
	Price float64 // close последней свечи

	EMAShort []float64
	EMAMid   []float64
	EMALong  []float64

	RSI []float64

	MACD       []float64
	MACDSignal []float64

	ATR []float64
	ADX []float64

	StochK []float64
	StochD []float64

	PSAR []float64

	// последний объём / средний за lookback
	VolumeRatio float64

	At time.Time // End последней свечи
}
