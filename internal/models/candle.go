package models

import "time"

// Candle — закрытая свеча OHLCV, хронологический порядок (новая — последняя).
type Candle struct {
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
	Start  time.Time
	End    time.Time
}
