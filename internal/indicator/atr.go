package indicator

import (
	"math"

	"momentum_bot/internal/models"
)

// TrueRange первой свечи — просто high-low, дальше с учётом гэпа.
func trueRange(c models.Candle, prevClose float64) float64 {
	tr := c.High - c.Low
	if hc := math.Abs(c.High - prevClose); hc > tr {
		tr = hc
	}
	if lc := math.Abs(c.Low - prevClose); lc > tr {
		tr = lc
	}
	return tr
}

// ATR по Уайлдеру: сид — среднее первых n TR, дальше
// atr = (atr*(n-1) + tr) / n. До прогрева — бегущее среднее TR.
func ATR(candles []models.Candle, n int) []float64 {
	if len(candles) == 0 || n <= 0 {
		return nil
	}
	out := make([]float64, len(candles))
	sum := 0.0
	for i, c := range candles {
		tr := c.High - c.Low
		if i > 0 {
			tr = trueRange(c, candles[i-1].Close)
		}
		if i < n {
			sum += tr
			out[i] = sum / float64(i+1)
			continue
		}
		out[i] = (out[i-1]*float64(n-1) + tr) / float64(n)
	}
	return out
}
