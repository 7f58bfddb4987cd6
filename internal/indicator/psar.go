package indicator

import "momentum_bot/internal/models"

// PSAR — параболический стоп Уайлдера с ускорением step..max.
// Стартовое направление — по первым двум закрытиям.
func PSAR(candles []models.Candle, step, max float64) []float64 {
	if len(candles) == 0 || step <= 0 || max <= 0 {
		return nil
	}
	out := make([]float64, len(candles))
	out[0] = candles[0].Low
	if len(candles) == 1 {
		return out
	}

	up := candles[1].Close >= candles[0].Close
	af := step
	var sar, ep float64
	if up {
		sar = candles[0].Low
		ep = candles[1].High
	} else {
		sar = candles[0].High
		ep = candles[1].Low
	}
	out[1] = sar

	for i := 2; i < len(candles); i++ {
		c := candles[i]
		sar = sar + af*(ep-sar)

		if up {
			// SAR не может зайти выше минимумов двух прошлых свечей
			if l := candles[i-1].Low; sar > l {
				sar = l
			}
			if l := candles[i-2].Low; sar > l {
				sar = l
			}
			if c.Low < sar { // разворот вниз
				up = false
				sar = ep
				ep = c.Low
				af = step
			} else if c.High > ep {
				ep = c.High
				af += step
				if af > max {
					af = max
				}
			}
		} else {
			if h := candles[i-1].High; sar < h {
				sar = h
			}
			if h := candles[i-2].High; sar < h {
				sar = h
			}
			if c.High > sar { // разворот вверх
				up = true
				sar = ep
				ep = c.High
				af = step
			} else if c.Low < ep {
				ep = c.Low
				af += step
				if af > max {
					af = max
				}
			}
		}
		out[i] = sar
	}
	return out
}
