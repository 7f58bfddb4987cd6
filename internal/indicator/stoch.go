package indicator

import "momentum_bot/internal/models"

// Stochastic: %K = 100*(close-minN)/(maxN-minN), %D = SMA(%K, smooth).
// Плоское окно (max==min) даёт нейтральные 50.
func Stochastic(candles []models.Candle, n, smooth int) (k, d []float64) {
	if len(candles) == 0 || n <= 0 || smooth <= 0 {
		return nil, nil
	}
	k = make([]float64, len(candles))
	for i := range candles {
		lo := i - n + 1
		if lo < 0 {
			lo = 0
		}
		hi, low := candles[lo].High, candles[lo].Low
		for j := lo + 1; j <= i; j++ {
			if candles[j].High > hi {
				hi = candles[j].High
			}
			if candles[j].Low < low {
				low = candles[j].Low
			}
		}
		if hi == low {
			k[i] = 50
			continue
		}
		k[i] = 100 * (candles[i].Close - low) / (hi - low)
	}
	d = SMA(k, smooth)
	return k, d
}
