package indicator

import (
	"fmt"

	"momentum_bot/internal/models"
	"momentum_bot/internal/modules/config"
)

// VolumeRatio — объём последней свечи к среднему за lookback предыдущих.
func VolumeRatio(candles []models.Candle, lookback int) float64 {
	if len(candles) < 2 || lookback <= 0 {
		return 0
	}
	lo := len(candles) - 1 - lookback
	if lo < 0 {
		lo = 0
	}
	sum := 0.0
	cnt := 0
	for i := lo; i < len(candles)-1; i++ {
		sum += candles[i].Volume
		cnt++
	}
	if cnt == 0 || sum == 0 {
		return 0
	}
	avg := sum / float64(cnt)
	return candles[len(candles)-1].Volume / avg
}

// MinHistory — сколько закрытых свечей нужно, чтобы все индикаторы прогрелись.
func MinHistory(sc *config.StrategyConfig) int {
	need := sc.EMALong
	if n := sc.MACDSlow + sc.MACDSignal; n > need {
		need = n
	}
	if n := 2 * sc.ADXPeriod; n > need {
		need = n
	}
	if n := sc.RSIPeriod + 1; n > need {
		need = n
	}
	if n := sc.ATRPeriod + 1; n > need {
		need = n
	}
	if n := sc.StochPeriod + sc.StochSmooth; n > need {
		need = n
	}
	if n := sc.VolumeLookback + 1; n > need {
		need = n
	}
	return need + 10 // запас, чтобы сглаживания устаканились
}

// BuildSnapshot собирает срез индикаторов по окну свечей.
// Хронология входа: самая свежая свеча — последняя.
func BuildSnapshot(candles []models.Candle, sc *config.StrategyConfig) (*models.IndicatorSnapshot, error) {
	if need := MinHistory(sc); len(candles) < need {
		return nil, fmt.Errorf("история коротка: есть %d свечей, нужно %d", len(candles), need)
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	line, sig := MACD(closes, sc.MACDFast, sc.MACDSlow, sc.MACDSignal)
	k, d := Stochastic(candles, sc.StochPeriod, sc.StochSmooth)
	last := candles[len(candles)-1]

	return &models.IndicatorSnapshot{
		Price: last.Close,

		EMAShort: EMA(closes, sc.EMAShort),
		EMAMid:   EMA(closes, sc.EMAMid),
		EMALong:  EMA(closes, sc.EMALong),

		RSI: RSI(closes, sc.RSIPeriod),

		MACD:       line,
		MACDSignal: sig,

		ATR: ATR(candles, sc.ATRPeriod),
		ADX: ADX(candles, sc.ADXPeriod),

		StochK: k,
		StochD: d,

		PSAR: PSAR(candles, sc.PSARStep, sc.PSARMax),

		VolumeRatio: VolumeRatio(candles, sc.VolumeLookback),

		At: last.End,
	}, nil
}
