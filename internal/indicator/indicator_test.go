package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum_bot/internal/models"
	"momentum_bot/internal/modules/config"
)

// makeCandles — свечи с high=close+1, low=open-1, объём 10.
func makeCandles(closes ...float64) []models.Candle {
	out := make([]models.Candle, len(closes))
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	prev := closes[0]
	for i, c := range closes {
		out[i] = models.Candle{
			Open:   prev,
			High:   c + 1,
			Low:    prev - 1,
			Close:  c,
			Volume: 10,
			Start:  start.Add(time.Duration(i) * time.Minute),
			End:    start.Add(time.Duration(i+1) * time.Minute),
		}
		prev = c
	}
	return out
}

func rising(n int, from, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}

func TestEMAConstantSeries(t *testing.T) {
	series := make([]float64, 50)
	for i := range series {
		series[i] = 42
	}
	ema := EMA(series, 10)
	require.Len(t, ema, 50)
	for _, v := range ema {
		assert.InDelta(t, 42, v, 1e-9)
	}
}

func TestEMATracksTrend(t *testing.T) {
	ema := EMA(rising(100, 10, 1), 10)
	// EMA отстаёт от растущего ряда, но растёт монотонно
	for i := 1; i < len(ema); i++ {
		assert.Greater(t, ema[i], ema[i-1])
	}
	assert.Less(t, ema[99], 109.0)
}

func TestRSIBounds(t *testing.T) {
	closes := []float64{10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17, 16, 18, 17, 19, 18, 20}
	for _, v := range RSI(closes, 14) {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestRSIExtremes(t *testing.T) {
	up := RSI(rising(40, 10, 1), 14)
	assert.Greater(t, up[len(up)-1], 70.0, "чистый рост должен давать высокий RSI")

	down := RSI(rising(40, 100, -1), 14)
	assert.Less(t, down[len(down)-1], 30.0)
}

func TestMACDPositiveInUptrend(t *testing.T) {
	line, sig := MACD(rising(120, 100, 0.5), 12, 26, 9)
	require.Len(t, line, 120)
	require.Len(t, sig, 120)
	assert.Greater(t, line[119], 0.0)
}

func TestATRFlatSeriesIsZero(t *testing.T) {
	candles := make([]models.Candle, 30)
	for i := range candles {
		candles[i] = models.Candle{Open: 50, High: 50, Low: 50, Close: 50}
	}
	atr := ATR(candles, 14)
	assert.InDelta(t, 0, atr[29], 1e-9)
}

func TestATRPositiveWithRange(t *testing.T) {
	atr := ATR(makeCandles(rising(40, 100, 1)...), 14)
	assert.Greater(t, atr[39], 0.0)
}

func TestADXStrongTrend(t *testing.T) {
	adx := ADX(makeCandles(rising(80, 100, 1)...), 14)
	last := adx[79]
	assert.Greater(t, last, 50.0, "монотонный тренд даёт высокий ADX")
	assert.LessOrEqual(t, last, 100.0)
}

func TestStochasticCloseOnHigh(t *testing.T) {
	// закрытие на максимуме окна -> %K = 100
	candles := makeCandles(rising(30, 100, 1)...)
	for i := range candles {
		candles[i].High = candles[i].Close
	}
	k, d := Stochastic(candles, 14, 3)
	assert.InDelta(t, 100, k[29], 1e-9)
	assert.Greater(t, d[29], 90.0)
}

func TestPSARBelowPriceInUptrend(t *testing.T) {
	candles := makeCandles(rising(50, 100, 1)...)
	psar := PSAR(candles, 0.02, 0.2)
	require.Len(t, psar, 50)
	assert.Less(t, psar[49], candles[49].Close)
}

func TestVolumeRatio(t *testing.T) {
	candles := makeCandles(rising(22, 100, 1)...)
	candles[21].Volume = 25 // остальные по 10
	assert.InDelta(t, 2.5, VolumeRatio(candles, 20), 1e-9)
}

func testStrategyConfig() *config.StrategyConfig {
	return &config.StrategyConfig{
		EMAShort: 7, EMAMid: 25, EMALong: 99,
		RSIPeriod:  14,
		MACDFast:   12, MACDSlow: 26, MACDSignal: 9,
		VolumeLookback: 20,
		ADXPeriod:      14,
		StochPeriod:    14, StochSmooth: 3,
		PSARStep: 0.02, PSARMax: 0.2,
		ATRPeriod: 14,
	}
}

func TestBuildSnapshotTooShort(t *testing.T) {
	sc := testStrategyConfig()
	_, err := BuildSnapshot(makeCandles(rising(20, 100, 1)...), sc)
	require.Error(t, err)
}

func TestBuildSnapshot(t *testing.T) {
	sc := testStrategyConfig()
	candles := makeCandles(rising(150, 100, 0.5)...)

	snap, err := BuildSnapshot(candles, sc)
	require.NoError(t, err)

	assert.Equal(t, candles[149].Close, snap.Price)
	assert.Equal(t, candles[149].End, snap.At)
	assert.Len(t, snap.EMAShort, 150)
	assert.Len(t, snap.RSI, 150)
	assert.Len(t, snap.PSAR, 150)
	assert.Greater(t, snap.VolumeRatio, 0.0)
}
