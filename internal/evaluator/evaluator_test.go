package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum_bot/internal/models"
	"momentum_bot/internal/modules/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Strategy: config.StrategyConfig{
			RSIMin:         48,
			RSIMax:         62,
			MACDMargin:     1.1,
			VolumeSpike:    2.2,
			ADXMin:         28,
			PriceEMAMargin: 1.002,
			SessionStart:   8,
			SessionEnd:     22,
			HardStopATR:    1.5,
			TakeProfitATR:  3.0,
			Trailing: config.TrailingConfig{
				ActivationATR: 1.0,
				FloorATR:      0.3,
				StepATR:       0.8,
				MaxDeviation:  0.05,
			},
		},
		Sizing: config.SizingConfig{
			RiskFraction: 0.9,
			QtyDecimals:  5,
			CompoundRate: 0.01,
		},
	}
}

// favorableSnapshot — эталонный сценарий, в котором вход обязан сработать.
func favorableSnapshot() *models.IndicatorSnapshot {
	return &models.IndicatorSnapshot{
		Price:       101.5,
		EMAShort:    []float64{101},
		EMAMid:      []float64{100},
		EMALong:     []float64{98},
		RSI:         []float64{55},
		MACD:        []float64{1.2},
		MACDSignal:  []float64{1.0},
		ATR:         []float64{2.0},
		ADX:         []float64{30},
		StochK:      []float64{60},
		StochD:      []float64{50},
		PSAR:        []float64{99},
		VolumeRatio: 2.5,
	}
}

func TestEntryReferenceScenario(t *testing.T) {
	ev := New(testConfig())

	order, ok := ev.Entry(favorableSnapshot(), 14, 1000)
	require.True(t, ok)
	require.NotNil(t, order)

	// SL/TP — ATR-кратные от цены решения
	assert.InDelta(t, 101.5-2.0*1.5, order.SL, 1e-9)
	assert.InDelta(t, 101.5+2.0*3.0, order.TP, 1e-9)
	assert.InDelta(t, 2.0, order.ATR, 1e-9)
	assert.Greater(t, order.Qty, 0.0)
}

// Чистая конъюнкция: ломаем по одному условию, остальные благоприятные.
func TestEntrySingleConjunctBlocks(t *testing.T) {
	cases := []struct {
		name   string
		mut    func(s *models.IndicatorSnapshot)
		hour   int
	}{
		{"ema order broken", func(s *models.IndicatorSnapshot) { s.EMAMid = []float64{102} }, 14},
		{"rsi above band", func(s *models.IndicatorSnapshot) { s.RSI = []float64{65} }, 14},
		{"rsi below band", func(s *models.IndicatorSnapshot) { s.RSI = []float64{40} }, 14},
		{"macd margin not met", func(s *models.IndicatorSnapshot) { s.MACD = []float64{1.05} }, 14},
		{"volume no spike", func(s *models.IndicatorSnapshot) { s.VolumeRatio = 2.0 }, 14},
		{"adx weak", func(s *models.IndicatorSnapshot) { s.ADX = []float64{20} }, 14},
		{"stoch k under d", func(s *models.IndicatorSnapshot) { s.StochK = []float64{45} }, 14},
		{"price under ema margin", func(s *models.IndicatorSnapshot) { s.Price = 101.1 }, 14},
		{"hour after session", func(s *models.IndicatorSnapshot) {}, 23},
		{"hour before session", func(s *models.IndicatorSnapshot) {}, 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := New(testConfig())
			s := favorableSnapshot()
			tc.mut(s)
			_, ok := ev.Entry(s, tc.hour, 1000)
			assert.False(t, ok)
		})
	}
}

func TestEntrySessionBoundsInclusive(t *testing.T) {
	ev := New(testConfig())
	_, ok := ev.Entry(favorableSnapshot(), 8, 1000)
	assert.True(t, ok, "нижняя граница окна включительно")
	_, ok = ev.Entry(favorableSnapshot(), 22, 1000)
	assert.True(t, ok, "верхняя граница окна включительно")
}

func exitPosition() *models.Position {
	return &models.Position{
		Symbol:   "BTCUSDT",
		Qty:      1,
		Entry:    100,
		SL:       95,
		TP:       110,
		Highest:  100,
		EntryATR: 2,
	}
}

func neutralSnapshot(price float64) *models.IndicatorSnapshot {
	// ни одно из выходных условий, кроме ценовых, не активно
	return &models.IndicatorSnapshot{
		Price:    price,
		EMAShort: []float64{101},
		EMAMid:   []float64{100},
		PSAR:     []float64{90},
	}
}

func TestExitPriorityHardStopFirst(t *testing.T) {
	ev := New(testConfig())
	p := exitPosition()
	// hard-stop и take-profit истинны одновременно: цена между TP и SL
	p.SL = 100
	p.TP = 95

	assert.Equal(t, models.ExitHardStop, ev.Exit(neutralSnapshot(97), p))
}

func TestExitTrailingBeforeTakeProfit(t *testing.T) {
	ev := New(testConfig())
	p := exitPosition()
	p.TrailActive = true
	p.TrailSL = 100
	p.TP = 95

	assert.Equal(t, models.ExitTrailingStop, ev.Exit(neutralSnapshot(97), p))
}

func TestExitReasons(t *testing.T) {
	ev := New(testConfig())

	t.Run("none", func(t *testing.T) {
		assert.Equal(t, models.ExitNone, ev.Exit(neutralSnapshot(100), exitPosition()))
	})
	t.Run("hard stop", func(t *testing.T) {
		assert.Equal(t, models.ExitHardStop, ev.Exit(neutralSnapshot(95), exitPosition()))
	})
	t.Run("take profit", func(t *testing.T) {
		assert.Equal(t, models.ExitTakeProfit, ev.Exit(neutralSnapshot(110), exitPosition()))
	})
	t.Run("trailing inactive is ignored", func(t *testing.T) {
		p := exitPosition()
		p.TrailSL = 99 // стоп записан, но не активирован
		assert.Equal(t, models.ExitNone, ev.Exit(neutralSnapshot(98), p))
	})
	t.Run("trend reversal", func(t *testing.T) {
		s := neutralSnapshot(100)
		s.EMAShort = []float64{99}
		assert.Equal(t, models.ExitTrendReversal, ev.Exit(s, exitPosition()))
	})
	t.Run("parabolic reversal", func(t *testing.T) {
		s := neutralSnapshot(100)
		s.PSAR = []float64{101}
		assert.Equal(t, models.ExitParabolic, ev.Exit(s, exitPosition()))
	})
}

func TestSizeQtyFloors(t *testing.T) {
	ev := New(testConfig())
	// 1000*0.9/101.5 = 8.86699507..., вниз до 5 знаков
	assert.InDelta(t, 8.86699, ev.SizeQty(1000, 101.5), 1e-9)

	assert.Zero(t, ev.SizeQty(0, 101.5))
	assert.Zero(t, ev.SizeQty(1000, 0))
}

func TestApplyReturnCompoundsOnlyWins(t *testing.T) {
	ev := New(testConfig())

	assert.InDelta(t, 1010, ev.ApplyReturn(1000, 100, 105), 1e-9)
	assert.InDelta(t, 1000, ev.ApplyReturn(1000, 100, 95), 1e-9)
	assert.InDelta(t, 1000, ev.ApplyReturn(1000, 100, 100), 1e-9, "нулевой результат не компаундится")
}

func TestMACDMarginNearZeroSignal(t *testing.T) {
	ev := New(testConfig())
	s := favorableSnapshot()
	// сигнальная ниже нуля: достаточно простого превышения
	s.MACD = []float64{-0.5}
	s.MACDSignal = []float64{-1.0}
	_, ok := ev.Entry(s, 14, 1000)
	assert.True(t, ok)
}
