package evaluator

import (
	"momentum_bot/internal/helper"
	"momentum_bot/internal/models"
	"momentum_bot/internal/modules/config"
)

// Evaluator — чистая решающая логика: вход, выход, трейлинг, сайзинг.
// Никакого I/O, часов и нотификаций — всё приходит аргументами.
type Evaluator struct {
	sc config.StrategyConfig
	sz config.SizingConfig
}

func New(cfg *config.Config) *Evaluator {
	return &Evaluator{
		sc: cfg.Strategy,
		sz: cfg.Sizing,
	}
}

func last(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return xs[len(xs)-1]
}

// Entry — вход только при выполнении ВСЕХ условий сразу. Никакого
// скоринга частичных совпадений: одно condition false — входа нет.
// Вызывается только при отсутствии позиции.
func (e *Evaluator) Entry(s *models.IndicatorSnapshot, hour int, capital float64) (*models.EntryOrder, bool) {
	if s == nil {
		return nil, false
	}

	emaS, emaM, emaL := last(s.EMAShort), last(s.EMAMid), last(s.EMALong)

	// 1. выравнивание тренда: строгий порядок EMA
	if !(emaS > emaM && emaM > emaL) {
		return nil, false
	}
	// 2. RSI в полосе (включительно с обеих сторон)
	if rsi := last(s.RSI); rsi < e.sc.RSIMin || rsi > e.sc.RSIMax {
		return nil, false
	}
	// 3. MACD-линия выше сигнальной с запасом
	if !macdAbove(last(s.MACD), last(s.MACDSignal), e.sc.MACDMargin) {
		return nil, false
	}
	// 4. всплеск объёма
	if s.VolumeRatio <= e.sc.VolumeSpike {
		return nil, false
	}
	// 5. сила тренда
	if last(s.ADX) <= e.sc.ADXMin {
		return nil, false
	}
	// 6. стохастик: %K над %D
	if last(s.StochK) <= last(s.StochD) {
		return nil, false
	}
	// 7. цена над короткой EMA с запасом
	if s.Price <= emaS*e.sc.PriceEMAMargin {
		return nil, false
	}
	// 8. сессионное окно (часы включительно)
	if hour < e.sc.SessionStart || hour > e.sc.SessionEnd {
		return nil, false
	}

	atr := last(s.ATR)
	return &models.EntryOrder{
		Qty: e.SizeQty(capital, s.Price),
		SL:  s.Price - atr*e.sc.HardStopATR,
		TP:  s.Price + atr*e.sc.TakeProfitATR,
		ATR: atr,
	}, true
}

// macdAbove: маржа мультипликативная, но у сигнала около нуля или ниже
// умножение меняет знак сравнения — там сводим к простому превышению.
func macdAbove(line, signal, margin float64) bool {
	if signal <= 0 {
		return line > signal
	}
	return line > signal*margin
}

// Exit — причины проверяются строго по порядку, первая сработавшая
// выигрывает, остальные не смотрим. Вызывается только при открытой позиции.
func (e *Evaluator) Exit(s *models.IndicatorSnapshot, p *models.Position) models.ExitReason {
	if s == nil || p == nil {
		return models.ExitNone
	}

	// 1. hard-stop
	if s.Price <= p.SL {
		return models.ExitHardStop
	}
	// 2. трейлинг (только после активации)
	if p.TrailActive && s.Price <= p.TrailSL {
		return models.ExitTrailingStop
	}
	// 3. take-profit
	if s.Price >= p.TP {
		return models.ExitTakeProfit
	}
	// 4. разворот тренда: короткая EMA ушла под среднюю
	if last(s.EMAShort) < last(s.EMAMid) {
		return models.ExitTrendReversal
	}
	// 5. PSAR перевернулся над ценой
	if last(s.PSAR) > s.Price {
		return models.ExitParabolic
	}
	return models.ExitNone
}

// SizeQty: qty = capital*riskFraction/price, вниз до QtyDecimals знаков.
func (e *Evaluator) SizeQty(capital, price float64) float64 {
	if price <= 0 || capital <= 0 {
		return 0
	}
	return helper.FloorToDecimals(capital*e.sz.RiskFraction/price, e.sz.QtyDecimals)
}

// ApplyReturn — компаундинг: плюс по сделке умножает капитал на
// (1+rate), ноль и минус капитал не трогают.
func (e *Evaluator) ApplyReturn(capital, entry, exit float64) float64 {
	if helper.PctChange(entry, exit) > 0 {
		return capital * (1 + e.sz.CompoundRate)
	}
	return capital
}
