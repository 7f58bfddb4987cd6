package evaluator

import (
	"math"

	"momentum_bot/internal/models"
)

// Trail — трейлинг-стоп с двумя состояниями: INACTIVE -> ACTIVE, переход
// one-way на всю жизнь позиции. Все пороги в единицах EntryATR: ATR
// зафиксирован на входе, иначе пол ездил бы и ломал монотонность.
// Мутирует позицию; возвращает true, если стоп активировался или подвинулся.
func (e *Evaluator) Trail(price float64, p *models.Position) bool {
	if p == nil || p.EntryATR <= 0 {
		return false
	}
	tc := e.sc.Trailing
	floor := p.Entry + p.EntryATR*tc.FloorATR

	moved := false
	if !p.TrailActive {
		if price >= p.Entry+p.EntryATR*tc.ActivationATR {
			p.TrailActive = true
			p.TrailSL = floor
			moved = true
		}
	} else {
		candidate := price - p.EntryATR*tc.StepATR
		// стоп только вверх: кандидат должен бить и текущий стоп, и пол,
		// а цена — не отклоняться от максимума сильнее MaxDeviation
		if candidate > p.TrailSL && candidate > floor && withinDeviation(price, p.Highest, tc.MaxDeviation) {
			p.TrailSL = candidate
			moved = true
		}
	}

	// максимум обновляется после проверки, не до
	if price > p.Highest {
		p.Highest = price
	}
	return moved
}

func withinDeviation(price, highest, max float64) bool {
	if highest <= 0 {
		return true
	}
	return math.Abs(price-highest)/highest <= max
}
