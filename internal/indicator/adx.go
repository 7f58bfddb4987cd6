package indicator

import (
	"math"

	"momentum_bot/internal/models"
)

// ADX: +DM/-DM -> уайлдеровское сглаживание -> DI -> DX -> сглаженный DX.
// До полного прогрева (2n свечей) значения нулевые — фильтр силы тренда
// в этот период просто не пустит вход.
func ADX(candles []models.Candle, n int) []float64 {
	out := make([]float64, len(candles))
	if len(candles) < 2 || n <= 0 {
		return out
	}

	var smTR, smPlus, smMinus float64 // сглаженные суммы
	var adx float64
	dxCount := 0
	alpha := 1.0 / float64(n)

	for i := 1; i < len(candles); i++ {
		cur, prev := candles[i], candles[i-1]

		upMove := cur.High - prev.High
		downMove := prev.Low - cur.Low
		plusDM, minusDM := 0.0, 0.0
		if upMove > downMove && upMove > 0 {
			plusDM = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM = downMove
		}
		tr := trueRange(cur, prev.Close)

		if i <= n {
			smTR += tr
			smPlus += plusDM
			smMinus += minusDM
			if i < n {
				continue
			}
		} else {
			smTR = smTR*(1-alpha) + tr
			smPlus = smPlus*(1-alpha) + plusDM
			smMinus = smMinus*(1-alpha) + minusDM
		}

		if smTR == 0 {
			continue
		}
		plusDI := 100 * smPlus / smTR
		minusDI := 100 * smMinus / smTR
		diSum := plusDI + minusDI
		if diSum == 0 {
			continue
		}
		dx := 100 * math.Abs(plusDI-minusDI) / diSum

		dxCount++
		if dxCount < n {
			adx += dx
			continue
		}
		if dxCount == n {
			adx = (adx + dx) / float64(n)
		} else {
			adx = (adx*float64(n-1) + dx) / float64(n)
		}
		out[i] = adx
	}
	return out
}
