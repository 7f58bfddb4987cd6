package indicator

// RSI по Уайлдеру: сид — среднее первых n приращений, дальше сглаживание
// alpha=1/n. До прогрева пишем нейтральные 50, решающая логика эти
// элементы всё равно не смотрит.
func RSI(closes []float64, n int) []float64 {
	if len(closes) == 0 || n <= 0 {
		return nil
	}
	out := make([]float64, len(closes))
	for i := 0; i <= n && i < len(out); i++ {
		out[i] = 50
	}
	if len(closes) <= n {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= n; i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			avgGain += d
		} else {
			avgLoss -= d
		}
	}
	avgGain /= float64(n)
	avgLoss /= float64(n)
	out[n] = rsiValue(avgGain, avgLoss)

	alpha := 1.0 / float64(n)
	for i := n + 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if d > 0 {
			gain = d
		} else {
			loss = -d
		}
		avgGain = (1-alpha)*avgGain + alpha*gain
		avgLoss = (1-alpha)*avgLoss + alpha*loss
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
