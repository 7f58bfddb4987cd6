package indicator

// MACD — разница быстрой и медленной EMA плюс сигнальная EMA поверх линии.
func MACD(closes []float64, fast, slow, signal int) (line, sig []float64) {
	if len(closes) == 0 || fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, nil
	}
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	line = make([]float64, len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i]
	}
	sig = EMA(line, signal)
	return line, sig
}
