package indicator

// EMA — экспоненциальная скользящая, k=2/(n+1), сид — первое значение.
// Длина результата равна длине входа, хронологический порядок сохранён.
func EMA(values []float64, n int) []float64 {
	if len(values) == 0 || n <= 0 {
		return nil
	}
	k := 2.0 / float64(n+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = out[i-1] + k*(values[i]-out[i-1])
	}
	return out
}

// SMA — простая скользящая с окном n; пока окно не набралось,
// усредняем по доступному префиксу.
func SMA(values []float64, n int) []float64 {
	if len(values) == 0 || n <= 0 {
		return nil
	}
	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		w := n
		if i+1 < n {
			w = i + 1
		} else if i >= n {
			sum -= values[i-n]
		}
		out[i] = sum / float64(w)
	}
	return out
}
