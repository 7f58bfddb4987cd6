package helper

import (
	"math"
	"strings"
)

// NormInterval приводит таймфрейм к биржевому виду ("60m" -> "1h").
func NormInterval(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	switch s {
	case "60m", "1h":
		return "1h"
	case "15m":
		return "15m"
	case "5m":
		return "5m"
	case "1m":
		return "1m"
	default:
		return s
	}
}

// FloorToDecimals — округление вниз до n знаков. Вверх не округляем никогда:
// количество не должно вылезти за доступный капитал.
func FloorToDecimals(v float64, n int) float64 {
	if n < 0 {
		return v
	}
	p := math.Pow(10, float64(n))
	return math.Floor(v*p+1e-9) / p
}

// PctChange — относительное изменение к базе, 0 при нулевой базе.
func PctChange(base, v float64) float64 {
	if base == 0 {
		return 0
	}
	return (v - base) / base
}
