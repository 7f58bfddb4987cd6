package models

import "time"

// Position — единственная открытая позиция (long-only, одна на бота).
// Создаётся на подтверждённом входе, мутируется трейлинг-правилом на каждом
// тике, сбрасывается в nil на подтверждённом выходе.
type Position struct {
	Symbol string
	Qty    float64
	Entry  float64

	SL float64 // стартовый hard-stop
	TP float64 // тейк

	// трейлинг: INACTIVE пока TrailActive=false; активация — one-way
	TrailActive bool
	TrailSL     float64

	Highest  float64 // максимум цены с момента входа
	EntryATR float64 // ATR на момент входа, фиксируется навсегда

	OpenedAt time.Time
}
