package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum_bot/internal/models"
)

// entry 100, EntryATR 2: активация на 102, пол 100.6, шаг 1.6, девиация 5%.
func trailPosition() *models.Position {
	return &models.Position{
		Symbol:   "BTCUSDT",
		Qty:      1,
		Entry:    100,
		Highest:  100,
		EntryATR: 2,
	}
}

func TestTrailActivation(t *testing.T) {
	ev := New(testConfig())
	p := trailPosition()

	assert.False(t, ev.Trail(101.9, p), "ниже порога активации")
	assert.False(t, p.TrailActive)

	require.True(t, ev.Trail(102, p), "порог активации включительно")
	assert.True(t, p.TrailActive)
	assert.InDelta(t, 100.6, p.TrailSL, 1e-9, "первый стоп равен полу")
}

func TestTrailActivationIsOneWay(t *testing.T) {
	ev := New(testConfig())
	p := trailPosition()
	require.True(t, ev.Trail(102, p))

	// откат цены ниже порога активации не выключает трейлинг
	ev.Trail(100.5, p)
	assert.True(t, p.TrailActive)
	assert.InDelta(t, 100.6, p.TrailSL, 1e-9)
}

func TestTrailStopMonotonic(t *testing.T) {
	ev := New(testConfig())
	p := trailPosition()
	require.True(t, ev.Trail(102, p))

	// 103 - 1.6 = 101.4 > 100.6 — стоп подрастает
	require.True(t, ev.Trail(103, p))
	assert.InDelta(t, 101.4, p.TrailSL, 1e-9)

	// откат цены: кандидат 101 - 1.6 = 99.4 < стопа, стоп не опускается
	assert.False(t, ev.Trail(101, p))
	assert.InDelta(t, 101.4, p.TrailSL, 1e-9)
}

func TestTrailCandidateBelowFloorRejected(t *testing.T) {
	ev := New(testConfig())
	p := trailPosition()
	require.True(t, ev.Trail(102, p))

	// кандидат 102.1 - 1.6 = 100.5 < пола 100.6 — не двигаем
	assert.False(t, ev.Trail(102.1, p))
	assert.InDelta(t, 100.6, p.TrailSL, 1e-9)
}

func TestTrailMaxDeviationBound(t *testing.T) {
	ev := New(testConfig())
	p := trailPosition()
	require.True(t, ev.Trail(102, p)) // highest 102, стоп 100.6

	// резкий рывок: кандидат 110 - 1.6 = 108.4 бьёт стоп, но 110 от
	// максимума 102 — отклонение 7.8% > 5%, шаг запрещён
	assert.False(t, ev.Trail(110, p))
	assert.InDelta(t, 100.6, p.TrailSL, 1e-9)
	assert.InDelta(t, 110, p.Highest, 1e-9, "максимум всё равно подтянулся")
}

func TestTrailHighestUpdatedAfterCheck(t *testing.T) {
	ev := New(testConfig())
	p := trailPosition()
	require.True(t, ev.Trail(102, p))
	assert.InDelta(t, 102, p.Highest, 1e-9, "максимум обновился после проверки")

	// проверка девиации на этом тике идёт против прежнего максимума 102:
	// 107 от 102 — 4.9% <= 5%, шаг разрешён, и только потом highest := 107
	require.True(t, ev.Trail(107, p))
	assert.InDelta(t, 105.4, p.TrailSL, 1e-9)
	assert.InDelta(t, 107, p.Highest, 1e-9)
}

func TestTrailNoEntryATR(t *testing.T) {
	ev := New(testConfig())
	p := trailPosition()
	p.EntryATR = 0
	assert.False(t, ev.Trail(200, p))
	assert.False(t, p.TrailActive)
}
