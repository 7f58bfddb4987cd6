package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"momentum_bot/internal/models"
	"momentum_bot/internal/modules/config"
)

func TestFormatSettingsShowsPresetCard(t *testing.T) {
	sc := &config.StrategyConfig{Preset: "safe"}
	out := formatSettings(sc, &config.SizingConfig{})

	assert.Contains(t, out, "`safe`")
	assert.Contains(t, out, config.Presets["safe"].Name)
	assert.Contains(t, out, config.Presets["safe"].Description)
}

func TestFormatSettingsWithoutPreset(t *testing.T) {
	out := formatSettings(&config.StrategyConfig{}, &config.SizingConfig{})
	assert.Contains(t, out, "`—`")
}

func TestFormatStatusNoPosition(t *testing.T) {
	out := formatStatus(models.BotStatus{Symbol: "BTCUSDT", Capital: 1000})

	assert.Contains(t, out, "BTCUSDT")
	assert.Contains(t, out, "1000.00")
	assert.Contains(t, out, "Позиции нет")
}

func TestFormatStatusWithPosition(t *testing.T) {
	st := models.BotStatus{
		Symbol:    "BTCUSDT",
		Capital:   1000,
		LastPrice: 102,
		PriceAt:   time.Now(),
		Position: &models.Position{
			Qty:         0.5,
			Entry:       100,
			SL:          97,
			TP:          106,
			TrailActive: true,
			TrailSL:     100.6,
			Highest:     102,
		},
	}
	out := formatStatus(st)

	assert.Contains(t, out, "Позиция LONG")
	assert.Contains(t, out, "100.6000", "трейлинг-стоп в статусе")
	assert.Contains(t, out, "uPnL")
}

func TestFormatRecords(t *testing.T) {
	assert.Contains(t, formatRecords(nil), "пуст")

	recs := []models.TradeRecord{{
		Time:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Action:  models.TradeExit,
		Price:   105,
		Qty:     0.5,
		Reason:  "TAKE_PROFIT",
		Capital: 1010,
	}}
	out := formatRecords(recs)
	assert.Contains(t, out, "TAKE_PROFIT")
	assert.Contains(t, out, "105.0000")
	assert.Contains(t, out, "cap=1010.00")
}
