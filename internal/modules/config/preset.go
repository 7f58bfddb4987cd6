package config

// Preset — именованный набор порогов. Применяется до файла и env:
// файл и env всегда перекрывают пресет пофилдово.
type Preset struct {
	Name        string
	Description string
	Apply       func(sc *StrategyConfig, sz *SizingConfig)
}

var Presets = map[string]Preset{
	"safe": {
		Name:        "🟢 Консервативный",
		Description: "Узкая RSI-полоса, сильный тренд, мелкая позиция",
		Apply: func(sc *StrategyConfig, sz *SizingConfig) {
			sc.RSIMin = 50
			sc.RSIMax = 60
			sc.ADXMin = 32
			sc.VolumeSpike = 2.5
			sc.HardStopATR = 1.2
			sc.TakeProfitATR = 2.4
			sc.Trailing.ActivationATR = 0.8
			sc.Trailing.FloorATR = 0.4

			sz.RiskFraction = 0.5
			sz.CompoundRate = 0.005
		},
	},
	"mid": {
		Name:        "🟡 Средний",
		Description: "Баланс частоты сигналов и качества",
		Apply: func(sc *StrategyConfig, sz *SizingConfig) {
			sc.RSIMin = 48
			sc.RSIMax = 62
			sc.ADXMin = 28
			sc.VolumeSpike = 2.2

			sz.RiskFraction = 0.9
			sz.CompoundRate = 0.01
		},
	},
	"aggr": {
		Name:        "🔴 Агрессивный",
		Description: "Шире полоса, слабее фильтры, больше сделок",
		Apply: func(sc *StrategyConfig, sz *SizingConfig) {
			sc.RSIMin = 45
			sc.RSIMax = 68
			sc.ADXMin = 22
			sc.VolumeSpike = 1.8
			sc.HardStopATR = 2.0
			sc.TakeProfitATR = 4.0
			sc.Trailing.ActivationATR = 1.2
			sc.Trailing.StepATR = 1.0

			sz.RiskFraction = 1.0
			sz.CompoundRate = 0.015
		},
	},
}
