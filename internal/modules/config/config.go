package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatIDTelegramENV = "TELEGRAM_CHAT_ID"
	apiKeyENV         = "EXCHANGE_API_KEY"
	apiSecretENV      = "EXCHANGE_API_SECRET"
	databaseDSN       = "DATABASE_DSN"
)

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

type ExchangeConfig struct {
	BaseURL     string `yaml:"base_url"`
	WSURL       string `yaml:"ws_url"`
	APIKey      string `yaml:"api_key"`
	APISecret   string `yaml:"api_secret"`
	Symbol      string `yaml:"symbol"`
	Asset       string `yaml:"asset"`
	Interval    string `yaml:"interval"`
	CandleLimit int    `yaml:"candle_limit"`
}

// TrailingConfig — трейлинг-стоп в единицах ATR входа.
type TrailingConfig struct {
	ActivationATR float64 `yaml:"activation_atr"` // активация: entry + ATR*k
	FloorATR      float64 `yaml:"floor_atr"`      // пол: entry + ATR*k, ниже не опускаемся
	StepATR       float64 `yaml:"step_atr"`       // кандидат: price - ATR*k
	MaxDeviation  float64 `yaml:"max_deviation"`  // |price-highest|/highest, больше — не двигаем
}

// StrategyConfig — все пороги входа/выхода. Статика, ничего адаптивного.
type StrategyConfig struct {
	Preset string `yaml:"preset"`

	EMAShort int `yaml:"ema_short"`
	EMAMid   int `yaml:"ema_mid"`
	EMALong  int `yaml:"ema_long"`

	RSIPeriod int     `yaml:"rsi_period"`
	RSIMin    float64 `yaml:"rsi_min"`
	RSIMax    float64 `yaml:"rsi_max"`

	MACDFast   int     `yaml:"macd_fast"`
	MACDSlow   int     `yaml:"macd_slow"`
	MACDSignal int     `yaml:"macd_signal"`
	MACDMargin float64 `yaml:"macd_margin"` // line > signal*margin

	VolumeLookback int     `yaml:"volume_lookback"`
	VolumeSpike    float64 `yaml:"volume_spike"` // ratio > spike

	ADXPeriod int     `yaml:"adx_period"`
	ADXMin    float64 `yaml:"adx_min"`

	StochPeriod int `yaml:"stoch_period"`
	StochSmooth int `yaml:"stoch_smooth"`

	PSARStep float64 `yaml:"psar_step"`
	PSARMax  float64 `yaml:"psar_max"`

	PriceEMAMargin float64 `yaml:"price_ema_margin"` // price > emaShort*margin

	// Часы (включительно), вне окна вход запрещён
	SessionStart int `yaml:"session_start"`
	SessionEnd   int `yaml:"session_end"`

	ATRPeriod     int     `yaml:"atr_period"`
	HardStopATR   float64 `yaml:"hard_stop_atr"`   // SL = entry - ATR*k
	TakeProfitATR float64 `yaml:"take_profit_atr"` // TP = entry + ATR*k

	Trailing TrailingConfig `yaml:"trailing"`
}

type SizingConfig struct {
	InitialCapital float64 `yaml:"initial_capital"`
	RiskFraction   float64 `yaml:"risk_fraction"` // qty = capital*frac/price
	QtyDecimals    int     `yaml:"qty_decimals"`
	CompoundRate   float64 `yaml:"compound_rate"` // capital *= 1+rate после профитного выхода
}

type RunnerConfig struct {
	TickInterval   time.Duration `yaml:"tick_interval"`
	OrderDelay     time.Duration `yaml:"order_delay"` // окно на ручную отмену перед отправкой ордера
	WarmupAnnounce bool          `yaml:"warmup_announce"`
}

type JournalConfig struct {
	Backend     string `yaml:"backend"` // file | postgres
	Path        string `yaml:"path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

type HealthConfig struct {
	Addr string `yaml:"addr"`
}

type TracingConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Service   string `yaml:"service"`
	AgentHost string `yaml:"agent_host"`
	AgentPort int    `yaml:"agent_port"`
}

// Config ...
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Exchange ExchangeConfig `yaml:"exchange"`
	Strategy StrategyConfig `yaml:"strategy"`
	Sizing   SizingConfig   `yaml:"sizing"`
	Runner   RunnerConfig   `yaml:"runner"`
	Journal  JournalConfig  `yaml:"journal"`
	Health   HealthConfig   `yaml:"health"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

// NewConfig читает configs/$CONFIG_FILE поверх дефолтов, затем env поверх файла.
// Файл опционален: без него работаем на дефолтах + env.
func NewConfig() (*Config, error) {
	configFileName := os.Getenv(configFilePathENV)
	explicit := configFileName != ""
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}

	raw, err := os.ReadFile("configs/" + configFileName)
	if err != nil {
		if !os.IsNotExist(err) || explicit {
			return nil, fmt.Errorf("read config %s: %w", configFileName, err)
		}
		raw = nil
	}

	config := defaultConfig()

	// пресет применяется до файла: файл и env всегда сильнее пресета
	if len(raw) > 0 {
		var peek struct {
			Strategy struct {
				Preset string `yaml:"preset"`
			} `yaml:"strategy"`
		}
		if err := yaml.Unmarshal(raw, &peek); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", configFileName, err)
		}
		if peek.Strategy.Preset != "" {
			p, ok := Presets[peek.Strategy.Preset]
			if !ok {
				return nil, fmt.Errorf("unknown strategy preset %q", peek.Strategy.Preset)
			}
			p.Apply(&config.Strategy, &config.Sizing)
			config.Strategy.Preset = peek.Strategy.Preset
		}
		if err := yaml.Unmarshal(raw, config); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", configFileName, err)
		}
	}

	applyEnv(config)

	if config.Exchange.Symbol == "" {
		return nil, fmt.Errorf("exchange.symbol is required")
	}
	return config, nil
}

func defaultConfig() *Config {
	return &Config{
		Exchange: ExchangeConfig{
			BaseURL:     getenvDefault("EXCHANGE_BASE_URL", "https://api.binance.com"),
			WSURL:       getenvDefault("EXCHANGE_WS_URL", "wss://stream.binance.com:9443/ws"),
			Symbol:      getenvDefault("SYMBOL", "BTCUSDT"),
			Asset:       getenvDefault("ASSET", "BTC"),
			Interval:    getenvDefault("INTERVAL", "1m"),
			CandleLimit: intFromEnv("CANDLE_LIMIT", 210),
		},
		Strategy: StrategyConfig{
			EMAShort: 7,
			EMAMid:   25,
			EMALong:  99,

			RSIPeriod: 14,
			RSIMin:    48,
			RSIMax:    62,

			MACDFast:   12,
			MACDSlow:   26,
			MACDSignal: 9,
			MACDMargin: 1.1,

			VolumeLookback: 20,
			VolumeSpike:    2.2,

			ADXPeriod: 14,
			ADXMin:    28,

			StochPeriod: 14,
			StochSmooth: 3,

			PSARStep: 0.02,
			PSARMax:  0.2,

			PriceEMAMargin: 1.002,

			SessionStart: 8,
			SessionEnd:   22,

			ATRPeriod:     14,
			HardStopATR:   1.5,
			TakeProfitATR: 3.0,

			Trailing: TrailingConfig{
				ActivationATR: 1.0,
				FloorATR:      0.3,
				StepATR:       0.8,
				MaxDeviation:  0.05,
			},
		},
		Sizing: SizingConfig{
			InitialCapital: floatFromEnv("INITIAL_CAPITAL", 1000),
			RiskFraction:   0.9,
			QtyDecimals:    5,
			CompoundRate:   0.01,
		},
		Runner: RunnerConfig{
			TickInterval:   durationFromEnv("TICK_INTERVAL", "1m"),
			OrderDelay:     durationFromEnv("ORDER_DELAY", "60s"),
			WarmupAnnounce: true,
		},
		Journal: JournalConfig{
			Backend: getenvDefault("JOURNAL_BACKEND", "file"),
			Path:    getenvDefault("JOURNAL_PATH", "data/trades.json"),
		},
		Health: HealthConfig{
			Addr: getenvDefault("HEALTH_ADDR", ":8080"),
		},
		Tracing: TracingConfig{
			Enabled:   boolFromEnv("TRACING_ENABLED", false),
			Service:   "momentum-bot",
			AgentHost: getenvDefault("JAEGER_AGENT_HOST", "127.0.0.1"),
			AgentPort: intFromEnv("JAEGER_AGENT_PORT", 6831),
		},
	}
}

func applyEnv(config *Config) {
	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}
	if chat := os.Getenv(chatIDTelegramENV); chat != "" {
		if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
			config.Telegram.ChatID = id
		}
	}
	if key := os.Getenv(apiKeyENV); key != "" {
		config.Exchange.APIKey = key
	}
	if secret := os.Getenv(apiSecretENV); secret != "" {
		config.Exchange.APISecret = secret
	}
	if dsn := os.Getenv(databaseDSN); dsn != "" {
		config.Journal.PostgresDSN = dsn
		config.Journal.Backend = "postgres"
	}
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "1" || v == "true" || v == "TRUE" {
			return true
		}
		if v == "0" || v == "false" || v == "FALSE" {
			return false
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
