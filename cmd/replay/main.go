package main

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/bytedance/sonic"

	"momentum_bot/internal/evaluator"
	"momentum_bot/internal/indicator"
	"momentum_bot/internal/models"
	"momentum_bot/internal/modules/config"
	exchsvc "momentum_bot/internal/modules/exchange/service"
)

// replay — прогон свечей через тот же индикаторный и решающий код,
// что и в бою; исполнение симулируется по ценам закрытия.
//
// Конфиг: .replay.yaml в текущем каталоге
//	source: exchange | путь к JSON-массиву свечей
//	capital: стартовый капитал (0 = из основного конфига)

func main() {
	viper.SetConfigName(".replay")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetDefault("source", "exchange")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	cfg, err := config.NewConfig()
	if err != nil {
		panic(errors.Wrap(err, "load config"))
	}
	if c := viper.GetFloat64("capital"); c > 0 {
		cfg.Sizing.InitialCapital = c
	}

	candles, err := loadCandles(cfg, viper.GetString("source"))
	if err != nil {
		panic(errors.Wrap(err, "load candles"))
	}

	trades, finalCapital := simulate(cfg, candles)
	report(cfg, trades, finalCapital)
}

func loadCandles(cfg *config.Config, source string) ([]models.Candle, error) {
	if source == "exchange" {
		client := exchsvc.NewClient(cfg)
		return client.GetCandles(context.Background(),
			cfg.Exchange.Symbol, cfg.Exchange.Interval, cfg.Exchange.CandleLimit)
	}

	b, err := os.ReadFile(source)
	if err != nil {
		return nil, errors.Wrap(err, "read candles file")
	}
	var candles []models.Candle
	if err := sonic.Unmarshal(b, &candles); err != nil {
		return nil, errors.Wrap(err, "decode candles file")
	}
	return candles, nil
}

func simulate(cfg *config.Config, candles []models.Candle) ([]models.TradeRecord, float64) {
	ev := evaluator.New(cfg)
	capital := cfg.Sizing.InitialCapital

	var pos *models.Position
	var trades []models.TradeRecord

	record := func(action models.TradeAction, at models.Candle, price, qty float64, reason string) {
		trades = append(trades, models.TradeRecord{
			Time:    at.End,
			Symbol:  cfg.Exchange.Symbol,
			Action:  action,
			Price:   price,
			Qty:     qty,
			Reason:  reason,
			Capital: capital,
		})
	}

	for i := indicator.MinHistory(&cfg.Strategy); i <= len(candles); i++ {
		window := candles[:i]
		snap, err := indicator.BuildSnapshot(window, &cfg.Strategy)
		if err != nil {
			continue
		}
		last := window[len(window)-1]

		if pos != nil {
			ev.Trail(snap.Price, pos)
			reason := ev.Exit(snap, pos)
			if reason == models.ExitNone {
				continue
			}
			capital = ev.ApplyReturn(capital, pos.Entry, snap.Price)
			record(models.TradeExit, last, snap.Price, pos.Qty, string(reason))
			pos = nil
			continue
		}

		order, ok := ev.Entry(snap, snap.At.UTC().Hour(), capital)
		if !ok || order.Qty <= 0 {
			continue
		}
		pos = &models.Position{
			Symbol:   cfg.Exchange.Symbol,
			Qty:      order.Qty,
			Entry:    snap.Price,
			SL:       order.SL,
			TP:       order.TP,
			Highest:  snap.Price,
			EntryATR: order.ATR,
			OpenedAt: snap.At,
		}
		record(models.TradeEntry, last, snap.Price, order.Qty, "")
	}

	return trades, capital
}

func report(cfg *config.Config, trades []models.TradeRecord, finalCapital float64) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("#", "Time", "Action", "Price", "Qty", "Reason", "Capital")

	var entries, exits, wins int
	byReason := map[string]int{}
	var lastEntry float64

	for i, t := range trades {
		switch t.Action {
		case models.TradeEntry:
			entries++
			lastEntry = t.Price
		case models.TradeExit:
			exits++
			byReason[t.Reason]++
			if t.Price > lastEntry {
				wins++
			}
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			t.Time.Format("2006-01-02 15:04"),
			string(t.Action),
			fmt.Sprintf("%.4f", t.Price),
			fmt.Sprintf("%.6f", t.Qty),
			t.Reason,
			fmt.Sprintf("%.2f", t.Capital),
		)
	}
	table.Render()

	fmt.Printf("\n%s %s | входов: %d | выходов: %d", cfg.Exchange.Symbol, cfg.Exchange.Interval, entries, exits)
	if exits > 0 {
		fmt.Printf(" | winrate: %.0f%%", float64(wins)/float64(exits)*100)
	}
	fmt.Println()
	for reason, n := range byReason {
		fmt.Printf("  %-16s %d\n", reason, n)
	}
	fmt.Printf("Капитал: %.2f -> %.2f\n", cfg.Sizing.InitialCapital, finalCapital)
}
