package service

import (
	"fmt"
	"strings"
	"time"

	"momentum_bot/internal/models"
	"momentum_bot/internal/modules/config"
)

func f2(v float64) string { return fmt.Sprintf("%.2f", v) }

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func formatStatus(st models.BotStatus) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("*📊 %s*\n\n", st.Symbol))
	if st.Paused {
		b.WriteString("⏸ *Пауза*\n")
	}
	b.WriteString(fmt.Sprintf("Капитал: `%.2f`\n", st.Capital))

	if st.LastPrice > 0 {
		b.WriteString(fmt.Sprintf("Цена (WS): `%.4f` (%s назад)\n",
			st.LastPrice, time.Since(st.PriceAt).Round(time.Second)))
	} else {
		b.WriteString("Цена (WS): `нет данных`\n")
	}
	if !st.LastTick.IsZero() {
		b.WriteString(fmt.Sprintf("Последний тик: %s назад\n",
			time.Since(st.LastTick).Round(time.Second)))
	}
	if st.PendingSide != models.SideNone {
		b.WriteString(fmt.Sprintf("⏳ Отложенный ордер: *%s*\n", st.PendingSide))
	}

	p := st.Position
	if p == nil {
		b.WriteString("\n📭 Позиции нет\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf(
		"\n*Позиция LONG*\nQty: `%.6f` @ `%.4f`\nSL: `%.4f`  TP: `%.4f`\n",
		p.Qty, p.Entry, p.SL, p.TP,
	))
	if p.TrailActive {
		b.WriteString(fmt.Sprintf("🛡 Трейлинг: `%.4f` (max `%.4f`)\n", p.TrailSL, p.Highest))
	} else {
		b.WriteString("Трейлинг: не активирован\n")
	}
	if st.LastPrice > 0 && p.Entry > 0 {
		upnl := (st.LastPrice - p.Entry) * p.Qty
		b.WriteString(fmt.Sprintf("uPnL: `%.4f` (`%.2f%%`)\n",
			upnl, (st.LastPrice/p.Entry-1)*100))
	}
	return b.String()
}

func formatSettings(sc *config.StrategyConfig, sz *config.SizingConfig) string {
	preset := sc.Preset
	if preset == "" {
		preset = "—"
	}
	presetLine := ""
	if p, ok := config.Presets[sc.Preset]; ok {
		presetLine = fmt.Sprintf("%s: %s\n", p.Name, p.Description)
	}
	return fmt.Sprintf(
		"*⚙️ Стратегия* (preset: `%s`)\n"+
			"%s\n"+
			"EMA: `%d/%d/%d`\n"+
			"RSI(%d): `[%s..%s]`\n"+
			"MACD: `%d/%d/%d` margin `%s`\n"+
			"Volume spike: `%s` (lookback %d)\n"+
			"ADX(%d) min: `%s`\n"+
			"Stoch: `%d/%d`\n"+
			"PSAR: `%.3f/%.2f`\n"+
			"Price/EMA margin: `%.4f`\n"+
			"Сессия: `%02d-%02d` UTC\n\n"+
			"*Риск*\n"+
			"SL: `%s ATR`  TP: `%s ATR`\n"+
			"Trailing: act `%s` floor `%s` step `%s` dev `%s`\n\n"+
			"*Сайзинг*\n"+
			"Risk fraction: `%s`\n"+
			"Compound: `%s`\n",
		preset,
		presetLine,
		sc.EMAShort, sc.EMAMid, sc.EMALong,
		sc.RSIPeriod, f2(sc.RSIMin), f2(sc.RSIMax),
		sc.MACDFast, sc.MACDSlow, sc.MACDSignal, f2(sc.MACDMargin),
		f2(sc.VolumeSpike), sc.VolumeLookback,
		sc.ADXPeriod, f2(sc.ADXMin),
		sc.StochPeriod, sc.StochSmooth,
		sc.PSARStep, sc.PSARMax,
		sc.PriceEMAMargin,
		sc.SessionStart, sc.SessionEnd,
		f2(sc.HardStopATR), f2(sc.TakeProfitATR),
		f2(sc.Trailing.ActivationATR), f2(sc.Trailing.FloorATR),
		f2(sc.Trailing.StepATR), f2(sc.Trailing.MaxDeviation),
		f2(sz.RiskFraction),
		f2(sz.CompoundRate),
	)
}

func formatRecords(recs []models.TradeRecord) string {
	if len(recs) == 0 {
		return "📭 Журнал пуст"
	}
	var b strings.Builder
	b.WriteString("*🧾 Последние сделки*\n\n")
	for _, r := range recs {
		emoji := "🟢"
		if r.Action == models.TradeExit {
			emoji = "🔴"
		}
		b.WriteString(fmt.Sprintf("%s `%s` %s %.6f @ %.4f",
			emoji, r.Time.Format("01-02 15:04"), r.Action, r.Qty, r.Price))
		if r.Reason != "" {
			b.WriteString(" | " + r.Reason)
		}
		b.WriteString(fmt.Sprintf(" | cap=%.2f\n", r.Capital))
	}
	return b.String()
}
