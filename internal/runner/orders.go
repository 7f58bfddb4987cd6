package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"momentum_bot/pkg/logger"

	"momentum_bot/internal/helper"
	"momentum_bot/internal/models"
)

// pendingOrder — явное состояние отложенной заявки по направлению.
// Ставится при спавне воркера, снимается только по результату
// (исполнение, ошибка или отмена) — дубль по тому же сигналу невозможен.
type pendingOrder struct {
	token string
	side  models.Side

	qty   float64
	price float64 // цена решения, не исполнения

	// вход
	sl, tp, atr float64

	// выход
	reason models.ExitReason
	entry  float64

	placedAt time.Time
}

type fillResult struct {
	po        *pendingOrder
	cancelled bool
	err       error
	fillPrice float64
	fillQty   float64
}

func (r *Runner) spawnEntry(ctx context.Context, snap *models.IndicatorSnapshot, order *models.EntryOrder) {
	po := &pendingOrder{
		token:    uuid.NewString(),
		side:     models.SideBuy,
		qty:      order.Qty,
		price:    snap.Price,
		sl:       order.SL,
		tp:       order.TP,
		atr:      order.ATR,
		placedAt: r.now(),
	}
	r.pending[po.side] = po

	prompt := fmt.Sprintf(
		"🔔 [%s] ВХОД LONG @ %.4f\nqty=%.6f SL=%.4f TP=%.4f",
		r.cfg.Exchange.Symbol, po.price, po.qty, po.sl, po.tp,
	)
	go r.submit(ctx, po, prompt)
}

func (r *Runner) spawnExit(ctx context.Context, snap *models.IndicatorSnapshot, reason models.ExitReason) {
	po := &pendingOrder{
		token:    uuid.NewString(),
		side:     models.SideSell,
		qty:      r.pos.Qty,
		price:    snap.Price,
		reason:   reason,
		entry:    r.pos.Entry,
		placedAt: r.now(),
	}
	r.pending[po.side] = po

	prompt := fmt.Sprintf(
		"🔔 [%s] ВЫХОД (%s) @ %.4f\nвход был %.4f",
		r.cfg.Exchange.Symbol, reason, po.price, po.entry,
	)
	go r.submit(ctx, po, prompt)
}

// submit — воркер отложенной заявки: окно отмены, потом market-ордер.
// Состояние бота не трогает, результат строго через канал.
func (r *Runner) submit(ctx context.Context, po *pendingOrder, prompt string) {
	if !r.n.ConfirmCancel(ctx, prompt, r.cfg.Runner.OrderDelay) {
		r.fills <- fillResult{po: po, cancelled: true}
		return
	}

	qty := po.qty
	if po.side == models.SideSell {
		// продаём весь свободный остаток актива, не больше позиции
		free, err := r.ex.FreeBalance(ctx, r.cfg.Exchange.Asset)
		if err != nil {
			r.fills <- fillResult{po: po, err: fmt.Errorf("free balance: %w", err)}
			return
		}
		free = helper.FloorToDecimals(free, r.cfg.Sizing.QtyDecimals)
		if free > 0 && free < qty {
			qty = free
		}
	}

	mOrders.WithLabelValues(string(po.side)).Inc()
	price, err := r.ex.PlaceMarket(ctx, r.cfg.Exchange.Symbol, po.side, qty)
	if err != nil {
		r.fills <- fillResult{po: po, err: fmt.Errorf("place %s: %w", po.side, err)}
		return
	}
	r.fills <- fillResult{po: po, fillPrice: price, fillQty: qty}
}

// drainFills — забираем всё накопившееся без блокировки.
func (r *Runner) drainFills() {
	for {
		select {
		case res := <-r.fills:
			r.applyFill(res)
		default:
			return
		}
	}
}

// applyFill выполняется только в тиковой горутине: это единственное
// место, где рождается и умирает позиция и меняется капитал.
func (r *Runner) applyFill(res fillResult) {
	delete(r.pending, res.po.side)

	if res.cancelled {
		logger.Info("[ORDER] %s отменён вручную", res.po.side)
		return
	}
	if res.err != nil {
		logger.Error("[ORDER] %v", res.err)
		r.n.Sendf("❗️ Ордер %s не прошёл: %v", res.po.side, res.err)
		return
	}

	switch res.po.side {
	case models.SideBuy:
		r.pos = &models.Position{
			Symbol:   r.cfg.Exchange.Symbol,
			Qty:      res.fillQty,
			Entry:    res.fillPrice,
			SL:       res.po.sl,
			TP:       res.po.tp,
			Highest:  res.fillPrice,
			EntryATR: res.po.atr,
			OpenedAt: r.now(),
		}
		r.journal(models.TradeEntry, res.fillPrice, res.fillQty, "")
		r.n.Sendf("✅ [%s] LONG %.6f @ %.4f | SL=%.4f TP=%.4f",
			r.cfg.Exchange.Symbol, res.fillQty, res.fillPrice, res.po.sl, res.po.tp)

	case models.SideSell:
		retPct := helper.PctChange(res.po.entry, res.fillPrice) * 100
		r.capital = r.ev.ApplyReturn(r.capital, res.po.entry, res.fillPrice)
		r.pos = nil
		r.journal(models.TradeExit, res.fillPrice, res.fillQty, string(res.po.reason))

		emoji := "🟢"
		if retPct <= 0 {
			emoji = "🔴"
		}
		r.n.Sendf("%s [%s] Выход (%s) %.6f @ %.4f | %+.2f%% | капитал %.2f",
			emoji, r.cfg.Exchange.Symbol, res.po.reason, res.fillQty, res.fillPrice, retPct, r.capital)
	}
}

func (r *Runner) journal(action models.TradeAction, price, qty float64, reason string) {
	rec := models.TradeRecord{
		ID:      uuid.NewString(),
		Time:    r.now(),
		Symbol:  r.cfg.Exchange.Symbol,
		Action:  action,
		Price:   price,
		Qty:     qty,
		Reason:  reason,
		Capital: r.capital,
	}
	// журнал не должен валить тик
	if err := r.repo.Append(context.Background(), rec); err != nil {
		logger.Error("[JOURNAL] append: %v", err)
		r.n.Sendf("⚠️ Журнал не записан: %v", err)
	}
}
