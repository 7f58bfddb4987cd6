package runner

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/fx"

	"momentum_bot/pkg/logger"

	"momentum_bot/internal/evaluator"
	"momentum_bot/internal/indicator"
	"momentum_bot/internal/models"
	"momentum_bot/internal/modules/config"
	healthsvc "momentum_bot/internal/modules/health/service"
	journalsvc "momentum_bot/internal/modules/journal/service"
	"momentum_bot/internal/notify"
)

// Exchange — всё, что циклу нужно от биржи.
type Exchange interface {
	GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
	PlaceMarket(ctx context.Context, symbol string, side models.Side, qty float64) (float64, error)
	FreeBalance(ctx context.Context, asset string) (float64, error)
}

// PriceSource — живая цена для статуса, nil-safe через адаптер в module.go.
type PriceSource interface {
	Last() (float64, time.Time)
}

// Runner — тиковый цикл: одна горутина, тики не накладываются, медленный
// тик задерживает только себя. Позицию и капитал мутирует только цикл;
// воркеры отложенных ордеров возвращают результат через канал fills.
type Runner struct {
	cfg  *config.Config
	ev   *evaluator.Evaluator
	ex   Exchange
	repo journalsvc.Store
	n    notify.Notifier

	state *healthsvc.State
	feed  PriceSource
	sh    fx.Shutdowner

	now func() time.Time // подменяется в тестах

	// ниже — собственность тиковой горутины
	pos     *models.Position
	capital float64
	pending map[models.Side]*pendingOrder
	fills   chan fillResult

	paused atomic.Bool

	statusMu sync.RWMutex
	status   models.BotStatus
}

func New(
	cfg *config.Config,
	ev *evaluator.Evaluator,
	ex Exchange,
	repo journalsvc.Store,
	n notify.Notifier,
	state *healthsvc.State,
	feed PriceSource,
	sh fx.Shutdowner,
) *Runner {
	return &Runner{
		cfg:     cfg,
		ev:      ev,
		ex:      ex,
		repo:    repo,
		n:       n,
		state:   state,
		feed:    feed,
		sh:      sh,
		now:     time.Now,
		capital: cfg.Sizing.InitialCapital,
		pending: make(map[models.Side]*pendingOrder),
		fills:   make(chan fillResult, 4),
		status:  models.BotStatus{Symbol: cfg.Exchange.Symbol, Capital: cfg.Sizing.InitialCapital},
	}
}

// Run — главный цикл. Паника здесь фатальна: уведомляем и гасим процесс,
// рестарт — забота деплоя.
func (r *Runner) Run(ctx context.Context) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("[RUNNER] panic: %v", p)
			r.n.Sendf("💥 Фатальная ошибка, бот останавливается: %v", p)
			_ = r.sh.Shutdown()
		}
	}()

	r.warmup(ctx)

	ticker := time.NewTicker(r.cfg.Runner.TickInterval)
	defer ticker.Stop()

	logger.Info("[RUNNER] старт: %s %s, тик %s",
		r.cfg.Exchange.Symbol, r.cfg.Exchange.Interval, r.cfg.Runner.TickInterval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.tick(ctx); err != nil {
				// recoverable: тик гибнет один, следующий пойдёт по расписанию
				mTickErrors.Inc()
				logger.Error("[TICK] %v", err)
				r.n.Sendf("❗️ Тик пропущен: %v", err)
			}
		}
	}
}

// warmup — разовая проверка, что истории хватает на все индикаторы.
// Ошибка не фатальна: readiness взведётся на первом удачном тике.
func (r *Runner) warmup(ctx context.Context) {
	candles, err := r.ex.GetCandles(ctx, r.cfg.Exchange.Symbol, r.cfg.Exchange.Interval, r.cfg.Exchange.CandleLimit)
	if err == nil {
		_, err = indicator.BuildSnapshot(candles, &r.cfg.Strategy)
	}
	if err != nil {
		logger.Error("[BOOT] warmup: %v", err)
		r.n.Sendf("⚠️ Прогрев не удался: %v", err)
		return
	}
	r.state.SetReady(true)
	if r.cfg.Runner.WarmupAnnounce {
		r.n.Sendf("🔥 Прогрев ок: %s %s, капитал %.2f",
			r.cfg.Exchange.Symbol, r.cfg.Exchange.Interval, r.capital)
	}
}

func (r *Runner) tick(ctx context.Context) error {
	span := opentracing.StartSpan("tick")
	span.SetTag("symbol", r.cfg.Exchange.Symbol)
	defer span.Finish()

	// результаты воркеров применяем до новых решений
	r.drainFills()

	mTicks.Inc()
	now := r.now()
	r.state.TouchTick(now)

	candles, err := r.ex.GetCandles(ctx, r.cfg.Exchange.Symbol, r.cfg.Exchange.Interval, r.cfg.Exchange.CandleLimit)
	if err != nil {
		return fmt.Errorf("get candles: %w", err)
	}
	snap, err := indicator.BuildSnapshot(candles, &r.cfg.Strategy)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	r.state.SetReady(true)

	decision := "paused"
	if !r.paused.Load() {
		decision = r.dispatch(ctx, snap, now)
	}
	span.SetTag("decision", decision)
	mDecisions.WithLabelValues(decision).Inc()
	mCapital.Set(r.capital)

	r.refreshStatus(now)
	return nil
}

// dispatch — решения по снапшоту. Вход только без позиции, выход только
// с позицией; направление с висящим отложенным ордером пропускается.
func (r *Runner) dispatch(ctx context.Context, snap *models.IndicatorSnapshot, now time.Time) string {
	if r.pos != nil {
		if r.ev.Trail(snap.Price, r.pos) {
			logger.Info("[TRAIL] stop=%.4f active=%v", r.pos.TrailSL, r.pos.TrailActive)
		}
		reason := r.ev.Exit(snap, r.pos)
		if reason == models.ExitNone {
			return "hold"
		}
		if _, busy := r.pending[models.SideSell]; busy {
			return "pending"
		}
		r.spawnExit(ctx, snap, reason)
		return "exit"
	}

	if _, busy := r.pending[models.SideBuy]; busy {
		return "pending"
	}
	order, ok := r.ev.Entry(snap, now.UTC().Hour(), r.capital)
	if !ok {
		return "hold"
	}
	if order.Qty <= 0 {
		r.n.Sendf("⚠️ Сигнал на вход, но размер нулевой (капитал %.2f)", r.capital)
		return "hold"
	}
	r.spawnEntry(ctx, snap, order)
	return "enter"
}

func (r *Runner) refreshStatus(now time.Time) {
	st := models.BotStatus{
		Symbol:   r.cfg.Exchange.Symbol,
		Paused:   r.paused.Load(),
		Capital:  r.capital,
		LastTick: now,
	}
	if r.pos != nil {
		cp := *r.pos
		st.Position = &cp
	}
	if r.feed != nil {
		st.LastPrice, st.PriceAt = r.feed.Last()
	}
	for side := range r.pending {
		st.PendingSide = side
	}

	r.statusMu.Lock()
	r.status = st
	r.statusMu.Unlock()
}

// Status — read-only снимок для телеграма.
func (r *Runner) Status() models.BotStatus {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

func (r *Runner) Pause() {
	r.paused.Store(true)
	r.state.SetPaused(true)
}

func (r *Runner) Resume() {
	r.paused.Store(false)
	r.state.SetPaused(false)
}
