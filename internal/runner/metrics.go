package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_ticks_total",
		Help: "Сколько тиков отработало.",
	})
	mTickErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_tick_errors_total",
		Help: "Тики, умершие на recoverable-ошибке.",
	})
	mDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_decisions_total",
		Help: "Решения цикла по типам.",
	}, []string{"decision"})
	mOrders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_orders_total",
		Help: "Отправленные market-ордера.",
	}, []string{"side"})
	mCapital = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bot_capital",
		Help: "Текущий торговый капитал.",
	})
)
