package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"momentum_bot/pkg/logger"

	"momentum_bot/internal/modules/config"
	healthsvc "momentum_bot/internal/modules/health/service"
)

// Feed — живой last price по WS miniTicker. Кормит только статусную
// вьюху: тиковый цикл от него не зависит, упавший WS не мешает торговле.
type Feed struct {
	wsURL  string
	symbol string
	dialer *websocket.Dialer
	state  *healthsvc.State

	mu        sync.RWMutex
	price     float64
	updatedAt time.Time
}

func NewFeed(cfg *config.Config, state *healthsvc.State) *Feed {
	return &Feed{
		wsURL:  strings.TrimRight(cfg.Exchange.WSURL, "/"),
		symbol: cfg.Exchange.Symbol,
		dialer: &websocket.Dialer{},
		state:  state,
	}
}

// Last — последняя цена и когда она приехала. Ноль — ещё не было данных.
func (f *Feed) Last() (float64, time.Time) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.price, f.updatedAt
}

func (f *Feed) setPrice(p float64) {
	f.mu.Lock()
	f.price = p
	f.updatedAt = time.Now()
	f.mu.Unlock()
}

// Run — цикл reconnect: dial, читаем до ошибки, секунда паузы, заново.
func (f *Feed) Run(ctx context.Context) {
	url := f.wsURL + "/" + strings.ToLower(f.symbol) + "@miniTicker"
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		logger.Info("[WS] connect %s", url)
		conn, _, err := f.dialer.DialContext(ctx, url, nil)
		if err != nil {
			logger.Error("[WS] dial error: %v", err)
			time.Sleep(time.Second)
			continue
		}
		f.state.SetWSConnected(true)

		f.readLoop(ctx, conn)

		f.state.SetWSConnected(false)
		_ = conn.Close()

		select {
		case <-ctx.Done():
			return
		default:
			time.Sleep(time.Second)
		}
	}
}

func (f *Feed) readLoop(ctx context.Context, conn *websocket.Conn) {
	stopPing := make(chan struct{})
	defer close(stopPing)

	go func() {
		t := time.NewTicker(20 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-stopPing:
				return
			case <-ctx.Done():
				// будим ReadMessage, иначе цикл висит до следующего кадра
				_ = conn.Close()
				return
			case <-t.C:
				_ = conn.WriteMessage(websocket.PingMessage, nil)
			}
		}
	}()

	for {
		if ctx.Err() != nil {
			return
		}
		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.Error("[WS] read error: %v", err)
			return
		}

		// miniTicker: {"e":"24hrMiniTicker","s":"BTCUSDT","c":"101.5",...}
		var frame struct {
			Event string `json:"e"`
			Close string `json:"c"`
		}
		if err := json.Unmarshal(msg, &frame); err != nil {
			continue
		}
		if frame.Event != "24hrMiniTicker" || frame.Close == "" {
			continue
		}
		if p, err := strconv.ParseFloat(frame.Close, 64); err == nil && p > 0 {
			f.setPrice(p)
		}
	}
}
