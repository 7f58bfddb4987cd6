package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum_bot/pkg/logger"

	"momentum_bot/internal/modules/config"
	healthsvc "momentum_bot/internal/modules/health/service"
)

func TestMain(m *testing.M) {
	if err := logger.Init("pricefeed-test"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// wsServer — эхо-сервер: апгрейд, опциональный кадр, дальше молчим до
// закрытия со стороны клиента.
func wsServer(t *testing.T, frame string) *httptest.Server {
	t.Helper()
	up := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if frame != "" {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(frame))
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func newTestFeed(srvURL string) (*Feed, *healthsvc.State) {
	state := healthsvc.NewState()
	cfg := &config.Config{
		Exchange: config.ExchangeConfig{
			WSURL:  "ws" + strings.TrimPrefix(srvURL, "http"),
			Symbol: "BTCUSDT",
		},
	}
	return NewFeed(cfg, state), state
}

func TestFeedParsesMiniTicker(t *testing.T) {
	srv := wsServer(t, `{"e":"24hrMiniTicker","s":"BTCUSDT","c":"101.5"}`)
	defer srv.Close()

	f, state := newTestFeed(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go f.Run(ctx)

	require.Eventually(t, func() bool {
		p, _ := f.Last()
		return p > 0
	}, 2*time.Second, 10*time.Millisecond)

	p, at := f.Last()
	assert.Equal(t, 101.5, p)
	assert.False(t, at.IsZero())
	assert.True(t, state.WSConnected())
}

// Отмена контекста обязана будить ReadMessage: Run возвращается сразу,
// а не дожидается следующего кадра от биржи.
func TestFeedStopsOnContextCancel(t *testing.T) {
	srv := wsServer(t, "")
	defer srv.Close()

	f, state := newTestFeed(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return state.WSConnected()
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run не вернулся после отмены контекста")
	}
	assert.False(t, state.WSConnected())
}
