package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"momentum_bot/internal/helper"
	"momentum_bot/internal/models"
	"momentum_bot/internal/modules/config"
)

// Client — REST-клиент биржи: свечи, маркет-ордера, балансы.
// Подпись HMAC-SHA256 hex по query string, ключ в заголовке.
type Client struct {
	baseURL   string
	apiKey    string
	apiSecret string

	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.Exchange.BaseURL, "/"),
		apiKey:    cfg.Exchange.APIKey,
		apiSecret: cfg.Exchange.APISecret,
		http:      &http.Client{Timeout: 10 * time.Second},
		// публичный лимит с запасом; вместо слипов перед каждым запросом
		limiter: rate.NewLimiter(rate.Limit(8), 16),
	}
}

func (c *Client) sign(query string) string {
	h := hmac.New(sha256.New, []byte(c.apiSecret))
	h.Write([]byte(query))
	return hex.EncodeToString(h.Sum(nil))
}

// GetCandles — последние limit закрытых свечей, хронологический порядок
// (самая свежая — последняя, как отдаёт /klines).
func (c *Client) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	if limit <= 0 {
		limit = 100
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(helper.NormInterval(interval)), limit,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(b))
	}

	var rows klineRows
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("decode klines: %w", err)
	}

	out := make([]models.Candle, 0, len(rows))
	for _, row := range rows {
		if len(row) < 7 {
			continue
		}
		var tsMs, closeMs int64
		if err := json.Unmarshal(row[0], &tsMs); err != nil {
			continue
		}
		_ = json.Unmarshal(row[6], &closeMs)

		open, err1 := cellFloat(row[1])
		high, err2 := cellFloat(row[2])
		low, err3 := cellFloat(row[3])
		closep, err4 := cellFloat(row[4])
		vol, err5 := cellFloat(row[5])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			continue
		}
		if closep <= 0 {
			continue
		}

		out = append(out, models.Candle{
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closep,
			Volume: vol,
			Start:  time.UnixMilli(tsMs),
			End:    time.UnixMilli(closeMs + 1),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("klines: пустой или нечитаемый ответ")
	}
	return out, nil
}

// cellFloat — ячейка массива может быть и числом, и строкой.
func cellFloat(raw json.RawMessage) (float64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strconv.ParseFloat(s, 64)
	}
	var f float64
	err := json.Unmarshal(raw, &f)
	return f, err
}

// PlaceMarket — рыночный ордер, возвращает среднюю цену исполнения.
func (c *Client) PlaceMarket(ctx context.Context, symbol string, side models.Side, qty float64) (float64, error) {
	if c.apiKey == "" || c.apiSecret == "" {
		return 0, fmt.Errorf("api creds empty")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("side", string(side))
	q.Set("type", "MARKET")
	q.Set("quantity", strconv.FormatFloat(qty, 'f', -1, 64))
	q.Set("newOrderRespType", "FULL")
	q.Set("timestamp", fmt.Sprintf("%d", time.Now().UTC().UnixMilli()))
	query := q.Encode()
	query += "&signature=" + c.sign(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v3/order?"+query, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-MBX-APIKEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return 0, fmt.Errorf("http %d: %s", resp.StatusCode, string(rb))
	}

	var ord orderResponse
	if err := json.Unmarshal(rb, &ord); err != nil {
		return 0, err
	}
	if ord.Code != 0 {
		return 0, fmt.Errorf("exchange error: code=%d msg=%s", ord.Code, ord.Msg)
	}

	// средневзвешенная по филлам; если филлов нет — quote/executed
	var qtySum, quoteSum float64
	for _, f := range ord.Fills {
		p, err1 := strconv.ParseFloat(f.Price, 64)
		v, err2 := strconv.ParseFloat(f.Qty, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		qtySum += v
		quoteSum += p * v
	}
	if qtySum > 0 {
		return quoteSum / qtySum, nil
	}

	executed, _ := strconv.ParseFloat(ord.ExecutedQty, 64)
	quote, _ := strconv.ParseFloat(ord.CumQuoteQty, 64)
	if executed > 0 && quote > 0 {
		return quote / executed, nil
	}
	return 0, fmt.Errorf("ордер %d без филлов (status=%s)", ord.OrderID, ord.Status)
}

// FreeBalance — свободный остаток актива; им сайзится sell на полный выход.
func (c *Client) FreeBalance(ctx context.Context, asset string) (float64, error) {
	if c.apiKey == "" || c.apiSecret == "" {
		return 0, fmt.Errorf("api creds empty")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	q := url.Values{}
	q.Set("timestamp", fmt.Sprintf("%d", time.Now().UTC().UnixMilli()))
	query := q.Encode()
	query += "&signature=" + c.sign(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v3/account?"+query, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-MBX-APIKEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return 0, fmt.Errorf("http %d: %s", resp.StatusCode, string(rb))
	}

	var acc accountResponse
	if err := json.Unmarshal(rb, &acc); err != nil {
		return 0, err
	}
	if acc.Code != 0 {
		return 0, fmt.Errorf("exchange error: code=%d msg=%s", acc.Code, acc.Msg)
	}
	for _, b := range acc.Balances {
		if b.Asset == asset {
			return strconv.ParseFloat(b.Free, 64)
		}
	}
	return 0, fmt.Errorf("актив %s не найден в балансах", asset)
}
