package service

import "encoding/json"

// Биржа отдаёт kline строками-массивами со смешанными типами ячеек:
// [openTime(int), open(str), high(str), low(str), close(str), volume(str),
//  closeTime(int), ...]. Разбираем терпимо, битые строки пропускаем.
type klineRows [][]json.RawMessage

type orderResponse struct {
	Symbol       string `json:"symbol"`
	OrderID      int64  `json:"orderId"`
	Status       string `json:"status"`
	ExecutedQty  string `json:"executedQty"`
	CumQuoteQty  string `json:"cummulativeQuoteQty"`
	Fills        []fill `json:"fills"`
	Code         int    `json:"code"`
	Msg          string `json:"msg"`
}

type fill struct {
	Price string `json:"price"`
	Qty   string `json:"qty"`
}

type accountResponse struct {
	Balances []balance `json:"balances"`
	Code     int       `json:"code"`
	Msg      string    `json:"msg"`
}

type balance struct {
	Asset string `json:"asset"`
	Free  string `json:"free"`
}
