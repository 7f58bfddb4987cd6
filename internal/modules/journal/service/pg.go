package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"momentum_bot/internal/models"
	"momentum_bot/pkg/db"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS trade_journal (
    id      TEXT PRIMARY KEY,
    ts      TIMESTAMPTZ NOT NULL,
    symbol  TEXT NOT NULL,
    action  TEXT NOT NULL,
    price   DOUBLE PRECISION NOT NULL,
    qty     DOUBLE PRECISION NOT NULL,
    reason  TEXT NOT NULL DEFAULT '',
    capital DOUBLE PRECISION NOT NULL
)`

// Pg — тот же Store поверх postgres, на случай когда JSON-файл
// на диске пода не годится.
type Pg struct {
	tm *db.PgTxManager
}

func NewPg(ctx context.Context, tm *db.PgTxManager) (*Pg, error) {
	p := &Pg{tm: tm}
	err := tm.RunMaster(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, schemaSQL)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("journal schema: %w", err)
	}
	return p, nil
}

func (p *Pg) Append(ctx context.Context, rec models.TradeRecord) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Journal.Append: %w", err)
		}
	}()
	return p.tm.RunMaster(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO trade_journal (id, ts, symbol, action, price, qty, reason, capital)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			rec.ID, rec.Time, rec.Symbol, string(rec.Action), rec.Price, rec.Qty, rec.Reason, rec.Capital,
		)
		return err
	})
}

func (p *Pg) Recent(ctx context.Context, n int) (recs []models.TradeRecord, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Journal.Recent: %w", err)
		}
	}()
	err = p.tm.RunMaster(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT id, ts, symbol, action, price, qty, reason, capital
			 FROM trade_journal ORDER BY ts DESC LIMIT $1`, n)
		if err != nil {
			return err
		}
		recs, err = scanRecords(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	// из БД приходят новые-первыми, журнал отдаём хронологически
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}
	return recs, nil
}

func (p *Pg) All(ctx context.Context) (recs []models.TradeRecord, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Journal.All: %w", err)
		}
	}()
	err = p.tm.RunMaster(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT id, ts, symbol, action, price, qty, reason, capital
			 FROM trade_journal ORDER BY ts ASC`)
		if err != nil {
			return err
		}
		recs, err = scanRecords(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func scanRecords(rows pgx.Rows) ([]models.TradeRecord, error) {
	defer rows.Close()
	var out []models.TradeRecord
	for rows.Next() {
		var r models.TradeRecord
		var action string
		if err := rows.Scan(&r.ID, &r.Time, &r.Symbol, &action, &r.Price, &r.Qty, &r.Reason, &r.Capital); err != nil {
			return nil, err
		}
		r.Action = models.TradeAction(action)
		out = append(out, r)
	}
	return out, rows.Err()
}
