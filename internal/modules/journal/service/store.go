package service

import (
	"context"

	"momentum_bot/internal/models"
)

// Store — append-only журнал сделок. Писатель ровно один (тиковый цикл),
// читатели — телеграм-команды и replay.
type Store interface {
	Append(ctx context.Context, rec models.TradeRecord) error
	Recent(ctx context.Context, n int) ([]models.TradeRecord, error)
	All(ctx context.Context) ([]models.TradeRecord, error)
}
