package ports

import (
	"context"

	"shelf2door/internal/core/domain/model/shelf"
)

// ShelfStockRepository stores the latest stock report per shelf, as reported
// by the store's sensor network.
type ShelfStockRepository interface {
	Upsert(ctx context.Context, report shelf.StockReport) error
	All(ctx context.Context) ([]shelf.StockReport, error)
}
