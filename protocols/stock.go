package protocols

import (
	"context"

	"github.com/giovaniif/stock-dashboard/domain/item"
)

type StockGateway interface {
	FetchStock(ctx context.Context) ([]item.StockRow, error)
}
