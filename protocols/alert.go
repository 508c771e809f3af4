package protocols

import (
	"context"
	"time"

	"github.com/giovaniif/stock-dashboard/domain/item"
)

type StockAlert struct {
	ItemName   string      `json:"itemName"`
	StockQty   int64       `json:"stockQty"`
	IssueQty   int64       `json:"issueQty"`
	BalanceQty int64       `json:"balanceQty"`
	Status     item.Status `json:"status"`
	ObservedAt time.Time   `json:"observedAt"`
}

type AlertPublisher interface {
	Publish(ctx context.Context, alert StockAlert) error
}

// AlertDeduper remembers which items were already alerted within a cooldown.
// Reserve reports true only for the first caller of a window.
type AlertDeduper interface {
	Reserve(ctx context.Context, itemName string) (bool, error)
	Release(ctx context.Context, itemName string) error
}
