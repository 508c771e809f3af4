package repositories

import (
	"context"
	"slices"

	"github.com/giovaniif/stock-dashboard/domain/item"
)

type ItemRepositoryMemory struct {
	stock  []StockRecord
	issues []IssueRecord
}

func NewItemRepositoryMemory(stock []StockRecord, issues []IssueRecord) *ItemRepositoryMemory {
	return &ItemRepositoryMemory{
		stock:  slices.Clone(stock),
		issues: slices.Clone(issues),
	}
}

func (r *ItemRepositoryMemory) Totals(ctx context.Context) ([]item.Totals, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	stockQty := make(map[string]int64)
	var names []string
	for _, s := range r.stock {
		if _, ok := stockQty[s.ItemDesc]; !ok {
			names = append(names, s.ItemDesc)
		}
		stockQty[s.ItemDesc] += s.Quantity
	}
	issueQty := make(map[string]int64)
	for _, i := range r.issues {
		issueQty[i.TranDesc] += i.TranQty
	}

	slices.Sort(names)
	out := make([]item.Totals, 0, len(names))
	for _, name := range names {
		out = append(out, item.Totals{
			ItemName: name,
			StockQty: stockQty[name],
			IssueQty: issueQty[name],
		})
	}
	return out, nil
}

func (r *ItemRepositoryMemory) Ping(ctx context.Context) error {
	return ctx.Err()
}
