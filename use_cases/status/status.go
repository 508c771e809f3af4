package status

import (
	"cmp"
	"context"
	"slices"

	"github.com/giovaniif/stock-dashboard/domain/item"
)

type Status struct {
	itemRepository item.Repository
}

func NewStatus(itemRepository item.Repository) *Status {
	return &Status{
		itemRepository: itemRepository,
	}
}

// GetStockStatus recomputes the balance of every stock descriptor and ranks
// them lowest balance first. Equal balances are ordered by item name.
func (s *Status) GetStockStatus(ctx context.Context) ([]item.StockRow, error) {
	totals, err := s.itemRepository.Totals(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]item.StockRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, item.NewStockRow(t))
	}

	slices.SortStableFunc(rows, func(a, b item.StockRow) int {
		if c := cmp.Compare(a.BalanceQty, b.BalanceQty); c != 0 {
			return c
		}
		return cmp.Compare(a.ItemName, b.ItemName)
	})
	for i := range rows {
		rows[i].No = i + 1
	}

	return rows, nil
}
