package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/giovaniif/stock-dashboard/domain/item"
)

// Stock totals are grouped per descriptor on each side before the join so a
// descriptor with several issue rows is not multiplied by its stock rows.
// Stock records without a descriptor have no item to report and are skipped.
const totalsQuery = `
WITH stock AS (
  SELECT item_desc, SUM(quantity) AS stock_qty
  FROM sell_item
  WHERE item_desc IS NOT NULL
  GROUP BY item_desc
),
issue AS (
  SELECT tran_desc, SUM(tran_qty) AS issue_qty
  FROM bill_tran
  GROUP BY tran_desc
)
SELECT
  s.item_desc AS item_name,
  s.stock_qty,
  COALESCE(i.issue_qty, 0) AS issue_qty
FROM stock s
LEFT JOIN issue i ON s.item_desc = i.tran_desc
ORDER BY s.item_desc
`

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Totals(ctx context.Context) ([]item.Totals, error) {
	rows, err := r.db.QueryContext(ctx, totalsQuery)
	if err != nil {
		return nil, fmt.Errorf("query stock totals: %w", err)
	}
	defer rows.Close()

	out := []item.Totals{}
	for rows.Next() {
		var t item.Totals
		if err := rows.Scan(&t.ItemName, &t.StockQty, &t.IssueQty); err != nil {
			return nil, fmt.Errorf("scan stock totals: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read stock totals: %w", err)
	}
	return out, nil
}

func (r *ItemRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
