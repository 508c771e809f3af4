package item

import "context"

type Repository interface {
	Totals(ctx context.Context) ([]Totals, error)
}
