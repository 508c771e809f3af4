package alert

import (
	"context"
	"errors"
	"time"

	"github.com/giovaniif/stock-dashboard/domain/item"
	protocols "github.com/giovaniif/stock-dashboard/protocols"
)

type Alert struct {
	publisher protocols.AlertPublisher
	deduper   protocols.AlertDeduper
	now       func() time.Time
}

func NewAlert(publisher protocols.AlertPublisher, deduper protocols.AlertDeduper) *Alert {
	return &Alert{
		publisher: publisher,
		deduper:   deduper,
		now:       time.Now,
	}
}

// Notify publishes one alert for every critical row not already alerted in
// the current cooldown. Rows out of the critical band re-arm their item.
// Every row is processed even when some fail; the returned error joins them.
func (a *Alert) Notify(ctx context.Context, rows []item.StockRow) (int, error) {
	published := 0
	var errs []error
	observedAt := a.now().UTC()

	for _, row := range rows {
		if row.Status() != item.StatusCritical {
			if err := a.deduper.Release(ctx, row.ItemName); err != nil {
				errs = append(errs, err)
			}
			continue
		}

		first, err := a.deduper.Reserve(ctx, row.ItemName)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !first {
			continue
		}

		err = a.publisher.Publish(ctx, protocols.StockAlert{
			ItemName:   row.ItemName,
			StockQty:   row.StockQty,
			IssueQty:   row.IssueQty,
			BalanceQty: row.BalanceQty,
			Status:     item.StatusCritical,
			ObservedAt: observedAt,
		})
		if err != nil {
			// let the next poll try again
			_ = a.deduper.Release(ctx, row.ItemName)
			errs = append(errs, err)
			continue
		}
		published++
	}

	return published, errors.Join(errs...)
}
