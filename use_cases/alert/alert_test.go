package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/giovaniif/stock-dashboard/domain/item"
	protocols "github.com/giovaniif/stock-dashboard/protocols"
)

type mockPublisher struct {
	published  []protocols.StockAlert
	publishErr error
}

func (m *mockPublisher) Publish(ctx context.Context, alert protocols.StockAlert) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, alert)
	return nil
}

type mockDeduper struct {
	reserved   map[string]bool
	reserveErr error
	released   []string
}

func newMockDeduper() *mockDeduper {
	return &mockDeduper{reserved: make(map[string]bool)}
}

func (m *mockDeduper) Reserve(ctx context.Context, itemName string) (bool, error) {
	if m.reserveErr != nil {
		return false, m.reserveErr
	}
	if m.reserved[itemName] {
		return false, nil
	}
	m.reserved[itemName] = true
	return true, nil
}

func (m *mockDeduper) Release(ctx context.Context, itemName string) error {
	m.released = append(m.released, itemName)
	delete(m.reserved, itemName)
	return nil
}

var rows = []item.StockRow{
	{No: 1, ItemName: "B", StockQty: 30, IssueQty: 40, BalanceQty: 0},
	{No: 2, ItemName: "C", StockQty: 40, IssueQty: 5, BalanceQty: 35},
	{No: 3, ItemName: "A", StockQty: 100, IssueQty: 40, BalanceQty: 60},
}

func TestNotify_PublishesCriticalOnce(t *testing.T) {
	publisher := &mockPublisher{}
	deduper := newMockDeduper()
	uc := NewAlert(publisher, deduper)
	uc.now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }

	n, err := uc.Notify(context.Background(), rows)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if n != 1 || len(publisher.published) != 1 {
		t.Fatalf("expected one alert, got %d", len(publisher.published))
	}
	got := publisher.published[0]
	if got.ItemName != "B" || got.Status != item.StatusCritical || got.BalanceQty != 0 || got.IssueQty != 40 {
		t.Fatalf("unexpected alert: %+v", got)
	}

	n, _ = uc.Notify(context.Background(), rows)
	if n != 0 || len(publisher.published) != 1 {
		t.Fatalf("expected no repeat alert within cooldown, got %d", len(publisher.published))
	}
}

func TestNotify_RecoveryRearms(t *testing.T) {
	publisher := &mockPublisher{}
	uc := NewAlert(publisher, newMockDeduper())

	uc.Notify(context.Background(), rows)
	recovered := []item.StockRow{{No: 1, ItemName: "B", StockQty: 130, IssueQty: 40, BalanceQty: 90}}
	uc.Notify(context.Background(), recovered)
	uc.Notify(context.Background(), rows)

	if len(publisher.published) != 2 {
		t.Fatalf("expected alert again after recovery, got %d alerts", len(publisher.published))
	}
}

func TestNotify_PublishErrorReleasesKey(t *testing.T) {
	publisher := &mockPublisher{publishErr: errors.New("broker unavailable")}
	deduper := newMockDeduper()
	uc := NewAlert(publisher, deduper)

	n, err := uc.Notify(context.Background(), rows)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if n != 0 {
		t.Fatalf("expected nothing published, got %d", n)
	}
	if deduper.reserved["B"] {
		t.Fatalf("expected key released after publish failure")
	}
}

func TestNotify_ReserveError(t *testing.T) {
	publisher := &mockPublisher{}
	deduper := newMockDeduper()
	deduper.reserveErr = errors.New("redis down")
	uc := NewAlert(publisher, deduper)

	_, err := uc.Notify(context.Background(), rows)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if len(publisher.published) != 0 {
		t.Fatalf("expected no alert when reservation fails")
	}
}
