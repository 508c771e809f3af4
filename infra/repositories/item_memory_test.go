package repositories

import (
	"context"
	"testing"
)

func TestItemRepositoryMemory_Totals(t *testing.T) {
	repo := NewItemRepositoryMemory(
		[]StockRecord{{"B", 30}, {"A", 100}},
		[]IssueRecord{{"A", 40}, {"B", 40}, {"Z", 10}},
	)

	totals, err := repo.Totals(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 totals, got %+v", totals)
	}
	if totals[0].ItemName != "A" || totals[0].StockQty != 100 || totals[0].IssueQty != 40 {
		t.Fatalf("unexpected first total: %+v", totals[0])
	}
	if totals[1].ItemName != "B" || totals[1].StockQty != 30 || totals[1].IssueQty != 40 {
		t.Fatalf("unexpected second total: %+v", totals[1])
	}
}

func TestItemRepositoryMemory_CanceledContext(t *testing.T) {
	repo := NewItemRepositoryMemory([]StockRecord{{"A", 10}}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.Totals(ctx); err == nil {
		t.Fatalf("expected error for canceled context, got nil")
	}
}
