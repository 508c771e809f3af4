package status

import (
	"context"
	"errors"
	"testing"

	"github.com/giovaniif/stock-dashboard/domain/item"
)

type mockRepository struct {
	totalsResult []item.Totals
	totalsErr    error

	totalsCalled int
}

func (m *mockRepository) Totals(ctx context.Context) ([]item.Totals, error) {
	m.totalsCalled++
	return m.totalsResult, m.totalsErr
}

func TestGetStockStatus_EndToEnd(t *testing.T) {
	repo := &mockRepository{
		totalsResult: []item.Totals{
			{ItemName: "A", StockQty: 100, IssueQty: 40},
			{ItemName: "B", StockQty: 30, IssueQty: 40},
		},
	}
	uc := NewStatus(repo)

	rows, err := uc.GetStockStatus(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	expected := []item.StockRow{
		{No: 1, ItemName: "B", StockQty: 30, IssueQty: 40, BalanceQty: 0},
		{No: 2, ItemName: "A", StockQty: 100, IssueQty: 40, BalanceQty: 60},
	}
	if len(rows) != len(expected) {
		t.Fatalf("expected %d rows, got %d", len(expected), len(rows))
	}
	for i := range expected {
		if rows[i] != expected[i] {
			t.Fatalf("row %d: expected %+v, got %+v", i, expected[i], rows[i])
		}
	}
	if repo.totalsCalled != 1 {
		t.Fatalf("expected Totals called once, got %d", repo.totalsCalled)
	}
}

func TestGetStockStatus_SortedByBalance(t *testing.T) {
	repo := &mockRepository{
		totalsResult: []item.Totals{
			{ItemName: "bolts", StockQty: 500, IssueQty: 10},
			{ItemName: "nuts", StockQty: 25, IssueQty: 0},
			{ItemName: "screws", StockQty: 60, IssueQty: 55},
			{ItemName: "washers", StockQty: 80, IssueQty: 0},
		},
	}
	uc := NewStatus(repo)

	rows, err := uc.GetStockStatus(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].BalanceQty > rows[i].BalanceQty {
			t.Fatalf("rows not sorted by balance at %d: %+v", i, rows)
		}
	}
	for i, row := range rows {
		if row.No != i+1 {
			t.Fatalf("expected rank %d, got %d", i+1, row.No)
		}
		if row.BalanceQty < 0 || row.BalanceQty != max(row.StockQty-row.IssueQty, 0) {
			t.Fatalf("unexpected balance for %+v", row)
		}
	}
	if rows[0].ItemName != "screws" {
		t.Fatalf("expected screws first, got %s", rows[0].ItemName)
	}
}

func TestGetStockStatus_TiesOrderedByName(t *testing.T) {
	repo := &mockRepository{
		totalsResult: []item.Totals{
			{ItemName: "zinc", StockQty: 10, IssueQty: 10},
			{ItemName: "iron", StockQty: 5, IssueQty: 9},
			{ItemName: "copper", StockQty: 0, IssueQty: 0},
		},
	}
	uc := NewStatus(repo)

	rows, err := uc.GetStockStatus(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	names := []string{rows[0].ItemName, rows[1].ItemName, rows[2].ItemName}
	if names[0] != "copper" || names[1] != "iron" || names[2] != "zinc" {
		t.Fatalf("expected [copper iron zinc], got %v", names)
	}
}

func TestGetStockStatus_Empty(t *testing.T) {
	uc := NewStatus(&mockRepository{})

	rows, err := uc.GetStockStatus(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", rows)
	}
}

func TestGetStockStatus_RepositoryError(t *testing.T) {
	repo := &mockRepository{totalsErr: errors.New("connection refused")}
	uc := NewStatus(repo)

	rows, err := uc.GetStockStatus(context.Background())
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if rows != nil {
		t.Fatalf("expected no partial result, got %+v", rows)
	}
}
