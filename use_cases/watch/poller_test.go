package watch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/giovaniif/stock-dashboard/domain/item"
	infra "github.com/giovaniif/stock-dashboard/infra"
)

type mockStockGateway struct {
	mutex   sync.Mutex
	results [][]item.StockRow
	errs    []error
	calls   int

	called chan struct{}
}

func (m *mockStockGateway) FetchStock(ctx context.Context) ([]item.StockRow, error) {
	m.mutex.Lock()
	i := m.calls
	m.calls++
	m.mutex.Unlock()
	if m.called != nil {
		select {
		case m.called <- struct{}{}:
		default:
		}
	}
	var rows []item.StockRow
	var err error
	if i < len(m.results) {
		rows = m.results[i]
	}
	if i < len(m.errs) {
		err = m.errs[i]
	}
	return rows, err
}

func (m *mockStockGateway) callCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.calls
}

var firstRows = []item.StockRow{
	{No: 1, ItemName: "B", StockQty: 30, IssueQty: 40, BalanceQty: 0},
	{No: 2, ItemName: "A", StockQty: 100, IssueQty: 40, BalanceQty: 60},
}

func TestPoll_FailureKeepsPreviousRows(t *testing.T) {
	gw := &mockStockGateway{
		results: [][]item.StockRow{firstRows, nil},
		errs:    []error{nil, errors.New("connection refused")},
	}
	p := NewPoller(gw, time.Minute, zerolog.Nop())

	if err := p.Poll(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	updated := p.LastUpdated()
	if err := p.Poll(context.Background()); err == nil {
		t.Fatalf("expected error on second poll, got nil")
	}

	rows := p.Rows()
	if len(rows) != 2 || rows[0] != firstRows[0] || rows[1] != firstRows[1] {
		t.Fatalf("expected previous rows to be kept, got %+v", rows)
	}
	if !p.LastUpdated().Equal(updated) {
		t.Fatalf("expected last updated unchanged after failure")
	}
}

func TestPoll_NotLoadedUntilFirstSuccess(t *testing.T) {
	gw := &mockStockGateway{errs: []error{errors.New("boom")}, results: [][]item.StockRow{nil, firstRows}}
	p := NewPoller(gw, time.Minute, zerolog.Nop())

	p.Poll(context.Background())
	if p.Loaded() {
		t.Fatalf("expected poller not loaded after failure")
	}
	p.Poll(context.Background())
	if !p.Loaded() || len(p.Rows()) != 2 {
		t.Fatalf("expected poller loaded with rows")
	}
}

func TestPoll_NotifiesSubscribers(t *testing.T) {
	gw := &mockStockGateway{results: [][]item.StockRow{firstRows}}
	p := NewPoller(gw, time.Minute, zerolog.Nop())
	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	p.now = func() time.Time { return at }

	var got []item.StockRow
	var gotAt time.Time
	p.Subscribe(func(rows []item.StockRow, updatedAt time.Time) {
		got = rows
		gotAt = updatedAt
	})
	p.Poll(context.Background())

	if len(got) != 2 || !gotAt.Equal(at) {
		t.Fatalf("unexpected notification: %+v at %v", got, gotAt)
	}
	got[0].ItemName = "mutated"
	if p.Rows()[0].ItemName != "B" {
		t.Fatalf("expected subscriber to receive a copy")
	}
}

func TestStart_PollsImmediatelyAndOnInterval(t *testing.T) {
	gw := &mockStockGateway{
		results: [][]item.StockRow{firstRows, firstRows, firstRows, firstRows, firstRows},
		called:  make(chan struct{}, 1),
	}
	p := NewPoller(gw, 10*time.Millisecond, zerolog.Nop())

	p.Start(context.Background())
	p.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for gw.callCount() < 3 {
		select {
		case <-gw.called:
		case <-deadline:
			t.Fatalf("expected at least 3 fetches, got %d", gw.callCount())
		}
	}
	p.Stop()

	stopped := gw.callCount()
	time.Sleep(50 * time.Millisecond)
	if gw.callCount() != stopped {
		t.Fatalf("expected no fetch after Stop, got %d -> %d", stopped, gw.callCount())
	}
	p.Stop()
}

type blockingGateway struct {
	started chan struct{}
}

func (b *blockingGateway) FetchStock(ctx context.Context) ([]item.StockRow, error) {
	close(b.started)
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestStop_CancelsInFlightFetch(t *testing.T) {
	gw := &blockingGateway{started: make(chan struct{})}
	p := NewPoller(gw, time.Minute, zerolog.Nop())

	p.Start(context.Background())
	<-gw.started

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected Stop to return once the fetch is canceled")
	}
	if p.Loaded() {
		t.Fatalf("expected no rows from a canceled fetch")
	}
}

func TestNewPoller_DefaultInterval(t *testing.T) {
	p := NewPoller(&mockStockGateway{}, 0, zerolog.Nop())
	if p.Interval() != DefaultInterval {
		t.Fatalf("expected default interval, got %v", p.Interval())
	}
}

func TestPoll_LogLevelFollowsRetriability(t *testing.T) {
	var buf bytes.Buffer
	gw := &mockStockGateway{errs: []error{
		infra.NewNetworkError("server error fetching stock status"),
		infra.NewUnexpectedStatusError(404),
	}}
	p := NewPoller(gw, time.Minute, zerolog.New(&buf))

	p.Poll(context.Background())
	p.Poll(context.Background())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], `"level":"warn"`) {
		t.Fatalf("expected network failure logged at warn, got %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"error"`) {
		t.Fatalf("expected unexpected status logged at error, got %s", lines[1])
	}
}

func TestStart_RestartsAfterParentCanceled(t *testing.T) {
	gw := &mockStockGateway{
		results: [][]item.StockRow{firstRows, firstRows},
		called:  make(chan struct{}, 1),
	}
	p := NewPoller(gw, time.Minute, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	<-gw.called
	cancel()

	deadline := time.After(2 * time.Second)
	for p.Running() {
		select {
		case <-deadline:
			t.Fatalf("expected loop to exit after parent cancel")
		case <-time.After(5 * time.Millisecond):
		}
	}

	p.Start(context.Background())
	defer p.Stop()
	select {
	case <-gw.called:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected restarted poller to fetch, got %d fetches", gw.callCount())
	}
	if !p.Running() {
		t.Fatalf("expected poller to be running after restart")
	}
}
