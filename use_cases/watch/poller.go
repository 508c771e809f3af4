package watch

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/giovaniif/stock-dashboard/domain/item"
	infra "github.com/giovaniif/stock-dashboard/infra"
	protocols "github.com/giovaniif/stock-dashboard/protocols"
)

const DefaultInterval = 30 * time.Second

type Subscriber func(rows []item.StockRow, updatedAt time.Time)

// Poller keeps the last successfully fetched stock rows. A failed fetch is
// logged and leaves the rows untouched; the next tick is the retry.
type Poller struct {
	stockGateway protocols.StockGateway
	interval     time.Duration
	logger       zerolog.Logger
	now          func() time.Time

	mutex       sync.RWMutex
	rows        []item.StockRow
	loaded      bool
	lastUpdated time.Time
	subscribers []Subscriber

	lifecycle sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewPoller(stockGateway protocols.StockGateway, interval time.Duration, logger zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		stockGateway: stockGateway,
		interval:     interval,
		logger:       logger,
		now:          time.Now,
	}
}

// Subscribe registers fn to run on the polling goroutine after every
// successful fetch.
func (p *Poller) Subscribe(fn Subscriber) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

// Start fetches immediately and then on every interval until Stop is called
// or ctx is canceled. Calling Start on a running poller does nothing; a
// poller whose context was canceled can be started again.
func (p *Poller) Start(ctx context.Context) {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()
	if p.cancel != nil {
		select {
		case <-p.done:
			p.cancel()
		default:
			return
		}
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.loop(ctx, p.done)
}

// Stop halts the timer, cancels the in-flight fetch and waits for the loop to exit.
func (p *Poller) Stop() {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	_ = p.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = p.Poll(ctx)
		}
	}
}

// Poll performs a single fetch. The returned error has already been logged.
func (p *Poller) Poll(ctx context.Context) error {
	rows, err := p.stockGateway.FetchStock(ctx)
	if err != nil {
		switch {
		case ctx.Err() != nil:
		case infra.IsRetriable(err):
			p.logger.Warn().Err(err).Msg("failed to fetch stock data, retrying on next tick")
		default:
			p.logger.Error().Err(err).Msg("failed to fetch stock data")
		}
		return err
	}

	updatedAt := p.now()
	p.mutex.Lock()
	p.rows = rows
	p.loaded = true
	p.lastUpdated = updatedAt
	subscribers := slices.Clone(p.subscribers)
	p.mutex.Unlock()

	p.logger.Debug().Int("items", len(rows)).Msg("stock data refreshed")
	for _, fn := range subscribers {
		fn(slices.Clone(rows), updatedAt)
	}
	return nil
}

func (p *Poller) Rows() []item.StockRow {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return slices.Clone(p.rows)
}

func (p *Poller) Loaded() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.loaded
}

func (p *Poller) LastUpdated() time.Time {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.lastUpdated
}

// Running reports whether the polling loop is active.
func (p *Poller) Running() bool {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()
	if p.cancel == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

func (p *Poller) Interval() time.Duration {
	return p.interval
}
