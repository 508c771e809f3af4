package loki

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	pushPath      = "/loki/api/v1/push"
	flushEvery    = 1 * time.Second
	flushAtLength = 20
)

// Writer buffers log lines and ships them to Loki's push API in batches.
type Writer struct {
	url    string
	labels map[string]string
	client *http.Client

	mu     sync.Mutex
	buf    []entry
	ticker *time.Ticker
	done   chan struct{}
	closed sync.Once
}

type entry struct {
	ts   string
	line string
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// NewWriter returns a Writer pushing to baseURL (e.g. http://loki:3100) under
// the given stream labels. It returns nil when baseURL is empty.
func NewWriter(baseURL string, labels map[string]string) *Writer {
	if baseURL == "" || len(labels) == 0 {
		return nil
	}
	w := &Writer{
		url:    strings.TrimSuffix(baseURL, "/") + pushPath,
		labels: labels,
		client: &http.Client{Timeout: 5 * time.Second},
		buf:    make([]entry, 0, 64),
		ticker: time.NewTicker(flushEvery),
		done:   make(chan struct{}),
	}
	go w.flushLoop()
	return w
}

// Write implements io.Writer. Every non-empty line becomes one Loki entry.
func (w *Writer) Write(p []byte) (int, error) {
	now := strconv.FormatInt(time.Now().UnixNano(), 10)
	needFlush := false

	w.mu.Lock()
	for _, line := range bytes.Split(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		w.buf = append(w.buf, entry{ts: now, line: string(line)})
	}
	needFlush = len(w.buf) >= flushAtLength
	w.mu.Unlock()

	if needFlush {
		_ = w.flush()
	}
	return len(p), nil
}

func (w *Writer) flushLoop() {
	for {
		select {
		case <-w.done:
			return
		case <-w.ticker.C:
			_ = w.flush()
		}
	}
}

func (w *Writer) flush() error {
	w.mu.Lock()
	if len(w.buf) == 0 {
		w.mu.Unlock()
		return nil
	}
	entries := w.buf
	w.buf = make([]entry, 0, 64)
	w.mu.Unlock()

	values := make([][]string, len(entries))
	for i, e := range entries {
		values[i] = []string{e.ts, e.line}
	}
	raw, err := json.Marshal(pushRequest{
		Streams: []stream{{Stream: w.labels, Values: values}},
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, w.url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("loki push: status %d", resp.StatusCode)
	}
	return nil
}

// Close stops the background flusher and pushes whatever is still buffered.
func (w *Writer) Close() error {
	var err error
	w.closed.Do(func() {
		w.ticker.Stop()
		close(w.done)
		err = w.flush()
	})
	return err
}
