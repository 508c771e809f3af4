package ui

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/giovaniif/stock-dashboard/domain/item"
)

type SortMode int

const (
	SortByBalance SortMode = iota
	SortByName
	SortByBalanceDesc
)

func (s SortMode) Next() SortMode {
	return (s + 1) % 3
}

func (s SortMode) String() string {
	switch s {
	case SortByName:
		return "item name"
	case SortByBalanceDesc:
		return "balance (highest first)"
	default:
		return "balance (lowest first)"
	}
}

// SortRows returns a sorted copy of rows. Ties always fall back to item name.
func SortRows(rows []item.StockRow, mode SortMode) []item.StockRow {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b item.StockRow) int {
		switch mode {
		case SortByName:
			return cmp.Compare(a.ItemName, b.ItemName)
		case SortByBalanceDesc:
			if c := cmp.Compare(b.BalanceQty, a.BalanceQty); c != 0 {
				return c
			}
		default:
			if c := cmp.Compare(a.BalanceQty, b.BalanceQty); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.ItemName, b.ItemName)
	})
	return out
}

type column struct {
	title string
	width int
	right bool
}

var columns = []column{
	{title: "NO", width: 4, right: true},
	{title: "ITEM NAME", width: 28},
	{title: "STOCK QTY", width: 10, right: true},
	{title: "ISSUE QTY", width: 10, right: true},
	{title: "BALANCE QTY", width: 12, right: true},
	{title: "STATUS", width: barWidth + 10},
}

const cellGap = "  "

// Renderer draws the dashboard pieces. It holds one progress bar per status.
type Renderer struct {
	styles Styles
	bars   map[item.Status]progress.Model
}

func NewRenderer() *Renderer {
	bars := make(map[item.Status]progress.Model, len(treatments))
	for status, t := range treatments {
		bars[status] = newBar(t)
	}
	return &Renderer{styles: DefaultStyles(), bars: bars}
}

func fit(s string, width int, right bool) string {
	s = runewidth.Truncate(s, width, "…")
	if right {
		return runewidth.FillLeft(s, width)
	}
	return runewidth.FillRight(s, width)
}

func (r *Renderer) Header() string {
	title := r.styles.Title.Render("Stock Management Dashboard")
	subtitle := r.styles.Subtitle.Render("Real-time inventory tracking and monitoring")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

func (r *Renderer) Loading() string {
	return r.styles.Loading.Render("Loading Stock Data...")
}

// StatusCell draws the fill bar for the row followed by its status label.
func (r *Renderer) StatusCell(row item.StockRow) string {
	status := row.Status()
	bar := r.bars[status]
	label := lipgloss.NewStyle().
		Bold(true).
		Foreground(TreatmentFor(status).TextColor).
		Background(lipgloss.Color(TreatmentFor(status).GradientTo)).
		Render(" " + string(status) + " ")
	return bar.ViewAs(row.FillPercent()/100) + " " + label
}

// Table renders rows in the given order, numbering them by display position.
func (r *Renderer) Table(rows []item.StockRow) string {
	var b strings.Builder

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = r.styles.Header.Render(fit(c.title, c.width, c.right))
	}
	b.WriteString(strings.Join(headers, cellGap))
	b.WriteString("\n")
	total := 0
	for _, c := range columns {
		total += c.width
	}
	b.WriteString(strings.Repeat("─", total+len(cellGap)*(len(columns)-1)))
	b.WriteString("\n")

	for idx, row := range rows {
		nameStyle := r.styles.Cell
		if idx%2 == 1 {
			nameStyle = r.styles.AltCell
		}
		cells := []string{
			r.styles.AltCell.Render(fit(strconv.Itoa(idx+1), columns[0].width, columns[0].right)),
			nameStyle.Render(fit(row.ItemName, columns[1].width, columns[1].right)),
			r.styles.Stock.Render(fit(strconv.FormatInt(row.StockQty, 10), columns[2].width, columns[2].right)),
			r.styles.Issue.Render(fit(strconv.FormatInt(row.IssueQty, 10), columns[3].width, columns[3].right)),
			r.styles.Balance.Render(fit(strconv.FormatInt(row.BalanceQty, 10), columns[4].width, columns[4].right)),
			r.StatusCell(row),
		}
		b.WriteString(strings.Join(cells, cellGap))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) Footer(total int, interval time.Duration, updatedAt time.Time) string {
	return r.styles.Footer.Render(fmt.Sprintf(
		"Total Items: %d | Auto-refresh every %s | Last updated: %s",
		total, formatInterval(interval), updatedAt.Format("15:04:05"),
	))
}

func formatInterval(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%d seconds", int(d/time.Second))
	}
	return d.String()
}

// Snapshot renders a complete non-interactive view.
func (r *Renderer) Snapshot(rows []item.StockRow, interval time.Duration, updatedAt time.Time) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		r.Header(),
		"",
		r.Table(rows),
		r.Footer(len(rows), interval, updatedAt),
	)
}
