package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/giovaniif/stock-dashboard/domain/item"
)

// RowsMsg carries a successful fetch from the poller into the program.
type RowsMsg struct {
	Rows      []item.StockRow
	UpdatedAt time.Time
}

type Model struct {
	renderer  *Renderer
	interval  time.Duration
	rows      []item.StockRow
	updatedAt time.Time
	loaded    bool
	sortMode  SortMode
	width     int
}

func NewModel(interval time.Duration) Model {
	return Model{
		renderer: NewRenderer(),
		interval: interval,
		sortMode: SortByBalance,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s":
			m.sortMode = m.sortMode.Next()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case RowsMsg:
		m.rows = msg.Rows
		m.updatedAt = msg.UpdatedAt
		m.loaded = true
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		return m.renderer.Loading()
	}
	help := m.renderer.styles.Help.Render("sorted by " + m.sortMode.String() + " • s: change sort • q: quit")
	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderer.Snapshot(SortRows(m.rows, m.sortMode), m.interval, m.updatedAt),
		help,
	)
	if m.width > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.width).Render(view)
	}
	return view + "\n"
}

func (m Model) Rows() []item.StockRow {
	return m.rows
}

func (m Model) SortMode() SortMode {
	return m.sortMode
}
