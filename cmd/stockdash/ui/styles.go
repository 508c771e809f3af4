// Package ui renders the stock status dashboard in the terminal.
package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/giovaniif/stock-dashboard/domain/item"
)

const barWidth = 18

// Treatment is the fixed display treatment of a stock status.
type Treatment struct {
	GradientFrom string
	GradientTo   string
	TextColor    lipgloss.Color
}

var treatments = map[item.Status]Treatment{
	item.StatusCritical: {GradientFrom: "#ff6b6b", GradientTo: "#ee5a24", TextColor: lipgloss.Color("#ffffff")},
	item.StatusLow:      {GradientFrom: "#feca57", GradientTo: "#ff9ff3", TextColor: lipgloss.Color("#333333")},
	item.StatusGood:     {GradientFrom: "#48dbfb", GradientTo: "#0abde3", TextColor: lipgloss.Color("#ffffff")},
}

func TreatmentFor(status item.Status) Treatment {
	return treatments[status]
}

type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	AltCell  lipgloss.Style
	Stock    lipgloss.Style
	Issue    lipgloss.Style
	Balance  lipgloss.Style
	Footer   lipgloss.Style
	Help     lipgloss.Style
	Loading  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#2c3e50")).Padding(0, 2),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#bdc3c7")),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2c3e50")),
		Cell:     lipgloss.NewStyle().Foreground(lipgloss.Color("#2c3e50")),
		AltCell:  lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		Stock:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#27ae60")),
		Issue:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e74c3c")),
		Balance:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3498db")),
		Footer:   lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		Help:     lipgloss.NewStyle().Faint(true),
		Loading:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#667eea")).Padding(1, 2),
	}
}

func newBar(t Treatment) progress.Model {
	return progress.New(
		progress.WithGradient(t.GradientFrom, t.GradientTo),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
}
