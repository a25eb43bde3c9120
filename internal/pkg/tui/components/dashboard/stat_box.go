// Package dashboard renders compact figure boxes for the analytics view.
package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tegorov/flipt/internal/pkg/tui/themes"
)

// StatBox is a bordered value with a label below it, e.g. "1,204" over
// "evaluations".
type StatBox struct {
	Value string
	Label string
	Width int // 0 sizes the box to its content
	theme themes.Theme
}

// StatBoxOption is a functional option for configuring a StatBox.
type StatBoxOption func(*StatBox)

// WithStatBoxWidth sets the stat box width.
func WithStatBoxWidth(width int) StatBoxOption {
	return func(s *StatBox) {
		s.Width = width
	}
}

// NewStatBox creates a new StatBox with the given value and label.
func NewStatBox(value, label string, theme themes.Theme, opts ...StatBoxOption) *StatBox {
	s := &StatBox{
		Value: value,
		Label: label,
		theme: theme,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// width returns the outer width including border and padding
func (s *StatBox) width() int {
	if s.Width > 0 {
		return s.Width
	}
	return max(lipgloss.Width(s.Value), lipgloss.Width(s.Label)) + 4
}

// Render returns the styled stat box.
//
//	╭─────────────╮
//	│    1,204    │
//	│ evaluations │
//	╰─────────────╯
func (s *StatBox) Render() string {
	inner := s.width() - 4

	valueStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(s.theme.Foreground).
		Align(lipgloss.Center).
		Width(inner)

	labelStyle := lipgloss.NewStyle().
		Foreground(s.theme.StatusBarFg).
		Align(lipgloss.Center).
		Width(inner)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.theme.BorderColor).
		Padding(0, 1)

	return boxStyle.Render(valueStyle.Render(s.Value) + "\n" + labelStyle.Render(s.Label))
}

// RenderCompact returns "value label" on one line.
func (s *StatBox) RenderCompact() string {
	valueStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(s.theme.Foreground)

	labelStyle := lipgloss.NewStyle().
		Foreground(s.theme.StatusBarFg)

	return valueStyle.Render(s.Value) + " " + labelStyle.Render(s.Label)
}

// StatBoxRow renders boxes side by side separated by gap columns.
func StatBoxRow(boxes []*StatBox, gap int) string {
	if len(boxes) == 0 {
		return ""
	}

	rendered := make([]string, len(boxes))
	for i, box := range boxes {
		rendered[i] = box.Render()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, addGaps(rendered, gap)...)
}

// StatBoxLine renders boxes compactly on one line.
func StatBoxLine(boxes []*StatBox, gap int) string {
	rendered := make([]string, len(boxes))
	for i, box := range boxes {
		rendered[i] = box.RenderCompact()
	}
	return strings.Join(rendered, strings.Repeat(" ", max(gap, 1)))
}

// addGaps inserts gap spacing between rendered strings.
func addGaps(items []string, gap int) []string {
	if len(items) <= 1 || gap <= 0 {
		return items
	}

	gapStr := strings.Repeat(" ", gap)
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		result = append(result, item)
		if i < len(items)-1 {
			result = append(result, gapStr)
		}
	}
	return result
}
