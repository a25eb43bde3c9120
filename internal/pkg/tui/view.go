package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tegorov/flipt/internal/pkg/analytics"
	"github.com/tegorov/flipt/internal/pkg/tui/components"
	"github.com/tegorov/flipt/internal/pkg/tui/components/dashboard"
	"github.com/tegorov/flipt/internal/pkg/tui/responsive"
)

// View renders the model
func (m Model) View() string {
	if m.uiState.Quitting {
		return ""
	}

	if m.uiState.Help.IsVisible() {
		return lipgloss.JoinVertical(lipgloss.Left, m.uiState.Help.View(), m.renderFooter())
	}

	if picker := m.uiState.ActivePicker(); picker != nil {
		return picker.View()
	}

	sections := []string{
		m.renderHeader(),
		m.renderRange(),
		lipgloss.NewStyle().Padding(0, 1).Render(m.uiState.Graph.View()),
	}
	if toast := m.uiState.Toast.View(); toast != "" {
		sections = append(sections, toast)
	}
	if console := m.uiState.Console.View(); console != "" {
		sections = append(sections, console)
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	theme := m.uiState.Theme

	titleStyle := lipgloss.NewStyle().
		Background(theme.HeaderBg).
		Foreground(theme.HeaderFg).
		Bold(true).
		Padding(0, 1)

	labelStyle := lipgloss.NewStyle().Foreground(theme.StatusBarFg)
	valueStyle := lipgloss.NewStyle().Foreground(theme.Foreground).Bold(true)

	field := func(label, value string) string {
		if value == "" {
			value = components.NoneLabel
		}
		return labelStyle.Render(label+": ") + valueStyle.Render(value)
	}

	flag := m.selection.CurrentFlag()
	title := "Flag Analytics"
	names := [3]string{"namespace", "flag", "duration"}
	if responsive.For(m.uiState.Width).CompactLabels {
		title = "Analytics"
		names = [3]string{"ns", "flag", "dur"}
	}

	parts := []string{
		titleStyle.Render(title),
		field(names[0], m.selection.CurrentNamespace()),
		field(names[1], flag.Label()),
		field(names[2], m.uiState.DurationPicker.Label()),
		labelStyle.Render(m.orch.State().String()),
	}
	return strings.Join(parts, "  ") + "\n"
}

func (m Model) renderRange() string {
	theme := m.uiState.Theme
	style := lipgloss.NewStyle().Foreground(theme.StatusBarFg).Padding(0, 1)

	q := m.orch.Current().Query
	line := fmt.Sprintf("%s → %s", q.From, q.To)
	if q.From == "" {
		line = "range not resolved yet"
	}
	if m.orch.Selected() == nil {
		line += fmt.Sprintf("  (default %d minutes)", analytics.DefaultWindowMinutes)
	}
	if !m.lastUpdated.IsZero() {
		line += "  updated " + m.lastUpdated.Format("15:04:05")
	}
	if m.refreshInterval > 0 {
		if m.refreshPaused {
			line += "  auto-refresh paused"
		} else {
			line += fmt.Sprintf("  auto-refresh %s", m.refreshInterval)
		}
	}
	if !responsive.For(m.uiState.Width).StatBoxes {
		return style.Render(line) + "\n"
	}
	return style.Render(line) + "\n" + style.Render(dashboard.StatBoxRow(m.statBoxes(), 2)) + "\n"
}

// statBoxes summarises the displayed series
func (m Model) statBoxes() []*dashboard.StatBox {
	theme := m.uiState.Theme
	series := m.orch.Series()

	window := fmt.Sprintf("%d minutes", analytics.DefaultWindowMinutes)
	if sel := m.orch.Selected(); sel != nil {
		window = sel.DisplayValue
	}

	return []*dashboard.StatBox{
		dashboard.NewStatBox(formatCount(series.Total()), "evaluations", theme),
		dashboard.NewStatBox(formatCount(series.Peak()), "peak", theme),
		dashboard.NewStatBox(strconv.Itoa(series.Len()), "points", theme),
		dashboard.NewStatBox(window, "window", theme),
	}
}

// formatCount renders a count with thousands separators
func formatCount(v float64) string {
	digits := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, frac, _ := strings.Cut(digits, ".")
	if len(intPart) <= 3 {
		return digits
	}

	var sb strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		sb.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(intPart[i : i+3])
	}
	if frac != "" {
		sb.WriteString("." + frac)
	}
	return sb.String()
}

func (m Model) renderFooter() string {
	theme := m.uiState.Theme

	var keys []string
	switch {
	case m.uiState.Help.IsVisible():
		keys = []string{"1 keys", "2 commands", "↑/↓ scroll", "esc close"}
	case responsive.For(m.uiState.Width).CompactLabels:
		keys = []string{"d", "n", "f", "r", "? help", "q quit"}
	default:
		keys = []string{"d duration", "x clear", "n namespace", "f flag", "r refresh"}
		if m.refreshInterval > 0 {
			keys = append(keys, "p pause")
		}
		keys = append(keys, "ctrl+s submit", "t theme", "? help")
		if m.uiState.Console.Available() {
			keys = append(keys, "` log")
		}
		keys = append(keys, "q quit")
	}

	style := lipgloss.NewStyle().
		Background(theme.StatusBarBg).
		Foreground(theme.StatusBarFg).
		Padding(0, 1)
	if m.uiState.Width > 0 {
		style = style.Width(m.uiState.Width)
	}
	return style.Render(strings.Join(keys, "  "))
}
