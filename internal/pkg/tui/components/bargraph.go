package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
	"github.com/tegorov/flipt/internal/pkg/tui/themes"
)

// EmptyGraphMessage is rendered when there is nothing to plot
const EmptyGraphMessage = "No evaluations in this range"

// BarGraph plots evaluation counts as columns over time
type BarGraph struct {
	timestamps []string
	values     []float64
	flagKey    string
	width      int
	height     int
	theme      themes.Theme
}

// NewBarGraph creates an empty graph
func NewBarGraph() BarGraph {
	return BarGraph{
		width:  60,
		height: 8,
		theme:  themes.Solarized(),
	}
}

// SetData replaces the plotted series. Timestamps and values are index-aligned.
func (g *BarGraph) SetData(timestamps []string, values []float64, flagKey string) {
	n := len(timestamps)
	if len(values) < n {
		n = len(values)
	}
	g.timestamps = append([]string(nil), timestamps[:n]...)
	g.values = append([]float64(nil), values[:n]...)
	g.flagKey = flagKey
}

// Len returns the number of plotted points
func (g *BarGraph) Len() int {
	return len(g.values)
}

// SetSize sets the drawing area including the axis gutter
func (g *BarGraph) SetSize(width, height int) {
	g.width = width
	g.height = height
}

// SetTheme updates the graph colors
func (g *BarGraph) SetTheme(theme themes.Theme) {
	g.theme = theme
}

func (g *BarGraph) peak() float64 {
	var peak float64
	for _, v := range g.values {
		if v > peak {
			peak = v
		}
	}
	return peak
}

func (g *BarGraph) total() float64 {
	var total float64
	for _, v := range g.values {
		total += v
	}
	return total
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// View renders title, chart with a y-axis gutter and the x-axis range
func (g *BarGraph) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(g.theme.Foreground)
	mutedStyle := lipgloss.NewStyle().Foreground(g.theme.AxisColor)

	title := "Evaluations"
	if g.flagKey != "" {
		title += ": " + g.flagKey
	}

	if len(g.values) == 0 {
		return titleStyle.Render(title) + "\n\n" + mutedStyle.Italic(true).Render(EmptyGraphMessage)
	}

	peak := g.peak()
	peakLabel := formatCount(peak)
	gutter := len(peakLabel) + 1

	chartHeight := g.height - 3 // title, x-axis, summary
	if chartHeight < 1 {
		chartHeight = 1
	}
	chartWidth := g.width - gutter - 1
	if chartWidth < 1 {
		chartWidth = 1
	}

	// One column per sample; older samples scroll off when they do not fit.
	first := 0
	if len(g.values) > chartWidth {
		first = len(g.values) - chartWidth
	} else {
		chartWidth = len(g.values)
	}
	visible := g.values[first:]

	opts := []sparkline.Option{
		sparkline.WithStyle(lipgloss.NewStyle().Foreground(g.theme.BarColor)),
		sparkline.WithData(visible),
	}
	if peak > 0 {
		opts = append(opts, sparkline.WithMaxValue(peak))
	}
	sl := sparkline.New(chartWidth, chartHeight, opts...)
	sl.DrawColumnsOnly()

	axis := make([]string, chartHeight)
	for i := range axis {
		axis[i] = strings.Repeat(" ", gutter)
	}
	axis[chartHeight-1] = fmt.Sprintf("%*s ", gutter-1, "0")
	axis[0] = fmt.Sprintf("%*s ", gutter-1, peakLabel)

	chart := lipgloss.JoinHorizontal(lipgloss.Top,
		mutedStyle.Render(strings.Join(axis, "\n")),
		sl.View(),
	)

	xAxis := strings.Repeat(" ", gutter) + g.timestamps[first]
	if last := g.timestamps[len(g.timestamps)-1]; len(visible) > 1 {
		pad := gutter + chartWidth - lipgloss.Width(xAxis) - len(last)
		if pad < 1 {
			pad = 1
		}
		xAxis += strings.Repeat(" ", pad) + last
	}

	summary := fmt.Sprintf("%d points  total %s  peak %s", len(g.values), formatCount(g.total()), peakLabel)
	if first > 0 {
		summary += fmt.Sprintf("  (showing last %d)", len(visible))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		chart,
		mutedStyle.Render(xAxis),
		mutedStyle.Render(summary),
	)
}
