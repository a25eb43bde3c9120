package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tegorov/flipt/internal/pkg/logger"
	"github.com/tegorov/flipt/internal/pkg/tui/themes"
)

// DevConsole shows captured log records in a pane at the bottom of the screen
type DevConsole struct {
	visible bool
	width   int
	height  int
	offset  int // Entries scrolled back from the newest
	buffer  *logger.ConsoleBuffer
	theme   themes.Theme
}

// NewDevConsole creates a console reading from buffer. A nil buffer keeps
// the console permanently hidden.
func NewDevConsole(buffer *logger.ConsoleBuffer) *DevConsole {
	return &DevConsole{
		buffer: buffer,
		theme:  themes.Solarized(),
	}
}

// Available reports whether log capture is on
func (d *DevConsole) Available() bool {
	return d.buffer != nil
}

// SetTheme updates the component's theme
func (d *DevConsole) SetTheme(theme themes.Theme) {
	d.theme = theme
}

// SetSize sets the console dimensions
func (d *DevConsole) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Toggle shows/hides the console
func (d *DevConsole) Toggle() {
	if !d.Available() {
		return
	}
	d.visible = !d.visible
	d.offset = 0
}

// IsVisible returns whether the console is visible
func (d *DevConsole) IsVisible() bool {
	return d.visible
}

// ScrollUp moves towards older entries
func (d *DevConsole) ScrollUp(lines int) {
	d.offset += lines
	if d.buffer != nil && d.offset > d.buffer.Count()-1 {
		d.offset = max(d.buffer.Count()-1, 0)
	}
}

// ScrollDown moves towards newer entries
func (d *DevConsole) ScrollDown(lines int) {
	d.offset = max(d.offset-lines, 0)
}

// Clear empties the buffer
func (d *DevConsole) Clear() {
	if d.buffer != nil {
		d.buffer.Clear()
	}
	d.offset = 0
}

// View renders the console
func (d *DevConsole) View() string {
	if !d.visible || d.buffer == nil {
		return ""
	}

	rows := max(d.height-3, 1) // border and title
	cols := max(d.width-2, 20)

	entries := d.buffer.GetRecent(rows + d.offset)
	if d.offset < len(entries) {
		entries = entries[d.offset:]
	} else {
		entries = nil
	}
	if len(entries) > rows {
		entries = entries[:rows]
	}

	lines := make([]string, 0, rows)
	for i := len(entries) - 1; i >= 0; i-- {
		lines = append(lines, truncate(formatEntry(entries[i]), cols))
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}

	titleText := fmt.Sprintf(" Log (%d) ", d.buffer.Count())
	if d.offset > 0 {
		titleText += fmt.Sprintf("[+%d] ", d.offset)
	}
	titleText += "` close  PgUp/PgDn scroll  c clear"

	title := lipgloss.NewStyle().
		Background(d.theme.StatusBarBg).
		Foreground(d.theme.StatusBarFg).
		Bold(true).
		Width(cols).
		Render(titleText)

	body := lipgloss.NewStyle().
		Foreground(d.theme.Foreground).
		Width(cols).
		Render(strings.Join(lines, "\n"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(d.theme.BorderColor).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

// formatEntry renders "HH:MM:SS.mmm LVL message attrs"
func formatEntry(entry logger.LogEntry) string {
	line := entry.Time.Format("15:04:05.000") + " " + logger.FormatLevel(entry.Level) + " " + entry.Message
	if entry.Attrs != "" {
		line += " " + entry.Attrs
	}
	return line
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
