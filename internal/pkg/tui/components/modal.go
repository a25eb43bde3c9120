package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tegorov/flipt/internal/pkg/tui/themes"
)

// ModalRenderOptions configures modal rendering
type ModalRenderOptions struct {
	Title      string       // Modal title (optional)
	Content    string       // Modal content (required)
	Footer     string       // Footer text (optional, e.g. keybindings)
	Width      int          // Terminal width
	Height     int          // Terminal height
	Theme      themes.Theme // Color theme
	ModalWidth int          // Specific modal width (0 = auto-calculate)
}

// modalWidth clamps the requested width to the terminal
func modalWidth(opts ModalRenderOptions) int {
	w := opts.ModalWidth
	if w == 0 {
		w = opts.Width * 6 / 10
		if w > 70 {
			w = 70
		}
		if w < 44 {
			w = 44
		}
	}
	if opts.Width > 0 && w > opts.Width-4 {
		w = opts.Width - 4
	}
	if w < 30 {
		w = 30
	}
	return w
}

// RenderModal wraps selector content in the shared modal chrome and centers
// it on screen.
func RenderModal(opts ModalRenderOptions) string {
	width := modalWidth(opts)

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(opts.Theme.InfoColor).
		Padding(1, 2).
		Width(width)

	var title string
	if opts.Title != "" {
		title = lipgloss.NewStyle().
			Foreground(opts.Theme.HeaderBg).
			Bold(true).
			Padding(0, 1).
			Width(width-4).
			Render(opts.Title) + "\n\n"
	}

	content := lipgloss.NewStyle().
		Foreground(opts.Theme.Foreground).
		Width(width - 4).
		Render(opts.Content)

	var footer string
	if opts.Footer != "" {
		footer = "\n\n" + lipgloss.NewStyle().
			Foreground(opts.Theme.StatusBarFg).
			Italic(true).
			Width(width-4).
			Render(opts.Footer)
	}

	modal := modalStyle.Render(title + content + footer)
	if opts.Width <= 0 || opts.Height <= 0 {
		return modal
	}

	return lipgloss.Place(opts.Width, opts.Height, lipgloss.Center, lipgloss.Center, modal)
}
