package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/tegorov/flipt/internal/pkg/tui/help"
	"github.com/tegorov/flipt/internal/pkg/tui/themes"
)

// HelpSection represents a help content section
type HelpSection int

const (
	SectionKeybindings HelpSection = iota
	SectionCommands
)

var helpSections = []struct {
	key      string
	label    string
	filename string
}{
	{"1", "Keybindings", "keybindings.md"},
	{"2", "Commands", "commands.md"},
}

// HelpView displays embedded markdown help documentation
type HelpView struct {
	viewport      viewport.Model
	width         int
	height        int
	theme         themes.Theme
	visible       bool
	activeSection HelpSection
	contentLoaded bool
}

// HelpContentLoadedMsg is sent when help content finishes rendering
type HelpContentLoadedMsg struct {
	Section         HelpSection
	RenderedContent string
}

// NewHelpView creates a new help view
func NewHelpView() HelpView {
	return HelpView{
		viewport:      viewport.New(80, 19),
		width:         80,
		height:        20,
		theme:         themes.Solarized(),
		activeSection: SectionKeybindings,
	}
}

// SetTheme updates the theme. Content is re-rendered on next show.
func (h *HelpView) SetTheme(theme themes.Theme) {
	h.theme = theme
	h.contentLoaded = false
}

// SetSize sets the display size
func (h *HelpView) SetSize(width, height int) {
	if width != h.width {
		h.contentLoaded = false
	}
	h.width = width
	h.height = height
	h.viewport.Width = width
	h.viewport.Height = max(height-1, 1)
}

// Show makes the help visible and returns a command loading its content
func (h *HelpView) Show() tea.Cmd {
	h.visible = true
	if h.contentLoaded {
		return nil
	}
	return h.LoadContentAsync()
}

// Hide closes the help view
func (h *HelpView) Hide() {
	h.visible = false
}

// IsVisible reports whether the help view is open
func (h *HelpView) IsVisible() bool {
	return h.visible
}

// LoadContentAsync returns a command that renders the active section
func (h *HelpView) LoadContentAsync() tea.Cmd {
	section := h.activeSection
	width := h.width
	style := themes.ConfigName(h.theme)
	return func() tea.Msg {
		return HelpContentLoadedMsg{
			Section:         section,
			RenderedContent: renderHelpSection(section, width, style),
		}
	}
}

// renderHelpSection renders a section with glamour, falling back to the raw
// markdown if rendering fails
func renderHelpSection(section HelpSection, width int, style string) string {
	content, err := help.Files.ReadFile(helpSections[section].filename)
	if err != nil {
		return "Error loading help: " + err.Error()
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return string(content)
	}

	rendered, err := renderer.Render(string(content))
	if err != nil {
		return string(content)
	}
	return rendered
}

// HandleContentLoaded applies rendered content for the active section
func (h *HelpView) HandleContentLoaded(msg HelpContentLoadedMsg) {
	if msg.Section != h.activeSection {
		return
	}
	h.viewport.SetContent(msg.RenderedContent)
	h.viewport.GotoTop()
	h.contentLoaded = true
}

// ActiveSection returns the current section
func (h *HelpView) ActiveSection() HelpSection {
	return h.activeSection
}

// SetSection changes the active section and returns a command to load content
func (h *HelpView) SetSection(section HelpSection) tea.Cmd {
	if section == h.activeSection || int(section) >= len(helpSections) {
		return nil
	}
	h.activeSection = section
	h.contentLoaded = false
	return h.LoadContentAsync()
}

// Update handles keys while the help is open. It reports whether the view
// closed.
func (h *HelpView) Update(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "esc", "?", "q":
		h.Hide()
		return nil, true
	case "1":
		return h.SetSection(SectionKeybindings), false
	case "2":
		return h.SetSection(SectionCommands), false
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return cmd, false
}

// View renders the help view
func (h *HelpView) View() string {
	if !h.visible {
		return ""
	}

	var result strings.Builder
	result.WriteString(h.renderSectionTabs())
	result.WriteString("\n")

	if !h.contentLoaded {
		loadingStyle := lipgloss.NewStyle().
			Foreground(h.theme.BorderColor).
			Italic(true).
			Width(h.width).
			Height(h.viewport.Height)
		result.WriteString(loadingStyle.Render("Loading help content..."))
	} else {
		result.WriteString(h.viewport.View())
	}

	return result.String()
}

func (h *HelpView) renderSectionTabs() string {
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.theme.SelectionFg).
		Background(h.theme.SelectionBg).
		Padding(0, 2)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(h.theme.StatusBarFg).
		Padding(0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.theme.WarningColor).
		Bold(true)

	tabs := make([]string, 0, len(helpSections))
	for i, sec := range helpSections {
		style := inactiveStyle
		if HelpSection(i) == h.activeSection {
			style = activeStyle
		}
		tabs = append(tabs, keyStyle.Render(sec.key)+" "+style.Render(sec.label))
	}

	return strings.Join(tabs, "  ")
}
