package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tegorov/flipt/internal/pkg/tui/themes"
)

// NoneLabel is shown when a combobox has no selection
const NoneLabel = "none"

// ComboboxItem is a selectable entry
type ComboboxItem struct {
	Key    string
	Label  string
	Filter string // Text matched by the filter input, defaults to Label
}

func (i ComboboxItem) filterText() string {
	if i.Filter != "" {
		return i.Filter
	}
	return i.Label
}

// ComboboxSelectedMsg is emitted when an item is picked or the selection cleared
type ComboboxSelectedMsg struct {
	ID      string
	Item    ComboboxItem
	Cleared bool
}

// Combobox is a filterable single-selection list shown as a modal
type Combobox struct {
	id       string
	title    string
	items    []ComboboxItem
	filtered []ComboboxItem
	cursor   int
	selected string
	active   bool
	input    textinput.Model
	theme    themes.Theme
	width    int
	height   int
}

// NewCombobox creates a combobox; id is echoed in ComboboxSelectedMsg
func NewCombobox(id, title string, items []ComboboxItem) Combobox {
	input := textinput.New()
	input.Placeholder = "type to filter"
	input.Prompt = "> "
	input.CharLimit = 64

	c := Combobox{
		id:    id,
		title: title,
		input: input,
		theme: themes.Solarized(),
	}
	c.SetItems(items)
	return c
}

// ID returns the combobox identifier
func (c *Combobox) ID() string {
	return c.id
}

// SetItems replaces the list. A selection that is no longer listed is dropped.
func (c *Combobox) SetItems(items []ComboboxItem) {
	c.items = append([]ComboboxItem(nil), items...)
	if _, ok := c.Selected(); !ok {
		c.selected = ""
	}
	c.applyFilter()
}

// Items returns the full item list
func (c *Combobox) Items() []ComboboxItem {
	return c.items
}

// Filtered returns the items matching the current filter
func (c *Combobox) Filtered() []ComboboxItem {
	return c.filtered
}

// Select marks key as selected without emitting a message.
// Returns false if no item has that key.
func (c *Combobox) Select(key string) bool {
	for _, item := range c.items {
		if item.Key == key {
			c.selected = key
			return true
		}
	}
	return false
}

// Selected returns the selected item
func (c *Combobox) Selected() (ComboboxItem, bool) {
	if c.selected == "" {
		return ComboboxItem{}, false
	}
	for _, item := range c.items {
		if item.Key == c.selected {
			return item, true
		}
	}
	return ComboboxItem{}, false
}

// Label returns the selected item's label, or NoneLabel
func (c *Combobox) Label() string {
	if item, ok := c.Selected(); ok {
		return item.Label
	}
	return NoneLabel
}

// Deselect drops the selection without emitting a message
func (c *Combobox) Deselect() {
	c.selected = ""
}

// Clear drops the selection and reports it
func (c *Combobox) Clear() tea.Cmd {
	c.selected = ""
	id := c.id
	return func() tea.Msg {
		return ComboboxSelectedMsg{ID: id, Cleared: true}
	}
}

// SetTheme sets the color theme
func (c *Combobox) SetTheme(theme themes.Theme) {
	c.theme = theme
}

// SetSize sets the dimensions the modal is centered in
func (c *Combobox) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Activate opens the list with an empty filter and the cursor on the selection
func (c *Combobox) Activate() tea.Cmd {
	c.active = true
	c.input.SetValue("")
	c.applyFilter()
	for i, item := range c.filtered {
		if item.Key == c.selected {
			c.cursor = i
			break
		}
	}
	return c.input.Focus()
}

// Deactivate closes the list
func (c *Combobox) Deactivate() {
	c.active = false
	c.input.Blur()
}

// IsActive returns whether the list is open
func (c *Combobox) IsActive() bool {
	return c.active
}

func (c *Combobox) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(c.input.Value()))

	filtered := make([]ComboboxItem, 0, len(c.items))
	for _, item := range c.items {
		if query == "" || strings.Contains(strings.ToLower(item.filterText()), query) {
			filtered = append(filtered, item)
		}
	}
	c.filtered = filtered

	if c.cursor >= len(c.filtered) {
		c.cursor = len(c.filtered) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// Update handles key events while the list is open
func (c *Combobox) Update(msg tea.Msg) tea.Cmd {
	if !c.active {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return cmd
	}

	switch keyMsg.String() {
	case "up", "ctrl+p":
		if c.cursor > 0 {
			c.cursor--
		}
		return nil
	case "down", "ctrl+n":
		if c.cursor < len(c.filtered)-1 {
			c.cursor++
		}
		return nil
	case "enter":
		if len(c.filtered) == 0 {
			return nil
		}
		item := c.filtered[c.cursor]
		c.selected = item.Key
		c.Deactivate()
		id := c.id
		return func() tea.Msg {
			return ComboboxSelectedMsg{ID: id, Item: item}
		}
	case "ctrl+x":
		c.Deactivate()
		return c.Clear()
	case "esc":
		c.Deactivate()
		return nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.applyFilter()
	return cmd
}

// View renders the open list as a modal
func (c *Combobox) View() string {
	if !c.active {
		return ""
	}

	itemStyle := lipgloss.NewStyle().
		Foreground(c.theme.Foreground).
		Padding(0, 1)

	cursorStyle := lipgloss.NewStyle().
		Foreground(c.theme.SelectionFg).
		Background(c.theme.SelectionBg).
		Bold(true).
		Padding(0, 1)

	mutedStyle := lipgloss.NewStyle().
		Foreground(c.theme.StatusBarFg).
		Italic(true)

	var content strings.Builder
	content.WriteString(c.input.View())
	content.WriteString("\n\n")

	if len(c.filtered) == 0 {
		content.WriteString(mutedStyle.Render("  no matches"))
	}
	for i, item := range c.filtered {
		marker := "  "
		if item.Key == c.selected {
			marker = "● "
		}
		if i == c.cursor {
			content.WriteString(cursorStyle.Render(marker + item.Label))
		} else {
			content.WriteString(itemStyle.Render(marker + item.Label))
		}
		content.WriteString("\n")
	}

	return RenderModal(ModalRenderOptions{
		Title:      c.title,
		Content:    content.String(),
		Footer:     "↑/↓: Navigate  Enter: Select  Ctrl+X: Clear  Esc: Cancel",
		Width:      c.width,
		Height:     c.height,
		Theme:      c.theme,
		ModalWidth: 50,
	})
}
