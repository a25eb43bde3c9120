package store

import (
	"github.com/tegorov/flipt/internal/pkg/logger"
	"github.com/tegorov/flipt/internal/pkg/tui/components"
	"github.com/tegorov/flipt/internal/pkg/tui/responsive"
	"github.com/tegorov/flipt/internal/pkg/tui/themes"
)

// Combobox identifiers
const (
	DurationPicker  = "duration"
	NamespacePicker = "namespace"
	FlagPicker      = "flag"
)

// UIState manages UI components and layout state
type UIState struct {
	// UI Components
	DurationPicker  components.Combobox
	NamespacePicker components.Combobox
	FlagPicker      components.Combobox
	Graph           components.BarGraph
	Toast           components.Toast
	Console         *components.DevConsole
	Help            components.HelpView

	// UI State
	Width    int
	Height   int
	Quitting bool
	Theme    themes.Theme
}

// NewUIState creates the UI state with themed components. Picker items are
// filled in by the model.
func NewUIState(theme themes.Theme) *UIState {
	s := &UIState{
		DurationPicker:  components.NewCombobox(DurationPicker, "Duration", nil),
		NamespacePicker: components.NewCombobox(NamespacePicker, "Namespace", nil),
		FlagPicker:      components.NewCombobox(FlagPicker, "Flag", nil),
		Graph:           components.NewBarGraph(),
		Toast:           components.NewToast(),
		Console:         components.NewDevConsole(logger.GetConsoleBuffer()),
		Help:            components.NewHelpView(),
	}
	s.SetTheme(theme)
	return s
}

// SetTheme applies theme to every component
func (s *UIState) SetTheme(theme themes.Theme) {
	s.Theme = theme
	s.DurationPicker.SetTheme(theme)
	s.NamespacePicker.SetTheme(theme)
	s.FlagPicker.SetTheme(theme)
	s.Graph.SetTheme(theme)
	s.Toast.SetTheme(theme)
	s.Console.SetTheme(theme)
	s.Help.SetTheme(theme)
}

// ActivePicker returns the open combobox, if any
func (s *UIState) ActivePicker() *components.Combobox {
	for _, c := range []*components.Combobox{&s.DurationPicker, &s.NamespacePicker, &s.FlagPicker} {
		if c.IsActive() {
			return c
		}
	}
	return nil
}

// SetSize lays out components for a terminal of width x height
func (s *UIState) SetSize(width, height int) {
	s.Width = width
	s.Height = height

	s.DurationPicker.SetSize(width, height)
	s.NamespacePicker.SetSize(width, height)
	s.FlagPicker.SetSize(width, height)
	s.Toast.SetWidth(width)
	s.Help.SetSize(width, height-1)

	consoleHeight := 0
	if s.Console.IsVisible() {
		consoleHeight = height / 3
		s.Console.SetSize(width, consoleHeight)
	}

	graphHeight := height - responsive.For(width).ChromeRows - consoleHeight
	if graphHeight < 4 {
		graphHeight = 4
	}
	s.Graph.SetSize(width-2, graphHeight)
}
