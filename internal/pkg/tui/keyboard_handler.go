package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tegorov/flipt/internal/pkg/logger"
	"github.com/tegorov/flipt/internal/pkg/tui/components"
	"github.com/tegorov/flipt/internal/pkg/tui/themes"
)

// handleKeyboard handles key presses while no picker is open
func (m Model) handleKeyboard(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Dev console keys
	if m.uiState.Console.IsVisible() {
		switch msg.String() {
		case "pgup":
			m.uiState.Console.ScrollUp(5)
			return m, nil
		case "pgdown":
			m.uiState.Console.ScrollDown(5)
			return m, nil
		case "c":
			m.uiState.Console.Clear()
			return m, nil
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.uiState.Quitting = true
		m.cancel()
		return m, tea.Quit

	case "d":
		return m, m.uiState.DurationPicker.Activate()

	case "n":
		return m, m.uiState.NamespacePicker.Activate()

	case "f":
		return m, m.uiState.FlagPicker.Activate()

	case "x":
		return m, m.uiState.DurationPicker.Clear()

	case "r":
		return m.refresh(m.orch.Refresh())

	case "p":
		if m.refreshInterval <= 0 {
			return m, nil
		}
		m.refreshPaused = !m.refreshPaused
		m.tickGen++
		if m.refreshPaused {
			return m, m.uiState.Toast.ShowWithKey("Auto-refresh paused", components.ToastInfo, components.ToastDurationShort, "auto-refresh")
		}
		return m, tea.Batch(
			m.uiState.Toast.ShowWithKey("Auto-refresh resumed", components.ToastInfo, components.ToastDurationShort, "auto-refresh"),
			m.refreshTickCmd(),
		)

	case "ctrl+s":
		return m.handleSubmit()

	case "t":
		theme := themes.Toggle(m.uiState.Theme)
		m.uiState.SetTheme(theme)
		if err := saveThemePreference(theme); err != nil {
			logger.Warn("Failed to save theme preference", "error", err)
		}
		return m, nil

	case "?":
		return m, m.uiState.Help.Show()

	case "`":
		m.uiState.Console.Toggle()
		m.uiState.SetSize(m.uiState.Width, m.uiState.Height)
		return m, nil
	}

	return m, nil
}
