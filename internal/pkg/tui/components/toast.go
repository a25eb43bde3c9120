package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tegorov/flipt/internal/pkg/constants"
	"github.com/tegorov/flipt/internal/pkg/tui/themes"
)

// ToastType defines the type/severity of a toast notification
type ToastType int

const (
	ToastSuccess ToastType = iota
	ToastError
	ToastInfo
	ToastWarning
)

// Toast duration constants
const (
	ToastDurationShort  = 2 * time.Second
	ToastDurationNormal = 3 * time.Second
	ToastDurationLong   = 5 * time.Second
)

type toastQueueItem struct {
	message         string
	toastType       ToastType
	duration        time.Duration
	supersessionKey string
}

// Toast is a temporary notification rendered above the footer
type Toast struct {
	active     bool
	message    string
	toastType  ToastType
	startTime  time.Time
	duration   time.Duration
	currentKey string
	theme      themes.Theme
	width      int
	queue      []toastQueueItem
}

// ToastTickMsg is sent periodically to check if the toast should be dismissed
type ToastTickMsg struct {
	Time time.Time
}

// NewToast creates a new Toast component
func NewToast() Toast {
	return Toast{
		duration: ToastDurationShort,
		theme:    themes.Solarized(),
	}
}

// Show displays a toast, queueing it behind the active one
func (t *Toast) Show(message string, toastType ToastType, duration time.Duration) tea.Cmd {
	return t.ShowWithKey(message, toastType, duration, "")
}

// ShowWithKey displays a toast that supersedes any active or queued toast
// carrying the same non-empty key.
func (t *Toast) ShowWithKey(message string, toastType ToastType, duration time.Duration, key string) tea.Cmd {
	item := toastQueueItem{message: message, toastType: toastType, duration: duration, supersessionKey: key}

	if key != "" {
		kept := t.queue[:0]
		for _, q := range t.queue {
			if q.supersessionKey != key {
				kept = append(kept, q)
			}
		}
		t.queue = kept

		if t.active && t.currentKey == key {
			t.activate(item)
			return nil // the running tick picks up the new start time
		}
	}

	if t.active {
		t.queue = append(t.queue, item)
		return nil
	}

	t.activate(item)
	return t.tickCmd()
}

func (t *Toast) activate(item toastQueueItem) {
	t.active = true
	t.message = item.message
	t.toastType = item.toastType
	t.duration = item.duration
	t.currentKey = item.supersessionKey
	t.startTime = time.Now()
}

// Hide immediately dismisses the toast
func (t *Toast) Hide() {
	t.active = false
	t.currentKey = ""
}

// IsActive returns whether the toast is currently visible
func (t *Toast) IsActive() bool {
	return t.active
}

// Message returns the visible message
func (t *Toast) Message() string {
	return t.message
}

// Type returns the visible toast type
func (t *Toast) Type() ToastType {
	return t.toastType
}

// SetTheme updates the toast's theme
func (t *Toast) SetTheme(theme themes.Theme) {
	t.theme = theme
}

// SetWidth updates the width the toast is centered in
func (t *Toast) SetWidth(width int) {
	t.width = width
}

// Update handles tick messages for auto-dismissal
func (t *Toast) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(ToastTickMsg)
	if !ok || !t.active {
		return nil
	}

	if tick.Time.Sub(t.startTime) < t.duration {
		return t.tickCmd()
	}

	t.Hide()
	if len(t.queue) > 0 {
		next := t.queue[0]
		t.queue = t.queue[1:]
		return t.ShowWithKey(next.message, next.toastType, next.duration, next.supersessionKey)
	}
	return nil
}

func (t *Toast) tickCmd() tea.Cmd {
	return tea.Tick(constants.TUITickInterval, func(now time.Time) tea.Msg {
		return ToastTickMsg{Time: now}
	})
}

func (t *Toast) icon() string {
	switch t.toastType {
	case ToastSuccess:
		return "✓"
	case ToastError:
		return "✗"
	case ToastWarning:
		return "‼"
	default:
		return "ⓘ "
	}
}

// View renders the toast notification
func (t *Toast) View() string {
	if !t.active {
		return ""
	}

	var bg lipgloss.Color
	switch t.toastType {
	case ToastSuccess:
		bg = t.theme.SuccessColor
	case ToastError:
		bg = t.theme.ErrorColor
	case ToastWarning:
		bg = t.theme.WarningColor
	default:
		bg = t.theme.InfoColor
	}

	styled := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fdf6e3")).
		Background(bg).
		Padding(0, 2).
		Render(" " + t.icon() + " " + t.message + " ")

	if t.width <= 0 {
		return styled
	}
	return lipgloss.PlaceHorizontal(t.width, lipgloss.Center, styled)
}
