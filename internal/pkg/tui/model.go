// Package tui is the interactive evaluation analytics view.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tegorov/flipt/internal/pkg/analytics"
	"github.com/tegorov/flipt/internal/pkg/targets"
	"github.com/tegorov/flipt/internal/pkg/tui/components"
	"github.com/tegorov/flipt/internal/pkg/tui/store"
	"github.com/tegorov/flipt/internal/pkg/tui/themes"
)

// FetchResultMsg carries a finished evaluation count query back to the UI loop
type FetchResultMsg struct {
	Result analytics.Result
}

// RefreshTickMsg triggers a periodic refresh. Gen ties the tick to the
// ticker chain that scheduled it.
type RefreshTickMsg struct {
	Gen int
}

// TargetsReloadedMsg carries a reloaded targets file. Err is set when the
// file changed but could not be loaded.
type TargetsReloadedMsg struct {
	Targets *targets.Targets
	Err     error
}

// Config wires the model to its collaborators
type Config struct {
	Orchestrator    *analytics.Orchestrator
	Selection       *store.Selection
	Targets         *targets.Targets
	Theme           themes.Theme
	RefreshInterval time.Duration // 0 disables periodic refresh
}

// Model is the bubbletea model for the analytics view
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	orch      *analytics.Orchestrator
	selection *store.Selection
	targets   *targets.Targets
	uiState   *store.UIState

	refreshInterval time.Duration
	refreshPaused   bool
	tickGen         int
	lastUpdated     time.Time
}

// NewModel creates the model. Queries run under ctx and are cancelled when
// the model quits.
func NewModel(ctx context.Context, cfg Config) Model {
	ctx, cancel := context.WithCancel(ctx)

	tg := cfg.Targets
	if tg == nil {
		tg = targets.Single(cfg.Selection.CurrentNamespace(), cfg.Selection.CurrentFlag().Key)
	}

	m := Model{
		ctx:             ctx,
		cancel:          cancel,
		orch:            cfg.Orchestrator,
		selection:       cfg.Selection,
		targets:         tg,
		uiState:         store.NewUIState(cfg.Theme),
		refreshInterval: cfg.RefreshInterval,
	}

	m.uiState.DurationPicker.SetItems(durationItems())
	if sel := m.orch.Selected(); sel != nil {
		m.uiState.DurationPicker.Select(sel.Key)
	}

	m.uiState.NamespacePicker.SetItems(namespaceItems(tg))
	m.uiState.NamespacePicker.Select(m.selection.CurrentNamespace())
	m.syncFlagPicker()
	m.syncGraph()

	return m
}

func durationItems() []components.ComboboxItem {
	durations := analytics.Durations()
	items := make([]components.ComboboxItem, 0, len(durations))
	for _, d := range durations {
		items = append(items, components.ComboboxItem{
			Key:    d.Key,
			Label:  d.DisplayValue,
			Filter: d.FilterValue,
		})
	}
	return items
}

func namespaceItems(tg *targets.Targets) []components.ComboboxItem {
	items := make([]components.ComboboxItem, 0, len(tg.Namespaces))
	for _, ns := range tg.Namespaces {
		label := ns.Key
		if ns.Name != "" {
			label = ns.Name
		}
		items = append(items, components.ComboboxItem{Key: ns.Key, Label: label, Filter: ns.Key + " " + ns.Name})
	}
	return items
}

func flagItems(ns targets.NamespaceConfig) []components.ComboboxItem {
	items := make([]components.ComboboxItem, 0, len(ns.Flags))
	for _, f := range ns.Flags {
		flag := analytics.Flag{Key: f.Key, Name: f.Name}
		items = append(items, components.ComboboxItem{Key: f.Key, Label: flag.Label(), Filter: f.Key + " " + f.Name})
	}
	return items
}

// syncFlagPicker lists the flags of the current namespace
func (m *Model) syncFlagPicker() {
	ns, _ := m.targets.Namespace(m.selection.CurrentNamespace())
	m.uiState.FlagPicker.SetItems(flagItems(ns))
	m.uiState.FlagPicker.Select(m.selection.CurrentFlag().Key)
}

// findFlag resolves a flag key in the current namespace, keeping its display name
func (m *Model) findFlag(key string) analytics.Flag {
	ns, _ := m.targets.Namespace(m.selection.CurrentNamespace())
	for _, f := range ns.Flags {
		if f.Key == key {
			return analytics.Flag{Key: f.Key, Name: f.Name}
		}
	}
	return analytics.Flag{Key: key}
}

// fetchCmd runs req off the UI loop
func (m Model) fetchCmd(req analytics.Request) tea.Cmd {
	ctx, orch := m.ctx, m.orch
	return func() tea.Msg {
		return FetchResultMsg{Result: orch.Fetch(ctx, req)}
	}
}

func (m Model) refreshTickCmd() tea.Cmd {
	if m.refreshInterval <= 0 || m.refreshPaused {
		return nil
	}
	gen := m.tickGen
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return RefreshTickMsg{Gen: gen}
	})
}

// Init issues the first query for the default selection
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(m.orch.Refresh()), m.refreshTickCmd())
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Open help and pickers take all user input
	if m.uiState.Help.IsVisible() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			cmd, _ := m.uiState.Help.Update(msg)
			return m, cmd
		}
	}
	if picker := m.uiState.ActivePicker(); picker != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, picker.Update(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyboard(msg)
	case FetchResultMsg:
		return m.handleFetchResult(msg)
	case components.ComboboxSelectedMsg:
		return m.handleComboboxSelected(msg)
	case RefreshTickMsg:
		return m.handleRefreshTick(msg)
	case components.ToastTickMsg:
		return m, m.uiState.Toast.Update(msg)
	case components.HelpContentLoadedMsg:
		m.uiState.Help.HandleContentLoaded(msg)
		return m, nil
	case TargetsReloadedMsg:
		return m.handleTargetsReloaded(msg)
	}

	// Cursor blink and similar input messages
	if picker := m.uiState.ActivePicker(); picker != nil {
		return m, picker.Update(msg)
	}
	return m, nil
}

// Stop cancels in-flight queries
func (m Model) Stop() {
	m.cancel()
}
