package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tegorov/flipt/internal/pkg/analytics"
	"github.com/tegorov/flipt/internal/pkg/logger"
	"github.com/tegorov/flipt/internal/pkg/tui/components"
	"github.com/tegorov/flipt/internal/pkg/tui/store"
)

// handleWindowSizeMsg lays the components out for the new terminal size
func (m Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.uiState.SetSize(msg.Width, msg.Height)
	return m, nil
}

// handleFetchResult applies a finished query; superseded results are dropped
func (m Model) handleFetchResult(msg FetchResultMsg) (Model, tea.Cmd) {
	if !m.orch.Apply(msg.Result) {
		return m, nil
	}
	m.lastUpdated = time.Now()
	m.syncGraph()
	return m, nil
}

// syncGraph hands the orchestrator's latest series to the graph, labelled
// with the selected flag
func (m Model) syncGraph() {
	series := m.orch.Series()
	m.uiState.Graph.SetData(series.Timestamps, series.Values, m.selection.CurrentFlag().Key)
}

// refresh supersedes any in-flight query with one for the current selection
func (m Model) refresh(req analytics.Request) (Model, tea.Cmd) {
	m.syncGraph()
	return m, m.fetchCmd(req)
}

// handleComboboxSelected applies a picker change
func (m Model) handleComboboxSelected(msg components.ComboboxSelectedMsg) (Model, tea.Cmd) {
	switch msg.ID {
	case store.DurationPicker:
		if msg.Cleared {
			m.uiState.DurationPicker.Deselect()
			return m.refresh(m.orch.Select(nil))
		}
		d, ok := analytics.FindDuration(msg.Item.Key)
		if !ok {
			logger.Warn("Unknown duration selected", "key", msg.Item.Key)
			return m, nil
		}
		m.uiState.DurationPicker.Select(d.Key)
		return m.refresh(m.orch.Select(&d))

	case store.NamespacePicker:
		namespace := msg.Item.Key
		if msg.Cleared {
			namespace = ""
		}
		if !m.selection.SetNamespace(namespace) {
			return m, nil
		}
		m.syncFlagPicker()
		// Pick the first flag of the new namespace so the view has something to show
		if items := m.uiState.FlagPicker.Items(); len(items) > 0 {
			m.selection.SetFlag(m.findFlag(items[0].Key))
			m.uiState.FlagPicker.Select(items[0].Key)
		}
		return m.refresh(m.orch.Refresh())

	case store.FlagPicker:
		flag := analytics.Flag{}
		if !msg.Cleared {
			flag = m.findFlag(msg.Item.Key)
		}
		if !m.selection.SetFlag(flag) {
			return m, nil
		}
		return m.refresh(m.orch.Refresh())
	}
	return m, nil
}

// handleRefreshTick refreshes against a new "now" and schedules the next tick.
// A tick that lands while a query is still in flight is skipped, so a slow
// server still gets to answer.
func (m Model) handleRefreshTick(msg RefreshTickMsg) (Model, tea.Cmd) {
	if msg.Gen != m.tickGen {
		return m, nil
	}
	if m.orch.State() == analytics.StateFetching {
		logger.Debug("Skipping refresh tick, query still in flight", "seq", m.orch.Current().Seq)
		return m, m.refreshTickCmd()
	}
	m, fetch := m.refresh(m.orch.Refresh())
	return m, tea.Batch(fetch, m.refreshTickCmd())
}

// handleSubmit runs the duration form submission, which is unsupported.
// Selection changes only take effect through the duration picker.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	form := analytics.NewDurationForm(m.orch.Selected())
	err := form.Submit(m.ctx)
	if err == nil {
		return m, nil
	}

	logger.Error("Duration form submission failed", "duration", form.DurationValue, "error", err)
	msg := "Submit failed: " + err.Error()
	if errors.Is(err, analytics.ErrSubmitNotImplemented) {
		msg = "Submitting the duration form is not supported"
	}
	return m, m.uiState.Toast.ShowWithKey(msg, components.ToastError, components.ToastDurationLong, "submit")
}

// handleTargetsReloaded swaps in a reloaded targets file. The current
// namespace and flag stay selected even when the file no longer lists them.
func (m Model) handleTargetsReloaded(msg TargetsReloadedMsg) (Model, tea.Cmd) {
	if msg.Err != nil || msg.Targets == nil {
		return m, m.uiState.Toast.ShowWithKey("Targets file is invalid, keeping the previous list",
			components.ToastWarning, components.ToastDurationLong, "targets")
	}

	msg.Targets.Ensure(m.selection.CurrentNamespace(), m.selection.CurrentFlag().Key)
	m.targets = msg.Targets
	m.uiState.NamespacePicker.SetItems(namespaceItems(m.targets))
	m.uiState.NamespacePicker.Select(m.selection.CurrentNamespace())
	m.syncFlagPicker()

	return m, m.uiState.Toast.ShowWithKey("Targets reloaded", components.ToastInfo, components.ToastDurationShort, "targets")
}
