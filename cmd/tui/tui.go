package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tegorov/flipt/internal/pkg/analytics"
	"github.com/tegorov/flipt/internal/pkg/analyticsclient"
	"github.com/tegorov/flipt/internal/pkg/cmdutil"
	"github.com/tegorov/flipt/internal/pkg/logger"
	"github.com/tegorov/flipt/internal/pkg/monitoring"
	"github.com/tegorov/flipt/internal/pkg/signals"
	"github.com/tegorov/flipt/internal/pkg/targets"
	"github.com/tegorov/flipt/internal/pkg/tui"
	"github.com/tegorov/flipt/internal/pkg/tui/store"
	"github.com/tegorov/flipt/internal/pkg/tui/themes"
)

var TuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse flag evaluation counts interactively",
	Long: `Start the interactive analytics view for a Flipt feature flag.

The view plots evaluation counts for the selected duration window ending now.
Changing the duration, namespace or flag issues a new query; results of
superseded queries are discarded.

Keys:
  d  pick duration     x  clear duration (60 minute default)
  n  pick namespace    f  pick flag
  r  refresh           p  pause auto-refresh
  t  toggle theme      ` + "`" + `  log console (LOG_LEVEL=DEBUG)
  ?  help              q  quit

The targets file, when given, is reloaded whenever it changes on disk.

Examples:
  flipt-analytics tui --flag checkout
  flipt-analytics tui -n staging -f checkout --refresh-interval 30s
  flipt-analytics tui --targets-file ~/.config/flipt-analytics/targets.yaml --metrics-port 9090`,
	RunE: runTUI,
}

var (
	metricsPort int
	themeName   string
)

func runTUI(cmd *cobra.Command, args []string) error {
	namespace := cmdutil.Namespace()
	flagKey := cmdutil.Flag()

	tg, err := cmdutil.Targets(namespace, flagKey)
	if err != nil {
		return err
	}

	client, err := analyticsclient.New(cmdutil.ClientConfig())
	if err != nil {
		return err
	}

	selection := store.NewSelection(namespace, flagFromTargets(tg, namespace, flagKey))
	opts := []analytics.Option{analytics.WithDuration(cmdutil.Duration())}

	if port := cmdutil.GetIntConfig(cmdutil.KeyMetricsPort, metricsPort); port > 0 {
		exporter := monitoring.NewPrometheusExporter(port)
		if err := exporter.Enable(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() { _ = exporter.Disable() }()
		opts = append(opts, analytics.WithObserver(exporter))
	}

	orch := analytics.NewOrchestrator(client, selection, selection, opts...)

	// Disable logging to prevent corrupting TUI display
	logger.Disable()
	defer logger.Enable()
	if logger.InitConsole() {
		logger.EnableConsoleCapture()
	}

	ctx, stop := signals.Context(cmd.Context())
	defer stop()

	model := tui.NewModel(ctx, tui.Config{
		Orchestrator:    orch,
		Selection:       selection,
		Targets:         tg,
		Theme:           themes.GetTheme(cmdutil.GetStringConfig(cmdutil.KeyTheme, themeName)),
		RefreshInterval: cmdutil.RefreshInterval(),
	})
	defer model.Stop()

	p := tea.NewProgram(model, tea.WithAltScreen())

	if path := viper.GetString(cmdutil.KeyTargetsFile); path != "" {
		err := targets.Watch(ctx, path, func(tg *targets.Targets, err error) {
			p.Send(tui.TargetsReloadedMsg{Targets: tg, Err: err})
		})
		if err != nil {
			logger.Warn("Targets file will not be reloaded", "path", path, "error", err)
		}
	}

	// SIGTERM and friends end the program the same way q does
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// flagFromTargets resolves the display name of key from the targets file
func flagFromTargets(tg *targets.Targets, namespace, key string) analytics.Flag {
	if ns, ok := tg.Namespace(namespace); ok {
		for _, f := range ns.Flags {
			if f.Key == key {
				return analytics.Flag{Key: f.Key, Name: f.Name}
			}
		}
	}
	return analytics.Flag{Key: key}
}

func init() {
	TuiCmd.Flags().Duration("refresh-interval", 0, "re-run the query periodically, e.g. 30s (0 disables)")
	TuiCmd.Flags().IntVar(&metricsPort, "metrics-port", 0, "serve Prometheus metrics on this port (0 disables)")
	TuiCmd.Flags().StringVar(&themeName, "theme", "", "color theme: 'dark' or 'light' (default: saved preference or dark)")

	_ = viper.BindPFlag(cmdutil.KeyRefreshInterval, TuiCmd.Flags().Lookup("refresh-interval"))
	_ = viper.BindPFlag(cmdutil.KeyMetricsPort, TuiCmd.Flags().Lookup("metrics-port"))
}
