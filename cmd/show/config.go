package show

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tegorov/flipt/internal/pkg/analytics"
	"github.com/tegorov/flipt/internal/pkg/cmdutil"
	"github.com/tegorov/flipt/internal/pkg/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the effective configuration",
	Long:  `Show the configuration after merging flags, FLIPT_ANALYTICS_* environment variables and the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return showConfig(cmd.OutOrStdout(), currentConfig(), jsonOutput)
	},
}

func init() {
	configCmd.Flags().Bool("json", false, "Output in JSON format")
}

type effectiveConfig struct {
	ConfigFile      string `json:"configFile,omitempty"`
	Address         string `json:"address"`
	Namespace       string `json:"namespace"`
	Flag            string `json:"flag"`
	Duration        string `json:"duration"`
	Timeout         string `json:"timeout"`
	Retries         int    `json:"retries"`
	RefreshInterval string `json:"refreshInterval"`
	TargetsFile     string `json:"targetsFile,omitempty"`
	Theme           string `json:"theme"`
	MetricsPort     int    `json:"metricsPort"`
}

func currentConfig() effectiveConfig {
	client := cmdutil.ClientConfig()

	duration := fmt.Sprintf("default (%d minutes)", analytics.DefaultWindowMinutes)
	if d := cmdutil.Duration(); d != nil {
		duration = d.Key
	}

	refresh := "off"
	if interval := cmdutil.RefreshInterval(); interval > 0 {
		refresh = interval.String()
	}

	theme := viper.GetString(cmdutil.KeyTheme)
	if theme == "" {
		theme = "dark"
	}

	return effectiveConfig{
		ConfigFile:      viper.ConfigFileUsed(),
		Address:         client.Address,
		Namespace:       cmdutil.Namespace(),
		Flag:            cmdutil.Flag(),
		Duration:        duration,
		Timeout:         client.Timeout.String(),
		Retries:         client.Retries,
		RefreshInterval: refresh,
		TargetsFile:     viper.GetString(cmdutil.KeyTargetsFile),
		Theme:           theme,
		MetricsPort:     cmdutil.GetIntConfig(cmdutil.KeyMetricsPort, 0),
	}
}

func showConfig(w io.Writer, cfg effectiveConfig, jsonOutput bool) error {
	if jsonOutput {
		return output.WriteJSON(w, cfg, output.IsTTY())
	}

	fmt.Fprintln(w, "=== flipt-analytics configuration ===")
	if cfg.ConfigFile != "" {
		fmt.Fprintf(w, "Config File: %s\n", cfg.ConfigFile)
	}
	fmt.Fprintf(w, "Address: %s\n", cfg.Address)
	fmt.Fprintf(w, "Namespace: %s\n", cfg.Namespace)
	fmt.Fprintf(w, "Flag: %s\n", cfg.Flag)
	fmt.Fprintf(w, "Duration: %s\n", cfg.Duration)
	fmt.Fprintf(w, "Timeout: %s\n", cfg.Timeout)
	fmt.Fprintf(w, "Retries: %d\n", cfg.Retries)
	fmt.Fprintf(w, "Refresh Interval: %s\n", cfg.RefreshInterval)
	if cfg.TargetsFile != "" {
		fmt.Fprintf(w, "Targets File: %s\n", cfg.TargetsFile)
	}
	fmt.Fprintf(w, "Theme: %s\n", cfg.Theme)
	fmt.Fprintf(w, "Metrics Port: %d\n", cfg.MetricsPort)
	return nil
}
