package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tegorov/flipt/cmd/show"
	"github.com/tegorov/flipt/cmd/tui"
	"github.com/tegorov/flipt/internal/pkg/cmdutil"
	"github.com/tegorov/flipt/internal/pkg/constants"
	"github.com/tegorov/flipt/internal/pkg/logger"
	"github.com/tegorov/flipt/internal/pkg/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     version.Name,
	Short:   "Flag evaluation analytics for Flipt",
	Long:    fmt.Sprintf("%s %s - evaluation counts of a Flipt feature flag over a chosen time window", version.Name, version.GetVersion()),
	Version: version.GetFullVersion(),
}

// envBindings maps config keys to their FLIPT_ANALYTICS_* variables
var envBindings = map[string]string{
	cmdutil.KeyAddress:         "FLIPT_ANALYTICS_ADDRESS",
	cmdutil.KeyNamespace:       "FLIPT_ANALYTICS_NAMESPACE",
	cmdutil.KeyFlag:            "FLIPT_ANALYTICS_FLAG",
	cmdutil.KeyDuration:        "FLIPT_ANALYTICS_DURATION",
	cmdutil.KeyTimeout:         "FLIPT_ANALYTICS_TIMEOUT",
	cmdutil.KeyRetries:         "FLIPT_ANALYTICS_RETRIES",
	cmdutil.KeyRefreshInterval: "FLIPT_ANALYTICS_REFRESH_INTERVAL",
	cmdutil.KeyTargetsFile:     "FLIPT_ANALYTICS_TARGETS_FILE",
	cmdutil.KeyTheme:           "FLIPT_ANALYTICS_THEME",
	cmdutil.KeyMetricsPort:     "FLIPT_ANALYTICS_METRICS_PORT",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func addSubCommandPalattes() {
	rootCmd.AddCommand(tui.TuiCmd)
	rootCmd.AddCommand(show.ShowCmd)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Initialize structured logging
	logger.Initialize()

	addSubCommandPalattes()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/flipt-analytics/config.yaml)")
	flags.StringP("address", "a", "", "Flipt server address (default "+constants.DefaultAddress+")")
	flags.StringP("namespace", "n", "", "namespace key (default "+constants.DefaultNamespace+")")
	flags.StringP("flag", "f", "", "flag key")
	flags.StringP("duration", "d", "", `duration window, e.g. "1 hour" (default "30 minutes")`)
	flags.Duration("timeout", constants.DefaultRequestTimeout, "timeout for a single analytics request")
	flags.Int("retries", constants.DefaultRetries, "retries for transient server errors")
	flags.String("targets-file", "", "YAML file listing namespaces and flags to navigate")

	_ = viper.BindPFlag(cmdutil.KeyAddress, flags.Lookup("address"))
	_ = viper.BindPFlag(cmdutil.KeyNamespace, flags.Lookup("namespace"))
	_ = viper.BindPFlag(cmdutil.KeyFlag, flags.Lookup("flag"))
	_ = viper.BindPFlag(cmdutil.KeyDuration, flags.Lookup("duration"))
	_ = viper.BindPFlag(cmdutil.KeyTimeout, flags.Lookup("timeout"))
	_ = viper.BindPFlag(cmdutil.KeyRetries, flags.Lookup("retries"))
	_ = viper.BindPFlag(cmdutil.KeyTargetsFile, flags.Lookup("targets-file"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// ~/.config/flipt-analytics/config.yaml first, then ~/.flipt-analytics.yaml
		viper.AddConfigPath(filepath.Join(home, constants.ConfigDir))
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigName("." + version.Name)
		}
	}

	for key, env := range envBindings {
		_ = viper.BindEnv(key, env)
	}

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("Using config file", "path", viper.ConfigFileUsed())
	}
}
