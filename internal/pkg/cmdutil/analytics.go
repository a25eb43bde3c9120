package cmdutil

import (
	"time"

	"github.com/spf13/viper"
	"github.com/tegorov/flipt/internal/pkg/analytics"
	"github.com/tegorov/flipt/internal/pkg/analyticsclient"
	"github.com/tegorov/flipt/internal/pkg/constants"
	"github.com/tegorov/flipt/internal/pkg/logger"
	"github.com/tegorov/flipt/internal/pkg/targets"
)

// Viper keys shared by the analytics commands
const (
	KeyAddress         = "analytics.address"
	KeyNamespace       = "analytics.namespace"
	KeyFlag            = "analytics.flag"
	KeyDuration        = "analytics.duration"
	KeyTimeout         = "analytics.timeout"
	KeyRetries         = "analytics.retries"
	KeyRefreshInterval = "analytics.refresh_interval"
	KeyTargetsFile     = "analytics.targets_file"
	KeyTheme           = "tui.theme"
	KeyMetricsPort     = "metrics.port"
)

// ClientConfig builds the analytics client settings from flags and config
func ClientConfig() analyticsclient.Config {
	return analyticsclient.Config{
		Address: GetStringOrDefault(KeyAddress, "", constants.DefaultAddress),
		Timeout: GetDurationConfig(KeyTimeout, constants.DefaultRequestTimeout),
		Retries: GetIntConfig(KeyRetries, constants.DefaultRetries),
	}
}

// Namespace returns the configured namespace, defaulting to Flipt's built-in one
func Namespace() string {
	return GetStringOrDefault(KeyNamespace, "", constants.DefaultNamespace)
}

// Flag returns the configured flag key
func Flag() string {
	return viper.GetString(KeyFlag)
}

// Duration returns the configured duration option. An unknown key is logged
// and yields nil, which resolves to the default window.
func Duration() *analytics.DurationOption {
	key := viper.GetString(KeyDuration)
	if key == "" {
		d := analytics.DefaultDuration()
		return &d
	}
	d, ok := analytics.FindDuration(key)
	if !ok {
		logger.Warn("Unknown duration, using default window",
			"duration", key,
			"default_minutes", analytics.DefaultWindowMinutes)
		return nil
	}
	return &d
}

// RefreshInterval returns the periodic refresh interval; 0 disables it.
// Non-zero values below the minimum are raised to it.
func RefreshInterval() time.Duration {
	interval := GetDurationConfig(KeyRefreshInterval, 0)
	if interval <= 0 {
		return 0
	}
	if interval < constants.MinRefreshInterval {
		return constants.MinRefreshInterval
	}
	return interval
}

// Targets loads the navigation targets file if configured, otherwise builds
// a single-entry list. The configured namespace and flag are always present.
func Targets(namespace, flag string) (*targets.Targets, error) {
	path := viper.GetString(KeyTargetsFile)
	if path == "" {
		return targets.Single(namespace, flag), nil
	}

	t, err := targets.Load(path)
	if err != nil {
		return nil, err
	}
	t.Ensure(namespace, flag)
	return t, nil
}
