package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/tegorov/flipt/internal/pkg/cmdutil"
	"github.com/tegorov/flipt/internal/pkg/constants"
	"github.com/tegorov/flipt/internal/pkg/tui/themes"
)

// saveThemePreference persists the theme to the config file, creating
// ~/.config/flipt-analytics/config.yaml when no config file is in use.
func saveThemePreference(theme themes.Theme) error {
	viper.Set(cmdutil.KeyTheme, themes.ConfigName(theme))

	err := viper.WriteConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, constants.ConfigDir)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(filepath.Join(configDir, "config.yaml"))
	return viper.SafeWriteConfig()
}
