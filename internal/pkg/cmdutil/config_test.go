package cmdutil

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestGetStringConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Equal(t, "", GetStringConfig("analytics.flag", ""))
	viper.Set("analytics.flag", "checkout")
	assert.Equal(t, "checkout", GetStringConfig("analytics.flag", ""))
	assert.Equal(t, "dark-mode", GetStringConfig("analytics.flag", "dark-mode"), "flag wins over config")
}

func TestGetStringOrDefault(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Equal(t, "default", GetStringOrDefault("analytics.namespace", "", "default"))
	viper.Set("analytics.namespace", "staging")
	assert.Equal(t, "staging", GetStringOrDefault("analytics.namespace", "", "default"))
	assert.Equal(t, "prod", GetStringOrDefault("analytics.namespace", "prod", "default"))
}

func TestGetIntAndBoolConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Equal(t, 3, GetIntConfig("analytics.retries", 3))
	assert.False(t, GetBoolConfig("tui.debug", false))

	viper.Set("analytics.retries", 5)
	viper.Set("tui.debug", true)
	assert.Equal(t, 5, GetIntConfig("analytics.retries", 3))
	assert.True(t, GetBoolConfig("tui.debug", false))
}

func TestGetDurationConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	tests := []struct {
		name  string
		value any
		want  time.Duration
	}{
		{"unset uses flag", nil, 10 * time.Second},
		{"duration string", "30s", 30 * time.Second},
		{"minutes", "2m", 2 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			if tt.value != nil {
				viper.Set("analytics.timeout", tt.value)
			}
			assert.Equal(t, tt.want, GetDurationConfig("analytics.timeout", 10*time.Second))
		})
	}
}
