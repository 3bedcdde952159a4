// Package config resolves lapwatch settings from flags, environment and the
// config file.
package config

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/wandb/lapwatch/internal/ticker"
)

const (
	KeyTickInterval  = "tick-interval"
	KeyLapRows       = "lap-rows"
	KeySummaryFormat = "summary-format"
	KeyMetricsAddr   = "metrics-addr"
	KeySentryDSN     = "sentry-dsn"
	KeyDebug         = "debug"

	EnvPrefix = "LAPWATCH"

	DefaultLapRows    = 8
	MinLapRows        = 3
	MaxLapRows        = 50
	SummaryFormatNone = ""
	SummaryFormatJSON = "json"
	SummaryFormatYAML = "yaml"
)

// ValidKeys lists the keys accepted by `config set`.
var ValidKeys = []string{
	KeyTickInterval,
	KeyLapRows,
	KeySummaryFormat,
	KeyMetricsAddr,
	KeySentryDSN,
	KeyDebug,
}

// Config holds the resolved settings for a session.
type Config struct {
	// TickInterval is how often elapsed time is credited while running.
	TickInterval time.Duration

	// LapRows is the height of the lap list.
	LapRows int

	// SummaryFormat selects how the session summary is printed on exit.
	// Empty disables the summary.
	SummaryFormat string

	// MetricsAddr is the listen address of the Prometheus endpoint.
	// Empty disables it.
	MetricsAddr string

	// SentryDSN enables error reporting when set.
	SentryDSN string

	// Debug writes a debug log file.
	Debug bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTickInterval, ticker.DefaultInterval)
	v.SetDefault(KeyLapRows, DefaultLapRows)
	v.SetDefault(KeySummaryFormat, SummaryFormatNone)
	v.SetDefault(KeyMetricsAddr, "")
	v.SetDefault(KeySentryDSN, "")
	v.SetDefault(KeyDebug, false)
}

// Load reads settings from v and normalizes them.
func Load(v *viper.Viper) (*Config, error) {
	format := v.GetString(KeySummaryFormat)
	switch format {
	case SummaryFormatNone, SummaryFormatJSON, SummaryFormatYAML:
	default:
		return nil, fmt.Errorf("config: invalid %s %q: want json or yaml", KeySummaryFormat, format)
	}

	cfg := &Config{
		TickInterval:  ticker.ClampInterval(v.GetDuration(KeyTickInterval)),
		LapRows:       clamp(v.GetInt(KeyLapRows), MinLapRows, MaxLapRows),
		SummaryFormat: format,
		MetricsAddr:   v.GetString(KeyMetricsAddr),
		SentryDSN:     v.GetString(KeySentryDSN),
		Debug:         v.GetBool(KeyDebug),
	}
	return cfg, nil
}

// ValidateValue checks that value can be stored under key.
func ValidateValue(key, value string) error {
	if !slices.Contains(ValidKeys, key) {
		return fmt.Errorf("invalid config key: %s. Valid keys are: %v", key, ValidKeys)
	}

	switch key {
	case KeyTickInterval:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	case KeyLapRows:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	case KeyDebug:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	case KeySummaryFormat:
		if value != SummaryFormatNone && value != SummaryFormatJSON && value != SummaryFormatYAML {
			return fmt.Errorf("invalid %s %q: want json or yaml", key, value)
		}
	}
	return nil
}

func clamp(val, minimum, maximum int) int {
	if val < minimum {
		return minimum
	}
	if val > maximum {
		return maximum
	}
	return val
}
