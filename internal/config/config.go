package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix for environment overrides, e.g. WATSON_STAT_WORKING_HOURS_MONDAY
const EnvPrefix = "WATSON_STAT"

// Weekdays lists the configurable days, Monday first
var Weekdays = [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Config represents application configuration
type Config struct {
	WorkingHours WorkingHoursConfig `mapstructure:"working_hours"`
	Log          LogConfig          `mapstructure:"log"`
}

// WorkingHoursConfig holds the target working hours for each weekday
type WorkingHoursConfig struct {
	Monday    float64 `mapstructure:"monday"`
	Tuesday   float64 `mapstructure:"tuesday"`
	Wednesday float64 `mapstructure:"wednesday"`
	Thursday  float64 `mapstructure:"thursday"`
	Friday    float64 `mapstructure:"friday"`
	Saturday  float64 `mapstructure:"saturday"`
	Sunday    float64 `mapstructure:"sunday"`
}

// LogConfig represents diagnostic logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Targets returns the weekday target table, Monday=0 ... Sunday=6
func (w WorkingHoursConfig) Targets() [7]float64 {
	return [7]float64{w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday, w.Saturday, w.Sunday}
}

// FlagName returns the command-line flag for a weekday, e.g. monday-working-hours
func FlagName(weekday string) string {
	return weekday + "-working-hours"
}

// SetDefaults registers built-in defaults: 8h Monday to Friday, nothing on weekends
func SetDefaults(v *viper.Viper) {
	for i, day := range Weekdays {
		hours := 8.0
		if i >= 5 {
			hours = 0
		}
		v.SetDefault("working_hours."+day, hours)
	}
	v.SetDefault("log.level", "info")
}

// Load loads configuration.
// Precedence: flags > environment > config file > defaults. An empty
// configPath means no config file is read.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, day := range Weekdays {
			if f := flags.Lookup(FlagName(day)); f != nil {
				if err := v.BindPFlag("working_hours."+day, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
				}
			}
		}
		if f := flags.Lookup("log-file"); f != nil {
			if err := v.BindPFlag("log.file", f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
			}
		}
		if f := flags.Lookup("log-level"); f != nil {
			if err := v.BindPFlag("log.level", f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for i, hours := range c.WorkingHours.Targets() {
		if math.IsNaN(hours) || math.IsInf(hours, 0) {
			return fmt.Errorf("working_hours.%s must be a finite number, got %v", Weekdays[i], hours)
		}
	}

	if _, err := c.Log.GetLevel(); err != nil {
		return err
	}

	return nil
}

// GetLevel parses the configured log level; empty means info
func (c *LogConfig) GetLevel() (zapcore.Level, error) {
	if c.Level == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
