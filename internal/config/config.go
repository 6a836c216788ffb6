// Package config provides configuration management for Bellhop.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Permission is the tri-state notification permission.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// Config holds all configuration for the Bellhop application.
type Config struct {
	FirstRun      bool               `mapstructure:"first_run"`
	Sound         SoundConfig        `mapstructure:"sound"`
	Snooze        SnoozeConfig       `mapstructure:"snooze"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	DailyTimes    DailyTimesConfig   `mapstructure:"dailytimes"`
	Storage       StorageConfig      `mapstructure:"storage"`
}

// SoundConfig holds the default alarm sound profile.
type SoundConfig struct {
	DefaultType   string  `mapstructure:"default_type"`
	DefaultVolume float64 `mapstructure:"default_volume"`
}

// SnoozeConfig holds the snooze policy.
type SnoozeConfig struct {
	DefaultMinutes int `mapstructure:"default_minutes"`
}

// NotificationConfig holds desktop notification settings.
type NotificationConfig struct {
	Permission Permission `mapstructure:"permission"`
}

// DailyTimesConfig holds the sun-times feature settings: the observer's
// coordinates, the UTC offset used to render the times, and the minute
// offsets that derive the three daily marks from sunrise.
type DailyTimesConfig struct {
	Latitude         float64 `mapstructure:"latitude"`
	Longitude        float64 `mapstructure:"longitude"`
	UTCOffsetMinutes int     `mapstructure:"utc_offset_minutes"`
	MorningOffset    int     `mapstructure:"morning_offset"`
	EveOffset        int     `mapstructure:"eve_offset"`
	PrepOffset       int     `mapstructure:"prep_offset"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FirstRun: true,
		Sound: SoundConfig{
			DefaultType:   "school",
			DefaultVolume: 0.25,
		},
		Snooze: SnoozeConfig{
			DefaultMinutes: 5,
		},
		Notifications: NotificationConfig{
			Permission: PermissionDefault,
		},
		DailyTimes: DailyTimesConfig{
			Latitude:         51.5,
			Longitude:        0.0,
			UTCOffsetMinutes: 0,
			MorningOffset:    96,
			EveOffset:        720,
			PrepOffset:       510,
		},
		Storage: StorageConfig{
			DataDir: "~/.bellhop",
		},
	}
}

// Load loads the configuration from the config file, creating it with
// defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Storage.DataDir == "~/.bellhop" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".bellhop")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("first_run", cfg.FirstRun)
	viper.Set("sound.default_type", cfg.Sound.DefaultType)
	viper.Set("sound.default_volume", cfg.Sound.DefaultVolume)
	viper.Set("snooze.default_minutes", cfg.Snooze.DefaultMinutes)
	viper.Set("notifications.permission", string(cfg.Notifications.Permission))
	viper.Set("dailytimes.latitude", cfg.DailyTimes.Latitude)
	viper.Set("dailytimes.longitude", cfg.DailyTimes.Longitude)
	viper.Set("dailytimes.utc_offset_minutes", cfg.DailyTimes.UTCOffsetMinutes)
	viper.Set("dailytimes.morning_offset", cfg.DailyTimes.MorningOffset)
	viper.Set("dailytimes.eve_offset", cfg.DailyTimes.EveOffset)
	viper.Set("dailytimes.prep_offset", cfg.DailyTimes.PrepOffset)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".bellhop", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "bellhop.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("first_run", true)
	viper.SetDefault("sound.default_type", "school")
	viper.SetDefault("sound.default_volume", 0.25)
	viper.SetDefault("snooze.default_minutes", 5)
	viper.SetDefault("notifications.permission", "default")
	viper.SetDefault("dailytimes.latitude", 51.5)
	viper.SetDefault("dailytimes.longitude", 0.0)
	viper.SetDefault("dailytimes.utc_offset_minutes", 0)
	viper.SetDefault("dailytimes.morning_offset", 96)
	viper.SetDefault("dailytimes.eve_offset", 720)
	viper.SetDefault("dailytimes.prep_offset", 510)
	viper.SetDefault("storage.data_dir", "~/.bellhop")
}
