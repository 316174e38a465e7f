// Package config provides configuration management for Doro.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/theme"
)

// Config holds all configuration for the Doro application.
type Config struct {
	WorkDuration  int                `mapstructure:"work_duration"`
	BreakDuration int                `mapstructure:"break_duration"`
	TargetCycles  int                `mapstructure:"target_cycles"`
	Theme         string             `mapstructure:"theme"`
	FontFamily    string             `mapstructure:"font_family"`
	CustomMP3Path string             `mapstructure:"custom_mp3_path"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Log           LogConfig          `mapstructure:"log"`

	// path is the file this config was loaded from and is saved to.
	path string
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

const defaultDataDir = "~/.doro"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	cycle := domain.DefaultCycleConfig()
	return &Config{
		WorkDuration:  cycle.WorkMinutes,
		BreakDuration: cycle.BreakMinutes,
		TargetCycles:  cycle.TargetCycles,
		Theme:         theme.DefaultName,
		FontFamily:    theme.DefaultFont,
		CustomMP3Path: "",
		Notifications: NotificationConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Path returns the file the config is bound to.
func (c *Config) Path() string {
	return c.path
}

// CycleConfig converts the persisted durations to the domain type.
func (c *Config) CycleConfig() domain.CycleConfig {
	return domain.CycleConfig{
		WorkMinutes:  c.WorkDuration,
		BreakMinutes: c.BreakDuration,
		TargetCycles: c.TargetCycles,
	}
}

// ApplyCycleConfig copies the domain durations back into the config.
func (c *Config) ApplyCycleConfig(cc domain.CycleConfig) {
	c.WorkDuration = cc.WorkMinutes
	c.BreakDuration = cc.BreakMinutes
	c.TargetCycles = cc.TargetCycles
}

// Load loads the configuration from the default config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from path, creating it with defaults
// when it does not exist. Persisted values outside their bounds are
// replaced with defaults.
func LoadFrom(configPath string) (*Config, error) {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = configPath
		if err := Save(cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.path = configPath
	cfg.sanitize()

	// Expand ~ in data directory
	if cfg.Storage.DataDir == defaultDataDir || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".doro")
	} else if strings.HasPrefix(cfg.Storage.DataDir, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, cfg.Storage.DataDir[2:])
	}

	return &cfg, nil
}

// Save writes the configuration to the file it was loaded from, or to the
// default config file.
func Save(cfg *Config) error {
	configPath := cfg.path
	if configPath == "" {
		var err error
		configPath, err = GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		cfg.path = configPath
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Set all values
	v.Set("work_duration", cfg.WorkDuration)
	v.Set("break_duration", cfg.BreakDuration)
	v.Set("target_cycles", cfg.TargetCycles)
	v.Set("theme", cfg.Theme)
	v.Set("font_family", cfg.FontFamily)
	v.Set("custom_mp3_path", cfg.CustomMP3Path)
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("log.level", cfg.Log.Level)

	return v.WriteConfig()
}

// SaveTo binds cfg to path and writes it there.
func SaveTo(cfg *Config, path string) error {
	cfg.path = path
	return Save(cfg)
}

// FileStore saves configs to, and reloads them from, their bound file.
type FileStore struct{}

// Save implements the service config saver.
func (FileStore) Save(cfg *Config) error {
	return Save(cfg)
}

// Reload reads the file cfg is bound to again.
func (FileStore) Reload(cfg *Config) (*Config, error) {
	if cfg.path == "" {
		return Load()
	}
	return LoadFrom(cfg.path)
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".doro", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "doro.db")
}

// GetLogPath returns the path to the log file.
func GetLogPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "doro.log")
}

// sanitize replaces out-of-range or unknown values with defaults.
func (c *Config) sanitize() {
	defaults := DefaultConfig()
	if domain.ValidateWorkMinutes(c.WorkDuration) != nil {
		c.WorkDuration = defaults.WorkDuration
	}
	if domain.ValidateBreakMinutes(c.BreakDuration) != nil {
		c.BreakDuration = defaults.BreakDuration
	}
	if domain.ValidateTargetCycles(c.TargetCycles) != nil {
		c.TargetCycles = defaults.TargetCycles
	}
	if _, ok := theme.Find(c.Theme); !ok {
		c.Theme = defaults.Theme
	}
	c.FontFamily = theme.LookupFont(c.FontFamily)
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("work_duration", defaults.WorkDuration)
	v.SetDefault("break_duration", defaults.BreakDuration)
	v.SetDefault("target_cycles", defaults.TargetCycles)
	v.SetDefault("theme", defaults.Theme)
	v.SetDefault("font_family", defaults.FontFamily)
	v.SetDefault("custom_mp3_path", defaults.CustomMP3Path)
	v.SetDefault("notifications.enabled", defaults.Notifications.Enabled)
	v.SetDefault("storage.data_dir", defaults.Storage.DataDir)
	v.SetDefault("log.level", defaults.Log.Level)
}
