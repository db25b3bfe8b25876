package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	UI     UIConfig     `mapstructure:"ui"`
	Log    LogConfig    `mapstructure:"log"`
	Export ExportConfig `mapstructure:"export"`
}

type APIConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	TimeoutMs            int    `mapstructure:"timeout_ms"`
	DefaultPerPage       int    `mapstructure:"default_per_page"`
	RateLimitThreshold   int    `mapstructure:"rate_limit_threshold"`
	AutocompleteMinChars int    `mapstructure:"autocomplete_min_chars"`
	UserAgent            string `mapstructure:"user_agent"`
}

type UIConfig struct {
	Theme           string `mapstructure:"theme"`
	MouseEnabled    bool   `mapstructure:"mouse_enabled"`
	PanelWidthRatio int    `mapstructure:"panel_width_ratio"`
	ShowCharts      bool   `mapstructure:"show_charts"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:              "https://api.openbrewerydb.org/v1/breweries",
			TimeoutMs:            15000,
			DefaultPerPage:       10,
			RateLimitThreshold:   1,
			AutocompleteMinChars: 3,
			UserAgent:            "lazybrew",
		},
		UI: UIConfig{
			Theme:           "default",
			MouseEnabled:    true,
			PanelWidthRatio: 35,
			ShowCharts:      true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}
}

// Load loads configuration from files, the environment and command line
// flags, in increasing priority
func Load(flags *pflag.FlagSet) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and type
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
		}
	}

	// Add config paths in priority order
	// 1. User config directory
	if configDir, err := GetConfigPath(); err == nil {
		v.AddConfigPath(configDir)
	}

	// 2. Current directory
	v.AddConfigPath(".")

	// 3. Default config directory
	v.AddConfigPath("./config")

	setDefaults(v)

	// LAZYBREW_API_BASE_URL overrides api.base_url
	v.SetEnvPrefix("lazybrew")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	// Read config (it's okay if file doesn't exist, we have defaults)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := GetDefaults()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout_ms", d.API.TimeoutMs)
	v.SetDefault("api.default_per_page", d.API.DefaultPerPage)
	v.SetDefault("api.rate_limit_threshold", d.API.RateLimitThreshold)
	v.SetDefault("api.autocomplete_min_chars", d.API.AutocompleteMinChars)
	v.SetDefault("api.user_agent", d.API.UserAgent)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.mouse_enabled", d.UI.MouseEnabled)
	v.SetDefault("ui.panel_width_ratio", d.UI.PanelWidthRatio)
	v.SetDefault("ui.show_charts", d.UI.ShowCharts)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("export.dir", d.Export.Dir)
}

// flagKeys maps command line flags onto config keys
var flagKeys = map[string]string{
	"base-url":  "api.base_url",
	"per-page":  "api.default_per_page",
	"theme":     "ui.theme",
	"log-level": "log.level",
	"log-file":  "log.file",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("error binding flag %s: %w", name, err)
		}
	}
	return nil
}

// NewFlagSet declares the command line flags Load understands
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to a config file")
	fs.String("base-url", "", "breweries API base URL")
	fs.Int("per-page", 0, "default page size")
	fs.String("theme", "", "color theme (default, catppuccin-mocha)")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("log-file", "", "log file path")
	return fs
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "lazybrew"), nil
}
