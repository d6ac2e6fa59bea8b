package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppName is used for the config directory and the environment prefix.
const AppName = "cellery-dev"

// EnvPrefix is the prefix for environment variable overrides.
// e.g., CELLERY_DEV_TOOL_BUILD_COMMAND for tool.build_command
const EnvPrefix = "CELLERY_DEV"

// Config represents the complete cellery-dev configuration
type Config struct {
	Tool     ToolConfig     `mapstructure:"tool"`
	Terminal TerminalConfig `mapstructure:"terminal"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ToolConfig controls the command lines sent to the terminals
type ToolConfig struct {
	// BuildCommand builds a cell image from a source file (default: "cellery build")
	BuildCommand string `mapstructure:"build_command"`
	// RunCommand starts an instance of a built cell (default: "cellery run")
	RunCommand string `mapstructure:"run_command"`
	// LogsCommand follows the logs of a running instance (default: "cellery logs")
	LogsCommand string `mapstructure:"logs_command"`
	// OrgName, ImageName and Version make up the cell name placeholder
	OrgName   string `mapstructure:"org_name"`
	ImageName string `mapstructure:"image_name"`
	Version   string `mapstructure:"version"`
	// DefaultInstance is suggested as the instance name when no file is active
	DefaultInstance string `mapstructure:"default_instance"`
}

// CellNamePlaceholder returns the example cell name shown in the prompt,
// formatted as <org>/<image>:<version>.
func (c *ToolConfig) CellNamePlaceholder() string {
	return c.OrgName + "/" + c.ImageName + ":" + c.Version
}

// TerminalConfig controls the tmux sessions commands are sent to
type TerminalConfig struct {
	// Socket is the tmux socket name, isolating cellery-dev sessions (default: "cellery")
	Socket string `mapstructure:"socket"`
	// Width and Height are the dimensions of newly created sessions
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	// HistoryLimit is the number of scrollback lines kept by tmux (default: 50000)
	HistoryLimit int `mapstructure:"history_limit"`
	// Attach attaches to the session after the command is sent (default: false)
	Attach bool `mapstructure:"attach"`
}

// WatchConfig controls build --watch
type WatchConfig struct {
	// DebounceMs coalesces bursts of file writes into one rebuild (default: 300)
	DebounceMs int `mapstructure:"debounce_ms"`
}

// Debounce returns the debounce interval as a time.Duration
func (c *WatchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory holding debug.log. Empty means {ConfigDir}/logs.
	// Supports ~ for home directory expansion.
	Dir string `mapstructure:"dir"`
}

// ResolveDir returns the directory the log file is written to.
func (c *LoggingConfig) ResolveDir() string {
	if c.Dir == "" {
		return filepath.Join(ConfigDir(), "logs")
	}
	return expandHome(c.Dir)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Tool: ToolConfig{
			BuildCommand:    "cellery build",
			RunCommand:      "cellery run",
			LogsCommand:     "cellery logs",
			OrgName:         "myorg",
			ImageName:       "hello",
			Version:         "1.0.0",
			DefaultInstance: "my-instance",
		},
		Terminal: TerminalConfig{
			Socket:       "cellery",
			Width:        200,
			Height:       50,
			HistoryLimit: 50000,
			Attach:       false,
		},
		Watch: WatchConfig{
			DebounceMs: 300,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("tool.build_command", defaults.Tool.BuildCommand)
	viper.SetDefault("tool.run_command", defaults.Tool.RunCommand)
	viper.SetDefault("tool.logs_command", defaults.Tool.LogsCommand)
	viper.SetDefault("tool.org_name", defaults.Tool.OrgName)
	viper.SetDefault("tool.image_name", defaults.Tool.ImageName)
	viper.SetDefault("tool.version", defaults.Tool.Version)
	viper.SetDefault("tool.default_instance", defaults.Tool.DefaultInstance)

	viper.SetDefault("terminal.socket", defaults.Terminal.Socket)
	viper.SetDefault("terminal.width", defaults.Terminal.Width)
	viper.SetDefault("terminal.height", defaults.Terminal.Height)
	viper.SetDefault("terminal.history_limit", defaults.Terminal.HistoryLimit)
	viper.SetDefault("terminal.attach", defaults.Terminal.Attach)

	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
