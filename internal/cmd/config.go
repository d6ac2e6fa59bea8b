package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cellery-io/cellery-dev/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View cellery-dev configuration",
	Long: `View cellery-dev configuration.

Without arguments, displays the current configuration.
Use subcommands to create a config file or locate it.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/cellery-dev/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configShowYAML bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configCmd.PersistentFlags().BoolVar(&configShowYAML, "yaml", false, "Print the effective settings as YAML")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if configShowYAML {
		data, err := yaml.Marshal(viper.AllSettings())
		if err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	printConfig(out, cfg, viper.ConfigFileUsed())
	return nil
}

func printConfig(out io.Writer, cfg *config.Config, used string) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if used != "" {
		fmt.Fprintf(out, "Config file: %s\n", used)
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "tool:")
	fmt.Fprintf(out, "  build_command: %s\n", cfg.Tool.BuildCommand)
	fmt.Fprintf(out, "  run_command: %s\n", cfg.Tool.RunCommand)
	fmt.Fprintf(out, "  logs_command: %s\n", cfg.Tool.LogsCommand)
	fmt.Fprintf(out, "  org_name: %s\n", cfg.Tool.OrgName)
	fmt.Fprintf(out, "  image_name: %s\n", cfg.Tool.ImageName)
	fmt.Fprintf(out, "  version: %s\n", cfg.Tool.Version)
	fmt.Fprintf(out, "  default_instance: %s\n", cfg.Tool.DefaultInstance)

	fmt.Fprintln(out, "terminal:")
	fmt.Fprintf(out, "  socket: %s\n", cfg.Terminal.Socket)
	fmt.Fprintf(out, "  width: %d\n", cfg.Terminal.Width)
	fmt.Fprintf(out, "  height: %d\n", cfg.Terminal.Height)
	fmt.Fprintf(out, "  history_limit: %d\n", cfg.Terminal.HistoryLimit)
	fmt.Fprintf(out, "  attach: %v\n", cfg.Terminal.Attach)

	fmt.Fprintln(out, "watch:")
	fmt.Fprintf(out, "  debounce_ms: %d\n", cfg.Watch.DebounceMs)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  dir: %s\n", cfg.Logging.ResolveDir())
}

const defaultConfigContent = `# cellery-dev configuration

# Command lines sent to the terminals
tool:
  build_command: cellery build
  run_command: cellery run
  logs_command: cellery logs
  # The cell name prompt suggests <org_name>/<image_name>:<version>
  org_name: myorg
  image_name: hello
  version: 1.0.0
  # Instance name suggested when no file is given
  default_instance: my-instance

# tmux sessions the commands are sent to
terminal:
  # Sessions live on their own tmux socket: tmux -L cellery ls
  socket: cellery
  width: 200
  height: 50
  history_limit: 50000
  # Attach to the session after sending the command
  attach: false

# build --watch
watch:
  # Saves closer together than this trigger a single rebuild
  debounce_ms: 300

# Debug logging
logging:
  enabled: true
  # Options: debug, info, warn, error
  level: info
  # Defaults to ~/.config/cellery-dev/logs
  dir: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. $HOME/.config/%s/config.yaml\n", config.AppName)
	fmt.Fprintf(out, "  3. ./config.yaml (current directory)\n")
	fmt.Fprintf(out, "\nEnvironment variables: %s_* (e.g., %s_TOOL_BUILD_COMMAND)\n", config.EnvPrefix, config.EnvPrefix)
	return nil
}
