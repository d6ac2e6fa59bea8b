package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cellery-io/cellery-dev/internal/config"
	"github.com/cellery-io/cellery-dev/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "cellery-dev",
	Short: "Build and run Cellery cells from the command line",
	Long: `cellery-dev sends cellery build and run commands to dedicated tmux
sessions, one per action. Running an action again replaces its session,
so the latest output is always in the same place.

Attach to a session with:
  tmux -L cellery attach -t cellery-build`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Missing input is reported by the action
// itself, so only other errors are printed here.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.IsUserFacing(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/cellery-dev/config.yaml)")
	rootCmd.PersistentFlags().StringP("workspace", "w", "", "workspace root (default is the git top-level or the current directory)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/" + config.AppName)
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(config.EnvPrefix)
	// Replace dots with underscores for nested keys in env vars
	// e.g., CELLERY_DEV_TOOL_BUILD_COMMAND for tool.build_command
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
