package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/cellery-io/cellery-dev/internal/config"
	"github.com/cellery-io/cellery-dev/internal/dispatch"
	"github.com/cellery-io/cellery-dev/internal/tmux"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Kill the build and run tmux sessions",
	Long: `Cleanup kills the "Cellery Build" and "Cellery Run" tmux sessions on the
configured socket. Other sessions on the socket are left alone.

Use --dry-run to see what would be killed without making changes.`,
	Args: cobra.NoArgs,
	RunE: runCleanup,
}

var cleanupDryRun bool

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "Show what would be cleaned up without making changes")
}

// sessionKiller is the part of tmux.Factory cleanup needs.
type sessionKiller interface {
	SocketName() string
	ListSessions(ctx context.Context) ([]string, error)
	KillSession(ctx context.Context, name string) error
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	if !tmux.Available() {
		fmt.Fprintln(cmd.OutOrStdout(), "tmux not found, nothing to clean up")
		return nil
	}

	return cleanupSessions(cmd.Context(), cmd.OutOrStdout(), tmux.NewFactory(cfg.Terminal, logger), cleanupDryRun)
}

// actionSessionNames returns the tmux session names owned by the actions.
func actionSessionNames() []string {
	var names []string
	for _, action := range dispatch.Actions() {
		names = append(names, tmux.SessionName(action.TerminalTitle()))
	}
	return names
}

func cleanupSessions(ctx context.Context, out io.Writer, k sessionKiller, dryRun bool) error {
	existing, err := k.ListSessions(ctx)
	if err != nil {
		return err
	}

	var targets []string
	for _, name := range actionSessionNames() {
		if slices.Contains(existing, name) {
			targets = append(targets, name)
		}
	}

	if len(targets) == 0 {
		fmt.Fprintf(out, "No cellery-dev sessions on socket %q.\n", k.SocketName())
		return nil
	}

	if dryRun {
		fmt.Fprintln(out, "Would kill:")
		for _, name := range targets {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return nil
	}

	var failed int
	for _, name := range targets {
		if err := k.KillSession(ctx, name); err != nil {
			fmt.Fprintf(out, "Failed to kill %s: %v\n", name, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "Killed %s\n", name)
	}
	if failed > 0 {
		return fmt.Errorf("failed to kill %d session(s)", failed)
	}
	return nil
}
