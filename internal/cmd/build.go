package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cellery-io/cellery-dev/internal/dispatch"
	"github.com/cellery-io/cellery-dev/internal/watch"
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Build a cell image from a cell file",
	Long: `Build prompts for a cell name and sends

  cellery build <file> <cell-name>

to the "Cellery Build" tmux session, replacing any previous build session.
The session starts in the workspace root.

With --watch the same build is sent again every time the file is saved,
until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

var (
	buildFlags actionFlags
	buildWatch bool
)

func init() {
	rootCmd.AddCommand(buildCmd)
	addActionFlags(buildCmd, &buildFlags)
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "Rebuild whenever the file is saved")
}

func runBuild(cmd *cobra.Command, args []string) error {
	if buildWatch && buildFlags.attach {
		return fmt.Errorf("--attach cannot be combined with --watch")
	}

	a, err := newApp(cmd, fileArg(args))
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	result, err := a.dispatcher.Build(ctx)
	if err != nil {
		return err
	}

	if !buildWatch {
		return a.finish(ctx, cmd, &buildFlags, result)
	}
	a.report(result)
	return a.watchBuild(ctx, result.Request)
}

// watchBuild re-sends req each time its file is saved, until ctx is done.
func (a *app) watchBuild(ctx context.Context, req dispatch.Request) error {
	w, err := watch.New(req.FilePath, a.cfg.Watch.Debounce(), a.logger)
	if err != nil {
		return err
	}

	a.notifier.ShowInfo(fmt.Sprintf("watching %s, press Ctrl+C to stop", req.FilePath))
	return w.Run(ctx, func() {
		result, err := a.dispatcher.Dispatch(ctx, req)
		if err != nil {
			a.notifier.ShowWarning(err.Error())
			return
		}
		a.notifier.ShowCommand(result.Terminal.Name(), result.CommandLine)
	})
}

func fileArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
