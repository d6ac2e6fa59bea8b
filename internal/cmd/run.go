package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Build a cell and run an instance of it",
	Long: `Run prompts for a cell name and an instance name, then sends

  cellery build <file> <cell-name> && cellery run <cell-name> -n <instance> -d && cellery logs <instance>

to the "Cellery Run" tmux session, replacing any previous run session.
The instance name defaults to the file name without its extension.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

var runFlags actionFlags

func init() {
	rootCmd.AddCommand(runCmd)
	addActionFlags(runCmd, &runFlags)
}

func runRun(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, fileArg(args))
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.dispatcher.Run(cmd.Context())
	if err != nil {
		return err
	}
	return a.finish(cmd.Context(), cmd, &runFlags, result)
}
