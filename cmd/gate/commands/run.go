package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/gate/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [gates...]",
		Short: "Run the gates matching the current event",
		Long: `Run resolves the trigger event from the enclosing git repository,
selects every gate whose trigger matches, and runs the selected gates in
parallel. Naming gates restricts the run to those gates.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := runOptions(cmd)
			if err != nil {
				return err
			}
			opts.Gates = args
			return c.app.Run(cmd.Context(), opts)
		},
	}
	addRunFlags(cmd)
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("event", "e", "", "Event type to simulate (push or pull_request)")
	cmd.Flags().StringP("branch", "b", "", "Branch the event targets (default: repository HEAD)")
	cmd.Flags().IntP("parallelism", "j", 0, "Maximum gates running at once (default: number of CPUs)")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the dependency cache")
	cmd.Flags().String("progress", "auto", "Renderer to use: auto, plain or rich")
}

func runOptions(cmd *cobra.Command) (app.RunOptions, error) {
	event, _ := cmd.Flags().GetString("event")
	branch, _ := cmd.Flags().GetString("branch")
	parallelism, _ := cmd.Flags().GetInt("parallelism")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	progress, _ := cmd.Flags().GetString("progress")

	return app.RunOptions{
		Event:       event,
		Branch:      branch,
		Parallelism: parallelism,
		NoCache:     noCache,
		Progress:    app.Progress(progress),
	}, nil
}
