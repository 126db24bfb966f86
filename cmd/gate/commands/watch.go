package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [gates...]",
		Short: "Run the matching gates, then re-run them on file changes",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := runOptions(cmd)
			if err != nil {
				return err
			}
			opts.Gates = args
			return c.app.Watch(cmd.Context(), opts)
		},
	}
	addRunFlags(cmd)
	return cmd
}
