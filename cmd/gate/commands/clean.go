package commands

import (
	"time"

	"github.com/spf13/cobra"
)

// timeRounding keeps printed durations readable.
const timeRounding = time.Millisecond

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the dependency cache",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.app.Clean()
		},
	}
}
