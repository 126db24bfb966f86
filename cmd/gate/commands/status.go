package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/gate/internal/core/domain"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the result of the latest run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Status()
			if err != nil {
				return err
			}
			if report == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
				return nil
			}
			printReport(cmd, report)
			return nil
		},
	}
}

func printReport(cmd *cobra.Command, report *domain.RunReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s (%s on %q) took %v\n",
		report.ID, report.Event.Type, report.Event.Branch, report.Duration.Round(timeRounding))
	if report.CacheKey != "" {
		fmt.Fprintf(out, "cache key %s\n", report.CacheKey)
	}
	for _, res := range report.Results {
		fmt.Fprintf(out, "  %-12s %-10s %v\n", res.Gate, res.Status, res.Duration.Round(timeRounding))
		if res.Error != "" {
			fmt.Fprintf(out, "    %s\n", res.Error)
		}
	}
}
