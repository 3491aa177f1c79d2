package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/topo/internal/app"
)

func (c *CLI) newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels [manifests...]",
		Short: "Print the build order grouped into parallel levels",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Plan(cmd.Context(), manifestArgs(args), cmd.OutOrStdout(), app.PlanOptions{Levels: true})
		},
	}
}
