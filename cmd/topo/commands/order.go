package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/topo/internal/app"
)

func (c *CLI) newOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order [manifests...]",
		Short: "Print the linear build order, dependencies first",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Plan(cmd.Context(), manifestArgs(args), cmd.OutOrStdout(), app.PlanOptions{})
		},
	}
}
