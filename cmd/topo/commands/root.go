// Package commands implements the CLI commands for the topo planner.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/topo/internal/app"
)

// DefaultManifest is the manifest file used when no path is given.
const DefaultManifest = "versions.toml"

// CLI represents the command line interface for topo.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "topo",
		Short:         "Deterministic build-order planner for multi-repo release manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newOrderCmd())
	rootCmd.AddCommand(c.newLevelsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut sets the writer for command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}

// manifestArgs applies the default manifest when no paths were given.
func manifestArgs(args []string) []string {
	if len(args) == 0 {
		return []string{DefaultManifest}
	}
	return args
}
