package cli

import (
	"github.com/spf13/cobra"

	"github.com/bnema/dockcmd/internal/app"
)

// newServeCmd creates the serve command.
func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dockcmd HTTP API",
		Long: `Start the HTTP API. Commands are analyzed at POST /api/commands/analyze;
when engine.enabled is set they can also be executed at POST /api/commands/execute.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts.configPath)
		},
	}
}
