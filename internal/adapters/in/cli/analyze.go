package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/dockcmd/internal/app"
	"github.com/bnema/dockcmd/internal/boundaries/in"
)

// newAnalyzeCmd creates the analyze command.
func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "analyze [command...]",
		Short: "Analyze a docker command without running it",
		Long: `Analyze a docker-style command line and print the normalized command and
the engine request it maps to. Arguments are joined with spaces; quote the
whole command to keep its own quoting intact. With no arguments the command
is read from stdin.`,
		Example: `  dockcmd analyze run --rm -p 8080:80 nginx
  dockcmd analyze -o json 'run --name "my app" nginx'
  echo 'network create appnet' | dockcmd analyze -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			ctx, cfg, err := loadCommandContext(cmd, opts)
			if err != nil {
				return err
			}
			raw, err := readCommand(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return runAnalyze(ctx, app.NewAnalyzer(cfg), cmd.OutOrStdout(), cmd.ErrOrStderr(), raw, format)
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&format, "output", "o", formatText, "Output format (text, json, yaml)")

	return cmd
}

func runAnalyze(ctx context.Context, analyzer in.CommandAnalyzer, out, errOut io.Writer, raw, format string) error {
	analysis, err := analyzer.Analyze(ctx, raw)
	if err != nil {
		return reportError(errOut, raw, err)
	}

	if format != formatText {
		return writeStructured(out, format, analysis)
	}
	return writeAnalysis(out, analysis)
}
