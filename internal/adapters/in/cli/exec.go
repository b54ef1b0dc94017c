package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/dockcmd/internal/app"
	"github.com/bnema/dockcmd/internal/boundaries/in"
	"github.com/bnema/dockcmd/internal/usecase/executor"
)

// newExecCmd creates the exec command.
func newExecCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "exec [command...]",
		Short: "Analyze a docker command and run it against the engine",
		Long: `Analyze a docker-style command line and, when it is valid, run it against
the Docker engine configured by engine.host (or DOCKER_HOST). Containers
started by 'run' are always detached.`,
		Example: `  dockcmd exec run -d --name web -p 8080:80 nginx
  dockcmd exec network ls -q
  dockcmd exec inspect -f '{{.Name}}' web`,
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

			runtime, err := app.NewEngine(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = runtime.Close() }()

			exec := executor.NewService(app.NewAnalyzer(cfg), runtime)
			return runExec(ctx, exec, cmd.OutOrStdout(), cmd.ErrOrStderr(), raw, format)
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&format, "output", "o", formatText, "Output format (text, json, yaml)")

	return cmd
}

func runExec(ctx context.Context, exec in.CommandExecutor, out, errOut io.Writer, raw, format string) error {
	result, err := exec.Execute(ctx, raw)
	if err != nil {
		return reportError(errOut, raw, err)
	}

	if format != formatText {
		return writeStructured(out, format, result)
	}
	return writeResult(out, result)
}
