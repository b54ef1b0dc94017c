package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/dockcmd/internal/app"
	"github.com/bnema/dockcmd/internal/logging"
)

// loadCommandContext loads the config and attaches a stderr logger at the
// CLI log level to ctx.
func loadCommandContext(cmd *cobra.Command, opts *rootOptions) (context.Context, app.Config, error) {
	cfg, err := app.LoadConfig(opts.configPath)
	if err != nil {
		return nil, app.Config{}, err
	}

	logCfg := cfg.LoggingConfig()
	logCfg.Level = opts.logLevel
	logCfg.Format = "console"
	log := logging.NewWithWriter(logCfg, cmd.ErrOrStderr())

	return logging.WithCtx(cmd.Context(), log), cfg, nil
}

// readCommand joins args into one command line, or reads it from r when no
// args are given.
func readCommand(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read command from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
