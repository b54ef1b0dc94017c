// Package cli implements the CLI adapter for dockcmd.
// This package provides Cobra commands that delegate to the app layer.
package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// errReported is returned once a command has already printed its own
// failure, so main only sets the exit code.
var errReported = errors.New("error already reported")

// IsReported reports whether err was already printed by the command.
func IsReported(err error) bool {
	return errors.Is(err, errReported)
}

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCmd creates the root command for the dockcmd CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "dockcmd",
		Short: "dockcmd - Docker command analyzer",
		Long: `dockcmd checks docker-style command lines against a fixed vocabulary,
fills in network defaults and turns them into structured engine requests.

Commands can be analyzed offline, executed against a local Docker engine,
or submitted to the HTTP API started with 'dockcmd serve'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level for CLI commands (debug, info, warn, error)")

	rootCmd.AddCommand(newAnalyzeCmd(opts))
	rootCmd.AddCommand(newExecCmd(opts))
	rootCmd.AddCommand(newCommandsCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				cmd.Println(Version)
				return
			}
			cmd.Printf("dockcmd %s\n", Version)
			cmd.Printf("Commit: %s\n", Commit)
			cmd.Printf("Built: %s\n", BuildDate)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Show only version number")

	return cmd
}
