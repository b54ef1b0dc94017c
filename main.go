package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bnema/dockcmd/internal/adapters/in/cli"
	"github.com/bnema/dockcmd/internal/adapters/in/cli/ui/styles"
)

var (
	version string
	commit  string
	date    string
)

func main() {
	if version != "" {
		cli.Version = version
	}
	if commit != "" {
		cli.Commit = commit
	}
	if date != "" {
		cli.BuildDate = date
	}

	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		}
		os.Exit(1)
	}
}
