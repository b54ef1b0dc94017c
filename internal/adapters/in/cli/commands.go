package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bnema/dockcmd/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/dockcmd/internal/app"
	"github.com/bnema/dockcmd/internal/domain"
)

// newCommandsCmd creates the commands command.
func newCommandsCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "commands [command]",
		Short: "List the supported commands and their flags",
		Example: `  dockcmd commands
  dockcmd commands network create`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			_, cfg, err := loadCommandContext(cmd, opts)
			if err != nil {
				return err
			}
			vocab := app.NewAnalyzer(cfg).Vocabulary()

			if len(args) == 0 {
				if format != formatText {
					return writeStructured(cmd.OutOrStdout(), format, vocab)
				}
				return writeVocabulary(cmd.OutOrStdout(), vocab)
			}

			name := strings.Join(args, " ")
			for _, usage := range vocab {
				if usage.Command == name {
					if format != formatText {
						return writeStructured(cmd.OutOrStdout(), format, usage)
					}
					return writeUsage(cmd.OutOrStdout(), usage)
				}
			}
			return fmt.Errorf("unknown command %q, run 'dockcmd commands' for the list", name)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText, "Output format (text, json, yaml)")

	return cmd
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Theme.TableBorder).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Theme.TableHeader
			}
			return styles.Theme.TableCell
		}).
		Headers(headers...)
}

func writeVocabulary(w io.Writer, vocab []domain.CommandUsage) error {
	t := newTable("COMMAND", "USAGE", "DESCRIPTION")
	for _, u := range vocab {
		t.Row(u.Command, u.Usage, u.Summary)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func writeUsage(w io.Writer, usage domain.CommandUsage) error {
	lines := []string{
		styles.Theme.Title.Render(usage.Command),
		styles.RenderField("Usage", usage.Usage),
		styles.RenderField("Target", usage.TargetPath),
		styles.Theme.Muted.Render(usage.Summary),
	}

	if len(usage.Flags) > 0 {
		t := newTable("FLAG", "ALIASES", "VALUE", "DESCRIPTION")
		for _, f := range usage.Flags {
			t.Row(f.Name, strings.Join(f.Aliases, ", "), f.Arity, f.Usage)
		}
		lines = append(lines, t.Render())
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
