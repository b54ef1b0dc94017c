package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/bnema/dockcmd/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/dockcmd/internal/domain"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want text, json or yaml)", format)
	}
}

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return validateFormat(format)
	}
}

// quoteArgs renders arguments so they can be pasted back into a shell.
func quoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t'\"\\") {
			quoted[i] = strconv.Quote(a)
		} else {
			quoted[i] = a
		}
	}
	return strings.Join(quoted, " ")
}

func writeAnalysis(w io.Writer, analysis *domain.Analysis) error {
	options, err := yaml.Marshal(analysis.Command.Options)
	if err != nil {
		return fmt.Errorf("failed to render options: %w", err)
	}

	lines := []string{
		styles.RenderField("Command", analysis.Command.Kind.String()),
		styles.RenderField("Target", analysis.Request.TargetPath),
		styles.RenderField("Arguments", quoteArgs(analysis.Request.Arguments)),
		styles.Theme.Label.Render("Options"),
	}
	for _, line := range strings.Split(strings.TrimRight(string(options), "\n"), "\n") {
		lines = append(lines, "  "+styles.Theme.Flag.Render(line))
	}

	_, err = fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func writeResult(w io.Writer, result *domain.DispatchResult) error {
	if _, err := color.New(color.FgGreen).Fprintf(w, "%s %s\n", styles.IconSuccess, result.TargetPath); err != nil {
		return err
	}
	for _, id := range result.IDs {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}

	if result.Payload == nil {
		return nil
	}
	if rendered, ok := renderedTemplates(result.Payload); ok {
		for _, r := range rendered {
			if _, err := fmt.Fprintln(w, strings.TrimRight(r, "\n")); err != nil {
				return err
			}
		}
		return nil
	}
	return writeStructured(w, formatJSON, result.Payload)
}

// renderedTemplates returns the payload entries when every one of them is
// already rendered text, as produced by inspect --format.
func renderedTemplates(payload any) ([]string, bool) {
	items, ok := payload.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// reportError prints analysis errors with a caret under the offending
// position and returns errReported. Other errors are returned unchanged.
func reportError(w io.Writer, raw string, err error) error {
	ae, ok := domain.AsAnalysisError(err)
	if !ok {
		return err
	}

	lines := []string{styles.RenderError(ae.Error())}
	if ae.Position != domain.NoPosition {
		line := strings.ReplaceAll(raw, "\t", " ")
		pos := min(ae.Position, len(line))
		lines = append(lines,
			"  "+line,
			"  "+strings.Repeat(" ", lipgloss.Width(line[:pos]))+styles.Theme.Caret.Render(styles.IconCaret),
		)
	}

	if _, werr := fmt.Fprintln(w, strings.Join(lines, "\n")); werr != nil {
		return werr
	}
	return fmt.Errorf("%w: %w", errReported, err)
}
