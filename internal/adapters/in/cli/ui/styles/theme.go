// Package styles provides the lipgloss theme used by the dockcmd CLI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	ColorPrimary   = lipgloss.Color("#1ac5ff")
	ColorAccent    = lipgloss.Color("#a78bfa")
	ColorSuccess   = lipgloss.Color("#00cc6a")
	ColorWarning   = lipgloss.Color("#fbbf24")
	ColorError     = lipgloss.Color("#ff4444")
	ColorText      = lipgloss.Color("#e5e5e5")
	ColorTextMuted = lipgloss.Color("#737373")
	ColorBorder    = lipgloss.Color("#404040")
)

// Status markers. Plain characters so output stays readable without a
// Nerd Font.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconCaret   = "^"
	IconBullet  = "▸"
)

// Theme contains the composed styles of the CLI.
var Theme = struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Flag    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Caret   lipgloss.Style

	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableBorder lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary),

	Label: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Width(11),

	Value: lipgloss.NewStyle().
		Foreground(ColorText),

	Muted: lipgloss.NewStyle().
		Foreground(ColorTextMuted),

	Flag: lipgloss.NewStyle().
		Foreground(ColorAccent),

	Success: lipgloss.NewStyle().
		Foreground(ColorSuccess),

	Error: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorError),

	Caret: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWarning),

	TableHeader: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1),

	TableCell: lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1),

	TableBorder: lipgloss.NewStyle().
		Foreground(ColorBorder),
}

// RenderField renders one "label value" line.
func RenderField(label, value string) string {
	return Theme.Label.Render(label) + " " + Theme.Value.Render(value)
}

// RenderError returns a styled error message.
func RenderError(msg string) string {
	return Theme.Error.Render(IconError + " " + msg)
}

// RenderSuccess returns a styled success message.
func RenderSuccess(msg string) string {
	return Theme.Success.Render(IconSuccess + " " + msg)
}

// RenderListItem returns a formatted list item with bullet.
func RenderListItem(item string) string {
	return Theme.Muted.Render(IconBullet) + " " + Theme.Value.Render(item)
}
