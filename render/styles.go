package render

import "github.com/charmbracelet/lipgloss"

// Color palette for verdict banners, modelled on the pack's
// tui/styles.go idiom of small named lipgloss.Style vars grouped by
// concern rather than one monolithic theme struct.
var (
	colorDiagnosable    = lipgloss.Color("#10B981") // green
	colorNotDiagnosable = lipgloss.Color("#EF4444") // red
	colorMuted          = lipgloss.Color("#6B7280") // gray
	colorLabelU         = lipgloss.Color("#F59E0B") // amber, flags uncertainty
)

var (
	diagnosableStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorDiagnosable)

	notDiagnosableStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorNotDiagnosable)

	captionStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	labelUStyle = lipgloss.NewStyle().
			Foreground(colorLabelU).
			Bold(true)
)

// colorEnabled mirrors config.Config.Color; SetColorEnabled wires it in
// from cmd/diagctl before any render call. Defaults to true so callers
// that skip the config layer (tests, library use) still get styled
// output.
var colorEnabled = true

// SetColorEnabled toggles whether the styles above apply any
// lipgloss/ANSI styling at all. When disabled, styled renders fall back
// to the bare text, so output stays readable when piped or when a
// terminal has no color support.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

func renderStyled(s lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return s.Render(text)
}
