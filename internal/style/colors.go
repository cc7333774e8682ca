package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IsTerminal returns true if stdout is connected to a terminal (TTY).
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// UseColor determines if ANSI color codes should be used.
// Respects NO_COLOR (https://no-color.org/), CLICOLOR, and CLICOLOR_FORCE.
func UseColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if _, exists := os.LookupEnv("CLICOLOR_FORCE"); exists {
		return true
	}
	if !IsTerminal() {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// TermWidth returns the terminal width, or fallback when stdout isn't a TTY.
func TermWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

var (
	runningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	hungStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	completedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	terminatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
)

// Status colors a session status word for table output.
// Falls back to the bare word when color is disabled.
func Status(status string) string {
	if !UseColor() {
		return status
	}
	switch status {
	case "running":
		return runningStyle.Render(status)
	case "hung":
		return hungStyle.Render(status)
	case "completed":
		return completedStyle.Render(status)
	case "terminated":
		return terminatedStyle.Render(status)
	default:
		return status
	}
}

var titleCaser = cases.Title(language.English)

// TitleWords renders an agent type label ("debug_assistant") as a
// display name ("Debug Assistant") for listings without one.
func TitleWords(label string) string {
	out := make([]byte, len(label))
	copy(out, label)
	for i := range out {
		if out[i] == '_' || out[i] == '-' {
			out[i] = ' '
		}
	}
	return titleCaser.String(string(out))
}
