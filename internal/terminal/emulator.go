// Package terminal launches agent workloads in OS terminal-emulator
// windows. Each supported emulator has its own CLI dialect for title,
// geometry, and command arguments.
package terminal

import (
	"errors"
	"fmt"
	"os/exec"
)

// Emulator identifies a supported terminal emulator.
type Emulator string

const (
	GnomeTerminal Emulator = "gnome-terminal"
	Xterm         Emulator = "xterm"
	Konsole       Emulator = "konsole"
	Terminator    Emulator = "terminator"
	Tilix         Emulator = "tilix"
)

// detectionOrder is the preference order when the caller doesn't ask for
// a specific emulator.
var detectionOrder = []Emulator{GnomeTerminal, Xterm, Konsole, Terminator, Tilix}

// ErrNoEmulator is returned when no supported terminal emulator binary
// is installed.
var ErrNoEmulator = errors.New("no terminal emulator available")

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Detect returns the installed emulators in preference order.
// Call once at startup; PATH churn mid-run is not worth re-probing for.
func Detect() []Emulator {
	var found []Emulator
	for _, e := range detectionOrder {
		if _, err := lookPath(string(e)); err == nil {
			found = append(found, e)
		}
	}
	return found
}

// Pick resolves the emulator to use: the preference if given and
// installed, otherwise the first detected one.
func Pick(available []Emulator, preference Emulator) (Emulator, error) {
	if preference != "" {
		for _, e := range available {
			if e == preference {
				return e, nil
			}
		}
		return "", fmt.Errorf("%w: %s not installed", ErrNoEmulator, preference)
	}
	if len(available) == 0 {
		return "", ErrNoEmulator
	}
	return available[0], nil
}

// Window describes the window an emulator should open.
type Window struct {
	Title    string
	Geometry string // "COLSxROWS"
	X, Y     int
}

// Command builds the emulator invocation that runs argv inside a new
// window. argv is passed through as discrete arguments; nothing is ever
// interpolated into shell text.
func Command(e Emulator, w Window, argv []string) []string {
	geom := w.Geometry
	placed := fmt.Sprintf("%s+%d+%d", w.Geometry, w.X, w.Y)

	switch e {
	case GnomeTerminal:
		cmd := []string{"gnome-terminal", "--window", "--title", w.Title, "--geometry", placed, "--"}
		return append(cmd, argv...)
	case Konsole:
		cmd := []string{"konsole", "--new-tab", "-p", "tabtitle=" + w.Title, "-e"}
		return append(cmd, argv...)
	case Terminator:
		cmd := []string{"terminator", "--title", w.Title, "--geometry", placed, "-x"}
		return append(cmd, argv...)
	case Tilix:
		cmd := []string{"tilix", "--title", w.Title, "--geometry", geom, "-e"}
		return append(cmd, argv...)
	default:
		// xterm dialect. Unrecognized emulators get the same flags
		// under their own binary name; most xterm descendants accept them.
		cmd := []string{string(e), "-title", w.Title, "-geometry", placed, "-e"}
		return append(cmd, argv...)
	}
}
