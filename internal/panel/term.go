package panel

import (
	"os"

	"golang.org/x/term"
)

// DetectWidth returns the terminal width of f, or fallback when f is not a
// terminal.
func DetectWidth(f *os.File, fallback int) int {
	if !IsTerminal(f) {
		return fallback
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width < 1 {
		return fallback
	}

	return width
}

func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
