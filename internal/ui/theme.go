// Package ui renders hostdiag output for terminals
package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Cyan   = "\033[36m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Red    = "\033[31m"
)

// Box drawing characters
const (
	BoxTopLeft     = "╭"
	BoxTopRight    = "╮"
	BoxBottomLeft  = "╰"
	BoxBottomRight = "╯"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)

var colorEnabled = true

func init() {
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		colorEnabled = false
	}
	if !isTerminal(os.Stdout) {
		colorEnabled = false
	}
}

// SetNoColor disables color output
func SetNoColor(disable bool) {
	if disable {
		colorEnabled = false
	}
}

// Color wraps text with an ANSI color code
func Color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + Reset
}

// LoadColor picks green, yellow or red for a utilization percentage
func LoadColor(percent float64) string {
	switch {
	case percent >= 90:
		return Red
	case percent >= 70:
		return Yellow
	default:
		return Green
	}
}

// isTerminal reports whether w is backed by a terminal file descriptor
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
