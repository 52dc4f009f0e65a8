// Package ui holds terminal color handling for tree output.
package ui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/groblegark/treeline/internal/model"
)

// ANSI256 color codes per status category.
const (
	colorNew        = 245 // gray
	colorInProgress = 74  // blue
	colorDone       = 71  // green
	colorMuted      = 240 // dark gray, placeholders and counts
)

var noColor bool

// ShouldUseColor returns true when ANSI colors should be used on stdout.
// It respects NO_COLOR, CLICOLOR_FORCE, CLICOLOR, and TTY detection.
func ShouldUseColor() bool {
	// https://no-color.org — any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	// CLICOLOR_FORCE=1 forces color even without a TTY.
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	// CLICOLOR=0 explicitly disables color.
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	// Default: color if stdout is a terminal.
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}

// RenderStatus returns the status name colored by its category.
func RenderStatus(status string, category model.StatusCategory) string {
	if noColor || status == "" {
		return status
	}
	code := colorNew
	switch category {
	case model.CategoryInProgress:
		code = colorInProgress
	case model.CategoryDone:
		code = colorDone
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, status)
}

// RenderMuted returns s in the muted (gray) color, for placeholders and
// omitted-children counts.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}
