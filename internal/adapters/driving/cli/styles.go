package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette used for terminal output.
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan
	colorMuted     = lipgloss.Color("#6C7086") // Medium gray
	colorSuccess   = lipgloss.Color("#A6E3A1") // Green
	colorWarning   = lipgloss.Color("#F9E2AF") // Yellow
)

// styles holds the lipgloss styles for one output stream.
type styles struct {
	Title   lipgloss.Style
	Node    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
}

// stylesFor returns colour styles when w is a terminal and plain ones otherwise.
func stylesFor(w io.Writer) styles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return styles{Title: plain, Node: plain, Muted: plain, Success: plain, Warning: plain}
	}
	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Node:    lipgloss.NewStyle().Foreground(colorSecondary),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Success: lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),
		Warning: lipgloss.NewStyle().Foreground(colorWarning),
	}
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
