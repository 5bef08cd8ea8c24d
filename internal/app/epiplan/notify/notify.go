// Package notify has transient user feedback: toasts, busy indicator, alerts and
// the yes/no gate in front of destructive actions.
package notify

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// confirmation prompts
const (
	PromptClear  = "Are you sure you want to clear the form? Any unsaved changes will be lost."
	PromptDelete = "Are you sure you want to delete this episode? This action cannot be undone."
)

// Notifier shows transient feedback
type Notifier interface {
	Success(msg string)
	Alert(msg string)
	Busy(on bool)
}

// Confirmer asks yes/no before destructive actions
type Confirmer interface {
	Confirm(prompt string) bool
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Terminal notifier and confirmer for command line use
type Terminal struct {
	Out       io.Writer
	Err       io.Writer
	In        io.Reader
	Color     bool
	AssumeYes bool
}

// NewTerminal makes terminal notifier on std streams, colored when stdout is a terminal
func NewTerminal(assumeYes bool) *Terminal {
	fd := os.Stdout.Fd()
	return &Terminal{
		Out:       os.Stdout,
		Err:       os.Stderr,
		In:        os.Stdin,
		Color:     isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		AssumeYes: assumeYes,
	}
}

// Success prints message
func (t *Terminal) Success(msg string) {
	fmt.Fprintln(t.Out, t.paint(successStyle, "✓ "+msg))
}

// Alert prints message to stderr
func (t *Terminal) Alert(msg string) {
	fmt.Fprintln(t.Err, t.paint(alertStyle, msg))
}

// Busy prints progress note when switched on
func (t *Terminal) Busy(on bool) {
	if on {
		fmt.Fprintln(t.Err, t.paint(mutedStyle, "working..."))
	}
}

// Confirm asks on stdin, anything but y/yes declines
func (t *Terminal) Confirm(prompt string) bool {
	if t.AssumeYes {
		return true
	}
	fmt.Fprintf(t.Out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(t.In).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (t *Terminal) paint(style lipgloss.Style, s string) string {
	if !t.Color {
		return s
	}
	return style.Render(s)
}

// Answer is a one-shot Confirmer for event loops that collect the answer first
// and run the gated action afterwards
type Answer struct {
	given bool
	yes   bool
}

// Give records the answer for the next Confirm
func (a *Answer) Give(yes bool) {
	a.given, a.yes = true, yes
}

// Confirm returns recorded answer once, declines when nothing was given
func (a *Answer) Confirm(string) bool {
	yes := a.given && a.yes
	a.given, a.yes = false, false
	return yes
}
