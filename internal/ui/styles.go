package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Out receives everything the print helpers write
var Out io.Writer = os.Stdout

var (
	Primary = lipgloss.Color("#0EA5E9")
	Success = lipgloss.Color("#10B981")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")
	Muted   = lipgloss.Color("#6B7280")
	Light   = lipgloss.Color("#E5E7EB")

	MutedStyle = lipgloss.NewStyle().Foreground(Muted)
	KeyStyle   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	ValueStyle = lipgloss.NewStyle().Foreground(Light)
)

// status is the mark and style of one kind of message line
type status struct {
	mark  string
	style lipgloss.Style
}

var (
	statusInfo    = status{"•", lipgloss.NewStyle().Foreground(Primary)}
	statusSuccess = status{"✓", lipgloss.NewStyle().Foreground(Success).Bold(true)}
	statusWarning = status{"⚠", lipgloss.NewStyle().Foreground(Warning)}
	statusError   = status{"✗", lipgloss.NewStyle().Foreground(Error).Bold(true)}
)

func (s status) print(format string, args ...interface{}) {
	fmt.Fprintln(Out, s.style.Render(s.mark+" "+fmt.Sprintf(format, args...)))
}

func PrintInfo(format string, args ...interface{})    { statusInfo.print(format, args...) }
func PrintSuccess(format string, args ...interface{}) { statusSuccess.print(format, args...) }
func PrintWarning(format string, args ...interface{}) { statusWarning.print(format, args...) }
func PrintError(format string, args ...interface{})   { statusError.print(format, args...) }

// PrintKeyValue prints an indented "key: value" line
func PrintKeyValue(key, value string) {
	fmt.Fprintf(Out, "  %s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// Header returns the banner block shown before a run and in the help text
func Header(version string) string {
	divider := MutedStyle.Render(strings.Repeat("─", 41))
	title := lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(`
 █▀▀ █▀▀ █▀▀ █▀▄▀█ ▀█▀ █▄  █
 █   ▀▀█ ▀▀█ █ ▀ █  █  █ ▀▄█
 ▀▀▀ ▀▀▀ ▀▀▀ ▀   ▀ ▀▀▀ ▀   ▀`)

	return divider + "\n" + title + "\n" + ValueStyle.Render(" Version: "+version) + "\n\n" + divider
}

// PrintHeader prints the banner block surrounded by blank lines
func PrintHeader(version string) {
	fmt.Fprintf(Out, "\n%s\n\n", Header(version))
}
