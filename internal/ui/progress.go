package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cssmin/internal/batch"
	"cssmin/internal/minify"
)

var (
	barFilled = lipgloss.NewStyle().Foreground(Primary)
	barEmpty  = lipgloss.NewStyle().Foreground(Muted)
)

const barWidth = 28

// ProgressBar draws a single-line progress bar, redrawn in place on each
// advance
type ProgressBar struct {
	Out     io.Writer
	total   int
	current int
}

// NewProgressBar creates a progress bar writing to out
func NewProgressBar(out io.Writer) *ProgressBar {
	return &ProgressBar{Out: out}
}

func (p *ProgressBar) Start(total int) {
	p.total = total
	p.current = 0
	p.draw("")
}

func (p *ProgressBar) Advance(path string) {
	if p.current < p.total {
		p.current++
	}
	p.draw(filepath.Base(path))
}

func (p *ProgressBar) Finish() {
	p.draw("")
	fmt.Fprintln(p.Out)
}

func (p *ProgressBar) draw(label string) {
	fmt.Fprintf(p.Out, "\r\033[K%s", RenderBar(p.current, p.total, barWidth, label))
}

// RenderBar renders the bar for current out of total
func RenderBar(current, total, width int, label string) string {
	filled := width
	if total > 0 {
		filled = current * width / total
	}

	bar := barFilled.Render(strings.Repeat("█", filled)) +
		barEmpty.Render(strings.Repeat("░", width-filled))

	line := fmt.Sprintf(" %s %d/%d", bar, current, total)
	if label != "" {
		line += " " + MutedStyle.Render(label)
	}
	return line
}

var _ batch.Progress = (*ProgressBar)(nil)

// FormatSize formats a byte count for display
func FormatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// FormatStats formats a before/after summary
func FormatStats(s minify.Stats) string {
	return fmt.Sprintf("%s → %s (-%.1f%%)", FormatSize(s.Original), FormatSize(s.Minified), s.Ratio()*100)
}

// PrintReport prints one line per written file followed by the total
func PrintReport(report *batch.Report) {
	if len(report.Results) > 0 && report.Results[0].Output != "" {
		for _, r := range report.Results {
			PrintKeyValue(filepath.Base(r.Output), FormatStats(r.Stats))
		}
	} else {
		for _, path := range report.Written {
			PrintKeyValue(filepath.Base(path), FormatStats(report.Total))
		}
	}
	fmt.Fprintln(Out)
	PrintKeyValue("Total", FormatStats(report.Total))
}
