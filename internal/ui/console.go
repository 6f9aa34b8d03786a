// Package ui renders the run's progress on stdout. Structured logs go to
// stderr through logx; this package is the human-facing surface.
package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"

	"xsched/internal/posts"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 2)

	postStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("45"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	summaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))
)

const timeLayout = "2006-01-02 03:04 PM"

// Printer writes styled status lines. The zero value is unusable; use New.
type Printer struct {
	w io.Writer
}

func New(w io.Writer) *Printer { return &Printer{w: w} }

// Banner opens the run with the effective settings.
func (p *Printer) Banner(postsDir string, first time.Time, every time.Duration) {
	body := titleStyle.Render("xsched") + "\n\n" +
		fmt.Sprintf("Posts directory: %s\n", postsDir) +
		fmt.Sprintf("First post:      %s\n", first.Format(timeLayout)) +
		fmt.Sprintf("Interval:        %s", every)
	fmt.Fprintln(p.w, panelStyle.Render(body))
}

// Discovered lists every post that will be processed.
func (p *Printer) Discovered(list []posts.Scheduled) {
	fmt.Fprintln(p.w, okStyle.Render(fmt.Sprintf("Found %d post(s)", len(list))))
	for _, s := range list {
		media := "no media"
		if s.Post.MediaPath != "" {
			media = filepath.Base(s.Post.MediaPath)
		}
		text := "no text"
		if s.Post.Text != "" {
			text = fmt.Sprintf("%d chars", len(s.Post.Text))
		}
		line := fmt.Sprintf("  %d. %s + %s", s.Post.Num, media, text)
		if s.Post.ScheduleRaw != "" {
			line += dimStyle.Render(fmt.Sprintf(" [custom: %s]", s.Post.ScheduleRaw))
		}
		fmt.Fprintln(p.w, line)
	}
}

// NoPosts explains the expected layout when discovery comes up empty.
func (p *Printer) NoPosts(postsDir string) {
	fmt.Fprintln(p.w, failStyle.Render(fmt.Sprintf("No posts found in %q", postsDir)))
	fmt.Fprintln(p.w, warnStyle.Render("Expected structure:"))
	fmt.Fprintln(p.w, "  Option 1: posts/1/anything.jpg + posts/1/anything.txt")
	fmt.Fprintln(p.w, "  Option 2: posts/1.png + posts/1.txt")
	fmt.Fprintln(p.w, "  Custom schedule: posts/1/schedule.txt containing '10PM 30-11-2025'")
	fmt.Fprintln(p.w, dimStyle.Render("Supported media: .png .jpg .jpeg .gif .webp .mp4 (+ optional .txt)"))
}

func (p *Printer) PostStart(num int, at time.Time) {
	fmt.Fprintln(p.w, postStyle.Render(fmt.Sprintf("Post #%d", num))+
		dimStyle.Render(fmt.Sprintf("  scheduling for %s", at.Format(timeLayout))))
}

func (p *Printer) PostScheduled(num int) {
	fmt.Fprintln(p.w, okStyle.Render(fmt.Sprintf("  ✓ Post #%d scheduled successfully", num)))
}

func (p *Printer) PostFailed(num int, reason string) {
	fmt.Fprintln(p.w, failStyle.Render(fmt.Sprintf("  ✗ Post #%d failed: %s", num, reason)))
}

func (p *Printer) Interrupted() {
	fmt.Fprintln(p.w, warnStyle.Render("Interrupted; stopping before the next post"))
}

func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintln(p.w, fmt.Sprintf(format, args...))
}

// Summary closes the run with the tally.
func (p *Printer) Summary(ok, total int) {
	style := summaryStyle
	if ok < total {
		style = warnStyle
	}
	fmt.Fprintln(p.w, style.Render(fmt.Sprintf("Completed: %d/%d posts scheduled successfully", ok, total)))
}
