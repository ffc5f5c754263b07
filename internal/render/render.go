// Package render formats game output for a line-oriented terminal.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

// Renderer wraps narrative text and styles banners. One Renderer is shared
// by all sessions; it holds no per-session state.
type Renderer struct {
	width int
	lr    *lipgloss.Renderer

	titleStyle   lipgloss.Style
	victoryStyle lipgloss.Style
	deathStyle   lipgloss.Style
	noticeStyle  lipgloss.Style
}

// New creates a Renderer. width <= 0 disables wrapping and centering.
// Color output is decided here, not by sniffing the terminal, because
// network clients never share the server's stdout.
func New(width int, color bool) *Renderer {
	lr := lipgloss.NewRenderer(io.Discard)
	if color {
		lr.SetColorProfile(termenv.ANSI256)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		width: width,
		lr:    lr,

		titleStyle: lr.NewStyle().
			Foreground(lipgloss.Color("160")). // blood red
			Bold(true),

		victoryStyle: lr.NewStyle().
			Foreground(lipgloss.Color("220")). // gold
			Bold(true),

		deathStyle: lr.NewStyle().
			Foreground(lipgloss.Color("124")). // dark red
			Bold(true),

		noticeStyle: lr.NewStyle().
			Foreground(lipgloss.Color("240")), // dark grey
	}
}

// Width returns the wrap column.
func (r *Renderer) Width() int {
	return r.width
}

// Wrap word-wraps narrative text. Lines that already fit are left alone so
// art blocks keep their spacing; ANSI sequences don't count toward width.
func (r *Renderer) Wrap(s string) string {
	if r.width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if ansi.PrintableRuneWidth(line) > r.width {
			lines[i] = wordwrap.String(line, r.width)
		}
	}
	return strings.Join(lines, "\n")
}

// Center centers each line within the width and drops trailing padding.
func (r *Renderer) Center(s string) string {
	if r.width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(r.lr.PlaceHorizontal(r.width, lipgloss.Center, line), " ")
	}
	return strings.Join(lines, "\n")
}

// Banner renders the menu banner: every line centered, the title line styled.
func (r *Renderer) Banner(lines []string, title string) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		centered := r.Center(line)
		if title != "" && line == title {
			centered = strings.Replace(centered, title, r.titleStyle.Render(title), 1)
		}
		out[i] = centered
	}
	return strings.Join(out, "\n")
}

// Victory styles the winning ending.
func (r *Renderer) Victory(s string) string {
	return r.styleLines(r.victoryStyle, r.Wrap(s))
}

// Death styles the losing ending.
func (r *Renderer) Death(s string) string {
	return r.styleLines(r.deathStyle, r.Wrap(s))
}

// Notice styles out-of-game messages such as connection notices.
func (r *Renderer) Notice(s string) string {
	return r.styleLines(r.noticeStyle, s)
}

// styleLines styles line by line so the escape codes never span a newline.
func (r *Renderer) styleLines(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
