// Package console is the user-facing output sink. Components receive a Sink
// explicitly instead of printing to a shared global console.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/mwiater/tccc/internal/util"
)

// Style selects how an emitted message is rendered.
type Style int

const (
	// StylePlain prints the message as-is.
	StylePlain Style = iota
	// StyleBanner is a bold headline.
	StyleBanner
	// StyleSuccess reports a completed step.
	StyleSuccess
	// StyleInfo reports progress.
	StyleInfo
	// StyleWarning reports a recoverable condition.
	StyleWarning
	// StyleError reports a failure.
	StyleError
	// StyleDim is secondary detail such as sources and timings.
	StyleDim
	// StyleQuery echoes a routine query.
	StyleQuery
	// StyleUrgentQuery echoes an urgent query.
	StyleUrgentQuery
	// StylePanel frames a routine response.
	StylePanel
	// StyleUrgentPanel frames an urgent response.
	StyleUrgentPanel
	// StylePrompt is an input prompt; no newline is written after it.
	StylePrompt
)

var styleNames = map[Style]string{
	StylePlain:       "plain",
	StyleBanner:      "banner",
	StyleSuccess:     "success",
	StyleInfo:        "info",
	StyleWarning:     "warning",
	StyleError:       "error",
	StyleDim:         "dim",
	StyleQuery:       "query",
	StyleUrgentQuery: "urgent-query",
	StylePanel:       "panel",
	StyleUrgentPanel: "urgent-panel",
	StylePrompt:      "prompt",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// Sink receives every message shown to the user.
type Sink interface {
	Emit(message string, style Style)
}

const (
	panelTitle       = "📋 TCCC Guidance"
	urgentPanelTitle = "🚨 URGENT MEDICAL GUIDANCE"
	defaultWidth     = 80
)

// Terminal renders emissions to a writer using ANSI colours and bordered panels.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	width  int
	plain  bool
	colors map[Style]*color.Color
}

// NewTerminal returns a Terminal writing to out. When plain is true no ANSI
// sequences are written.
func NewTerminal(out io.Writer, plain bool) *Terminal {
	t := &Terminal{
		out:   out,
		width: defaultWidth,
		plain: plain,
		colors: map[Style]*color.Color{
			StyleBanner:      color.New(color.FgGreen, color.Bold),
			StyleSuccess:     color.New(color.FgGreen),
			StyleInfo:        color.New(color.Reset),
			StyleWarning:     color.New(color.FgYellow),
			StyleError:       color.New(color.FgRed),
			StyleDim:         color.New(color.Faint),
			StyleQuery:       color.New(color.FgYellow),
			StyleUrgentQuery: color.New(color.FgRed, color.Bold),
			StylePrompt:      color.New(color.Bold),
		},
	}
	if plain {
		for _, c := range t.colors {
			c.DisableColor()
		}
	}
	return t
}

// SetWidth changes the panel width.
func (t *Terminal) SetWidth(width int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if width > 10 {
		t.width = width
	}
}

// Emit writes message in the given style.
func (t *Terminal) Emit(message string, style Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch style {
	case StylePanel, StyleUrgentPanel:
		fmt.Fprintln(t.out, t.renderPanel(message, style == StyleUrgentPanel))
	case StylePrompt:
		t.colors[style].Fprint(t.out, message)
	case StylePlain:
		fmt.Fprintln(t.out, message)
	default:
		c, ok := t.colors[style]
		if !ok {
			fmt.Fprintln(t.out, message)
			return
		}
		c.Fprintln(t.out, message)
	}
}

func (t *Terminal) renderPanel(body string, urgent bool) string {
	title := panelTitle
	border := lipgloss.Color("2")
	if urgent {
		title = urgentPanelTitle
		border = lipgloss.Color("9")
	}

	inner := t.width - 4
	content := util.WrapToWidth(strings.TrimSpace(body), inner)

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(inner + 2)
	titleStyle := lipgloss.NewStyle()
	if !t.plain {
		style = style.BorderForeground(border)
		titleStyle = titleStyle.Bold(true).Foreground(border)
	}

	rule := strings.Repeat("=", t.width)
	return rule + "\n" + style.Render(titleStyle.Render(title)+"\n\n"+content)
}

// Emission is one captured Emit call.
type Emission struct {
	Message string
	Style   Style
}

// Recorder is a Sink that keeps every emission in memory.
type Recorder struct {
	mu        sync.Mutex
	emissions []Emission
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit records the message.
func (r *Recorder) Emit(message string, style Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emissions = append(r.emissions, Emission{Message: message, Style: style})
}

// Emissions returns a copy of everything recorded so far.
func (r *Recorder) Emissions() []Emission {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Emission, len(r.emissions))
	copy(out, r.emissions)
	return out
}

// WithStyle returns the messages recorded in style, in order.
func (r *Recorder) WithStyle(style Style) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.emissions {
		if e.Style == style {
			out = append(out, e.Message)
		}
	}
	return out
}

// Contains reports whether any recorded message contains substr.
func (r *Recorder) Contains(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.emissions {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
