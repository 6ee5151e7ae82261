package console

import (
	"bytes"
	"strings"
	"testing"
)

// TestTerminalPlainLines verifies plain mode writes messages without ANSI escapes.
func TestTerminalPlainLines(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, true)

	term.Emit("Searching TCCC handbook...", StyleInfo)
	term.Emit("No relevant handbook content found", StyleWarning)
	term.Emit("TCCC Query: ", StylePrompt)

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI sequences in plain mode, got %q", out)
	}
	want := "Searching TCCC handbook...\nNo relevant handbook content found\nTCCC Query: "
	if out != want {
		t.Fatalf("unexpected output:\nwant %q\ngot  %q", want, out)
	}
}

// TestTerminalPanels verifies routine and urgent responses get distinct titles inside a border.
func TestTerminalPanels(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, true)
	term.SetWidth(40)

	term.Emit("Apply a tourniquet high and tight.", StylePanel)
	routine := buf.String()
	if !strings.Contains(routine, panelTitle) {
		t.Fatalf("expected routine title, got:\n%s", routine)
	}
	if !strings.Contains(routine, "╭") || !strings.Contains(routine, "╯") {
		t.Fatalf("expected rounded border, got:\n%s", routine)
	}
	if !strings.Contains(routine, "tourniquet") {
		t.Fatalf("expected body text, got:\n%s", routine)
	}

	buf.Reset()
	term.Emit("Seal the wound.", StyleUrgentPanel)
	urgent := buf.String()
	if !strings.Contains(urgent, urgentPanelTitle) {
		t.Fatalf("expected urgent title, got:\n%s", urgent)
	}
	for _, line := range strings.Split(strings.TrimRight(urgent, "\n"), "\n") {
		if w := len([]rune(line)); w > 40 {
			t.Fatalf("line wider than panel width (%d): %q", w, line)
		}
	}
}

func TestStyleString(t *testing.T) {
	if StyleUrgentPanel.String() != "urgent-panel" {
		t.Fatalf("unexpected name %q", StyleUrgentPanel.String())
	}
	if Style(99).String() != "style(99)" {
		t.Fatalf("unexpected fallback name %q", Style(99).String())
	}
}

// TestRecorder verifies captured emissions can be filtered and searched.
func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	rec.Emit("QUERY: airway", StyleQuery)
	rec.Emit("guidance", StylePanel)
	rec.Emit("1. Page 3 (relevance score: 7)", StyleDim)

	if got := rec.WithStyle(StylePanel); len(got) != 1 || got[0] != "guidance" {
		t.Fatalf("unexpected panel emissions: %v", got)
	}
	if !rec.Contains("relevance score") {
		t.Fatalf("expected Contains to find sources line")
	}
	if rec.Contains("missing") {
		t.Fatalf("did not expect Contains to match")
	}
	all := rec.Emissions()
	all[0].Message = "mutated"
	if rec.Emissions()[0].Message != "QUERY: airway" {
		t.Fatalf("Emissions should return a copy")
	}
}
