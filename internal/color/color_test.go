package color

import (
	"strings"
	"testing"
)

func TestDisabledColorIsPlain(t *testing.T) {
	c := newColor(false)

	tests := []struct {
		got  string
		want string
	}{
		{c.Add("x"), "x"},
		{c.Change("x"), "x"},
		{c.Destroy("x"), "x"},
		{c.Bold("x"), "x"},
		{c.PlanSymbol("change"), "~"},
		{c.PlanSymbol("drop"), "-"},
		{c.PlanSymbol("add"), "+"},
		{c.PlanSymbol("other"), " "},
		{c.FormatPlanLine("columns", "t1.c1", "change"), "  ~ columns.t1.c1"},
		{c.FormatPlanLine("constraints", "", "drop"), "  - constraints"},
		{c.FormatPlanHeader(0, 2, 1), "Plan: 0 to add, 2 to modify, 1 to drop."},
		{c.FormatSummaryLine("columns", 0, 2, 0), "  columns: 0 to add, 2 to modify, 0 to drop"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestEnabledColorWrapsText(t *testing.T) {
	c := newColor(true)
	if !c.Enabled() {
		t.Fatal("Enabled() = false")
	}

	got := c.Destroy("gone")
	if !strings.Contains(got, "gone") || !strings.Contains(got, "\x1b[") {
		t.Errorf("Destroy() = %q, want ANSI-wrapped text", got)
	}
}

func TestNoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("TERM", "xterm-256color")
	if shouldEnableColor(0) {
		t.Error("shouldEnableColor() = true with NO_COLOR set")
	}

	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "dumb")
	if shouldEnableColor(0) {
		t.Error("shouldEnableColor() = true with TERM=dumb")
	}
}
