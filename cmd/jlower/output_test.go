package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"jlower/internal/diag"
	"jlower/internal/source"
)

func withoutColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestFormatTableAligns(t *testing.T) {
	withoutColor(t)
	got := formatTable([][]string{
		{"CLASS", "SELECTOR", "UNITS"},
		{"IOSIntArray", "arrayWithLength:", "2"},
		{"IOSObjectArray", "arrayWithInts:count:", "10"},
	})
	want := "" +
		"CLASS           SELECTOR              UNITS\n" +
		"IOSIntArray     arrayWithLength:      2\n" +
		"IOSObjectArray  arrayWithInts:count:  10\n"
	if got != want {
		t.Fatalf("table mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	withoutColor(t)
	got := formatTable([][]string{
		{"A", "B"},
		{"数组", "x"},
	})
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}
	if lines[0] != "A     B" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "数组  x" {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if got := formatTable(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestPrintDiagnosticsLimit(t *testing.T) {
	withoutColor(t)
	bag := diag.NewBag(10)
	for i := 0; i < 3; i++ {
		d := diag.NewError(diag.LowerInvariant, source.Span{File: 1, Start: uint32(i), End: uint32(i + 1)}, "bad")
		d.Path = "a.jlu"
		bag.Add(d)
	}
	var buf bytes.Buffer
	printDiagnostics(&buf, bag, 2)
	out := buf.String()
	if strings.Count(out, "ERROR [LOW3001]: bad") != 2 {
		t.Fatalf("expected two printed diagnostics:\n%s", out)
	}
	if !strings.Contains(out, "... 1 more diagnostics") {
		t.Fatalf("missing overflow line:\n%s", out)
	}
}
