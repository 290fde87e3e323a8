package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"jlower/internal/diag"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
	infoLabel    = color.New(color.FgCyan)
	headerStyle  = color.New(color.Bold)
)

func printDiagnostics(w io.Writer, bag *diag.Bag, limit int) {
	if bag == nil {
		return
	}
	for i, d := range bag.Items() {
		if limit > 0 && i >= limit {
			fmt.Fprintf(w, "... %d more diagnostics\n", bag.Len()-limit)
			return
		}
		label := infoLabel
		switch d.Severity {
		case diag.SevError:
			label = errorLabel
		case diag.SevWarning:
			label = warningLabel
		}
		loc := d.Path
		if !d.Primary.Empty() {
			loc += ":" + d.Primary.String()
		}
		fmt.Fprintf(w, "%s: %s [%s]: %s\n", loc, label.Sprint(d.Severity), d.Code.ID(), d.Message)
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  note: %s: %s\n", n.Span, n.Msg)
		}
	}
}

// formatTable aligns rows into columns by display width, so names with wide
// or combining characters still line up. The first row is the header.
func formatTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}
	var sb strings.Builder
	for r, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				line.WriteString("  ")
			}
			if i == len(row)-1 {
				line.WriteString(cell)
			} else {
				line.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		text := line.String()
		if r == 0 {
			text = headerStyle.Sprint(text)
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
