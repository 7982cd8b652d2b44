package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// fatih/color turns these into plain text when stdout is not a terminal.
var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
)

// printMarked writes msg behind a colored marker.
func printMarked(w io.Writer, clr *color.Color, marker, msg string) {
	_, _ = clr.Fprintf(w, "%s %s\n", marker, msg)
}

// PrintSuccess prints a message behind a checkmark.
func PrintSuccess(msg string) { printMarked(os.Stdout, successColor, "✓", msg) }

// PrintWarning prints a message behind a warning sign.
func PrintWarning(msg string) { printMarked(os.Stdout, warningColor, "⚠", msg) }

// PrintError prints a message to stderr behind a cross.
func PrintError(msg string) { printMarked(os.Stderr, errorColor, "✗", msg) }

// PrintInfo prints a plain line.
func PrintInfo(msg string) {
	fmt.Println(msg)
}

// PrintSection prints a header surrounded by blank lines.
func PrintSection(title string) {
	fmt.Println()
	printMarked(os.Stdout, headerColor, "▸", title)
	fmt.Println()
}

// PrintSubsection prints an indented subheading.
func PrintSubsection(title string) {
	_, _ = infoColor.Printf("  %s\n", title)
}

// PrintLabelValue prints "label: value" with a dimmed value.
func PrintLabelValue(label, value string) {
	PrintLabelValueWithColor(label, value, valueColor)
}

// PrintLabelValueWithColor prints "label: value" with the value in clr.
func PrintLabelValueWithColor(label, value string, clr *color.Color) {
	_, _ = labelColor.Printf("  %s: ", label)
	_, _ = clr.Println(value)
}

// PrintEmptyState prints a dimmed placeholder line.
func PrintEmptyState(msg string) {
	_, _ = valueColor.Printf("  %s\n", msg)
}

// PrintTable prints rows under headers with columns padded to the widest cell.
// Cells beyond the header count are dropped.
func PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], len(row[i]))
		}
	}

	printRow := func(cells []string, clr *color.Color) {
		padded := make([]string, 0, len(widths))
		for i := 0; i < len(cells) && i < len(widths); i++ {
			padded = append(padded, clr.Sprintf("%-*s", widths[i], cells[i]))
		}
		fmt.Println("  " + strings.Join(padded, "  "))
	}

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}

	printRow(headers, headerColor)
	fmt.Println("  " + strings.Join(rule, "  "))
	for _, row := range rows {
		printRow(row, valueColor)
	}
}

// PrintCount formats count with the singular or plural noun.
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
