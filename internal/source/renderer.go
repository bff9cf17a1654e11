package source

import (
	"fmt"
	"strings"
)

// Renderer formats Diagnostics in a conventional three-line-block style:
// a header line, a file-and-position line, and a source excerpt with carets
// under the offending span. Optionally colorizes with ANSI escapes.
type Renderer struct {
	Color bool
}

// NewRenderer creates a Renderer. color enables ANSI escapes for terminal
// output; pass false for piping to files or snapshot tests.
func NewRenderer(color bool) *Renderer {
	return &Renderer{Color: color}
}

const (
	ansiBoldRed    = "\033[1;31m"
	ansiBoldYellow = "\033[1;33m"
	ansiBoldCyan   = "\033[1;36m"
	ansiBold       = "\033[1m"
	ansiBlue       = "\033[1;34m"
	ansiReset      = "\033[0m"
)

func severityColor(sev Severity) string {
	switch sev {
	case Error:
		return ansiBoldRed
	case Warning:
		return ansiBoldYellow
	default:
		return ansiBoldCyan
	}
}

func (r *Renderer) c(code string) string {
	if !r.Color {
		return ""
	}
	return code
}

// Render formats a single diagnostic against source (the full text of the
// file the diagnostic's primary span points into).
func (r *Renderer) Render(d Diagnostic, src string) string {
	var sb strings.Builder

	color := severityColor(d.Severity)
	sb.WriteString(r.c(color))
	fmt.Fprintf(&sb, "%s[%s]", d.Severity, d.Code)
	sb.WriteString(r.c(ansiReset))
	sb.WriteString(r.c(ansiBold))
	fmt.Fprintf(&sb, ": %s", d.Message)
	sb.WriteString(r.c(ansiReset))
	sb.WriteString("\n")

	lines := strings.Split(src, "\n")
	for _, label := range d.Labels {
		sb.WriteString(r.c(ansiBlue))
		fmt.Fprintf(&sb, "  --> %s\n", label.Span)
		sb.WriteString(r.c(ansiReset))

		excerpt := sourceLine(lines, label.Span.StartLine)
		lineNumStr := fmt.Sprintf("%4d | ", label.Span.StartLine)
		sb.WriteString(lineNumStr)
		sb.WriteString(excerpt)
		sb.WriteString("\n")

		caretCol := label.Span.StartCol
		caretLen := 1
		if label.Span.EndLine == label.Span.StartLine && label.Span.EndCol > label.Span.StartCol {
			caretLen = label.Span.EndCol - label.Span.StartCol
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+caretCol-1))
		sb.WriteString(r.c(color))
		sb.WriteString(strings.Repeat("^", caretLen))
		if label.Message != "" {
			fmt.Fprintf(&sb, " %s", label.Message)
		}
		sb.WriteString(r.c(ansiReset))
		sb.WriteString("\n")
	}

	for _, note := range d.Notes {
		fmt.Fprintf(&sb, "  note: %s\n", note)
	}
	for _, sug := range d.Suggestions {
		fmt.Fprintf(&sb, "  suggestion: replace with %q (%s)\n", sug.Replacement, sug.Rationale)
	}

	return sb.String()
}

// RenderAll formats every diagnostic in order, separated by blank lines.
func (r *Renderer) RenderAll(diags []Diagnostic, src string) string {
	var sb strings.Builder
	for i, d := range diags {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(r.Render(d, src))
	}
	return sb.String()
}

func sourceLine(lines []string, lineNum int) string {
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
