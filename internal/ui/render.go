package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Row is one "label: value" line of a panel
type Row struct {
	Label string
	Value string
}

// RenderPanel draws rows inside a rounded box titled with title.
// The box grows to fit the widest row.
func RenderPanel(title string, rows []Row) string {
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, utf8.RuneCountInString(r.Label))
	}

	lines := make([]string, len(rows))
	width := utf8.RuneCountInString(title) + 6
	for i, r := range rows {
		pad := strings.Repeat(" ", labelWidth-utf8.RuneCountInString(r.Label))
		lines[i] = Color(Dim, r.Label+":") + pad + " " + r.Value
		width = max(width, visibleLength(lines[i])+4)
	}

	var sb strings.Builder

	titleText := " " + title + " "
	rightDashes := max(width-2-2-utf8.RuneCountInString(titleText), 0)
	sb.WriteString(Color(Cyan, BoxTopLeft+strings.Repeat(BoxHorizontal, 2)))
	sb.WriteString(Color(Cyan+Bold, titleText))
	sb.WriteString(Color(Cyan, strings.Repeat(BoxHorizontal, rightDashes)+BoxTopRight))
	sb.WriteString("\n")

	for _, line := range lines {
		padding := max(width-4-visibleLength(line), 0)
		sb.WriteString(Color(Cyan, BoxVertical))
		sb.WriteString(" ")
		sb.WriteString(line)
		sb.WriteString(strings.Repeat(" ", padding))
		sb.WriteString(" ")
		sb.WriteString(Color(Cyan, BoxVertical))
		sb.WriteString("\n")
	}

	sb.WriteString(Color(Cyan, BoxBottomLeft+strings.Repeat(BoxHorizontal, width-2)+BoxBottomRight))
	sb.WriteString("\n")
	return sb.String()
}

// Percent formats a utilization percentage, colored by load
func Percent(p float64) string {
	return Color(LoadColor(p), fmt.Sprintf("%.1f%%", p))
}

// visibleLength returns the visible length of a string, ignoring ANSI codes
func visibleLength(s string) int {
	inEscape := false
	visible := 0
	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		visible++
	}
	return visible
}

// RenderError formats an error message
func RenderError(err error) string {
	return Color(Red, fmt.Sprintf("Error: %v", err))
}

// RenderDim formats text in dim style
func RenderDim(msg string) string {
	return Color(Dim, msg)
}
