package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
)

// Format represents a report's format
type Format int

// Supported formats
const (
	FormatColorTerminal Format = iota
	FormatMarkdown
	FormatJSON
)

// ParseFormat parses a Format's String representation
func ParseFormat(s string) (Format, error) {
	switch s {
	case "terminal", "":
		return FormatColorTerminal, nil
	case "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, errors.Errorf("unrecognized format %q, must be one of: terminal, markdown, json", s)
	}
}

func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatJSON:
		return "json"
	default:
		return "terminal"
	}
}

// Colorize returns 's' and optionally wraps with color 'c' according to the format's rules
func (f Format) Colorize(c *color.Color, s string) string {
	if f == FormatColorTerminal {
		return c.Sprint(s)
	}
	return s
}

// ColorizeStatus returns 's' and optionally wraps with the status's color according to the format's rules
func (f Format) ColorizeStatus(status Status, s string) string {
	if f == FormatColorTerminal {
		return status.Colorize(s)
	}
	return s
}

// FormatTable returns a formatted table according to the format's rules
func (f Format) FormatTable(tbl table.Writer) string {
	if f == FormatMarkdown {
		return tbl.RenderMarkdown()
	}
	tbl.SetStyle(table.StyleLight)
	return tbl.Render()
}

// Monospace returns a monospaced string according to the format's rules.
// Markdown uses code blocks with non-breaking spaces to ensure proper spacing.
func (f Format) Monospace(s string) string {
	const nonBreakingSpace = "\u00a0"
	if f == FormatMarkdown && s != "" {
		s = strings.ReplaceAll(s, " ", nonBreakingSpace)
		return fmt.Sprintf("``%s``", s)
	}
	return s
}

// StatusIcon returns a status icon according to the format's rules.
// Markdown returns an emoji, terminal returns empty string.
func (f Format) StatusIcon(status Status) string {
	if f == FormatMarkdown {
		return status.Emoji()
	}
	return ""
}

// Heading returns a file heading according to the format's rules
func (f Format) Heading(s string) string {
	if f == FormatMarkdown {
		return "### " + s
	}
	return f.Colorize(boldColor(), s)
}
