package report

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/johnstarich/go/diffalign"
	"github.com/johnstarich/go/diffalign/internal/align"
)

const tabWidth = 4

// Connectors join a row's before and after lines
const (
	connectorUnchanged = ""
	connectorChanged   = "|"
	connectorRemoved   = "<"
	connectorAdded     = ">"
)

// SideBySide returns the file's before and after lines next to each other.
// Changed rows are joined by a connector: "|" if both sides have lines, "<" for only before, ">" for only after.
func SideBySide(diff diffalign.FileDiff, format Format, width int) string {
	tbl := table.NewWriter()
	const (
		beforeTextColumn = 2
		connectorColumn  = 3
		afterTextColumn  = 5
	)
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: beforeTextColumn, WidthMax: width, WidthMaxEnforcer: text.Trim},
		{Number: connectorColumn, Align: text.AlignCenter},
		{Number: afterTextColumn, WidthMax: width, WidthMaxEnforcer: text.Trim},
	})
	bold := boldColor()
	tbl.AppendHeader(table.Row{
		"",
		format.Colorize(bold, sidePath(diff.Before)),
		"",
		"",
		format.Colorize(bold, sidePath(diff.After)),
	})
	var before, after []string
	if diff.Before != nil {
		before = diff.Before.Lines
	}
	if diff.After != nil {
		after = diff.After.Lines
	}
	for _, a := range diff.Alignments {
		appendAlignmentRows(tbl, a, before, after, format)
	}
	return format.FormatTable(tbl)
}

func sidePath(s *diffalign.Side) string {
	if s == nil {
		return "(none)"
	}
	return s.Path
}

func appendAlignmentRows(tbl table.Writer, a align.Alignment, before, after []string, format Format) {
	rows := max(a.Before.Len(), a.After.Len())
	connector := alignmentConnector(a)
	for i := 0; i < rows; i++ {
		beforeNum, beforeText := sideLine(before, a.Before.Start+i, i < a.Before.Len())
		afterNum, afterText := sideLine(after, a.After.Start+i, i < a.After.Len())
		if a.Changed {
			beforeText = format.Colorize(red(), beforeText)
			afterText = format.Colorize(green(), afterText)
		}
		tbl.AppendRow(table.Row{
			beforeNum,
			beforeText,
			connector,
			afterNum,
			afterText,
		})
	}
}

func alignmentConnector(a align.Alignment) string {
	switch {
	case !a.Changed:
		return connectorUnchanged
	case a.Before.IsEmpty():
		return connectorAdded
	case a.After.IsEmpty():
		return connectorRemoved
	default:
		return connectorChanged
	}
}

// sideLine returns the 1-indexed line number and text at 0-indexed line i, or empty strings if !ok
func sideLine(lines []string, i int, ok bool) (string, string) {
	if !ok || i < 0 || i >= len(lines) {
		return "", ""
	}
	return strconv.Itoa(i + 1), strings.ReplaceAll(lines[i], "\t", strings.Repeat(" ", tabWidth))
}
