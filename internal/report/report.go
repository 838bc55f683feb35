// Package report renders aligned file diffs in various formats.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/johnstarich/go/diffalign"
	"github.com/johnstarich/go/diffalign/internal/align"
	"github.com/pkg/errors"
)

const defaultWidth = 60

// Options configures a report
type Options struct {
	Format Format
	// SideBySide includes each file's lines next to each other, joined by connectors
	SideBySide bool
	// Width is the max width of each side's text column. Defaults to 60.
	Width int
}

// Write renders diffs to w
func Write(w io.Writer, diffs []diffalign.FileDiff, options Options) error {
	if options.Width <= 0 {
		options.Width = defaultWidth
	}
	if options.Format == FormatJSON {
		return writeJSON(w, diffs)
	}

	var sb strings.Builder
	if len(diffs) == 0 {
		sb.WriteString("No changes.\n")
	}
	for _, diff := range diffs {
		writeFile(&sb, diff, options)
	}
	if len(diffs) > 0 {
		sb.WriteString(Summary(diffs, options.Format))
	}
	_, err := io.WriteString(w, sb.String())
	return errors.WithStack(err)
}

func writeFile(sb *strings.Builder, diff diffalign.FileDiff, options Options) {
	format := options.Format
	status := NewStatus(diff)
	heading := strings.TrimSpace(fmt.Sprintf("%s %s %s",
		format.StatusIcon(status),
		format.ColorizeStatus(status, status.String()),
		displayPath(diff),
	))
	sb.WriteString(format.Heading(heading))
	sb.WriteString("\n\n")
	switch {
	case diff.Binary:
		sb.WriteString("Binary file not shown.\n\n")
		return
	case len(diff.Alignments) == 0:
		sb.WriteString("Empty file.\n\n")
		return
	}
	sb.WriteString(AlignmentTable(diff, format))
	sb.WriteString("\n\n")
	if options.SideBySide {
		sb.WriteString(SideBySide(diff, format, options.Width))
		sb.WriteString("\n\n")
	}
}

func displayPath(diff diffalign.FileDiff) string {
	if diff.IsRename() {
		return fmt.Sprintf("%s → %s", diff.Before.Path, diff.After.Path)
	}
	return diff.Path()
}

// AlignmentTable returns a table listing each alignment and its 1-indexed line ranges
func AlignmentTable(diff diffalign.FileDiff, format Format) string {
	tbl := table.NewWriter()
	const rowsColumn = 5
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: rowsColumn, Align: text.AlignRight},
	})
	bold := boldColor()
	tbl.AppendHeader(table.Row{
		format.Colorize(bold, "#"),
		format.Colorize(bold, "Kind"),
		format.Colorize(bold, "Before"),
		format.Colorize(bold, "After"),
		format.Colorize(bold, "Rows"),
	})
	for i, a := range diff.Alignments {
		kind := format.Colorize(faint(), "unchanged")
		if a.Changed {
			kind = format.ColorizeStatus(statusModified, "changed")
		}
		tbl.AppendRow(table.Row{
			i + 1,
			kind,
			format.Monospace(formatLines(a.Before.Start, a.Before.End)),
			format.Monospace(formatLines(a.After.Start, a.After.End)),
			max(a.Before.Len(), a.After.Len()),
		})
	}
	return format.FormatTable(tbl)
}

// formatLines formats 0-indexed [start, end) as 1-indexed lines
func formatLines(start, end int) string {
	switch end - start {
	case 0:
		return "-"
	case 1:
		return fmt.Sprint(start + 1)
	default:
		return fmt.Sprintf("%d-%d", start+1, end)
	}
}

// Summary returns a table of every file's status and changed line counts
func Summary(diffs []diffalign.FileDiff, format Format) string {
	tbl := table.NewWriter()
	tbl.SuppressEmptyColumns()
	const (
		addedColumn   = 3
		removedColumn = 4
		regionsColumn = 5
	)
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: addedColumn, Align: text.AlignRight},
		{Number: removedColumn, Align: text.AlignRight},
		{Number: regionsColumn, Align: text.AlignRight},
	})
	bold := boldColor()
	tbl.AppendHeader(table.Row{
		"",
		format.Colorize(bold, "Status"),
		format.Colorize(bold, "Added"),
		format.Colorize(bold, "Removed"),
		format.Colorize(bold, "Regions"),
		format.Colorize(bold, "File"),
	})
	var total diffalign.Stats
	for _, diff := range diffs {
		status := NewStatus(diff)
		stats := diff.Stats()
		total.Added += stats.Added
		total.Removed += stats.Removed
		total.ChangedRegions += stats.ChangedRegions
		tbl.AppendRow(table.Row{
			format.StatusIcon(status),
			format.ColorizeStatus(status, status.String()),
			format.Colorize(green(), fmt.Sprintf("+%d", stats.Added)),
			format.Colorize(red(), fmt.Sprintf("-%d", stats.Removed)),
			stats.ChangedRegions,
			displayPath(diff),
		})
	}
	tbl.AppendFooter(table.Row{
		"",
		"",
		fmt.Sprintf("+%d", total.Added),
		fmt.Sprintf("-%d", total.Removed),
		total.ChangedRegions,
		fmt.Sprintf("%d files", len(diffs)),
	})
	return format.FormatTable(tbl) + "\n"
}

type jsonReport struct {
	Files []jsonFile `json:"files"`
}

type jsonFile struct {
	Path       string               `json:"path"`
	Kind       diffalign.ChangeKind `json:"kind"`
	Rename     bool                 `json:"rename"`
	Binary     bool                 `json:"binary"`
	Stats      diffalign.Stats      `json:"stats"`
	Before     *diffalign.Side      `json:"before,omitempty"`
	After      *diffalign.Side      `json:"after,omitempty"`
	Alignments []align.Alignment    `json:"alignments"`
}

func writeJSON(w io.Writer, diffs []diffalign.FileDiff) error {
	report := jsonReport{Files: make([]jsonFile, 0, len(diffs))}
	for _, diff := range diffs {
		report.Files = append(report.Files, jsonFile{
			Path:       diff.Path(),
			Kind:       diff.Kind(),
			Rename:     diff.IsRename(),
			Binary:     diff.Binary,
			Stats:      diff.Stats(),
			Before:     diff.Before,
			After:      diff.After,
			Alignments: diff.Alignments,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.WithStack(encoder.Encode(report))
}
