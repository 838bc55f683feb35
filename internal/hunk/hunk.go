// Package hunk converts changed regions reported by external diff engines into ordered, 0-indexed Hunks.
package hunk

import (
	"sort"

	"github.com/johnstarich/go/diffalign/internal/span"
)

// Hunk is a changed region with 0-indexed start lines. Start + Len is the exclusive end.
type Hunk struct {
	OldStart int `json:"oldStart"`
	OldLen   int `json:"oldLen"`
	NewStart int `json:"newStart"`
	NewLen   int `json:"newLen"`
}

// Old returns the Hunk's range of lines in the old file
func (h Hunk) Old() span.Span {
	return span.Span{Start: h.OldStart, End: h.OldStart + h.OldLen}
}

// New returns the Hunk's range of lines in the new file
func (h Hunk) New() span.Span {
	return span.Span{Start: h.NewStart, End: h.NewStart + h.NewLen}
}

// IsEmpty returns true if the Hunk changes no lines on either side
func (h Hunk) IsEmpty() bool {
	return h.OldLen <= 0 && h.NewLen <= 0
}

// Raw is a hunk record as reported by git, with 1-indexed start lines.
//
// When one side has no lines, git reports the line just before the change on that side,
// and 0 anchors a change at the top of the file.
type Raw struct {
	OldStart, OldLines int64
	NewStart, NewLines int64
}

// Normalize converts raw records to 0-indexed Hunks sorted by old start line.
// Hunks are not merged or deduplicated.
func Normalize(records []Raw) []Hunk {
	hunks := make([]Hunk, 0, len(records))
	for _, r := range records {
		hunks = append(hunks, Hunk{
			OldStart: zeroIndexed(r.OldStart, r.OldLines),
			OldLen:   nonNegative(r.OldLines),
			NewStart: zeroIndexed(r.NewStart, r.NewLines),
			NewLen:   nonNegative(r.NewLines),
		})
	}
	sort.SliceStable(hunks, func(a, b int) bool {
		if hunks[a].OldStart != hunks[b].OldStart {
			return hunks[a].OldStart < hunks[b].OldStart
		}
		return hunks[a].NewStart < hunks[b].NewStart
	})
	return hunks
}

func zeroIndexed(start, lines int64) int {
	switch {
	case start <= 0:
		return 0
	case lines <= 0:
		// git reports the preceding line, which is the 0-indexed insertion point
		return int(start)
	default:
		return int(start - 1)
	}
}

func nonNegative(n int64) int {
	if n < 0 {
		return 0
	}
	return int(n)
}
