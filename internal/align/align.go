// Package align partitions two files into corresponding regions, each tagged changed or unchanged.
//
// A full Alignment sequence covers both files without gaps or overlaps, in order.
// Unchanged Alignments pair identical lines one-to-one, changed Alignments may differ in length on each side.
package align

import (
	"fmt"

	"github.com/johnstarich/go/diffalign/internal/span"
)

// Alignment pairs a range of "before" lines with a range of "after" lines
type Alignment struct {
	Before  span.Span    `json:"before"`
	After   span.Span    `json:"after"`
	Changed bool         `json:"changed"`
	Source  *SourceLines `json:"source,omitempty"`
}

func (a Alignment) String() string {
	kind := "="
	if a.Changed {
		kind = "~"
	}
	return fmt.Sprintf("%s%s%s", a.Before, kind, a.After)
}

// Span returns the Alignment's range of lines in the given pane
func (a Alignment) Span(p Pane) span.Span {
	if p == AfterPane {
		return a.After
	}
	return a.Before
}

// SourceLines carries the 1-indexed line numbers of a change reported by a diff engine
type SourceLines struct {
	Old *LineRange `json:"old,omitempty"` // nil if no old lines changed
	New *LineRange `json:"new,omitempty"` // nil if no new lines changed
}

// LineRange is an inclusive range of 1-indexed line numbers
type LineRange struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

func (r LineRange) String() string {
	if r.First == r.Last {
		return fmt.Sprint(r.First)
	}
	return fmt.Sprintf("%d-%d", r.First, r.Last)
}

func lineRange(s span.Span) *LineRange {
	if s.IsEmpty() {
		return nil
	}
	return &LineRange{First: s.Start + 1, Last: s.End}
}

// Pane identifies one side of a side-by-side view
type Pane int

const (
	// BeforePane shows the old file
	BeforePane Pane = iota
	// AfterPane shows the new file
	AfterPane
)

// Other returns the opposite pane
func (p Pane) Other() Pane {
	if p == AfterPane {
		return BeforePane
	}
	return AfterPane
}

func (p Pane) String() string {
	if p == AfterPane {
		return "after"
	}
	return "before"
}
