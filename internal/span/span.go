// Package span contains Span, a half-open range of 0-indexed line positions.
package span

import "fmt"

// Span is a line range with an inclusive Start and exclusive End index. i.e. [Start, End)
type Span struct {
	Start int `json:"start"` // inclusive
	End   int `json:"end"`   // exclusive
}

// New returns the Span [start, end). If end is before start, the Span is empty at start.
func New(start, end int) Span {
	if end < start {
		end = start
	}
	return Span{Start: start, End: end}
}

// Len returns the distance between Start and End
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty returns true if s contains no lines
func (s Span) IsEmpty() bool {
	return s.Len() == 0
}

// Contains returns true if line is inside s
func (s Span) Contains(line int) bool {
	return s.Start <= line && line < s.End
}

// Intersection returns a Span representing the intersection of s and other.
// Returns false if they do not intersect.
func (s Span) Intersection(other Span) (Span, bool) {
	intersection := Span{
		Start: max(s.Start, other.Start),
		End:   min(s.End, other.End),
	}
	if intersection.Start < intersection.End {
		return intersection, true
	}
	return Span{}, false
}

// Merge attempts to combine s and other into a single, unified Span.
// Returns false if they do not intersect and cannot be merged.
func (s Span) Merge(other Span) (Span, bool) {
	_, intersects := s.Intersection(other)
	if !intersects {
		return Span{}, false
	}
	return Span{
		Start: min(s.Start, other.Start),
		End:   max(s.End, other.End),
	}, true
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}
