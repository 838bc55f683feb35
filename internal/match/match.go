// Package match finds runs of identical lines between two files without external hunk data.
//
// Matching is greedy: each "before" line claims the leftmost unused "after" line with the same content,
// then the run extends while both sides agree. This favors stable diffs for localized edits over a minimal edit script.
// Inputs with many duplicate lines degrade toward O(n^2); callers bound the input size for interactive use.
package match

import "github.com/johnstarich/go/diffalign/internal/span"

// Match is a run of Len identical lines starting at BeforeStart and AfterStart, 0-indexed
type Match struct {
	BeforeStart int `json:"beforeStart"`
	AfterStart  int `json:"afterStart"`
	Len         int `json:"len"`
}

// Before returns the Match's lines in the "before" file
func (m Match) Before() span.Span {
	return span.Span{Start: m.BeforeStart, End: m.BeforeStart + m.Len}
}

// After returns the Match's lines in the "after" file
func (m Match) After() span.Span {
	return span.Span{Start: m.AfterStart, End: m.AfterStart + m.Len}
}

// Find returns the runs of identical lines between before and after, sorted by BeforeStart.
// No two Matches share a line on either side, but later Matches may start before earlier ones in "after".
func Find(before, after []string) []Match {
	idx := newIndex(after)
	var matches []Match
	for b := 0; b < len(before); {
		a, found := idx.firstUnused(before[b])
		if !found {
			b++
			continue
		}
		length := 0
		for b+length < len(before) && a+length < len(after) &&
			!idx.used[a+length] && before[b+length] == after[a+length] {
			idx.used[a+length] = true
			length++
		}
		matches = append(matches, Match{BeforeStart: b, AfterStart: a, Len: length})
		b += length
	}
	return matches
}

// index maps line content to its ascending positions in "after"
type index struct {
	positions map[string][]int
	used      []bool
}

func newIndex(lines []string) *index {
	positions := make(map[string][]int, len(lines))
	for i, line := range lines {
		positions[line] = append(positions[line], i)
	}
	return &index{
		positions: positions,
		used:      make([]bool, len(lines)),
	}
}

// firstUnused returns the leftmost unused position of line
func (x *index) firstUnused(line string) (int, bool) {
	positions := x.positions[line]
	for len(positions) > 0 && x.used[positions[0]] {
		// used positions never become unused again, so drop them from the bucket
		positions = positions[1:]
	}
	x.positions[line] = positions
	for _, pos := range positions {
		if !x.used[pos] {
			return pos, true
		}
	}
	return 0, false
}
