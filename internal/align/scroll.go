package align

import "sort"

// Locate returns the index of the Alignment containing line in the given pane.
// Returns false if line is outside the pane's file.
func Locate(alignments []Alignment, pane Pane, line int) (int, bool) {
	if line < 0 {
		return 0, false
	}
	i := sort.Search(len(alignments), func(i int) bool {
		return alignments[i].Span(pane).End > line
	})
	if i == len(alignments) {
		return 0, false
	}
	return i, true
}

// Counterpart maps line in one pane to the corresponding line in the other pane, for synchronized scrolling.
//
// Lines in unchanged regions map one-to-one.
// Lines in changed regions keep their offset, clamped to the other side's region.
// If the other side's region is empty, returns the line where it would begin.
func Counterpart(alignments []Alignment, pane Pane, line int) (int, bool) {
	i, found := Locate(alignments, pane, line)
	if !found {
		return 0, false
	}
	a := alignments[i]
	from, to := a.Span(pane), a.Span(pane.Other())
	offset := line - from.Start
	if to.IsEmpty() {
		return to.Start, true
	}
	return to.Start + min(offset, to.Len()-1), true
}
