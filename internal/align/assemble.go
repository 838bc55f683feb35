package align

import (
	"github.com/johnstarich/go/diffalign/internal/linebuf"
	"github.com/johnstarich/go/diffalign/internal/span"
)

// Region is a pair of line ranges fed to Assemble
type Region struct {
	Before span.Span
	After  span.Span
}

// Kind describes what a list of Regions represents
type Kind int

const (
	// ChangedRegions are explicit changes, e.g. hunks. The lines between them are context.
	ChangedRegions Kind = iota
	// UnchangedRegions are runs of identical lines, e.g. matches. The lines between them are changes.
	UnchangedRegions
)

func (k Kind) String() string {
	if k == UnchangedRegions {
		return "unchanged regions"
	}
	return "changed regions"
}

// Assemble walks regions in order and emits an exhaustive Alignment sequence over before and after.
// The gaps between regions are filled with the opposite kind.
//
// Malformed regions are repaired instead of rejected:
//   - Changed regions are clamped to the current position and the file lengths.
//   - Unchanged regions are trimmed equally on both sides, and dropped if empty or not identical.
//   - Regions entirely behind the current position are skipped.
//   - Context between changed regions which is not identical on both sides is emitted as changed.
//
// When both files are empty, returns an empty slice.
func Assemble(regions []Region, kind Kind, before, after linebuf.Buffer) []Alignment {
	alignments, _ := assemble(regions, kind, before, after)
	return alignments
}

// assemble returns alignments along with the index of the region each came from, or -1 for filler
func assemble(regions []Region, kind Kind, before, after linebuf.Buffer) ([]Alignment, []int) {
	a := assembler{
		kind:   kind,
		before: before,
		after:  after,
		out:    []Alignment{},
	}
	for i, region := range regions {
		switch kind {
		case ChangedRegions:
			a.changed(i, region)
		case UnchangedRegions:
			a.unchanged(i, region)
		}
	}
	a.fillTo(before.Len(), after.Len())
	return a.out, a.origins
}

type assembler struct {
	kind                Kind
	before, after       linebuf.Buffer
	beforePos, afterPos int
	out                 []Alignment
	origins             []int
}

func (a *assembler) changed(origin int, r Region) {
	beforeSpan := clamp(r.Before, a.beforePos, a.before.Len())
	afterSpan := clamp(r.After, a.afterPos, a.after.Len())
	if beforeSpan.IsEmpty() && afterSpan.IsEmpty() {
		return
	}
	a.fillTo(beforeSpan.Start, afterSpan.Start)
	a.emit(origin, Alignment{Before: beforeSpan, After: afterSpan, Changed: true})
}

func (a *assembler) unchanged(origin int, r Region) {
	length := min(r.Before.Len(), r.After.Len())
	skip := max(a.beforePos-r.Before.Start, a.afterPos-r.After.Start, 0)
	beforeStart, afterStart := r.Before.Start+skip, r.After.Start+skip
	length = min(length-skip, a.before.Len()-beforeStart, a.after.Len()-afterStart)
	if length <= 0 {
		return
	}
	beforeSpan := span.Span{Start: beforeStart, End: beforeStart + length}
	afterSpan := span.Span{Start: afterStart, End: afterStart + length}
	if !a.before.Equal(beforeSpan, a.after, afterSpan) {
		return
	}
	a.fillTo(beforeStart, afterStart)
	a.emit(origin, Alignment{Before: beforeSpan, After: afterSpan})
}

// fillTo emits a filler Alignment from the current position up to the given lines, if there is a gap
func (a *assembler) fillTo(beforeEnd, afterEnd int) {
	filler := Alignment{
		Before: span.New(a.beforePos, beforeEnd),
		After:  span.New(a.afterPos, afterEnd),
	}
	if filler.Before.IsEmpty() && filler.After.IsEmpty() {
		return
	}
	switch a.kind {
	case ChangedRegions:
		filler.Changed = !a.before.Equal(filler.Before, a.after, filler.After)
	case UnchangedRegions:
		filler.Changed = true
	}
	a.emit(-1, filler)
}

func (a *assembler) emit(origin int, alignment Alignment) {
	a.out = append(a.out, alignment)
	a.origins = append(a.origins, origin)
	a.beforePos = alignment.Before.End
	a.afterPos = alignment.After.End
}

// clamp limits s to [lower, upper]
func clamp(s span.Span, lower, upper int) span.Span {
	start := min(max(s.Start, lower), upper)
	end := min(max(s.End, start), upper)
	return span.Span{Start: start, End: end}
}
