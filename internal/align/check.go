package align

import (
	"github.com/johnstarich/go/diffalign/internal/linebuf"
	"github.com/pkg/errors"
)

// Check returns an error describing the first way alignments fails to partition before and after
func Check(alignments []Alignment, before, after linebuf.Buffer) error {
	if len(alignments) == 0 {
		if before.Len() == 0 && after.Len() == 0 {
			return nil
		}
		return errors.Errorf("no alignments for %d before lines and %d after lines", before.Len(), after.Len())
	}
	beforePos, afterPos := 0, 0
	for i, a := range alignments {
		switch {
		case a.Before.Start != beforePos:
			return errors.Errorf("alignment %d %s: before starts at %d, expected %d", i, a, a.Before.Start, beforePos)
		case a.After.Start != afterPos:
			return errors.Errorf("alignment %d %s: after starts at %d, expected %d", i, a, a.After.Start, afterPos)
		case a.Before.End < a.Before.Start || a.After.End < a.After.Start:
			return errors.Errorf("alignment %d %s: span ends before it starts", i, a)
		case a.Before.IsEmpty() && a.After.IsEmpty():
			return errors.Errorf("alignment %d %s: empty on both sides", i, a)
		case !a.Changed && !before.Equal(a.Before, after, a.After):
			return errors.Errorf("alignment %d %s: unchanged lines are not identical", i, a)
		}
		beforePos, afterPos = a.Before.End, a.After.End
	}
	if beforePos != before.Len() {
		return errors.Errorf("alignments cover %d before lines, expected %d", beforePos, before.Len())
	}
	if afterPos != after.Len() {
		return errors.Errorf("alignments cover %d after lines, expected %d", afterPos, after.Len())
	}
	return nil
}
