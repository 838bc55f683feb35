package hunk

import "github.com/bluekeyes/go-gitdiff/gitdiff"

// FromFragments converts a file's parsed diff fragments into Hunks.
// Context lines inside a fragment split it, so the result matches a zero-context diff.
func FromFragments(fragments []*gitdiff.TextFragment) []Hunk {
	return Normalize(Records(fragments))
}

// Records splits fragments into 1-indexed raw records, one per run of changed lines
func Records(fragments []*gitdiff.TextFragment) []Raw {
	var records []Raw
	for _, fragment := range fragments {
		oldLine := firstLine(fragment.OldPosition, fragment.OldLines)
		newLine := firstLine(fragment.NewPosition, fragment.NewLines)
		var runOld, runNew, deleted, added int64
		flush := func() {
			if deleted == 0 && added == 0 {
				return
			}
			records = append(records, Raw{
				OldStart: rawStart(runOld, deleted),
				OldLines: deleted,
				NewStart: rawStart(runNew, added),
				NewLines: added,
			})
			deleted, added = 0, 0
		}
		for _, line := range fragment.Lines {
			if line.Op != gitdiff.OpContext && deleted == 0 && added == 0 {
				runOld, runNew = oldLine, newLine
			}
			switch line.Op {
			case gitdiff.OpContext:
				flush()
				oldLine++
				newLine++
			case gitdiff.OpDelete:
				deleted++
				oldLine++
			case gitdiff.OpAdd:
				added++
				newLine++
			}
		}
		flush()
	}
	return records
}

// firstLine returns the 1-indexed number of a fragment's first line on one side
func firstLine(position, lines int64) int64 {
	if lines == 0 {
		return position + 1
	}
	return position
}

// rawStart returns git's start line for a run beginning at 'next' with 'count' lines
func rawStart(next, count int64) int64 {
	if count == 0 {
		return next - 1
	}
	return next
}
