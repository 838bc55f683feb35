package align

import (
	"github.com/johnstarich/go/diffalign/internal/hunk"
	"github.com/johnstarich/go/diffalign/internal/linebuf"
	"github.com/johnstarich/go/diffalign/internal/match"
)

// FromHunks aligns before and after using changed regions reported by a diff engine.
// Changed Alignments produced from a hunk carry its 1-indexed SourceLines.
//
// If hunks is empty, the files are assumed identical. Files which are not identical anyway yield one changed Alignment.
func FromHunks(hunks []hunk.Hunk, before, after linebuf.Buffer) []Alignment {
	regions := make([]Region, 0, len(hunks))
	for _, h := range hunks {
		regions = append(regions, Region{Before: h.Old(), After: h.New()})
	}
	alignments, origins := assemble(regions, ChangedRegions, before, after)
	for i, origin := range origins {
		if origin < 0 || !alignments[i].Changed {
			continue
		}
		alignments[i].Source = &SourceLines{
			Old: lineRange(alignments[i].Before),
			New: lineRange(alignments[i].After),
		}
	}
	return alignments
}

// FromMatches aligns before and after using runs of identical lines, like those from match.Find.
// Lines outside of matches are changed.
func FromMatches(matches []match.Match, before, after linebuf.Buffer) []Alignment {
	regions := make([]Region, 0, len(matches))
	for _, m := range matches {
		regions = append(regions, Region{Before: m.Before(), After: m.After()})
	}
	return Assemble(regions, UnchangedRegions, before, after)
}

// FromContent aligns before and after by matching their content with match.Find
func FromContent(before, after linebuf.Buffer) []Alignment {
	return FromMatches(match.Find(before.Lines(), after.Lines()), before, after)
}

// Unchanged returns the unchanged Alignments as Matches, in order
func Unchanged(alignments []Alignment) []match.Match {
	var matches []match.Match
	for _, a := range alignments {
		if !a.Changed {
			matches = append(matches, match.Match{
				BeforeStart: a.Before.Start,
				AfterStart:  a.After.Start,
				Len:         a.Before.Len(),
			})
		}
	}
	return matches
}

// Changed returns only the changed Alignments, in order
func Changed(alignments []Alignment) []Alignment {
	var changed []Alignment
	for _, a := range alignments {
		if a.Changed {
			changed = append(changed, a)
		}
	}
	return changed
}
