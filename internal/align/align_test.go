package align

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/johnstarich/go/diffalign/internal/hunk"
	"github.com/johnstarich/go/diffalign/internal/linebuf"
	"github.com/johnstarich/go/diffalign/internal/match"
	"github.com/johnstarich/go/diffalign/internal/span"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(l ...string) linebuf.Buffer {
	return linebuf.New(l)
}

func same(beforeStart, beforeEnd, afterStart, afterEnd int) Alignment {
	return Alignment{
		Before: span.Span{Start: beforeStart, End: beforeEnd},
		After:  span.Span{Start: afterStart, End: afterEnd},
	}
}

func changed(beforeStart, beforeEnd, afterStart, afterEnd int) Alignment {
	a := same(beforeStart, beforeEnd, afterStart, afterEnd)
	a.Changed = true
	return a
}

func withoutSource(alignments []Alignment) []Alignment {
	stripped := make([]Alignment, len(alignments))
	for i, a := range alignments {
		a.Source = nil
		stripped[i] = a
	}
	return stripped
}

func TestFromHunks(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		description string
		hunks       []hunk.Hunk
		before      linebuf.Buffer
		after       linebuf.Buffer
		expect      []Alignment
	}{
		{
			description: "both empty",
			before:      lines(),
			after:       lines(),
			expect:      []Alignment{},
		},
		{
			description: "both absent",
			before:      linebuf.Absent(),
			after:       linebuf.Absent(),
			expect:      []Alignment{},
		},
		{
			description: "single substitution",
			hunks:       []hunk.Hunk{{OldStart: 2, OldLen: 1, NewStart: 2, NewLen: 1}},
			before:      lines("a", "b", "X", "c", "d"),
			after:       lines("a", "b", "Y", "c", "d"),
			expect: []Alignment{
				same(0, 2, 0, 2),
				changed(2, 3, 2, 3),
				same(3, 5, 3, 5),
			},
		},
		{
			description: "hunk with different sizes",
			hunks:       []hunk.Hunk{{OldStart: 0, OldLen: 2, NewStart: 0, NewLen: 3}},
			before:      lines("old1", "old2", "same"),
			after:       lines("new1", "new2", "new3", "same"),
			expect: []Alignment{
				changed(0, 2, 0, 3),
				same(2, 3, 3, 4),
			},
		},
		{
			description: "multiple hunks",
			hunks: []hunk.Hunk{
				{OldStart: 1, OldLen: 1, NewStart: 1, NewLen: 1},
				{OldStart: 4, OldLen: 1, NewStart: 4, NewLen: 1},
			},
			before: lines("a", "X", "b", "c", "Y", "d"),
			after:  lines("a", "X'", "b", "c", "Y'", "d"),
			expect: []Alignment{
				same(0, 1, 0, 1),
				changed(1, 2, 1, 2),
				same(2, 4, 2, 4),
				changed(4, 5, 4, 5),
				same(5, 6, 5, 6),
			},
		},
		{
			description: "added file without hunks",
			before:      linebuf.Absent(),
			after:       lines("line1", "line2"),
			expect:      []Alignment{changed(0, 0, 0, 2)},
		},
		{
			description: "deleted file without hunks",
			before:      lines("line1", "line2"),
			after:       linebuf.Absent(),
			expect:      []Alignment{changed(0, 2, 0, 0)},
		},
		{
			description: "added file with hunk",
			hunks:       []hunk.Hunk{{OldStart: 0, OldLen: 0, NewStart: 0, NewLen: 2}},
			before:      linebuf.Absent(),
			after:       lines("line1", "line2"),
			expect:      []Alignment{changed(0, 0, 0, 2)},
		},
		{
			description: "hunk at start",
			hunks:       []hunk.Hunk{{OldStart: 0, OldLen: 1, NewStart: 0, NewLen: 1}},
			before:      lines("X", "a", "b"),
			after:       lines("Y", "a", "b"),
			expect: []Alignment{
				changed(0, 1, 0, 1),
				same(1, 3, 1, 3),
			},
		},
		{
			description: "hunk at end",
			hunks:       []hunk.Hunk{{OldStart: 2, OldLen: 1, NewStart: 2, NewLen: 1}},
			before:      lines("a", "b", "X"),
			after:       lines("a", "b", "Y"),
			expect: []Alignment{
				same(0, 2, 0, 2),
				changed(2, 3, 2, 3),
			},
		},
		{
			description: "pure insertion",
			hunks:       []hunk.Hunk{{OldStart: 1, OldLen: 0, NewStart: 1, NewLen: 2}},
			before:      lines("a", "b"),
			after:       lines("a", "x", "y", "b"),
			expect: []Alignment{
				same(0, 1, 0, 1),
				changed(1, 1, 1, 3),
				same(1, 2, 3, 4),
			},
		},
		{
			description: "pure deletion",
			hunks:       []hunk.Hunk{{OldStart: 1, OldLen: 2, NewStart: 1, NewLen: 0}},
			before:      lines("a", "x", "y", "b"),
			after:       lines("a", "b"),
			expect: []Alignment{
				same(0, 1, 0, 1),
				changed(1, 3, 1, 1),
				same(3, 4, 1, 2),
			},
		},
		{
			description: "no hunks for identical files",
			before:      lines("a", "b"),
			after:       lines("a", "b"),
			expect:      []Alignment{same(0, 2, 0, 2)},
		},
		{
			description: "no hunks for different files",
			before:      lines("a", "b"),
			after:       lines("a", "c"),
			expect:      []Alignment{changed(0, 2, 0, 2)},
		},
		{
			description: "empty hunk is skipped",
			hunks:       []hunk.Hunk{{OldStart: 1, OldLen: 0, NewStart: 1, NewLen: 0}},
			before:      lines("a", "b"),
			after:       lines("a", "b"),
			expect:      []Alignment{same(0, 2, 0, 2)},
		},
		{
			description: "hunk beyond end of file is clamped",
			hunks:       []hunk.Hunk{{OldStart: 1, OldLen: 10, NewStart: 1, NewLen: 10}},
			before:      lines("a", "b", "c"),
			after:       lines("a", "x", "c"),
			expect: []Alignment{
				same(0, 1, 0, 1),
				changed(1, 3, 1, 3),
			},
		},
		{
			description: "overlapping hunks are clamped",
			hunks: []hunk.Hunk{
				{OldStart: 0, OldLen: 2, NewStart: 0, NewLen: 2},
				{OldStart: 1, OldLen: 2, NewStart: 1, NewLen: 2},
			},
			before: lines("a", "b", "c", "d"),
			after:  lines("w", "x", "y", "d"),
			expect: []Alignment{
				changed(0, 2, 0, 2),
				changed(2, 3, 2, 3),
				same(3, 4, 3, 4),
			},
		},
		{
			description: "out of order hunks are skipped",
			hunks: []hunk.Hunk{
				{OldStart: 3, OldLen: 1, NewStart: 3, NewLen: 1},
				{OldStart: 0, OldLen: 1, NewStart: 0, NewLen: 1},
			},
			before: lines("a", "b", "c", "d"),
			after:  lines("A", "b", "c", "D"),
			expect: []Alignment{
				changed(0, 3, 0, 3),
				changed(3, 4, 3, 4),
			},
		},
		{
			description: "context with mismatched length is changed",
			hunks:       []hunk.Hunk{{OldStart: 0, OldLen: 0, NewStart: 0, NewLen: 1}},
			before:      lines("a"),
			after:       lines("x", "y", "a"),
			expect: []Alignment{
				changed(0, 0, 0, 1),
				changed(0, 1, 1, 3),
			},
		},
	} {
		tc := tc // enable parallel sub-tests
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()
			alignments := FromHunks(tc.hunks, tc.before, tc.after)
			assert.Equal(t, tc.expect, withoutSource(alignments))
			assert.NoError(t, Check(alignments, tc.before, tc.after))
		})
	}
}

func TestFromHunksExhaustiveCoverage(t *testing.T) {
	t.Parallel()
	hunks := []hunk.Hunk{
		{OldStart: 2, OldLen: 2, NewStart: 2, NewLen: 3},
		{OldStart: 6, OldLen: 1, NewStart: 7, NewLen: 2},
	}
	before := lines("0", "1", "2", "3", "4", "5", "6", "7", "8")
	after := lines("0", "1", "a", "b", "c", "4", "5", "x", "y", "7", "8")

	alignments := FromHunks(hunks, before, after)
	require.NoError(t, Check(alignments, before, after))
	assert.Equal(t, []Alignment{
		same(0, 2, 0, 2),
		changed(2, 4, 2, 5),
		same(4, 6, 5, 7),
		changed(6, 7, 7, 9),
		same(7, 9, 9, 11),
	}, withoutSource(alignments))
}

func TestFromHunksSourceLines(t *testing.T) {
	t.Parallel()
	before := lines("a", "b", "X", "c")
	after := lines("a", "new", "b", "Y", "c", "extra")
	hunks := []hunk.Hunk{
		{OldStart: 1, OldLen: 0, NewStart: 1, NewLen: 1},
		{OldStart: 2, OldLen: 1, NewStart: 3, NewLen: 1},
	}

	alignments := FromHunks(hunks, before, after)
	require.NoError(t, Check(alignments, before, after))
	assert.Equal(t, []Alignment{
		same(0, 1, 0, 1),
		{
			Before:  span.Span{Start: 1, End: 1},
			After:   span.Span{Start: 1, End: 2},
			Changed: true,
			Source:  &SourceLines{New: &LineRange{First: 2, Last: 2}},
		},
		same(1, 2, 2, 3),
		{
			Before:  span.Span{Start: 2, End: 3},
			After:   span.Span{Start: 3, End: 4},
			Changed: true,
			Source: &SourceLines{
				Old: &LineRange{First: 3, Last: 3},
				New: &LineRange{First: 4, Last: 4},
			},
		},
		// trailing context git never reported, so it has no source lines
		changed(3, 4, 4, 6),
	}, alignments)
}

func TestFromMatches(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		description string
		matches     []match.Match
		before      linebuf.Buffer
		after       linebuf.Buffer
		expect      []Alignment
	}{
		{
			description: "both empty",
			before:      lines(),
			after:       lines(),
			expect:      []Alignment{},
		},
		{
			description: "pure addition",
			before:      lines(),
			after:       lines("a", "b"),
			expect:      []Alignment{changed(0, 0, 0, 2)},
		},
		{
			description: "pure deletion",
			before:      lines("a", "b"),
			after:       lines(),
			expect:      []Alignment{changed(0, 2, 0, 0)},
		},
		{
			description: "no matches",
			before:      lines("a", "b"),
			after:       lines("c"),
			expect:      []Alignment{changed(0, 2, 0, 1)},
		},
		{
			description: "substitution",
			matches: []match.Match{
				{BeforeStart: 0, AfterStart: 0, Len: 1},
				{BeforeStart: 2, AfterStart: 2, Len: 2},
			},
			before: lines("a", "b", "c", "d"),
			after:  lines("a", "x", "c", "d"),
			expect: []Alignment{
				same(0, 1, 0, 1),
				changed(1, 2, 1, 2),
				same(2, 4, 2, 4),
			},
		},
		{
			description: "adjacent matches",
			matches: []match.Match{
				{BeforeStart: 0, AfterStart: 0, Len: 1},
				{BeforeStart: 1, AfterStart: 1, Len: 1},
			},
			before: lines("a", "b"),
			after:  lines("a", "b"),
			expect: []Alignment{
				same(0, 1, 0, 1),
				same(1, 2, 1, 2),
			},
		},
		{
			description: "crossing match is dropped",
			matches: []match.Match{
				{BeforeStart: 0, AfterStart: 1, Len: 1},
				{BeforeStart: 1, AfterStart: 0, Len: 1},
			},
			before: lines("a", "b"),
			after:  lines("b", "a"),
			expect: []Alignment{
				changed(0, 0, 0, 1),
				same(0, 1, 1, 2),
				changed(1, 2, 2, 2),
			},
		},
		{
			description: "overlapping match is trimmed",
			matches: []match.Match{
				{BeforeStart: 0, AfterStart: 0, Len: 2},
				{BeforeStart: 1, AfterStart: 1, Len: 2},
			},
			before: lines("a", "b", "c"),
			after:  lines("a", "b", "c"),
			expect: []Alignment{
				same(0, 2, 0, 2),
				same(2, 3, 2, 3),
			},
		},
		{
			description: "match beyond end of file is trimmed",
			matches:     []match.Match{{BeforeStart: 1, AfterStart: 1, Len: 5}},
			before:      lines("a", "b"),
			after:       lines("x", "b", "c"),
			expect: []Alignment{
				changed(0, 1, 0, 1),
				same(1, 2, 1, 2),
				changed(2, 2, 2, 3),
			},
		},
		{
			description: "match with different content is dropped",
			matches:     []match.Match{{BeforeStart: 0, AfterStart: 0, Len: 1}},
			before:      lines("a"),
			after:       lines("b"),
			expect:      []Alignment{changed(0, 1, 0, 1)},
		},
	} {
		tc := tc // enable parallel sub-tests
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()
			alignments := FromMatches(tc.matches, tc.before, tc.after)
			assert.Equal(t, tc.expect, alignments)
			assert.NoError(t, Check(alignments, tc.before, tc.after))
		})
	}
}

func TestFromContent(t *testing.T) {
	t.Parallel()
	before := lines("a", "b", "c", "d")
	after := lines("a", "x", "c", "d")
	assert.Equal(t, []Alignment{
		same(0, 1, 0, 1),
		changed(1, 2, 1, 2),
		same(2, 4, 2, 4),
	}, FromContent(before, after))
}

func randomLines(rng *rand.Rand, n int) linebuf.Buffer {
	l := make([]string, n)
	for i := range l {
		l[i] = fmt.Sprint(rng.Intn(4))
	}
	return linebuf.New(l)
}

func TestAssembleAlwaysPartitions(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	randomSpan := func(limit int) span.Span {
		start := rng.Intn(limit+3) - 1
		return span.Span{Start: start, End: start + rng.Intn(4)}
	}

	for i := 0; i < 200; i++ {
		before, after := randomLines(rng, rng.Intn(12)), randomLines(rng, rng.Intn(12))
		var regions []Region
		for n := rng.Intn(5); n > 0; n-- {
			regions = append(regions, Region{Before: randomSpan(before.Len()), After: randomSpan(after.Len())})
		}
		for _, kind := range []Kind{ChangedRegions, UnchangedRegions} {
			alignments := Assemble(regions, kind, before, after)
			require.NoError(t, Check(alignments, before, after), "%s %v\nbefore: %v\nafter: %v", kind, regions, before.Lines(), after.Lines())
		}
	}
}

func TestFromContentIdempotent(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		before, after := randomLines(rng, rng.Intn(20)), randomLines(rng, rng.Intn(20))
		alignments := FromContent(before, after)
		require.NoError(t, Check(alignments, before, after))
		assert.Equal(t, alignments, FromMatches(Unchanged(alignments), before, after))
	}
}

func TestFromHunksIdempotent(t *testing.T) {
	t.Parallel()
	before := lines("a", "b", "X", "c", "d")
	after := lines("a", "b", "Y", "c", "d")
	alignments := FromHunks([]hunk.Hunk{{OldStart: 2, OldLen: 1, NewStart: 2, NewLen: 1}}, before, after)

	unchanged := Unchanged(alignments)
	assert.Equal(t, []match.Match{
		{BeforeStart: 0, AfterStart: 0, Len: 2},
		{BeforeStart: 3, AfterStart: 3, Len: 2},
	}, unchanged)
	assert.Equal(t, withoutSource(alignments), FromMatches(unchanged, before, after))
}

func TestChanged(t *testing.T) {
	t.Parallel()
	alignments := []Alignment{same(0, 1, 0, 1), changed(1, 2, 1, 3), same(2, 3, 3, 4)}
	assert.Equal(t, []Alignment{changed(1, 2, 1, 3)}, Changed(alignments))
	assert.Empty(t, Changed(alignments[:1]))
}

func TestCheck(t *testing.T) {
	t.Parallel()
	before := lines("a", "b")
	after := lines("a", "c")
	for _, tc := range []struct {
		description string
		alignments  []Alignment
		expectErr   string
	}{
		{
			description: "valid",
			alignments:  []Alignment{same(0, 1, 0, 1), changed(1, 2, 1, 2)},
		},
		{
			description: "missing alignments",
			expectErr:   "no alignments for 2 before lines and 2 after lines",
		},
		{
			description: "gap",
			alignments:  []Alignment{same(0, 1, 0, 1), changed(1, 2, 2, 2)},
			expectErr:   "alignment 1 [1,2)~[2,2): after starts at 2, expected 1",
		},
		{
			description: "unchanged content differs",
			alignments:  []Alignment{same(0, 2, 0, 2)},
			expectErr:   "alignment 0 [0,2)=[0,2): unchanged lines are not identical",
		},
		{
			description: "empty alignment",
			alignments:  []Alignment{same(0, 1, 0, 1), changed(1, 1, 1, 1), changed(1, 2, 1, 2)},
			expectErr:   "alignment 1 [1,1)~[1,1): empty on both sides",
		},
		{
			description: "short coverage",
			alignments:  []Alignment{same(0, 1, 0, 1), changed(1, 2, 1, 1)},
			expectErr:   "alignments cover 1 after lines, expected 2",
		},
	} {
		tc := tc // enable parallel sub-tests
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()
			err := Check(tc.alignments, before, after)
			if tc.expectErr != "" {
				assert.EqualError(t, err, tc.expectErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
