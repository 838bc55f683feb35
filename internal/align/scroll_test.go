package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocate(t *testing.T) {
	t.Parallel()
	// before: a b       after: a x y b
	alignments := []Alignment{
		same(0, 1, 0, 1),
		changed(1, 1, 1, 3),
		same(1, 2, 3, 4),
	}
	for _, tc := range []struct {
		description string
		pane        Pane
		line        int
		expectIndex int
		expectFound bool
	}{
		{description: "first before line", pane: BeforePane, line: 0, expectIndex: 0, expectFound: true},
		{description: "skips empty span", pane: BeforePane, line: 1, expectIndex: 2, expectFound: true},
		{description: "inside insertion", pane: AfterPane, line: 2, expectIndex: 1, expectFound: true},
		{description: "last after line", pane: AfterPane, line: 3, expectIndex: 2, expectFound: true},
		{description: "past the end", pane: BeforePane, line: 2},
		{description: "negative", pane: AfterPane, line: -1},
	} {
		tc := tc // enable parallel sub-tests
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()
			index, found := Locate(alignments, tc.pane, tc.line)
			assert.Equal(t, tc.expectFound, found)
			assert.Equal(t, tc.expectIndex, index)
		})
	}
}

func TestCounterpart(t *testing.T) {
	t.Parallel()
	// before: old1 old2 same       after: new1 new2 new3 same
	resized := []Alignment{
		changed(0, 2, 0, 3),
		same(2, 3, 3, 4),
	}
	// before: a b       after: a x y b
	inserted := []Alignment{
		same(0, 1, 0, 1),
		changed(1, 1, 1, 3),
		same(1, 2, 3, 4),
	}
	for _, tc := range []struct {
		description string
		alignments  []Alignment
		pane        Pane
		line        int
		expectLine  int
		expectFound bool
	}{
		{description: "unchanged maps one-to-one", alignments: resized, pane: BeforePane, line: 2, expectLine: 3, expectFound: true},
		{description: "unchanged maps back", alignments: resized, pane: AfterPane, line: 3, expectLine: 2, expectFound: true},
		{description: "changed keeps offset", alignments: resized, pane: BeforePane, line: 1, expectLine: 1, expectFound: true},
		{description: "changed clamps to shorter side", alignments: resized, pane: AfterPane, line: 2, expectLine: 1, expectFound: true},
		{description: "insertion maps to its anchor", alignments: inserted, pane: AfterPane, line: 2, expectLine: 1, expectFound: true},
		{description: "line after insertion", alignments: inserted, pane: BeforePane, line: 1, expectLine: 3, expectFound: true},
		{description: "out of range", alignments: inserted, pane: AfterPane, line: 4},
		{description: "no alignments", pane: BeforePane, line: 0},
	} {
		tc := tc // enable parallel sub-tests
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()
			line, found := Counterpart(tc.alignments, tc.pane, tc.line)
			assert.Equal(t, tc.expectFound, found)
			assert.Equal(t, tc.expectLine, line)
		})
	}
}

func TestPane(t *testing.T) {
	t.Parallel()
	assert.Equal(t, AfterPane, BeforePane.Other())
	assert.Equal(t, BeforePane, AfterPane.Other())
	assert.Equal(t, "before", BeforePane.String())
	assert.Equal(t, "after", AfterPane.String())
}
