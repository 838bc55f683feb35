package linebuf

import (
	"testing"

	"github.com/johnstarich/go/diffalign/internal/span"
	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		description string
		text        string
		expect      []string
	}{
		{
			description: "empty",
			text:        "",
			expect:      nil,
		},
		{
			description: "single newline",
			text:        "\n",
			expect:      []string{""},
		},
		{
			description: "trailing newline",
			text:        "a\nb\n",
			expect:      []string{"a", "b"},
		},
		{
			description: "no trailing newline",
			text:        "a\nb",
			expect:      []string{"a", "b"},
		},
		{
			description: "crlf",
			text:        "a\r\nb\r\n",
			expect:      []string{"a", "b"},
		},
		{
			description: "bare carriage return at end is kept",
			text:        "a\r",
			expect:      []string{"a\r"},
		},
		{
			description: "blank lines",
			text:        "a\n\n\nb\n",
			expect:      []string{"a", "", "", "b"},
		},
	} {
		tc := tc // enable parallel sub-tests
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expect, Split(tc.text))
		})
	}
}

func TestFromBytes(t *testing.T) {
	t.Parallel()
	b := FromBytes([]byte("one\ntwo\xff\n"))
	assert.True(t, b.Present())
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "two\uFFFD", b.Line(1))

	empty := FromBytes(nil)
	assert.True(t, empty.Present())
	assert.Equal(t, 0, empty.Len())
}

func TestAbsent(t *testing.T) {
	t.Parallel()
	b := Absent()
	assert.False(t, b.Present())
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Lines())
}

func TestImmutable(t *testing.T) {
	t.Parallel()
	lines := []string{"a", "b"}
	b := New(lines)
	lines[0] = "changed"
	assert.Equal(t, "a", b.Line(0))

	out := b.Lines()
	out[1] = "changed"
	assert.Equal(t, "b", b.Line(1))
}

func TestSlice(t *testing.T) {
	t.Parallel()
	b := New([]string{"a", "b", "c"})
	assert.Equal(t, []string{"b", "c"}, b.Slice(span.Span{Start: 1, End: 3}))
	assert.Equal(t, []string{"c"}, b.Slice(span.Span{Start: 2, End: 10}))
	assert.Empty(t, b.Slice(span.Span{Start: 5, End: 10}))
}

func TestEqual(t *testing.T) {
	t.Parallel()
	a := New([]string{"x", "a", "b"})
	b := New([]string{"a", "b", "y"})
	assert.True(t, a.Equal(span.Span{Start: 1, End: 3}, b, span.Span{Start: 0, End: 2}))
	assert.False(t, a.Equal(span.Span{Start: 0, End: 2}, b, span.Span{Start: 0, End: 2}))
	assert.False(t, a.Equal(span.Span{Start: 1, End: 3}, b, span.Span{Start: 0, End: 1}), "lengths differ")
	assert.False(t, a.Equal(span.Span{Start: 2, End: 4}, b, span.Span{Start: 0, End: 2}), "out of range")
	assert.True(t, a.Equal(span.Span{Start: 3, End: 3}, b, span.Span{Start: 0, End: 0}), "empty spans")
}
