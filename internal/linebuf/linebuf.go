// Package linebuf contains Buffer, an immutable 0-indexed view over a file's lines.
package linebuf

import (
	"strings"
	"unicode/utf8"

	"github.com/johnstarich/go/diffalign/internal/span"
)

// Buffer is an immutable sequence of lines. The zero value is an absent file, e.g. the "before" side of an added file.
type Buffer struct {
	lines   []string
	present bool
}

// New returns a present Buffer holding a copy of lines
func New(lines []string) Buffer {
	return Buffer{
		lines:   append([]string(nil), lines...),
		present: true,
	}
}

// Absent returns a Buffer for a file that does not exist
func Absent() Buffer {
	return Buffer{}
}

// FromBytes splits text content into lines.
// Lines end at "\n" or "\r\n", the final line ending is optional, and invalid UTF-8 is replaced with U+FFFD.
func FromBytes(b []byte) Buffer {
	return Buffer{
		lines:   Split(decode(b)),
		present: true,
	}
}

func decode(b []byte) string {
	s := string(b)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	return s
}

// Split splits s into lines without their line endings
func Split(s string) []string {
	var lines []string
	for len(s) > 0 {
		line, rest, found := strings.Cut(s, "\n")
		if found {
			line = strings.TrimSuffix(line, "\r")
		}
		lines = append(lines, line)
		s = rest
	}
	return lines
}

// Present returns true if the file exists
func (b Buffer) Present() bool {
	return b.present
}

// Len returns the number of lines
func (b Buffer) Len() int {
	return len(b.lines)
}

// Line returns the 0-indexed line i
func (b Buffer) Line(i int) string {
	return b.lines[i]
}

// Lines returns a copy of all lines
func (b Buffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// Slice returns a copy of the lines inside s, clamped to the buffer's bounds
func (b Buffer) Slice(s span.Span) []string {
	start := min(max(s.Start, 0), len(b.lines))
	end := min(max(s.End, start), len(b.lines))
	return append([]string(nil), b.lines[start:end]...)
}

// Equal returns true if b's lines in 'bs' are identical to other's lines in 'os'
func (b Buffer) Equal(bs span.Span, other Buffer, os span.Span) bool {
	if bs.Len() != os.Len() || bs.Start < 0 || os.Start < 0 || bs.End > b.Len() || os.End > other.Len() {
		return false
	}
	for i := 0; i < bs.Len(); i++ {
		if b.lines[bs.Start+i] != other.lines[os.Start+i] {
			return false
		}
	}
	return true
}
