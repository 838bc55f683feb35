package hunk

import "strings"

// Builder folds a sequence of line edit operations into Hunks.
// Consecutive deletes and inserts become one Hunk, equal lines end it.
type Builder struct {
	oldPos, newPos int
	open           bool
	pending        Hunk
	hunks          []Hunk
}

// Seek moves both cursors to the given 0-indexed lines, ending any pending Hunk
func (b *Builder) Seek(oldPos, newPos int) {
	b.flush()
	b.oldPos, b.newPos = oldPos, newPos
}

// Equal skips n lines present in both files
func (b *Builder) Equal(n int) {
	if n <= 0 {
		return
	}
	b.flush()
	b.oldPos += n
	b.newPos += n
}

// Delete records n lines only present in the old file
func (b *Builder) Delete(n int) {
	if n <= 0 {
		return
	}
	b.begin()
	b.pending.OldLen += n
	b.oldPos += n
}

// Insert records n lines only present in the new file
func (b *Builder) Insert(n int) {
	if n <= 0 {
		return
	}
	b.begin()
	b.pending.NewLen += n
	b.newPos += n
}

// Hunks ends any pending Hunk and returns all Hunks recorded so far
func (b *Builder) Hunks() []Hunk {
	b.flush()
	return append([]Hunk(nil), b.hunks...)
}

func (b *Builder) begin() {
	if !b.open {
		b.pending = Hunk{OldStart: b.oldPos, NewStart: b.newPos}
		b.open = true
	}
}

func (b *Builder) flush() {
	if b.open {
		b.hunks = append(b.hunks, b.pending)
		b.open = false
	}
}

// LineCount returns the number of lines in text, counting a final line without a line ending
func LineCount(text string) int {
	n := strings.Count(text, "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
