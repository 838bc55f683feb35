package align

import (
	"github.com/johnstarich/go/diffalign/internal/linebuf"
	"github.com/johnstarich/go/diffalign/internal/span"
)

// Revert returns after's lines with the Alignment's region replaced by the corresponding before lines.
// Spans are clamped to each file's length.
func Revert(a Alignment, before, after linebuf.Buffer) []string {
	afterSpan := clamp(a.After, 0, after.Len())
	restored := before.Slice(a.Before)
	reverted := make([]string, 0, after.Len()-afterSpan.Len()+len(restored))
	reverted = append(reverted, after.Slice(span.Span{Start: 0, End: afterSpan.Start})...)
	reverted = append(reverted, restored...)
	reverted = append(reverted, after.Slice(span.Span{Start: afterSpan.End, End: after.Len()})...)
	return reverted
}
