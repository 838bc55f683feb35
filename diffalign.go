// Package diffalign aligns the "before" and "after" versions of files for side-by-side review.
//
// Each FileDiff partitions both versions of a file into an ordered, gapless sequence of Alignments.
// Unchanged Alignments pair identical lines, changed Alignments pair the lines which differ.
package diffalign

import (
	"github.com/johnstarich/go/diffalign/internal/align"
	"github.com/johnstarich/go/diffalign/internal/binary"
	"github.com/johnstarich/go/diffalign/internal/hunk"
	"github.com/johnstarich/go/diffalign/internal/linebuf"
	"github.com/johnstarich/go/diffalign/internal/span"
	"go.uber.org/zap"
)

// Side is one version of a file
type Side struct {
	Path  string   `json:"path"`
	Lines []string `json:"lines,omitempty"` // empty for binary files
}

// FileDiff contains a file's before and after versions and the alignments between them
type FileDiff struct {
	Before     *Side             `json:"before,omitempty"` // nil if the file was added
	After      *Side             `json:"after,omitempty"`  // nil if the file was deleted
	Binary     bool              `json:"binary"`
	Alignments []align.Alignment `json:"alignments"`
}

// Path returns the file's path, preferring the after version's path
func (d FileDiff) Path() string {
	switch {
	case d.After != nil:
		return d.After.Path
	case d.Before != nil:
		return d.Before.Path
	default:
		return ""
	}
}

// Kind returns whether the file was added, deleted, or modified
func (d FileDiff) Kind() ChangeKind {
	switch {
	case d.Before == nil:
		return KindAdded
	case d.After == nil:
		return KindDeleted
	default:
		return KindModified
	}
}

// IsRename returns true if both versions exist under different paths
func (d FileDiff) IsRename() bool {
	return d.Before != nil && d.After != nil && d.Before.Path != d.After.Path
}

// Stats summarizes a FileDiff's changed lines
type Stats struct {
	Added          int `json:"added"`
	Removed        int `json:"removed"`
	ChangedRegions int `json:"changedRegions"`
}

// Stats counts the lines inside changed alignments
func (d FileDiff) Stats() Stats {
	var stats Stats
	for _, a := range align.Changed(d.Alignments) {
		stats.Added += a.After.Len()
		stats.Removed += a.Before.Len()
		stats.ChangedRegions++
	}
	return stats
}

// Input is the raw content of one file to align
type Input struct {
	BeforePath string
	AfterPath  string
	Before     []byte      // nil if the file was added, or if binary content was not loaded
	After      []byte      // nil if the file was deleted, or if binary content was not loaded
	Hunks      []hunk.Hunk // nil if no diff engine reported hunks
	Binary     bool        // true if the source already knows either side is binary
}

// Path returns the input's path, preferring the after path
func (i Input) Path() string {
	if i.AfterPath != "" {
		return i.AfterPath
	}
	return i.BeforePath
}

// NewFileDiff aligns a single file.
// Binary files are not aligned. Otherwise, hunks are used when present, falling back to matching content.
func NewFileDiff(input Input, options Options) FileDiff {
	options = options.withDefaults()
	before := buffer(input.BeforePath, input.Before)
	after := buffer(input.AfterPath, input.After)
	diff := FileDiff{
		Before:     side(input.BeforePath, before),
		After:      side(input.AfterPath, after),
		Alignments: []align.Alignment{},
	}
	if input.Binary || binary.IsBinary(input.Before) || binary.IsBinary(input.After) {
		diff.Binary = true
		if diff.Before != nil {
			diff.Before.Lines = nil
		}
		if diff.After != nil {
			diff.After.Lines = nil
		}
		options.Logger.Debug("Skipping binary file", zap.String("path", input.Path()))
		return diff
	}

	diff.Alignments = alignBuffers(input.Hunks, before, after, options)
	return diff
}

func alignBuffers(hunks []hunk.Hunk, before, after linebuf.Buffer, options Options) []align.Alignment {
	if hunks != nil && options.Strategy == TrustHunks {
		return align.FromHunks(hunks, before, after)
	}
	if options.MaxMatchLines > 0 && before.Len() > options.MaxMatchLines && after.Len() > options.MaxMatchLines {
		options.Logger.Debug("File too large to match, marking all lines changed",
			zap.Int("before", before.Len()),
			zap.Int("after", after.Len()),
		)
		whole := align.Region{
			Before: span.New(0, before.Len()),
			After:  span.New(0, after.Len()),
		}
		return align.Assemble([]align.Region{whole}, align.ChangedRegions, before, after)
	}
	return align.FromContent(before, after)
}

// buffer returns the file's lines. A file exists if it has a path or content.
func buffer(path string, content []byte) linebuf.Buffer {
	if path == "" && content == nil {
		return linebuf.Absent()
	}
	return linebuf.FromBytes(content)
}

func side(path string, buf linebuf.Buffer) *Side {
	if !buf.Present() {
		return nil
	}
	return &Side{
		Path:  path,
		Lines: buf.Lines(),
	}
}
