package report

import (
	"github.com/fatih/color"
	"github.com/johnstarich/go/diffalign"
)

// Status represents a file's change status, from added to binary
type Status int

const (
	statusModified Status = iota
	statusAdded
	statusDeleted
	statusRenamed
	statusBinary
)

// NewStatus categorizes the given file diff
func NewStatus(diff diffalign.FileDiff) Status {
	switch {
	case diff.Binary:
		return statusBinary
	case diff.IsRename():
		return statusRenamed
	}
	switch diff.Kind() {
	case diffalign.KindAdded:
		return statusAdded
	case diffalign.KindDeleted:
		return statusDeleted
	default:
		return statusModified
	}
}

func (s Status) String() string {
	switch s {
	case statusAdded:
		return "added"
	case statusDeleted:
		return "deleted"
	case statusRenamed:
		return "renamed"
	case statusBinary:
		return "binary"
	default:
		return "modified"
	}
}

func green() *color.Color     { return color.New(color.FgGreen) }
func yellow() *color.Color    { return color.New(color.FgYellow) }
func red() *color.Color       { return color.New(color.FgRed) }
func cyan() *color.Color      { return color.New(color.FgCyan) }
func boldColor() *color.Color { return color.New(color.Bold) }
func faint() *color.Color     { return color.New(color.Faint) }

// Colorize formats 'str' with this status's assigned color
func (s Status) Colorize(str string) string {
	return s.color().Sprint(str)
}

func (s Status) color() *color.Color {
	switch s {
	case statusAdded:
		return green()
	case statusDeleted:
		return red()
	case statusRenamed:
		return cyan()
	case statusBinary:
		return faint()
	default:
		return yellow()
	}
}

// Emoji returns this status's assigned emoji
func (s Status) Emoji() string {
	switch s {
	case statusAdded:
		return "🟢"
	case statusDeleted:
		return "🔴"
	case statusRenamed:
		return "🔵"
	case statusBinary:
		return "⚪"
	default:
		return "🟡"
	}
}
