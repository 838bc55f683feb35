package diffalign

import "github.com/pkg/errors"

// ChangeKind describes how a file changed
type ChangeKind int

// Change kinds
const (
	KindModified ChangeKind = iota
	KindAdded
	KindDeleted
)

func (k ChangeKind) String() string {
	switch k {
	case KindAdded:
		return "added"
	case KindDeleted:
		return "deleted"
	default:
		return "modified"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k ChangeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Strategy selects how alignments are computed
type Strategy int

// Alignment strategies
const (
	// TrustHunks uses a diff engine's hunks when available, otherwise matches content
	TrustHunks Strategy = iota
	// MatchContent always matches content, ignoring any hunks
	MatchContent
)

func (s Strategy) String() string {
	switch s {
	case MatchContent:
		return "match"
	default:
		return "git"
	}
}

// ParseStrategy parses a Strategy's String representation
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "git", "":
		return TrustHunks, nil
	case "match":
		return MatchContent, nil
	default:
		return 0, errors.Errorf("unrecognized alignment engine %q, must be one of: git, match", s)
	}
}
