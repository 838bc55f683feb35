// Package binary detects binary file content.
//
// Detection is a heuristic: content with a NUL byte near the start is binary.
// Exotic text encodings like UTF-16 are reported as binary too.
package binary

import "bytes"

// SniffLen is the number of leading bytes inspected by IsBinary
const SniffLen = 8 << 10

// IsBinary returns true if a NUL byte occurs in the first SniffLen bytes of b
func IsBinary(b []byte) bool {
	if len(b) > SniffLen {
		b = b[:SniffLen]
	}
	return bytes.IndexByte(b, 0) >= 0
}
