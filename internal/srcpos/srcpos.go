// Package srcpos maps byte offsets in source text to (line, column) pairs.
//
// It exists as a separate, pure, stateless component so that line/column
// computation has a single owner: the lexer tracks only a byte offset as
// it scans and resolves every token's position through a Tracker.
package srcpos

import "github.com/partiql-go/partiql/token"

// Tracker resolves byte offsets against a fixed source text. Constructing
// one is O(n) in the length of text; each Locate call after that is
// O(log n).
type Tracker struct {
	lineStarts []int // byte offset of the first byte of each line
}

// New builds a Tracker over text. text is not retained.
func New(text string) *Tracker {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Tracker{lineStarts: starts}
}

// Locate returns the 1-based line and column for a byte offset.
func (t *Tracker) Locate(offset int) token.Position {
	lo, hi := 0, len(t.lineStarts)-1
	line := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if t.lineStarts[mid] <= offset {
			line = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return token.Position{
		Offset: offset,
		Line:   line + 1,
		Column: offset - t.lineStarts[line] + 1,
	}
}
