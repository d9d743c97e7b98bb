package statement

import "fmt"

// ParseError reports statement text that cannot be turned into a
// transaction safely.
type ParseError struct {
	// Line is the 1-based line or record number, 0 when unknown.
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s %q", e.Reason, e.Text)
}
