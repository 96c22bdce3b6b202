package pattern

import "fmt"

// SyntaxError reports a malformed pattern string, naming the byte offset at
// which the problem was detected.
type SyntaxError struct {
	Offset int
	Msg    string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pattern syntax error at offset %d: %s", e.Offset, e.Msg)
}
