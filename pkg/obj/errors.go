package obj

import "fmt"

// LexError reports a malformed token on an otherwise recognized line,
// e.g. a non-numeric value where a coordinate or index is expected.
type LexError struct {
	Line  int    // 1-based source line
	Token string // offending token
	Raw   string // full line text
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d: malformed token %q in %q", e.Line, e.Token, e.Raw)
}

// ParseError reports a structurally invalid record, e.g. a face with
// fewer than 3 corners or a vertex with missing components.
type ParseError struct {
	Line int
	Raw  string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Raw)
}

// AssemblyError reports a face that cannot be compiled into a mesh,
// e.g. an attribute index pointing past the end of its sequence.
// Corner is 1-based within the face; 0 means the whole face.
type AssemblyError struct {
	Line   int // source line of the face
	Corner int
	Msg    string
}

func (e *AssemblyError) Error() string {
	if e.Corner > 0 {
		return fmt.Sprintf("face at line %d, corner %d: %s", e.Line, e.Corner, e.Msg)
	}
	return fmt.Sprintf("face at line %d: %s", e.Line, e.Msg)
}
