package program

import "strings"

// Source is an author-supplied shader program: vertex and fragment text.
// It is an immutable value; every edit produces a new Source. Identity is
// content-based, so any text change forces a full recompile downstream.
type Source struct {
	VertexText   string
	FragmentText string
}

// New returns a Source with the given vertex and fragment text. Empty vertex
// text means the built-in default vertex program is used at bind time.
func New(vertex, fragment string) Source {
	return Source{VertexText: vertex, FragmentText: fragment}
}

// Key returns the content identity of the source. Two Sources with the same
// text have the same key; any edit yields a different key.
func (s Source) Key() string {
	return s.VertexText + "\x00" + s.FragmentText
}

// IsTrivial reports whether the source is empty or fails the pre-flight
// syntactic scan, in which case the binder substitutes the flat-color
// fallback program instead of sending it to the backend at all.
func (s Source) IsTrivial() bool {
	frag := strings.TrimSpace(s.FragmentText)
	if frag == "" {
		return true
	}
	return !scanWellFormed(frag)
}

// scanWellFormed is a cheap syntactic scan, not a GLSL parse: the text must
// declare a main function and have balanced braces and parentheses outside
// comments and strings. Anything else goes to the backend, whose own
// diagnostics feed CompileError.
func scanWellFormed(text string) bool {
	if !strings.Contains(text, "main") {
		return false
	}
	braces, parens := 0, 0
	inLine, inBlock := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case inLine:
			if c == '\n' {
				inLine = false
			}
		case inBlock:
			if c == '*' && i+1 < len(text) && text[i+1] == '/' {
				inBlock = false
				i++
			}
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			inLine = true
			i++
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			inBlock = true
			i++
		case c == '{':
			braces++
		case c == '}':
			braces--
			if braces < 0 {
				return false
			}
		case c == '(':
			parens++
		case c == ')':
			parens--
			if parens < 0 {
				return false
			}
		}
	}
	return braces == 0 && parens == 0 && !inBlock
}
