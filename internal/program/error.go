package program

import (
	"fmt"
	"regexp"
	"strconv"
)

// CompileError is returned when the backend rejects a program. Log is the
// backend's raw diagnostic text. Line is a best-effort source line number
// pulled out of the diagnostics; not every backend supplies one, so always
// check HasLine before using it.
type CompileError struct {
	Log     string
	Line    int
	HasLine bool
}

func (e *CompileError) Error() string {
	if e.HasLine {
		return fmt.Sprintf("shader compile failed at line %d: %s", e.Line, e.Log)
	}
	return "shader compile failed: " + e.Log
}

// lineRes match the line-number formats seen in GL info logs across drivers:
// Mesa "0:12(3): error: ...", Nvidia "0(12) : error ...", and the
// "ERROR: 0:12:" form. The first capture group is the line number.
var lineRes = []*regexp.Regexp{
	regexp.MustCompile(`ERROR:\s*\d+:(\d+)`),
	regexp.MustCompile(`\b\d+:(\d+)\(\d+\)`),
	regexp.MustCompile(`\b\d+\((\d+)\)\s*:`),
}

// ExtractLine scans backend diagnostic text for a source line number.
// Returns ok=false when no recognized format is present.
func ExtractLine(log string) (line int, ok bool) {
	for _, re := range lineRes {
		m := re.FindStringSubmatch(log)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		return n, true
	}
	return 0, false
}

// NewCompileError builds a CompileError from raw diagnostic text, attaching
// a line number when one can be extracted.
func NewCompileError(log string) *CompileError {
	e := &CompileError{Log: log}
	if n, ok := ExtractLine(log); ok {
		e.Line = n
		e.HasLine = true
	}
	return e
}
