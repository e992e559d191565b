// Package dxf reads and writes a subset of the DXF drawing interchange
// format: LINE, CIRCLE, ARC, LWPOLYLINE/POLYLINE, ELLIPSE, TEXT/MTEXT,
// and DIMENSION entities plus the LAYER, LTYPE, and STYLE tables. The
// codec transforms in-memory streams only; byte I/O belongs to callers.
package dxf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tag is one group-code/value pair of a DXF stream. The group code tells
// the value's semantic role (10/20 = X/Y of a point, 8 = layer name, ...).
// Line records the 1-based source line of the code for error reporting.
type Tag struct {
	Code  int
	Value string
	Line  int
}

// Float returns the value as a float64. Group codes 10-59 carry floats.
func (t Tag) Float() float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	return f
}

// Int returns the value as an int. Group codes 60-79 and 170-179 carry
// integers.
func (t Tag) Int() int {
	i, _ := strconv.Atoi(strings.TrimSpace(t.Value))
	return i
}

// Text returns the value with surrounding whitespace removed.
func (t Tag) Text() string {
	return strings.TrimSpace(t.Value)
}

// Scanner reads a DXF stream as a sequence of tags. Each tag occupies two
// lines: the group code, then the value. Blank code lines are skipped.
type Scanner struct {
	reader *bufio.Reader
	tag    Tag
	line   int
	err    error
}

// NewScanner creates a Scanner over r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReader(r)}
}

// Next advances to the next tag. It returns false at end of stream or on
// the first malformed pair; Err distinguishes the two.
func (s *Scanner) Next() bool {
	for {
		codeLine, err := s.reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				s.err = err
			} else if strings.TrimSpace(codeLine) != "" {
				s.err = fmt.Errorf("line %d: group code without value", s.line+1)
			}
			return false
		}
		s.line++

		codeStr := strings.TrimSpace(codeLine)
		if codeStr == "" {
			continue
		}

		code, err := strconv.Atoi(codeStr)
		if err != nil {
			s.err = fmt.Errorf("line %d: malformed group code %q", s.line, codeStr)
			return false
		}

		valueLine, err := s.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			s.err = err
			return false
		}
		s.line++

		// Keep leading whitespace in the value: the DXF spec requires it.
		s.tag = Tag{
			Code:  code,
			Value: strings.TrimRight(valueLine, "\r\n"),
			Line:  s.line - 1,
		}
		return true
	}
}

// Tag returns the tag read by the last successful Next.
func (s *Scanner) Tag() Tag {
	return s.tag
}

// Err returns the error that terminated scanning, or nil at clean end of
// stream.
func (s *Scanner) Err() error {
	return s.err
}
