package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Location identifies the source position of a command for diagnostics.
type Location struct {
	Filename string
	Line     int
}

func (loc Location) String() string {
	return fmt.Sprintf("%s:%d", loc.Filename, loc.Line)
}

// Line is one non-empty source line split into whitespace-separated tokens,
// with comments already stripped.
type Line struct {
	Tokens []string
	Loc    Location
}

const commentMarker = "//"

// Lexer reads VM source line by line. Blank lines and comment-only lines are
// skipped; inline comments are cut off before tokenization.
type Lexer struct {
	scanner  *bufio.Scanner
	filename string
	line     int
}

func New(input io.Reader, filename string) *Lexer {
	return &Lexer{
		scanner:  bufio.NewScanner(input),
		filename: filename,
	}
}

// Next returns the next line that carries tokens. It returns io.EOF when the
// input is exhausted.
func (l *Lexer) Next() (Line, error) {
	for l.scanner.Scan() {
		l.line++
		text := l.scanner.Text()
		if idx := strings.Index(text, commentMarker); idx >= 0 {
			text = text[:idx]
		}
		tokens := strings.Fields(text)
		if len(tokens) == 0 {
			continue
		}
		return Line{
			Tokens: tokens,
			Loc:    Location{Filename: l.filename, Line: l.line},
		}, nil
	}
	if err := l.scanner.Err(); err != nil {
		return Line{}, fmt.Errorf("reading %s: %w", l.filename, err)
	}
	return Line{}, io.EOF
}
