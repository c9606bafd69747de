package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"stylekit/internal/diag"
	"stylekit/internal/source"
	"stylekit/internal/token"
)

// Source: курсор по тексту таблицы стилей.
type Source struct {
	content string
	off     int
	line    int // 1-based, relative to content
	col     int // 1-based, relative to content

	anchorLine int
	anchorCol  int

	comments []string
}

// Mark is a saved cursor position.
type Mark struct {
	off      int
	line     int
	col      int
	comments int // buffered comments at the time of the mark
}

// New creates a cursor over a whole stylesheet.
func New(content string) *Source {
	return NewSub(content, 1, 1)
}

// NewSub creates a cursor over a fragment that starts at the given line and
// column of the enclosing stylesheet.
func NewSub(content string, line, column int) *Source {
	if line < 1 {
		line = 1
	}
	if column < 1 {
		column = 1
	}
	return &Source{
		content:    content,
		line:       1,
		col:        1,
		anchorLine: line,
		anchorCol:  column,
	}
}

// FromFile creates a cursor over a loaded stylesheet.
func FromFile(f *source.File) *Source {
	return New(string(f.Content))
}

// EOF reports whether the cursor reached the end of input.
func (s *Source) EOF() bool {
	return s.off >= len(s.content)
}

// Current returns the byte under the cursor, or 0 at end of input.
func (s *Source) Current() byte {
	if s.EOF() {
		return 0
	}
	return s.content[s.off]
}

// Peek returns the byte n positions ahead of the cursor, or 0.
func (s *Source) Peek(n int) byte {
	i := s.off + n
	if i < 0 || i >= len(s.content) {
		return 0
	}
	return s.content[i]
}

// Next advances one byte and returns the byte it moved past.
func (s *Source) Next() byte {
	if s.EOF() {
		return 0
	}
	b := s.content[s.off]
	s.off++
	if b == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return b
}

// Skip advances n bytes, stopping at end of input.
func (s *Source) Skip(n int) {
	for i := 0; i < n && !s.EOF(); i++ {
		s.Next()
	}
}

// Line is the 1-based line relative to this source's content.
func (s *Source) Line() int { return s.line }

// Column is the 1-based column relative to this source's content.
func (s *Source) Column() int { return s.col }

// OriginalLine is the line in the enclosing stylesheet.
func (s *Source) OriginalLine() int {
	return s.anchorLine + s.line - 1
}

// OriginalColumn is the column in the enclosing stylesheet.
func (s *Source) OriginalColumn() int {
	if s.line == 1 {
		return s.anchorCol + s.col - 1
	}
	return s.col
}

// Index is the byte offset of the cursor.
func (s *Source) Index() int { return s.off }

// Remaining is the number of unread bytes.
func (s *Source) Remaining() int { return len(s.content) - s.off }

// Rest returns the unread content without consuming it.
func (s *Source) Rest() string { return s.content[s.off:] }

// Content returns the full text this cursor was created over.
func (s *Source) Content() string { return s.content }

// Mark saves the current position.
func (s *Source) Mark() Mark {
	return Mark{off: s.off, line: s.line, col: s.col, comments: len(s.comments)}
}

// Reset moves back to a saved position. This is the only way the cursor
// moves backwards. Comments buffered after the mark are dropped so they
// are collected again from the text.
func (s *Source) Reset(m Mark) {
	s.off, s.line, s.col = m.off, m.line, m.col
	if m.comments < len(s.comments) {
		s.comments = s.comments[:m.comments]
	}
}

// Since returns the text consumed after the mark.
func (s *Source) Since(m Mark) string {
	return s.content[m.off:s.off]
}

// RegionFrom is the region of file consumed after the mark.
func (s *Source) RegionFrom(m Mark, file source.FileID) source.Region {
	start, err := safecast.Conv[uint32](m.off)
	if err != nil {
		panic(fmt.Errorf("region start overflow: %w", err))
	}
	end, err := safecast.Conv[uint32](s.off)
	if err != nil {
		panic(fmt.Errorf("region end overflow: %w", err))
	}
	return source.Region{File: file, Start: start, End: end}
}

// Errorf builds a syntax error at the current original position.
func (s *Source) Errorf(code diag.Code, format string, args ...any) *diag.SyntaxError {
	return diag.NewSyntaxError(code, s.OriginalLine(), s.OriginalColumn(), format, args...)
}

// Matches reports whether the current byte matches t.
func (s *Source) Matches(t token.Token) bool {
	return !s.EOF() && t.Matches(s.Current())
}

// OptionallyPresent consumes the current byte if it matches t.
func (s *Source) OptionallyPresent(t token.Token) bool {
	if s.Matches(t) {
		s.Next()
		return true
	}
	return false
}

// Expect consumes t or fails with SynExpectedToken.
func (s *Source) Expect(t token.Token) error {
	if s.OptionallyPresent(t) {
		return nil
	}
	return s.Errorf(diag.SynExpectedToken, "expected %s", t.Description())
}

// ReadWhile consumes bytes while they match t.
func (s *Source) ReadWhile(t token.Token) string {
	start := s.off
	for s.Matches(t) {
		s.Next()
	}
	return s.content[start:s.off]
}

// SkipWhitespace consumes whitespace only.
func (s *Source) SkipWhitespace() {
	for s.Matches(token.Whitespace) {
		s.Next()
	}
}
