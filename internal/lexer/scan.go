package lexer

import (
	"strings"

	"stylekit/internal/diag"
	"stylekit/internal/token"
)

func (s *Source) originalAt(m Mark) (line, col int) {
	line = s.anchorLine + m.line - 1
	if m.line == 1 {
		return line, s.anchorCol + m.col - 1
	}
	return line, m.col
}

func (s *Source) errorAt(m Mark, code diag.Code, format string, args ...any) *diag.SyntaxError {
	line, col := s.originalAt(m)
	return diag.NewSyntaxError(code, line, col, format, args...)
}

// CollectComments skips whitespace and block comments, buffering each
// comment body until FlushComments. An unterminated comment is fatal.
func (s *Source) CollectComments() error {
	_, err := s.SkipTrivia()
	return err
}

// SkipTrivia is CollectComments that also reports whether whitespace was
// consumed. Comments alone do not count: ".a/**/.b" is one compound
// selector, ".a /**/.b" is two.
func (s *Source) SkipTrivia() (spaced bool, err error) {
	for {
		before := s.Remaining()
		s.SkipWhitespace()
		spaced = spaced || s.Remaining() < before
		if s.Current() != '/' || s.Peek(1) != '*' {
			return spaced, nil
		}
		m := s.Mark()
		body, ok := s.readComment()
		if !ok {
			return spaced, s.errorAt(m, diag.SynUnclosedComment, "")
		}
		s.comments = append(s.comments, body)
	}
}

// FlushComments returns the buffered comments and clears the buffer.
func (s *Source) FlushComments() []string {
	if len(s.comments) == 0 {
		return nil
	}
	out := s.comments
	s.comments = nil
	return out
}

// readComment consumes "/* ... */" and returns the trimmed body. At end of
// input it consumes everything and reports false.
func (s *Source) readComment() (string, bool) {
	s.Skip(2)
	rest := s.Rest()
	end := strings.Index(rest, "*/")
	if end < 0 {
		s.Skip(len(rest))
		return "", false
	}
	s.Skip(end + 2)
	return strings.TrimSpace(rest[:end]), true
}

// skipQuoted consumes a quoted string starting at the current quote,
// honouring backslash escapes. Reports false if input ended first.
func (s *Source) skipQuoted() bool {
	quote := s.Next()
	for !s.EOF() {
		b := s.Next()
		switch b {
		case '\\':
			s.Next()
		case quote:
			return true
		}
	}
	return false
}

// Until consumes content up to, but not including, the first byte matching t.
// Quoted strings, comments and parenthesised groups are skipped over as a
// whole, so a delimiter inside them does not stop the scan. At end of input
// everything remaining is returned.
func (s *Source) Until(t token.Token) string {
	start := s.off
	depth := 0
	for !s.EOF() {
		b := s.Current()
		if depth == 0 && t.Matches(b) {
			break
		}
		switch {
		case b == '"' || b == '\'':
			s.skipQuoted()
			continue
		case b == '/' && s.Peek(1) == '*':
			s.readComment()
			continue
		case b == '(':
			depth++
		case b == ')' && depth > 0:
			depth--
		}
		s.Next()
	}
	return s.content[start:s.off]
}

// ChompEnclosedValue consumes a balanced region that starts at the current
// byte (which must match opening) and returns the content between the
// outermost pair. Nested pairs, quoted strings and comments are honoured.
func (s *Source) ChompEnclosedValue(opening, closing token.Token) (string, error) {
	if !s.Matches(opening) {
		return "", s.Errorf(diag.SynExpectedToken, "expected %s", opening.Description())
	}
	unclosed := diag.SynUnclosedBlock
	if opening.Matches('(') {
		unclosed = diag.SynUnclosedFunction
	}

	begin := s.Mark()
	s.Next()
	start := s.off
	depth := 1
	for {
		if s.EOF() {
			return "", s.errorAt(begin, unclosed, "expected %s before end of input", closing.Description())
		}
		b := s.Current()
		switch {
		case b == '"' || b == '\'':
			m := s.Mark()
			if !s.skipQuoted() {
				return "", s.errorAt(m, diag.SynUnclosedString, "")
			}
			continue
		case b == '/' && s.Peek(1) == '*':
			m := s.Mark()
			if _, ok := s.readComment(); !ok {
				return "", s.errorAt(m, diag.SynUnclosedComment, "")
			}
			continue
		case closing.Matches(b):
			depth--
			if depth == 0 {
				content := s.content[start:s.off]
				s.Next()
				return content, nil
			}
		case opening.Matches(b):
			depth++
		}
		s.Next()
	}
}

// ReadIdent consumes a CSS identifier (including custom property names such
// as "--main-color" and vendor-prefixed names). Nothing is consumed when the
// cursor is not at an identifier.
func (s *Source) ReadIdent() (string, bool) {
	m := s.Mark()
	if s.Current() == '-' {
		s.Next()
		if s.Current() == '-' {
			s.Next()
			if s.ReadWhile(token.Name) == "" {
				s.Reset(m)
				return "", false
			}
			return s.Since(m), true
		}
	}
	if !s.Matches(token.NameStart) && s.Current() != '\\' {
		s.Reset(m)
		return "", false
	}
	for !s.EOF() {
		if s.Current() == '\\' && s.Peek(1) != 0 {
			s.Skip(2)
			continue
		}
		if !s.Matches(token.Name) {
			break
		}
		s.Next()
	}
	return s.Since(m), true
}

// ReadString consumes a quoted string and returns it including its quotes.
// It reports false without consuming when the cursor is not at a quote.
func (s *Source) ReadString() (string, bool, error) {
	if !s.Matches(token.Quote) {
		return "", false, nil
	}
	m := s.Mark()
	if !s.skipQuoted() {
		return "", false, s.errorAt(m, diag.SynUnclosedString, "")
	}
	return s.Since(m), true, nil
}
