package token

import "strings"

// Token is a predicate over a single byte.
type Token interface {
	Matches(b byte) bool
	Description() string
}

// Single matches exactly one byte.
type Single byte

func (s Single) Matches(b byte) bool { return byte(s) == b }

func (s Single) Description() string { return "'" + string(rune(s)) + "'" }

// Class matches a byte class described by a function.
type Class struct {
	Name string
	Fn   func(b byte) bool
}

func (c Class) Matches(b byte) bool { return c.Fn(b) }

func (c Class) Description() string { return c.Name }

type anyOf struct{ tokens []Token }

// Or matches when any of the given tokens matches.
func Or(tokens ...Token) Token {
	return anyOf{tokens: tokens}
}

func (a anyOf) Matches(b byte) bool {
	for _, t := range a.tokens {
		if t.Matches(b) {
			return true
		}
	}
	return false
}

func (a anyOf) Description() string {
	parts := make([]string, len(a.tokens))
	for i, t := range a.tokens {
		parts[i] = t.Description()
	}
	return strings.Join(parts, " or ")
}

type not struct{ t Token }

// Not inverts a token. The zero byte (end of input) never matches.
func Not(t Token) Token { return not{t: t} }

func (n not) Matches(b byte) bool { return b != 0 && !n.t.Matches(b) }

func (n not) Description() string { return "not " + n.t.Description() }

func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// non-ASCII bytes are always name characters
func isNameStart(b byte) bool { return isAlpha(b) || b == '_' || b >= 0x80 }

func isName(b byte) bool { return isNameStart(b) || isDigit(b) || b == '-' }

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

var (
	Whitespace = Class{Name: "whitespace", Fn: isWhitespace}
	Alpha      = Class{Name: "letter", Fn: isAlpha}
	Digit      = Class{Name: "digit", Fn: isDigit}
	Hex        = Class{Name: "hex digit", Fn: isHex}
	NameStart  = Class{Name: "name start", Fn: isNameStart}
	Name       = Class{Name: "name character", Fn: isName}

	OpenBrace    = Single('{')
	CloseBrace   = Single('}')
	OpenParen    = Single('(')
	CloseParen   = Single(')')
	OpenBracket  = Single('[')
	CloseBracket = Single(']')
	Colon        = Single(':')
	Semicolon    = Single(';')
	Comma        = Single(',')
	At           = Single('@')
	Dot          = Single('.')
	Hash         = Single('#')
	Star         = Single('*')
	Hyphen       = Single('-')
	Plus         = Single('+')
	Slash        = Single('/')
	Bang         = Single('!')
	Equals       = Single('=')
	Pipe         = Single('|')
	DoubleQuote  = Single('"')
	SingleQuote  = Single('\'')
	Quote        = Or(DoubleQuote, SingleQuote)

	// Combinator starts a non-descendant selector combinator.
	Combinator = Or(Single('>'), Plus, Single('~'))
	// Operator separates terms in a declaration value.
	Operator = Or(Slash, Comma)
	// Numeric starts a numerical term.
	Numeric = Or(Digit, Dot, Hyphen, Plus)
	// SelectorStart is any byte that may begin a selector.
	SelectorStart = Or(NameStart, Star, Hash, Dot, Colon, OpenBracket, Combinator, Hyphen, Pipe)
)
