package parser

import (
	"strings"

	"stylekit/internal/ast"
	"stylekit/internal/diag"
	"stylekit/internal/lexer"
	"stylekit/internal/token"
)

// rawSelectorParser reads one member of a selector group up to ',' or '{'.
type rawSelectorParser struct {
	f *Factory
}

func (p *rawSelectorParser) Parse(src *lexer.Source, b ast.Broadcaster, r ast.Refiner) (bool, error) {
	start, err := leadIn(src)
	if err != nil {
		return false, err
	}
	if !src.Matches(token.SelectorStart) {
		src.Reset(start)
		return false, nil
	}
	line, col := src.OriginalLine(), src.OriginalColumn()
	content := strings.TrimSpace(src.Until(p.f.Tokens.SelectorEnd()))
	if content == "" {
		src.Reset(start)
		return false, nil
	}
	s := ast.NewSelector(ast.RawSyntax{Line: line, Column: col, Content: content}, r)
	attachComments(s, src)
	b.Broadcast(s)
	return true, nil
}

// complexSelectorParser reads compound selectors joined by combinators. It
// stops at the first byte it cannot handle and leaves it unconsumed; the
// caller decides whether leftovers are an error.
type complexSelectorParser struct {
	f *Factory
}

// simpleStart is any byte that may begin a simple selector.
var simpleStart = token.Or(token.Dot, token.Hash, token.NameStart, token.Star,
	token.OpenBracket, token.Colon, token.Pipe, token.Hyphen, token.Single('\\'))

func (p *complexSelectorParser) Parse(src *lexer.Source, b ast.Broadcaster, r ast.Refiner) (bool, error) {
	simple := Any(p.f.Class, p.f.ID, p.f.Type, p.f.Attribute, p.f.Pseudo)
	matched := false
	pendingCombinator := false
	for {
		m := src.Mark()
		wsLine, wsCol := src.OriginalLine(), src.OriginalColumn()
		sawSpace, err := src.SkipTrivia()
		if err != nil {
			return matched, err
		}
		if src.EOF() {
			break
		}
		if !pendingCombinator {
			ok, err := p.f.Combinator.Parse(src, b, r)
			if err != nil {
				return matched, err
			}
			if ok {
				pendingCombinator = true
				continue
			}
			if matched && sawSpace && src.Matches(simpleStart) {
				b.Broadcast(ast.NewCombinator(wsLine, wsCol, ast.Descendant))
				pendingCombinator = true
			}
		}
		ok, err := simple.Parse(src, b, r)
		if err != nil {
			return matched, err
		}
		if !ok {
			if pendingCombinator && matched {
				return matched, src.Errorf(diag.SynUnparsableSelector, "expected a selector after combinator")
			}
			src.Reset(m)
			break
		}
		matched = true
		pendingCombinator = false
	}
	if pendingCombinator {
		return matched, src.Errorf(diag.SynUnparsableSelector, "selector ends with a combinator")
	}
	return matched, nil
}

// parseCombinator reads '>', '+' or '~' with surrounding whitespace.
func parseCombinator(src *lexer.Source, b ast.Broadcaster, _ ast.Refiner) (bool, error) {
	if !src.Matches(token.Combinator) {
		return false, nil
	}
	line, col := src.OriginalLine(), src.OriginalColumn()
	var t ast.CombinatorType
	switch src.Next() {
	case '>':
		t = ast.Child
	case '+':
		t = ast.AdjacentSibling
	case '~':
		t = ast.GeneralSibling
	}
	src.SkipWhitespace()
	b.Broadcast(ast.NewCombinator(line, col, t))
	return true, nil
}

func parseClass(src *lexer.Source, b ast.Broadcaster, _ ast.Refiner) (bool, error) {
	if !src.Matches(token.Dot) {
		return false, nil
	}
	line, col := src.OriginalLine(), src.OriginalColumn()
	src.Next()
	name, ok := src.ReadIdent()
	if !ok {
		return false, src.Errorf(diag.SynUnparsableSelector, "expected class name after '.'")
	}
	b.Broadcast(ast.NewClassSelector(line, col, name))
	return true, nil
}

func parseID(src *lexer.Source, b ast.Broadcaster, _ ast.Refiner) (bool, error) {
	if !src.Matches(token.Hash) {
		return false, nil
	}
	line, col := src.OriginalLine(), src.OriginalColumn()
	src.Next()
	name := src.ReadWhile(token.Name)
	if name == "" {
		return false, src.Errorf(diag.SynUnparsableSelector, "expected id after '#'")
	}
	b.Broadcast(ast.NewIDSelector(line, col, name))
	return true, nil
}

// parseTypeOrUniversal reads "div", "*", "svg|rect", "*|*" and "|a".
func parseTypeOrUniversal(src *lexer.Source, b ast.Broadcaster, _ ast.Refiner) (bool, error) {
	m := src.Mark()
	line, col := src.OriginalLine(), src.OriginalColumn()

	var ns string
	hasNS := false
	readPart := func() (string, bool) {
		if src.OptionallyPresent(token.Star) {
			return "*", true
		}
		return src.ReadIdent()
	}

	first, ok := readPart()
	if src.Matches(token.Pipe) && src.Peek(1) != '=' {
		src.Next()
		ns, hasNS = first, true
		first, ok = readPart()
		if !ok {
			return false, src.Errorf(diag.SynUnparsableSelector, "expected element name after '|'")
		}
	}
	if !ok {
		src.Reset(m)
		return false, nil
	}
	if first == "*" && !hasNS {
		b.Broadcast(ast.NewUniversalSelector(line, col))
		return true, nil
	}
	name := first
	if hasNS {
		name = ns + "|" + first
	}
	b.Broadcast(ast.NewTypeSelector(line, col, name))
	return true, nil
}

var attributeMatchers = []string{"~=", "|=", "^=", "$=", "*=", "="}

// parseAttribute reads "[name]" and "[name op value flags]".
func parseAttribute(src *lexer.Source, b ast.Broadcaster, _ ast.Refiner) (bool, error) {
	if !src.Matches(token.OpenBracket) {
		return false, nil
	}
	line, col := src.OriginalLine(), src.OriginalColumn()
	content, err := src.ChompEnclosedValue(token.OpenBracket, token.CloseBracket)
	if err != nil {
		return false, err
	}
	content = strings.TrimSpace(content)

	name, match, value := content, "", ""
	if i := strings.IndexAny(content, "~|^$*="); i >= 0 {
		for _, op := range attributeMatchers {
			if strings.HasPrefix(content[i:], op) {
				name = strings.TrimSpace(content[:i])
				match = op
				value = strings.TrimSpace(content[i+len(op):])
				break
			}
		}
		// "ns|attr" without an operator
		if match == "" {
			name = content
		}
	}
	if name == "" || (match != "" && value == "") {
		return false, diag.NewSyntaxError(diag.SynUnparsableSelector, line, col, "malformed attribute selector [%s]", content)
	}
	b.Broadcast(ast.NewAttributeSelector(line, col, name, match, value))
	return true, nil
}

// parsePseudo reads ":name", ":name(args)", "::name" and "::name(args)".
func parsePseudo(src *lexer.Source, b ast.Broadcaster, _ ast.Refiner) (bool, error) {
	if !src.Matches(token.Colon) {
		return false, nil
	}
	line, col := src.OriginalLine(), src.OriginalColumn()
	src.Next()
	element := src.OptionallyPresent(token.Colon)

	name, ok := src.ReadIdent()
	if !ok {
		return false, src.Errorf(diag.SynUnparsableSelector, "expected pseudo selector name")
	}
	var args string
	hasArgs := src.Matches(token.OpenParen)
	if hasArgs {
		a, err := src.ChompEnclosedValue(token.OpenParen, token.CloseParen)
		if err != nil {
			return false, err
		}
		args = strings.TrimSpace(a)
	}

	lower := strings.ToLower(name)
	switch {
	case element:
		pe := ast.NewPseudoElementSelector(line, col, name, false)
		if hasArgs {
			pe.WithArgs(args)
		}
		b.Broadcast(pe)
	case !hasArgs && ast.IsLegacyPseudoElement(lower):
		b.Broadcast(ast.NewPseudoElementSelector(line, col, name, true))
	default:
		pc := ast.NewPseudoClassSelector(line, col, name)
		if hasArgs {
			pc.WithArgs(args)
		}
		b.Broadcast(pc)
	}
	return true, nil
}
