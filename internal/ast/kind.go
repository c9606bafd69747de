package ast

// Kind is the closed set of node kinds. Listener registration and refiner
// dispatch key on it.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindStylesheet
	KindRule
	KindSelector
	KindClassSelector
	KindIDSelector
	KindTypeSelector
	KindUniversalSelector
	KindAttributeSelector
	KindPseudoClassSelector
	KindPseudoElementSelector
	KindCombinator
	KindDeclaration
	KindPropertyValue
	KindKeywordValue
	KindNumericalValue
	KindHexColorValue
	KindStringValue
	KindFunctionValue
	KindURLFunctionValue
	KindOperator
	KindUnquotedIEFilter
	KindAtRule
	KindStatementsBlock
	KindFontFaceBlock
	KindCustom
)

var kindNames = [...]string{
	KindInvalid:               "invalid",
	KindStylesheet:            "stylesheet",
	KindRule:                  "rule",
	KindSelector:              "selector",
	KindClassSelector:         "class-selector",
	KindIDSelector:            "id-selector",
	KindTypeSelector:          "type-selector",
	KindUniversalSelector:     "universal-selector",
	KindAttributeSelector:     "attribute-selector",
	KindPseudoClassSelector:   "pseudo-class-selector",
	KindPseudoElementSelector: "pseudo-element-selector",
	KindCombinator:            "combinator",
	KindDeclaration:           "declaration",
	KindPropertyValue:         "property-value",
	KindKeywordValue:          "keyword-value",
	KindNumericalValue:        "numerical-value",
	KindHexColorValue:         "hex-color-value",
	KindStringValue:           "string-value",
	KindFunctionValue:         "function-value",
	KindURLFunctionValue:      "url-function-value",
	KindOperator:              "operator",
	KindUnquotedIEFilter:      "unquoted-ie-filter",
	KindAtRule:                "at-rule",
	KindStatementsBlock:       "statements-block",
	KindFontFaceBlock:         "font-face-block",
	KindCustom:                "custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsSelectorPart reports whether nodes of this kind live in a selector.
func (k Kind) IsSelectorPart() bool {
	return k >= KindClassSelector && k <= KindCombinator
}

// IsTerm reports whether nodes of this kind live in a property value.
func (k Kind) IsTerm() bool {
	return k >= KindKeywordValue && k <= KindUnquotedIEFilter
}

// IsStatement reports whether nodes of this kind live in a stylesheet or block.
func (k Kind) IsStatement() bool {
	return k == KindRule || k == KindAtRule
}
