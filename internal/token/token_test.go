package token

import "testing"

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		yes  string
		no   string
	}{
		{"whitespace", Whitespace, " \t\n\r\f", "a-{"},
		{"name start", NameStart, "aZ_\xc3", "0-{ "},
		{"name", Name, "aZ_09-", "{:. "},
		{"hex", Hex, "09afAF", "gG-"},
		{"quote", Quote, "\"'", "`a"},
		{"combinator", Combinator, ">+~", " a"},
		{"selector start", SelectorStart, "a*#.:[>-|", "{;0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < len(tt.yes); i++ {
				if !tt.tok.Matches(tt.yes[i]) {
					t.Errorf("%s should match %q", tt.tok.Description(), tt.yes[i])
				}
			}
			for i := 0; i < len(tt.no); i++ {
				if tt.tok.Matches(tt.no[i]) {
					t.Errorf("%s should not match %q", tt.tok.Description(), tt.no[i])
				}
			}
		})
	}
}

func TestNotNeverMatchesEOF(t *testing.T) {
	tok := Not(Semicolon)
	if tok.Matches(0) {
		t.Errorf("Not should not match end of input")
	}
	if !tok.Matches('a') || tok.Matches(';') {
		t.Errorf("Not(';') mismatched")
	}
}

func TestDescriptions(t *testing.T) {
	if got := Or(Semicolon, OpenBrace).Description(); got != "';' or '{'" {
		t.Errorf("Or description = %q", got)
	}
	var f Factory = Standard{}
	if !f.DeclarationEnd().Matches('}') || !f.DeclarationEnd().Matches(';') {
		t.Errorf("declaration end should match ';' and '}'")
	}
}
