package lexer

import (
	"errors"
	"testing"

	"stylekit/internal/diag"
	"stylekit/internal/source"
	"stylekit/internal/token"
)

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	src := New("a\nb")

	if src.Current() != 'a' || src.Line() != 1 || src.Column() != 1 {
		t.Fatalf("unexpected start state %q %d:%d", src.Current(), src.Line(), src.Column())
	}
	if b := src.Next(); b != 'a' {
		t.Errorf("Next = %q, want 'a'", b)
	}
	if b := src.Next(); b != '\n' {
		t.Errorf("Next = %q, want newline", b)
	}
	if src.Line() != 2 || src.Column() != 1 {
		t.Errorf("after newline: %d:%d, want 2:1", src.Line(), src.Column())
	}
	src.Next()
	if !src.EOF() || src.Current() != 0 || src.Next() != 0 {
		t.Errorf("expected EOF with zero bytes")
	}
}

func TestPeekAndMarkReset(t *testing.T) {
	src := New("abc\ndef")
	if src.Peek(2) != 'c' || src.Peek(100) != 0 || src.Peek(-1) != 0 {
		t.Errorf("Peek mismatch")
	}

	m := src.Mark()
	src.Skip(5)
	if src.Line() != 2 || src.Column() != 2 {
		t.Fatalf("after skip: %d:%d", src.Line(), src.Column())
	}
	if got := src.Since(m); got != "abc\nd" {
		t.Errorf("Since = %q", got)
	}
	src.Reset(m)
	if src.Index() != 0 || src.Line() != 1 || src.Column() != 1 {
		t.Errorf("Reset did not restore position: %d %d:%d", src.Index(), src.Line(), src.Column())
	}
}

func TestResetDropsLaterComments(t *testing.T) {
	src := New("/* a */ x /* b */ y")
	if err := src.CollectComments(); err != nil {
		t.Fatal(err)
	}
	src.Next()
	m := src.Mark()
	if err := src.CollectComments(); err != nil {
		t.Fatal(err)
	}
	src.Reset(m)
	if err := src.CollectComments(); err != nil {
		t.Fatal(err)
	}
	got := src.FlushComments()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("comments = %q", got)
	}
}

func TestSubSourceOriginalPosition(t *testing.T) {
	src := NewSub("a\n  b", 10, 5)
	if src.OriginalLine() != 10 || src.OriginalColumn() != 5 {
		t.Errorf("start = %d:%d, want 10:5", src.OriginalLine(), src.OriginalColumn())
	}
	src.Skip(4)
	if src.OriginalLine() != 11 || src.OriginalColumn() != 3 {
		t.Errorf("after newline = %d:%d, want 11:3", src.OriginalLine(), src.OriginalColumn())
	}
}

func TestCollectAndFlushComments(t *testing.T) {
	src := New("  /* one */\n/*two*/  .a")
	if err := src.CollectComments(); err != nil {
		t.Fatalf("CollectComments: %v", err)
	}
	if src.Current() != '.' {
		t.Errorf("cursor should stop at '.', got %q", src.Current())
	}
	got := src.FlushComments()
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("comments = %q", got)
	}
	if src.FlushComments() != nil {
		t.Errorf("second flush should be empty")
	}
}

func TestSkipTriviaReportsWhitespaceOnly(t *testing.T) {
	tests := []struct {
		in     string
		spaced bool
		rest   string
	}{
		{"/*x*/.b", false, ".b"},
		{"/**/[href]", false, "[href]"},
		{" /*x*/.b", true, ".b"},
		{"/*x*/\t.b", true, ".b"},
		{".b", false, ".b"},
	}
	for _, tt := range tests {
		src := New(tt.in)
		spaced, err := src.SkipTrivia()
		if err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if spaced != tt.spaced || src.Rest() != tt.rest || src.Remaining() != len(tt.rest) {
			t.Errorf("%q: spaced=%v rest=%q, want %v %q", tt.in, spaced, src.Rest(), tt.spaced, tt.rest)
		}
	}
}

func TestUnclosedCommentIsFatal(t *testing.T) {
	src := New("\n  /* never ends")
	err := src.CollectComments()
	var se *diag.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if se.Code != diag.SynUnclosedComment || se.Line != 2 || se.Column != 3 {
		t.Errorf("unexpected error %+v", se)
	}
}

func TestUntil(t *testing.T) {
	tests := []struct {
		name  string
		input string
		tok   token.Token
		want  string
		rest  string
	}{
		{"simple", "color:red", token.Colon, "color", ":red"},
		{"quoted delimiter", `a[href="{"] {x}`, token.OpenBrace, `a[href="{"] `, "{x}"},
		{"parens", "url(a;b);c", token.Semicolon, "url(a;b)", ";c"},
		{"comment", "a /* ; */ b;", token.Semicolon, "a /* ; */ b", ";"},
		{"not found", "abc", token.Semicolon, "abc", ""},
		{"at delimiter", ";x", token.Semicolon, "", ";x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := New(tt.input)
			if got := src.Until(tt.tok); got != tt.want {
				t.Errorf("Until = %q, want %q", got, tt.want)
			}
			if src.Rest() != tt.rest {
				t.Errorf("Rest = %q, want %q", src.Rest(), tt.rest)
			}
		})
	}
}

func TestChompEnclosedValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		rest  string
	}{
		{"flat", "{a:b} x", "a:b", " x"},
		{"nested", "{a{b}c}d", "a{b}c", "d"},
		{"quoted brace", `{content:"}"}`, `content:"}"`, ""},
		{"escaped quote", `{content:"\"}"}.`, `content:"\"}"`, "."},
		{"comment brace", "{/* } */a}", "/* } */a", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := New(tt.input)
			got, err := src.ChompEnclosedValue(token.OpenBrace, token.CloseBrace)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want || src.Rest() != tt.rest {
				t.Errorf("got %q rest %q, want %q rest %q", got, src.Rest(), tt.want, tt.rest)
			}
		})
	}
}

func TestChompEnclosedValueErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"unterminated block", ".a{color:red", diag.SynUnclosedBlock},
		{"unterminated nested", "{{}", diag.SynUnclosedBlock},
		{"unterminated string", `{a:"b}`, diag.SynUnclosedString},
		{"not at open", "x{}", diag.SynExpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := New(tt.input)
			if tt.input[0] == '.' {
				src.Skip(2)
			}
			_, err := src.ChompEnclosedValue(token.OpenBrace, token.CloseBrace)
			if got := diag.CodeOf(err); got != tt.code {
				t.Errorf("code = %v, want %v (err %v)", got, tt.code, err)
			}
		})
	}

	src := New("f(a, b")
	src.Skip(1)
	_, err := src.ChompEnclosedValue(token.OpenParen, token.CloseParen)
	if diag.CodeOf(err) != diag.SynUnclosedFunction {
		t.Errorf("expected unclosed function, got %v", err)
	}
}

func TestReadIdent(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"color:red", "color", true},
		{"-webkit-box{", "-webkit-box", true},
		{"--main-color:", "--main-color", true},
		{"a\\:b c", "a\\:b", true},
		{"9px", "", false},
		{"-9", "", false},
		{"--", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		src := New(tt.input)
		got, ok := src.ReadIdent()
		if got != tt.want || ok != tt.ok {
			t.Errorf("ReadIdent(%q) = %q,%v; want %q,%v", tt.input, got, ok, tt.want, tt.ok)
		}
		if !ok && src.Index() != 0 {
			t.Errorf("ReadIdent(%q) consumed input on failure", tt.input)
		}
	}
}

func TestReadString(t *testing.T) {
	src := New(`'it\'s' rest`)
	got, ok, err := src.ReadString()
	if err != nil || !ok || got != `'it\'s'` {
		t.Fatalf("ReadString = %q,%v,%v", got, ok, err)
	}

	src = New("plain")
	if _, ok, err := src.ReadString(); ok || err != nil {
		t.Errorf("non-string input should report false without error")
	}

	src = New(`"open`)
	if _, _, err := src.ReadString(); diag.CodeOf(err) != diag.SynUnclosedString {
		t.Errorf("expected unclosed string, got %v", err)
	}
}

func TestOptionallyPresentAndExpect(t *testing.T) {
	src := New(";}")
	if !src.OptionallyPresent(token.Semicolon) {
		t.Fatalf("expected ';' to be consumed")
	}
	if src.OptionallyPresent(token.Semicolon) {
		t.Errorf("should not consume '}' as ';'")
	}
	if err := src.Expect(token.Colon); diag.CodeOf(err) != diag.SynExpectedToken {
		t.Errorf("Expect mismatch error = %v", err)
	}
	if err := src.Expect(token.CloseBrace); err != nil {
		t.Errorf("Expect('}') = %v", err)
	}
}

func TestRegionFrom(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.css", []byte(".a{}"))
	file := fs.Get(id)
	src := FromFile(file)
	m := src.Mark()
	src.Skip(2)
	r := src.RegionFrom(m, id)
	if r.Start != 0 || r.End != 2 || r.File != id {
		t.Errorf("RegionFrom = %v", r)
	}
	if got := file.Text(r); got != ".a" {
		t.Errorf("Text = %q", got)
	}
}
