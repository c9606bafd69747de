package diagfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"stylekit/internal/diag"
	"stylekit/internal/source"
)

func testFile(content string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("styles.css", []byte(content)))
}

func TestErrorCaret(t *testing.T) {
	f := testFile(".a{color:red}\n.b{color red}\n")
	err := diag.NewSyntaxError(diag.SynExpectedColon, 2, 10, "")
	var buf bytes.Buffer
	Error(&buf, err, f, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[0], "styles.css:2:10: ERROR SYN2008:") {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "2 | .b{color red}" {
		t.Fatalf("source line = %q", lines[1])
	}
	if got := strings.Index(lines[2], "^") - strings.Index(lines[2], "|") - 2; got != 9 {
		t.Fatalf("caret offset = %d in %q", got, lines[2])
	}
}

func TestCaretWideRunes(t *testing.T) {
	// "日本" is 6 bytes and 4 columns wide; column 19 is the x.
	if got := caretOffset(`a{content:"日本"x}`, 19, 4); got != 16 {
		t.Fatalf("offset = %d", got)
	}
	if got := caretOffset("\tcolor", 2, 4); got != 4 {
		t.Fatalf("tab offset = %d", got)
	}
}

func TestErrorWithoutPosition(t *testing.T) {
	var buf bytes.Buffer
	Error(&buf, errors.New("boom"), nil, PrettyOpts{})
	if buf.String() != "ERROR boom\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestPrettyBag(t *testing.T) {
	f := testFile(".a{color:red;color:blue}")
	bag := diag.NewBag(4)
	diag.Warn(diag.BagReporter{Bag: bag}, diag.ValDuplicateDeclaration, 1, 14, "duplicate")
	var buf bytes.Buffer
	Pretty(&buf, bag, f, PrettyOpts{PathMode: PathModeBasename})
	if !strings.Contains(buf.String(), "styles.css:1:14: WARNING VAL6002: duplicate") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	err := diag.NewSyntaxError(diag.SynUnclosedBlock, 3, 1, "")
	items := Collect("x.css", []diag.Diagnostic{FromError(err)}, JSONOpts{PathMode: PathModeBasename})
	var buf bytes.Buffer
	if err := JSON(&buf, items, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.Diagnostics[0].Code != "SYN2002" || out.Diagnostics[0].Line != 3 {
		t.Fatalf("out = %+v", out)
	}
}

func TestPathModes(t *testing.T) {
	for _, m := range []PathMode{PathModeAuto, PathModeAbsolute, PathModeRelative, PathModeBasename} {
		got, err := ParsePathMode(strings.ToUpper(m.String()))
		if err != nil || got != m {
			t.Errorf("ParsePathMode(%q) = %v, %v", m, got, err)
		}
	}
	if _, err := ParsePathMode("short"); err == nil {
		t.Errorf("expected error for unknown mode")
	}

	tests := []struct {
		mode PathMode
		in   string
		want string
	}{
		{PathModeAuto, "", "<input>"},
		{PathModeBasename, filepath.Join("x", "y", "a.css"), "a.css"},
		{PathModeRelative, filepath.Join("x", "a.css"), "x/a.css"},
	}
	for _, tt := range tests {
		if got := tt.mode.Display(tt.in); got != tt.want {
			t.Errorf("%v.Display(%q) = %q, want %q", tt.mode, tt.in, got, tt.want)
		}
	}
	if got := PathModeAbsolute.Display("a.css"); !filepath.IsAbs(got) {
		t.Errorf("absolute mode gave %q", got)
	}
}

func TestPrettyUsesNameWithoutFile(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.ValDuplicateDeclaration, Message: "dup", Line: 3, Column: 1})
	var buf bytes.Buffer
	Pretty(&buf, bag, nil, PrettyOpts{Name: "cached.css", PathMode: PathModeBasename})
	if !strings.HasPrefix(buf.String(), "cached.css:3:1:") {
		t.Errorf("output = %q", buf.String())
	}
}
