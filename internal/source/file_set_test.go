package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetKeepsVersions(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("a.css", []byte(".a{}"), 0)
	id2 := fs.Add("./a.css", []byte(".b{}"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.Lookup("a.css")
	if !ok || latest.ID != id2 {
		t.Fatalf("Lookup = %v,%v; want id %d", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != ".a{}" {
		t.Errorf("old version content changed: %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
	if _, ok := fs.Lookup("b.css"); ok {
		t.Errorf("Lookup found a file never added")
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("in.css", []byte("\xEF\xBB\xBF.a{\r\ncolor:red}\r\n\r")))

	if string(f.Content) != ".a{\ncolor:red}\n\r" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	want := FileVirtual | FileHadBOM | FileNormalizedCRLF
	if f.Flags != want {
		t.Errorf("flags = %b, want %b", f.Flags, want)
	}
	if f.LineCount() != 3 {
		t.Errorf("LineCount = %d, want 3", f.LineCount())
	}
}

func TestAddNormalizedNFC(t *testing.T) {
	fs := NewFileSet()
	// "e" + combining acute accent
	f := fs.Get(fs.AddNormalized("nfc.css", []byte(".café{}"), 0, LoadOptions{NFC: true}))
	if string(f.Content) != ".caf\u00e9{}" {
		t.Fatalf("content not composed: %q", f.Content)
	}
	if f.Flags&FileNormalizedNFC == 0 {
		t.Errorf("expected FileNormalizedNFC flag")
	}

	plain := fs.Get(fs.AddNormalized("ascii.css", []byte(".a{}"), 0, LoadOptions{NFC: true}))
	if plain.Flags != 0 {
		t.Errorf("ASCII content flagged: %b", plain.Flags)
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.css")
	if err := os.WriteFile(path, []byte(".a{}\n.b{}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := fs.Get(id).GetLine(2); got != ".b{}" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.css"), LoadOptions{}); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestPosition(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("r.css", []byte("a\nbc\nd")))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{2, 1}},
		{3, LineCol{2, 2}},
		{5, LineCol{3, 1}},
		{6, LineCol{3, 2}},
		{99, LineCol{3, 2}},
	}
	for _, tt := range tests {
		if got := f.Position(tt.off); got != tt.want {
			t.Errorf("offset %d: got %v, want %v", tt.off, got, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.css", []byte("one\ntwo\n")))

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "one"},
		{2, "two"},
		{3, ""},
		{4, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestRegion(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.css", []byte(".a{color:red}"))
	f := fs.Get(id)

	r := Region{File: id, Start: 3, End: 8}
	if got := f.Text(r); got != "color" {
		t.Errorf("Text = %q", got)
	}
	u := r.Union(Region{File: id, Start: 9, End: 12})
	if u.Start != 3 || u.End != 12 || u.Len() != 9 {
		t.Errorf("Union = %v", u)
	}
	if other := r.Union(Region{File: id + 1, Start: 0, End: 20}); other != r {
		t.Errorf("regions of different files merged: %v", other)
	}
	if got := f.Text(Region{Start: 10, End: 99}); got != "ed}" {
		t.Errorf("clamped Text = %q", got)
	}
}
