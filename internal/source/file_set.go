package source

import (
	"crypto/sha256"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// FileSet owns every stylesheet loaded during a run. Adding the same path
// twice keeps both versions; lookups by path see the newest.
type FileSet struct {
	files  []*File
	byPath map[string]FileID
}

func NewFileSet() *FileSet {
	return &FileSet{byPath: make(map[string]FileID)}
}

// Add stores content as is and returns its new id.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if len(content) > math.MaxUint32 || len(fs.files) >= math.MaxUint32 {
		panic(fmt.Errorf("source: %s is too large", path))
	}
	id := FileID(len(fs.files)) // #nosec G115 -- checked above
	path = cleanPath(path)
	fs.files = append(fs.files, &File{
		ID:         id,
		Path:       path,
		Content:    content,
		Hash:       sha256.Sum256(content),
		Flags:      flags,
		lineStarts: indexLines(content),
	})
	fs.byPath[path] = id
	return id
}

// AddNormalized strips a BOM, folds CRLF and optionally composes NFC before
// calling Add. Each applied step sets its flag.
func (fs *FileSet) AddNormalized(path string, content []byte, flags FileFlags, opts LoadOptions) FileID {
	for _, step := range opts.pipeline() {
		var changed bool
		if content, changed = step.fn(content); changed {
			flags |= step.flag
		}
	}
	return fs.Add(path, content, flags)
}

// AddVirtual adds in-memory content with the FileVirtual flag.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.AddNormalized(name, content, FileVirtual, LoadOptions{})
}

// Load reads a stylesheet from disk and adds it with AddNormalized.
func (fs *FileSet) Load(path string, opts LoadOptions) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fs.AddNormalized(path, content, 0, opts), nil
}

func (fs *FileSet) Get(id FileID) *File { return fs.files[id] }

func (fs *FileSet) Len() int { return len(fs.files) }

// Lookup returns the newest file added under path.
func (fs *FileSet) Lookup(path string) (*File, bool) {
	id, ok := fs.byPath[cleanPath(path)]
	if !ok {
		return nil, false
	}
	return fs.files[id], true
}

// cleanPath gives paths one form across platforms.
func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
