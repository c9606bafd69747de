package diagfmt

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathMode chooses how file paths are printed.
type PathMode uint8

const (
	PathModeAuto     PathMode = iota // relative unless that climbs out of the working directory
	PathModeAbsolute
	PathModeRelative                 // relative to the working directory, even with ../
	PathModeBasename                 // file name only
)

var pathModeNames = [...]string{"auto", "absolute", "relative", "basename"}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return fmt.Sprintf("PathMode(%d)", m)
}

// ParsePathMode accepts the names printed by String.
func ParsePathMode(s string) (PathMode, error) {
	for i, name := range pathModeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return PathMode(i), nil // #nosec G115 -- small array index
		}
	}
	return 0, fmt.Errorf("unknown path mode %q (expected %s)", s, strings.Join(pathModeNames[:], "|"))
}

// Display renders path according to m. An empty path is "<input>".
func (m PathMode) Display(path string) string {
	if path == "" {
		return "<input>"
	}
	if m == PathModeBasename {
		return filepath.Base(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil || m == PathModeAbsolute {
		return cmp.Or(abs, path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, abs)
	switch {
	case err != nil:
		return path
	case m == PathModeAuto && strings.HasPrefix(rel, ".."):
		return abs
	}
	return filepath.ToSlash(rel)
}

// PrettyOpts configures human readable output.
type PrettyOpts struct {
	Color    bool
	Context  int8 // lines shown above the offending one
	PathMode PathMode
	TabWidth int
	// Name labels diagnostics when no source file is available, as with
	// results served from the cache.
	Name string
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	PathMode PathMode
	Max      int // обрезка вывода, 0 - без ограничения
}
