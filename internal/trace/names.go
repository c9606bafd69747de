package trace

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// nameTable maps small enums to their lower-case names and back.
type nameTable[T ~uint8] struct {
	what  string
	names map[T]string
}

func (t nameTable[T]) name(v T) string {
	if n, ok := t.names[v]; ok {
		return n
	}
	return "unknown"
}

func (t nameTable[T]) parse(s string, aliases ...string) (T, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := 0; i+1 < len(aliases); i += 2 {
		if s == aliases[i] {
			s = aliases[i+1]
		}
	}
	for v, n := range t.names {
		if n == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("invalid trace %s: %q (expected: %s)", t.what, s, t.expected())
}

func (t nameTable[T]) expected() string {
	return strings.Join(slices.Sorted(maps.Values(t.names)), "|")
}
