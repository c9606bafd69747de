package prefix

import (
	"math/bits"
	"strings"
)

// Prefix is a vendor prefix. The declaration order is the canonical order
// used whenever a set of prefixes is listed.
type Prefix uint8

const (
	Webkit Prefix = iota
	Moz
	MS
	O
	prefixCount

	// PrefixNone marks the absence of a vendor prefix.
	PrefixNone Prefix = 0xff
)

var prefixText = [prefixCount]string{
	Webkit: "-webkit-",
	Moz:    "-moz-",
	MS:     "-ms-",
	O:      "-o-",
}

func (p Prefix) String() string {
	if p >= prefixCount {
		return ""
	}
	return prefixText[p]
}

// ParsePrefix recognises "-webkit-" and friends, case-insensitively.
func ParsePrefix(s string) (Prefix, bool) {
	s = strings.ToLower(s)
	for p := range prefixCount {
		if prefixText[p] == s {
			return p, true
		}
	}
	return PrefixNone, false
}

// Split separates a leading vendor prefix from name.
func Split(name string) (Prefix, string) {
	lower := strings.ToLower(name)
	for p := range prefixCount {
		if strings.HasPrefix(lower, prefixText[p]) {
			return p, name[len(prefixText[p]):]
		}
	}
	return PrefixNone, name
}

// Set is a set of prefixes iterated in canonical order.
type Set uint8

// SetOf builds a set from ps.
func SetOf(ps ...Prefix) Set {
	var s Set
	for _, p := range ps {
		s = s.With(p)
	}
	return s
}

// With returns s plus p.
func (s Set) With(p Prefix) Set {
	if p >= prefixCount {
		return s
	}
	return s | 1<<p
}

func (s Set) Has(p Prefix) bool {
	return p < prefixCount && s&(1<<p) != 0
}

func (s Set) Len() int { return bits.OnesCount8(uint8(s)) }
func (s Set) IsEmpty() bool { return s == 0 }

// Slice lists the members in canonical order.
func (s Set) Slice() []Prefix {
	out := make([]Prefix, 0, s.Len())
	for p := range prefixCount {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s Set) String() string {
	parts := make([]string, 0, s.Len())
	for _, p := range s.Slice() {
		parts = append(parts, p.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}
