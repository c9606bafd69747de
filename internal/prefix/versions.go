package prefix

import (
	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd
)

// Unsupported is returned for a browser without declared versions and for a
// name without prefix history.
const Unsupported = -1

// versionSet is an ordered set of versions, ascending and unique.
type versionSet[V constraints.Float] struct {
	tree btree.Map[V, struct{}]
}

func (s *versionSet[V]) add(v V) { s.tree.Set(v, struct{}{}) }

func (s *versionSet[V]) has(v V) bool {
	_, ok := s.tree.Get(v)
	return ok
}

func (s *versionSet[V]) len() int { return s.tree.Len() }

func (s *versionSet[V]) lowest() (V, bool) {
	v, _, ok := s.tree.Min()
	return v, ok
}

func (s *versionSet[V]) ascending() []V {
	out := make([]V, 0, s.tree.Len())
	s.tree.Scan(func(v V, _ struct{}) bool {
		out = append(out, v)
		return true
	})
	return out
}

// containsVersion reports whether v is one of known.
func containsVersion[V constraints.Float](known []V, v V) bool {
	for _, k := range known {
		if k == v {
			return true
		}
	}
	return false
}
