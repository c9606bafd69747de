package prefix

import (
	"fmt"
	"strconv"
	"strings"

	"stylekit/internal/diag"
)

// SupportMatrix records which versions of which browsers must be supported
// and answers which vendor prefixes that requires.
//
// Configuration methods return the matrix for chaining; the first error is
// kept and reported by Err. A matrix is read-only once configured.
type SupportMatrix struct {
	data Lookup
	sets [browserCount]*versionSet[float64]
	err  error
}

// NewSupportMatrix returns an empty matrix over data. A nil data uses Default.
func NewSupportMatrix(data Lookup) *SupportMatrix {
	if data == nil {
		data = Default()
	}
	return &SupportMatrix{data: data}
}

// DefaultSupport is the matrix used when nothing is configured.
func DefaultSupport(data Lookup) *SupportMatrix {
	return NewSupportMatrix(data).
		Last(Chrome, 2).
		Last(Firefox, 2).
		Last(Safari, 2).
		Latest(Edge).
		Browser(IE, 11).
		Last(IOSSafari, 2).
		Latest(Android)
}

// Err returns the first configuration error.
func (m *SupportMatrix) Err() error { return m.err }

func (m *SupportMatrix) fail(err error) *SupportMatrix {
	if m.err == nil {
		m.err = err
	}
	return m
}

func (m *SupportMatrix) set(b Browser) *versionSet[float64] {
	if m.sets[b] == nil {
		m.sets[b] = &versionSet[float64]{}
	}
	return m.sets[b]
}

// Browser adds support for version v of b. v must be a known version.
func (m *SupportMatrix) Browser(b Browser, v float64) *SupportMatrix {
	if b >= browserCount {
		return m.fail(diag.NewConfigError(diag.CfgUnknownBrowser, b.Key(), ""))
	}
	if !containsVersion(m.data.Versions(b), v) {
		return m.fail(diag.NewConfigError(diag.CfgUnknownVersion, b.Key(),
			"version %s does not exist for %s", formatVersion(v), b))
	}
	m.set(b).add(v)
	return m
}

// Latest adds support for the newest known version of b.
func (m *SupportMatrix) Latest(b Browser) *SupportMatrix {
	return m.Last(b, 1)
}

// Last adds support for the n newest known versions of b.
func (m *SupportMatrix) Last(b Browser, n int) *SupportMatrix {
	if b >= browserCount {
		return m.fail(diag.NewConfigError(diag.CfgUnknownBrowser, b.Key(), ""))
	}
	known := m.data.Versions(b)
	if n < 1 || n > len(known) {
		return m.fail(diag.NewConfigError(diag.CfgVersionCount, b.Key(),
			"cannot support the last %d versions of %s, %d are known", n, b, len(known)))
	}
	s := m.set(b)
	for _, v := range known[:n] {
		s.add(v)
	}
	return m
}

// Apply adds one textual entry: "chrome 25", "firefox latest" or
// "safari last 3".
func (m *SupportMatrix) Apply(entry string) *SupportMatrix {
	fields := strings.Fields(strings.ToLower(entry))
	bad := func() *SupportMatrix {
		return m.fail(diag.NewConfigError(diag.CfgBadSupportEntry, entry,
			"expected \"<browser> <version>\", \"<browser> latest\" or \"<browser> last <n>\""))
	}
	if len(fields) < 2 {
		return bad()
	}
	b, err := ParseBrowser(fields[0])
	if err != nil {
		return m.fail(err)
	}
	switch {
	case len(fields) == 2 && fields[1] == "latest":
		return m.Latest(b)
	case len(fields) == 3 && fields[1] == "last":
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return bad()
		}
		return m.Last(b, n)
	case len(fields) == 2:
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return bad()
		}
		return m.Browser(b, v)
	}
	return bad()
}

// ParseSupport builds a matrix from textual entries. No entries yields
// DefaultSupport.
func ParseSupport(data Lookup, entries []string) (*SupportMatrix, error) {
	if len(entries) == 0 {
		m := DefaultSupport(data)
		return m, m.Err()
	}
	m := NewSupportMatrix(data)
	for _, e := range entries {
		m.Apply(e)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m, nil
}

// SupportsBrowser reports whether any version of b is supported.
func (m *SupportMatrix) SupportsBrowser(b Browser) bool {
	return b < browserCount && m.sets[b] != nil && m.sets[b].len() > 0
}

// SupportsVersion reports whether version v of b is supported.
func (m *SupportMatrix) SupportsVersion(b Browser, v float64) bool {
	return m.SupportsBrowser(b) && m.sets[b].has(v)
}

// AllSupportedVersions lists the supported versions of b, ascending.
func (m *SupportMatrix) AllSupportedVersions(b Browser) []float64 {
	if !m.SupportsBrowser(b) {
		return nil
	}
	return m.sets[b].ascending()
}

// LowestSupportedVersion returns the oldest supported version of b, or
// Unsupported.
func (m *SupportMatrix) LowestSupportedVersion(b Browser) float64 {
	if !m.SupportsBrowser(b) {
		return Unsupported
	}
	v, _ := m.sets[b].lowest()
	return v
}

// SupportedBrowsers lists browsers with at least one supported version.
func (m *SupportMatrix) SupportedBrowsers() []Browser {
	var out []Browser
	for b := range browserCount {
		if m.SupportsBrowser(b) {
			out = append(out, b)
		}
	}
	return out
}

// PrefixesForProperty returns the prefixes the unprefixed property needs.
func (m *SupportMatrix) PrefixesForProperty(name string) Set {
	if !m.data.HasProperty(name) {
		return 0
	}
	return m.prefixes(func(b Browser) float64 { return m.data.LastPrefixedProperty(name, b) })
}

// PrefixesForFunction returns the prefixes the unprefixed function needs.
func (m *SupportMatrix) PrefixesForFunction(name string) Set {
	if !m.data.HasFunction(name) {
		return 0
	}
	return m.prefixes(func(b Browser) float64 { return m.data.LastPrefixedFunction(name, b) })
}

// prefixes adds a browser's prefix when its lowest supported version is not
// newer than the last version that needed the prefix.
func (m *SupportMatrix) prefixes(lastPrefixed func(Browser) float64) Set {
	var s Set
	for _, b := range m.SupportedBrowsers() {
		last := lastPrefixed(b)
		if last == Unsupported {
			continue
		}
		if m.LowestSupportedVersion(b) <= last {
			s = s.With(b.Prefix())
		}
	}
	return s
}

// RequiresPrefixForProperty reports whether p is needed for the property.
func (m *SupportMatrix) RequiresPrefixForProperty(p Prefix, name string) bool {
	return m.data.HasProperty(name) && m.PrefixesForProperty(name).Has(p)
}

// RequiresPrefixForFunction reports whether p is needed for the function.
func (m *SupportMatrix) RequiresPrefixForFunction(p Prefix, name string) bool {
	return m.data.HasFunction(name) && m.PrefixesForFunction(name).Has(p)
}

// String lists the configuration as Apply entries.
func (m *SupportMatrix) String() string {
	var parts []string
	for _, b := range m.SupportedBrowsers() {
		for _, v := range m.AllSupportedVersions(b) {
			parts = append(parts, fmt.Sprintf("%s %s", b.Key(), formatVersion(v)))
		}
	}
	return strings.Join(parts, ", ")
}

func formatVersion(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
