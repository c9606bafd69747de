package prefix

import (
	_ "embed"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"stylekit/internal/diag"
)

// Catalog lists the versions known for each browser, newest first.
type Catalog interface {
	Versions(b Browser) []float64
}

// PrefixInfo reports the last version of a browser that still needed a
// vendor prefix for a property or function.
type PrefixInfo interface {
	HasProperty(name string) bool
	HasFunction(name string) bool
	LastPrefixedProperty(name string, b Browser) float64
	LastPrefixedFunction(name string, b Browser) float64
}

// Lookup is the reference data a SupportMatrix needs.
type Lookup interface {
	Catalog
	PrefixInfo
}

// History maps a property or function name to the last prefixed version
// per browser.
type History map[string]map[Browser]float64

// Data is immutable reference data. It implements Lookup.
type Data struct {
	versions   [browserCount][]float64
	properties History
	functions  History
}

// NewData builds reference data. Version lists are copied and sorted newest
// first; names are lowercased.
func NewData(versions map[Browser][]float64, properties, functions History) *Data {
	d := &Data{
		properties: normalizeHistory(properties),
		functions:  normalizeHistory(functions),
	}
	for b, vs := range versions {
		if b >= browserCount {
			continue
		}
		cp := slices.Clone(vs)
		sort.Sort(sort.Reverse(sort.Float64Slice(cp)))
		d.versions[b] = slices.Compact(cp)
	}
	return d
}

func normalizeHistory(h History) History {
	out := make(History, len(h))
	for name, per := range h {
		m := make(map[Browser]float64, len(per))
		for b, v := range per {
			m[b] = v
		}
		out[strings.ToLower(name)] = m
	}
	return out
}

func (d *Data) Versions(b Browser) []float64 {
	if b >= browserCount {
		return nil
	}
	return d.versions[b]
}

// Latest returns the newest known version of b, or Unsupported.
func (d *Data) Latest(b Browser) float64 {
	vs := d.Versions(b)
	if len(vs) == 0 {
		return Unsupported
	}
	return vs[0]
}

func (d *Data) HasProperty(name string) bool {
	_, ok := d.properties[strings.ToLower(name)]
	return ok
}

func (d *Data) HasFunction(name string) bool {
	_, ok := d.functions[strings.ToLower(name)]
	return ok
}

func (d *Data) LastPrefixedProperty(name string, b Browser) float64 {
	return lastPrefixed(d.properties, name, b)
}

func (d *Data) LastPrefixedFunction(name string, b Browser) float64 {
	return lastPrefixed(d.functions, name, b)
}

func lastPrefixed(h History, name string, b Browser) float64 {
	if v, ok := h[strings.ToLower(name)][b]; ok {
		return v
	}
	return Unsupported
}

// Properties lists every property with prefix history, sorted.
func (d *Data) Properties() []string { return sortedKeys(d.properties) }

// Functions lists every function with prefix history, sorted.
func (d *Data) Functions() []string { return sortedKeys(d.functions) }

func sortedKeys(h History) []string {
	out := make([]string, 0, len(h))
	for k := range h {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type rawData struct {
	Browsers   map[string][]float64          `yaml:"browsers"`
	Properties map[string]map[string]float64 `yaml:"properties"`
	Functions  map[string]map[string]float64 `yaml:"functions"`
}

// Load decodes reference data in the embedded YAML layout.
func Load(r io.Reader) (*Data, error) {
	var raw rawData
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("prefix data: %w", err)
	}
	versions := make(map[Browser][]float64, len(raw.Browsers))
	for key, vs := range raw.Browsers {
		b, err := ParseBrowser(key)
		if err != nil {
			return nil, err
		}
		for _, v := range vs {
			if v <= 0 {
				return nil, diag.NewConfigError(diag.CfgUnknownVersion, key, "version %v is not positive", v)
			}
		}
		versions[b] = vs
	}
	props, err := decodeHistory(raw.Properties)
	if err != nil {
		return nil, err
	}
	funcs, err := decodeHistory(raw.Functions)
	if err != nil {
		return nil, err
	}
	return NewData(versions, props, funcs), nil
}

func decodeHistory(raw map[string]map[string]float64) (History, error) {
	out := make(History, len(raw))
	for name, per := range raw {
		m := make(map[Browser]float64, len(per))
		for key, v := range per {
			b, err := ParseBrowser(key)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			m[b] = v
		}
		out[name] = m
	}
	return out, nil
}

//go:embed data.yaml
var embedded string

var loadDefault = sync.OnceValue(func() *Data {
	d, err := Load(strings.NewReader(embedded))
	if err != nil {
		panic(fmt.Sprintf("prefix: embedded data is invalid: %v", err))
	}
	return d
})

// Default returns the reference data shipped with the binary.
func Default() *Data { return loadDefault() }
