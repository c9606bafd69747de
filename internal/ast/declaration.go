package ast

import "strings"

// PropertyName is a property with its vendor prefix split off.
// Custom properties ("--x") never carry a prefix.
type PropertyName struct {
	Prefix string
	Name   string
}

// ParsePropertyName splits "-webkit-border-radius" into "-webkit-" and
// "border-radius". The name is lowercased unless it is a custom property.
func ParsePropertyName(s string) PropertyName {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "--") {
		return PropertyName{Name: s}
	}
	s = strings.ToLower(s)
	if len(s) > 2 && s[0] == '-' {
		if i := strings.IndexByte(s[1:], '-'); i > 0 && i+2 < len(s) {
			return PropertyName{Prefix: s[:i+2], Name: s[i+2:]}
		}
	}
	return PropertyName{Name: s}
}

func (p PropertyName) String() string   { return p.Prefix + p.Name }
func (p PropertyName) IsPrefixed() bool { return p.Prefix != "" }
func (p PropertyName) IsCustom() bool   { return strings.HasPrefix(p.Name, "--") }

// Unprefixed drops the vendor prefix.
func (p PropertyName) Unprefixed() PropertyName { return PropertyName{Name: p.Name} }

// Prefixed returns a copy carrying prefix.
func (p PropertyName) Prefixed(prefix string) PropertyName {
	return PropertyName{Prefix: prefix, Name: p.Name}
}

// MatchesIgnorePrefix compares unprefixed names.
func (p PropertyName) MatchesIgnorePrefix(other PropertyName) bool {
	return p.Name == other.Name
}

// Declaration is "property: value". The property name is always available;
// the value stays raw until refined.
type Declaration struct {
	Base
	Groupable[*Declaration]
	refineState

	rawProperty RawSyntax
	rawValue    RawSyntax
	name        PropertyName
	value       *PropertyValue
}

// NewDeclaration wraps raw property and value text.
func NewDeclaration(rawProperty, rawValue RawSyntax, r Refiner) *Declaration {
	d := &Declaration{
		Base:        NewBase(rawProperty.Line, rawProperty.Column),
		rawProperty: rawProperty,
		rawValue:    rawValue,
		name:        ParsePropertyName(rawProperty.Content),
	}
	d.refiner = r
	return d
}

// NewDeclarationWith builds an already refined declaration.
func NewDeclarationWith(line, column int, name PropertyName, value *PropertyValue) *Declaration {
	d := &Declaration{Base: NewBase(line, column), name: name, value: value}
	d.rawProperty = RawSyntax{Line: line, Column: column, Content: name.String()}
	d.markRefined()
	return d
}

func (d *Declaration) Kind() Kind                 { return KindDeclaration }
func (d *Declaration) IsRefined() bool            { return d.refined }
func (d *Declaration) RawProperty() RawSyntax     { return d.rawProperty }
func (d *Declaration) RawValue() RawSyntax        { return d.rawValue }
func (d *Declaration) PropertyName() PropertyName { return d.name }

// SetPropertyName renames the property. Raw text is kept in sync so an
// unrefined declaration writes the new name.
func (d *Declaration) SetPropertyName(n PropertyName) {
	d.name = n
	d.rawProperty.Content = n.String()
}

// IsProperty compares against the unprefixed name.
func (d *Declaration) IsProperty(name string) bool {
	return d.name.Name == name
}

// PropertyValue refines the declaration if needed and returns its value.
func (d *Declaration) PropertyValue() (*PropertyValue, error) {
	if err := d.Refine(); err != nil {
		return nil, err
	}
	return d.value, nil
}

// Value returns the refined value without triggering refinement.
func (d *Declaration) Value() *PropertyValue { return d.value }

// SetPropertyValue replaces the value and marks the declaration refined.
func (d *Declaration) SetPropertyValue(v *PropertyValue) {
	d.value = v
	d.markRefined()
}

// Refine parses the raw value once.
func (d *Declaration) Refine() error {
	return d.run(&d.Base, "refine declaration", func(r Refiner) (bool, error) {
		return r.RefineDeclaration(d)
	})
}

// Copy returns a detached deep copy with a fresh identity. An unrefined
// declaration is copied as raw text with the same refiner.
func (d *Declaration) Copy() *Declaration {
	c := &Declaration{
		Base:        d.copyBase(),
		rawProperty: d.rawProperty,
		rawValue:    d.rawValue,
		name:        d.name,
	}
	c.refineState = refineState{refiner: d.refiner, done: d.done, refined: d.refined}
	if d.value != nil {
		c.value = d.value.Copy()
	}
	return c
}

// PropertyValue is the refined value of a declaration: a term list with an
// optional !important flag.
type PropertyValue struct {
	Base
	terms     *Collection[Term]
	important bool
}

func NewPropertyValue(line, column int, terms ...Term) *PropertyValue {
	v := &PropertyValue{Base: NewBase(line, column)}
	v.terms = NewCollection[Term](v)
	v.terms.AppendAll(terms...)
	return v
}

func (v *PropertyValue) Kind() Kind              { return KindPropertyValue }
func (v *PropertyValue) IsRefined() bool         { return true }
func (v *PropertyValue) Terms() *Collection[Term] { return v.terms }
func (v *PropertyValue) IsImportant() bool       { return v.important }
func (v *PropertyValue) SetImportant(b bool)     { v.important = b }

func (v *PropertyValue) Copy() *PropertyValue {
	c := &PropertyValue{Base: v.copyBase(), important: v.important}
	c.terms = NewCollection[Term](c)
	for t := range v.terms.All() {
		c.terms.Append(t.CopyTerm())
	}
	return c
}
