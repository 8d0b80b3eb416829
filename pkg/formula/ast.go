// Package formula parses, canonicalises and analyses textual molecular
// formulas. The parser accepts a permissive Unicode-aware grammar with
// nested groups, isotopes, hydrate dots, charge suffixes, OCR homoglyphs
// and subscript/superscript digits, and never panics on any input.
package formula

import (
	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/element"
)

// CountWidth selects the integer width used for atom counts. The zero
// value is the 16-bit default.
type CountWidth uint8

const (
	// Count16 stores counts as unsigned 16-bit integers (default).
	Count16 CountWidth = iota
	// Count8 stores counts as unsigned 8-bit integers.
	Count8
	// Count32 stores counts as unsigned 32-bit integers.
	Count32
)

// max returns the largest count representable at this width.
func (w CountWidth) max() uint64 {
	switch w {
	case Count8:
		return 0xFF
	case Count32:
		return 0xFFFFFFFF
	default:
		return 0xFFFF
	}
}

// defaultMaxInput bounds accepted input length (spec floor is 64 KiB).
const defaultMaxInput = 1 << 20

// maxNesting bounds group nesting depth.
const maxNesting = 256

// maxChargeMagnitude bounds |charge|.
const maxChargeMagnitude = 9999

// Config selects a parser flavour. The zero value parses with 16-bit
// counts, residuals disallowed, the permissive (non-InChI) grammar and
// the built-in element data.
type Config struct {
	// Width is the integer width for counts and coefficients.
	Width CountWidth
	// Residuals accepts the wildcard residual atom "R".
	Residuals bool
	// InChI requires Hill-ordered input and rejects anything else with
	// NotHillOrdered.
	InChI bool
	// Data overrides the element data port. Nil means element.Default().
	Data element.Data
	// MaxInput overrides the input length bound in bytes. Zero means
	// 1 MiB.
	MaxInput int
}

// Parse parses text with the default configuration.
func Parse(text string) (*Formula, error) {
	var c Config
	return c.Parse(text)
}

// Atom is one occurrence of an element, optionally labelled with a mass
// number. MassNumber zero means the bare (unlabelled) element; an
// isotope matching the element's most abundant mass number is always
// stored bare so that equality and canonical rendering are unique.
type Atom struct {
	Element    element.Element
	MassNumber uint16
}

// IsLabelled reports whether the atom carries an isotope label.
func (a Atom) IsLabelled() bool {
	return a.MassNumber != 0
}

// Text renders the atom against an element data port: optional
// superscript mass number, then the symbol.
func (a Atom) Text(data element.Data) string {
	if !a.IsLabelled() {
		return data.Symbol(a.Element)
	}
	var b []byte
	b = appendSuperscript(b, uint64(a.MassNumber))
	return string(b) + data.Symbol(a.Element)
}

// String renders the atom against the built-in table. Code holding a
// Formula should prefer Text with the formula's Data port.
func (a Atom) String() string {
	return a.Text(element.Default())
}

// node is either an Atom or a *group.
type node interface {
	isNode()
}

func (Atom) isNode()   {}
func (*group) isNode() {}

// unit pairs a child node with its multiplier.
type unit struct {
	child node
	count uint32
}

// group is an ordered sequence of units. square records the delimiter
// used in the source so rendering is faithful.
type group struct {
	units  []unit
	square bool
}

// part is one dot-separated mixture component: a leading coefficient
// (1 when absent) and its group.
type part struct {
	coeff uint32
	grp   group
}

// Formula is an immutable parsed molecular formula. It retains the
// parsed hierarchy for faithful rendering and derives flattened views
// on demand.
type Formula struct {
	parts     []part
	charge    int16
	hasCharge bool
	width     CountWidth
	residuals bool
	data      element.Data
}

// Charge returns the stated charge and whether one was stated at all.
// An explicit "+0" yields (0, true); an absent charge yields (0, false).
func (f *Formula) Charge() (int16, bool) {
	return f.charge, f.hasCharge
}

// Data returns the element data port the formula was parsed with.
func (f *Formula) Data() element.Data {
	return f.data
}

// AtomCount is one multiset entry.
type AtomCount struct {
	Atom  Atom
	Count uint64
}

// Multiset maps atoms to counts, preserving first-appearance order of
// the flattened traversal.
type Multiset struct {
	entries []AtomCount
	index   map[Atom]int
}

func newMultiset() *Multiset {
	return &Multiset{index: make(map[Atom]int, 8)}
}

func (m *Multiset) add(a Atom, n uint64, max uint64) bool {
	if i, ok := m.index[a]; ok {
		m.entries[i].Count += n
		return m.entries[i].Count <= max
	}
	m.index[a] = len(m.entries)
	m.entries = append(m.entries, AtomCount{Atom: a, Count: n})
	return n <= max
}

// Len returns the number of distinct atoms.
func (m *Multiset) Len() int {
	return len(m.entries)
}

// Entries returns the entries in first-appearance order. The slice is
// owned by the Multiset; callers must not modify it.
func (m *Multiset) Entries() []AtomCount {
	return m.entries
}

// Count returns the count for an atom, zero if absent.
func (m *Multiset) Count(a Atom) uint64 {
	if i, ok := m.index[a]; ok {
		return m.entries[i].Count
	}
	return 0
}

// flatten derives the element-count multiset by multiplying counts
// through nested groups and summing across mixture parts, with checked
// accumulation against the configured width.
func (f *Formula) flatten() (*Multiset, *ParseError) {
	m := newMultiset()
	max := f.width.max()
	for i := range f.parts {
		if err := flattenGroup(&f.parts[i].grp, uint64(f.parts[i].coeff), m, max, f.data); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func flattenGroup(g *group, mult uint64, m *Multiset, max uint64, data element.Data) *ParseError {
	for _, u := range g.units {
		k := mult * uint64(u.count)
		if k > max {
			return parseErrf(CountOverflow, Span{},
				"flattened count %d exceeds width maximum %d", k, max)
		}
		switch child := u.child.(type) {
		case Atom:
			if !m.add(child, k, max) {
				return parseErrf(CountOverflow, Span{},
					"accumulated count for %s exceeds width maximum %d", child.Text(data), max)
			}
		case *group:
			if err := flattenGroup(child, k, m, max, data); err != nil {
				return err
			}
		}
	}
	return nil
}
