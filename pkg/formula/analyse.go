package formula

import (
	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/element"
)

// Elements derives the element-count multiset of the formula: counts
// multiplied through nested groups and summed across mixture parts,
// keyed by Atom in first-appearance order. The returned multiset is
// owned by the caller.
func (f *Formula) Elements() *Multiset {
	// Width validation already ran at parse time, so flattening cannot
	// fail here.
	m, _ := f.flatten()
	return m
}

// ElementCount returns the total number of atoms of an element,
// labelled isotopes included.
func (f *Formula) ElementCount(el element.Element) uint64 {
	var total uint64
	for _, e := range f.Elements().Entries() {
		if e.Atom.Element == el {
			total += e.Count
		}
	}
	return total
}

// ContainsElement reports whether the formula contains at least one
// atom of the element, labelled or bare.
func (f *Formula) ContainsElement(el element.Element) bool {
	return f.ElementCount(el) > 0
}

// ContainsIsotope reports whether the flattened formula contains the
// labelled isotope (el, massNumber) with count at least one. An isotope
// matching the most abundant mass number is stored bare and therefore
// reports false here.
func (f *Formula) ContainsIsotope(el element.Element, massNumber uint16) bool {
	return f.Elements().Count(Atom{Element: el, MassNumber: massNumber}) > 0
}

// ContainsResidual reports whether the formula contains the wildcard
// residual atom.
func (f *Formula) ContainsResidual() bool {
	return f.ContainsElement(element.Residual)
}

// Subformulas expands the mixture parts by their coefficients: a part
// with coefficient n yields n copies with coefficient one. The charge
// belongs to the root formula and is not carried over.
func (f *Formula) Subformulas() []*Formula {
	var out []*Formula
	for i := range f.parts {
		pt := &f.parts[i]
		for n := uint32(0); n < pt.coeff; n++ {
			out = append(out, &Formula{
				parts:     []part{{coeff: 1, grp: pt.grp}},
				width:     f.width,
				residuals: f.residuals,
				data:      f.data,
			})
		}
	}
	return out
}

// hillEntries returns the flattened multiset sorted in Hill order.
// Mass accumulation always runs over this ordering so reference values
// are reproducible across platforms.
func (f *Formula) hillEntries() []AtomCount {
	src := f.Elements().Entries()
	entries := make([]AtomCount, len(src))
	copy(entries, src)
	f.sortHill(entries)
	return entries
}

// MolarMass returns the molar mass in Daltons: the sum over atoms of
// count times standard atomic weight, with labelled atoms contributing
// their isotope mass instead.
func (f *Formula) MolarMass() (float64, error) {
	var mass float64
	for _, e := range f.hillEntries() {
		a := e.Atom
		if a.Element == element.Residual {
			return 0, ErrResidual
		}
		var w float64
		if a.IsLabelled() {
			m, ok := f.data.IsotopeMass(a.Element, a.MassNumber)
			if !ok {
				return 0, ErrUnknownIsotope
			}
			w = m
		} else {
			w = f.data.StandardAtomicWeight(a.Element)
		}
		mass += float64(e.Count) * w
	}
	return mass, nil
}

// MonoisotopicMass returns the monoisotopic mass in Daltons: the sum
// over atoms of count times the most abundant isotope mass, with
// labelled atoms contributing their isotope mass.
func (f *Formula) MonoisotopicMass() (float64, error) {
	var mass float64
	for _, e := range f.hillEntries() {
		a := e.Atom
		if a.Element == element.Residual {
			return 0, ErrResidual
		}
		massNumber := a.MassNumber
		if massNumber == 0 {
			massNumber = f.data.MostAbundantMassNumber(a.Element)
		}
		m, ok := f.data.IsotopeMass(a.Element, massNumber)
		if !ok {
			return 0, ErrUnknownIsotope
		}
		mass += float64(e.Count) * m
	}
	return mass, nil
}

// MassOverCharge returns the monoisotopic mass-to-charge ratio,
// adjusted for electron mass: (mass + |q|·mₑ)/|q| for anions and
// (mass − |q|·mₑ)/|q| for cations. It fails with ErrNoCharge when no
// charge was stated and ErrZeroCharge when the stated charge is zero.
func (f *Formula) MassOverCharge() (float64, error) {
	if !f.hasCharge {
		return 0, ErrNoCharge
	}
	if f.charge == 0 {
		return 0, ErrZeroCharge
	}
	mass, err := f.MonoisotopicMass()
	if err != nil {
		return 0, err
	}
	q := float64(f.charge)
	absQ := q
	if absQ < 0 {
		absQ = -absQ
	}
	me := f.data.ElectronMass()
	if f.charge < 0 {
		mass += absQ * me
	} else {
		mass -= absQ * me
	}
	return mass / absQ, nil
}

// IsHillSorted reports whether every mixture part lists its top-level
// atoms in strictly increasing Hill order. Nested groups and residual
// atoms disqualify a part; a repeated identical atom counts as an
// element appearing twice and also disqualifies it.
func (f *Formula) IsHillSorted() bool {
	for i := range f.parts {
		if !f.partHillSorted(&f.parts[i].grp) {
			return false
		}
	}
	return true
}

func (f *Formula) partHillSorted(g *group) bool {
	withCarbon := false
	for _, u := range g.units {
		if a, ok := u.child.(Atom); ok && f.data.HillRank(a.Element) == 0 {
			withCarbon = true
			break
		}
	}

	var prev Atom
	for i, u := range g.units {
		a, ok := u.child.(Atom)
		if !ok || a.Element == element.Residual {
			return false
		}
		if i > 0 && !f.hillLess(prev, a, withCarbon) {
			return false
		}
		prev = a
	}
	return true
}

// IsNobleGasCompound reports whether the flattened atom set is
// non-empty and lies entirely within the noble gases.
func (f *Formula) IsNobleGasCompound() bool {
	entries := f.Elements().Entries()
	if len(entries) == 0 {
		return false
	}
	for _, e := range entries {
		if e.Atom.Element == element.Residual || !f.data.IsNobleGas(e.Atom.Element) {
			return false
		}
	}
	return true
}
