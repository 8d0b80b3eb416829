package formula

import (
	"sort"
	"strconv"
	"strings"

	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/element"
)

// RenderStyle selects how a formula is rendered back to text.
type RenderStyle uint8

const (
	// RenderParseOrder reproduces the parsed structure: groups, counts
	// and atom order as written, with counts as Unicode subscripts.
	RenderParseOrder RenderStyle = iota
	// RenderHill flattens each mixture part and orders its atoms in
	// Hill order: in a part containing carbon, carbon, hydrogen, then
	// all other elements by rank; in a part without carbon, every
	// element alphabetically by symbol, hydrogen included. Isotopes sort
	// within their element, bare first, then ascending mass number.
	RenderHill
)

var subscriptDigits = [10]rune{'₀', '₁', '₂', '₃', '₄', '₅', '₆', '₇', '₈', '₉'}
var superscriptDigits = [10]rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

func appendScriptDigits(b []byte, n uint64, digits *[10]rune) []byte {
	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	for _, d := range tmp[i:] {
		b = append(b, string(digits[d-'0'])...)
	}
	return b
}

func appendSubscript(b []byte, n uint64) []byte {
	return appendScriptDigits(b, n, &subscriptDigits)
}

func appendSuperscript(b []byte, n uint64) []byte {
	return appendScriptDigits(b, n, &superscriptDigits)
}

// String renders the formula in parse order.
func (f *Formula) String() string {
	return f.Render(RenderParseOrder)
}

// Render renders the formula in the requested style. Counts of one are
// elided; counts of two and above become Unicode subscripts; the charge
// renders as superscript digits with a trailing sign (the digits elided
// for magnitude one). Mixture parts keep parse order and are separated
// by '.', each with its coefficient when above one.
func (f *Formula) Render(style RenderStyle) string {
	var b strings.Builder
	for i := range f.parts {
		if i > 0 {
			b.WriteByte('.')
		}
		pt := &f.parts[i]
		if pt.coeff > 1 {
			b.WriteString(strconv.FormatUint(uint64(pt.coeff), 10))
		}
		if style == RenderHill {
			f.renderHillPart(&b, &pt.grp)
		} else {
			renderGroup(&b, &pt.grp, f.data, false)
		}
	}
	f.renderCharge(&b)
	return b.String()
}

func renderGroup(b *strings.Builder, g *group, data element.Data, delimited bool) {
	if delimited {
		if g.square {
			b.WriteByte('[')
		} else {
			b.WriteByte('(')
		}
	}
	for _, u := range g.units {
		switch child := u.child.(type) {
		case Atom:
			renderAtom(b, child, data)
		case *group:
			renderGroup(b, child, data, true)
		}
		if u.count >= 2 {
			b.Write(appendSubscript(nil, uint64(u.count)))
		}
	}
	if delimited {
		if g.square {
			b.WriteByte(']')
		} else {
			b.WriteByte(')')
		}
	}
}

func renderAtom(b *strings.Builder, a Atom, data element.Data) {
	if a.IsLabelled() {
		b.Write(appendSuperscript(nil, uint64(a.MassNumber)))
	}
	b.WriteString(data.Symbol(a.Element))
}

// renderHillPart flattens one mixture part (coefficient excluded) and
// writes its atoms in Hill order with merged counts.
func (f *Formula) renderHillPart(b *strings.Builder, g *group) {
	m := newMultiset()
	// Hill rendering is only reachable for formulas that already passed
	// width validation, so the unchecked maximum is safe here.
	flattenGroup(g, 1, m, ^uint64(0), f.data)

	entries := make([]AtomCount, len(m.entries))
	copy(entries, m.entries)
	f.sortHill(entries)

	for _, e := range entries {
		renderAtom(b, e.Atom, f.data)
		if e.Count >= 2 {
			b.Write(appendSubscript(nil, e.Count))
		}
	}
}

func (f *Formula) renderCharge(b *strings.Builder) {
	if !f.hasCharge {
		return
	}
	mag := uint64(f.charge)
	if f.charge < 0 {
		mag = uint64(-int64(f.charge))
	}
	if mag != 1 {
		b.Write(appendSuperscript(nil, mag))
	}
	if f.charge < 0 {
		b.WriteRune('⁻')
	} else {
		b.WriteRune('⁺')
	}
}

// sortHill orders multiset entries in Hill order. With carbon present
// the rank ordering applies (C, H, then alphabetical); without carbon
// every element sorts alphabetically, hydrogen included. Within an
// element the bare atom sorts first, then ascending mass number.
func (f *Formula) sortHill(entries []AtomCount) {
	withCarbon := false
	for _, e := range entries {
		if f.data.HillRank(e.Atom.Element) == 0 {
			withCarbon = true
			break
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return f.hillLess(entries[i].Atom, entries[j].Atom, withCarbon)
	})
}

// hillLess is the strict Hill order on atoms.
func (f *Formula) hillLess(a, b Atom, withCarbon bool) bool {
	if a.Element != b.Element {
		if withCarbon {
			return f.data.HillRank(a.Element) < f.data.HillRank(b.Element)
		}
		return f.data.Symbol(a.Element) < f.data.Symbol(b.Element)
	}
	return a.MassNumber < b.MassNumber
}
