// Package filter provides selection predicates over parsed formulas,
// used when ingesting formula datasets.
package filter

import (
	"fmt"
	"strings"

	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/element"
	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/formula"
)

// Config holds filtering configuration. Zero values disable the
// corresponding filter.
type Config struct {
	MinMass     float64  // Keep only formulas with molar mass >= MinMass
	MaxMass     float64  // Keep only formulas with molar mass <= MaxMass (0 = no limit)
	MaxCharge   int      // Keep only formulas with |charge| <= MaxCharge (0 = no limit)
	NeutralOnly bool     // Drop formulas with a stated non-zero charge
	Elements    []string // Keep only formulas built from these symbols (nil = all)
	RequireHill bool     // Keep only Hill-sorted formulas

	allowed map[element.Element]bool
}

// Compile resolves the element allowlist. It must be called once before
// Keep when Elements is set.
func (c *Config) Compile() error {
	if len(c.Elements) == 0 {
		return nil
	}
	c.allowed = make(map[element.Element]bool, len(c.Elements))
	for _, sym := range c.Elements {
		sym = strings.TrimSpace(sym)
		el, ok := element.FromSymbol(sym)
		if !ok {
			return fmt.Errorf("unknown element symbol %q in allowlist", sym)
		}
		c.allowed[el] = true
	}
	return nil
}

// Keep reports whether a formula passes all configured filters.
func (c *Config) Keep(f *formula.Formula) (bool, error) {
	if c.NeutralOnly {
		if q, stated := f.Charge(); stated && q != 0 {
			return false, nil
		}
	}

	if c.MaxCharge > 0 {
		q, _ := f.Charge()
		if q < 0 {
			q = -q
		}
		if int(q) > c.MaxCharge {
			return false, nil
		}
	}

	if c.RequireHill && !f.IsHillSorted() {
		return false, nil
	}

	if c.allowed != nil {
		for _, e := range f.Elements().Entries() {
			if !c.allowed[e.Atom.Element] {
				return false, nil
			}
		}
	}

	if c.MinMass > 0 || c.MaxMass > 0 {
		mass, err := f.MolarMass()
		if err != nil {
			return false, fmt.Errorf("mass filter: %w", err)
		}
		if c.MinMass > 0 && mass < c.MinMass {
			return false, nil
		}
		if c.MaxMass > 0 && mass > c.MaxMass {
			return false, nil
		}
	}

	return true, nil
}
