package formula

import (
	"testing"

	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/element"
)

// renamingData wraps the built-in table but renders hydrogen with the
// deuterium-style symbol "D", to make any rendering path that bypasses
// the configured port visible.
type renamingData struct {
	element.Data
}

func (d renamingData) Symbol(el element.Element) string {
	sym := d.Data.Symbol(el)
	if sym == "H" {
		return "D"
	}
	return sym
}

func TestRenderParseOrder(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"H2O", "H₂O"},
		{"H₂O", "H₂O"},
		{"CuSO4.5H2O", "CuSO₄.5H₂O"},
		{"CuSO4｡5H2O", "CuSO₄.5H₂O"},
		{"Mg(OH)2", "Mg(OH)₂"},
		{"[Co(NH3)5Cl]Cl2", "[Co(NH₃)₅Cl]Cl₂"},
		{"SO4-2", "SO₄²⁻"},
		{"SO4^2-", "SO₄²⁻"},
		{"SO₄²⁻", "SO₄²⁻"},
		{"Na+", "Na⁺"},
		{"Cl-", "Cl⁻"},
		{"Fe+3", "Fe³⁺"},
		{"Fe3+", "Fe³⁺"},
		{"Fe+++", "Fe³⁺"},
		{"SO4--", "SO₄²⁻"},
		{"[13C]H4", "¹³CH₄"},
		{"¹³CH₄", "¹³CH₄"},
		{"[12C]H4", "CH₄"},
		{"2H2O.NaCl", "2H₂O.NaCl"},
		{"C60", "C₆₀"},
	}

	for _, tt := range tests {
		f := mustParse(t, tt.input)
		if got := f.String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderHill(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"H2O", "H₂O"},
		{"OH2", "H₂O"},
		{"HOH", "H₂O"},
		{"C2H5OH", "C₂H₆O"},
		{"C6H12O6", "C₆H₁₂O₆"},
		{"NaCl", "ClNa"},
		{"HCl", "ClH"},
		{"CuSO4.5H2O", "CuO₄S.5H₂O"},
		{"Mg(OH)2", "H₂MgO₂"},
		{"CH3[13C]H3", "C¹³CH₆"},
		{"SO4-2", "O₄S²⁻"},
	}

	for _, tt := range tests {
		f := mustParse(t, tt.input)
		if got := f.Render(RenderHill); got != tt.want {
			t.Errorf("Parse(%q).Render(Hill) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// Parse-order rendering must reparse to the same flattened multiset and
// charge.
func TestRenderRoundTrip(t *testing.T) {
	inputs := []string{
		"H2O",
		"CuSO4.5H2O",
		"[Co(NH3)5Cl]Cl2",
		"SO4^2-",
		"¹³CH₄",
		"2H2O.NaCl",
		"(CH3)3CH",
		"Al2(SO4)3",
		"[Fe(CN)6]4-",
		"Mg(OH)2",
		"Na+",
		"S+0",
	}

	for _, input := range inputs {
		first := mustParse(t, input)
		second := mustParse(t, first.String())

		if !sameFlattened(first, second) {
			t.Errorf("round trip of %q changed the multiset: %q", input, first)
		}
		q1, s1 := first.Charge()
		q2, s2 := second.Charge()
		if q1 != q2 || s1 != s2 {
			t.Errorf("round trip of %q changed the charge", input)
		}
		if second.String() != first.String() {
			t.Errorf("rendering of %q is not idempotent: %q vs %q",
				input, first, second)
		}
	}
}

func TestRenderHillIdempotent(t *testing.T) {
	inputs := []string{"C2H5OH", "HOH", "NaCl.H2O", "CH3[13C]H3", "SO4-2"}

	for _, input := range inputs {
		once := mustParse(t, input).Render(RenderHill)
		again := mustParse(t, once)
		if got := again.Render(RenderHill); got != once {
			t.Errorf("Hill render of %q not idempotent: %q vs %q", input, once, got)
		}
		if !again.IsHillSorted() {
			t.Errorf("Hill render of %q (%q) not Hill sorted per analyser", input, once)
		}
	}
}

// Every rendering path must resolve symbols through the configured
// element data port, never the built-in table.
func TestRenderUsesConfiguredData(t *testing.T) {
	cfg := Config{Data: renamingData{element.Default()}}

	f, err := cfg.Parse("H2O")
	if err != nil {
		t.Fatalf("Parse(H2O) failed: %v", err)
	}
	if got := f.String(); got != "D₂O" {
		t.Errorf("String() = %q, want D₂O (built-in table leaked into parse-order rendering)", got)
	}
	if got := f.Render(RenderHill); got != "D₂O" {
		t.Errorf("Render(Hill) = %q, want D₂O", got)
	}

	// Grouped and isotope-labelled atoms go through the same port.
	f, err = cfg.Parse("Mg(OH)2.²H2O")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := f.String(); got != "Mg(OD)₂.²D₂O" {
		t.Errorf("String() = %q, want Mg(OD)₂.²D₂O", got)
	}

	// Multiset entries render against the same port via Atom.Text.
	h, _ := elementBySymbol(t, "H")
	if got := (Atom{Element: h}).Text(f.Data()); got != "D" {
		t.Errorf("Atom.Text(Data()) = %q, want D", got)
	}
}

func sameFlattened(a, b *Formula) bool {
	ea, eb := a.Elements().Entries(), b.Elements().Entries()
	if len(ea) != len(eb) {
		return false
	}
	for _, e := range ea {
		if b.Elements().Count(e.Atom) != e.Count {
			return false
		}
	}
	return true
}
