package formula

import (
	"errors"
	"strings"
	"testing"

	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/element"
)

func elementBySymbol(t *testing.T, sym string) (element.Element, bool) {
	t.Helper()
	el, ok := element.FromSymbol(sym)
	if !ok {
		t.Fatalf("unknown element symbol %q", sym)
	}
	return el, ok
}

func mustParse(t *testing.T, input string) *Formula {
	t.Helper()
	f, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return f
}

func kindOf(t *testing.T, err error) ErrorKind {
	t.Helper()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	return pe.Kind
}

func TestParseAccepts(t *testing.T) {
	inputs := []string{
		"H2O",
		"C6H12O6",
		"CuSO4.5H2O",
		"2H2O.NaCl",
		"(CH3)3CH",
		"Mg(OH)2",
		"[Co(NH3)5Cl]Cl2",
		"[Fe(CN)6]4-",
		"[13C]H4",
		"¹³CH₄",
		"H₂O",
		"SO4-2",
		"SO4^2-",
		"SO₄²⁻",
		"Fe+3",
		"Fe3+",
		"Na+",
		"Cl-",
		"He",
		"U",
		"C60",
		"Al2(SO4)3",
		"  H2O  ",
	}

	for _, input := range inputs {
		if _, err := Parse(input); err != nil {
			t.Errorf("Parse(%q) failed: %v", input, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ErrorKind
	}{
		{"empty", "", UnexpectedEnd},
		{"whitespace only", "   ", UnexpectedEnd},
		{"trailing dot", "H2O.", UnexpectedEnd},
		{"leading dot", ".H2O", UnexpectedEnd},
		{"double dot", "H2O..NaCl", UnexpectedEnd},
		{"empty group", "H2()", UnexpectedEnd},
		{"interior space", "H 2O", UnknownCharacter},
		{"stray symbol", "H2O@", UnknownCharacter},
		{"unknown element", "J", UnknownElement},
		{"unknown two letter", "Xy", UnknownElement},
		{"lowercase start", "hello", UnknownElement},
		{"unbalanced open", "H2((O", UnbalancedDelimiter},
		{"unbalanced close", "H2O)", UnbalancedDelimiter},
		{"mismatched pair", "(H2O]", UnbalancedDelimiter},
		{"dot inside group", "(H2O.NaCl)", UnbalancedDelimiter},
		{"orphan count", "2", OrphanCount},
		{"count after count", "H2₃", OrphanCount},
		{"double count", "(H)2₂", OrphanCount},
		{"zero count", "H0", InvalidCoefficient},
		{"zero coefficient", "0H2O", InvalidCoefficient},
		{"zero coefficient after dot", "NaCl.0H2O", InvalidCoefficient},
		{"count overflow", "H65536", CountOverflow},
		{"flatten overflow", "(H40000)2", CountOverflow},
		{"charge overflow", "Fe+10000", ChargeOverflow},
		{"mixed signs", "Fe+-", MultipleCharges},
		{"charge then charge", "SO4-2-", MultipleCharges},
		{"sign run then digits", "Fe++2", MultipleCharges},
		{"misplaced charge", "H+2O", ChargeMisplaced},
		{"leading sign", "+H", ChargeMisplaced},
		{"bare caret", "H^2O", ChargeMisplaced},
		{"lone superscript", "¹³", MisplacedIsotope},
		{"superscript before paren", "¹³(O)", MisplacedIsotope},
		{"empty isotope bracket", "[13]", MalformedIsotopeBracket},
		{"isotope bracket group", "[13(O)]", MalformedIsotopeBracket},
		{"zero mass number", "[0C]", MalformedIsotopeBracket},
		{"huge mass number", "[1000C]", MalformedIsotopeBracket},
		{"residual disallowed", "R", ResidualDisallowed},
		{"residual in group", "CH3R", ResidualDisallowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want %v", tt.input, tt.want)
			}
			if got := kindOf(t, err); got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNestingTooDeep(t *testing.T) {
	input := strings.Repeat("(", 300) + "O" + strings.Repeat(")", 300)
	_, err := Parse(input)
	if err == nil || kindOf(t, err) != NestingTooDeep {
		t.Fatalf("Parse(deep nesting) = %v, want NestingTooDeep", err)
	}

	// 200 levels is within the bound.
	input = strings.Repeat("(", 200) + "O" + strings.Repeat(")", 200)
	if _, err := Parse(input); err != nil {
		t.Fatalf("Parse(200 levels) failed: %v", err)
	}
}

func TestInputTooLong(t *testing.T) {
	c := Config{MaxInput: 100}
	_, err := c.Parse(strings.Repeat("C", 200))
	if err == nil || kindOf(t, err) != InputTooLong {
		t.Fatalf("Parse(long input) = %v, want InputTooLong", err)
	}

	// The default bound is 1 MiB.
	_, err = Parse(strings.Repeat("C", 1<<20+1))
	if err == nil || kindOf(t, err) != InputTooLong {
		t.Fatalf("Parse(>1MiB) = %v, want InputTooLong", err)
	}
}

func TestParseCharge(t *testing.T) {
	tests := []struct {
		input  string
		charge int16
		stated bool
	}{
		{"H2O", 0, false},
		{"Na+", 1, true},
		{"Cl-", -1, true},
		{"Fe+3", 3, true},
		{"Fe3+", 3, true},
		{"Fe³⁺", 3, true},
		{"SO4-2", -2, true},
		{"SO4^2-", -2, true},
		{"SO4^-2", -2, true},
		{"SO₄²⁻", -2, true},
		{"[Fe(CN)6]4-", -4, true},
		{"Na⁺", 1, true},
		{"S+0", 0, true},
		{"Fe+9999", 9999, true},
		// Repeated-sign OCR notation: the run length is the magnitude.
		{"Fe+++", 3, true},
		{"Fe———", -3, true},
		{"SO4--", -2, true},
		{"H++", 2, true},
		{"O₂⁻⁻", -2, true},
	}

	for _, tt := range tests {
		f := mustParse(t, tt.input)
		q, stated := f.Charge()
		if q != tt.charge || stated != tt.stated {
			t.Errorf("Parse(%q).Charge() = (%d, %v), want (%d, %v)",
				tt.input, q, stated, tt.charge, tt.stated)
		}
	}
}

func TestChargeEquivalentNotations(t *testing.T) {
	want := mustParse(t, "SO4-2")
	for _, input := range []string{"SO₄²⁻", "SO4^2-", "SO4−2", "SO4–2"} {
		got := mustParse(t, input)
		if got.String() != want.String() {
			t.Errorf("Parse(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseIsotopes(t *testing.T) {
	bracket := mustParse(t, "[13C]H4")
	super := mustParse(t, "¹³CH₄")
	if bracket.String() != super.String() {
		t.Errorf("bracket and superscript isotope forms differ: %q vs %q", bracket, super)
	}

	c, _ := elementBySymbol(t, "C")
	if !bracket.ContainsIsotope(c, 13) {
		t.Error("ContainsIsotope(C, 13) = false, want true")
	}
	if bracket.ContainsIsotope(c, 12) {
		t.Error("ContainsIsotope(C, 12) = true, want false")
	}
}

func TestMostAbundantIsotopeCanonicalisesToBareElement(t *testing.T) {
	f := mustParse(t, "[12C]H4")
	if got := f.String(); got != "CH₄" {
		t.Errorf("Parse([12C]H4).String() = %q, want CH₄", got)
	}
	c, _ := elementBySymbol(t, "C")
	if f.ContainsIsotope(c, 12) {
		t.Error("[12C] should canonicalise to bare C")
	}
}

func TestParseResiduals(t *testing.T) {
	c := Config{Residuals: true}

	f, err := c.Parse("CH3R")
	if err != nil {
		t.Fatalf("Parse(CH3R) with residuals failed: %v", err)
	}
	if !f.ContainsResidual() {
		t.Error("ContainsResidual() = false, want true")
	}

	f, err = c.Parse("H2O")
	if err != nil {
		t.Fatalf("Parse(H2O) with residuals failed: %v", err)
	}
	if f.ContainsResidual() {
		t.Error("ContainsResidual() = true, want false")
	}
}

func TestCountWidths(t *testing.T) {
	tests := []struct {
		name  string
		width CountWidth
		input string
		ok    bool
	}{
		{"u8 max", Count8, "H255", true},
		{"u8 overflow", Count8, "H256", false},
		{"u8 flatten overflow", Count8, "(H100)3", false},
		{"u16 default max", Count16, "H65535", true},
		{"u16 overflow", Count16, "H65536", false},
		{"u32 large", Count32, "H70000", true},
		{"u32 coefficient", Count32, "100000H2O", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Width: tt.width}
			_, err := c.Parse(tt.input)
			if tt.ok && err != nil {
				t.Errorf("Parse(%q) failed: %v", tt.input, err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatalf("Parse(%q) succeeded, want CountOverflow", tt.input)
				}
				if got := kindOf(t, err); got != CountOverflow {
					t.Errorf("Parse(%q) = %v, want CountOverflow", tt.input, got)
				}
			}
		})
	}
}

func TestInChIFlavour(t *testing.T) {
	c := Config{InChI: true}

	if _, err := c.Parse("C2H6O"); err != nil {
		t.Fatalf("Parse(C2H6O) under InChI flavour failed: %v", err)
	}

	_, err := c.Parse("C2OH5")
	if err == nil || kindOf(t, err) != NotHillOrdered {
		t.Fatalf("Parse(C2OH5) under InChI flavour = %v, want NotHillOrdered", err)
	}
}

func TestErrorSpans(t *testing.T) {
	_, err := Parse("H2O@")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Span.Start != 3 || pe.Span.End != 4 {
		t.Errorf("span = %+v, want {3 4}", pe.Span)
	}

	// Spans index the original input, before homoglyph folding.
	_, err = Parse("H₂O@")
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Span.Start != len("H₂O") {
		t.Errorf("span start = %d, want %d", pe.Span.Start, len("H₂O"))
	}
}
