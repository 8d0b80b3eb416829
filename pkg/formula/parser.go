package formula

import (
	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/element"
)

// Parse parses text under this configuration. It returns either a
// Formula or a *ParseError; it never panics, for any byte sequence.
func (c *Config) Parse(text string) (*Formula, error) {
	data := c.Data
	if data == nil {
		data = element.Default()
	}
	maxInput := c.MaxInput
	if maxInput <= 0 {
		maxInput = defaultMaxInput
	}

	chars, perr := normalize(text, maxInput)
	if perr != nil {
		return nil, perr
	}
	toks, perr := tokenize(chars, data)
	if perr != nil {
		return nil, perr
	}
	if len(toks) == 0 {
		return nil, parseErr(UnexpectedEnd, Span{0, len(text)})
	}

	body, charge, hasCharge, perr := extractCharge(toks)
	if perr != nil {
		return nil, perr
	}
	if len(body) == 0 {
		return nil, parseErr(UnexpectedEnd, Span{0, len(text)})
	}

	p := &parser{
		toks:      body,
		cfg:       c,
		data:      data,
		widthMax:  c.Width.max(),
		endSpan:   Span{body[len(body)-1].span.End, body[len(body)-1].span.End},
		inputSpan: Span{0, len(text)},
	}

	f, perr := p.parseFormula()
	if perr != nil {
		return nil, perr
	}
	f.charge = charge
	f.hasCharge = hasCharge

	// Validate flattened counts against the configured width.
	if _, perr = f.flatten(); perr != nil {
		perr.Span = p.inputSpan
		return nil, perr
	}

	if c.InChI && !f.IsHillSorted() {
		return nil, parseErr(NotHillOrdered, p.inputSpan)
	}

	return f, nil
}

// extractCharge strips the trailing charge token sequence, if any, and
// verifies that no other charge-like token remains in the body. Accepted
// trailing shapes: sign, sign digits, digits sign (baseline, optionally
// preceded by '^'), their superscript renditions, and a run of repeated
// identical signs whose length is the magnitude ("Fe+++" is charge +3,
// a notation common in OCR'd print literature).
func extractCharge(toks []token) ([]token, int16, bool, *ParseError) {
	body := toks
	var charge int16
	hasCharge := false

	n := len(toks)
	last := toks[n-1]

	switch {
	case last.isSign():
		// "...+", "...+++", "...2-", "...²⁻", "...^2-"
		j := n - 1
		for j > 0 && toks[j-1].kind == last.kind && toks[j-1].scr == last.scr {
			j--
		}
		mag := uint64(n - j)
		magSpan := Span{toks[j].span.Start, last.span.End}
		if mag == 1 && j > 0 && toks[j-1].isDigits() && digitsMatchSign(toks[j-1], last) {
			mag = uint64(toks[j-1].num)
			magSpan = toks[j-1].span
			j--
		}
		if j > 0 && toks[j-1].kind == tokCaret && last.scr == baseline {
			j--
		}
		q, perr := signedCharge(last.kind, mag, magSpan)
		if perr != nil {
			return nil, 0, false, perr
		}
		body, charge, hasCharge = toks[:j], q, true

	case last.kind == tokDigits || last.kind == tokDigitsSup:
		// "...+3", "...⁻²", "...^+3"
		if n < 2 || !toks[n-2].isSign() || !digitsMatchSign(last, toks[n-2]) {
			break
		}
		j := n - 2
		if j > 0 && toks[j-1].kind == tokCaret && toks[n-2].scr == baseline {
			j--
		}
		q, perr := signedCharge(toks[n-2].kind, uint64(last.num), last.span)
		if perr != nil {
			return nil, 0, false, perr
		}
		body, charge, hasCharge = toks[:j], q, true
	}

	// Exactly zero or one charge occurs, and it must be trailing.
	for i, t := range body {
		if !t.isSign() && t.kind != tokCaret {
			continue
		}
		if i == len(body)-1 && t.isSign() {
			return nil, 0, false, parseErr(MultipleCharges, t.span)
		}
		return nil, 0, false, parseErr(ChargeMisplaced, t.span)
	}

	return body, charge, hasCharge, nil
}

// digitsMatchSign reports whether a digits token and a sign token form a
// single charge: baseline digits with a baseline sign, superscript
// digits with a superscript sign.
func digitsMatchSign(digits, sign token) bool {
	if sign.scr == superscript {
		return digits.kind == tokDigitsSup
	}
	return digits.kind == tokDigits
}

func signedCharge(sign tokenKind, mag uint64, span Span) (int16, *ParseError) {
	if mag > maxChargeMagnitude {
		return 0, parseErrf(ChargeOverflow, span,
			"charge magnitude %d exceeds %d", mag, maxChargeMagnitude)
	}
	q := int16(mag)
	if sign == tokMinus {
		q = -q
	}
	return q, nil
}

type parser struct {
	toks      []token
	pos       int
	cfg       *Config
	data      element.Data
	widthMax  uint64
	endSpan   Span
	inputSpan Span
}

func (p *parser) peek() (token, bool) {
	if p.pos < len(p.toks) {
		return p.toks[p.pos], true
	}
	return token{}, false
}

func (p *parser) parseFormula() (*Formula, *ParseError) {
	f := &Formula{
		width:     p.cfg.Width,
		residuals: p.cfg.Residuals,
		data:      p.data,
	}

	for {
		pt, perr := p.parsePart()
		if perr != nil {
			return nil, perr
		}
		f.parts = append(f.parts, pt)

		t, ok := p.peek()
		if !ok {
			break
		}
		// parseGroup only stops cleanly at a dot or end of input.
		if t.kind != tokDot {
			return nil, parseErr(UnexpectedEnd, t.span)
		}
		p.pos++
		if _, more := p.peek(); !more {
			return nil, parseErr(UnexpectedEnd, t.span)
		}
	}

	return f, nil
}

// parsePart parses one mixture component: an optional coefficient
// followed by a group running to the next dot or end of input.
func (p *parser) parsePart() (part, *ParseError) {
	pt := part{coeff: 1}

	if t, ok := p.peek(); ok && t.kind == tokDigits && p.startsUnit(p.pos+1) {
		if t.num == 0 {
			return pt, parseErr(InvalidCoefficient, t.span)
		}
		if uint64(t.num) > p.widthMax {
			return pt, parseErrf(CountOverflow, t.span,
				"coefficient %d exceeds width maximum %d", t.num, p.widthMax)
		}
		pt.coeff = t.num
		p.pos++
	}

	grp, perr := p.parseGroup(0, 0)
	if perr != nil {
		return pt, perr
	}
	pt.grp = grp
	return pt, nil
}

// startsUnit reports whether the token at position i can begin a unit.
func (p *parser) startsUnit(i int) bool {
	if i >= len(p.toks) {
		return false
	}
	switch p.toks[i].kind {
	case tokElement, tokResidual, tokLParen, tokLBracket, tokDigitsSup:
		return true
	}
	return false
}

// parseGroup parses units until the closing delimiter (0 means the
// group runs to a top-level dot or end of input). The closing token is
// consumed.
func (p *parser) parseGroup(depth int, closer tokenKind) (group, *ParseError) {
	if depth > maxNesting {
		t, _ := p.peek()
		return group{}, parseErrf(NestingTooDeep, t.span,
			"more than %d nested groups", maxNesting)
	}

	g := group{square: closer == tokRBracket}
	lastWasCount := false

	for {
		t, ok := p.peek()
		if !ok {
			if closer != 0 {
				return g, parseErrf(UnbalancedDelimiter, p.endSpan,
					"missing %s", closer)
			}
			break
		}

		switch t.kind {
		case tokDot:
			if closer != 0 {
				return g, parseErrf(UnbalancedDelimiter, t.span,
					"group not closed before '.'")
			}
			// End of this mixture part; the caller consumes the dot.
			if len(g.units) == 0 {
				return g, parseErr(UnexpectedEnd, t.span)
			}
			return g, nil

		case tokElement:
			p.pos++
			g.units = append(g.units, unit{child: p.atom(t.el, 0), count: 1})
			lastWasCount = false

		case tokResidual:
			if !p.cfg.Residuals {
				return g, parseErr(ResidualDisallowed, t.span)
			}
			p.pos++
			g.units = append(g.units, unit{child: Atom{Element: element.Residual}, count: 1})
			lastWasCount = false

		case tokDigitsSup:
			// Isotope prefix: superscript mass number, then an element.
			p.pos++
			next, ok := p.peek()
			if !ok || next.kind != tokElement {
				return g, parseErr(MisplacedIsotope, t.span)
			}
			if t.num == 0 || t.num > 999 {
				return g, parseErrf(MisplacedIsotope, t.span,
					"mass number %d out of range", t.num)
			}
			p.pos++
			g.units = append(g.units, unit{child: p.atom(next.el, uint16(t.num)), count: 1})
			lastWasCount = false

		case tokLBracket:
			u, perr := p.parseBracket(depth)
			if perr != nil {
				return g, perr
			}
			g.units = append(g.units, u)
			lastWasCount = false

		case tokLParen:
			p.pos++
			sub, perr := p.parseGroup(depth+1, tokRParen)
			if perr != nil {
				return g, perr
			}
			g.units = append(g.units, unit{child: &sub, count: 1})
			lastWasCount = false

		case tokDigits, tokDigitsSub:
			if len(g.units) == 0 || lastWasCount {
				return g, parseErr(OrphanCount, t.span)
			}
			if t.num == 0 {
				return g, parseErr(InvalidCoefficient, t.span)
			}
			if uint64(t.num) > p.widthMax {
				return g, parseErrf(CountOverflow, t.span,
					"count %d exceeds width maximum %d", t.num, p.widthMax)
			}
			p.pos++
			g.units[len(g.units)-1].count = t.num
			lastWasCount = true

		case tokRParen, tokRBracket:
			if t.kind != closer {
				return g, parseErr(UnbalancedDelimiter, t.span)
			}
			p.pos++
			if len(g.units) == 0 {
				return g, parseErr(UnexpectedEnd, t.span)
			}
			return g, nil

		default:
			// Signs and carets were consumed by extractCharge; anything
			// left is misplaced.
			return g, parseErr(ChargeMisplaced, t.span)
		}
	}

	if len(g.units) == 0 {
		return g, parseErr(UnexpectedEnd, p.endSpan)
	}
	return g, nil
}

// parseBracket handles '[': a lexical isotope bracket when the contents
// are `digits symbol`, otherwise a structural square-bracket group.
func (p *parser) parseBracket(depth int) (unit, *ParseError) {
	open := p.toks[p.pos]
	p.pos++

	t, ok := p.peek()
	if !ok {
		return unit{}, parseErrf(UnbalancedDelimiter, p.endSpan, "missing ']'")
	}

	if t.kind == tokDigits {
		// Contents starting with digits must be an isotope bracket.
		if p.pos+2 >= len(p.toks) ||
			p.toks[p.pos+1].kind != tokElement ||
			p.toks[p.pos+2].kind != tokRBracket {
			return unit{}, parseErr(MalformedIsotopeBracket,
				Span{open.span.Start, t.span.End})
		}
		if t.num == 0 || t.num > 999 {
			return unit{}, parseErrf(MalformedIsotopeBracket, t.span,
				"mass number %d out of range", t.num)
		}
		el := p.toks[p.pos+1].el
		p.pos += 3
		return unit{child: p.atom(el, uint16(t.num)), count: 1}, nil
	}

	sub, perr := p.parseGroup(depth+1, tokRBracket)
	if perr != nil {
		return unit{}, perr
	}
	return unit{child: &sub, count: 1}, nil
}

// atom builds an Atom, folding an isotope whose mass number equals the
// element's most abundant natural mass number into the bare element so
// that canonicalisation is unique.
func (p *parser) atom(el element.Element, massNumber uint16) Atom {
	if massNumber != 0 && massNumber == p.data.MostAbundantMassNumber(el) {
		massNumber = 0
	}
	return Atom{Element: el, MassNumber: massNumber}
}
