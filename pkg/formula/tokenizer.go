package formula

import (
	"math"

	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/element"
)

// tokenize converts the normalised character stream into tokens.
// Element symbols are matched greedily: a two-letter symbol wins over a
// one-letter symbol when both are possible. Digit runs are maximal
// within a single script; runs of different scripts become separate
// tokens and are rejected later by the parser when they collide.
func tokenize(chars []nchar, data element.Data) ([]token, *ParseError) {
	toks := make([]token, 0, len(chars))

	for i := 0; i < len(chars); {
		nc := chars[i]

		switch nc.class {
		case classLetter:
			tok, next, err := lexSymbol(chars, i, data)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next

		case classDigit:
			tok, next, err := lexDigits(chars, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next

		case classLParen:
			toks = append(toks, token{kind: tokLParen, span: nc.span()})
			i++
		case classRParen:
			toks = append(toks, token{kind: tokRParen, span: nc.span()})
			i++
		case classLBracket:
			toks = append(toks, token{kind: tokLBracket, span: nc.span()})
			i++
		case classRBracket:
			toks = append(toks, token{kind: tokRBracket, span: nc.span()})
			i++
		case classDot:
			toks = append(toks, token{kind: tokDot, span: nc.span()})
			i++
		case classPlus:
			toks = append(toks, token{kind: tokPlus, scr: nc.scr, span: nc.span()})
			i++
		case classMinus:
			toks = append(toks, token{kind: tokMinus, scr: nc.scr, span: nc.span()})
			i++
		case classCaret:
			toks = append(toks, token{kind: tokCaret, span: nc.span()})
			i++
		}
	}

	return toks, nil
}

// lexSymbol matches an element symbol (or the residual mark) starting at
// position i. Two-letter-then-one-letter rule: if the uppercase letter
// followed by the next lowercase letter is a known symbol, consume both;
// else if the single uppercase letter is known, consume one.
func lexSymbol(chars []nchar, i int, data element.Data) (token, int, *ParseError) {
	first := chars[i]
	if first.c < 'A' || first.c > 'Z' {
		return token{}, 0, parseErrf(UnknownElement, first.span(),
			"lowercase letter %q cannot start a symbol", first.c)
	}

	if i+1 < len(chars) {
		second := chars[i+1]
		if second.class == classLetter && second.c >= 'a' && second.c <= 'z' {
			two := string([]byte{first.c, second.c})
			if el, ok := data.SymbolToElement(two); ok {
				span := Span{first.start, second.end}
				return token{kind: tokElement, el: el, span: span}, i + 2, nil
			}
		}
	}

	one := string(first.c)
	if el, ok := data.SymbolToElement(one); ok {
		return token{kind: tokElement, el: el, span: first.span()}, i + 1, nil
	}
	if first.c == 'R' {
		return token{kind: tokResidual, span: first.span()}, i + 1, nil
	}

	// Report the full letter run so "Xq" reads better than "X".
	end := first.end
	if i+1 < len(chars) && chars[i+1].class == classLetter &&
		chars[i+1].c >= 'a' && chars[i+1].c <= 'z' {
		end = chars[i+1].end
	}
	return token{}, 0, parseErrf(UnknownElement, Span{first.start, end},
		"no element with symbol %q", one)
}

// lexDigits accumulates a maximal run of digits of a single script.
func lexDigits(chars []nchar, i int) (token, int, *ParseError) {
	scr := chars[i].scr
	start := chars[i].start
	end := chars[i].end

	var v uint64
	for ; i < len(chars) && chars[i].class == classDigit && chars[i].scr == scr; i++ {
		v = v*10 + uint64(chars[i].c-'0')
		if v > math.MaxUint32 {
			return token{}, 0, parseErr(CountOverflow, Span{start, chars[i].end})
		}
		end = chars[i].end
	}

	kind := tokDigits
	switch scr {
	case subscript:
		kind = tokDigitsSub
	case superscript:
		kind = tokDigitsSup
	}

	return token{kind: kind, num: uint32(v), span: Span{start, end}}, i, nil
}
