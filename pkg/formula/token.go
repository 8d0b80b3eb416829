package formula

import (
	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/element"
)

// tokenKind enumerates the lexical tokens of the formula grammar.
type tokenKind uint8

const (
	tokElement tokenKind = iota
	tokDigits           // baseline digits
	tokDigitsSub        // subscript digits
	tokDigitsSup        // superscript digits
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokDot
	tokPlus
	tokMinus
	tokCaret
	tokResidual
)

// String returns a short name for debugging and error details.
func (k tokenKind) String() string {
	switch k {
	case tokElement:
		return "element"
	case tokDigits:
		return "digits"
	case tokDigitsSub:
		return "subscript digits"
	case tokDigitsSup:
		return "superscript digits"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokDot:
		return "'.'"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokCaret:
		return "'^'"
	case tokResidual:
		return "residual"
	}
	return "unknown"
}

// token is one lexical token with its byte span in the original input.
// el is set for tokElement, num for the digit kinds, scr for sign tokens
// (baseline or superscript rendition).
type token struct {
	kind tokenKind
	el   element.Element
	num  uint32
	scr  script
	span Span
}

// isDigits reports whether the token is any of the digit kinds.
func (t token) isDigits() bool {
	return t.kind == tokDigits || t.kind == tokDigitsSub || t.kind == tokDigitsSup
}

// isSign reports whether the token is a plus or minus.
func (t token) isSign() bool {
	return t.kind == tokPlus || t.kind == tokMinus
}
