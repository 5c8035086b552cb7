package ast

import "strconv"

// LiteralKind represents how a literal token was written in the source rule.
// The kind is decided once at parse time from the quoting syntax and never
// re-inspected afterwards.
type LiteralKind string

const (
	// LiteralNumber is a bare (unquoted) literal token. The raw token text
	// is kept verbatim; it is only converted to a number when an ordered
	// comparison demands it.
	LiteralNumber LiteralKind = "number"

	// LiteralText is a single-quoted literal with exactly one leading and
	// one trailing quote stripped.
	LiteralText LiteralKind = "text"
)

// Literal is a comparison value inside an OperandNode.
type Literal struct {
	Kind LiteralKind
	Raw  string
}

// NumberLiteral returns a bare-token literal. The token is not validated as
// numeric here; ordered comparisons surface the conversion error.
func NumberLiteral(token string) Literal {
	return Literal{Kind: LiteralNumber, Raw: token}
}

// TextLiteral returns a quoted-text literal. The caller passes the value
// with quotes already stripped.
func TextLiteral(text string) Literal {
	return Literal{Kind: LiteralText, Raw: text}
}

// Float64 converts the literal's raw text to a number.
func (l Literal) Float64() (float64, error) {
	return strconv.ParseFloat(l.Raw, 64)
}

// String renders the literal the way it was written in the rule.
func (l Literal) String() string {
	if l.Kind == LiteralText {
		return "'" + l.Raw + "'"
	}
	return l.Raw
}
