package parser

// cursor is a read-only view over a token sequence with an explicit position
// index. Tokens are never removed, so the sequence stays reusable and
// inspectable after a parse error.
type cursor struct {
	tokens []string
	offset int
}

func newCursor(tokens []string) *cursor {
	return &cursor{tokens: tokens}
}

// peek returns the next token without consuming it.
func (c *cursor) peek() (string, bool) {
	if c.offset >= len(c.tokens) {
		return "", false
	}
	return c.tokens[c.offset], true
}

// next consumes and returns the next token. Consumption is positional only:
// the token's content is not checked, but its presence is.
func (c *cursor) next() (string, error) {
	if c.offset >= len(c.tokens) {
		return "", &GrammarError{Pos: c.offset, Message: "unexpected end of rule"}
	}
	tok := c.tokens[c.offset]
	c.offset++
	return tok, nil
}
