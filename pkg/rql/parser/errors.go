package parser

import "fmt"

// GrammarError indicates the token stream was exhausted prematurely or the
// next token could not begin a valid expression. There is no recovery and no
// partial tree; the error propagates to the caller.
type GrammarError struct {
	// Pos is the token index at which parsing failed.
	Pos int

	// Token is the offending token. Empty when the stream ended.
	Token string

	Message string
}

// Error returns the error message.
func (e *GrammarError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("grammar error at token %d (%q): %s", e.Pos, e.Token, e.Message)
	}
	return fmt.Sprintf("grammar error at token %d: %s", e.Pos, e.Message)
}
