package parser

import "strings"

// parenSpacer isolates parentheses so they survive whitespace splitting as
// standalone tokens.
var parenSpacer = strings.NewReplacer("(", " ( ", ")", " ) ")

// Tokenize splits a rule string into an ordered sequence of lexical tokens.
// Parentheses become standalone tokens regardless of surrounding whitespace;
// every other token is a whitespace-delimited substring (identifiers,
// comparison symbols, literals, and the AND/OR keywords). Token content is
// not validated here; malformed text is caught downstream by the parser.
func Tokenize(rule string) []string {
	return strings.Fields(parenSpacer.Replace(rule))
}
