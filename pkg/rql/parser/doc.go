// Package parser implements the tokenizer, grammar parser, and rule
// combiner for the sift rule query language (RQL).
//
// # Grammar
//
// The grammar is strict: there is no operator precedence, so every binary
// combination must be explicitly parenthesized.
//
//	expression   := '(' expression logicalOp expression ')'
//	             |  operand
//	logicalOp    := 'AND' | 'OR'
//	operand      := identifierOrNumber comparator literal
//	comparator   := '>' | '<' | '='
//	literal      := number | '\'' text '\''
//
// Example rules:
//
//	age > 30
//	department = 'Sales'
//	((age > 30 AND department = 'Sales') OR (age < 25 AND department = 'Marketing'))
//
// # Positional consumption
//
// Inside a grouped expression the logical-operator token and the closing
// parenthesis, and inside an operand the comparator and literal tokens, are
// consumed by position without being checked against their expected token
// sets. Their presence is validated; their content is not. Malformed but
// token-count-correct input therefore parses into a semantically wrong tree
// instead of failing. Grammar errors are raised only for an exhausted token
// stream or for a token that cannot begin an expression. Tokens left over
// after the first complete expression are ignored, not rejected.
//
// # Combining
//
// Combine folds several independently parsed rules into one tree with
// logical AND, left-associatively: the first rule ends up as the leftmost
// leaf chain.
package parser
