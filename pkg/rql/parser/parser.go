package parser

import (
	"strconv"
	"strings"
	"unicode"

	"sift-hq/sift/pkg/rql/ast"
)

// DefaultMaxNestingDepth bounds parenthesis nesting. Recursion depth equals
// nesting depth, so without a bound a pathological rule could exhaust the
// call stack.
const DefaultMaxNestingDepth = 200

// Parser parses rule strings into ASTs.
type Parser struct {
	// MaxNestingDepth is the maximum parenthesis nesting depth accepted.
	// Zero means DefaultMaxNestingDepth.
	MaxNestingDepth int
}

// Parse parses a single rule string using the default nesting limit.
func Parse(rule string) (ast.Node, error) {
	p := &Parser{}
	return p.Parse(rule)
}

// Combine parses and AND-folds several rule strings using the default
// nesting limit.
func Combine(rules []string) (ast.Node, error) {
	p := &Parser{}
	return p.Combine(rules)
}

// Parse tokenizes a rule string and parses it into an AST.
func (p *Parser) Parse(rule string) (ast.Node, error) {
	cur := newCursor(Tokenize(rule))
	node, err := p.parseExpression(cur, 0)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// Combine folds several rule strings into one tree with logical AND.
// An empty input yields a nil tree and no error. The fold is
// left-associative: the first rule becomes the leftmost leaf chain, so the
// result is the conjunction of all rules in order.
func (p *Parser) Combine(rules []string) (ast.Node, error) {
	if len(rules) == 0 {
		return nil, nil
	}

	root, err := p.Parse(rules[0])
	if err != nil {
		return nil, err
	}

	for _, rule := range rules[1:] {
		right, err := p.Parse(rule)
		if err != nil {
			return nil, err
		}
		root = &ast.OperatorNode{Op: ast.LogicalAnd, Left: root, Right: right}
	}

	return root, nil
}

func (p *Parser) maxDepth() int {
	if p.MaxNestingDepth > 0 {
		return p.MaxNestingDepth
	}
	return DefaultMaxNestingDepth
}

// parseExpression parses one expression starting at the cursor. depth is the
// current parenthesis nesting depth.
func (p *Parser) parseExpression(cur *cursor, depth int) (ast.Node, error) {
	tok, ok := cur.peek()
	if !ok {
		return nil, &GrammarError{Pos: cur.offset, Message: "empty expression"}
	}

	if tok == "(" {
		if depth >= p.maxDepth() {
			return nil, &GrammarError{Pos: cur.offset, Token: tok,
				Message: "maximum nesting depth exceeded"}
		}
		return p.parseGroup(cur, depth+1)
	}

	if isIdentifier(tok) || isNumber(tok) {
		return parseOperand(cur)
	}

	return nil, &GrammarError{Pos: cur.offset, Token: tok,
		Message: "expected '(' or an operand"}
}

// parseGroup parses '(' expression logicalOp expression ')'. The logical
// operator and the closing parenthesis are consumed positionally without
// checking their content.
func (p *Parser) parseGroup(cur *cursor, depth int) (ast.Node, error) {
	if _, err := cur.next(); err != nil { // opening '('
		return nil, err
	}

	left, err := p.parseExpression(cur, depth)
	if err != nil {
		return nil, err
	}

	op, err := cur.next()
	if err != nil {
		return nil, err
	}

	right, err := p.parseExpression(cur, depth)
	if err != nil {
		return nil, err
	}

	if _, err := cur.next(); err != nil { // closing ')'
		return nil, err
	}

	return &ast.OperatorNode{Op: ast.LogicalOp(op), Left: left, Right: right}, nil
}

// parseOperand parses identifierOrNumber comparator literal. The comparator
// and literal are consumed positionally without checking their content.
func parseOperand(cur *cursor) (ast.Node, error) {
	attr, err := cur.next()
	if err != nil {
		return nil, err
	}

	cmp, err := cur.next()
	if err != nil {
		return nil, err
	}

	lit, err := cur.next()
	if err != nil {
		return nil, err
	}

	return &ast.OperandNode{
		Attribute:  attr,
		Comparator: ast.Comparator(cmp),
		Literal:    newLiteral(lit),
	}, nil
}

// newLiteral types a literal token once, from its quoting syntax. A
// single-quoted token loses exactly one leading and one trailing quote and
// becomes text; anything else stays a bare number token.
func newLiteral(token string) ast.Literal {
	if len(token) >= 2 && strings.HasPrefix(token, "'") && strings.HasSuffix(token, "'") {
		return ast.TextLiteral(token[1 : len(token)-1])
	}
	return ast.NumberLiteral(token)
}

// isIdentifier reports whether the token is a syntactically valid attribute
// name: a letter or underscore followed by letters, digits, underscores, or
// dots.
func isIdentifier(token string) bool {
	for i, r := range token {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			return false
		}
	}
	return token != ""
}

// isNumber reports whether the token is a numeric literal.
func isNumber(token string) bool {
	_, err := strconv.ParseFloat(token, 64)
	return err == nil
}
