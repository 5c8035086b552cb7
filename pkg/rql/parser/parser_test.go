package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"sift-hq/sift/pkg/rql/ast"
)

// TestTokenize verifies parentheses are isolated regardless of whitespace.
func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		rule string
		want []string
	}{
		{
			name: "simple operand",
			rule: "age > 30",
			want: []string{"age", ">", "30"},
		},
		{
			name: "parens without whitespace",
			rule: "(age>30 AND x<2)",
			want: []string{"(", "age>30", "AND", "x<2", ")"},
		},
		{
			name: "parens with mixed whitespace",
			rule: "( age > 30 AND department = 'Sales')",
			want: []string{"(", "age", ">", "30", "AND", "department", "=", "'Sales'", ")"},
		},
		{
			name: "empty string",
			rule: "",
			want: []string{},
		},
		{
			name: "only whitespace",
			rule: "   \t ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.rule)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.rule, got, tt.want)
			}
		})
	}
}

// TestParse_Operand checks leaf parsing and literal typing from quotes.
func TestParse_Operand(t *testing.T) {
	node, err := Parse("age > 30")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	operand, ok := node.(*ast.OperandNode)
	if !ok {
		t.Fatalf("expected *ast.OperandNode, got %T", node)
	}
	if operand.Attribute != "age" {
		t.Errorf("attribute = %q, want %q", operand.Attribute, "age")
	}
	if operand.Comparator != ast.ComparatorGreater {
		t.Errorf("comparator = %q, want %q", operand.Comparator, ast.ComparatorGreater)
	}
	if operand.Literal.Kind != ast.LiteralNumber || operand.Literal.Raw != "30" {
		t.Errorf("literal = %+v, want number 30", operand.Literal)
	}
}

// TestParse_QuotedLiteral checks exactly one leading and one trailing quote
// are stripped.
func TestParse_QuotedLiteral(t *testing.T) {
	node, err := Parse("department = 'Sales'")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	operand := node.(*ast.OperandNode)
	if operand.Literal.Kind != ast.LiteralText {
		t.Errorf("literal kind = %q, want %q", operand.Literal.Kind, ast.LiteralText)
	}
	if operand.Literal.Raw != "Sales" {
		t.Errorf("literal raw = %q, want %q", operand.Literal.Raw, "Sales")
	}
}

// TestParse_Grouped checks a parenthesized binary expression.
func TestParse_Grouped(t *testing.T) {
	node, err := Parse("(age > 30 AND department = 'Sales')")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	op, ok := node.(*ast.OperatorNode)
	if !ok {
		t.Fatalf("expected *ast.OperatorNode, got %T", node)
	}
	if op.Op != ast.LogicalAnd {
		t.Errorf("op = %q, want AND", op.Op)
	}
	if _, ok := op.Left.(*ast.OperandNode); !ok {
		t.Errorf("left child = %T, want *ast.OperandNode", op.Left)
	}
	if _, ok := op.Right.(*ast.OperandNode); !ok {
		t.Errorf("right child = %T, want *ast.OperandNode", op.Right)
	}
}

// TestParse_Nested checks that nesting depth follows the parentheses.
func TestParse_Nested(t *testing.T) {
	rule := "((age > 30 AND department = 'Sales') OR (age < 25 AND department = 'Marketing'))"
	node, err := Parse(rule)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	root := node.(*ast.OperatorNode)
	if root.Op != ast.LogicalOr {
		t.Errorf("root op = %q, want OR", root.Op)
	}
	left := root.Left.(*ast.OperatorNode)
	if left.Op != ast.LogicalAnd {
		t.Errorf("left op = %q, want AND", left.Op)
	}
}

// TestParse_GrammarErrors covers token streams that cannot begin an
// expression or end prematurely.
func TestParse_GrammarErrors(t *testing.T) {
	tests := []struct {
		name string
		rule string
	}{
		{name: "empty rule", rule: ""},
		{name: "leading close paren", rule: ") age > 30"},
		{name: "leading comparator", rule: "> 30"},
		{name: "operand cut short", rule: "age >"},
		{name: "group cut short", rule: "(age > 30 AND"},
		{name: "bare open paren", rule: "("},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.rule)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want grammar error", tt.rule)
			}
			var gerr *GrammarError
			if !errors.As(err, &gerr) {
				t.Errorf("error type = %T, want *GrammarError", err)
			}
		})
	}
}

// TestParse_PositionalConsumption verifies that the logical operator, the
// closing parenthesis, the comparator, and the literal are consumed without
// content checks: token-count-correct but malformed input parses into a
// semantically wrong tree rather than failing.
func TestParse_PositionalConsumption(t *testing.T) {
	// Bogus logical operator is accepted structurally.
	node, err := Parse("(age > 30 NAND department = 'Sales')")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if op := node.(*ast.OperatorNode); op.Op != ast.LogicalOp("NAND") {
		t.Errorf("op = %q, want the raw token NAND", op.Op)
	}

	// The closing token is consumed without being verified as ')'.
	if _, err := Parse("(age > 30 AND salary > 100 junk"); err != nil {
		t.Errorf("unverified closing token should parse, got %v", err)
	}

	// Bogus comparator is accepted structurally.
	node, err = Parse("age ~ 30")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if operand := node.(*ast.OperandNode); operand.Comparator != ast.Comparator("~") {
		t.Errorf("comparator = %q, want the raw token ~", operand.Comparator)
	}
}

// TestParse_TrailingTokensIgnored verifies parsing stops after the first
// complete expression; anything after it is silently dropped.
func TestParse_TrailingTokensIgnored(t *testing.T) {
	node, err := Parse("(age > 30 AND salary > 100) OR (age < 10 AND salary < 5)")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	op, ok := node.(*ast.OperatorNode)
	if !ok {
		t.Fatalf("expected *ast.OperatorNode, got %T", node)
	}
	// Only the first parenthesized group survives.
	if op.Op != ast.LogicalAnd {
		t.Errorf("op = %q, want AND from the first group", op.Op)
	}
}

// TestParse_MaxNestingDepth checks the recursion bound.
func TestParse_MaxNestingDepth(t *testing.T) {
	deep := strings.Repeat("(", 10) + "a > 1 AND b > 2" // depth 10, never closed
	p := &Parser{MaxNestingDepth: 3}

	_, err := p.Parse(deep)
	if err == nil {
		t.Fatal("expected nesting depth error")
	}
	var gerr *GrammarError
	if !errors.As(err, &gerr) {
		t.Fatalf("error type = %T, want *GrammarError", err)
	}
	if !strings.Contains(gerr.Message, "nesting") {
		t.Errorf("message = %q, want nesting depth error", gerr.Message)
	}
}

// TestCombine_Empty verifies the designated no-rule value.
func TestCombine_Empty(t *testing.T) {
	node, err := Combine(nil)
	if err != nil {
		t.Fatalf("Combine(nil) error: %v", err)
	}
	if node != nil {
		t.Errorf("Combine(nil) = %v, want nil tree", node)
	}
}

// TestCombine_Single verifies one rule folds to the same tree as Parse.
func TestCombine_Single(t *testing.T) {
	combined, err := Combine([]string{"age > 30"})
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	parsed, err := Parse("age > 30")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(combined, parsed) {
		t.Errorf("Combine([r]) = %#v, want %#v", combined, parsed)
	}
}

// TestCombine_LeftAssociative verifies the fold shape: the first rule ends
// up as the leftmost leaf chain.
func TestCombine_LeftAssociative(t *testing.T) {
	node, err := Combine([]string{"a > 1", "b > 2", "c > 3"})
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}

	root := node.(*ast.OperatorNode)
	if root.Op != ast.LogicalAnd {
		t.Fatalf("root op = %q, want AND", root.Op)
	}
	if operand := root.Right.(*ast.OperandNode); operand.Attribute != "c" {
		t.Errorf("root right = %s, want operand c", operand)
	}

	inner := root.Left.(*ast.OperatorNode)
	if operand := inner.Left.(*ast.OperandNode); operand.Attribute != "a" {
		t.Errorf("leftmost leaf = %s, want operand a", operand)
	}
	if operand := inner.Right.(*ast.OperandNode); operand.Attribute != "b" {
		t.Errorf("inner right = %s, want operand b", operand)
	}
}

// TestCombine_PropagatesGrammarErrors verifies a bad rule anywhere in the
// sequence fails the whole fold.
func TestCombine_PropagatesGrammarErrors(t *testing.T) {
	if _, err := Combine([]string{"a > 1", ")"}); err == nil {
		t.Error("expected grammar error from second rule")
	}
}

// TestNodeString spot-checks the diagnostic rendering: variant tag and own
// value only, children not rendered.
func TestNodeString(t *testing.T) {
	node, err := Parse("(age > 30 AND department = 'Sales')")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got := node.String(); got != "Operator(AND)" {
		t.Errorf("operator String() = %q, want Operator(AND)", got)
	}

	leaf := node.(*ast.OperatorNode).Right
	if got := leaf.String(); got != "Operand(department = 'Sales')" {
		t.Errorf("operand String() = %q", got)
	}
}
