package ast

import "fmt"

// LogicalOp represents the logical operator of an OperatorNode.
type LogicalOp string

const (
	LogicalAnd LogicalOp = "AND"
	LogicalOr  LogicalOp = "OR"
)

// Comparator represents the comparison symbol of an OperandNode.
type Comparator string

const (
	ComparatorGreater Comparator = ">"
	ComparatorLess    Comparator = "<"
	ComparatorEqual   Comparator = "="
)

// Node is the sum type over the two AST variants. The String method renders
// the node's variant tag and its own value only (children are not rendered);
// the output is diagnostic and not guaranteed stable.
type Node interface {
	fmt.Stringer

	// node restricts implementations to this package so the evaluator can
	// switch exhaustively over the two variants.
	node()
}

// OperatorNode is a binary boolean combination of two sub-trees.
// Both children are always present.
type OperatorNode struct {
	Op    LogicalOp
	Left  Node
	Right Node
}

func (*OperatorNode) node() {}

// String renders the operator tag without descending into children.
func (n *OperatorNode) String() string {
	return fmt.Sprintf("Operator(%s)", n.Op)
}

// OperandNode is a leaf comparison of one attribute against one literal.
// It has no children.
type OperandNode struct {
	Attribute  string
	Comparator Comparator
	Literal    Literal
}

func (*OperandNode) node() {}

// String renders the comparison triple.
func (n *OperandNode) String() string {
	return fmt.Sprintf("Operand(%s %s %s)", n.Attribute, n.Comparator, n.Literal)
}
