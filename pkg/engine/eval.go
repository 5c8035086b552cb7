package engine

import (
	"fmt"
	"log/slog"

	"sift-hq/sift/pkg/rql/ast"
)

// Evaluator walks rule ASTs against attribute records. Evaluation is pure
// over its inputs: trees are never mutated and no state is shared across
// calls, so one Evaluator may serve any number of independent evaluations.
type Evaluator struct {
	logger *slog.Logger
}

// NewEvaluator creates an evaluator. A nil logger falls back to the default.
func NewEvaluator(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{logger: logger.With("component", "engine")}
}

// Evaluate walks the tree against the record using a default evaluator.
func Evaluate(node ast.Node, rec Record) (bool, error) {
	return NewEvaluator(nil).Evaluate(node, rec)
}

// Evaluate returns the boolean verdict of the tree against the record.
// A nil tree means no rule and always evaluates true.
func (e *Evaluator) Evaluate(node ast.Node, rec Record) (bool, error) {
	if node == nil {
		return true, nil
	}

	switch n := node.(type) {
	case *ast.OperatorNode:
		return e.evalOperator(n, rec)
	case *ast.OperandNode:
		return e.evalOperand(n, rec)
	default:
		return false, fmt.Errorf("unknown node type: %T", node)
	}
}

// evalOperator combines both children. Both sides are always evaluated
// before combining; there is no short-circuit. An unrecognized logical tag
// evaluates to false rather than erroring.
func (e *Evaluator) evalOperator(n *ast.OperatorNode, rec Record) (bool, error) {
	left, err := e.Evaluate(n.Left, rec)
	if err != nil {
		return false, err
	}

	right, err := e.Evaluate(n.Right, rec)
	if err != nil {
		return false, err
	}

	switch n.Op {
	case ast.LogicalAnd:
		return left && right, nil
	case ast.LogicalOr:
		return left || right, nil
	default:
		e.logger.Debug("unrecognized logical tag, evaluating to false", "op", string(n.Op))
		return false, nil
	}
}

// evalOperand resolves the attribute and applies the comparator.
func (e *Evaluator) evalOperand(n *ast.OperandNode, rec Record) (bool, error) {
	value, ok := rec[n.Attribute]
	if !ok {
		return false, &AttributeNotFoundError{Attribute: n.Attribute}
	}

	switch n.Comparator {
	case ast.ComparatorGreater, ast.ComparatorLess:
		want, err := n.Literal.Float64()
		if err != nil {
			return false, &NonNumericLiteralError{Attribute: n.Attribute, Literal: n.Literal.Raw}
		}

		got, err := toFloat64(value)
		if err != nil {
			return false, &TypeMismatchError{
				Attribute: n.Attribute,
				Expected:  "number",
				Actual:    fmt.Sprintf("%T", value),
			}
		}

		if n.Comparator == ast.ComparatorGreater {
			return got > want, nil
		}
		return got < want, nil

	case ast.ComparatorEqual:
		// Coercion-free equality: the literal stays textual, so only string
		// record values can ever match. See the package doc for the
		// numeric-equality quirk this preserves.
		s, ok := value.(string)
		if !ok {
			return false, nil
		}
		return s == n.Literal.Raw, nil

	default:
		e.logger.Debug("unrecognized comparator, evaluating to false",
			"attribute", n.Attribute,
			"comparator", string(n.Comparator),
		)
		return false, nil
	}
}
