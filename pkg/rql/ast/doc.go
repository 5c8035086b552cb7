// Package ast provides Abstract Syntax Tree (AST) definitions for the sift
// rule query language (RQL).
//
// A rule parses into a binary tree of two node variants: OperatorNode
// (a logical AND/OR over exactly two children) and OperandNode (a leaf
// comparison of one attribute against one literal). The two variants are
// mutually exclusive: operator nodes never carry a comparison triple and
// operand nodes never carry children.
//
// # Core Types
//
// Node: the sum type implemented by both variants
//
// OperatorNode: binary boolean combination (AND/OR)
//
// OperandNode: attribute comparator literal
//
// Literal: comparison value, typed once at parse time from its quoting
// syntax (number for bare tokens, text for single-quoted tokens)
//
// # Immutability
//
// Trees are built once by the parser (or the combiner) and must be treated
// as immutable afterwards. Evaluation never mutates a tree, so a single
// tree may back any number of independent evaluations.
package ast
