// Package engine evaluates rule ASTs against attribute records.
//
// Evaluation is a depth-first walk with no short-circuiting: both children
// of an operator node are always evaluated before their results are
// combined, even when one side already determines the outcome.
//
// # Error semantics
//
// A missing attribute raises AttributeNotFoundError rather than defaulting
// to false. An ordered comparison (> or <) against a literal that is not
// numeric text raises NonNumericLiteralError.
//
// Two fallthroughs deliberately stay silent instead of erroring: an operand
// with an unrecognized comparison symbol evaluates to false, and an operator
// node with an unrecognized logical tag evaluates to false.
//
// # Equality is coercion-free
//
// The = comparator compares the record's value directly against the
// literal's text. A string record value equals the literal when the text
// matches; a numeric record value never equals any literal, because the
// literal stays textual unless coercion were added. "age = 30" against
// {age: 30} is therefore false while "age = 30" against {age: "30"} is
// true. This is preserved, documented behavior, not an accident.
package engine
