package engine

import "fmt"

// AttributeNotFoundError indicates an operand referenced an attribute absent
// from the supplied record.
type AttributeNotFoundError struct {
	Attribute string
}

// Error returns the error message.
func (e *AttributeNotFoundError) Error() string {
	return fmt.Sprintf("attribute not found: %q", e.Attribute)
}

// NonNumericLiteralError indicates an ordered comparison (> or <) against a
// literal that cannot be interpreted as a number.
type NonNumericLiteralError struct {
	Attribute string
	Literal   string
}

// Error returns the error message.
func (e *NonNumericLiteralError) Error() string {
	return fmt.Sprintf("attribute %q: non-numeric literal %q in ordered comparison", e.Attribute, e.Literal)
}

// TypeMismatchError indicates a record value of the wrong type for the
// requested comparison, such as a string value under > or <.
type TypeMismatchError struct {
	Attribute string
	Expected  string
	Actual    string
}

// Error returns the error message.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch for attribute %q: expected %s, got %s", e.Attribute, e.Expected, e.Actual)
}
