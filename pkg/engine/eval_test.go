package engine

import (
	"errors"
	"testing"

	"sift-hq/sift/pkg/rql/ast"
	"sift-hq/sift/pkg/rql/parser"
)

func mustParse(t *testing.T, rule string) ast.Node {
	t.Helper()
	node, err := parser.Parse(rule)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", rule, err)
	}
	return node
}

// TestEvaluate_OrderedComparisons covers > and < against numeric records.
func TestEvaluate_OrderedComparisons(t *testing.T) {
	tests := []struct {
		name string
		rule string
		rec  Record
		want bool
	}{
		{name: "greater true", rule: "age > 30", rec: Record{"age": 35}, want: true},
		{name: "greater false", rule: "age > 30", rec: Record{"age": 20}, want: false},
		{name: "greater boundary", rule: "age > 30", rec: Record{"age": 30}, want: false},
		{name: "less true", rule: "age < 25", rec: Record{"age": 22}, want: true},
		{name: "less false", rule: "age < 25", rec: Record{"age": 25}, want: false},
		{name: "float record value", rule: "salary > 50000", rec: Record{"salary": 60000.5}, want: true},
		{name: "int64 record value", rule: "salary > 50000", rec: Record{"salary": int64(70000)}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(mustParse(t, tt.rule), tt.rec)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q, %v) = %v, want %v", tt.rule, tt.rec, got, tt.want)
			}
		})
	}
}

// TestEvaluate_Equality covers the coercion-free = comparator, including the
// preserved numeric-equality quirk.
func TestEvaluate_Equality(t *testing.T) {
	tests := []struct {
		name string
		rule string
		rec  Record
		want bool
	}{
		{
			name: "quoted text matches string value",
			rule: "department = 'Sales'",
			rec:  Record{"department": "Sales"},
			want: true,
		},
		{
			name: "quoted text mismatch",
			rule: "department = 'Sales'",
			rec:  Record{"department": "Marketing"},
			want: false,
		},
		{
			// The unquoted literal stays textual, so it never equals a
			// numeric record value. Bug-compatible by design.
			name: "number literal never equals numeric value",
			rule: "age = 30",
			rec:  Record{"age": 30},
			want: false,
		},
		{
			name: "number literal equals string value textually",
			rule: "age = 30",
			rec:  Record{"age": "30"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(mustParse(t, tt.rule), tt.rec)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q, %v) = %v, want %v", tt.rule, tt.rec, got, tt.want)
			}
		})
	}
}

// TestEvaluate_MissingAttribute verifies lookup failures surface as typed
// errors, not false.
func TestEvaluate_MissingAttribute(t *testing.T) {
	_, err := Evaluate(mustParse(t, "age > 30"), Record{"salary": 100})
	if err == nil {
		t.Fatal("expected AttributeNotFoundError")
	}

	var notFound *AttributeNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error type = %T, want *AttributeNotFoundError", err)
	}
	if notFound.Attribute != "age" {
		t.Errorf("attribute = %q, want %q", notFound.Attribute, "age")
	}
}

// TestEvaluate_NonNumericLiteral verifies > against non-numeric text errors.
func TestEvaluate_NonNumericLiteral(t *testing.T) {
	_, err := Evaluate(mustParse(t, "age > 'x'"), Record{"age": 35})
	if err == nil {
		t.Fatal("expected NonNumericLiteralError")
	}

	var nonNumeric *NonNumericLiteralError
	if !errors.As(err, &nonNumeric) {
		t.Fatalf("error type = %T, want *NonNumericLiteralError", err)
	}
}

// TestEvaluate_NonNumericRecordValue verifies a string record value under an
// ordered comparison errors instead of comparing.
func TestEvaluate_NonNumericRecordValue(t *testing.T) {
	_, err := Evaluate(mustParse(t, "age > 30"), Record{"age": "thirty"})
	if err == nil {
		t.Fatal("expected TypeMismatchError")
	}

	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error type = %T, want *TypeMismatchError", err)
	}
}

// TestEvaluate_SilentFalseFallthrough verifies the two deliberate silent
// fallbacks: unrecognized comparators and unrecognized logical tags evaluate
// to false without raising.
func TestEvaluate_SilentFalseFallthrough(t *testing.T) {
	// Unrecognized comparator, consumed positionally by the parser.
	got, err := Evaluate(mustParse(t, "age >= 30"), Record{"age": 35})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if got {
		t.Error("unrecognized comparator should evaluate to false")
	}

	// Unrecognized logical tag.
	node := &ast.OperatorNode{
		Op:    ast.LogicalOp("XOR"),
		Left:  mustParse(t, "age > 30"),
		Right: mustParse(t, "age < 40"),
	}
	got, err = Evaluate(node, Record{"age": 35})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if got {
		t.Error("unrecognized logical tag should evaluate to false")
	}
}

// TestEvaluate_NoShortCircuit verifies both branches of an operator are
// always evaluated: an error on the right side surfaces even when the left
// side already decided the outcome.
func TestEvaluate_NoShortCircuit(t *testing.T) {
	node := mustParse(t, "(age > 100 AND missing = 'x')")

	_, err := Evaluate(node, Record{"age": 5})
	if err == nil {
		t.Fatal("expected error from right branch despite left being false")
	}
	var notFound *AttributeNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error type = %T, want *AttributeNotFoundError", err)
	}
}

// TestEvaluate_NilTree verifies the no-rule tree evaluates true.
func TestEvaluate_NilTree(t *testing.T) {
	got, err := Evaluate(nil, Record{"age": 5})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !got {
		t.Error("nil tree should evaluate true")
	}
}

// TestEvaluate_CombinedEqualsFold verifies that for a non-empty rule
// sequence, evaluating the combined tree matches the AND-fold of evaluating
// each rule independently.
func TestEvaluate_CombinedEqualsFold(t *testing.T) {
	rules := []string{
		"age > 30",
		"department = 'Sales'",
		"(salary > 50000 OR experience > 5)",
	}
	records := []Record{
		{"age": 35, "department": "Sales", "salary": 60000, "experience": 6},
		{"age": 35, "department": "Sales", "salary": 10000, "experience": 2},
		{"age": 20, "department": "Sales", "salary": 60000, "experience": 6},
	}

	combined, err := parser.Combine(rules)
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}

	for _, rec := range records {
		want := true
		for _, rule := range rules {
			v, err := Evaluate(mustParse(t, rule), rec)
			if err != nil {
				t.Fatalf("Evaluate(%q) failed: %v", rule, err)
			}
			want = want && v
		}

		got, err := Evaluate(combined, rec)
		if err != nil {
			t.Fatalf("Evaluate(combined) failed: %v", err)
		}
		if got != want {
			t.Errorf("combined verdict = %v, fold verdict = %v for %v", got, want, rec)
		}
	}
}

// TestEvaluate_EndToEnd combines two segmentation rules and evaluates both
// candidate records.
func TestEvaluate_EndToEnd(t *testing.T) {
	rule1 := "(((age > 30 AND department = 'Sales') OR (age < 25 AND department = 'Marketing')) AND (salary > 50000 OR experience > 5))"
	rule2 := "((age > 30 OR department = 'Sales') AND (salary > 20000 OR experience > 5))"

	combined, err := parser.Combine([]string{rule1, rule2})
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}

	match := Record{"age": 35, "department": "Sales", "salary": 60000, "experience": 6}
	got, err := Evaluate(combined, match)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !got {
		t.Errorf("Evaluate(%v) = false, want true", match)
	}

	miss := Record{"age": 22, "department": "Marketing", "salary": 18000, "experience": 3}
	got, err = Evaluate(combined, miss)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if got {
		t.Errorf("Evaluate(%v) = true, want false", miss)
	}
}
