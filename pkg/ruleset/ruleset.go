package ruleset

import (
	"fmt"

	"sift-hq/sift/pkg/rql/ast"
	"sift-hq/sift/pkg/rql/parser"
)

// RuleSet is a named collection of rule strings that evaluates as their
// conjunction.
type RuleSet struct {
	// Name identifies the set; defaults to the file basename when absent.
	Name string `yaml:"name"`

	// Description is free-form documentation, not interpreted.
	Description string `yaml:"description"`

	// Rules are the textual rule expressions, AND-folded in order.
	Rules []string `yaml:"rules"`

	tree ast.Node
}

// Compile parses and AND-folds the set's rules. It must be called before
// Tree; loading through FileSource compiles automatically.
func (s *RuleSet) Compile(p *parser.Parser) error {
	if p == nil {
		p = &parser.Parser{}
	}

	tree, err := p.Combine(s.Rules)
	if err != nil {
		return fmt.Errorf("rule set %q: %w", s.Name, err)
	}

	s.tree = tree
	return nil
}

// Tree returns the compiled tree. Nil when the set has no rules, which
// evaluates true against every record.
func (s *RuleSet) Tree() ast.Node {
	return s.tree
}
