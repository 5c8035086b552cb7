// Sift is a boolean rule engine for attribute records.
//
// Rules are plain-text expressions like "(age > 30 AND department = 'Sales')"
// that compile to binary trees and evaluate against JSON attribute records.
// Rule sets live in YAML files and can be hot-reloaded in watch mode.
//
// Usage:
//
//	# Parse a rule and print its tree
//	sift parse "(age > 30 AND department = 'Sales')"
//
//	# Evaluate a record against the configured rule sets
//	sift eval --record '{"age": 35, "department": "Sales"}'
//
//	# Run as a daemon that reloads rule sets on change
//	sift watch
//
//	# Show version information
//	sift version
package main

func main() {
	Execute()
}
