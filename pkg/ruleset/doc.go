// Package ruleset loads named rule sets from YAML files and compiles them
// into evaluable trees.
//
// A rule set file looks like:
//
//	name: senior-sales
//	description: Senior sales staff segment
//	rules:
//	  - "(age > 30 AND department = 'Sales')"
//	  - "(salary > 50000 OR experience > 5)"
//
// All rules in a set are AND-folded into one tree at load time, so grammar
// errors surface when the set is loaded rather than on first evaluation.
// A set with an empty rules list compiles to the no-rule tree, which
// evaluates true against every record.
//
// FileSource loads a single file or every .yaml/.yml file in a directory.
// Watcher wraps fsnotify with debouncing to reload rule sets when the files
// change on disk.
package ruleset
