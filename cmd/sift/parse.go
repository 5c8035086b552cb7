package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sift-hq/sift/pkg/cli"
	"sift-hq/sift/pkg/rql/ast"
	"sift-hq/sift/pkg/rql/parser"
)

var parseFlags struct {
	maxDepth   int
	showTokens bool
	combine    bool
	output     string
}

var parseCmd = &cobra.Command{
	Use:   "parse [rule]...",
	Short: "Parse rules and print their trees",
	Long: `Parse one or more rule expressions and print the resulting trees.

Grammar errors are reported with the token position where parsing failed.

Examples:
  # Parse a single rule
  sift parse "(age > 30 AND department = 'Sales')"

  # Show the token stream alongside the tree
  sift parse --tokens "age > 30"

  # AND-fold several rules into one tree
  sift parse --combine "age > 30" "department = 'Sales'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().IntVar(&parseFlags.maxDepth, "max-depth", parser.DefaultMaxNestingDepth, "maximum group nesting depth")
	parseCmd.Flags().BoolVar(&parseFlags.showTokens, "tokens", false, "print the token stream")
	parseCmd.Flags().BoolVar(&parseFlags.combine, "combine", false, "AND-fold all rules into one tree")
	parseCmd.Flags().StringVarP(&parseFlags.output, "output", "o", "text", "output format (text, json)")
}

// parseResult is the JSON shape of one parsed rule.
type parseResult struct {
	Rule   string   `json:"rule"`
	Tokens []string `json:"tokens,omitempty"`
	Tree   string   `json:"tree,omitempty"`
	Error  string   `json:"error,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	p := &parser.Parser{MaxNestingDepth: parseFlags.maxDepth}

	if parseFlags.combine {
		return parseCombined(cmd, p, args)
	}

	var results []parseResult
	failed := false
	for _, rule := range args {
		result := parseResult{Rule: rule}
		if parseFlags.showTokens {
			result.Tokens = parser.Tokenize(rule)
		}

		tree, err := p.Parse(rule)
		if err != nil {
			result.Error = err.Error()
			failed = true
		} else {
			result.Tree = renderTree(tree)
		}
		results = append(results, result)
	}

	if cli.OutputFormat(parseFlags.output) == cli.FormatJSON {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(cmd.OutOrStdout(), results); err != nil {
			return cli.NewCommandError("parse", err)
		}
	} else {
		for _, result := range results {
			printParseResult(cmd, result)
		}
	}

	if failed {
		return cli.NewCommandError("parse", errors.New("one or more rules failed to parse"))
	}
	return nil
}

func parseCombined(cmd *cobra.Command, p *parser.Parser, rules []string) error {
	tree, err := p.Combine(rules)
	if err != nil {
		return cli.NewCommandError("parse", err)
	}

	if cli.OutputFormat(parseFlags.output) == cli.FormatJSON {
		result := parseResult{Rule: strings.Join(rules, " AND "), Tree: renderTree(tree)}
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(cmd.OutOrStdout(), result); err != nil {
			return cli.NewCommandError("parse", err)
		}
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), renderTree(tree))
	return nil
}

func printParseResult(cmd *cobra.Command, result parseResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rule: %s\n", result.Rule)
	if result.Tokens != nil {
		fmt.Fprintf(out, "tokens: %s\n", strings.Join(result.Tokens, " · "))
	}
	if result.Error != "" {
		fmt.Fprintf(out, "error: %s\n", result.Error)
	} else {
		fmt.Fprint(out, result.Tree)
	}
	fmt.Fprintln(out)
}

// renderTree renders a tree with two-space indentation per level. A nil tree
// renders as the always-true empty tree.
func renderTree(node ast.Node) string {
	if node == nil {
		return "(empty tree, always true)\n"
	}
	var sb strings.Builder
	renderNode(&sb, node, 0)
	return sb.String()
}

func renderNode(sb *strings.Builder, node ast.Node, depth int) {
	if node == nil {
		return
	}

	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(node.String())
	sb.WriteString("\n")

	if op, ok := node.(*ast.OperatorNode); ok {
		renderNode(sb, op.Left, depth+1)
		renderNode(sb, op.Right, depth+1)
	}
}
