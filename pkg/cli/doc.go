// Package cli provides shared helpers for the sift command line tool:
// typed command errors, output formatting, and signal handling.
package cli
