// Package rules holds the fixed, ordered set of secret patterns used by the
// engine. Rules are compiled once, case-insensitively, and never mutated.
package rules
