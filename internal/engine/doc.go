// Package engine contains the core scanning logic for leakgate. It walks a
// directory tree, selects eligible files by extension, matches every line
// against the rule registry and returns an ordered Result. This package is
// internal; external consumers should use the stable facade in pkg/core.
package engine
