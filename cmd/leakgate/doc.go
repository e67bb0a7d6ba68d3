// Package leakgate provides the command-line interface for the leakgate
// scanner. The root command scans one directory; subcommands cover CI
// templates, config generation, scan history and the decision log.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/leakgate/leakgate/cmd/leakgate"
//	func main() { leakgate.Execute() }
package leakgate
