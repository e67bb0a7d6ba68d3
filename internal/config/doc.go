// Package config loads leakgate preferences from local and global YAML files
// with precedence rules. It is internal; CLI code maps flags and files into
// engine and report options. The extension allow-list and skipped
// directories are compiled in and cannot be changed here.
package config
