package engine

import (
	"path/filepath"
	"strings"
)

var defaultExtensions = []string{
	".py", ".js", ".ts", ".java", ".go", ".rb", ".php",
	".yaml", ".yml", ".json", ".xml", ".env", ".conf",
	".sh", ".bash", ".ps1", ".config",
}

var defaultSkipDirs = []string{
	"node_modules", ".git", "__pycache__", "venv", "env",
	".venv", "vendor", "dist", "build", ".tox",
}

// DefaultExtensions returns the built-in extension allow-list.
func DefaultExtensions() map[string]bool { return toSet(defaultExtensions) }

// DefaultSkipDirs returns the built-in set of skipped path segments.
func DefaultSkipDirs() map[string]bool { return toSet(defaultSkipDirs) }

func toSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, s := range items {
		out[s] = true
	}
	return out
}

// PathFilter decides file eligibility from the extension allow-list.
type PathFilter struct {
	extensions map[string]bool
}

// NewPathFilter builds a filter; entries are lower-cased and must carry the
// leading dot.
func NewPathFilter(extensions map[string]bool) PathFilter {
	set := make(map[string]bool, len(extensions))
	for ext, ok := range extensions {
		if ok {
			set[strings.ToLower(ext)] = true
		}
	}
	return PathFilter{extensions: set}
}

// IsEligible reports whether the lower-cased extension of path is allowed.
func (f PathFilter) IsEligible(path string) bool {
	ext := extension(path)
	return ext != "" && f.extensions[ext]
}

// extension returns the lower-cased final suffix of the base name. A name
// whose only dot is the leading one (".bashrc") or that ends in a dot has no
// extension.
func extension(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i:])
}

// hasSkipSegment reports whether any segment of rel equals a skip name.
func hasSkipSegment(rel string, skip map[string]bool) bool {
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if skip[seg] {
			return true
		}
	}
	return false
}
