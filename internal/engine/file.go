package engine

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/leakgate/leakgate/internal/rules"
	"github.com/leakgate/leakgate/internal/types"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	previewLimit  = 60
	previewMarker = "..."
)

// commentPrefixes mark lines that are skipped. The check is purely textual and
// knows nothing about block comments or a file's language.
var commentPrefixes = []string{"#", "//"}

// maxLineBytes bounds a single line; longer lines end the file with a read error.
var maxLineBytes = 64 << 20

// ScanFile reads path line by line and returns one finding per matching rule
// per non-comment line. Lines end at \n, \r\n or a lone \r. Invalid UTF-8 is
// replaced rather than treated as an error. Any open or read failure is
// returned as a *FileReadError together with the findings collected before it.
func ScanFile(path string, reg *rules.Registry) ([]types.Finding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}
	defer f.Close()

	sc := bufio.NewScanner(transform.NewReader(f, unicode.UTF8.NewDecoder()))
	sc.Buffer(make([]byte, 0, min(64*1024, maxLineBytes)), maxLineBytes)
	sc.Split(splitLines)
	var out []types.Finding
	lineNo := 0
	for sc.Scan() {
		lineNo++
		out = append(out, scanLine(path, lineNo, sc.Text(), reg)...)
	}
	if err := sc.Err(); err != nil {
		return out, &FileReadError{Path: path, Err: err}
	}
	return out, nil
}

// splitLines is a bufio.SplitFunc that treats \n, \r\n and a lone \r as
// line terminators.
func splitLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// need the next byte to tell \r\n from \r
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func scanLine(path string, lineNo int, line string, reg *rules.Registry) []types.Finding {
	stripped := strings.TrimSpace(line)
	if isComment(stripped) {
		return nil
	}
	matched := reg.MatchLine(line)
	if len(matched) == 0 {
		return nil
	}
	pv := Preview(stripped)
	out := make([]types.Finding, 0, len(matched))
	for _, rule := range matched {
		out = append(out, types.Finding{
			Path:    path,
			Line:    lineNo,
			RuleID:  rule.ID,
			Label:   rule.Label,
			Preview: pv,
		})
	}
	return out
}

func isComment(stripped string) bool {
	for _, p := range commentPrefixes {
		if strings.HasPrefix(stripped, p) {
			return true
		}
	}
	return false
}

// Preview returns s unchanged when it is at most 60 characters, otherwise its
// first 60 characters followed by "...".
func Preview(s string) string {
	if utf8.RuneCountInString(s) <= previewLimit {
		return s
	}
	return string([]rune(s)[:previewLimit]) + previewMarker
}
