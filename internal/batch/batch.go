// Package batch reads sentence lists for non-interactive translation.
package batch

import (
	"fmt"
	"os"
	"strings"
)

// Entry is one sentence to translate
type Entry struct {
	Line     int
	Sentence string
}

// ReadBatchFile reads sentences from a file, one per line.
// Blank lines and lines starting with '#' are skipped.
func ReadBatchFile(filename string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return Parse(string(content)), nil
}

// Parse parses batch file content
func Parse(content string) []Entry {
	var entries []Entry

	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, Entry{Line: i + 1, Sentence: line})
	}

	return entries
}
