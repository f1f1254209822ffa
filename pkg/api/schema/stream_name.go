package schema

import (
	"path/filepath"
	"regexp"
	"strings"
)

var nonIdentifier = regexp.MustCompile(`[^a-z0-9_]+`)

// ParseStreamName derives a stream name from a file path: the base name without
// extension, lower-cased, with every run of other characters collapsed to "_".
func ParseStreamName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	s := nonIdentifier.ReplaceAllString(strings.ToLower(strings.TrimSpace(base)), "_")
	return strings.Trim(s, "_")
}
