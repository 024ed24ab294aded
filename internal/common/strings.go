package common

import (
	"path"
	"strings"
)

// UnknownStr is the String() fallback for out-of-range enum values.
const UnknownStr = "unknown"

// FileStem returns the base name of filePath without its extension.
// Both forward and back slashes are treated as separators.
func FileStem(filePath string) string {
	if filePath == "" {
		return ""
	}

	base := path.Base(strings.ReplaceAll(filePath, `\`, "/"))

	return strings.TrimSuffix(base, path.Ext(base))
}

// JoinNonEmpty joins the non-empty elements of parts with sep.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))

	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, sep)
}
