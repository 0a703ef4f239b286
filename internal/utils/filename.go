package utils

import (
	"path/filepath"
	"strings"
	"unicode"
)

const maxExtensionLength = 16

// SplitFileName strips any directory part from a client-supplied name and
// splits it into a display name and a lower-case extension without the dot.
// "report.final.PDF" gives ("report.final", "pdf"); "notes" gives ("notes", "").
func SplitFileName(fileName string) (name string, ext string) {
	base := filepath.Base(filepath.ToSlash(strings.ReplaceAll(fileName, `\`, "/")))
	if base == "." || base == "/" {
		return "", ""
	}

	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 || dot == len(base)-1 {
		return strings.TrimSpace(base), ""
	}

	return strings.TrimSpace(base[:dot]), strings.ToLower(base[dot+1:])
}

// ValidExtension reports whether ext is safe to use as a blob file suffix.
// Empty is allowed.
func ValidExtension(ext string) bool {
	if len(ext) > maxExtensionLength {
		return false
	}
	for _, r := range ext {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
