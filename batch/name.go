package batch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FileName returns the output stem for a light: <base>_<light>, folded to
// a portable file name. Accents are stripped and anything other than
// letters, digits, '-', '_' and '.' becomes '_'.
func FileName(base, light string) string {
	return sanitize(base) + "_" + sanitize(light)
}

var fold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func sanitize(s string) string {
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, strings.TrimSpace(s))
	if s == "" || strings.Trim(s, ".") == "" {
		return "_"
	}
	return s
}
