package util

import (
	"strings"
	"unicode"
)

// Normalize folds case, drops all whitespace and maps every dash-like rune to
// '-' so that FAQ keywords and messages compare on content only.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsSpace(r):
			continue
		case isDash(r):
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDash(r rune) bool {
	switch r {
	case '-', // hyphen-minus
		'‐', // hyphen
		'‑', // non-breaking hyphen
		'‒', // figure dash
		'–', // en dash
		'—', // em dash
		'―', // horizontal bar
		'−', // minus sign
		'﹣', // small hyphen-minus
		'－': // fullwidth hyphen-minus
		return true
	}
	return false
}
