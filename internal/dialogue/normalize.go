package dialogue

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns text in Unicode NFC form so composed and decomposed
// accents measure the same.
func Normalize(text string) string {
	return norm.NFC.String(text)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
