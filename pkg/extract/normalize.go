package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	specialsRegex   = regexp.MustCompile(`[^a-zA-Z0-9\s.,]`)
)

// Normalize cleans extracted document text so that every source format lands
// in the same shape before similarity matching: NFKD unicode normalization,
// whitespace collapsed to single spaces, everything outside letters, digits,
// spaces, periods and commas stripped, lowercased and trimmed.
//
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	text = strings.TrimSpace(text)
	text = norm.NFKD.String(text)
	text = whitespaceRegex.ReplaceAllString(text, " ")
	text = specialsRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(strings.ToLower(text))
}
