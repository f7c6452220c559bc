package validation

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// NormalizeName makes two spellings of the same person comparable: accents and
// punctuation go, case is folded and the name parts are sorted so "Smith, Jane"
// equals "Jane Smith".
func NormalizeName(name string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripMarks, name)
	if err != nil {
		plain = name
	}
	plain = folder.String(plain)
	plain = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, plain)

	parts := strings.Fields(plain)
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

// Similarity is 1 - levenshtein distance / length of the longer string, on runes.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}
