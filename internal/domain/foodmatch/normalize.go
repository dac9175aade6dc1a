package foodmatch

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// stopWords are filler tokens dropped during normalization. The set covers
// the prepositions and packaging words that show up in user food queries
// but carry no matching signal.
var stopWords = map[string]struct{}{
	"без":      {},
	"с":        {},
	"и":        {},
	"или":      {},
	"на":       {},
	"в":        {},
	"по":       {},
	"из":       {},
	"для":      {},
	"со":       {},
	"упаковка": {},
	"пачка":    {},
	"пакет":    {},
	"шт":       {},
	"штуки":    {},
	"штук":     {},
}

var (
	parentheticalRE = regexp.MustCompile(`\([^)]*\)`)
	punctuationRE   = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
)

// Normalize canonicalizes a free-text food name into a comparable key:
// lowercase, diacritics folded to base letters, parenthetical content and
// punctuation stripped, stop words dropped, whitespace collapsed.
//
// Normalize is pure, deterministic and idempotent; the same function
// produces both storage keys and the strings fed to similarity scoring.
func Normalize(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	t = foldDiacritics(t)
	t = parentheticalRE.ReplaceAllString(t, " ")
	t = punctuationRE.ReplaceAllString(t, " ")

	fields := strings.Fields(t)
	kept := fields[:0]
	for _, f := range fields {
		if _, stop := stopWords[f]; !stop {
			kept = append(kept, f)
		}
	}

	return strings.Join(kept, " ")
}

var yoFolder = strings.NewReplacer("ё", "е", "Ё", "Е")

// foldDiacritics maps accented Latin letters to their base form and folds
// ё to е. Combining marks after Cyrillic letters are kept: й decomposes to
// и plus a breve, and stripping the breve would merge distinct letters
// (домашний must not become домашнии).
func foldDiacritics(s string) string {
	s = yoFolder.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	latinBase := false
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			if latinBase {
				continue
			}
		} else {
			latinBase = unicode.In(r, unicode.Latin)
		}
		b.WriteRune(r)
	}

	return norm.NFC.String(b.String())
}
