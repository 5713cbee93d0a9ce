package text

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// abbreviation is one entry of the abbreviation table: a case-insensitive
// "<abbrev>." pattern anchored on a left word boundary, and its expansion.
type abbreviation struct {
	abbrev    string
	expansion string
	re        *regexp.Regexp
}

// abbreviations is applied in declared order.
var abbreviations = buildAbbreviations([][2]string{
	{"mrs", "misess"},
	{"mr", "mister"},
	{"dr", "doctor"},
	{"st", "saint"},
	{"co", "company"},
	{"jr", "junior"},
	{"maj", "major"},
	{"gen", "general"},
	{"drs", "doctors"},
	{"rev", "reverend"},
	{"lt", "lieutenant"},
	{"hon", "honorable"},
	{"sgt", "sergeant"},
	{"capt", "captain"},
	{"esq", "esquire"},
	{"ltd", "limited"},
	{"col", "colonel"},
	{"ft", "fort"},
})

func buildAbbreviations(pairs [][2]string) []abbreviation {
	out := make([]abbreviation, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, abbreviation{
			abbrev:    p[0],
			expansion: p[1],
			re:        regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p[0]) + `\.`),
		})
	}
	return out
}

// Abbreviation is an exported view of one abbreviation rule.
type Abbreviation struct {
	Abbrev    string
	Expansion string
}

// Abbreviations returns the abbreviation table in application order.
func Abbreviations() []Abbreviation {
	out := make([]Abbreviation, len(abbreviations))
	for i, a := range abbreviations {
		out[i] = Abbreviation{Abbrev: a.abbrev, Expansion: a.expansion}
	}
	return out
}

// ExpandAbbreviations replaces every "<abbrev>." from the abbreviation table
// with its expansion, dropping the period. Matching is case-insensitive and
// requires a word boundary before the abbreviation, so "Mr.Smith" expands but
// "amr." does not.
func ExpandAbbreviations(s string) string {
	for _, a := range abbreviations {
		s = a.re.ReplaceAllLiteralString(s, a.expansion)
	}
	return s
}

// Lowercase lowercases s using locale-independent Unicode rules.
func Lowercase(s string) string {
	// A Caser is stateful; build one per call so Lowercase stays safe for
	// concurrent use.
	return cases.Lower(language.Und).String(s)
}

// CollapseWhitespace replaces every run of whitespace with a single ASCII
// space. Leading and trailing runs are collapsed, not trimmed.
func CollapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for _, r := range s {
		if isSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}

	return b.String()
}

// isSpace also treats the ASCII information separators (FS, GS, RS, US) as
// whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// ConvertToASCII returns a best-effort ASCII rendering of s: diacritics are
// stripped and other scripts transliterated. It never fails; unmappable runes
// are dropped.
func ConvertToASCII(s string) string {
	return unidecode.Unidecode(norm.NFC.String(s))
}
