package util

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	oddSpaces = strings.NewReplacer("\u2009", " ", "\u00a0", " ")
	reSpaces  = regexp.MustCompile(`\s+`)
)

// NormalizeText trims the input, maps thin and non-breaking spaces to ASCII
// space, and collapses internal whitespace runs to single spaces. Idempotent.
func NormalizeText(input string) string {
	s := oddSpaces.Replace(input)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// MakeItemKey builds the canonical grouping key for a (units, size,
// description) combination. Two records differing only in casing or spacing
// produce the same key.
func MakeItemKey(size, description, units string) string {
	sizeN := strings.ToLower(NormalizeText(size))
	descN := strings.ToLower(NormalizeText(description))
	unitsN := strings.ToLower(NormalizeText(units))
	return unitsN + " | " + sizeN + " | " + descN
}

var fractionGlyphs = strings.NewReplacer("¼", ".25", "½", ".5", "¾", ".75")

// SizeToFloat coerces a size descriptor to a best-effort numeric sort key.
// Fraction glyphs become decimals, dimension suffixes after the first "x" are
// stripped, and anything unparsable yields 0.
func SizeToFloat(size string) float64 {
	if size == "" {
		return 0
	}
	s := fractionGlyphs.Replace(size)
	if i := strings.Index(s, "x"); i >= 0 {
		s = s[:i]
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return v
}
