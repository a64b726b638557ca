// Package verse normalizes raw śloka text and splits it into pādas
// (quarters). Everything here is pure string work: no I/O, no state, and no
// failure mode — arbitrary garbage in still yields at least usable text out.
package verse

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Verse-boundary punctuation. The daṇḍa and double daṇḍa are the classical
// quarter/half delimiters; ASCII pipes show up constantly in romanized and
// copy-pasted sources.
func isPadaDelim(r rune) bool {
	return r == '।' || r == '॥' || r == '|'
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

// isNoise reports punctuation and digits that carry no prosodic information.
// Verse numbers ("॥ १५ ॥", "|| 15 ||") reduce to nothing once digits and
// delimiters are gone.
func isNoise(r rune) bool {
	if unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '.', ',', ';', ':', '!', '?', '"', '\'', '(', ')', '[', ']', '{', '}',
		'‘', '’', '“', '”', '–', '—',
		'\u200b', '\u200c', '\u200d', '\ufeff': // zero-width joiners and BOM
		return true
	}
	return false
}

// Normalize applies NFC composition, strips prosody-irrelevant punctuation
// and collapses all whitespace runs to single spaces.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isNoise(r) || isPadaDelim(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Quarters splits a raw verse into its pādas. Daṇḍa-class punctuation is the
// primary delimiter; parts are then split further on line breaks, which also
// covers verses written one pāda per line with no punctuation at all. An
// undivided verse comes back as a single quarter, and blank input as nil.
func Quarters(raw string) []string {
	s := norm.NFC.String(raw)

	var quarters []string
	for _, part := range strings.FieldsFunc(s, isPadaDelim) {
		for _, line := range strings.FieldsFunc(part, isLineBreak) {
			if q := Normalize(line); q != "" {
				quarters = append(quarters, q)
			}
		}
	}
	return quarters
}
