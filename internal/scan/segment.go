// Package scan cuts a normalized pāda into syllables and assigns each one
// its prosodic weight. Segmentation follows the classical rule: a syllable
// begins at a consonant cluster and ends at the vowel nucleus, plus any
// trailing consonant that is not itself followed by another vowel. Conjunct
// clusters therefore attach forward, to the vowel they introduce, never
// backward.
//
// The segmenter never fails. Runes it cannot resolve to a nucleus become
// syllables with an empty nucleus, which classify as Unknown weight and act
// as wildcards in meter matching.
package scan

import (
	"unicode"

	"github.com/vedicmetrics/ChandasDNA/internal/model"
)

// Segment splits one normalized quarter into ordered syllables. The
// concatenation of all syllable surfaces reproduces the quarter exactly,
// modulo whitespace.
func Segment(quarter string) []model.Syllable {
	rs := []rune(quarter)
	var out []model.Syllable
	i := 0
	for i < len(rs) {
		r := rs[i]
		lr := unicode.ToLower(r)
		switch {
		case unicode.IsSpace(r):
			i++
		case isDevaConsonant(r):
			i = consumeDeva(rs, i, &out)
		case isDevaVowel(r):
			i = consumeDevaVowel(rs, i, &out)
		case isLatinConsonant(lr):
			i = consumeLatin(rs, i, &out)
		case isLatinVowel(lr):
			i = consumeLatinVowel(rs, i, nil, 0, i, &out)
		case lr == runeIASTAnusvara || lr == runeIASTVisarga || r == runeAvagraha:
			// stray nasalization mark, or an avagraha (prosodically silent):
			// keep it on the previous syllable
			attachCoda(&out, string(r), i, i+1)
			i++
		default:
			// unresolvable rune: best-effort Unknown syllable, never an error
			out = append(out, model.Syllable{Surface: string(r), Start: i, End: i + 1})
			i++
		}
	}
	return out
}

// consumeDeva handles a Devanagari consonant-led syllable starting at i.
func consumeDeva(rs []rune, i int, out *[]model.Syllable) int {
	start := i
	var surface, onset []rune
	units := 0

	for i < len(rs) && isDevaConsonant(rs[i]) {
		surface = append(surface, rs[i])
		onset = append(onset, rs[i])
		units++
		i++
		if i < len(rs) && rs[i] == runeNukta {
			surface = append(surface, rs[i])
			onset = append(onset, rs[i])
			i++
		}
		if i < len(rs) && rs[i] == runeVirama {
			surface = append(surface, rs[i])
			onset = append(onset, rs[i])
			i++
			if i < len(rs) && isDevaConsonant(rs[i]) {
				continue // conjunct keeps building
			}
			// halanta: a dead cluster with no vowel closes the previous
			// syllable as its coda
			attachCoda(out, string(surface), start, i)
			return i
		}
		break // this consonant bears a vowel
	}

	syl := model.Syllable{Onset: string(onset), OnsetUnits: units, Start: start}
	if i < len(rs) && isDevaMatra(rs[i]) {
		syl.Nucleus = string(rs[i])
		syl.LongNucleus = devaMatraLong(rs[i])
		surface = append(surface, rs[i])
		i++
	} else {
		syl.Nucleus = "a" // inherent vowel, short
	}
	i = consumeDevaCoda(rs, i, &syl, &surface)
	syl.Surface = string(surface)
	syl.End = i
	*out = append(*out, syl)
	return i
}

// consumeDevaVowel handles an independent vowel (including oṃ).
func consumeDevaVowel(rs []rune, i int, out *[]model.Syllable) int {
	start := i
	surface := []rune{rs[i]}
	syl := model.Syllable{
		Nucleus:     string(rs[i]),
		LongNucleus: devaVowelLong(rs[i]),
		Start:       start,
	}
	i++
	i = consumeDevaCoda(rs, i, &syl, &surface)
	syl.Surface = string(surface)
	syl.End = i
	*out = append(*out, syl)
	return i
}

func consumeDevaCoda(rs []rune, i int, syl *model.Syllable, surface *[]rune) int {
	for i < len(rs) {
		switch rs[i] {
		case runeAnusvara, runeCandrabindu, runeVisarga:
			syl.Coda += string(rs[i])
			*surface = append(*surface, rs[i])
			i++
		case runeAvagraha:
			// silent; swallow into the surface only
			*surface = append(*surface, rs[i])
			i++
		default:
			return i
		}
	}
	return i
}

// consumeLatin handles an IAST consonant-led syllable starting at i.
// Consonant clusters span word boundaries, as they do in classical scansion:
// the space between "tat" and "tvam" does not stop "ttv" from weighing down
// the first syllable.
func consumeLatin(rs []rune, i int, out *[]model.Syllable) int {
	start := i
	var surface []rune
	units := 0

	for i < len(rs) {
		r := rs[i]
		if unicode.IsSpace(r) {
			j := i
			for j < len(rs) && unicode.IsSpace(rs[j]) {
				j++
			}
			if j < len(rs) {
				next := unicode.ToLower(rs[j])
				if isLatinConsonant(next) || isLatinVowel(next) {
					i = j
					continue
				}
			}
			break
		}
		lr := unicode.ToLower(r)
		if !isLatinConsonant(lr) {
			break
		}
		surface = append(surface, r)
		i++
		if aspirable(lr) && i < len(rs) && unicode.ToLower(rs[i]) == 'h' {
			surface = append(surface, rs[i])
			i++
		}
		units++
	}

	if i < len(rs) && isLatinVowel(unicode.ToLower(rs[i])) {
		return consumeLatinVowel(rs, i, surface, units, start, out)
	}

	// no nucleus follows: verse-final (or pre-boundary) dead consonants
	// attach to the preceding syllable as coda
	attachCoda(out, string(surface), start, i)
	return i
}

// consumeLatinVowel finishes a syllable whose nucleus starts at i, with the
// given already-consumed onset.
func consumeLatinVowel(rs []rune, i int, onset []rune, units, start int, out *[]model.Syllable) int {
	syl := model.Syllable{Onset: string(onset), OnsetUnits: units, Start: start}
	surface := onset

	lr := unicode.ToLower(rs[i])
	if lr == 'a' && i+1 < len(rs) {
		if n := unicode.ToLower(rs[i+1]); n == 'i' || n == 'u' {
			// diphthong ai / au, always long
			syl.Nucleus = string(rs[i : i+2])
			syl.LongNucleus = true
			surface = append(surface, rs[i], rs[i+1])
			i += 2
		}
	}
	if syl.Nucleus == "" {
		syl.Nucleus = string(rs[i])
		syl.LongNucleus = latinVowelLong(lr)
		surface = append(surface, rs[i])
		i++
	}

	for i < len(rs) {
		lr := unicode.ToLower(rs[i])
		if lr != runeIASTAnusvara && lr != runeIASTVisarga {
			break
		}
		syl.Coda += string(rs[i])
		surface = append(surface, rs[i])
		i++
	}

	syl.Surface = string(surface)
	syl.End = i
	*out = append(*out, syl)
	return i
}

// attachCoda appends a dead consonant cluster to the last emitted syllable.
// With nothing to attach to (a quarter opening with stray marks) it becomes
// an Unknown syllable of its own so the surface text is never lost.
func attachCoda(out *[]model.Syllable, cluster string, start, end int) {
	if n := len(*out); n > 0 {
		last := &(*out)[n-1]
		last.Surface += cluster
		last.Coda += cluster
		last.End = end
		return
	}
	*out = append(*out, model.Syllable{Surface: cluster, Start: start, End: end})
}
