package scan

// Rune classification for the two scripts the segmenter understands:
// Devanagari and IAST romanization. Input is expected NFC-composed (the
// verse normalizer guarantees this), so the IAST tables list precomposed
// code points only.

// ------------------------ Devanagari ------------------------

const (
	runeCandrabindu = 'ँ'
	runeAnusvara    = 'ं'
	runeVisarga     = 'ः'
	runeNukta       = '़'
	runeAvagraha    = 'ऽ'
	runeVirama      = '्'
	runeOm          = 'ॐ'
)

func isDevaConsonant(r rune) bool {
	return (r >= 'क' && r <= 'ह') || (r >= 'क़' && r <= 'य़')
}

func isDevaVowel(r rune) bool {
	return (r >= 'ऄ' && r <= 'औ') || r == 'ॠ' || r == 'ॡ' || r == runeOm
}

// long independent vowels: ā ī ū ṝ ḹ e ai o au (e and o are always long in
// Sanskrit), plus oṃ.
func devaVowelLong(r rune) bool {
	switch r {
	case 'आ', 'ई', 'ऊ', 'ॠ', 'ॡ',
		'ए', 'ऐ', 'ओ', 'औ', runeOm:
		return true
	}
	return false
}

func isDevaMatra(r rune) bool {
	return (r >= 'ा' && r <= 'ौ') || r == 'ॢ' || r == 'ॣ'
}

func devaMatraLong(r rune) bool {
	switch r {
	case 'ा', 'ी', 'ू', 'ॄ', 'ॣ',
		'े', 'ै', 'ो', 'ौ':
		return true
	}
	return false
}

// ------------------------ IAST (romanized) ------------------------

const (
	runeIASTAnusvara = 'ṃ' // ṃ
	runeIASTVisarga  = 'ḥ' // ḥ
)

// simple vowels; diphthongs ai/au are assembled by the segmenter.
func isLatinVowel(r rune) bool {
	switch r {
	case 'a', 'i', 'u', 'e', 'o',
		'ā', 'ī', 'ū', // ā ī ū
		'ṛ', 'ṝ', // ṛ ṝ
		'ḷ', 'ḹ': // ḷ ḹ
		return true
	}
	return false
}

func latinVowelLong(r rune) bool {
	switch r {
	case 'e', 'o', 'ā', 'ī', 'ū', 'ṝ', 'ḹ':
		return true
	}
	return false
}

// extra consonant code points beyond plain a-z.
func isLatinExtraConsonant(r rune) bool {
	switch r {
	case 'ś', 'ṣ', // ś ṣ
		'ñ', 'ṅ', 'ṇ', // ñ ṅ ṇ
		'ṭ', 'ḍ', // ṭ ḍ
		'ḻ': // ḻ
		return true
	}
	return false
}

func isLatinConsonant(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return !isLatinVowel(r)
	}
	return isLatinExtraConsonant(r)
}

// aspirable reports consonants that combine with a following h into a single
// aspirate unit (kh, gh, ch, jh, ṭh, ḍh, th, dh, ph, bh).
func aspirable(r rune) bool {
	switch r {
	case 'k', 'g', 'c', 'j', 't', 'd', 'p', 'b', 'ṭ', 'ḍ':
		return true
	}
	return false
}
