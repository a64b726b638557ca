package meter

import "strings"

// gaṇa encoding: the traditional trisyllabic feet. Indexed by the three
// weights read as binary (L=0, G=1, most significant first).
var ganaNames = [8]string{
	"n",  // LLL
	"s",  // LLG
	"j",  // LGL
	"y",  // LGG
	"bh", // GLL
	"r",  // GLG
	"t",  // GGL
	"m",  // GGG
}

// GanaPattern renders an L/G pattern string as its gaṇa feet, space
// separated, with leftover syllables as l/g. Positions with unknown weight
// make the containing foot a "?".
func GanaPattern(pattern string) string {
	var feet []string
	for i := 0; i+3 <= len(pattern); i += 3 {
		idx := 0
		known := true
		for j := 0; j < 3; j++ {
			switch pattern[i+j] {
			case 'G':
				idx |= 1 << (2 - j)
			case 'L':
			default:
				known = false
			}
		}
		if !known {
			feet = append(feet, "?")
			continue
		}
		feet = append(feet, ganaNames[idx])
	}
	for i := len(pattern) - len(pattern)%3; i < len(pattern); i++ {
		switch pattern[i] {
		case 'L':
			feet = append(feet, "l")
		case 'G':
			feet = append(feet, "g")
		default:
			feet = append(feet, "?")
		}
	}
	return strings.Join(feet, " ")
}
