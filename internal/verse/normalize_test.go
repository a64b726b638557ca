package verse

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text unchanged",
			input:    "vasudevasutaṃ devaṃ",
			expected: "vasudevasutaṃ devaṃ",
		},
		{
			name:     "whitespace collapsed",
			input:    "  dharmakṣetre \t kurukṣetre \n",
			expected: "dharmakṣetre kurukṣetre",
		},
		{
			name:     "danda stripped",
			input:    "kṛṣṇaṃ vande jagadgurum ||",
			expected: "kṛṣṇaṃ vande jagadgurum",
		},
		{
			name:     "verse number reduces to nothing",
			input:    "॥ १५ ॥",
			expected: "",
		},
		{
			name:     "ascii verse number reduces to nothing",
			input:    "|| 15 ||",
			expected: "",
		},
		{
			name:     "punctuation stripped",
			input:    "devaṃ, (kaṃsa) — 'mardanam'!",
			expected: "devaṃ kaṃsa mardanam",
		},
		{
			name:     "zero width characters and BOM stripped",
			input:    "\uFEFFvasu​deva‌sutaṃ‍ devaṃ",
			expected: "vasudevasutaṃ devaṃ",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestQuarters(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:  "danda delimited half verse",
			input: "vasudevasutaṃ devaṃ kaṃsacāṇūramardanam | devakīparamānandaṃ kṛṣṇaṃ vande jagadgurum ||",
			expected: []string{
				"vasudevasutaṃ devaṃ kaṃsacāṇūramardanam",
				"devakīparamānandaṃ kṛṣṇaṃ vande jagadgurum",
			},
		},
		{
			name:  "one pada per line, no punctuation",
			input: "dharmakṣetre kurukṣetre\nsamavetā yuyutsavaḥ\n",
			expected: []string{
				"dharmakṣetre kurukṣetre",
				"samavetā yuyutsavaḥ",
			},
		},
		{
			name:  "devanagari with double danda and verse number",
			input: "वसुदेवसुतं देवं । कंसचाणूरमर्दनम् ॥ १ ॥",
			expected: []string{
				"वसुदेवसुतं देवं",
				"कंसचाणूरमर्दनम्",
			},
		},
		{
			name:     "undivided verse is a single quarter",
			input:    "kṛṣṇaṃ vande jagadgurum",
			expected: []string{"kṛṣṇaṃ vande jagadgurum"},
		},
		{
			name:     "blank input",
			input:    "  \n\t ",
			expected: nil,
		},
		{
			name:     "only delimiters and numbers",
			input:    "॥ १५ ॥",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quarters(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Quarters(%q) = %#v, want %#v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestQuartersFourPadas(t *testing.T) {
	input := "vasudevasutaṃ devaṃ |\nkaṃsacāṇūramardanam |\ndevakīparamānandaṃ |\nkṛṣṇaṃ vande jagadgurum ||"
	got := Quarters(input)
	if len(got) != 4 {
		t.Fatalf("Expected 4 quarters, got %d: %#v", len(got), got)
	}
}
