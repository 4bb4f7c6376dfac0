package generation

import (
	"errors"
	"testing"

	"github.com/auktionera/cataloger/internal/models"
)

func TestParseReply(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected models.FieldValues
	}{
		{
			name: "plain labels",
			raw: `TITLE: VAS, glas, Orrefors, 1925
DESCRIPTION: Vas av klarglas. Höjd 34 cm.
CONDITION: Mindre nagg vid mynningen.
KEYWORDS: konstglas, art deco, samlarglas`,
			expected: models.FieldValues{
				Title:       "VAS, glas, Orrefors, 1925",
				Description: "Vas av klarglas. Höjd 34 cm.",
				Condition:   "Mindre nagg vid mynningen.",
				Keywords:    "konstglas, art deco, samlarglas",
			},
		},
		{
			name: "markdown emphasis around labels",
			raw: `**TITLE:** VAS, glas, Orrefors
**DESCRIPTION:** Vas av klarglas.`,
			expected: models.FieldValues{
				Title:       "VAS, glas, Orrefors",
				Description: "Vas av klarglas.",
			},
		},
		{
			name: "parenthetical after label",
			raw:  `TITLE (58 tecken): VAS, glas, Orrefors`,
			expected: models.FieldValues{
				Title: "VAS, glas, Orrefors",
			},
		},
		{
			name: "multi-line value continues until next label",
			raw: `DESCRIPTION: Vas av klarglas med graverad dekor.
Formgiven av Simon Gate.
Höjd 34 cm.
CONDITION: Mindre nagg.`,
			expected: models.FieldValues{
				Description: "Vas av klarglas med graverad dekor.\nFormgiven av Simon Gate.\nHöjd 34 cm.",
				Condition:   "Mindre nagg.",
			},
		},
		{
			name: "validation section is discarded",
			raw: `TITLE: VAS, glas
VALIDATION: Score 95/100, inga anmärkningar.`,
			expected: models.FieldValues{
				Title: "VAS, glas",
			},
		},
		{
			name: "preamble before first label is ignored",
			raw: `Här är mitt förslag:

TITLE: VAS, glas, Orrefors`,
			expected: models.FieldValues{
				Title: "VAS, glas, Orrefors",
			},
		},
		{
			name: "lowercase labels accepted",
			raw:  `title: VAS, glas`,
			expected: models.FieldValues{
				Title: "VAS, glas",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReply(tt.raw)
			if err != nil {
				t.Fatalf("ParseReply failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseReply = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestParseReplyMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"free text", "Jag kan tyvärr inte hjälpa till med detta."},
		{"empty", ""},
		{"unknown label only", "SUMMARY: en vas av glas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReply(tt.raw)
			if !errors.Is(err, ErrMalformedReply) {
				t.Errorf("err = %v, want ErrMalformedReply", err)
			}
		})
	}
}
