package halluc

import (
	"testing"

	"github.com/auktionera/cataloger/internal/models"
)

func TestDiffIdenticalTextIsClean(t *testing.T) {
	text := "Repor på locket samt nagg vid foten."
	if findings := Diff(text, text); len(findings) != 0 {
		t.Errorf("Identical text produced findings: %+v", findings)
	}
}

func TestDiffNewLocationOnExistingDamage(t *testing.T) {
	// The damage noun existed; only the invented location is flagged.
	findings := Diff("repor", "repor i metallramen")
	if len(findings) != 1 {
		t.Fatalf("Expected exactly one finding, got %+v", findings)
	}
	if findings[0].Category != models.FindingLocation {
		t.Errorf("Category = %s, want location", findings[0].Category)
	}
	if findings[0].Text != "i metallramen" {
		t.Errorf("Text = %q, want %q", findings[0].Text, "i metallramen")
	}
}

func TestDiffRewordingIsNotFlagged(t *testing.T) {
	// Adding a softening adjective invents nothing.
	if findings := Diff("repor", "mindre repor"); len(findings) != 0 {
		t.Errorf("Rewording produced findings: %+v", findings)
	}
}

func TestDiffDetectors(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		candidate string
		category  models.FindingCategory
		text      string
	}{
		{
			name:      "known location phrase",
			original:  "Smärre slitage.",
			candidate: "Smärre slitage, främst i botten.",
			category:  models.FindingLocation,
			text:      "i botten",
		},
		{
			name:      "generic prepositional location",
			original:  "Nagg.",
			candidate: "Nagg längs mynningen.",
			category:  models.FindingLocation,
			text:      "längs mynningen",
		},
		{
			name:      "invented measurement",
			original:  "En spricka i glasyren.",
			candidate: "En ca 3 cm lång spricka i glasyren.",
			category:  models.FindingMeasurement,
			text:      "ca 3 cm",
		},
		{
			name:      "new damage noun with locator",
			original:  "Mindre slitage.",
			candidate: "Mindre slitage samt spricka i glasyren.",
			category:  models.FindingDamageType,
			text:      "spricka i glasyren",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := Diff(tt.original, tt.candidate)
			found := false
			for _, f := range findings {
				if f.Category == tt.category && f.Text == tt.text {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected (%s, %q) in %+v", tt.category, tt.text, findings)
			}
		})
	}
}

func TestDiffMeasurementPresentInOriginal(t *testing.T) {
	findings := Diff("Spricka, ca 3 cm.", "En ca 3 cm lång spricka.")
	for _, f := range findings {
		if f.Category == models.FindingMeasurement {
			t.Errorf("Measurement from the original was flagged: %+v", f)
		}
	}
}

func TestDiffUnitPrefixOfWordIsNotMeasurement(t *testing.T) {
	// "3 mässingsknoppar" must not be read as the measurement "3 m".
	findings := Diff("Två knoppar saknas.", "3 mässingsknoppar saknas.")
	for _, f := range findings {
		if f.Category == models.FindingMeasurement {
			t.Errorf("Count of missing parts was flagged as a measurement: %+v", f)
		}
	}
}

func TestDiffDeduplicates(t *testing.T) {
	findings := Diff("Slitage.", "Repor i botten. Fler repor i botten. Märken I BOTTEN.")
	count := 0
	for _, f := range findings {
		if f.Category == models.FindingLocation {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected one deduplicated location finding, got %d: %+v", count, findings)
	}
}

func TestDiffCaseInsensitive(t *testing.T) {
	if findings := Diff("Repor I BOTTEN.", "repor i botten"); len(findings) != 0 {
		t.Errorf("Case difference produced findings: %+v", findings)
	}
}

func TestDiffMonotonic(t *testing.T) {
	// Extending the candidate with more invented specifics never removes
	// findings.
	original := "Slitage."
	base := Diff(original, "Slitage i botten.")
	extended := Diff(original, "Slitage i botten. Spricka på ovansidan, ca 2 cm.")
	if len(extended) < len(base) {
		t.Errorf("Extended candidate lost findings: base %+v, extended %+v", base, extended)
	}
	for _, b := range base {
		found := false
		for _, e := range extended {
			if e == b {
				found = true
			}
		}
		if !found {
			t.Errorf("Finding %+v missing from extended diff %+v", b, extended)
		}
	}
}
