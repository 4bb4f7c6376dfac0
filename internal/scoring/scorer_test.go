package scoring

import (
	"testing"

	"github.com/auktionera/cataloger/internal/models"
)

// goodRecord is a record that passes every completeness rule. Tests start
// from it and break one thing at a time.
func goodRecord() models.CatalogRecord {
	return models.CatalogRecord{
		Category:    "Glas & Porslin",
		Title:       "VAS, glas, Orrefors, Simon Gate, 1925",
		Description: "Vas av klarglas med graverad dekor av dansande figurer. Formgiven av Simon Gate för Orrefors. Signerad och daterad 1925. Höjd 34 cm.",
		Condition:   "Mindre nagg vid mynningen. Två ytliga repor på ena sidan.",
		Keywords:    "konstglas, art deco, svenskt glas, graalteknik, samlarglas, 1920-tal",
	}
}

func TestScoreGoodRecord(t *testing.T) {
	result := NewDefault().Score(goodRecord())
	if result.Score != 100 {
		t.Errorf("Score = %d, want 100 (warnings: %+v)", result.Score, result.Warnings)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %+v", result.Warnings)
	}
}

func TestScoreEmptyRecordClampsToZero(t *testing.T) {
	result := NewDefault().Score(models.CatalogRecord{})
	if result.Score < 0 || result.Score > 100 {
		t.Fatalf("Score = %d, outside [0, 100]", result.Score)
	}
	if !result.HasCode("short_title") {
		t.Error("Expected short_title warning on empty record")
	}
	if !result.HasCode("keywords_missing") {
		t.Error("Expected keywords_missing warning on empty record")
	}
}

func TestScoreSparseRecord(t *testing.T) {
	// Deductions: short title 10, missing comma 5, short description 15,
	// no measurement 10, short condition 10, bare bruksslitage 25,
	// keywords missing 15. Total 90, score 10.
	rec := models.CatalogRecord{
		Title:     "Vas",
		Condition: "bruksslitage",
	}
	result := NewDefault().Score(rec)
	if result.Score != 10 {
		t.Errorf("Score = %d, want 10 (warnings: %+v)", result.Score, result.Warnings)
	}
	if !result.HasCode("bruksslitage_alone") {
		t.Error("Expected bruksslitage_alone warning")
	}
	for _, w := range result.Warnings {
		if w.Code == "bruksslitage_alone" && w.Severity != models.SeverityHigh {
			t.Errorf("bruksslitage_alone severity = %s, want high", w.Severity)
		}
		if w.Code == "keywords_missing" && w.Severity != models.SeverityHigh {
			t.Errorf("keywords_missing severity = %s, want high", w.Severity)
		}
	}
}

func TestScoreRules(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*models.CatalogRecord)
		wantCode   string
		wantDeduct int
		wantField  string
		wantSource models.WarningSource
	}{
		{
			name:       "title missing comma",
			modify:     func(r *models.CatalogRecord) { r.Title = "VAS av glas från Orrefors" },
			wantCode:   "title_missing_comma",
			wantDeduct: 5,
			wantField:  "title",
			wantSource: models.SourceQuality,
		},
		{
			name:       "description without measurement",
			modify:     func(r *models.CatalogRecord) { r.Description = "Vas av klarglas med graverad dekor av dansande figurer. Formgiven av Simon Gate för Orrefors och signerad." },
			wantCode:   "description_no_measurement",
			wantDeduct: 10,
			wantField:  "description",
			wantSource: models.SourceQuality,
		},
		{
			name:       "vague condition in short report",
			modify:     func(r *models.CatalogRecord) { r.Condition = "Normalt slitage." },
			wantCode:   "vague_condition_term",
			wantDeduct: 10,
			wantField:  "condition",
			wantSource: models.SourceQuality,
		},
		{
			name:       "condition vocabulary in description",
			modify:     func(r *models.CatalogRecord) { r.Description += " Vissa repor förekommer." },
			wantCode:   "condition_term_in_description",
			wantDeduct: 8,
			wantField:  "description",
			wantSource: models.SourceQuality,
		},
		{
			name:       "marketing language",
			modify:     func(r *models.CatalogRecord) { r.Description = "En fantastisk pjäs. " + r.Description },
			wantCode:   "marketing_language",
			wantDeduct: 5,
			wantField:  "description",
			wantSource: models.SourceQuality,
		},
		{
			name:       "subjective language",
			modify:     func(r *models.CatalogRecord) { r.Description += " Troligen utförd i begränsad upplaga." },
			wantCode:   "subjective_language",
			wantDeduct: 5,
			wantField:  "description",
			wantSource: models.SourceQuality,
		},
		{
			name:       "overpositive condition",
			modify:     func(r *models.CatalogRecord) { r.Condition = "I perfekt skick utan anmärkningar alls." },
			wantCode:   "overpositive_condition",
			wantDeduct: 5,
			wantField:  "condition",
			wantSource: models.SourceQuality,
		},
		{
			name:       "ca before year",
			modify:     func(r *models.CatalogRecord) { r.Description += " Daterad ca 1925." },
			wantCode:   "ca_before_year",
			wantDeduct: 3,
			wantField:  "description",
			wantSource: models.SourceFieldGuideline,
		},
		{
			name:       "abbreviation",
			modify:     func(r *models.CatalogRecord) { r.Description += " Sign. och dat." },
			wantCode:   "abbreviation",
			wantDeduct: 2 + 2,
			wantField:  "description",
			wantSource: models.SourceFieldGuideline,
		},
		{
			name:       "sterling silver as two words",
			modify:     func(r *models.CatalogRecord) { r.Description += " Monterad i sterling silver." },
			wantCode:   "sterling_silver_spacing",
			wantDeduct: 3,
			wantField:  "description",
			wantSource: models.SourceFieldGuideline,
		},
		{
			name:       "compound object material word",
			modify:     func(r *models.CatalogRecord) { r.Description += " Tillhörande glasvas." },
			wantCode:   "compound_object_material",
			wantDeduct: 5,
			wantField:  "title",
			wantSource: models.SourceFieldGuideline,
		},
		{
			name:       "bare century too vague",
			modify:     func(r *models.CatalogRecord) { r.Description += " Stilen är typisk för 1700-tal." },
			wantCode:   "century_too_vague",
			wantDeduct: 3,
			wantField:  "description",
			wantSource: models.SourceFieldGuideline,
		},
		{
			name:       "half century phrase",
			modify:     func(r *models.CatalogRecord) { r.Description += " Utförd under 1800-talets första hälft." },
			wantCode:   "half_century_vague",
			wantDeduct: 2,
			wantField:  "description",
			wantSource: models.SourceFieldGuideline,
		},
	}

	scorer := NewDefault()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := goodRecord()
			tt.modify(&rec)
			result := scorer.Score(rec)

			if !result.HasCode(tt.wantCode) {
				t.Fatalf("Expected warning %s, got %+v", tt.wantCode, result.Warnings)
			}
			if got := 100 - result.Score; got != tt.wantDeduct {
				t.Errorf("Deduction = %d, want %d (warnings: %+v)", got, tt.wantDeduct, result.Warnings)
			}
			for _, w := range result.Warnings {
				if w.Code != tt.wantCode {
					continue
				}
				if w.Field != tt.wantField {
					t.Errorf("Field = %s, want %s", w.Field, tt.wantField)
				}
				if w.Source != tt.wantSource {
					t.Errorf("Source = %s, want %s", w.Source, tt.wantSource)
				}
			}
		})
	}
}

func TestScoreKeywordBands(t *testing.T) {
	tests := []struct {
		name     string
		keywords string
		wantCode string
	}{
		{"missing", "", "keywords_missing"},
		{"too few", "unikat", "keywords_too_few"},
		{"could use more", "mattram, handknuten, ullgarn", "keywords_could_use_more"},
		{"sweet spot", "mattram, handknuten, ullgarn, orientmönster, medaljong", ""},
		{"too many", "a1, b2, c3, d4, e5, f6, g7, h8, i9, j10, k11, l12, m13", "keywords_too_many"},
	}

	scorer := NewDefault()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := goodRecord()
			rec.Keywords = tt.keywords
			result := scorer.Score(rec)

			bandCodes := []string{"keywords_missing", "keywords_too_few", "keywords_could_use_more", "keywords_too_many"}
			for _, code := range bandCodes {
				has := result.HasCode(code)
				if code == tt.wantCode && !has {
					t.Errorf("Expected %s, got %+v", code, result.Warnings)
				}
				if code != tt.wantCode && has {
					t.Errorf("Unexpected %s in %+v", code, result.Warnings)
				}
			}
		})
	}
}

func TestScoreKeywordRedundancyTip(t *testing.T) {
	rec := goodRecord()
	// All keywords already appear in title or description.
	rec.Keywords = "vas, glas, orrefors, simon gate, dekor"
	result := NewDefault().Score(rec)
	if !result.HasCode("keywords_redundant") {
		t.Fatalf("Expected keywords_redundant tip, got %+v", result.Warnings)
	}
	if result.Score != 100 {
		t.Errorf("Redundancy tip must not deduct, score = %d", result.Score)
	}
}

func TestScoreNoRemarksSkipsConditionRules(t *testing.T) {
	rec := goodRecord()
	rec.Condition = ""
	rec.NoRemarksFlag = true
	result := NewDefault().Score(rec)

	if result.HasCode("short_condition") || result.HasCode("bruksslitage_alone") {
		t.Errorf("Condition rules must be skipped with no-remarks flag, got %+v", result.Warnings)
	}
	if !result.HasCode("no_remarks_declared") {
		t.Error("Expected no_remarks_declared info warning")
	}
	if result.Score != 100 {
		t.Errorf("Score = %d, want 100", result.Score)
	}
}

func TestScoreVagueNoLocationTip(t *testing.T) {
	rec := goodRecord()
	rec.Condition = "Normalt slitage samt mindre nagg som noterats vid genomgång av föremålet."
	result := NewDefault().Score(rec)

	// Long enough to escape the vague-term deduction, but still no location.
	if result.HasCode("vague_condition_term") {
		t.Errorf("Unexpected vague_condition_term: %+v", result.Warnings)
	}
	if !result.HasCode("vague_no_location") {
		t.Fatalf("Expected vague_no_location tip, got %+v", result.Warnings)
	}
	if result.Score != 100 {
		t.Errorf("Tip must not deduct, score = %d", result.Score)
	}
}

func TestScoreContaminationPerDistinctTerm(t *testing.T) {
	rec := goodRecord()
	rec.Description += " Vissa repor och fläckar noterade. Fler repor på baksidan."
	result := NewDefault().Score(rec)

	count := 0
	for _, w := range result.Warnings {
		if w.Code == "condition_term_in_description" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("Expected 2 contamination warnings (repor, fläckar), got %d: %+v", count, result.Warnings)
	}
	if result.Score != 100-2*8 {
		t.Errorf("Score = %d, want %d", result.Score, 100-2*8)
	}
}

func TestScoreIndependentOfRuleOrder(t *testing.T) {
	// Rules deduct independently, so total deductions must equal the sum of
	// the individual runs.
	scorer := NewDefault()

	rec := goodRecord()
	rec.Title = "Byrå i mahogny utan komma här alls"
	base := goodRecord()
	base.Title = rec.Title
	only := 100 - scorer.Score(base).Score

	rec.Description = goodRecord().Description + " Daterad ca 1925."
	combined := 100 - scorer.Score(rec).Score
	caOnly := func() int {
		r := goodRecord()
		r.Description += " Daterad ca 1925."
		return 100 - scorer.Score(r).Score
	}()

	if combined != only+caOnly {
		t.Errorf("Combined deduction %d != %d + %d", combined, only, caOnly)
	}
}
