package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/auktionera/cataloger/internal/models"
	"github.com/auktionera/cataloger/internal/patterns"
)

// Category keyword sets. A record activates a rule group when its category
// string contains any of the group's keywords.
var (
	furnitureCategories = []string{"möbler", "möbel", "bord", "stol", "skåp", "soffor"}
	rugCategories       = []string{"matta", "mattor"}
	artCategories       = []string{"konst", "tavl", "grafik", "målning", "skulptur"}
	silverCategories    = []string{"silver"}
	jewelryCategories   = []string{"smycke"}
	dinnerCategories    = []string{"servis"}
)

func categoryMatches(category string, keywords []string) bool {
	lower := strings.ToLower(category)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// pieceCountRe matches the "<number> st <noun>" enumeration style in running
// text, e.g. "12 st tallrikar".
var pieceCountRe = regexp.MustCompile(`(?i)\b\d+\s+st\s+[a-zåäö]+`)

// trailingWeightRe matches a weight figure at the end of a title, e.g.
// "vikt ca 320 g" or "320 g".
var trailingWeightRe = regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*(?:g|kg)\s*\.?\s*$`)

// checkCategoryRules applies the field-guideline rules activated by the
// record's category string.
func (s *Scorer) checkCategoryRules(rec models.CatalogRecord, r *run) {
	w := s.cfg.Weights

	if categoryMatches(rec.Category, furnitureCategories) {
		if term, ok := findWoodTerm(rec.Title, s.cfg.WoodTerms); ok {
			r.add(w.WoodTermInTitle, models.Warning{
				Field:    "title",
				Code:     "wood_term_in_title",
				Message:  fmt.Sprintf("Träslaget \"%s\" ska inte stå i titeln för möbler. Flytta det till beskrivningen.", term),
				Severity: models.SeverityMedium,
				Source:   models.SourceFieldGuideline,
			})
		}
		if _, ok := findWoodTerm(rec.Title+" "+rec.Description, s.cfg.WoodTerms); !ok {
			r.add(w.MaterialMissing, models.Warning{
				Field:    "description",
				Code:     "material_missing",
				Message:  "Träslag eller material saknas. Möbler ska ange material i beskrivningen.",
				Severity: models.SeverityMedium,
				Source:   models.SourceFieldGuideline,
			})
		}
	}

	if categoryMatches(rec.Category, rugCategories) {
		if !patterns.HasMeasurement(rec.Title) {
			r.add(w.RugMeasurementMissing, models.Warning{
				Field:    "title",
				Code:     "rug_measurement_missing_title",
				Message:  "Mattor ska ha mått i titeln, t.ex. \"MATTA, orientalisk, 240x170 cm\".",
				Severity: models.SeverityMedium,
				Source:   models.SourceFieldGuideline,
			})
		}
	}

	if categoryMatches(rec.Category, artCategories) && !rec.NoRemarksFlag {
		if strings.Contains(strings.ToLower(patterns.StripHTML(rec.Condition)), patterns.Bruksslitage) {
			r.add(w.BruksslitageInArt, models.Warning{
				Field:    "condition",
				Code:     "bruksslitage_in_art_condition",
				Message:  "\"Bruksslitage\" används inte för konst. Skriv t.ex. \"mindre ytslitage\".",
				Severity: models.SeverityMedium,
				Source:   models.SourceFieldGuideline,
			})
		}
	}

	if categoryMatches(rec.Category, silverCategories) && !categoryMatches(rec.Category, jewelryCategories) {
		if !trailingWeightRe.MatchString(patterns.StripHTML(rec.Title)) {
			// Tip only: a trailing weight is a convention, not a requirement.
			r.add(0, models.Warning{
				Field:    "title",
				Code:     "silver_weight_missing_title",
				Message:  "Tips: silverföremål brukar avslutas med vikt i titeln, t.ex. \"... vikt ca 320 g\".",
				Severity: models.SeverityLow,
				Source:   models.SourceFieldGuideline,
			})
		}
	}

	if categoryMatches(rec.Category, dinnerCategories) {
		if match := pieceCountRe.FindString(patterns.StripHTML(rec.Description)); match != "" {
			r.add(w.PieceCountStyle, models.Warning{
				Field:    "description",
				Code:     "piece_count_style",
				Message:  fmt.Sprintf("Skriv ut antal i löpande text i stället för \"%s\".", match),
				Severity: models.SeverityLow,
				Source:   models.SourceFieldGuideline,
			})
		}
	}
}

// findWoodTerm looks for a wood/material term at a word start. Swedish
// definite and compound forms (eken, ekskåp) still begin with the base term,
// so a word-start match is enough without false hits inside words like
// "dekor".
func findWoodTerm(text string, terms []string) (string, bool) {
	stripped := patterns.StripHTML(text)
	for _, term := range terms {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term))
		if re.MatchString(stripped) {
			return term, true
		}
	}
	return "", false
}

func lowerJoin(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToLower(patterns.StripHTML(p)))
		b.WriteByte(' ')
	}
	return b.String()
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(haystack, strings.ToLower(strings.TrimSpace(needle)))
}
