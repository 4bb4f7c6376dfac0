package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/auktionera/cataloger/internal/models"
	"github.com/auktionera/cataloger/internal/patterns"
)

var sterlingTwoWordsRe = regexp.MustCompile(`(?i)\bsterling\s+silver\b`)

// checkLexicalHygiene applies the category-independent formatting rules:
// compound object+material words, spelling conventions and dating style.
func (s *Scorer) checkLexicalHygiene(rec models.CatalogRecord, r *run) {
	w := s.cfg.Weights
	body := patterns.StripHTML(rec.Title + " " + rec.Description)
	lower := strings.ToLower(body)

	// Compound dictionary: first match wins, scanning stops there.
	for _, entry := range s.cfg.CompoundWords {
		if strings.Contains(lower, strings.ToLower(entry.Word)) {
			r.add(w.CompoundObjectMaterial, models.Warning{
				Field:    "title",
				Code:     "compound_object_material",
				Message:  fmt.Sprintf("Skriv \"%s\" i stället för sammansättningen \"%s\".", entry.Suggested, entry.Word),
				Severity: models.SeverityLow,
				Source:   models.SourceFieldGuideline,
			})
			break
		}
	}

	if sterlingTwoWordsRe.MatchString(body) {
		r.add(w.SterlingSilverSpacing, models.Warning{
			Field:    "description",
			Code:     "sterling_silver_spacing",
			Message:  "\"Sterling silver\" skrivs ihop: \"sterlingsilver\".",
			Severity: models.SeverityLow,
			Source:   models.SourceFieldGuideline,
		})
	}

	if patterns.HasCaBeforeYear(body) {
		r.add(w.CaBeforeYear, models.Warning{
			Field:    "description",
			Code:     "ca_before_year",
			Message:  "Skriv \"omkring\" före årtal i stället för \"ca\".",
			Severity: models.SeverityLow,
			Source:   models.SourceFieldGuideline,
		})
	}

	for _, entry := range s.cfg.Abbreviations {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(entry.Abbrev))
		if re.MatchString(body) {
			r.add(w.Abbreviation, models.Warning{
				Field:    "description",
				Code:     "abbreviation",
				Message:  fmt.Sprintf("Skriv ut \"%s\" som \"%s\".", entry.Abbrev, entry.SpelledOr),
				Severity: models.SeverityLow,
				Source:   models.SourceFieldGuideline,
			})
		}
	}

	if patterns.HasBareCentury(body) {
		r.add(w.CenturyTooVague, models.Warning{
			Field:    "description",
			Code:     "century_too_vague",
			Message:  "Ett helt sekel är en vag datering. Ange decennium eller del av sekel om möjligt.",
			Severity: models.SeverityLow,
			Source:   models.SourceFieldGuideline,
		})
	}

	if patterns.HasHalfCenturyPhrase(body) {
		r.add(w.HalfCenturyVague, models.Warning{
			Field:    "description",
			Code:     "half_century_vague",
			Message:  "\"Första/andra hälft\" av ett sekel är vagt. Precisera dateringen om underlag finns.",
			Severity: models.SeverityLow,
			Source:   models.SourceFieldGuideline,
		})
	}
}
