// Package scoring evaluates a catalog record snapshot against the house rule
// set and produces a 0-100 quality score with human-readable warnings. Every
// rule is independent: it reads the record, optionally emits a warning and
// optionally deducts points, never looking at another rule's output. Rule
// order therefore only affects warning order, never the score. Compliance
// rules are advisory and never deduct.
package scoring

import (
	"fmt"

	"github.com/auktionera/cataloger/internal/models"
	"github.com/auktionera/cataloger/internal/patterns"
)

// Scorer applies the configured rule set to record snapshots. It is stateless
// and safe for concurrent use.
type Scorer struct {
	cfg Config
}

// New returns a scorer using the given rule configuration.
func New(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// NewDefault returns a scorer with the house defaults.
func NewDefault() *Scorer {
	return New(DefaultConfig())
}

// Config returns the rule configuration the scorer was built with.
func (s *Scorer) Config() Config {
	return s.cfg
}

// run accumulates deductions and warnings for one scoring pass. The score is
// clamped once, at the end, after all rules have summed their deductions.
type run struct {
	deductions int
	warnings   []models.Warning
}

func (r *run) add(points int, w models.Warning) {
	r.deductions += points
	r.warnings = append(r.warnings, w)
}

// Score evaluates the record and returns the clamped score with warnings in
// rule evaluation order. Total over any record; empty fields never panic.
func (s *Scorer) Score(rec models.CatalogRecord) models.ScoreResult {
	r := &run{}

	s.checkCompleteness(rec, r)
	s.checkCondition(rec, r)
	s.checkKeywords(rec, r)
	s.checkContamination(rec, r)
	s.checkLanguage(rec, r)
	s.checkCategoryRules(rec, r)
	s.checkLexicalHygiene(rec, r)
	s.checkCompliance(rec, r)

	score := 100 - r.deductions
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return models.ScoreResult{Score: score, Warnings: r.warnings}
}

func (s *Scorer) checkCompleteness(rec models.CatalogRecord, r *run) {
	w := s.cfg.Weights
	th := s.cfg.Thresholds

	title := patterns.StripHTML(rec.Title)
	if len([]rune(title)) < th.TitleMinLen {
		r.add(w.ShortTitle, models.Warning{
			Field:    "title",
			Code:     "short_title",
			Message:  fmt.Sprintf("Titeln är för kort (under %d tecken). Ange objekt, material och period.", th.TitleMinLen),
			Severity: models.SeverityMedium,
			Source:   models.SourceQuality,
		})
	}
	if title != "" && !containsRune(title, ',') {
		r.add(w.TitleMissingComma, models.Warning{
			Field:    "title",
			Code:     "title_missing_comma",
			Message:  "Titeln saknar kommaseparerad struktur (OBJEKT, material, period).",
			Severity: models.SeverityLow,
			Source:   models.SourceQuality,
		})
	}

	descLen := patterns.StrippedLen(rec.Description)
	if descLen < th.DescriptionMinLen {
		r.add(w.ShortDescription, models.Warning{
			Field:    "description",
			Code:     "short_description",
			Message:  fmt.Sprintf("Beskrivningen är för kort (under %d tecken).", th.DescriptionMinLen),
			Severity: models.SeverityMedium,
			Source:   models.SourceQuality,
		})
	}
	if !patterns.HasMeasurement(rec.Description) {
		r.add(w.DescriptionNoMeasure, models.Warning{
			Field:    "description",
			Code:     "description_no_measurement",
			Message:  "Beskrivningen saknar mått. Ange t.ex. höjd, bredd eller vikt med enhet.",
			Severity: models.SeverityMedium,
			Source:   models.SourceQuality,
		})
	}
}

func (s *Scorer) checkCondition(rec models.CatalogRecord, r *run) {
	w := s.cfg.Weights
	th := s.cfg.Thresholds

	if rec.NoRemarksFlag {
		r.add(0, models.Warning{
			Field:    "condition",
			Code:     "no_remarks_declared",
			Message:  "Inga anmärkningar angivet, konditionsregler utelämnade.",
			Severity: models.SeverityLow,
			Source:   models.SourceQuality,
		})
		return
	}

	condLen := patterns.StrippedLen(rec.Condition)
	if condLen < th.ConditionMinLen {
		r.add(w.ShortCondition, models.Warning{
			Field:    "condition",
			Code:     "short_condition",
			Message:  fmt.Sprintf("Konditionsrapporten är för kort (under %d tecken).", th.ConditionMinLen),
			Severity: models.SeverityMedium,
			Source:   models.SourceQuality,
		})
	}

	if patterns.IsBareBruksslitage(rec.Condition) {
		r.add(w.BruksslitageAlone, models.Warning{
			Field:    "condition",
			Code:     "bruksslitage_alone",
			Message:  "Enbart \"bruksslitage\" är för vagt. Beskriv typ av slitage och var det finns.",
			Severity: models.SeverityHigh,
			Source:   models.SourceQuality,
		})
	} else {
		vague := patterns.FindVaguePhrases(rec.Condition)
		if len(vague) > 0 && condLen < th.VagueCombinedLen {
			r.add(w.VagueCondition, models.Warning{
				Field:    "condition",
				Code:     "vague_condition_term",
				Message:  fmt.Sprintf("Vag formulering \"%s\" i en kort konditionsrapport. Precisera skadorna.", vague[0]),
				Severity: models.SeverityMedium,
				Source:   models.SourceQuality,
			})
		}
		if len(vague) > 0 && !patterns.HasLocationQualifier(rec.Condition) {
			// Tip only, no deduction.
			r.add(0, models.Warning{
				Field:    "condition",
				Code:     "vague_no_location",
				Message:  fmt.Sprintf("Tips: ange var \"%s\" finns, t.ex. \"slitage längs kanten\".", vague[0]),
				Severity: models.SeverityLow,
				Source:   models.SourceQuality,
			})
		}
	}
}

func (s *Scorer) checkKeywords(rec models.CatalogRecord, r *run) {
	w := s.cfg.Weights
	th := s.cfg.Thresholds

	keywords := patterns.SplitKeywords(rec.Keywords)
	n := len(keywords)

	switch {
	case n == 0:
		r.add(w.KeywordsMissing, models.Warning{
			Field:    "keywords",
			Code:     "keywords_missing",
			Message:  "Sökord saknas helt.",
			Severity: models.SeverityHigh,
			Source:   models.SourceQuality,
		})
	case n < th.KeywordsMin:
		r.add(w.KeywordsTooFew, models.Warning{
			Field:    "keywords",
			Code:     "keywords_too_few",
			Message:  fmt.Sprintf("Endast %d sökord. Lägg till fler för bättre sökbarhet.", n),
			Severity: models.SeverityMedium,
			Source:   models.SourceQuality,
		})
	case n < th.KeywordsSweetMin:
		r.add(w.KeywordsCouldUseMore, models.Warning{
			Field:    "keywords",
			Code:     "keywords_could_use_more",
			Message:  fmt.Sprintf("%d sökord. %d–%d brukar ge bäst träffbild.", n, th.KeywordsSweetMin, th.KeywordsSweetMax),
			Severity: models.SeverityLow,
			Source:   models.SourceQuality,
		})
	case n > th.KeywordsSweetMax:
		r.add(w.KeywordsTooMany, models.Warning{
			Field:    "keywords",
			Code:     "keywords_too_many",
			Message:  fmt.Sprintf("%d sökord är fler än rekommenderat (max %d).", n, th.KeywordsSweetMax),
			Severity: models.SeverityLow,
			Source:   models.SourceQuality,
		})
	}

	if n > 0 {
		existing := lowerJoin(rec.Title, rec.Description, rec.Condition)
		fresh := 0
		for _, kw := range keywords {
			if !containsFold(existing, kw) {
				fresh++
			}
		}
		if float64(fresh)/float64(n) < th.NewKeywordRatio {
			// Tip only: redundant keywords are wasted, not wrong.
			r.add(0, models.Warning{
				Field:    "keywords",
				Code:     "keywords_redundant",
				Message:  "Tips: de flesta sökorden förekommer redan i titel eller beskrivning. Lägg till synonymer och stavningsvarianter.",
				Severity: models.SeverityLow,
				Source:   models.SourceQuality,
			})
		}
	}
}

// checkContamination scans the description for condition-domain vocabulary.
// Description and condition have strictly disjoint responsibilities:
// description carries construction, material and provenance facts, condition
// carries physical state. One warning per distinct term.
func (s *Scorer) checkContamination(rec models.CatalogRecord, r *run) {
	terms := patterns.FindForbiddenTerms(rec.Description, s.cfg.ConditionTerms)
	for _, term := range terms {
		r.add(s.cfg.Weights.ConditionTermInDescription, models.Warning{
			Field:    "description",
			Code:     "condition_term_in_description",
			Message:  fmt.Sprintf("Konditionsordet \"%s\" hör hemma i konditionsrapporten, inte i beskrivningen.", term),
			Severity: models.SeverityHigh,
			Source:   models.SourceQuality,
		})
	}
}

func (s *Scorer) checkLanguage(rec models.CatalogRecord, r *run) {
	w := s.cfg.Weights
	body := rec.Title + " " + rec.Description

	if found := patterns.FindForbiddenTerms(body, s.cfg.MarketingTerms); len(found) > 0 {
		r.add(w.MarketingLanguage, models.Warning{
			Field:    "description",
			Code:     "marketing_language",
			Message:  fmt.Sprintf("Marknadsförande språk (\"%s\") ska undvikas i katalogtext.", found[0]),
			Severity: models.SeverityMedium,
			Source:   models.SourceQuality,
		})
	}
	if found := patterns.FindForbiddenTerms(body, s.cfg.SubjectiveTerms); len(found) > 0 {
		r.add(w.SubjectiveLanguage, models.Warning{
			Field:    "description",
			Code:     "subjective_language",
			Message:  fmt.Sprintf("Spekulativ formulering (\"%s\"). Ange bara belagda fakta.", found[0]),
			Severity: models.SeverityMedium,
			Source:   models.SourceQuality,
		})
	}
	if !rec.NoRemarksFlag {
		if found := patterns.FindForbiddenTerms(rec.Condition, s.cfg.OverPositiveTerms); len(found) > 0 {
			r.add(w.OverPositiveCondition, models.Warning{
				Field:    "condition",
				Code:     "overpositive_condition",
				Message:  fmt.Sprintf("Överdrivet positiv konditionsangivelse (\"%s\").", found[0]),
				Severity: models.SeverityMedium,
				Source:   models.SourceQuality,
			})
		}
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
