package scoring

import (
	"fmt"

	"github.com/auktionera/cataloger/internal/models"
	"github.com/auktionera/cataloger/internal/patterns"
)

// checkCompliance applies the advisory rules. They are always surfaced, never
// block generation and never touch the quality score: a compliance concern is
// a review task, not a text defect.
func (s *Scorer) checkCompliance(rec models.CatalogRecord, r *run) {
	body := rec.Title + " " + rec.Description + " " + rec.Condition

	if found := patterns.FindForbiddenTerms(body, s.cfg.LooseStoneTerms); len(found) > 0 {
		r.add(0, models.Warning{
			Field:    "description",
			Code:     "compliance_loose_stones",
			Message:  fmt.Sprintf("Omonterade ädelstenar (\"%s\"): kontrollera certifikat och proveniens före publicering.", found[0]),
			Severity: models.SeverityHigh,
			Source:   models.SourceCompliance,
		})
	}

	higher := rec.EstimateValue
	if rec.ReserveValue > higher {
		higher = rec.ReserveValue
	}
	if higher >= s.cfg.Thresholds.HighValue {
		r.add(0, models.Warning{
			Field:    "estimate",
			Code:     "compliance_high_value",
			Message:  fmt.Sprintf("Värdering över %.0f: id-kontroll av inlämnaren ska vara genomförd.", s.cfg.Thresholds.HighValue),
			Severity: models.SeverityHigh,
			Source:   models.SourceCompliance,
		})
	}

	if found := patterns.FindForbiddenTerms(body, s.cfg.BullionTerms); len(found) > 0 {
		r.add(0, models.Warning{
			Field:    "description",
			Code:     "compliance_bullion",
			Message:  fmt.Sprintf("Investeringsmetall (\"%s\"): kontrollera innehavstid och ursprung.", found[0]),
			Severity: models.SeverityHigh,
			Source:   models.SourceCompliance,
		})
	}
}
