// Package gate implements the sparse-data pre-generation check: given a
// record snapshot and a target field it decides whether enough source data
// exists to generate that field without fabrication. The gate never calls the
// generation service and does no I/O, so it is safe to run synchronously in
// the hot path before every generation attempt.
package gate

import (
	"strings"

	"github.com/auktionera/cataloger/internal/models"
	"github.com/auktionera/cataloger/internal/patterns"
	"github.com/auktionera/cataloger/internal/scoring"
)

// Floors are the gate's sufficiency limits, separate from the scorer's
// deduction thresholds.
type Floors struct {
	// HardFloor forces needsMoreInfo for any field when the overall quality
	// score falls below it.
	HardFloor int
	// AllFloor is the overall-quality requirement for whole-record generation.
	AllFloor int
	// KeywordsFloor is the requirement for keyword generation. Keywords can
	// usually be produced even from sparse data, so this sits below HardFloor:
	// the keywords-specific code only accompanies the hard-floor block on
	// truly empty records, it never blocks on its own.
	KeywordsFloor int

	TitleVeryShort     int
	DescShortForPeriod int
	DescVeryShort      int
	DescShortForArtist int
	DescMin            int
	DescMinNoMeasure   int
	CondVeryShort      int
	CondShortForVague  int
}

// DefaultFloors returns the house limits.
func DefaultFloors() Floors {
	return Floors{
		HardFloor:          30,
		AllFloor:           40,
		KeywordsFloor:      20,
		TitleVeryShort:     10,
		DescShortForPeriod: 100,
		DescVeryShort:      40,
		DescShortForArtist: 60,
		DescMin:            40,
		DescMinNoMeasure:   80,
		CondVeryShort:      10,
		CondShortForVague:  30,
	}
}

// Gate evaluates sufficiency. Stateless and safe for concurrent use.
type Gate struct {
	scorer *scoring.Scorer
	floors Floors
}

// New returns a gate reusing the given scorer for the quality score.
func New(scorer *scoring.Scorer, floors Floors) *Gate {
	return &Gate{scorer: scorer, floors: floors}
}

// NewDefault returns a gate with the default scorer and floors.
func NewDefault() *Gate {
	return New(scoring.NewDefault(), DefaultFloors())
}

// Assess decides whether the record carries enough information to generate
// the target field. ignoredArtists is the caller-supplied exclusion set of
// artist names that must not count as attribution support; nil means none.
func (g *Gate) Assess(rec models.CatalogRecord, target models.FieldTarget, ignoredArtists map[string]bool) models.GateDecision {
	quality := g.scorer.Score(rec).Score
	codes := make(map[string]bool)

	switch target {
	case models.TargetTitle:
		g.assessTitle(rec, ignoredArtists, codes)
	case models.TargetDescription:
		g.assessDescription(rec, codes)
	case models.TargetCondition:
		g.assessCondition(rec, codes)
	case models.TargetKeywords:
		if quality < g.floors.KeywordsFloor {
			codes["quality_too_low_for_keywords"] = true
		}
	case models.TargetAll:
		g.assessTitle(rec, ignoredArtists, codes)
		g.assessDescription(rec, codes)
		g.assessCondition(rec, codes)
		if quality < g.floors.AllFloor {
			codes["overall_quality_low"] = true
		}
	}

	// The hard floor is more conservative than any per-field check and
	// applies regardless of target.
	if quality < g.floors.HardFloor {
		codes["quality_floor"] = true
	}

	return models.GateDecision{
		NeedsMoreInfo:    len(codes) > 0,
		MissingInfoCodes: codes,
		QualityScore:     quality,
	}
}

func (g *Gate) assessTitle(rec models.CatalogRecord, ignoredArtists map[string]bool, codes map[string]bool) {
	titleLen := patterns.StrippedLen(rec.Title)
	descLen := patterns.StrippedLen(rec.Description)
	artist := effectiveArtist(rec.Artist, ignoredArtists)

	// No dating anywhere, no attribution, thin description: generating a
	// title would mean inventing a period.
	if !patterns.HasPeriodOrYear(rec.Title+" "+rec.Description) && artist == "" && descLen < g.floors.DescShortForPeriod {
		codes["period_unknown"] = true
	}
	if titleLen < g.floors.TitleVeryShort && descLen < g.floors.DescVeryShort {
		codes["basic_facts_missing"] = true
	}
	// A named artist with nothing to back it up invites signature claims.
	if artist != "" && descLen < g.floors.DescShortForArtist {
		codes["artist_attribution_risk"] = true
	}
}

func (g *Gate) assessDescription(rec models.CatalogRecord, codes map[string]bool) {
	descLen := patterns.StrippedLen(rec.Description)
	if descLen < g.floors.DescMin {
		codes["description_too_short"] = true
	} else if !patterns.HasMeasurement(rec.Description) && descLen < g.floors.DescMinNoMeasure {
		codes["description_lacks_detail"] = true
	}
}

func (g *Gate) assessCondition(rec models.CatalogRecord, codes map[string]bool) {
	if rec.NoRemarksFlag {
		return
	}
	condLen := patterns.StrippedLen(rec.Condition)
	switch {
	case patterns.IsBareBruksslitage(rec.Condition):
		codes["condition_bare_bruksslitage"] = true
	case condLen < g.floors.CondVeryShort:
		codes["condition_too_short"] = true
	case len(patterns.FindVaguePhrases(rec.Condition)) > 0 && condLen < g.floors.CondShortForVague:
		codes["condition_vague"] = true
	}
}

func effectiveArtist(artist string, ignored map[string]bool) string {
	trimmed := strings.TrimSpace(artist)
	if trimmed == "" {
		return ""
	}
	if ignored[strings.ToLower(trimmed)] {
		return ""
	}
	return trimmed
}
