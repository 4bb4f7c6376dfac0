// Package halluc detects hallucinated specifics in AI-revised condition
// text. A candidate replacement is diffed against the original field value;
// anything that adds a location, a measurement or a located damage claim with
// no basis in the original is flagged. Rewording an existing term is
// legitimate improvement and is never flagged; only newly added specificity
// counts as hallucination.
package halluc

import (
	"regexp"
	"strings"

	"github.com/auktionera/cataloger/internal/models"
	"github.com/auktionera/cataloger/internal/patterns"
)

// knownLocationPhrases are fixed prepositional location phrases common in
// condition reports, checked in addition to the generic prepositional
// pattern.
var knownLocationPhrases = []string{
	"i botten",
	"på ovansidan",
	"på undersidan",
	"på insidan",
	"på utsidan",
	"längs kanten",
	"vid foten",
	"vid basen",
	"i hörnen",
	"på locket",
	"vid handtaget",
	"runt kanten",
}

// damageNouns are the damage types the located-damage detector tracks.
var damageNouns = []string{
	"repor", "repa",
	"märken", "märke",
	"nagg",
	"sprickor", "spricka",
	"fläckar", "fläck",
	"bucklor", "buckla",
	"missfärgningar", "missfärgning",
	"rostfläckar", "rostfläck",
}

// damageWithLocatorRe matches a damage noun directly followed by a
// prepositional locator, e.g. "spricka i glasyren".
var damageWithLocatorRe = regexp.MustCompile(`(?i)\b(` + strings.Join(damageNouns, "|") + `)\s+(` + patterns.LocationQualifierPattern + `)`)

// Diff flags substrings in candidate that introduce unauthorized specifics
// absent from original. Used for the condition field, where fabrication
// tolerance is lowest. Findings are deduplicated case-insensitively.
func Diff(original, candidate string) []models.HallucinationFinding {
	origLower := strings.ToLower(patterns.StripHTML(original))
	candStripped := patterns.StripHTML(candidate)

	var findings []models.HallucinationFinding
	seen := make(map[string]bool)
	add := func(category models.FindingCategory, text string) {
		key := string(category) + "|" + strings.ToLower(text)
		if seen[key] {
			return
		}
		seen[key] = true
		findings = append(findings, models.HallucinationFinding{Category: category, Text: text})
	}

	// New location phrases: fixed list plus the generic prepositional
	// pattern.
	for _, phrase := range knownLocationPhrases {
		if containsFold(candStripped, phrase) && !strings.Contains(origLower, phrase) {
			add(models.FindingLocation, phrase)
		}
	}
	for _, phrase := range patterns.FindLocationQualifiers(candStripped) {
		if !strings.Contains(origLower, strings.ToLower(phrase)) {
			add(models.FindingLocation, phrase)
		}
	}

	// New measurements: invented precision like a fabricated "3 cm".
	for _, m := range patterns.FindMeasurements(candStripped) {
		if !strings.Contains(origLower, strings.ToLower(m)) {
			add(models.FindingMeasurement, m)
		}
	}

	// New damage claims with a locator. A damage noun already present in the
	// original may be relocated or reworded freely; only a noun the original
	// never mentioned, anchored to a specific place, is fabrication.
	for _, match := range damageWithLocatorRe.FindAllStringSubmatch(candStripped, -1) {
		full, noun := match[0], strings.ToLower(match[1])
		if strings.Contains(origLower, noun) {
			continue
		}
		if !strings.Contains(origLower, strings.ToLower(full)) {
			add(models.FindingDamageType, full)
		}
	}

	return findings
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
