// Package patterns provides the lexical matchers shared by the scorer, the
// sparse-data gate and the hallucination differ: HTML stripping, measurement
// detection, vague condition phrases and forbidden-term lists. All matchers
// are case-insensitive and stateless.
package patterns

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes <...> markup and collapses the resulting whitespace.
// Every other matcher in the engine operates on stripped text.
func StripHTML(text string) string {
	stripped := htmlTagRe.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(stripped), " ")
}

// StrippedLen is the character count of the HTML-stripped text, the length
// measure used by all completeness rules.
func StrippedLen(text string) int {
	return len([]rune(StripHTML(text)))
}

// measurementRe matches dimension, weight, diameter, circumference and carat
// figures: an optional ca/cirka/ungefär prefix, a number or range (hyphen or
// en-dash) and a unit suffix. Examples: "34 cm", "ca 2,5 kg", "70x140 cm",
// "1,2–1,5 ct", "längd 34 cm".
var measurementRe = regexp.MustCompile(`(?i)\b(?:ca\.?\s*|cirka\s+|ungefär\s+)?\d+(?:[.,]\d+)?(?:\s*[x×]\s*\d+(?:[.,]\d+)?)?(?:\s*[-–]\s*\d+(?:[.,]\d+)?)?\s*(?:mm|cm|m|g|kg|ct)`)

// findMeasurements runs measurementRe over already-stripped text and drops
// matches whose unit is immediately followed by a letter or digit. A trailing
// \b in the pattern is ASCII-only in Go's regexp, so "3 mässingsknoppar"
// would otherwise count as the measurement "3 m".
func findMeasurements(stripped string) []string {
	var out []string
	for _, span := range measurementRe.FindAllStringIndex(stripped, -1) {
		if rest := stripped[span[1]:]; rest != "" {
			r, _ := utf8.DecodeRuneInString(rest)
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				continue
			}
		}
		out = append(out, stripped[span[0]:span[1]])
	}
	return out
}

// HasMeasurement reports whether the text contains at least one measurement
// with a unit suffix.
func HasMeasurement(text string) bool {
	return len(findMeasurements(StripHTML(text))) > 0
}

// FindMeasurements returns every measurement token in the text, in order.
func FindMeasurements(text string) []string {
	return findMeasurements(StripHTML(text))
}

// VaguePhrases are condition formulations considered too unspecific on their
// own. Bruksslitage is deliberately excluded: standing alone it is the worst
// offender and scored separately.
var VaguePhrases = []string{
	"normalt slitage",
	"vanligt slitage",
	"åldersslitage",
	"slitage förekommer",
}

// Bruksslitage is the canonical too-vague condition phrase ("wear from
// normal use").
const Bruksslitage = "bruksslitage"

// FindVaguePhrases returns the vague phrases present in the text, in list
// order. The standalone bruksslitage case is reported last.
func FindVaguePhrases(text string) []string {
	lower := strings.ToLower(StripHTML(text))
	var found []string
	for _, phrase := range VaguePhrases {
		if strings.Contains(lower, phrase) {
			found = append(found, phrase)
		}
	}
	if strings.Contains(lower, Bruksslitage) {
		found = append(found, Bruksslitage)
	}
	return found
}

// IsBareBruksslitage reports whether the condition text is the literal word
// bruksslitage and nothing else, with or without a trailing period.
func IsBareBruksslitage(text string) bool {
	t := strings.ToLower(strings.TrimSpace(StripHTML(text)))
	t = strings.TrimSuffix(t, ".")
	return t == Bruksslitage
}

// FindForbiddenTerms does a case-insensitive substring search against a
// configurable term list and returns the terms found, in list order.
func FindForbiddenTerms(text string, terms []string) []string {
	lower := strings.ToLower(StripHTML(text))
	var found []string
	for _, term := range terms {
		if term != "" && strings.Contains(lower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}
	return found
}

// SplitKeywords splits a delimiter-ambiguous keyword string. A comma anywhere
// selects comma as the separator; otherwise whitespace is used. Never both.
func SplitKeywords(keywords string) []string {
	trimmed := strings.TrimSpace(StripHTML(keywords))
	if trimmed == "" {
		return nil
	}
	var parts []string
	if strings.Contains(trimmed, ",") {
		parts = strings.Split(trimmed, ",")
	} else {
		parts = strings.Fields(trimmed)
	}
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LocationQualifierPattern matches a Swedish prepositional location qualifier
// such as "i botten", "på ovansidan", "vid foten" or "längs kanten": a
// location preposition followed by a definite-form noun. Used by the scorer
// (vague phrase without a location) and composed into larger expressions by
// the hallucination differ.
const LocationQualifierPattern = `(?:i|på|vid|längs|under|ovanpå|runt|invid) (?:den |det |de )?[a-zåäö]+(?:en|et|an|na|orna|erna|arna)\b`

var locationQualifierRe = regexp.MustCompile(`(?i)\b` + LocationQualifierPattern)

// HasLocationQualifier reports whether the text contains a prepositional
// location phrase.
func HasLocationQualifier(text string) bool {
	return locationQualifierRe.MatchString(StripHTML(text))
}

// FindLocationQualifiers returns all prepositional location phrases in the
// text, in order.
func FindLocationQualifiers(text string) []string {
	return locationQualifierRe.FindAllString(StripHTML(text), -1)
}

// yearRe matches a plausible production year between 1000 and 2099.
var yearRe = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2})\b`)

// centuryRe matches century expressions such as "1700-tal", "1800-talet" and
// decade forms like "1920-tal".
var centuryRe = regexp.MustCompile(`(?i)\b1[0-9]00-tal(?:et|ets)?\b`)

// HasPeriodOrYear reports whether the text names a production period: a
// four-digit year, a century expression or a decade expression.
func HasPeriodOrYear(text string) bool {
	stripped := StripHTML(text)
	return yearRe.MatchString(stripped) || strings.Contains(strings.ToLower(stripped), "-tal")
}

// HasBareCentury reports whether the text uses a whole-century expression
// ("1800-tal") without a narrower decade ("1820-tal") or half-century phrase.
func HasBareCentury(text string) bool {
	stripped := StripHTML(text)
	if !centuryRe.MatchString(stripped) {
		return false
	}
	lower := strings.ToLower(stripped)
	return !strings.Contains(lower, "hälft") && !decadeRe.MatchString(stripped)
}

var decadeRe = regexp.MustCompile(`(?i)\b1[0-9][1-9]0-tal(?:et|ets)?\b`)

// halfCenturyRe matches "1800-talets första hälft" style phrases.
var halfCenturyRe = regexp.MustCompile(`(?i)1[0-9]00-talets (första|andra) hälft`)

// HasHalfCenturyPhrase reports whether the text uses a first/second half of
// century formulation.
func HasHalfCenturyPhrase(text string) bool {
	return halfCenturyRe.MatchString(StripHTML(text))
}

// caYearRe matches "ca" directly preceding a four-digit year, a dating style
// the house guidelines reject in favor of "omkring".
var caYearRe = regexp.MustCompile(`(?i)\bca\.?\s+(1[0-9]{3}|20[0-9]{2})\b`)

// HasCaBeforeYear reports whether "ca" directly precedes a four-digit year.
func HasCaBeforeYear(text string) bool {
	return caYearRe.MatchString(StripHTML(text))
}
