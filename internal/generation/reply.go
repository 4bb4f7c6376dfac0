package generation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/auktionera/cataloger/internal/models"
)

// ErrMalformedReply indicates a generation reply that could not be decomposed
// into any labeled field. It is a transport-level failure, distinct from a
// low validation score.
var ErrMalformedReply = errors.New("generation reply contains no labeled field")

// labelLineRe matches a line-oriented "LABEL: value" field marker. Labels
// tolerate surrounding emphasis punctuation and a trailing parenthetical,
// e.g. "**TITLE:**", "TITLE (58 tecken):". The value may start on the same
// line and continue until the next label.
var labelLineRe = regexp.MustCompile(`^[\s*_#>-]*([A-Za-zÅÄÖåäö]+)\s*(?:\([^)]*\))?\s*[*_]*\s*:\s*[*_]*\s*(.*)$`)

// fieldLabels maps reply labels to record fields. VALIDATION may be echoed by
// the service; it is recognized so it terminates the previous field, but its
// content is discarded. The engine always recomputes its own score.
var fieldLabels = map[string]bool{
	"TITLE":       true,
	"DESCRIPTION": true,
	"CONDITION":   true,
	"KEYWORDS":    true,
	"VALIDATION":  true,
}

// ParseReply decomposes a raw generation reply into named fields. Returns
// ErrMalformedReply when not a single known label is present.
func ParseReply(raw string) (models.FieldValues, error) {
	var fields models.FieldValues
	current := ""
	var buf []string
	matched := false

	flush := func() {
		value := strings.TrimSpace(strings.Join(buf, "\n"))
		buf = buf[:0]
		switch current {
		case "TITLE":
			fields.Title = value
		case "DESCRIPTION":
			fields.Description = value
		case "CONDITION":
			fields.Condition = value
		case "KEYWORDS":
			fields.Keywords = value
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		if m := labelLineRe.FindStringSubmatch(line); m != nil {
			label := strings.ToUpper(m[1])
			if fieldLabels[label] {
				flush()
				current = label
				matched = true
				if rest := strings.TrimSpace(m[2]); rest != "" {
					buf = append(buf, rest)
				}
				continue
			}
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()

	if !matched {
		return models.FieldValues{}, ErrMalformedReply
	}
	return fields, nil
}
