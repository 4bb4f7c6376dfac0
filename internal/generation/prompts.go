package generation

import (
	"fmt"
	"strings"

	"github.com/auktionera/cataloger/internal/models"
)

// buildSystemContext is the standing instruction for every generation call.
func buildSystemContext() string {
	return `Du är en erfaren katalogiserare på ett svenskt auktionshus. Du skriver
katalogtext (titel, beskrivning, konditionsrapport och sökord) på svenska
enligt husets riktlinjer.

Regler:
1. Använd ENDAST uppgifter som finns i underlaget. Hitta aldrig på mått,
   platser, skador, material eller perioder.
2. Titel skrivs som "OBJEKT, material, period".
3. Beskrivningen innehåller konstruktion, material, proveniens och mått.
   Kondition hör aldrig hemma i beskrivningen.
4. Konditionsrapporten beskriver fysiskt skick konkret och lokaliserat.
5. Inga värdeomdömen eller marknadsförande språk.

Svara radorienterat med fälten:
TITLE: ...
DESCRIPTION: ...
CONDITION: ...
KEYWORDS: ...`
}

// buildUserPrompt composes the generation request for one record and target.
func buildUserPrompt(rec models.CatalogRecord, target models.FieldTarget) string {
	var b strings.Builder
	b.WriteString("Underlag för katalogposten:\n\n")
	fmt.Fprintf(&b, "Kategori: %s\n", rec.Category)
	fmt.Fprintf(&b, "Titel: %s\n", rec.Title)
	fmt.Fprintf(&b, "Beskrivning: %s\n", rec.Description)
	if rec.NoRemarksFlag {
		b.WriteString("Kondition: inga anmärkningar\n")
	} else {
		fmt.Fprintf(&b, "Kondition: %s\n", rec.Condition)
	}
	if rec.Artist != "" {
		fmt.Fprintf(&b, "Konstnär: %s\n", rec.Artist)
	}
	fmt.Fprintf(&b, "Sökord: %s\n\n", rec.Keywords)

	switch target {
	case models.TargetAll:
		b.WriteString("Skriv om samtliga fält enligt riktlinjerna.")
	default:
		fmt.Fprintf(&b, "Skriv om fältet %s enligt riktlinjerna. Övriga fält lämnas oförändrade men får användas som underlag.", swedishFieldName(target))
	}
	return b.String()
}

// buildCorrectionPrompt enumerates every warning and hallucination finding
// from the failed validation and asks for one corrected version.
func buildCorrectionPrompt(score models.ScoreResult, findings []models.HallucinationFinding) string {
	var b strings.Builder
	b.WriteString("Texten godkändes inte av kvalitetskontrollen. Åtgärda följande och svara med samma fältformat:\n\n")
	for i, w := range score.Warnings {
		fmt.Fprintf(&b, "%d. %s\n", i+1, w.Message)
	}
	if len(findings) > 0 {
		b.WriteString("\nFöljande uppgifter saknas i underlaget och måste strykas:\n")
		for _, f := range findings {
			fmt.Fprintf(&b, "- \"%s\"\n", f.Text)
		}
	}
	return b.String()
}

func swedishFieldName(target models.FieldTarget) string {
	switch target {
	case models.TargetTitle:
		return "titel"
	case models.TargetDescription:
		return "beskrivning"
	case models.TargetCondition:
		return "kondition"
	case models.TargetKeywords:
		return "sökord"
	}
	return string(target)
}
