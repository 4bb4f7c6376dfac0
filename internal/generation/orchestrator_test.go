package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/auktionera/cataloger/internal/models"
	"github.com/auktionera/cataloger/internal/providers"
	"github.com/auktionera/cataloger/internal/scoring"
)

// fakeProvider replays canned replies and records every call it receives.
type fakeProvider struct {
	replies []string
	errs    []error
	calls   []providers.Config
}

func (f *fakeProvider) GenerateText(ctx context.Context, cfg providers.Config) (string, error) {
	i := len(f.calls)
	f.calls = append(f.calls, cfg)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i >= len(f.replies) {
		return "", errors.New("no canned reply left")
	}
	return f.replies[i], nil
}

func baseRecord() models.CatalogRecord {
	return models.CatalogRecord{
		Category:    "Glas & Porslin",
		Title:       "VAS, glas, Orrefors, Simon Gate, 1925",
		Description: "Vas av klarglas med graverad dekor av dansande figurer. Formgiven av Simon Gate för Orrefors. Signerad och daterad 1925. Höjd 34 cm.",
		Condition:   "Mindre nagg vid mynningen. Två ytliga repor på ena sidan.",
		Keywords:    "konstglas, art deco, svenskt glas, graalteknik, samlarglas, 1920-tal",
	}
}

const goodConditionReply = `CONDITION: Två ytliga repor på ena sidan samt mindre nagg vid mynningen.`

func TestGenerateAcceptsFirstAttempt(t *testing.T) {
	provider := &fakeProvider{replies: []string{goodConditionReply}}
	o := New(Options{Provider: provider, Scorer: scoring.NewDefault()})

	result, err := o.Generate(context.Background(), baseRecord(), models.TargetCondition)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(provider.calls) != 1 {
		t.Errorf("Provider calls = %d, want 1", len(provider.calls))
	}
	if result.Attempts != 1 || result.Corrected {
		t.Errorf("Attempts = %d, Corrected = %v, want 1 and false", result.Attempts, result.Corrected)
	}
	if result.Fields.Condition == "" {
		t.Error("Expected condition text in result")
	}
	if result.Score.Score < DefaultCorrectionThreshold {
		t.Errorf("Score = %d, expected at or above threshold", result.Score.Score)
	}
}

func TestGenerateRunsExactlyOneCorrection(t *testing.T) {
	// First reply is bad enough to score below the threshold; the second is
	// still bad but must be accepted anyway.
	bad := `CONDITION: Bruksslitage.`
	provider := &fakeProvider{replies: []string{bad, bad}}
	o := New(Options{Provider: provider, Scorer: scoring.NewDefault()})

	rec := baseRecord()
	// Strip the record down so the bad condition drags the score under 70.
	rec.Description = "Vas av glas."
	rec.Keywords = ""

	result, err := o.Generate(context.Background(), rec, models.TargetCondition)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(provider.calls) != 2 {
		t.Fatalf("Provider calls = %d, want exactly 2", len(provider.calls))
	}
	if result.Attempts != 2 || !result.Corrected {
		t.Errorf("Attempts = %d, Corrected = %v, want 2 and true", result.Attempts, result.Corrected)
	}
	// Accepted unconditionally: the result carries the second reply even
	// though it still scores low.
	if result.Fields.Condition != "Bruksslitage." {
		t.Errorf("Fields.Condition = %q, want the second reply's text", result.Fields.Condition)
	}
}

func TestGenerateCorrectionCarriesHistory(t *testing.T) {
	bad := `CONDITION: Bruksslitage.`
	provider := &fakeProvider{replies: []string{bad, goodConditionReply}}
	o := New(Options{Provider: provider, Scorer: scoring.NewDefault()})

	rec := baseRecord()
	rec.Description = "Vas av glas."
	rec.Keywords = ""

	if _, err := o.Generate(context.Background(), rec, models.TargetCondition); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	second := provider.calls[1]
	if len(second.History) != 2 {
		t.Fatalf("Correction history length = %d, want 2", len(second.History))
	}
	if second.History[0].Role != "user" || second.History[1].Role != "assistant" {
		t.Errorf("History roles = %s, %s; want user, assistant", second.History[0].Role, second.History[1].Role)
	}
	if second.History[1].Content != bad {
		t.Error("Correction history must carry the first raw reply")
	}
	if second.Prompt == second.History[0].Content {
		t.Error("Correction prompt must differ from the original prompt")
	}
}

func TestGenerateNeverBlendsAttempts(t *testing.T) {
	// First reply has title and condition; second only condition. The result
	// must not keep the first reply's title.
	first := `TITLE: FANTASTISK VAS
CONDITION: Bruksslitage.`
	second := `CONDITION: Mindre nagg vid mynningen.`
	provider := &fakeProvider{replies: []string{first, second}}
	o := New(Options{Provider: provider, Scorer: scoring.NewDefault()})

	rec := baseRecord()
	rec.Description = "Vas av glas."
	rec.Keywords = ""

	result, err := o.Generate(context.Background(), rec, models.TargetAll)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Fields.Title != "" {
		t.Errorf("Fields.Title = %q, want empty: attempts must never blend", result.Fields.Title)
	}
	if result.Fields.Condition != "Mindre nagg vid mynningen." {
		t.Errorf("Fields.Condition = %q, want second reply's text", result.Fields.Condition)
	}
}

func TestGenerateMalformedReply(t *testing.T) {
	provider := &fakeProvider{replies: []string{"Jag kan tyvärr inte hjälpa till med detta."}}
	o := New(Options{Provider: provider, Scorer: scoring.NewDefault()})

	_, err := o.Generate(context.Background(), baseRecord(), models.TargetCondition)
	if !errors.Is(err, ErrMalformedReply) {
		t.Errorf("err = %v, want ErrMalformedReply", err)
	}
}

func TestGenerateProviderError(t *testing.T) {
	provider := &fakeProvider{errs: []error{errors.New("connection refused")}}
	o := New(Options{Provider: provider, Scorer: scoring.NewDefault()})

	_, err := o.Generate(context.Background(), baseRecord(), models.TargetCondition)
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("err = %v, want wrapped provider error", err)
	}
}

func TestGenerateFlagsHallucinatedCondition(t *testing.T) {
	reply := `CONDITION: Två ytliga repor på ena sidan, mindre nagg vid mynningen samt en spricka i botten.`
	provider := &fakeProvider{replies: []string{reply, reply}}
	o := New(Options{Provider: provider, Scorer: scoring.NewDefault()})

	result, err := o.Generate(context.Background(), baseRecord(), models.TargetCondition)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	found := false
	for _, f := range result.Findings {
		if f.Category == models.FindingDamageType || f.Category == models.FindingLocation {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected hallucination findings for the invented crack, got %+v", result.Findings)
	}
}

func TestApplyFieldsTargetsOnlyRequestedGroup(t *testing.T) {
	rec := baseRecord()
	fields := models.FieldValues{Title: "NY TITEL", Condition: "Nytt skick."}

	got := applyFields(rec, models.TargetCondition, fields)
	if got.Title != rec.Title {
		t.Errorf("Title changed on condition target: %q", got.Title)
	}
	if got.Condition != "Nytt skick." {
		t.Errorf("Condition = %q, want %q", got.Condition, "Nytt skick.")
	}

	got = applyFields(rec, models.TargetAll, fields)
	if got.Title != "NY TITEL" || got.Condition != "Nytt skick." {
		t.Errorf("All target must overlay every present field, got %+v", got)
	}
	// Empty generated fields keep the record's values.
	if got.Description != rec.Description {
		t.Errorf("Description changed despite empty generated value: %q", got.Description)
	}
}
