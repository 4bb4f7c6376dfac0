// Package generation sequences catalog text generation against an LLM
// provider and validates the result. One generation call is made; if the
// validated score falls below the correction threshold, exactly one more call
// is issued with a correction instruction, and its result is accepted
// unconditionally. The single-retry bound is a hard design decision capping
// cost and latency, not a tunable default. Transport-level retries on
// transient provider failure belong to the caller, never here.
package generation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/auktionera/cataloger/internal/gemini"
	"github.com/auktionera/cataloger/internal/halluc"
	"github.com/auktionera/cataloger/internal/models"
	"github.com/auktionera/cataloger/internal/ollama"
	"github.com/auktionera/cataloger/internal/openai"
	"github.com/auktionera/cataloger/internal/providers"
	"github.com/auktionera/cataloger/internal/scoring"
)

// DefaultCorrectionThreshold is the score below which one correction retry is
// issued.
const DefaultCorrectionThreshold = 70

// Options configures an Orchestrator.
type Options struct {
	Provider    providers.Provider
	Scorer      *scoring.Scorer
	Model       string
	Temperature float64
	// Threshold below which the correction retry fires. Zero means the
	// default of 70.
	Threshold int
	// CallTimeout bounds each individual provider call. Zero means no bound
	// beyond the caller's context.
	CallTimeout time.Duration
}

// Result is the outcome of one generate-and-validate sequence. When a
// correction was triggered, Fields always corresponds to the second call's
// output as a whole, never a blend of the two attempts.
type Result struct {
	Fields    models.FieldValues            `json:"fields"`
	Score     models.ScoreResult            `json:"score"`
	Findings  []models.HallucinationFinding `json:"findings,omitempty"`
	Attempts  int                           `json:"attempts"`
	Corrected bool                          `json:"corrected"`
}

// Orchestrator drives the bounded generation-and-correction cycle.
type Orchestrator struct {
	opts Options
}

// New returns an orchestrator for the given options.
func New(opts Options) *Orchestrator {
	if opts.Threshold == 0 {
		opts.Threshold = DefaultCorrectionThreshold
	}
	if opts.Scorer == nil {
		opts.Scorer = scoring.NewDefault()
	}
	return &Orchestrator{opts: opts}
}

// Generate produces catalog text for the targeted field(s) of the record,
// validates it, and runs at most one correction retry. At most two provider
// calls are ever made; they run strictly sequentially.
func (o *Orchestrator) Generate(ctx context.Context, rec models.CatalogRecord, target models.FieldTarget) (Result, error) {
	system := buildSystemContext()
	userPrompt := buildUserPrompt(rec, target)

	raw, err := o.call(ctx, providers.Config{
		Model:       o.opts.Model,
		Temperature: o.opts.Temperature,
		System:      system,
		Prompt:      userPrompt,
	})
	if err != nil {
		return Result{}, err
	}

	fields, err := ParseReply(raw)
	if err != nil {
		return Result{}, fmt.Errorf("first generation call: %w", err)
	}

	score, findings := o.validate(rec, target, fields)
	if score.Score >= o.opts.Threshold {
		return Result{Fields: fields, Score: score, Findings: findings, Attempts: 1}, nil
	}

	slog.Info("Generated text below threshold, requesting correction",
		"score", score.Score, "threshold", o.opts.Threshold, "warnings", len(score.Warnings), "findings", len(findings))

	raw2, err := o.call(ctx, providers.Config{
		Model:       o.opts.Model,
		Temperature: o.opts.Temperature,
		System:      system,
		Prompt:      buildCorrectionPrompt(score, findings),
		History: []providers.Message{
			{Role: "user", Content: userPrompt},
			{Role: "assistant", Content: raw},
		},
	})
	if err != nil {
		return Result{}, err
	}

	corrected, err := ParseReply(raw2)
	if err != nil {
		return Result{}, fmt.Errorf("correction call: %w", err)
	}

	// The second result is final regardless of its score. The rescore is
	// reported so the cataloger still sees remaining warnings.
	score2, findings2 := o.validate(rec, target, corrected)
	return Result{Fields: corrected, Score: score2, Findings: findings2, Attempts: 2, Corrected: true}, nil
}

func (o *Orchestrator) call(ctx context.Context, cfg providers.Config) (string, error) {
	if o.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.CallTimeout)
		defer cancel()
	}
	raw, err := o.opts.Provider.GenerateText(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("generation call failed: %w", err)
	}
	return raw, nil
}

// validate scores the record with the generated fields applied and, for
// condition text, diffs the candidate against the original.
func (o *Orchestrator) validate(rec models.CatalogRecord, target models.FieldTarget, fields models.FieldValues) (models.ScoreResult, []models.HallucinationFinding) {
	updated := applyFields(rec, target, fields)
	score := o.opts.Scorer.Score(updated)

	var findings []models.HallucinationFinding
	if (target == models.TargetCondition || target == models.TargetAll) && fields.Condition != "" {
		findings = halluc.Diff(rec.Condition, fields.Condition)
	}
	return score, findings
}

// applyFields overlays the generated values onto a copy of the record. Only
// the targeted field group is replaced; the record itself is never mutated.
func applyFields(rec models.CatalogRecord, target models.FieldTarget, fields models.FieldValues) models.CatalogRecord {
	switch target {
	case models.TargetTitle:
		if fields.Title != "" {
			rec.Title = fields.Title
		}
	case models.TargetDescription:
		if fields.Description != "" {
			rec.Description = fields.Description
		}
	case models.TargetCondition:
		if fields.Condition != "" {
			rec.Condition = fields.Condition
		}
	case models.TargetKeywords:
		if fields.Keywords != "" {
			rec.Keywords = fields.Keywords
		}
	case models.TargetAll:
		if fields.Title != "" {
			rec.Title = fields.Title
		}
		if fields.Description != "" {
			rec.Description = fields.Description
		}
		if fields.Condition != "" {
			rec.Condition = fields.Condition
		}
		if fields.Keywords != "" {
			rec.Keywords = fields.Keywords
		}
	}
	return rec
}

// NewProvider resolves a provider by name, falling back to the
// CATALOGING_PROVIDER environment variable and then to ollama.
func NewProvider(name string) (providers.Provider, string, error) {
	if name == "" {
		name = os.Getenv("CATALOGING_PROVIDER")
	}
	if name == "" {
		name = "ollama"
	}
	switch name {
	case "gemini":
		return gemini.New(), name, nil
	case "openai":
		return openai.New(), name, nil
	case "ollama":
		return ollama.New(), name, nil
	default:
		return nil, name, fmt.Errorf("unsupported provider: %s", name)
	}
}

// DefaultModel returns the model for a provider when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case "gemini":
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-1.5-flash"
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case "ollama":
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "mistral-small3.2:24b"
	default:
		return ""
	}
}
