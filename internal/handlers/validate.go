package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/auktionera/cataloger/internal/generation"
	"github.com/auktionera/cataloger/internal/models"
)

// ScoreRequest carries one record snapshot to validate.
type ScoreRequest struct {
	Record models.CatalogRecord `json:"record"`
}

// HandleScore runs the rule-based scorer on a record snapshot.
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	result := h.scorer.Score(req.Record)
	slog.Info("Scored record", "score", result.Score, "warnings", len(result.Warnings))
	h.writeJSON(w, result)
}

// AssessRequest carries a record, the generation target and the caller's
// ignored-artists exclusion set.
type AssessRequest struct {
	Record         models.CatalogRecord `json:"record"`
	Field          models.FieldTarget   `json:"field"`
	IgnoredArtists []string             `json:"ignored_artists,omitempty"`
}

// HandleAssess runs the sparse-data gate for a record and target field.
func (h *Handler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Field == "" {
		req.Field = models.TargetAll
	}

	ignored := make(map[string]bool, len(req.IgnoredArtists))
	for _, artist := range req.IgnoredArtists {
		ignored[strings.ToLower(strings.TrimSpace(artist))] = true
	}

	decision := h.gate.Assess(req.Record, req.Field, ignored)
	slog.Info("Assessed record", "field", req.Field, "needs_more_info", decision.NeedsMoreInfo, "quality_score", decision.QualityScore)
	h.writeJSON(w, decision)
}

// GenerateRequest asks for generated catalog text for one field group.
type GenerateRequest struct {
	SessionID      string               `json:"session_id,omitempty"`
	Record         models.CatalogRecord `json:"record"`
	Field          models.FieldTarget   `json:"field"`
	Provider       string               `json:"provider,omitempty"`
	Model          string               `json:"model,omitempty"`
	IgnoredArtists []string             `json:"ignored_artists,omitempty"`
}

// GenerateResponse is the full outcome: the gate decision and, if generation
// was allowed, the validated generation result.
type GenerateResponse struct {
	Gate   models.GateDecision `json:"gate"`
	Result *generation.Result  `json:"result,omitempty"`
}

// HandleGenerate gates, generates and validates in one request. When the
// gate refuses, no provider call is made and the decision is returned so the
// UI can prompt the cataloger for more input.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Field == "" {
		req.Field = models.TargetAll
	}

	ignored := make(map[string]bool, len(req.IgnoredArtists))
	for _, artist := range req.IgnoredArtists {
		ignored[strings.ToLower(strings.TrimSpace(artist))] = true
	}

	decision := h.gate.Assess(req.Record, req.Field, ignored)
	if decision.NeedsMoreInfo {
		slog.Info("Gate refused generation", "field", req.Field, "codes", len(decision.MissingInfoCodes))
		h.writeJSON(w, GenerateResponse{Gate: decision})
		return
	}

	provider, providerName, err := generation.NewProvider(req.Provider)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	model := req.Model
	if model == "" {
		model = generation.DefaultModel(providerName)
	}

	orch := generation.New(generation.Options{
		Provider:    provider,
		Scorer:      h.scorer,
		Model:       model,
		Temperature: 0.1,
		CallTimeout: 2 * time.Minute,
	})

	result, err := orch.Generate(r.Context(), req.Record, req.Field)
	if err != nil {
		if errors.Is(err, generation.ErrMalformedReply) {
			h.writeError(w, "Generation reply could not be parsed: "+err.Error(), http.StatusBadGateway)
			return
		}
		h.writeError(w, "Generation failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	if req.SessionID != "" {
		if session, exists := h.sessionStore.Get(req.SessionID); exists {
			session.Generated = &result.Fields
			session.Score = &result.Score
			session.Findings = result.Findings
			session.Provider = providerName
			session.Model = model
			session.ModifiedAt = time.Now()
			h.sessionStore.Set(req.SessionID, session)
		}
	}

	slog.Info("Generated catalog text", "provider", providerName, "model", model,
		"field", req.Field, "score", result.Score.Score, "attempts", result.Attempts, "corrected", result.Corrected)
	h.writeJSON(w, GenerateResponse{Gate: decision, Result: &result})
}
