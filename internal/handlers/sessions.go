package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/auktionera/cataloger/internal/models"
)

func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.sessionStore.List())
	case "POST":
		var req struct {
			Record models.CatalogRecord `json:"record"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}

		session := h.sessionStore.Create(req.Record)

		// Score on creation so the UI has warnings to show immediately.
		score := h.scorer.Score(req.Record)
		session.Score = &score

		h.writeJSON(w, session)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimPrefix(r.URL.Path, "/api/sessions/")

	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, session)
	case "PUT":
		var updatedSession models.CatalogSession
		if err := json.NewDecoder(r.Body).Decode(&updatedSession); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		updatedSession.ID = sessionID
		updatedSession.ModifiedAt = time.Now()

		// Re-validate whenever the record changes.
		score := h.scorer.Score(updatedSession.Record)
		updatedSession.Score = &score

		h.sessionStore.Set(sessionID, &updatedSession)
		h.writeJSON(w, updatedSession)
	case "DELETE":
		h.sessionStore.Delete(sessionID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
