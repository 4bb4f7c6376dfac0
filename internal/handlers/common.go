package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/auktionera/cataloger/internal/gate"
	"github.com/auktionera/cataloger/internal/models"
	"github.com/auktionera/cataloger/internal/scoring"
	"github.com/auktionera/cataloger/internal/storage"
)

type Handler struct {
	sessionStore *storage.SessionStore
	scorer       *scoring.Scorer
	gate         *gate.Gate
}

func New(cfg scoring.Config) *Handler {
	scorer := scoring.New(cfg)
	return &Handler{
		sessionStore: storage.New(),
		scorer:       scorer,
		gate:         gate.New(scorer, gate.DefaultFloors()),
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*models.CatalogSession, bool) {
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}
