// Package api exposes the classification and synthesis pipeline over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/solsticehq/lumen/internal/common"
	"github.com/solsticehq/lumen/internal/model"
	"github.com/solsticehq/lumen/internal/service"
	"github.com/solsticehq/lumen/internal/storage"
	"github.com/solsticehq/lumen/internal/synthesis"
)

// Handler implements the API handlers.
type Handler struct {
	classifier  service.Classifier
	extractor   service.Extractor
	detector    service.SignalDetector
	synthesizer *synthesis.Synthesizer
	store       service.Storage
	version     string
}

// NewHandler creates a new Handler.
func NewHandler(
	classifier service.Classifier,
	extractor service.Extractor,
	detector service.SignalDetector,
	synthesizer *synthesis.Synthesizer,
	store service.Storage,
	version string,
) *Handler {
	return &Handler{
		classifier:  classifier,
		extractor:   extractor,
		detector:    detector,
		synthesizer: synthesizer,
		store:       store,
		version:     version,
	}
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	SchemaVersion int    `json:"schema_version"`
}

// Health reports service health, including database reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		slog.Error("Health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:        "unhealthy",
			Version:       h.version,
			SchemaVersion: storage.ExpectedSchemaVersion,
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		Version:       h.version,
		SchemaVersion: storage.ExpectedSchemaVersion,
	})
}

// TextRequest is the shared request body for classify and extract.
type TextRequest struct {
	Text string `json:"text"`
}

// Classify handles POST /api/v1/classify.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.classifier.Classify(req.Text))
}

// Extract handles POST /api/v1/extract.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.extractor.Extract(req.Text))
}

// SynthesizeRequest is the POST /synthesize body.
type SynthesizeRequest struct {
	UserID string     `json:"user_id"`
	Tier   model.Tier `json:"tier"`
	Text   string     `json:"text"`
}

// SynthesizeResponse reports what synthesis created.
type SynthesizeResponse struct {
	Goal           *model.Goal           `json:"goal,omitempty"`
	Message        string                `json:"message,omitempty"`
	Classification model.DetectionResult `json:"classification"`
	Errors         []string              `json:"errors,omitempty"`
	Widgets        []model.Widget        `json:"widgets,omitempty"`
	Reminders      []model.Reminder      `json:"reminders,omitempty"`
	Success        bool                  `json:"success"`
}

// Synthesize handles POST /api/v1/synthesize: classify, quota-check, then
// persist. Quota violations surface as 422 problem documents.
func (h *Handler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		WriteProblem(w, r, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.Tier == "" {
		req.Tier = model.TierFree
	}

	det := h.classifier.Classify(req.Text)

	result, err := h.synthesizer.SynthesizeChecked(r.Context(), req.UserID, req.Tier, det)
	if err != nil {
		if errors.Is(err, common.ErrQuotaExceeded) {
			WriteProblem(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("Synthesis failed", "error", err, "user_id", req.UserID)
		WriteProblem(w, r, http.StatusInternalServerError, "synthesis failed")
		return
	}

	writeJSON(w, http.StatusOK, SynthesizeResponse{
		Classification: det,
		Success:        result.Success,
		Goal:           result.Goal,
		Widgets:        result.Widgets,
		Reminders:      result.Reminders,
		Message:        result.Message,
		Errors:         result.Errors,
	})
}

// SuggestionsRequest is the POST /suggestions body.
type SuggestionsRequest struct {
	Text    string              `json:"text"`
	Context model.SignalContext `json:"context"`
}

// SuggestionsResponse wraps the detector output.
type SuggestionsResponse struct {
	Suggestions []model.Suggestion `json:"suggestions"`
}

// Suggestions handles POST /api/v1/suggestions.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	var req SuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SuggestionsResponse{
		Suggestions: h.detector.Detect(req.Text, req.Context),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
