package assistant

import (
	"encoding/json"
	"io"
	"net/http"

	"studybuddy/internal/validate"

	"github.com/sirupsen/logrus"
)

const (
	errMethodNotAllowed = "Method not allowed"
	errNoPrompt         = "No prompt provided"
	errRequestFailed    = "AI request failed"

	maxAskBody = 1 << 20
)

type AskRequest struct {
	Prompt string `json:"prompt" validate:"notblank"`
}

type AskResponse struct {
	Reply string `json:"reply"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler serves POST /api/ask. The provider credential stays inside the
// Completer and never reaches the response.
type Handler struct {
	Completer Completer
	Log       logrus.FieldLogger
}

func NewHandler(c Completer, log logrus.FieldLogger) *Handler {
	return &Handler{Completer: c, Log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: errMethodNotAllowed})
		return
	}

	var req AskRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxAskBody))
	if err != nil || json.Unmarshal(body, &req) != nil || validate.Struct(req) != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: errNoPrompt})
		return
	}
	if h.Completer == nil {
		h.logger().Error("ask: no completion provider configured")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: errRequestFailed})
		return
	}

	reply, err := h.Completer.Complete(r.Context(), req.Prompt)
	if err != nil {
		h.logger().WithError(err).Error("ask: completion failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: errRequestFailed})
		return
	}
	writeJSON(w, http.StatusOK, AskResponse{Reply: reply})
}

func (h *Handler) logger() logrus.FieldLogger {
	if h.Log != nil {
		return h.Log
	}
	return discardLogger()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
