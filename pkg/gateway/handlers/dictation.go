package handlers

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Shivsankar1987/deutschcoach/pkg/coach"
	"github.com/Shivsankar1987/deutschcoach/pkg/core"
	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/config"
	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/metrics"
	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/mw"
)

type DictationNextHandler struct {
	Config  config.Config
	Coach   *coach.Coach
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

type dictationNextRequest struct {
	SessionID string `json:"session_id"`
}

type dictationNextResponse struct {
	SessionID  string `json:"session_id"`
	Done       bool   `json:"done"`
	Status     string `json:"status"`
	AudioB64   string `json:"audio_b64"`
	RevealText string `json:"reveal_text"`
}

func (h DictationNextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqID, _ := mw.RequestIDFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxBodyBytes)
	var req dictationNextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, reqID, core.NewInvalidRequestError("invalid JSON body"))
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		writeErr(w, reqID, core.NewInvalidRequestErrorWithParam("session_id is required", "session_id"))
		return
	}

	step, err := h.Coach.DictationNext(r.Context(), sessionID)
	if err != nil {
		writeErr(w, reqID, err)
		return
	}

	if h.Metrics != nil && step.RevealText != "" {
		h.Metrics.DictationAdvancesTotal.Inc()
	}

	writeJSON(w, http.StatusOK, dictationNextResponse{
		SessionID:  step.SessionID,
		Done:       step.Done,
		Status:     step.Status,
		AudioB64:   base64.StdEncoding.EncodeToString(step.Audio),
		RevealText: step.RevealText,
	})
}
