package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Shivsankar1987/deutschcoach/pkg/coach"
	"github.com/Shivsankar1987/deutschcoach/pkg/core"
	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/config"
	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/mw"
)

type ResetHandler struct {
	Config config.Config
	Coach  *coach.Coach
}

type resetRequest struct {
	SessionID string `json:"session_id"`
}

func (h ResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqID, _ := mw.RequestIDFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxBodyBytes)
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, reqID, core.NewInvalidRequestError("invalid JSON body"))
		return
	}

	// Resetting an unknown or empty id is a no-op, not an error.
	if id := strings.TrimSpace(req.SessionID); id != "" {
		h.Coach.Reset(id)
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
