package handlers

import (
	"net/http"

	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/config"
)

type HealthHandler struct{}

func (h HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

type ReadyHandler struct {
	Config config.Config
}

func (h ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type readyResp struct {
		OK     bool     `json:"ok"`
		Issues []string `json:"issues,omitempty"`
	}

	issues := make([]string, 0, 4)

	if h.Config.OpenAIAPIKey == "" {
		issues = append(issues, "openai api key not configured")
	}
	if h.Config.Username == "" || h.Config.Password == "" {
		issues = append(issues, "operator credentials not configured")
	}
	if len(h.Config.CookieSecret) < 16 {
		issues = append(issues, "cookie secret too short")
	}
	if h.Config.MinAudioBytes <= 0 {
		issues = append(issues, "min_audio_bytes must be > 0")
	}
	if h.Config.MaxTurns <= 0 {
		issues = append(issues, "max_turns must be > 0")
	}
	if h.Config.MaxBodyBytes <= 0 {
		issues = append(issues, "max_body_bytes must be > 0")
	}

	ok := len(issues) == 0
	status := http.StatusOK
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, readyResp{OK: ok, Issues: issues})
}
