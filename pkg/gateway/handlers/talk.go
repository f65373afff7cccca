package handlers

import (
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Shivsankar1987/deutschcoach/pkg/coach"
	"github.com/Shivsankar1987/deutschcoach/pkg/core"
	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/config"
	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/metrics"
	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/mw"
)

type TalkHandler struct {
	Config  config.Config
	Coach   *coach.Coach
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

type talkResponse struct {
	SessionID  string `json:"session_id"`
	Transcript string `json:"transcript"`
	Reply      string `json:"reply"`
	AudioB64   string `json:"audio_b64"`
}

type dictationReadyResponse struct {
	SessionID      string `json:"session_id"`
	DictationReady bool   `json:"dictation_ready"`
	Status         string `json:"status"`
	Transcript     string `json:"transcript"`
}

func (h TalkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqID, _ := mw.RequestIDFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxBodyBytes)
	if err := r.ParseMultipartForm(h.Config.MaxBodyBytes); err != nil {
		writeErr(w, reqID, core.NewInvalidRequestError("failed to parse multipart form"))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeErr(w, reqID, core.NewInvalidRequestErrorWithParam("audio file is required", "audio"))
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		writeErr(w, reqID, core.NewInvalidRequestError("failed to read audio upload"))
		return
	}

	mode := r.FormValue("mode")
	result, err := h.Coach.Talk(r.Context(), coach.TalkRequest{
		SessionID: strings.TrimSpace(r.FormValue("session_id")),
		Mode:      mode,
		Audio:     audio,
		Filename:  header.Filename,
	})
	if err != nil {
		if h.Metrics != nil {
			h.Metrics.TurnsTotal.WithLabelValues(string(coach.ParseMode(mode)), "error").Inc()
		}
		writeErr(w, reqID, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.TurnsTotal.WithLabelValues(string(coach.ParseMode(mode)), "ok").Inc()
		if result.DictationReady {
			h.Metrics.DictationStartsTotal.Inc()
		}
	}

	if result.DictationReady {
		writeJSON(w, http.StatusOK, dictationReadyResponse{
			SessionID:      result.SessionID,
			DictationReady: true,
			Status:         result.Status,
			Transcript:     result.Transcript,
		})
		return
	}

	writeJSON(w, http.StatusOK, talkResponse{
		SessionID:  result.SessionID,
		Transcript: result.Transcript,
		Reply:      result.Reply,
		AudioB64:   base64.StdEncoding.EncodeToString(result.Audio),
	})
}
