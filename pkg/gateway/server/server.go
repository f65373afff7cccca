package server

import (
	"log/slog"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Shivsankar1987/deutschcoach/pkg/coach"
	"github.com/Shivsankar1987/deutschcoach/pkg/core/chat"
	"github.com/Shivsankar1987/deutschcoach/pkg/core/voice/stt"
	"github.com/Shivsankar1987/deutschcoach/pkg/core/voice/tts"
	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/config"
	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/handlers"
	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/metrics"
	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/mw"
)

type Server struct {
	cfg    config.Config
	logger *slog.Logger
	mux    *http.ServeMux

	coach   *coach.Coach
	metrics *metrics.Metrics
}

func New(cfg config.Config, logger *slog.Logger) *Server {
	client := openai.NewClient(cfg.OpenAIAPIKey)
	c := coach.New(
		coach.Config{
			MinAudioBytes:   cfg.MinAudioBytes,
			TranscribeModel: cfg.TranscribeModel,
			ChatModel:       cfg.ChatModel,
			Temperature:     cfg.Temperature,
			TTSModel:        cfg.TTSModel,
			TTSVoice:        cfg.TTSVoice,
			StrictTTS:       cfg.StrictTTS,
			UpstreamTimeout: cfg.UpstreamTimeout,
		},
		stt.NewOpenAIWithClient(client),
		chat.NewOpenAIWithClient(client),
		tts.NewOpenAIWithClient(client),
		cfg.MaxTurns,
		logger,
	)
	return NewWithCoach(cfg, logger, c)
}

// NewWithCoach wires the routes around an existing orchestrator. Tests use
// it to substitute fake collaborators.
func NewWithCoach(cfg config.Config, logger *slog.Logger, c *coach.Coach) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		mux:     http.NewServeMux(),
		coach:   c,
		metrics: metrics.New(""),
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.Handle("/healthz", handlers.HealthHandler{})
	s.mux.Handle("/readyz", handlers.ReadyHandler{Config: s.cfg})
	s.mux.Handle("/metrics", s.metrics.Handler())

	s.mux.Handle("/talk", mw.Auth(s.cfg, handlers.TalkHandler{
		Config:  s.cfg,
		Coach:   s.coach,
		Logger:  s.logger,
		Metrics: s.metrics,
	}))
	s.mux.Handle("/dictation/next", mw.Auth(s.cfg, handlers.DictationNextHandler{
		Config:  s.cfg,
		Coach:   s.coach,
		Logger:  s.logger,
		Metrics: s.metrics,
	}))
	s.mux.Handle("/reset", mw.Auth(s.cfg, handlers.ResetHandler{
		Config: s.cfg,
		Coach:  s.coach,
	}))

	s.mux.Handle("/login", handlers.LoginHandler{Config: s.cfg, Logger: s.logger})
	s.mux.Handle("/logout", handlers.LogoutHandler{})
	s.mux.Handle("/", handlers.HomeHandler{Config: s.cfg})
}

// Coach returns the orchestrator behind the routes.
func (s *Server) Coach() *coach.Coach {
	return s.coach
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = mw.CORS(s.cfg, h)
	h = mw.Recover(s.logger, h)
	h = mw.Metrics(s.metrics, h)
	h = mw.AccessLog(s.logger, h)
	h = mw.RequestID(h)
	return h
}
