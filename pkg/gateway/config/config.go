package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr string

	// OpenAI collaborator settings.
	OpenAIAPIKey    string
	TranscribeModel string
	ChatModel       string
	Temperature     float32
	TTSModel        string
	TTSVoice        string

	// Single operator credential pair gating every stateful endpoint.
	Username string
	Password string

	// CookieSecret signs the operator session token.
	CookieSecret []byte
	SessionTTL   time.Duration

	MinAudioBytes int
	MaxTurns      int
	MaxBodyBytes  int64

	// StrictTTS makes synthesis failures fail the whole turn.
	StrictTTS bool

	// CORS
	CORSAllowedOrigins map[string]struct{} // empty => disabled

	// Upstream and operational timeouts.
	UpstreamTimeout     time.Duration
	ReadHeaderTimeout   time.Duration
	ReadTimeout         time.Duration
	ShutdownGracePeriod time.Duration
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		Addr:                envOr("COACH_ADDR", ":8000"),
		OpenAIAPIKey:        strings.TrimSpace(os.Getenv("COACH_OPENAI_API_KEY")),
		TranscribeModel:     envOr("COACH_TRANSCRIBE_MODEL", "gpt-4o-mini-transcribe"),
		ChatModel:           envOr("COACH_CHAT_MODEL", "gpt-4o-mini"),
		Temperature:         float32(envFloat64Or("COACH_TEMPERATURE", 0.4)),
		TTSModel:            envOr("COACH_TTS_MODEL", "gpt-4o-mini-tts"),
		TTSVoice:            envOr("COACH_TTS_VOICE", "marin"),
		Username:            strings.TrimSpace(os.Getenv("COACH_USERNAME")),
		Password:            os.Getenv("COACH_PASSWORD"),
		CookieSecret:        []byte(strings.TrimSpace(os.Getenv("COACH_COOKIE_SECRET"))),
		SessionTTL:          envDurationOr("COACH_SESSION_TTL", 12*time.Hour),
		MinAudioBytes:       envIntOr("COACH_MIN_AUDIO_BYTES", 500),
		MaxTurns:            envIntOr("COACH_MAX_TURNS", 6),
		MaxBodyBytes:        envInt64Or("COACH_MAX_BODY_BYTES", 8<<20), // 8 MiB
		StrictTTS:           envBoolOr("COACH_STRICT_TTS", false),
		CORSAllowedOrigins:  make(map[string]struct{}),
		UpstreamTimeout:     envDurationOr("COACH_UPSTREAM_TIMEOUT", 60*time.Second),
		ReadHeaderTimeout:   envDurationOr("COACH_READ_HEADER_TIMEOUT", 10*time.Second),
		ReadTimeout:         envDurationOr("COACH_READ_TIMEOUT", 60*time.Second),
		ShutdownGracePeriod: envDurationOr("COACH_SHUTDOWN_GRACE_PERIOD", 15*time.Second),
	}

	for _, origin := range splitCSV(os.Getenv("COACH_CORS_ORIGINS")) {
		cfg.CORSAllowedOrigins[origin] = struct{}{}
	}

	if cfg.OpenAIAPIKey == "" {
		return Config{}, fmt.Errorf("COACH_OPENAI_API_KEY must be set")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return Config{}, fmt.Errorf("COACH_USERNAME and COACH_PASSWORD must be set")
	}
	if len(cfg.CookieSecret) < 16 {
		return Config{}, fmt.Errorf("COACH_COOKIE_SECRET must be at least 16 bytes")
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("COACH_SESSION_TTL must be > 0")
	}
	if cfg.MinAudioBytes <= 0 {
		return Config{}, fmt.Errorf("COACH_MIN_AUDIO_BYTES must be > 0")
	}
	if cfg.MaxTurns <= 0 {
		return Config{}, fmt.Errorf("COACH_MAX_TURNS must be > 0")
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("COACH_MAX_BODY_BYTES must be > 0")
	}
	if cfg.UpstreamTimeout <= 0 {
		return Config{}, fmt.Errorf("COACH_UPSTREAM_TIMEOUT must be > 0")
	}
	if cfg.ReadHeaderTimeout <= 0 || cfg.ReadTimeout <= 0 {
		return Config{}, fmt.Errorf("COACH_READ_HEADER_TIMEOUT and COACH_READ_TIMEOUT must be > 0")
	}
	if cfg.ShutdownGracePeriod <= 0 {
		return Config{}, fmt.Errorf("COACH_SHUTDOWN_GRACE_PERIOD must be > 0")
	}

	return cfg, nil
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt64Or(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func envIntOr(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func envFloat64Or(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return n
}

func envBoolOr(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return def
	}
}

func envDurationOr(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
