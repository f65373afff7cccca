package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("COACH_OPENAI_API_KEY", "sk-test")
	t.Setenv("COACH_USERNAME", "lehrer")
	t.Setenv("COACH_PASSWORD", "geheim")
	t.Setenv("COACH_COOKIE_SECRET", "0123456789abcdef")
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Addr != ":8000" {
		t.Fatalf("Addr=%q", cfg.Addr)
	}
	if cfg.TranscribeModel != "gpt-4o-mini-transcribe" || cfg.ChatModel != "gpt-4o-mini" {
		t.Fatalf("models=%q/%q", cfg.TranscribeModel, cfg.ChatModel)
	}
	if cfg.TTSModel != "gpt-4o-mini-tts" || cfg.TTSVoice != "marin" {
		t.Fatalf("tts=%q/%q", cfg.TTSModel, cfg.TTSVoice)
	}
	if cfg.Temperature != 0.4 {
		t.Fatalf("Temperature=%v", cfg.Temperature)
	}
	if cfg.MinAudioBytes != 500 || cfg.MaxTurns != 6 {
		t.Fatalf("MinAudioBytes=%d MaxTurns=%d", cfg.MinAudioBytes, cfg.MaxTurns)
	}
	if cfg.MaxBodyBytes != 8<<20 {
		t.Fatalf("MaxBodyBytes=%d", cfg.MaxBodyBytes)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("SessionTTL=%v", cfg.SessionTTL)
	}
	if cfg.UpstreamTimeout != 60*time.Second {
		t.Fatalf("UpstreamTimeout=%v", cfg.UpstreamTimeout)
	}
	if cfg.StrictTTS {
		t.Fatalf("StrictTTS default should be false")
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("CORSAllowedOrigins=%v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COACH_ADDR", "127.0.0.1:9000")
	t.Setenv("COACH_MAX_TURNS", "3")
	t.Setenv("COACH_STRICT_TTS", "yes")
	t.Setenv("COACH_UPSTREAM_TIMEOUT", "5s")
	t.Setenv("COACH_CORS_ORIGINS", " https://a.example , https://b.example ,")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Fatalf("Addr=%q", cfg.Addr)
	}
	if cfg.MaxTurns != 3 {
		t.Fatalf("MaxTurns=%d", cfg.MaxTurns)
	}
	if !cfg.StrictTTS {
		t.Fatalf("StrictTTS not set")
	}
	if cfg.UpstreamTimeout != 5*time.Second {
		t.Fatalf("UpstreamTimeout=%v", cfg.UpstreamTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("CORSAllowedOrigins=%v", cfg.CORSAllowedOrigins)
	}
	if _, ok := cfg.CORSAllowedOrigins["https://a.example"]; !ok {
		t.Fatalf("origin not trimmed: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadFromEnv_MalformedValuesFallBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COACH_MAX_TURNS", "many")
	t.Setenv("COACH_STRICT_TTS", "maybe")
	t.Setenv("COACH_UPSTREAM_TIMEOUT", "soon")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.MaxTurns != 6 || cfg.StrictTTS || cfg.UpstreamTimeout != 60*time.Second {
		t.Fatalf("fallbacks not applied: %+v", cfg)
	}
}

func TestLoadFromEnv_Validation(t *testing.T) {
	cases := []struct {
		name string
		set  func(t *testing.T)
		want string
	}{
		{"missing api key", func(t *testing.T) { t.Setenv("COACH_OPENAI_API_KEY", "") }, "COACH_OPENAI_API_KEY"},
		{"missing username", func(t *testing.T) { t.Setenv("COACH_USERNAME", "") }, "COACH_USERNAME"},
		{"missing password", func(t *testing.T) { t.Setenv("COACH_PASSWORD", "") }, "COACH_USERNAME"},
		{"short cookie secret", func(t *testing.T) { t.Setenv("COACH_COOKIE_SECRET", "short") }, "COACH_COOKIE_SECRET"},
		{"zero session ttl", func(t *testing.T) { t.Setenv("COACH_SESSION_TTL", "0s") }, "COACH_SESSION_TTL"},
		{"negative min audio", func(t *testing.T) { t.Setenv("COACH_MIN_AUDIO_BYTES", "-1") }, "COACH_MIN_AUDIO_BYTES"},
		{"zero max turns", func(t *testing.T) { t.Setenv("COACH_MAX_TURNS", "0") }, "COACH_MAX_TURNS"},
		{"zero body limit", func(t *testing.T) { t.Setenv("COACH_MAX_BODY_BYTES", "0") }, "COACH_MAX_BODY_BYTES"},
		{"zero upstream timeout", func(t *testing.T) { t.Setenv("COACH_UPSTREAM_TIMEOUT", "0s") }, "COACH_UPSTREAM_TIMEOUT"},
		{"zero grace period", func(t *testing.T) { t.Setenv("COACH_SHUTDOWN_GRACE_PERIOD", "0s") }, "COACH_SHUTDOWN_GRACE_PERIOD"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			tc.set(t)
			_, err := LoadFromEnv()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err=%v, want mention of %s", err, tc.want)
			}
		})
	}
}
