package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/config"
	gatewayserver "github.com/Shivsankar1987/deutschcoach/pkg/gateway/server"
)

func testConfig() config.Config {
	return config.Config{
		Addr:                "127.0.0.1:0",
		OpenAIAPIKey:        "sk-test",
		Username:            "lehrer",
		Password:            "geheim",
		CookieSecret:        []byte("0123456789abcdef"),
		SessionTTL:          time.Hour,
		MinAudioBytes:       500,
		MaxTurns:            6,
		MaxBodyBytes:        8 << 20,
		UpstreamTimeout:     time.Minute,
		ReadHeaderTimeout:   10 * time.Second,
		ReadTimeout:         time.Minute,
		ShutdownGracePeriod: 5 * time.Second,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
}

func TestBuildHTTPServer(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	srv := buildHTTPServer(cfg, http.NotFoundHandler())

	if srv.Addr != cfg.Addr {
		t.Fatalf("Addr=%q", srv.Addr)
	}
	if srv.ReadHeaderTimeout != cfg.ReadHeaderTimeout {
		t.Fatalf("ReadHeaderTimeout=%v", srv.ReadHeaderTimeout)
	}
	if srv.ReadTimeout != cfg.ReadTimeout {
		t.Fatalf("ReadTimeout=%v", srv.ReadTimeout)
	}
	if srv.Handler == nil {
		t.Fatalf("no handler")
	}
}

func TestRunServer_MissingDeps(t *testing.T) {
	t.Parallel()
	err := runServer(context.Background(), discardLogger(), serverDeps{})
	if err == nil {
		t.Fatalf("expected error for empty deps")
	}
}

func TestRunServer_ConfigError(t *testing.T) {
	t.Parallel()
	deps := defaultServerDeps()
	deps.loadConfig = func() (config.Config, error) {
		return config.Config{}, errors.New("COACH_OPENAI_API_KEY must be set")
	}

	err := runServer(context.Background(), discardLogger(), deps)
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("err=%v", err)
	}
}

func TestRunServer_SignalShutdown(t *testing.T) {
	t.Parallel()
	var captured chan<- os.Signal
	deps := serverDeps{
		loadConfig: func() (config.Config, error) { return testConfig(), nil },
		newServer: func(cfg config.Config, logger *slog.Logger) *gatewayserver.Server {
			return gatewayserver.New(cfg, logger)
		},
		signalNotify: func(c chan<- os.Signal, sig ...os.Signal) {
			captured = c
		},
		signalStop: func(chan<- os.Signal) {},
	}

	done := make(chan error, 1)
	go func() {
		done <- runServer(context.Background(), discardLogger(), deps)
	}()

	// Give the listener a moment, then ask it to stop.
	time.Sleep(100 * time.Millisecond)
	if captured == nil {
		t.Fatalf("signal channel never registered")
	}
	captured <- syscall.SIGTERM

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runServer: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("runServer did not stop after signal")
	}
}

func TestRunMain_ConfigFailureExitsNonZero(t *testing.T) {
	deps := defaultServerDeps()
	deps.loadConfig = func() (config.Config, error) {
		return config.Config{}, errors.New("COACH_OPENAI_API_KEY must be set")
	}

	var stderr bytes.Buffer
	code := runMain(context.Background(), &stderr, deps)

	if code != 1 {
		t.Fatalf("exit code=%d", code)
	}
	if !strings.Contains(stderr.String(), "COACH_OPENAI_API_KEY") {
		t.Fatalf("stderr=%q", stderr.String())
	}
}
