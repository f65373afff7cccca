package apierror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Shivsankar1987/deutschcoach/pkg/core"
)

func TestFromError_Nil(t *testing.T) {
	t.Parallel()
	apiErr, status := FromError(nil, "req_1")
	if apiErr != nil || status != http.StatusOK {
		t.Fatalf("apiErr=%v status=%d", apiErr, status)
	}
}

func TestFromError_CoreErrors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		err    error
		status int
		typ    core.ErrorType
	}{
		{"invalid request", core.NewInvalidRequestError("bad audio"), http.StatusBadRequest, core.ErrInvalidRequest},
		{"authentication", core.NewAuthenticationError("not logged in"), http.StatusUnauthorized, core.ErrAuthentication},
		{"not found", core.NewNotFoundError("no such session"), http.StatusNotFound, core.ErrNotFound},
		{"upstream", core.NewUpstreamError("openai", errors.New("boom")), http.StatusBadGateway, core.ErrUpstream},
		{"api", core.NewAPIError("broken"), http.StatusInternalServerError, core.ErrAPI},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apiErr, status := FromError(tc.err, "req_2")
			if status != tc.status {
				t.Fatalf("status=%d, want %d", status, tc.status)
			}
			if apiErr.Type != tc.typ {
				t.Fatalf("type=%q, want %q", apiErr.Type, tc.typ)
			}
			if apiErr.RequestID != "req_2" {
				t.Fatalf("request id=%q", apiErr.RequestID)
			}
		})
	}
}

func TestFromError_WrappedCoreError(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("handler: %w", core.NewInvalidRequestError("bad audio"))
	apiErr, status := FromError(wrapped, "req_3")
	if status != http.StatusBadRequest || apiErr.Type != core.ErrInvalidRequest {
		t.Fatalf("status=%d type=%q", status, apiErr.Type)
	}
}

func TestFromError_DoesNotMutateOriginal(t *testing.T) {
	t.Parallel()
	orig := core.NewInvalidRequestError("bad audio")
	FromError(orig, "req_4")
	if orig.RequestID != "" {
		t.Fatalf("original error mutated: %+v", orig)
	}
}

func TestFromError_ContextErrors(t *testing.T) {
	t.Parallel()
	apiErr, status := FromError(context.DeadlineExceeded, "req_5")
	if status != http.StatusGatewayTimeout || apiErr.Code != "timeout" {
		t.Fatalf("status=%d code=%q", status, apiErr.Code)
	}

	apiErr, status = FromError(context.Canceled, "req_5")
	if status != http.StatusRequestTimeout || apiErr.Code != "cancelled" {
		t.Fatalf("status=%d code=%q", status, apiErr.Code)
	}
}

func TestFromError_UnknownErrorIsOpaque(t *testing.T) {
	t.Parallel()
	apiErr, status := FromError(errors.New("secret detail"), "req_6")
	if status != http.StatusInternalServerError {
		t.Fatalf("status=%d", status)
	}
	if apiErr.Message != "internal error" {
		t.Fatalf("message=%q leaked detail", apiErr.Message)
	}
}
