package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var testSecret = []byte("0123456789abcdef")

func TestCheckCredentials(t *testing.T) {
	t.Parallel()
	if !CheckCredentials("lehrer", "geheim", "lehrer", "geheim") {
		t.Fatalf("matching pair rejected")
	}
	if CheckCredentials("lehrer", "geheim", "lehrer", "falsch") {
		t.Fatalf("wrong password accepted")
	}
	if CheckCredentials("lehrer", "geheim", "wer", "geheim") {
		t.Fatalf("wrong username accepted")
	}
}

func TestIssueAndVerifyToken(t *testing.T) {
	t.Parallel()
	token, err := IssueToken(testSecret, "lehrer", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	username, err := VerifyToken(testSecret, token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if username != "lehrer" {
		t.Fatalf("username=%q", username)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	t.Parallel()
	token, err := IssueToken(testSecret, "lehrer", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := VerifyToken([]byte("another-secret-value"), token); err == nil {
		t.Fatalf("token verified with wrong secret")
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()
	token, err := IssueToken(testSecret, "lehrer", -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := VerifyToken(testSecret, token); err == nil {
		t.Fatalf("expired token verified")
	}
}

func TestFromRequest(t *testing.T) {
	t.Parallel()
	token, err := IssueToken(testSecret, "lehrer", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	p, ok := FromRequest(r, testSecret)
	if !ok || p.Username != "lehrer" {
		t.Fatalf("p=%+v ok=%v", p, ok)
	}

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := FromRequest(bare, testSecret); ok {
		t.Fatalf("principal resolved without cookie")
	}

	garbage := httptest.NewRequest(http.MethodGet, "/", nil)
	garbage.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-token"})
	if _, ok := FromRequest(garbage, testSecret); ok {
		t.Fatalf("principal resolved from garbage token")
	}
}

func TestSetAndClearCookie(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	SetCookie(rec, "tok", time.Hour)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies=%d", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName || c.Value != "tok" || !c.HttpOnly || c.MaxAge <= 0 {
		t.Fatalf("cookie=%+v", c)
	}

	rec = httptest.NewRecorder()
	ClearCookie(rec)
	c = rec.Result().Cookies()[0]
	if c.Value != "" || c.MaxAge != -1 {
		t.Fatalf("clear cookie=%+v", c)
	}
}

func TestPrincipalContext(t *testing.T) {
	t.Parallel()
	ctx := WithPrincipal(t.Context(), &Principal{Username: "lehrer"})
	p, ok := PrincipalFrom(ctx)
	if !ok || p.Username != "lehrer" {
		t.Fatalf("p=%+v ok=%v", p, ok)
	}
	if _, ok := PrincipalFrom(t.Context()); ok {
		t.Fatalf("principal resolved from empty context")
	}
}
