// Package auth implements the operator login: a single credential pair
// and a signed session cookie consumed as the auth-gate predicate by
// every stateful endpoint.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName carries the signed operator session token.
const CookieName = "coach_session"

// Principal identifies the authenticated operator.
type Principal struct {
	Username string
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(*Principal)
	return p, ok && p != nil
}

// CheckCredentials compares a submitted pair against the operator pair in
// constant time.
func CheckCredentials(wantUser, wantPass, gotUser, gotPass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(wantUser), []byte(gotUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(wantPass), []byte(gotPass)) == 1
	return userOK && passOK
}

// IssueToken mints a signed session token for the operator.
func IssueToken(secret []byte, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a session token and returns the operator name.
func VerifyToken(secret []byte, raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// FromRequest resolves the operator principal from the session cookie.
func FromRequest(r *http.Request, secret []byte) (*Principal, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	username, err := VerifyToken(secret, c.Value)
	if err != nil {
		return nil, false
	}
	return &Principal{Username: username}, true
}

// SetCookie installs the session cookie on the response.
func SetCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
