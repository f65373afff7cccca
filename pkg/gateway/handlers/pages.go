package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/auth"
	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/config"
)

//go:embed web
var webFS embed.FS

var (
	indexPage     = template.Must(template.ParseFS(webFS, "web/index.html"))
	loginTemplate = template.Must(template.ParseFS(webFS, "web/login.html"))
)

// HomeHandler serves the client page to an authenticated operator and
// redirects everyone else to the login form.
type HomeHandler struct {
	Config config.Config
}

func (h HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if _, ok := auth.FromRequest(r, h.Config.CookieSecret); !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = indexPage.Execute(w, nil)
}

// LoginHandler serves the login form and checks submitted credentials
// against the single operator pair.
type LoginHandler struct {
	Config config.Config
	Logger *slog.Logger
}

func (h LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.renderForm(w, http.StatusOK, "")
	case http.MethodPost:
		h.submit(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h LoginHandler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderForm(w, http.StatusBadRequest, "Ungültige Anfrage.")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if !auth.CheckCredentials(h.Config.Username, h.Config.Password, username, password) {
		if h.Logger != nil {
			h.Logger.Warn("login failed", "username", username)
		}
		h.renderForm(w, http.StatusUnauthorized, "Falscher Benutzername oder falsches Passwort.")
		return
	}

	token, err := auth.IssueToken(h.Config.CookieSecret, username, h.Config.SessionTTL)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("issue session token", "error", err)
		}
		h.renderForm(w, http.StatusInternalServerError, "Anmeldung derzeit nicht möglich.")
		return
	}

	auth.SetCookie(w, token, h.Config.SessionTTL)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h LoginHandler) renderForm(w http.ResponseWriter, status int, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = loginTemplate.Execute(w, struct{ Error string }{Error: errMsg})
}

// LogoutHandler clears the session cookie.
type LogoutHandler struct{}

func (h LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
