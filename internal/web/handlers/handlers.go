// Package handlers wires the portal pages: every handler checks the session
// (via RequireAuth), calls the remote courier API, and renders a template.
// Failures become inline banners; nothing here is allowed to take the page
// down.
package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kettno/courier-portal/config"
	"github.com/kettno/courier-portal/internal/api"
	"github.com/kettno/courier-portal/internal/session"
	"github.com/kettno/courier-portal/internal/towns"
	"github.com/kettno/courier-portal/internal/waybill"
	"github.com/kettno/courier-portal/internal/web/templates"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	cfg       *config.Config
	api       api.Client
	sessions  *session.Store
	towns     *towns.Directory
	waybills  *waybill.Registry
	templates map[string]*template.Template
}

// New creates a new handler with parsed templates.
func New(cfg *config.Config, client api.Client, sessions *session.Store, directory *towns.Directory, waybills *waybill.Registry) *Handler {
	tmplMap := make(map[string]*template.Template)
	for _, page := range []string{
		"login.html", "dashboard.html", "parcels.html", "parcel_status.html",
		"send.html", "waybills.html", "towns.html", "employees.html",
	} {
		tmplMap[page] = template.Must(
			template.New(page).ParseFS(templates.FS, "base.html", page),
		)
	}

	return &Handler{
		cfg:       cfg,
		api:       client,
		sessions:  sessions,
		towns:     directory,
		waybills:  waybills,
		templates: tmplMap,
	}
}

// renderTemplate renders a page template into the base layout. Render errors
// are logged, never surfaced as a crash.
func (h *Handler) renderTemplate(w http.ResponseWriter, name string, data map[string]interface{}) {
	tmpl, ok := h.templates[name]
	if !ok {
		log.Printf("Template not found: %s", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if _, ok := data["Title"]; !ok {
		data["Title"] = "Kettno Courier"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		log.Printf("Error rendering %s: %v", name, err)
	}
}

// pageData seeds the common template fields for an authenticated page,
// picking up the flash message or error carried in the query string.
func (h *Handler) pageData(r *http.Request, title string) map[string]interface{} {
	data := map[string]interface{}{
		"Title":    title,
		"LoggedIn": true,
		"UserName": "User",
		"Error":    r.URL.Query().Get("error"),
		"Message":  r.URL.Query().Get("msg"),
	}
	if sess, ok := SessionFromContext(r.Context()); ok {
		if claims, err := session.DecodeClaims(sess.Token); err == nil {
			data["UserName"] = claims.DisplayName()
		} else {
			data["UserName"] = sess.Username
		}
	}
	return data
}

// ensureTowns makes sure the town directory has been loaded at least once
// this session. Failures are logged; pages fall back to placeholder names.
func (h *Handler) ensureTowns(token string) {
	if len(h.towns.List()) > 0 {
		return
	}
	if err := h.towns.Refresh(token); err != nil {
		log.Printf("Error loading town directory: %v", err)
	}
}

// redirectBack sends the user back to the page a form was submitted from,
// with a flash message or error in the query string. Only relative targets
// are honoured.
func redirectBack(w http.ResponseWriter, r *http.Request, key, message string) {
	back := r.FormValue("back")
	if back == "" || !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") {
		back = "/parcels"
	}
	sep := "?"
	if strings.Contains(back, "?") {
		sep = "&"
	}
	http.Redirect(w, r, back+sep+key+"="+url.QueryEscape(message), http.StatusSeeOther)
}

// errorMessage turns any error into the user-facing text: API errors carry
// the server's message, everything else gets a generic prefix.
func errorMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err != nil {
		return fallback
	}
	return ""
}

// Home redirects to the dashboard; the guard bounces unauthenticated
// visitors to the login page from there.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// LoginPage renders the login form. Logged-in visitors go straight to the
// dashboard.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil && h.sessions.IsAuthenticated(cookie.Value) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.renderTemplate(w, "login.html", map[string]interface{}{
		"Title": "Login",
	})
}

// Login handles login form submission: exchanges the credentials for a
// bearer token via the remote API and sets the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("Error parsing login form: %v", err)
		h.loginError(w, "Invalid form data.")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		h.loginError(w, "Username and password are required.")
		return
	}

	sessionID, err := h.sessions.Login(username, password)
	if err != nil {
		log.Printf("Login failed for %s: %v", username, err)
		h.loginError(w, errorMessage(err, "Login failed. Please try again."))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})

	// Warm the town directory so the first page can resolve names.
	if sess, ok := h.sessions.Get(sessionID); ok {
		if err := h.towns.Refresh(sess.Token); err != nil {
			log.Printf("Error loading town directory after login: %v", err)
		}
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) loginError(w http.ResponseWriter, message string) {
	h.renderTemplate(w, "login.html", map[string]interface{}{
		"Title": "Login",
		"Error": message,
	})
}

// Logout clears the session cookie and deletes the server-side session.
// Unconditional: a missing or stale session still lands on the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		h.sessions.Logout(cookie.Value)
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func atoiDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
