package main

import (
	"database/sql"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abrahamzahed/paintestimator-buddy-copy-sub000/internal/config"
	"github.com/abrahamzahed/paintestimator-buddy-copy-sub000/internal/db"
	"github.com/abrahamzahed/paintestimator-buddy-copy-sub000/internal/migrations"
	"github.com/abrahamzahed/paintestimator-buddy-copy-sub000/internal/seed"
)

type server struct {
	auth *authService
	db   *sql.DB
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

type loginViewData struct {
	baseViewData
}

// Paths reachable without a session: the login screen, static assets, and
// the customer-facing estimate flow (prospects price rooms and submit a
// quote request without an account).
var publicPrefixes = []string{
	"/login",
	"/static",
	"/estimate",
	"/api/estimate",
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
	}

	stats, err := seed.Run(database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		log.Fatalf("failed to run startup seed: %v", err)
	}
	if stats.Inserts > 0 {
		log.Printf("seeded %d catalog rows", stats.Inserts)
	}

	auth := newAuthService(database, cfg.SessionSecret)

	srv := &server{auth: auth, db: database}

	r := chi.NewRouter()
	r.Use(srv.authMiddleware)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.Get("/", srv.handleHome)
	r.Get("/login", srv.handleLoginForm)
	r.Post("/login", srv.handleLoginSubmit)
	r.Post("/logout", srv.handleLogout)

	r.Get("/estimate", srv.handleEstimateForm)
	r.Post("/api/estimate", srv.handleEstimateAPI)
	r.Post("/quotes", srv.handleQuoteCreate)

	r.Get("/quotes", srv.handleQuotesList)
	r.Get("/quotes/{id}", srv.handleQuoteDetail)
	r.Get("/quotes/{id}/text", srv.handleQuoteText)

	r.Get("/admin/rooms", srv.handleAdminRoomPricesForm)
	r.Post("/admin/rooms", srv.handleAdminRoomPricesCreate)
	r.Post("/admin/rooms/{id}", srv.handleAdminRoomPricesUpdate)
	r.Get("/admin/paints", srv.handleAdminPaintTypesForm)
	r.Post("/admin/paints", srv.handleAdminPaintTypesCreate)
	r.Post("/admin/paints/{id}", srv.handleAdminPaintTypesUpdate)
	r.Get("/admin/addons", srv.handleAdminAddOnsForm)
	r.Post("/admin/addons", srv.handleAdminAddOnsCreate)
	r.Post("/admin/addons/{id}", srv.handleAdminAddOnsUpdate)
	r.Get("/admin/conditions", srv.handleAdminConditionsForm)
	r.Post("/admin/conditions", srv.handleAdminConditionsCreate)
	r.Post("/admin/conditions/{id}", srv.handleAdminConditionsUpdate)
	r.Get("/admin/tiers", srv.handleAdminTiersForm)
	r.Post("/admin/tiers", srv.handleAdminTiersCreate)
	r.Post("/admin/tiers/{id}", srv.handleAdminTiersUpdate)
	r.Get("/admin/rates", srv.handleAdminRatesForm)
	r.Post("/admin/rates", srv.handleAdminRatesSubmit)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, "home.html", nil)
}

func (s *server) handleEstimateForm(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, "estimate.html", nil)
}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if isAuthenticated(r, s.auth) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, "login.html", loginViewData{})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	valid, err := s.auth.validateCredentials(email, password)
	if err != nil {
		http.Error(w, "authentication error", http.StatusInternalServerError)
		return
	}
	if !valid {
		w.WriteHeader(http.StatusUnauthorized)
		s.renderTemplate(w, "login.html", loginViewData{baseViewData: baseViewData{ErrorMessage: "Invalid credentials. Try again."}})
		return
	}

	s.auth.setSessionCookie(w, email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// templateDir is resolved against the working directory; the server runs
// from the repository root.
var templateDir = filepath.Join("web", "templates")

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.ParseFiles(
		filepath.Join(templateDir, "layout.html"),
		filepath.Join(templateDir, page),
	)
	if err != nil {
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		if r.Method == http.MethodPost && r.URL.Path == "/quotes" {
			next.ServeHTTP(w, r)
			return
		}

		if !isAuthenticated(r, s.auth) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isPublicPath(path string) bool {
	for _, prefix := range publicPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func isAuthenticated(r *http.Request, auth *authService) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return false
	}

	_, ok := auth.verifySessionValue(cookie.Value)
	return ok
}
