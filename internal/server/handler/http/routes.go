package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rizkylsmp/portfolio-server/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the portfolio site.
//
// Public surface:
//
//	GET  /api/portfolio        → full portfolio in display order
//	GET  /api/projects         → projects, optional ?category= filter
//	/api/auth/*                → setup, login, status, logout, changes, reset
//
// Admin surface (session cookie required):
//
//	/api/admin/*               → content CRUD, reorder, export/import, reset
//
// Development only:
//
//	POST /api/save-portfolio   → write-back of the canonical data file
//	                             (save is nil in release mode)
//
// Static frontend files are served from staticDir when it is non-empty.
func NewRouter(
	auth *AuthHandler,
	content *ContentHandler,
	save *SaveHandler,
	sessions middleware.TokenChecker,
	staticDir string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Only allow requests with Content-Type: application/json
		r.Use(chiMiddleware.AllowContentType("application/json"))

		r.Get("/portfolio", content.Portfolio)
		r.Get("/projects", content.Projects)

		r.Route("/auth", func(r chi.Router) {
			r.Get("/status", auth.Status)
			r.Post("/setup", auth.Setup)
			r.Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)
			r.Post("/password", auth.ChangePassword)
			r.Post("/pin", auth.ChangePin)
			r.Post("/reset", auth.Reset)
		})

		// Protected group: requires an active admin session
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.SessionAuth(sessions))

			r.Put("/profile", content.SaveProfile)
			r.Put("/contact", content.SaveContact)

			r.Post("/skills", content.CreateSkill)
			r.Put("/skills/order", content.ReorderSkills)
			r.Put("/skills/{id}", content.UpdateSkill)
			r.Delete("/skills/{id}", content.DeleteSkill)

			r.Post("/experiences", content.CreateExperience)
			r.Put("/experiences/{id}", content.UpdateExperience)
			r.Delete("/experiences/{id}", content.DeleteExperience)

			r.Post("/projects", content.CreateProject)
			r.Put("/projects/{id}", content.UpdateProject)
			r.Delete("/projects/{id}", content.DeleteProject)

			r.Post("/certificates", content.CreateCertificate)
			r.Put("/certificates/{id}", content.UpdateCertificate)
			r.Delete("/certificates/{id}", content.DeleteCertificate)

			r.Get("/export", content.Export)
			r.Post("/import", content.Import)
			r.Post("/reset", content.ResetData)
		})

		if save != nil {
			r.Post("/save-portfolio", save.ServeHTTP)
		}
	})

	if staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}

	return r
}
