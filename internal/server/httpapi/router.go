package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ysolovyov/knorozov/internal/logging"
	"github.com/ysolovyov/knorozov/internal/server/services"
)

// Handlers carries the dependencies shared by all route handlers.
type Handlers struct {
	logger       logging.Logger
	users        *services.UserService
	translations *services.TranslationService
}

// DefaultCORSOptions returns the development CORS policy for the browser
// frontend.
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

// NewRouter assembles the chi router with shared middleware and all routes
// mounted. Read-only translation lookups stay public; every mutating route
// goes through the bearer-token middleware.
func NewRouter(h *Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.logger))
	r.Use(cors.Handler(DefaultCORSOptions()))
	r.Use(collectMetrics)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/users", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Post("/signup", h.signUp)
		r.Get("/{login}", h.getUser)

		r.Group(func(r chi.Router) {
			r.Use(h.requireUser)
			r.Get("/", h.listUsers)
			r.Put("/update_password", h.updatePassword)
			r.Delete("/{login}/delete", h.deleteUser)
			r.Put("/{login}/set_roles", h.setRoles)
			r.Put("/{login}/add_roles", h.addRoles)
			r.Put("/{login}/delete_roles", h.removeRoles)
		})
	})

	r.Route("/translations", func(r chi.Router) {
		r.Get("/languages", h.listLanguages)
		r.Get("/languages/{code}", h.getLanguage)
		r.Get("/pages", h.listPages)
		r.Get("/pages/{page_name}", h.getPage)
		r.Get("/pages/{page_name}/{entry_key}/{lang}", h.getTranslation)

		r.Group(func(r chi.Router) {
			r.Use(h.requireUser)
			r.Post("/languages/new", h.createLanguage)
			r.Put("/languages/{code}/update", h.updateLanguage)
			r.Delete("/languages/{code}/delete", h.deleteLanguage)
			r.Post("/pages/new", h.createPage)
			r.Delete("/pages/{page_name}/delete", h.deletePage)
			r.Post("/pages/{page_name}/new_entry", h.createEntry)
			r.Delete("/pages/{page_name}/{entry_key}/delete", h.deleteEntry)
			r.Put("/pages/{page_name}/{entry_key}/{lang}/set", h.setTranslation)
		})
	})

	return r
}
