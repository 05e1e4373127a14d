package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/infra"
	mw "server/internal/middleware"
)

// Options bundles everything the router needs beyond the handler set.
type Options struct {
	App            *handlers.App
	Logger         infra.Logger
	JWTSecret      string
	AllowedOrigins []string
	DefaultLocale  string
	CountryLookup  mw.CountryLookup
	TryonPerMinute int
}

func NewRouter(opts Options) http.Handler {
	app := opts.App
	tryonLimit := opts.TryonPerMinute
	if tryonLimit <= 0 {
		tryonLimit = 10
	}

	r := chi.NewRouter()
	r.Use(
		mw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		mw.CORS(opts.AllowedOrigins),
		mw.I18N(opts.DefaultLocale, opts.CountryLookup),
		mw.Logger(opts.Logger),
	)

	r.Get("/v1/healthz", app.Health)

	// Public marketing surface: the SPA fetches these before any sign-in.
	r.Get("/v1/site-config", app.SiteConfig)
	r.Get("/v1/site-content", app.SiteContent)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/signup", app.SignUp)
		r.Post("/signin", app.SignIn)
		r.Post("/google", app.GoogleSignIn)
		r.Post("/admin-gate", app.AdminGate)
		r.Post("/signout", app.SignOut)
	})

	// Everything below requires an active session.
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth(opts.JWTSecret))

		r.Get("/v1/me", app.Me)
		r.Get("/v1/history", app.History)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(tryonLimit, time.Minute))
			r.Post("/v1/tryon", app.Tryon)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAdmin)
			r.Put("/v1/site-config", app.UpdateSiteConfig)
		})
	})

	return r
}
