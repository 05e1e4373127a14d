package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"server/internal/auth"
	"server/internal/domain"
	"server/internal/infra"
	"server/internal/middleware"
	"server/internal/siteconfig"
)

// HistoryStore is the slice of the persistence layer the handlers touch.
type HistoryStore interface {
	AppendHistory(ctx context.Context, rec domain.GenerationResult) string
	QueryHistory(ctx context.Context, userID string) []domain.GenerationResult
	Unavailable() bool
}

// Swapper performs a garment swap against the image model.
type Swapper interface {
	PerformSwap(ctx context.Context, person, garment []byte, cfg domain.GenerationConfig) (string, error)
}

// IdentityProvider handles email/password credentials upstream.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*auth.Identity, error)
	SignUp(ctx context.Context, name, email, password string) (*auth.Identity, error)
}

// GoogleVerifier validates Google ID tokens minted by the popup flow.
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (map[string]any, error)
}

type App struct {
	Logger    infra.Logger
	Store     HistoryStore
	Site      *siteconfig.Manager
	Swapper   Swapper
	Provider  IdentityProvider
	Google    GoogleVerifier
	Auth      *auth.Service
	JWTSecret string

	seq sequencer
}

func NewApp(logger infra.Logger, store HistoryStore, site *siteconfig.Manager, swapper Swapper, provider IdentityProvider, google GoogleVerifier, svc *auth.Service, jwtSecret string) *App {
	return &App{
		Logger:    logger,
		Store:     store,
		Site:      site,
		Swapper:   swapper,
		Provider:  provider,
		Google:    google,
		Auth:      svc,
		JWTSecret: jwtSecret,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, msg string) {
	a.json(w, status, map[string]string{"error": code, "message": msg})
}

// session returns the verified token claims placed by the auth middleware.
func (a *App) session(r *http.Request) *middleware.TokenClaims {
	return middleware.SessionFromContext(r.Context())
}
