package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/domain"
	"server/internal/infra"
	mw "server/internal/middleware"
)

// maxWebhookBody caps provider payloads; real events are a few KB.
const maxWebhookBody = 1 << 20

type createIntentRequest struct {
	Plan        string `json:"plan"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// NewRouter wires the payments endpoints. Intent creation requires a session;
// the webhook authenticates by signature instead.
func NewRouter(svc *Service, logger infra.Logger, jwtSecret string) http.Handler {
	r := chi.NewRouter()
	r.Use(mw.RequestID, chimw.RealIP, chimw.Recoverer, mw.Logger(logger))

	r.Get("/v1/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth(jwtSecret))
		r.Post("/v1/payments/intent", createIntentHandler(svc))
	})

	r.Post("/v1/payments/webhook", webhookHandler(svc))

	return r
}

func createIntentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createIntentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid payload")
			return
		}
		intent, err := svc.CreateIntent(r.Context(), mw.UserIDFromContext(r.Context()), domain.PlanID(req.Plan), req.AmountCents)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				writeError(w, http.StatusBadRequest, "bad_request", err.Error())
				return
			}
			writeError(w, http.StatusBadGateway, "payment_failed", "payment provider rejected the request")
			return
		}
		writeJSON(w, http.StatusOK, intent)
	}
}

func webhookHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "unreadable payload")
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		if err := svc.HandleEvent(ctx, payload, r.Header.Get("Stripe-Signature")); err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				writeError(w, http.StatusBadRequest, "bad_signature", "signature verification failed")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal", "event processing failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, kind, msg string) {
	writeJSON(w, code, map[string]string{"error": kind, "message": msg})
}
