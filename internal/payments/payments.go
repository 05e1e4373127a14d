package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	"server/internal/domain"
	"server/internal/infra"
)

// PaymentRecord is the durable trace of one payment intent lifecycle event.
type PaymentRecord struct {
	IntentID    string
	UserID      string
	Plan        domain.PlanID
	AmountCents int64
	Currency    string
	Status      string
}

// Recorder persists payment lifecycle events.
type Recorder interface {
	RecordPayment(ctx context.Context, rec PaymentRecord) error
}

// Service creates payment intents for the pricing catalog and ingests the
// provider's webhook events.
type Service struct {
	api           *client.API
	webhookSecret string
	recorder      Recorder
	logger        infra.Logger
}

type Options struct {
	SecretKey     string
	WebhookSecret string
	Recorder      Recorder
	Logger        infra.Logger

	// Backends overrides the API transport; tests point it at a local server.
	Backends *stripe.Backends
}

func NewService(opts Options) *Service {
	api := &client.API{}
	api.Init(opts.SecretKey, opts.Backends)
	return &Service{
		api:           api,
		webhookSecret: opts.WebhookSecret,
		recorder:      opts.Recorder,
		logger:        opts.Logger,
	}
}

// Intent is the client-facing result of a created payment intent.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
	Plan         string `json:"plan"`
}

// CreateIntent opens a payment intent for one pricing tier. The charged
// amount always comes from the server-side catalog; a client-sent amount is
// accepted only as a cross-check and must match.
func (s *Service) CreateIntent(ctx context.Context, userID string, planID domain.PlanID, amountCents int64) (*Intent, error) {
	plan, ok := domain.PlanByID(planID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown plan %q", domain.ErrValidation, planID)
	}
	if amountCents < 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if amountCents != 0 && amountCents != plan.AmountCents {
		return nil, fmt.Errorf("%w: amount %d does not match plan %q", domain.ErrValidation, amountCents, planID)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(plan.AmountCents),
		Currency: stripe.String(plan.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("user_id", userID)
	params.AddMetadata("plan", string(plan.ID))

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		s.logger.Error().Err(err).Str("plan", string(plan.ID)).Msg("payments: intent creation failed")
		return nil, err
	}
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  plan.AmountCents,
		Currency:     plan.Currency,
		Plan:         string(plan.ID),
	}, nil
}

// HandleEvent verifies a webhook payload and records the terminal intent
// states. Unknown event types are acknowledged and skipped.
func (s *Service) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	var status string
	switch event.Type {
	case "payment_intent.succeeded":
		status = "succeeded"
	case "payment_intent.payment_failed":
		status = "failed"
	default:
		s.logger.Debug().Str("type", string(event.Type)).Msg("payments: event ignored")
		return nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return fmt.Errorf("decode payment intent: %w", err)
	}

	rec := PaymentRecord{
		IntentID:    pi.ID,
		UserID:      pi.Metadata["user_id"],
		Plan:        domain.PlanID(pi.Metadata["plan"]),
		AmountCents: pi.Amount,
		Currency:    string(pi.Currency),
		Status:      status,
	}
	if err := s.recorder.RecordPayment(ctx, rec); err != nil {
		s.logger.Error().Err(err).Str("intent_id", pi.ID).Msg("payments: record failed")
		return err
	}
	s.logger.Info().Str("intent_id", pi.ID).Str("status", status).Msg("payments: event recorded")
	return nil
}
