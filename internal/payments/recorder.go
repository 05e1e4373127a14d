package payments

import (
	"context"
	"database/sql"
	"fmt"
)

const insertPaymentSQL = `
INSERT INTO payment_events (intent_id, user_id, plan, amount_cents, currency, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (intent_id) DO UPDATE SET status = EXCLUDED.status
`

// SQLRecorder persists payment events through database/sql. Replays of the
// same intent update the status in place, so webhook retries are safe.
type SQLRecorder struct {
	db *sql.DB
}

func NewSQLRecorder(db *sql.DB) *SQLRecorder {
	return &SQLRecorder{db: db}
}

func (r *SQLRecorder) RecordPayment(ctx context.Context, rec PaymentRecord) error {
	_, err := r.db.ExecContext(ctx, insertPaymentSQL,
		rec.IntentID, rec.UserID, string(rec.Plan), rec.AmountCents, rec.Currency, rec.Status)
	if err != nil {
		return fmt.Errorf("record payment %s: %w", rec.IntentID, err)
	}
	return nil
}
