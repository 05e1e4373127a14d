package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"server/internal/domain"
	"server/internal/infra"
)

// DB is the subset of pgxpool.Pool the store needs; narrowed so tests can
// substitute fakes.
type DB interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

const (
	qSelectConfig = `SELECT payload FROM website_config WHERE id = 'main'`
	qUpsertConfig = `
INSERT INTO website_config (id, payload, updated_at)
VALUES ('main', $1, now())
ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`
	qInsertGeneration = `
INSERT INTO generations (user_id, person_url, garment_url, result_url, config, created_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING id, created_at`
	qSelectGenerations = `
SELECT id, person_url, garment_url, result_url, config, created_at
FROM generations
WHERE user_id = $1
ORDER BY created_at DESC`
)

// Store is a best-effort adapter over the backing database. The product must
// remain usable with defaults and empty history when the store is absent, so
// a missing backing store latches a one-way circuit breaker that suppresses
// all further attempts for the process lifetime.
type Store struct {
	db      DB
	logger  infra.Logger
	timeout time.Duration
	missing atomic.Bool
}

// New constructs a Store. timeout bounds LoadConfig; zero means two seconds.
func New(db DB, logger infra.Logger, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Store{db: db, logger: logger, timeout: timeout}
}

// Unavailable reports whether the missing-store condition has been latched.
func (s *Store) Unavailable() bool {
	return s.missing.Load()
}

// LoadConfig fetches the singleton website configuration. It never raises to
// the caller beyond ErrStoreUnavailable; on any failure the caller substitutes
// the hardcoded default.
func (s *Store) LoadConfig(ctx context.Context) (*domain.WebsiteConfig, error) {
	if s.missing.Load() {
		return nil, domain.ErrStoreUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var payload []byte
	if err := s.db.QueryRow(ctx, qSelectConfig).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No record yet is normal on first boot, not a store fault.
			return nil, domain.ErrStoreUnavailable
		}
		s.observe("load config", err)
		return nil, domain.ErrStoreUnavailable
	}
	var cfg domain.WebsiteConfig
	if err := json.Unmarshal(payload, &cfg); err != nil {
		s.logger.Error().Err(err).Msg("store: corrupt website config payload")
		return nil, domain.ErrStoreUnavailable
	}
	cfg.NormalizeStripeLinks()
	return &cfg, nil
}

// SaveConfig replaces the singleton record wholesale. Failures are logged and
// reported but the caller treats the write as fire-and-forget.
func (s *Store) SaveConfig(ctx context.Context, cfg domain.WebsiteConfig) error {
	if s.missing.Load() {
		return domain.ErrStoreUnavailable
	}
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal website config: %w", err)
	}
	if _, err := s.db.Exec(ctx, qUpsertConfig, payload); err != nil {
		s.observe("save config", err)
		return domain.ErrStoreUnavailable
	}
	return nil
}

// AppendHistory inserts one generation record with a server-assigned
// timestamp. It returns the new record's id, or an empty string when the
// write could not be performed.
func (s *Store) AppendHistory(ctx context.Context, res domain.GenerationResult) string {
	if s.missing.Load() {
		return ""
	}
	cfgJSON, err := json.Marshal(res.Config)
	if err != nil {
		s.logger.Error().Err(err).Msg("store: marshal generation config")
		return ""
	}
	var id string
	var createdAt time.Time
	err = s.db.QueryRow(ctx, qInsertGeneration, res.UserID, res.PersonImageURL, res.GarmentImageURL, res.ResultImageURL, cfgJSON).
		Scan(&id, &createdAt)
	if err != nil {
		s.observe("append history", err)
		return ""
	}
	return id
}

// QueryHistory returns the user's generations newest first. Backing failures
// yield an empty collection, never an error.
func (s *Store) QueryHistory(ctx context.Context, userID string) []domain.GenerationResult {
	if s.missing.Load() {
		return []domain.GenerationResult{}
	}
	rows, err := s.db.Query(ctx, qSelectGenerations, userID)
	if err != nil {
		s.observe("query history", err)
		return []domain.GenerationResult{}
	}
	defer rows.Close()

	results := []domain.GenerationResult{}
	for rows.Next() {
		var res domain.GenerationResult
		var cfgJSON []byte
		if err := rows.Scan(&res.ID, &res.PersonImageURL, &res.GarmentImageURL, &res.ResultImageURL, &cfgJSON, &res.CreatedAt); err != nil {
			s.logger.Error().Err(err).Msg("store: scan generation row")
			continue
		}
		if err := json.Unmarshal(cfgJSON, &res.Config); err != nil {
			s.logger.Error().Err(err).Str("id", res.ID).Msg("store: corrupt generation config")
		}
		res.UserID = userID
		results = append(results, res)
	}
	return results
}

// observe logs a backing failure and latches the circuit breaker when the
// error shows the store itself does not exist rather than a transient fault.
func (s *Store) observe(op string, err error) {
	if isMissingStore(err) {
		if s.missing.CompareAndSwap(false, true) {
			s.logger.Warn().Err(err).Msgf("store: backing store missing during %s; operating on local defaults from now on", op)
		}
		return
	}
	s.logger.Error().Err(err).Msgf("store: %s failed", op)
}

func isMissingStore(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// undefined_table, invalid_catalog_name
		return pgErr.Code == "42P01" || pgErr.Code == "3D000"
	}
	return false
}
