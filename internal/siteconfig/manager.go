package siteconfig

import (
	"context"
	"sync"
	"time"

	"server/internal/domain"
	"server/internal/infra"
)

// Store is the persistence surface the manager relies on.
type Store interface {
	LoadConfig(ctx context.Context) (*domain.WebsiteConfig, error)
	SaveConfig(ctx context.Context, cfg domain.WebsiteConfig) error
}

// Manager owns the process-wide website configuration. The admin handler is
// the single writer; every other component reads through Current or receives
// change notifications through Subscribe. Updates apply to local state
// synchronously and persist best-effort in the background; a failed persist is
// logged, never rolled back. The store is read once at Bootstrap — in-memory
// state is authoritative afterwards, so a read that races an in-flight persist
// can never observe the previous record.
type Manager struct {
	store  Store
	logger infra.Logger

	mu        sync.RWMutex
	current   domain.WebsiteConfig
	observers []func(domain.WebsiteConfig)

	// saveTimeout bounds the background persistence attempt.
	saveTimeout time.Duration
}

// NewManager seeds the manager with the hardcoded default configuration.
func NewManager(store Store, logger infra.Logger) *Manager {
	return &Manager{
		store:       store,
		logger:      logger,
		current:     domain.DefaultWebsiteConfig(),
		saveTimeout: 5 * time.Second,
	}
}

// Bootstrap replaces the default with the stored record when one is
// available. Store failures leave the default in place.
func (m *Manager) Bootstrap(ctx context.Context) {
	cfg, err := m.store.LoadConfig(ctx)
	if err != nil {
		m.logger.Info().Msg("siteconfig: no stored config, using defaults")
		return
	}
	m.mu.Lock()
	m.current = *cfg
	m.mu.Unlock()
}

// Current returns a copy of the active configuration.
func (m *Manager) Current() domain.WebsiteConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg := m.current
	return cfg
}

// Update applies the new configuration wholesale (last write wins), notifies
// subscribers, and kicks off a fire-and-forget persistence attempt.
func (m *Manager) Update(cfg domain.WebsiteConfig) {
	cfg.NormalizeStripeLinks()

	m.mu.Lock()
	m.current = cfg
	observers := make([]func(domain.WebsiteConfig), len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()

	for _, notify := range observers {
		notify(cfg)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.saveTimeout)
		defer cancel()
		if err := m.store.SaveConfig(ctx, cfg); err != nil {
			m.logger.Error().Err(err).Msg("siteconfig: persist failed; in-memory config kept")
		}
	}()
}

// Subscribe registers a change callback invoked on every Update.
func (m *Manager) Subscribe(fn func(domain.WebsiteConfig)) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}
