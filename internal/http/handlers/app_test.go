package handlers

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"server/internal/auth"
	"server/internal/domain"
	"server/internal/siteconfig"
)

type fakeHistoryStore struct {
	mu          sync.Mutex
	records     []domain.GenerationResult
	unavailable bool
}

func (f *fakeHistoryStore) AppendHistory(ctx context.Context, rec domain.GenerationResult) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unavailable {
		return ""
	}
	rec.ID = "gen-1"
	f.records = append(f.records, rec)
	return rec.ID
}

func (f *fakeHistoryStore) QueryHistory(ctx context.Context, userID string) []domain.GenerationResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unavailable {
		return []domain.GenerationResult{}
	}
	out := make([]domain.GenerationResult, 0, len(f.records))
	for _, rec := range f.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out
}

func (f *fakeHistoryStore) Unavailable() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unavailable
}

func (f *fakeHistoryStore) recorded() []domain.GenerationResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.GenerationResult, len(f.records))
	copy(out, f.records)
	return out
}

type fakeSwapper struct {
	fn func(ctx context.Context, person, garment []byte, cfg domain.GenerationConfig) (string, error)
}

func (f *fakeSwapper) PerformSwap(ctx context.Context, person, garment []byte, cfg domain.GenerationConfig) (string, error) {
	return f.fn(ctx, person, garment, cfg)
}

type fakeProvider struct {
	identity *auth.Identity
	err      error
}

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (*auth.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

func (f *fakeProvider) SignUp(ctx context.Context, name, email, password string) (*auth.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

type fakeVerifier struct {
	claims map[string]any
	err    error
}

func (f *fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

type fakeConfigStore struct {
	mu     sync.Mutex
	stored *domain.WebsiteConfig
}

func (f *fakeConfigStore) LoadConfig(ctx context.Context) (*domain.WebsiteConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stored == nil {
		return nil, errors.New("no stored config")
	}
	cfg := *f.stored
	return &cfg, nil
}

func (f *fakeConfigStore) SaveConfig(ctx context.Context, cfg domain.WebsiteConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = &cfg
	return nil
}

func newTestApp(store *fakeHistoryStore, swapper *fakeSwapper, provider *fakeProvider, verifier *fakeVerifier) *App {
	logger := zerolog.New(io.Discard)
	site := siteconfig.NewManager(&fakeConfigStore{}, logger)
	return NewApp(logger, store, site, swapper, provider, verifier, auth.NewService([]string{"tkproject@gmail.com"}), "test-secret")
}
