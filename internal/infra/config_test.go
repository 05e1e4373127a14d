package infra

import "testing"

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when DATABASE_URL is empty")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/stylemorph")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("GEMINI_API_KEY", "standard-key")
	t.Setenv("GEMINI_PRO_API_KEY", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.GeminiBaseURL == "" {
		t.Fatal("GeminiBaseURL should have a default")
	}
	if cfg.GeminiProAPIKey != "standard-key" {
		t.Fatalf("GeminiProAPIKey = %q, want fallback to GEMINI_API_KEY", cfg.GeminiProAPIKey)
	}
	if cfg.ConfigTimeout.Seconds() != 2 {
		t.Fatalf("ConfigTimeout = %v, want 2s", cfg.ConfigTimeout)
	}
	if len(cfg.AdminEmails) == 0 {
		t.Fatal("AdminEmails default should not be empty")
	}
	if cfg.DBMaxConns != 8 || cfg.DBMinConns != 1 {
		t.Fatalf("pool size defaults = %d/%d, want 8/1", cfg.DBMaxConns, cfg.DBMinConns)
	}
}

func TestLoadConfigPoolSizeFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/stylemorph")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_MAX_CONNS", "20")
	t.Setenv("DB_CONN_LIFETIME_MINUTES", "15")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.DBMaxConns != 20 {
		t.Fatalf("DBMaxConns = %d, want 20", cfg.DBMaxConns)
	}
	if cfg.DBConnLifetime.Minutes() != 15 {
		t.Fatalf("DBConnLifetime = %v, want 15m", cfg.DBConnLifetime)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a@x.com, ,b@y.com,")
	if len(got) != 2 || got[0] != "a@x.com" || got[1] != "b@y.com" {
		t.Fatalf("splitList = %v", got)
	}
}
