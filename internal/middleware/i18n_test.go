package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestI18NDetectsLocaleAndCountry(t *testing.T) {
	var gotLocale, gotCountry string
	handler := I18N("en", func(ip string) (string, error) {
		if ip != "203.0.113.7" {
			t.Fatalf("lookup ip = %q", ip)
		}
		return "id", nil
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocale = LocaleFromContext(r.Context())
		gotCountry = CountryFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:4123"
	req.Header.Set("Accept-Language", "id-ID,id;q=0.9,en;q=0.8")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotLocale != "id" {
		t.Fatalf("locale = %q, want id", gotLocale)
	}
	if gotCountry != "ID" {
		t.Fatalf("country = %q, want ID", gotCountry)
	}
}

func TestI18NHeaderOverrideAndLookupFailure(t *testing.T) {
	var gotLocale, gotCountry string
	handler := I18N("en", func(ip string) (string, error) {
		return "", errors.New("db missing")
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocale = LocaleFromContext(r.Context())
		gotCountry = CountryFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Locale", "fr-CA")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotLocale != "fr" {
		t.Fatalf("locale = %q, want fr", gotLocale)
	}
	if gotCountry != "" {
		t.Fatalf("country = %q, want empty on lookup failure", gotCountry)
	}
}
