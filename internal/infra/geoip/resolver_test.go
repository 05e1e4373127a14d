package geoip

import "testing"

func TestOpenWithoutPathIsDisabled(t *testing.T) {
	r, err := Open("  ")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if r != nil {
		t.Fatal("empty path should yield a nil resolver")
	}
}

func TestNilResolverReportsNoCountry(t *testing.T) {
	var r *Resolver
	code, err := r.CountryCode("203.0.113.9")
	if err != nil || code != "" {
		t.Fatalf("CountryCode = %q, %v", code, err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
