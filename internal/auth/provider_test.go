package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"server/internal/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func providerWith(status int, body string) *Provider {
	return NewProvider(ProviderOptions{
		APIKey: "k",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: status,
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Body:       io.NopCloser(strings.NewReader(body)),
			}, nil
		})},
	})
}

func TestSignInReturnsIdentity(t *testing.T) {
	p := providerWith(http.StatusOK, `{"localId":"uid-1","email":"a@x.com","displayName":"Ada"}`)
	id, err := p.SignIn(context.Background(), "a@x.com", "hunter22")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if id.UID != "uid-1" || id.Email != "a@x.com" || id.Name != "Ada" {
		t.Fatalf("identity = %+v", id)
	}
}

func TestSignUpNormalizesEmailExists(t *testing.T) {
	p := providerWith(http.StatusBadRequest, `{"error":{"code":400,"message":"EMAIL_EXISTS"}}`)
	_, err := p.SignUp(context.Background(), "Ada", "a@x.com", "hunter22")
	if err == nil {
		t.Fatal("expected error")
	}
	if domain.AuthKind(err) != domain.AuthAccountExists {
		t.Fatalf("kind = %q, want account_exists", domain.AuthKind(err))
	}
}

func TestSignInNormalizesBadCredentials(t *testing.T) {
	p := providerWith(http.StatusBadRequest, `{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`)
	_, err := p.SignIn(context.Background(), "a@x.com", "nope")
	if domain.AuthKind(err) != domain.AuthCredentialInvalid {
		t.Fatalf("kind = %q, want credential_invalid", domain.AuthKind(err))
	}
}

func TestSignInTransportFailureIsGeneric(t *testing.T) {
	p := NewProvider(ProviderOptions{
		APIKey: "k",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("dial tcp: refused")
		})},
	})
	_, err := p.SignIn(context.Background(), "a@x.com", "pw")
	if domain.AuthKind(err) != domain.AuthGenericFailure {
		t.Fatalf("kind = %q, want auth_failed", domain.AuthKind(err))
	}
}
