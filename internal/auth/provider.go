package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"server/internal/domain"
)

// Identity is the normalized result of a provider sign-in.
type Identity struct {
	UID   string
	Email string
	Name  string
}

// ProviderOptions configures the identity provider adapter.
type ProviderOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Provider adapts the Identity Toolkit REST API for password sign-in and
// sign-up. Provider-specific error codes are normalized into the small set of
// user-facing categories in domain.AuthErrorKind.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewProvider constructs the adapter with sane defaults.
func NewProvider(opts ProviderOptions) *Provider {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://identitytoolkit.googleapis.com/v1"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Provider{apiKey: strings.TrimSpace(opts.APIKey), baseURL: baseURL, client: client}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	DisplayName       string `json:"displayName,omitempty"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type identityErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn authenticates an email/password pair.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	return p.call(ctx, "accounts:signInWithPassword", signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
}

// SignUp registers a new account.
func (p *Provider) SignUp(ctx context.Context, name, email, password string) (*Identity, error) {
	return p.call(ctx, "accounts:signUp", signInRequest{
		Email:             email,
		Password:          password,
		DisplayName:       strings.TrimSpace(name),
		ReturnSecureToken: true,
	})
}

func (p *Provider) call(ctx context.Context, action string, payload signInRequest) (*Identity, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/%s?key=%s", p.baseURL, action, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, domain.NewAuthError(domain.AuthGenericFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr identityErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, domain.NewAuthError(normalizeProviderCode(apiErr.Error.Message), errors.New(apiErr.Error.Message))
		}
		data, _ := io.ReadAll(resp.Body)
		return nil, domain.NewAuthError(domain.AuthGenericFailure, fmt.Errorf("identity status %d: %s", resp.StatusCode, strings.TrimSpace(string(data))))
	}

	var out signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode identity response: %w", err)
	}
	return &Identity{UID: out.LocalID, Email: out.Email, Name: out.DisplayName}, nil
}

// normalizeProviderCode folds provider error strings into the user-facing
// taxonomy. Codes sometimes arrive with suffixes ("WEAK_PASSWORD : ..."), so
// matching is by prefix.
func normalizeProviderCode(code string) domain.AuthErrorKind {
	code = strings.ToUpper(strings.TrimSpace(code))
	switch {
	case strings.HasPrefix(code, "EMAIL_EXISTS"):
		return domain.AuthAccountExists
	case strings.HasPrefix(code, "WEAK_PASSWORD"):
		return domain.AuthWeakCredential
	case strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(code, "INVALID_PASSWORD"),
		strings.HasPrefix(code, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(code, "USER_DISABLED"):
		return domain.AuthCredentialInvalid
	case strings.HasPrefix(code, "OPERATION_NOT_ALLOWED"),
		strings.HasPrefix(code, "UNAUTHORIZED_DOMAIN"):
		return domain.AuthDomainUnauthorized
	case strings.HasPrefix(code, "POPUP_BLOCKED"):
		return domain.AuthPopupBlocked
	case strings.HasPrefix(code, "POPUP_CLOSED"), strings.HasPrefix(code, "CANCELLED_POPUP"):
		return domain.AuthPopupCancelled
	default:
		return domain.AuthGenericFailure
	}
}
