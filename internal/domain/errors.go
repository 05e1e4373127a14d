package domain

import "errors"

var (
	ErrValidation        = errors.New("invalid request")
	ErrGenerationFailed  = errors.New("generation produced no image")
	ErrMissingCredential = errors.New("pro engine credential not found")
	ErrStoreUnavailable  = errors.New("backing store unavailable")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
)

// AuthErrorKind is the normalized category for identity provider failures.
// The values are surfaced verbatim as short user-facing codes.
type AuthErrorKind string

const (
	AuthCredentialInvalid  AuthErrorKind = "credential_invalid"
	AuthAccountExists      AuthErrorKind = "account_exists"
	AuthWeakCredential     AuthErrorKind = "weak_credential"
	AuthDomainUnauthorized AuthErrorKind = "domain_unauthorized"
	AuthPopupBlocked       AuthErrorKind = "popup_blocked"
	AuthPopupCancelled     AuthErrorKind = "popup_cancelled"
	AuthGenericFailure     AuthErrorKind = "auth_failed"
)

// AuthError wraps an identity provider failure with its normalized kind.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError builds an AuthError with an optional cause.
func NewAuthError(kind AuthErrorKind, err error) *AuthError {
	return &AuthError{Kind: kind, Err: err}
}

// AuthKind extracts the normalized kind from an error chain, defaulting to
// the generic failure category.
func AuthKind(err error) AuthErrorKind {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return AuthGenericFailure
}
