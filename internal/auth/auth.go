package auth

import (
	"crypto/subtle"

	"github.com/google/uuid"

	"server/internal/domain"
)

// Credential gate pairs are deliberately hardcoded: this authorization path is
// fully separate from the identity provider and never persisted beyond the
// session. Flagged as a security smell worth revisiting.
const (
	gateUsername = "admin"
	gatePassword = "bapaklak"

	// The studio operator keeps a second pair for the same gate.
	studioUsername = "tkproject"
	studioPassword = "Bapaklak@8"

	// gateSubjectPrefix tags gate sessions so they can never be confused with
	// a provider-authenticated identity.
	gateSubjectPrefix = "gate:"
)

// Service resolves roles for provider identities and owns the secondary
// credential gate.
type Service struct {
	adminEmails []string
}

// NewService builds the auth service with the configured admin allow-list.
func NewService(adminEmails []string) *Service {
	return &Service{adminEmails: adminEmails}
}

// UserFor turns a provider identity into a session user with its resolved role.
func (s *Service) UserFor(id *Identity) domain.User {
	return domain.User{
		ID:    id.UID,
		Email: id.Email,
		Name:  id.Name,
		Role:  domain.ClassifyRole(id.Email, s.adminEmails),
	}
}

// GateSignIn opens an administrator session from one of the hardcoded
// credential pairs. Any other pair yields a credential-invalid AuthError and
// no session.
func (s *Service) GateSignIn(username, password string) (*domain.User, error) {
	if !gatePairMatches(username, password, gateUsername, gatePassword) &&
		!gatePairMatches(username, password, studioUsername, studioPassword) {
		return nil, domain.NewAuthError(domain.AuthCredentialInvalid, nil)
	}
	return &domain.User{
		ID:          gateSubjectPrefix + uuid.NewString(),
		Name:        username,
		Role:        domain.RoleAdmin,
		GateSession: true,
	}, nil
}

func gatePairMatches(username, password, wantUser, wantPass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(wantUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(wantPass)) == 1
	return userOK && passOK
}
