package domain

import "strings"

// Role classifies an authenticated identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the identity attached to a session.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	Role    Role   `json:"role"`
	// GateSession marks identities opened through the credential gate, which
	// never correspond to a provider account.
	GateSession bool `json:"gate_session,omitempty"`
}

// ClassifyRole resolves the role for a provider-authenticated email. The rule
// is coarse: a configured allow-list plus a substring match on "admin".
func ClassifyRole(email string, adminEmails []string) Role {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return RoleUser
	}
	for _, allowed := range adminEmails {
		if strings.EqualFold(strings.TrimSpace(allowed), email) {
			return RoleAdmin
		}
	}
	if strings.Contains(email, "admin") {
		return RoleAdmin
	}
	return RoleUser
}
