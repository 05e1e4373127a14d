package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"server/internal/auth"
	"server/internal/domain"
	"server/internal/infra/google"
	"server/internal/middleware"
)

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleSignInRequest struct {
	IDToken string `json:"id_token"`
}

type gateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID      string      `json:"id"`
	Email   string      `json:"email,omitempty"`
	Name    string      `json:"name,omitempty"`
	Picture string      `json:"picture,omitempty"`
	Role    domain.Role `json:"role"`
	Gate    bool        `json:"gate,omitempty"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Picture: u.Picture, Role: u.Role, Gate: u.GateSession}
}

func (a *App) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email and password required")
		return
	}
	identity, err := a.Provider.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		a.authError(w, err)
		return
	}
	a.openSession(w, a.Auth.UserFor(identity))
}

func (a *App) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email and password required")
		return
	}
	identity, err := a.Provider.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		a.authError(w, err)
		return
	}
	a.openSession(w, a.Auth.UserFor(identity))
}

// GoogleSignIn exchanges a popup-minted ID token for a session.
func (a *App) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req googleSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IDToken == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "id_token required")
		return
	}
	claims, err := a.Google.VerifyIDToken(r.Context(), req.IDToken)
	if err != nil {
		a.error(w, http.StatusUnauthorized, string(domain.AuthCredentialInvalid), "google token rejected")
		return
	}
	sub, email, name, picture := google.Profile(claims)
	user := a.Auth.UserFor(&auth.Identity{UID: sub, Email: email, Name: name})
	user.Picture = picture
	a.openSession(w, user)
}

// AdminGate opens an administrator session from the credential gate. The gate
// is independent of the identity provider.
func (a *App) AdminGate(w http.ResponseWriter, r *http.Request) {
	var req gateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	user, err := a.Auth.GateSignIn(req.Username, req.Password)
	if err != nil {
		a.error(w, http.StatusUnauthorized, string(domain.AuthKind(err)), "gate credentials rejected")
		return
	}
	a.openSession(w, *user)
}

// SignOut acknowledges the client dropping its token. Sessions are stateless,
// so there is nothing to revoke server-side.
func (a *App) SignOut(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	claims := a.session(r)
	if claims == nil {
		a.error(w, http.StatusUnauthorized, "login_required", "no active session")
		return
	}
	a.json(w, http.StatusOK, userResponse{
		ID:    claims.Sub,
		Email: claims.Email,
		Role:  claims.Role,
		Gate:  claims.Gate,
	})
}

func (a *App) openSession(w http.ResponseWriter, user domain.User) {
	token, err := middleware.SignJWT(a.JWTSecret, middleware.NewSessionClaims(user))
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to mint session")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"token": token, "user": toUserResponse(user)})
}

func (a *App) authError(w http.ResponseWriter, err error) {
	kind := domain.AuthKind(err)
	status := http.StatusUnauthorized
	switch kind {
	case domain.AuthAccountExists:
		status = http.StatusConflict
	case domain.AuthWeakCredential, domain.AuthPopupBlocked, domain.AuthPopupCancelled:
		status = http.StatusBadRequest
	case domain.AuthDomainUnauthorized:
		status = http.StatusForbidden
	case domain.AuthGenericFailure:
		status = http.StatusBadGateway
	}
	a.error(w, status, string(kind), err.Error())
}
