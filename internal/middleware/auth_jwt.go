package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"server/internal/domain"
)

// TokenClaims is the session payload. Gate sessions carry gate=true and a
// non-provider subject so the two authorization strategies stay distinct.
type TokenClaims struct {
	Sub      string      `json:"sub"`
	Email    string      `json:"email,omitempty"`
	Role     domain.Role `json:"role"`
	Gate     bool        `json:"gate,omitempty"`
	Exp      int64       `json:"exp"`
	Issuer   string      `json:"iss"`
	Audience string      `json:"aud"`
}

type sessionKey string

const (
	sessionContextKey sessionKey = "session"

	tokenIssuer   = "stylemorph"
	tokenAudience = "stylemorph-web"
	sessionTTL    = 24 * time.Hour
)

// NewSessionClaims builds claims for an authenticated user with the standard
// issuer, audience and expiry.
func NewSessionClaims(user domain.User) TokenClaims {
	return TokenClaims{
		Sub:      user.ID,
		Email:    user.Email,
		Role:     user.Role,
		Gate:     user.GateSession,
		Exp:      time.Now().Add(sessionTTL).Unix(),
		Issuer:   tokenIssuer,
		Audience: tokenAudience,
	}
}

func SignJWT(secret string, claims TokenClaims) (string, error) {
	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	headerJSON, _ := json.Marshal(header)
	payloadJSON, _ := json.Marshal(claims)
	headerEnc := base64.RawURLEncoding.EncodeToString(headerJSON)
	payloadEnc := base64.RawURLEncoding.EncodeToString(payloadJSON)
	data := headerEnc + "." + payloadEnc
	sig := hmacSign(secret, data)
	return data + "." + sig, nil
}

func hmacSign(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func VerifyJWT(secret, token string) (*TokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid token")
	}
	expected := hmacSign(secret, parts[0]+"."+parts[1])
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return nil, errors.New("invalid signature")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, err
	}
	var claims TokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, err
	}
	if claims.Exp != 0 && time.Now().Unix() > claims.Exp {
		return nil, errors.New("token expired")
	}
	return &claims, nil
}

// RequireAuth gates protected destinations. Requests without an active
// session get a login_required response the SPA turns into a redirect to the
// login page.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromRequest(secret, r)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "login_required")
				return
			}
			ctx := context.WithValue(r.Context(), sessionContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin additionally requires the resolved role to be admin. It must
// be nested inside RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := SessionFromContext(r.Context())
		if claims == nil || claims.Role != domain.RoleAdmin {
			writeAuthError(w, http.StatusForbidden, "admin_required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func claimsFromRequest(secret string, r *http.Request) (*TokenClaims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("missing authorization")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid authorization")
	}
	return VerifyJWT(secret, parts[1])
}

func writeAuthError(w http.ResponseWriter, code int, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": kind})
}

// SessionFromContext returns the verified session claims, or nil outside an
// authenticated request.
func SessionFromContext(ctx context.Context) *TokenClaims {
	if v, ok := ctx.Value(sessionContextKey).(*TokenClaims); ok {
		return v
	}
	return nil
}

// UserIDFromContext returns the session subject, or empty.
func UserIDFromContext(ctx context.Context) string {
	if claims := SessionFromContext(ctx); claims != nil {
		return claims.Sub
	}
	return ""
}

// ContextWithSession injects claims; used by handler tests.
func ContextWithSession(ctx context.Context, claims *TokenClaims) context.Context {
	if claims == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey, claims)
}
