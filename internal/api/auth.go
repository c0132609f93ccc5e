// Package api implements the read-only HTTP monitoring server described in
// SPEC_FULL.md's domain-stack section: GET /status, GET /agents, and
// GET /agents/{id}/history, gated behind a bearer JWT. Grounded on
// server/api/api.go's chi-based API type and server/token.go's
// generateJWT/AuthHandler pair, simplified for a single operator credential
// (no per-user store) and read-only routes (no parseJSON request bodies
// beyond the login endpoint itself).
package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator issues and validates the one operator bearer token the
// monitoring server's config names: an admin username/bcrypt-hash pair
// that IssueToken checks each time a client logs in (POST /login), minting
// a token on success. No token is minted at startup.
type Authenticator struct {
	AdminUser         string
	AdminPasswordHash string
	JWTSecret         []byte
}

// IssueToken verifies password against AdminPasswordHash and, on success,
// mints a signed JWT bearer token for AdminUser. Grounded on
// server/token.go's generateJWT, simplified to sign with the configured
// secret alone -- there is no per-user password/logout-time salt to mix in
// since there is exactly one operator credential, not a user table.
func (a Authenticator) IssueToken(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(a.AdminPasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("api: incorrect admin password")
	}

	claims := jwt.MapClaims{
		"iss": "cryptosim",
		"sub": a.AdminUser,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signed, err := tok.SignedString(a.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("api: signing token: %w", err)
	}
	return signed, nil
}

// Middleware rejects any request without a valid `Authorization: Bearer
// <token>` header signed by JWTSecret, per server/token.go's AuthHandler --
// simplified to a single required check, since every route this server
// exposes is equally sensitive observability data, not a mix of public and
// gated resources.
func (a Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		tok, err := bearerToken(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		_, err = jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
			return a.JWTSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer("cryptosim"), jwt.WithLeeway(time.Minute))
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, req)
	})
}

func bearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}
	return strings.TrimSpace(parts[1]), nil
}
