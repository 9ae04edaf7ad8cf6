package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arknat/hr-backend/internal/identity"
)

// TokenManager verifies caller tokens issued by the identity provider and
// signs impersonation tokens with the same shared secret, so the issued token
// is accepted by the provider like any of its own.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// VerifyCaller validates a bearer token and returns the identity account id
// (the sub claim) of the caller.
func (tm *TokenManager) VerifyCaller(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("could not identify the calling user: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("could not identify the calling user")
	}

	return claims.Subject, nil
}

// SignImpersonationToken issues a short-lived access token for the target
// account, carrying the target's app metadata so downstream role checks see
// the impersonated user.
func (tm *TokenManager) SignImpersonationToken(target *identity.Account, ttl time.Duration) (string, error) {
	if target == nil || target.ID == "" {
		return "", fmt.Errorf("target account required")
	}

	claims := jwt.MapClaims{}
	for k, v := range target.AppMetadata {
		claims[k] = v
	}
	claims["aud"] = "authenticated"
	claims["sub"] = target.ID
	claims["role"] = "authenticated"
	claims["exp"] = time.Now().Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// ExtractToken pulls the bearer token out of an Authorization header
func ExtractToken(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("invalid authorization header")
	}
	return parts[1], nil
}
