// Package auth issues and verifies the signed bearer tokens that identify
// API callers.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload. Email identifies the subject; roles are not
// embedded in the token and are resolved against the user store on every
// admin-gated request.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 tokens with a shared secret and a
// fixed lifetime.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service. TTL defaults to one hour when
// non-positive.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given email, expiring after the configured
// lifetime.
func (s *TokenService) Issue(email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses the token and validates its signature and expiry. Any
// failure, malformed input included, is reported as an error; callers map it
// to an unauthorized rejection.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
