// Package auth issues and verifies the stateless bearer tokens that
// authenticate staff requests, and hashes account passwords.
package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/greenpress/apiserver/types"
)

// Claims is the signed payload of a session token: the principal plus
// the registered issued-at/expiry fields.
type Claims struct {
	UserID   int    `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens with a process-wide
// HMAC secret. Verification is pure computation: no store lookup is ever
// needed, and rotating the secret invalidates every outstanding token.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a manager for the given secret. A ttl of zero
// issues tokens without an expiry claim.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token encoding the principal's id, username and role.
func (tm *TokenManager) Issue(p types.Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   p.ID,
		Username: p.Username,
		Role:     p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.Itoa(p.ID),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if tm.ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(tm.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Parse verifies a token's signature and recovers the principal.
func (tm *TokenManager) Parse(tokenString string) (types.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return types.Principal{}, err
	}
	if !token.Valid {
		return types.Principal{}, errors.New("invalid token")
	}
	if claims.UserID < 1 || strings.TrimSpace(claims.Username) == "" {
		return types.Principal{}, errors.New("missing identity claims")
	}
	return types.Principal{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
