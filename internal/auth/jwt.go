// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

// Package auth validates the bearer tokens that identify users. Token
// issuance is handled by the identity provider, not this service; only
// validation and claim extraction live here.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/config"
)

// Claims are the token claims the service reads. The subject claim carries
// the user ID used for recommendations and ownership checks.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID returns the authenticated user's identifier.
func (c *Claims) UserID() string {
	return c.Subject
}

// JWTManager validates bearer tokens with an HMAC-SHA256 shared secret.
type JWTManager struct {
	secret []byte
}

// NewJWTManager creates a token validator from the security configuration.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}
	return &JWTManager{secret: []byte(cfg.JWTSecret)}, nil
}

// ValidateToken parses and validates a token string, rejecting tokens with
// an unexpected signing algorithm, a bad signature, or an expired or
// not-yet-valid lifetime. Failures come back as apperr.ErrUnauthorized.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %v: %w", err, apperr.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", apperr.ErrUnauthorized)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token missing subject claim: %w", apperr.ErrUnauthorized)
	}

	return claims, nil
}

// GenerateToken signs a token for the user, valid for ttl. The server never
// issues tokens in production; this exists for tests and local development.
func (m *JWTManager) GenerateToken(userID string, ttl time.Duration) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signedToken, nil
}

type contextKey string

const userIDContextKey contextKey = "auth_user_id"

// ContextWithUserID stores the authenticated user ID in the context.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the authenticated user ID, or empty when the
// request was not authenticated.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDContextKey).(string); ok {
		return id
	}
	return ""
}
