// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTManager(&config.SecurityConfig{}); err == nil {
		t.Error("NewJWTManager() accepted empty secret")
	}
}

func TestValidateTokenRoundtrip(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	token, err := m.GenerateToken("user-42", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID() != "user-42" {
		t.Errorf("UserID() = %q, want user-42", claims.UserID())
	}
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	expired, err := m.GenerateToken("user-1", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	other, err := NewJWTManager(&config.SecurityConfig{JWTSecret: "ffffffffffffffffffffffffffffffff"})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	wrongSecret, err := other.GenerateToken("user-1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	noSubjectToken, err := noSubject.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: expired},
		{name: "wrong secret", token: wrongSecret},
		{name: "missing subject", token: noSubjectToken},
		{name: "malformed", token: "not.a.token"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := m.ValidateToken(tt.token)
			if !errors.Is(err, apperr.ErrUnauthorized) {
				t.Errorf("ValidateToken() error = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestValidateTokenRejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := m.ValidateToken(token); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("ValidateToken() error = %v, want ErrUnauthorized for alg=none", err)
	}
}

func TestUserIDContext(t *testing.T) {
	t.Parallel()

	ctx := ContextWithUserID(context.Background(), "user-7")
	if got := UserIDFromContext(ctx); got != "user-7" {
		t.Errorf("UserIDFromContext() = %q, want user-7", got)
	}
	if got := UserIDFromContext(context.Background()); got != "" {
		t.Errorf("UserIDFromContext() on empty context = %q, want empty", got)
	}
}
