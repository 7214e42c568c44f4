// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

// Package apperr defines the error kinds shared across services and the HTTP
// layer. Services wrap these sentinels with fmt.Errorf("...: %w", ...) so the
// API layer can map any error chain to a status code with errors.Is.
package apperr

import "errors"

// Sentinel error kinds.
var (
	// ErrNotFound indicates the requested record does not exist, or a
	// recommendation request produced no candidates after filtering.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the caller's identity was rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller is authenticated but not permitted,
	// typically a non-owner attempting to modify a listing.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indicates a downstream collaborator did not respond.
	ErrUnavailable = errors.New("service unavailable")

	// ErrBadRequest indicates invalid input at a service boundary.
	ErrBadRequest = errors.New("bad request")
)

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsUnauthorized reports whether err wraps ErrUnauthorized.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// IsForbidden reports whether err wraps ErrForbidden.
func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

// IsUnavailable reports whether err wraps ErrUnavailable.
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }

// IsBadRequest reports whether err wraps ErrBadRequest.
func IsBadRequest(err error) bool { return errors.Is(err, ErrBadRequest) }
