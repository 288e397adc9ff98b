// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package store

import (
	"context"
	"errors"

	"github.com/sunudeal/reco/internal/recommend"
)

// Sentinel errors returned by Store implementations.
var (
	// ErrUnavailable indicates the backing storage cannot be reached.
	// Handlers map it to a storage-unavailable API error.
	ErrUnavailable = errors.New("interaction storage unavailable")
	// ErrInvalidInteraction indicates the interaction is missing
	// required fields or has an unknown type.
	ErrInvalidInteraction = errors.New("invalid interaction")
)

// DefaultMaxEntries is the global interaction capacity used when a
// configuration does not specify one.
const DefaultMaxEntries = 500

// Store records user interactions and serves them back per user.
// Implementations are safe for concurrent use and enforce a global
// capacity by dropping the oldest interactions first.
type Store interface {
	// Append records one interaction. A zero Timestamp is stamped with
	// the current time.
	Append(ctx context.Context, in recommend.Interaction) error
	// Query returns the interactions recorded for a user, oldest
	// first. An unknown user yields an empty slice, not an error.
	Query(ctx context.Context, userID string) ([]recommend.Interaction, error)
	// Len returns the total number of stored interactions.
	Len(ctx context.Context) (int, error)
	// Close releases backend resources.
	Close() error
}

// validate checks the required interaction fields shared by all
// backends.
func validate(in recommend.Interaction) error {
	if in.UserID == "" || in.ProductID == "" {
		return ErrInvalidInteraction
	}
	if !in.Type.Valid() {
		return ErrInvalidInteraction
	}
	if in.Price < 0 {
		return ErrInvalidInteraction
	}
	return nil
}
