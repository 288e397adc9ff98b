// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package store

import (
	"context"
	"sync"
	"time"

	"github.com/sunudeal/reco/internal/recommend"
)

// Memory is an in-process Store backed by a bounded slice. All access
// goes through a single mutex, so concurrent appends never interleave
// partial state.
type Memory struct {
	mu         sync.RWMutex
	entries    []recommend.Interaction
	maxEntries int
	closed     bool
}

// NewMemory creates a memory store holding at most maxEntries
// interactions. A non-positive maxEntries selects DefaultMaxEntries.
func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Memory{
		entries:    make([]recommend.Interaction, 0, maxEntries),
		maxEntries: maxEntries,
	}
}

// Append implements Store.
func (m *Memory) Append(ctx context.Context, in recommend.Interaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validate(in); err != nil {
		return err
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrUnavailable
	}

	m.entries = append(m.entries, in)
	if len(m.entries) > m.maxEntries {
		// Drop the oldest; shift in place to keep the backing array.
		overflow := len(m.entries) - m.maxEntries
		m.entries = m.entries[:copy(m.entries, m.entries[overflow:])]
	}
	return nil
}

// Query implements Store.
func (m *Memory) Query(ctx context.Context, userID string) ([]recommend.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrUnavailable
	}

	out := make([]recommend.Interaction, 0)
	for _, in := range m.entries {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	return out, nil
}

// Len implements Store.
func (m *Memory) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return 0, ErrUnavailable
	}
	return len(m.entries), nil
}

// Close implements Store. Subsequent calls return ErrUnavailable.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.entries = nil
	return nil
}
