// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/sunudeal/reco/internal/recommend"
)

// Key prefixes for BadgerDB storage. The v1 tag allows a future format
// change to coexist with old data during migration.
const (
	interactionKeyPrefix     = "ix:v1:"
	interactionUserKeyPrefix = "ixu:v1:"
	interactionSeqKey        = "ix_seq"
)

// Badger is a durable Store backed by an embedded BadgerDB. Records
// are keyed by a monotonic sequence number so iteration order is
// insertion order, with a secondary per-user index for queries.
type Badger struct {
	db  *badger.DB
	seq *badger.Sequence

	mu         sync.Mutex // serializes append+evict
	count      int
	maxEntries int
}

// NewBadger opens a BadgerDB-backed store at path. A non-positive
// maxEntries selects DefaultMaxEntries.
func NewBadger(path string, maxEntries int) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs
	return newBadger(opts, maxEntries)
}

// NewBadgerInMemory opens a non-persistent BadgerDB store, used in
// tests.
func NewBadgerInMemory(maxEntries int) (*Badger, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return newBadger(opts, maxEntries)
}

func newBadger(opts badger.Options, maxEntries int) (*Badger, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for interactions: %w", err)
	}

	seq, err := db.GetSequence([]byte(interactionSeqKey), 100)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open interaction sequence: %w", err)
	}

	s := &Badger{db: db, seq: seq, maxEntries: maxEntries}
	if s.count, err = s.countEntries(); err != nil {
		_ = seq.Release()
		_ = db.Close()
		return nil, fmt.Errorf("count stored interactions: %w", err)
	}
	return s, nil
}

func (s *Badger) countEntries() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(interactionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Append implements Store.
func (s *Badger) Append(ctx context.Context, in recommend.Interaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validate(in); err != nil {
		return err
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	seq, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("%w: next sequence: %v", ErrUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.db.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%020d", interactionKeyPrefix, seq))
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set interaction: %w", err)
		}
		userKey := []byte(fmt.Sprintf("%s%s:%020d", interactionUserKeyPrefix, in.UserID, seq))
		if err := txn.Set(userKey, nil); err != nil {
			return fmt.Errorf("set user index: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.count++
	if s.count > s.maxEntries {
		if err := s.evictOldestLocked(s.count - s.maxEntries); err != nil {
			return fmt.Errorf("%w: evict: %v", ErrUnavailable, err)
		}
	}
	return nil
}

// evictOldestLocked removes the n oldest interactions and their user
// index entries. Caller must hold mu.
func (s *Badger) evictOldestLocked(n int) error {
	type victim struct {
		key     []byte
		userKey []byte
	}
	victims := make([]victim, 0, n)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(interactionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(victims) < n; it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			var in recommend.Interaction
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &in)
			}); err != nil {
				return fmt.Errorf("unmarshal interaction %s: %w", key, err)
			}
			seqPart := strings.TrimPrefix(string(key), interactionKeyPrefix)
			userKey := []byte(interactionUserKeyPrefix + in.UserID + ":" + seqPart)
			victims = append(victims, victim{key: key, userKey: userKey})
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, v := range victims {
			if err := txn.Delete(v.key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete interaction: %w", err)
			}
			if err := txn.Delete(v.userKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete user index: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.count -= len(victims)
	return nil
}

// Query implements Store.
func (s *Badger) Query(ctx context.Context, userID string) ([]recommend.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Collect the sequence numbers from the user index, then fetch the
	// records. Sequence order is insertion order.
	out := make([]recommend.Interaction, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(interactionUserKeyPrefix + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			seqPart := strings.TrimPrefix(string(it.Item().Key()), string(prefix))
			item, err := txn.Get([]byte(interactionKeyPrefix + seqPart))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue // evicted between index scan and fetch
			}
			if err != nil {
				return fmt.Errorf("get interaction: %w", err)
			}
			var in recommend.Interaction
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &in)
			}); err != nil {
				return fmt.Errorf("unmarshal interaction: %w", err)
			}
			out = append(out, in)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return out, nil
}

// Len implements Store.
func (s *Badger) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count, nil
}

// Close implements Store.
func (s *Badger) Close() error {
	if err := s.seq.Release(); err != nil {
		_ = s.db.Close()
		return fmt.Errorf("release interaction sequence: %w", err)
	}
	return s.db.Close()
}

// RunGC triggers a BadgerDB value-log garbage collection cycle.
// Intended to be called periodically by a maintenance service; a
// return of badger.ErrNoRewrite means there was nothing to collect.
func (s *Badger) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}
