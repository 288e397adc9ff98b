// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

// blockingService runs until its context is canceled.
type blockingService struct {
	name   string
	starts atomic.Int32
}

func (s *blockingService) Serve(ctx context.Context) error {
	s.starts.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

func (s *blockingService) String() string { return s.name }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestTreeConstruction(t *testing.T) {
	tree, err := NewTree(testLogger(), TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}
	if tree.Root() == nil {
		t.Error("root supervisor should not be nil")
	}
}

func TestTreeDefaultsForZeroConfig(t *testing.T) {
	tree, err := NewTree(testLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}
	if tree.config.FailureThreshold != 5.0 {
		t.Errorf("FailureThreshold = %f, want 5.0", tree.config.FailureThreshold)
	}
	if tree.config.FailureDecay != 30.0 {
		t.Errorf("FailureDecay = %f, want 30.0", tree.config.FailureDecay)
	}
	if tree.config.FailureBackoff != 15*time.Second {
		t.Errorf("FailureBackoff = %v, want 15s", tree.config.FailureBackoff)
	}
	if tree.config.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", tree.config.ShutdownTimeout)
	}
}

func TestTreeLifecycle(t *testing.T) {
	tree, err := NewTree(testLogger(), TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   100 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}

	storageSvc := &blockingService{name: "mock-storage"}
	apiSvc := &blockingService{name: "mock-api"}
	tree.AddStorageService(storageSvc)
	tree.AddAPIService(apiSvc)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	errCh := tree.ServeBackground(ctx)
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context end", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop after context cancellation")
	}

	if storageSvc.starts.Load() == 0 {
		t.Error("storage service was never started")
	}
	if apiSvc.starts.Load() == 0 {
		t.Error("api service was never started")
	}
}

func TestTreeRestartsCrashedService(t *testing.T) {
	tree, err := NewTree(testLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   50 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}

	crashy := &crashingService{failures: 2}
	tree.AddStorageService(crashy)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	<-tree.ServeBackground(ctx)

	// Two crashes plus the final successful run.
	if got := crashy.starts.Load(); got < 3 {
		t.Errorf("service started %d times, want >= 3 (restarted after crashes)", got)
	}
}

type crashingService struct {
	failures int32
	starts   atomic.Int32
}

func (s *crashingService) Serve(ctx context.Context) error {
	n := s.starts.Add(1)
	if n <= s.failures {
		return errors.New("simulated crash")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *crashingService) String() string { return "crashing-service" }
