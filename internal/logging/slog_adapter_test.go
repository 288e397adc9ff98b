// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSlogHandlerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{"debug", slog.LevelDebug, `"level":"debug"`},
		{"info", slog.LevelInfo, `"level":"info"`},
		{"warn", slog.LevelWarn, `"level":"warn"`},
		{"error", slog.LevelError, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			zl := zerolog.New(&buf).Level(zerolog.TraceLevel)
			logger := slog.New(NewSlogHandlerWithLogger(zl))

			logger.Log(t.Context(), tt.level, "msg")

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %s in output, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestSlogHandlerAttrs(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	logger := slog.New(NewSlogHandlerWithLogger(zl))

	logger.Info("msg", "service", "http-server", "restarts", int64(3))

	out := buf.String()
	if !strings.Contains(out, `"service":"http-server"`) {
		t.Errorf("expected string attr, got %q", out)
	}
	if !strings.Contains(out, `"restarts":3`) {
		t.Errorf("expected int attr, got %q", out)
	}
}

func TestSlogHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	logger := slog.New(NewSlogHandlerWithLogger(zl)).
		With("component", "supervisor").
		WithGroup("tree")

	logger.Info("msg", "layer", "api")

	out := buf.String()
	if !strings.Contains(out, `"component":"supervisor"`) {
		t.Errorf("expected pre-configured attr, got %q", out)
	}
	if !strings.Contains(out, `"tree.layer":"api"`) {
		t.Errorf("expected group-prefixed attr, got %q", out)
	}
}

func TestSlogHandlerEnabled(t *testing.T) {
	zl := zerolog.New(nil).Level(zerolog.WarnLevel)
	h := NewSlogHandlerWithLogger(zl)

	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}
