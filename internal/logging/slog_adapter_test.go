// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	slogger := NewSlogLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	slogger.With("service", "refresh").WithGroup("svc").Info("restarted",
		"attempt", 2,
		"backoff", time.Second,
		slog.Bool("failed", true),
	)

	output := buf.String()
	for _, want := range []string{`"service":"refresh"`, `"svc.attempt":2`, `"svc.failed":true`, "restarted", `"level":"info"`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWatermillAdapter(t *testing.T) {
	var buf bytes.Buffer
	var adapter watermill.LoggerAdapter = NewWatermillAdapter(zerolog.New(&buf))

	adapter.With(watermill.LogFields{"topic": "recommend.refresh"}).
		Error("handler failed", errors.New("boom"), watermill.LogFields{"attempt": 1})

	output := buf.String()
	for _, want := range []string{`"topic":"recommend.refresh"`, `"attempt":1`, `"error":"boom"`, "handler failed"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}
