// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

type fakeRouter struct {
	runErr  error
	exitNow bool
	closed  atomic.Bool
}

func (r *fakeRouter) Run(ctx context.Context) error {
	if r.runErr != nil || r.exitNow {
		return r.runErr
	}
	<-ctx.Done()
	return nil
}

func (r *fakeRouter) Close() error {
	r.closed.Store(true)
	return nil
}

func TestEventRouterService_Serve(t *testing.T) {
	runErr := errors.New("subscribe failed")
	factoryErr := errors.New("bad config")

	tests := []struct {
		name    string
		router  *fakeRouter
		factory error
		cancel  bool
		wantErr error
	}{
		{"canceled", &fakeRouter{}, nil, true, context.Canceled},
		{"run error", &fakeRouter{runErr: runErr}, nil, false, runErr},
		{"unexpected stop", &fakeRouter{exitNow: true}, nil, false, errEventRouterStopped},
		{"factory error", nil, factoryErr, false, factoryErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEventRouterService(func() (EventRouter, error) {
				if tt.factory != nil {
					return nil, tt.factory
				}
				return tt.router, nil
			})

			ctx, cancel := context.WithCancel(context.Background())
			if tt.cancel {
				cancel()
			} else {
				defer cancel()
			}

			err := svc.Serve(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Serve() = %v, want %v", err, tt.wantErr)
			}
			if tt.router != nil && !tt.router.closed.Load() {
				t.Error("router not closed after Serve")
			}
		})
	}
}

func TestEventRouterService_RestartBuildsFreshRouter(t *testing.T) {
	var built atomic.Int32
	svc := NewEventRouterService(func() (EventRouter, error) {
		if built.Add(1) == 1 {
			return &fakeRouter{exitNow: true}, nil
		}
		return &fakeRouter{}, nil
	})

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 5,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for built.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-errCh

	if built.Load() < 2 {
		t.Errorf("router built %d times, want a rebuild after unexpected stop", built.Load())
	}
	if svc.String() != "event-router" {
		t.Errorf("String() = %q", svc.String())
	}
}
