// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"fmt"
)

// EventRouter is the lifecycle subset of *events.Router.
type EventRouter interface {
	Run(ctx context.Context) error
	Close() error
}

var errEventRouterStopped = errors.New("event router stopped unexpectedly")

// NewEventRouterFunc builds a fresh router. Watermill routers cannot be run
// twice, so the service asks for a new one on every restart.
type NewEventRouterFunc func() (EventRouter, error)

// EventRouterService runs the refresh-event router under supervision.
type EventRouterService struct {
	newRouter NewEventRouterFunc
	name      string
}

// NewEventRouterService creates the service.
func NewEventRouterService(newRouter NewEventRouterFunc) *EventRouterService {
	return &EventRouterService{
		newRouter: newRouter,
		name:      "event-router",
	}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	router, err := s.newRouter()
	if err != nil {
		return fmt.Errorf("create event router: %w", err)
	}
	defer func() { _ = router.Close() }()

	if err := router.Run(ctx); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	// Run returned without cancellation: the router was closed underneath
	// us. Report it so suture restarts with a fresh router.
	return errEventRouterStopped
}

// String implements fmt.Stringer.
func (s *EventRouterService) String() string {
	return s.name
}
