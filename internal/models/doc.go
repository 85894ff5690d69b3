// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package models defines the JSON shapes exchanged over the HTTP API.
//
// Every response uses the APIResponse envelope:
//
//	{"status":"success","data":{...},"metadata":{"timestamp":"..."}}
//	{"status":"error","data":null,"metadata":{...},"error":{"code":"...","message":"..."}}
package models
