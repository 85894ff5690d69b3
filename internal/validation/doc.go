// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation validates HTTP query parameters with go-playground/validator v10.
//
// The package provides a thread-safe singleton validator, request structs for
// the recommendation endpoints, and translation of validator errors into the
// API's VALIDATION_ERROR shape.
//
// # Usage
//
//	req := validation.RecommendationsRequest{UserID: id, N: n, MaxN: limits.MaxN}
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Field names in messages use the json tag of the field, so errors read
// "n must be less than or equal to 100" rather than "N ...".
package validation
