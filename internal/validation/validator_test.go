// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestRecommendationsRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       RecommendationsRequest
		wantErr   bool
		wantField string
		wantTag   string
	}{
		{"default", RecommendationsRequest{UserID: 1, N: 10, MaxN: 100}, false, "", ""},
		{"zero n", RecommendationsRequest{UserID: 1, N: 0, MaxN: 100}, false, "", ""},
		{"at ceiling", RecommendationsRequest{UserID: 1, N: 100, MaxN: 100}, false, "", ""},
		{"unknown user id", RecommendationsRequest{UserID: -5, N: 3, MaxN: 100}, false, "", ""},
		{"no ceiling", RecommendationsRequest{UserID: 1, N: 5000}, false, "", ""},
		{"negative n", RecommendationsRequest{UserID: 1, N: -1, MaxN: 100}, true, "n", "gte"},
		{"above ceiling", RecommendationsRequest{UserID: 1, N: 101, MaxN: 100}, true, "n", "lte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if (verr != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() = %v, wantErr %v", verr, tt.wantErr)
			}
			if verr == nil {
				return
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("error = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestSimilarItemsRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     SimilarItemsRequest
		wantErr bool
	}{
		{"default", SimilarItemsRequest{ItemID: 7, K: 5, MaxK: 50}, false},
		{"zero", SimilarItemsRequest{ItemID: 7, K: 0, MaxK: 50}, false},
		{"negative", SimilarItemsRequest{ItemID: 7, K: -2, MaxK: 50}, true},
		{"too many", SimilarItemsRequest{ItemID: 7, K: 51, MaxK: 50}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if (verr != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() = %v, wantErr %v", verr, tt.wantErr)
			}
		})
	}
}

func TestRefreshRequest(t *testing.T) {
	tests := []struct {
		name    string
		reason  string
		wantErr bool
	}{
		{"empty", "", false},
		{"plain", "catalog import", false},
		{"too long", strings.Repeat("x", 65), true},
		{"control chars", "bad\nreason", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&RefreshRequest{Reason: tt.reason})
			if (verr != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() = %v, wantErr %v", verr, tt.wantErr)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		req  interface{}
		want string
	}{
		{"lte uses json name", &RecommendationsRequest{N: 101, MaxN: 100}, "n must be less than or equal to 100"},
		{"gte", &SimilarItemsRequest{K: -1}, "k must be greater than or equal to 0"},
		{"max string", &RefreshRequest{Reason: strings.Repeat("y", 65)}, "reason must be at most 64 characters"},
		{"printascii", &RefreshRequest{Reason: "tab\there"}, "reason must contain printable ASCII characters only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(tt.req)
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if verr.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", verr.Error(), tt.want)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	verr := ValidateStruct(&RecommendationsRequest{N: 500, MaxN: 100})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "n" {
		t.Errorf("Details[field] = %v, want n", apiErr.Details["field"])
	}
	if apiErr.Details["value"] != 500 {
		t.Errorf("Details[value] = %v, want 500", apiErr.Details["value"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	type pair struct {
		A int `json:"a" validate:"gte=1"`
		B int `json:"b" validate:"lte=2"`
	}
	verr := ValidateStruct(&pair{A: 0, B: 3})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	apiErr := verr.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %v, want two entries", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "a: ") || !strings.Contains(apiErr.Message, "b: ") {
		t.Errorf("Message = %q, want both fields listed", apiErr.Message)
	}
}

func TestToAPIError_Empty(t *testing.T) {
	verr := &RequestValidationError{}
	if got := verr.ToAPIError().Message; got != "Validation failed" {
		t.Errorf("Message = %q", got)
	}
	if verr.Error() != "validation failed" {
		t.Errorf("Error() = %q", verr.Error())
	}
}
