// Package api - API types for network diagnosis
// These types define the contract of the HTTP endpoints.
// API is stateless, idempotent, and deterministic.
package api

import (
	"netdiag/core/engine"
	"netdiag/core/inference"
	"netdiag/core/linguistic"
	"netdiag/core/rules"
	"netdiag/core/types"
)

// DiagnoseResponse is the output of POST /diagnose
type DiagnoseResponse struct {
	// Request identification
	RequestID string `json:"request_id"`

	// InputHash fingerprints the symptoms; equal inputs hash equally
	InputHash string `json:"input_hash"`

	// Strategy is the defuzzification strategy used
	Strategy string `json:"strategy"`

	// Result is the diagnosis
	Result types.DiagnosisResult `json:"result"`

	// Degrees and Aggregation are set when ?explain=true
	Degrees     linguistic.Degrees    `json:"degrees,omitempty"`
	Aggregation inference.Aggregation `json:"aggregation,omitempty"`
}

// BatchRequest is the input to POST /diagnose/batch
type BatchRequest struct {
	Items []types.Symptoms `json:"items"`
}

// BatchResponse is the output of POST /diagnose/batch
type BatchResponse struct {
	RequestID string                  `json:"request_id"`
	Strategy  string                  `json:"strategy"`
	Count     int                     `json:"count"`
	Results   []types.DiagnosisResult `json:"results"`
}

// CaseResult is one built-in case with its diagnosis
type CaseResult struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Symptoms types.Symptoms        `json:"symptoms"`
	Expected string                `json:"expected,omitempty"`
	Result   types.DiagnosisResult `json:"result"`
}

// CasesResponse is the output of GET /cases
type CasesResponse struct {
	Count int          `json:"count"`
	Cases []CaseResult `json:"cases"`
}

// RulesResponse is the output of GET /rules
type RulesResponse struct {
	Count int          `json:"count"`
	Rules []rules.Rule `json:"rules"`
}

// MembershipResponse is the output of GET /membership
type MembershipResponse struct {
	Samples   int                     `json:"samples"`
	Variables []engine.VariableCurves `json:"variables"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an ErrorDetail
type ErrorResponse struct {
	RequestID string      `json:"request_id,omitempty"`
	Error     ErrorDetail `json:"error"`
}
