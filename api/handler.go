package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"netdiag/core/cases"
	"netdiag/core/defuzzify"
	"netdiag/core/determinism"
	"netdiag/core/types"
)

// handleDiagnose handles POST /diagnose
func (s *Server) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	var symptoms types.Symptoms
	if err := s.decode(w, r, &symptoms); err != nil {
		s.writeError(w, r, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	explain, err := boolParam(r, "explain")
	if err != nil {
		s.writeError(w, r, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := determinism.HashJSON(symptoms)
	if err != nil {
		s.writeError(w, r, "VALIDATION_ERROR", "symptoms cannot be encoded: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp := DiagnoseResponse{
		RequestID: RequestID(r.Context()),
		InputHash: hash.Hex(),
		Strategy:  s.engine.Strategy(),
	}
	if explain {
		ex := s.engine.Explain(symptoms)
		resp.Result = ex.Result
		resp.Degrees = ex.Degrees
		resp.Aggregation = ex.Aggregation
	} else {
		resp.Result = s.engine.Diagnose(symptoms)
	}

	status := http.StatusOK
	if resp.Result.Failed() {
		status = http.StatusInternalServerError
	}
	s.writeJSON(w, resp, status)
}

// handleBatch handles POST /diagnose/batch
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Items) == 0 {
		s.writeError(w, r, "VALIDATION_ERROR", "items must not be empty", http.StatusBadRequest)
		return
	}
	if s.cfg.MaxBatch > 0 && len(req.Items) > s.cfg.MaxBatch {
		s.writeError(w, r, "BATCH_TOO_LARGE",
			fmt.Sprintf("batch of %d items exceeds the limit of %d", len(req.Items), s.cfg.MaxBatch),
			http.StatusRequestEntityTooLarge)
		return
	}

	results, err := s.engine.DiagnoseBatch(r.Context(), req.Items, s.cfg.BatchLimit)
	if err != nil {
		s.writeError(w, r, "CANCELLED", err.Error(), http.StatusServiceUnavailable)
		return
	}

	s.writeJSON(w, BatchResponse{
		RequestID: RequestID(r.Context()),
		Strategy:  s.engine.Strategy(),
		Count:     len(results),
		Results:   results,
	}, http.StatusOK)
}

// handleCases handles GET /cases
func (s *Server) handleCases(w http.ResponseWriter, r *http.Request) {
	builtin := cases.Builtin()
	out := make([]CaseResult, 0, len(builtin))
	for _, c := range builtin {
		out = append(out, CaseResult{
			ID:       c.ID,
			Name:     c.Name,
			Symptoms: c.Symptoms,
			Expected: c.Expected,
			Result:   s.engine.Diagnose(c.Symptoms),
		})
	}
	s.writeJSON(w, CasesResponse{Count: len(out), Cases: out}, http.StatusOK)
}

// handleRules handles GET /rules
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	rs := s.engine.Rules()
	s.writeJSON(w, RulesResponse{Count: len(rs), Rules: rs}, http.StatusOK)
}

// handleMembership handles GET /membership
func (s *Server) handleMembership(w http.ResponseWriter, r *http.Request) {
	samples := defuzzify.DefaultSamples
	if raw := r.URL.Query().Get("samples"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 10000 {
			s.writeError(w, r, "VALIDATION_ERROR", "samples must be an integer in [1,10000]", http.StatusBadRequest)
			return
		}
		samples = n
	}

	s.writeJSON(w, MembershipResponse{
		Samples:   samples,
		Variables: s.engine.Curves(samples),
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"rules":   len(s.engine.Rules()),
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "netdiag",
		"defuzzifier": s.engine.Strategy(),
		"api_version": "v1",
	}, http.StatusOK)
}

func boolParam(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", name, raw)
	}
	return v, nil
}
