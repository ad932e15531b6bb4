package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"netdiag/core/engine"
	lv "netdiag/core/linguistic"
	"netdiag/core/types"
	"netdiag/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	scenarioA = types.Symptoms{UploadSpeed: 1.5, PacketLoss: 18, DNSErrors: 0.2, WiFiSignal: 85, Connection: 40}
	scenarioB = types.Symptoms{UploadSpeed: 5, PacketLoss: 3, DNSErrors: 7, WiFiSignal: 75, Connection: 60}
	scenarioC = types.Symptoms{UploadSpeed: 10, PacketLoss: 0, DNSErrors: 0, WiFiSignal: 100, Connection: 100}
)

func newServer(t *testing.T, cfg config.ServerConfig) *Server {
	t.Helper()
	eng, err := engine.NewBuilder(engine.Config{}).Build()
	require.NoError(t, err)
	return NewServer(eng, "test", cfg, nil)
}

func do(t *testing.T, s *Server, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestDiagnose(t *testing.T) {
	s := newServer(t, config.Default().Server)

	rec := do(t, s, http.MethodPost, "/diagnose", scenarioA)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp DiagnoseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, lv.RouterFailure, resp.Result.Diagnosis)
	assert.InDelta(t, 75, resp.Result.Score, 1e-9)
	assert.Equal(t, "discrete", resp.Strategy)
	assert.Len(t, resp.Result.Scores, 7)
	assert.NotEmpty(t, resp.Result.Recommendations)
	assert.Nil(t, resp.Degrees)

	_, err := uuid.Parse(resp.RequestID)
	assert.NoError(t, err)
	assert.Equal(t, resp.RequestID, rec.Header().Get(RequestIDHeader))

	var again DiagnoseResponse
	require.NoError(t, json.Unmarshal(do(t, s, http.MethodPost, "/diagnose", scenarioA).Body.Bytes(), &again))
	assert.Len(t, resp.InputHash, 64)
	assert.Equal(t, resp.InputHash, again.InputHash)
	assert.NotEqual(t, resp.RequestID, again.RequestID)
}

func TestDiagnoseExplain(t *testing.T) {
	s := newServer(t, config.Default().Server)

	rec := do(t, s, http.MethodPost, "/diagnose?explain=true", scenarioB)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DiagnoseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, lv.DNSProblem, resp.Result.Diagnosis)
	assert.InDelta(t, 1.0, resp.Degrees["dns_errors"]["frecuente"], 1e-9)
	assert.Contains(t, resp.Aggregation, lv.DNSProblem)
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := newServer(t, config.Default().Server)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestBadRequests(t *testing.T) {
	cfg := config.Default().Server
	cfg.MaxBatch = 2
	s := newServer(t, cfg)

	tests := []struct {
		name   string
		method string
		target string
		body   interface{}
		status int
		code   string
	}{
		{name: "malformed json", method: http.MethodPost, target: "/diagnose", body: `{"connection":`, status: http.StatusBadRequest, code: "INVALID_JSON"},
		{name: "unknown field", method: http.MethodPost, target: "/diagnose", body: `{"latency": 4}`, status: http.StatusBadRequest, code: "INVALID_JSON"},
		{name: "wrong type", method: http.MethodPost, target: "/diagnose", body: `{"connection": "high"}`, status: http.StatusBadRequest, code: "INVALID_JSON"},
		{name: "bad explain flag", method: http.MethodPost, target: "/diagnose?explain=maybe", body: scenarioA, status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "empty batch", method: http.MethodPost, target: "/diagnose/batch", body: BatchRequest{}, status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "batch too large", method: http.MethodPost, target: "/diagnose/batch", body: BatchRequest{Items: []types.Symptoms{scenarioA, scenarioB, scenarioC}}, status: http.StatusRequestEntityTooLarge, code: "BATCH_TOO_LARGE"},
		{name: "bad samples", method: http.MethodGet, target: "/membership?samples=zero", status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.target, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestBatchKeepsInputOrder(t *testing.T) {
	cfg := config.Default().Server
	cfg.BatchLimit = 2
	s := newServer(t, cfg)

	items := []types.Symptoms{scenarioC, scenarioA, scenarioB, scenarioC, scenarioB}
	rec := do(t, s, http.MethodPost, "/diagnose/batch", BatchRequest{Items: items})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, len(items), resp.Count)

	want := []string{lv.NoFault, lv.RouterFailure, lv.DNSProblem, lv.NoFault, lv.DNSProblem}
	for i, r := range resp.Results {
		assert.Equal(t, want[i], r.Diagnosis, "item %d", i)
	}
}

func TestCases(t *testing.T) {
	s := newServer(t, config.Default().Server)

	rec := do(t, s, http.MethodGet, "/cases", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CasesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, len(resp.Cases), resp.Count)
	for _, c := range resp.Cases {
		if c.Expected != "" {
			assert.Equal(t, c.Expected, c.Result.Diagnosis, c.ID)
		}
	}
}

func TestRulesAndMembership(t *testing.T) {
	s := newServer(t, config.Default().Server)

	rec := do(t, s, http.MethodGet, "/rules", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rules RulesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rules))
	assert.Equal(t, 31, rules.Count)
	assert.Equal(t, "R1", rules.Rules[0].ID)

	rec = do(t, s, http.MethodGet, "/membership?samples=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var curves MembershipResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &curves))
	assert.Equal(t, 10, curves.Samples)
	require.Len(t, curves.Variables, 12)
	assert.Len(t, curves.Variables[0].Terms[0].Points, 11)
}

func TestVersionAndUnknownRoute(t *testing.T) {
	s := newServer(t, config.Default().Server)

	rec := do(t, s, http.MethodGet, "/version", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var v map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "test", v["version"])
	assert.Equal(t, "discrete", v["defuzzifier"])

	rec = do(t, s, http.MethodGet, "/diagnose", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	cfg := config.Default().Server
	cfg.Addr = "127.0.0.1:0"
	s := newServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, s.ListenAndServe(ctx))
}
