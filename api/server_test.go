package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiring-blueprint/db/clickhouse"
	"hiring-blueprint/db/postgres"
	"hiring-blueprint/decision/assessment"
	"hiring-blueprint/decision/enrichment"
	"hiring-blueprint/decision/policy"
	"hiring-blueprint/decision/route"
)

type fakeSink struct {
	mu     sync.Mutex
	events []clickhouse.Event
	err    error
}

func (f *fakeSink) Ping(context.Context) error { return f.err }

func (f *fakeSink) InsertEvents(_ context.Context, events []clickhouse.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, events...)
	return nil
}

func (f *fakeSink) RouteDistribution(context.Context, time.Time) ([]clickhouse.RouteCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []clickhouse.RouteCount{{Route: "hybrid", Complexity: "standard", Count: 3}}, nil
}

type downStore struct{ *postgres.MemoryStore }

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func newTestServer(t *testing.T, cfg *Config) (*Server, *fakeSink, http.Handler) {
	t.Helper()
	sink := &fakeSink{}
	s := NewServer(assessment.NewEngine(policy.Default()), cfg).
		WithStore(postgres.NewMemoryStore()).
		WithEvents(sink)
	return s, sink, s.Router()
}

func do(t *testing.T, h http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const walkerResponses = `{"responses": {
	"1": "Marketplace / Two-sided platform",
	"4": {"feature1": "booking", "feature2": "payments", "feature3": "reviews_ratings"},
	"5": "Web only",
	"6": "Open to either",
	"7": "$10,000 - $20,000",
	"8": "2-3 months",
	"15": {"email": "Sam@Example.com", "project_name": "Walkies"}
}, "save": true, "enrich": true}`

func TestHealthAndVersion(t *testing.T) {
	_, _, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	rec = do(t, h, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/version", nil)
	assert.Contains(t, rec.Body.String(), "hiring-blueprint")
}

func TestReady_StoreDown(t *testing.T) {
	s := NewServer(assessment.NewEngine(policy.Default()), nil).WithStore(downStore{postgres.NewMemoryStore()})
	rec := do(t, s.Router(), http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "STORE_UNAVAILABLE")
}

func TestQuestionsAndVerticals(t *testing.T) {
	_, _, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/api/v1/questions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var qs struct {
		Questions []assessment.Question `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &qs))
	assert.Len(t, qs.Questions, 28)

	rec = do(t, h, http.MethodGet, "/api/v1/verticals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var vs []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vs))
	assert.Len(t, vs, 11)
}

func TestAssess_SavesEnrichesAndEmits(t *testing.T) {
	_, sink, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/assess", walkerResponses)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AssessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.ID)
	require.NotNil(t, resp.Report)
	require.NotNil(t, resp.Enrichment)
	assert.Equal(t, enrichment.SourceTemplate, resp.Enrichment.Source)
	assert.Equal(t, "sam@example.com", resp.Report.Contact.Email)

	require.Len(t, sink.events, 1)
	assert.Equal(t, clickhouse.EventAssessed, sink.events[0].Kind)
	assert.Equal(t, *resp.ID, sink.events[0].AssessmentID)

	rec = do(t, h, http.MethodGet, "/api/v1/assessments/"+resp.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"project_name":"Walkies"`)

	rec = do(t, h, http.MethodGet, "/api/v1/assessments/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssess_AnalyticsFailureDoesNotFailRequest(t *testing.T) {
	_, sink, h := newTestServer(t, nil)
	sink.err = errors.New("clickhouse down")

	rec := do(t, h, http.MethodPost, "/api/v1/assess", walkerResponses)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDecisionEndpoints(t *testing.T) {
	_, _, h := newTestServer(t, nil)
	body := map[string]any{"responses": map[string]any{
		"1": "Healthcare/Telemedicine / Wellness",
		"7": "$20,000 - $40,000",
	}}

	rec := do(t, h, http.MethodPost, "/api/v1/route", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var routeResp struct {
		Result assessment.RouteResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &routeResp))
	assert.Equal(t, route.Custom, routeResp.Result.Route)

	rec = do(t, h, http.MethodPost, "/api/v1/estimate", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"team_options"`)

	rec = do(t, h, http.MethodPost, "/api/v1/phases", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mvp_features"`)

	rec = do(t, h, http.MethodPost, "/api/v1/optimize", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"budget_gap"`)
}

func TestDecisionEndpoints_BadBody(t *testing.T) {
	_, _, h := newTestServer(t, nil)
	for _, body := range []string{"{", `{"responses": {"one": "x"}}`, `{"responses": []}`} {
		rec := do(t, h, http.MethodPost, "/api/v1/route", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "INVALID_REQUEST")
	}

	rec := do(t, h, http.MethodPost, "/api/v1/route", "{}")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProgress_RoundTripAndStale(t *testing.T) {
	_, sink, h := newTestServer(t, nil)
	path := "/api/v1/progress/Sam@Example.com"

	rec := do(t, h, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	newer := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	rec = do(t, h, http.MethodPut, path, ProgressRequest{
		CurrentStep: 6,
		Responses:   assessment.Responses{assessment.QCategory: "Other"},
		UpdatedAt:   newer,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, path, ProgressRequest{CurrentStep: 2, UpdatedAt: newer.Add(-time.Hour)})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/progress/sam@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got ProgressResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 6, got.CurrentStep)
	assert.Equal(t, "sam@example.com", got.Email)
	assert.Equal(t, 1, got.Summary.Answered)

	require.Len(t, sink.events, 1)
	assert.Equal(t, clickhouse.EventProgressSaved, sink.events[0].Kind)
}

func TestProgress_NoStore(t *testing.T) {
	s := NewServer(assessment.NewEngine(policy.Default()), nil)
	rec := do(t, s.Router(), http.MethodGet, "/api/v1/progress/a@b.c", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouteDistribution(t *testing.T) {
	_, sink, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/api/v1/analytics/routes?window=168h", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"route":"hybrid"`)

	rec = do(t, h, http.MethodGet, "/api/v1/analytics/routes?window=soon", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	sink.err = errors.New("down")
	rec = do(t, h, http.MethodGet, "/api/v1/analytics/routes", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAPIKeyAndCORS(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "secret"
	cfg.CORSOrigins = []string{"https://app.example.com"}
	_, _, h := newTestServer(t, cfg)

	rec := do(t, h, http.MethodGet, "/api/v1/questions", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/questions", nil, "X-API-Key", "secret", "Origin", "https://app.example.com")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, h, http.MethodGet, "/health", nil, "Origin", "https://evil.example.com")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, h, http.MethodOptions, "/api/v1/assess", nil, "Origin", "https://app.example.com")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
