package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiring-blueprint/decision/assessment"
	"hiring-blueprint/decision/policy"
	"hiring-blueprint/decision/route"
)

type failingEnricher struct {
	TemplateEnricher
	calls int
}

func (f *failingEnricher) Enrich(context.Context, Input) (Result, error) {
	f.calls++
	return Result{}, errors.New("upstream unavailable")
}

type partialEnricher struct{ TemplateEnricher }

func (partialEnricher) Enrich(context.Context, Input) (Result, error) {
	return Result{Narrative: "Ship the booking flow first.", Source: SourceAnthropic}, nil
}

func sampleInput() Input {
	return Input{
		Route:          route.Hybrid,
		Complexity:     route.Standard,
		TechStack:      "Bubble + Stripe",
		RouteGuidance:  "Start with a no-code front end.",
		BudgetRange:    "$12,000 - $24,000",
		Timeline:       "6-10 weeks",
		Goal:           "100 completed walks",
		ComplexityNote: "score 5 from 4 features (+4), payments (+1)",
	}
}

func TestApply_FallsBackOnError(t *testing.T) {
	f := &failingEnricher{}
	res := Apply(context.Background(), f, sampleInput())
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, SourceTemplate, res.Source)
	assert.Equal(t, "Bubble + Stripe", res.TechStack)
	assert.Contains(t, res.Narrative, "hybrid build")
	assert.Contains(t, res.Narrative, "$12,000 - $24,000")
	assert.Contains(t, res.ComplexityReasoning, "standard")
}

func TestApply_FillsMissingFields(t *testing.T) {
	res := Apply(context.Background(), partialEnricher{}, sampleInput())
	assert.Equal(t, SourceAnthropic, res.Source)
	assert.Equal(t, "Ship the booking flow first.", res.Narrative)
	assert.Equal(t, "Bubble + Stripe", res.TechStack)
	assert.NotEmpty(t, res.ComplexityReasoning)
}

func TestApply_NilEnricher(t *testing.T) {
	res := Apply(context.Background(), nil, sampleInput())
	assert.Equal(t, TemplateEnricher{}.Fallback(sampleInput()), res)
}

func TestInputFromReport(t *testing.T) {
	r := assessment.Responses{
		assessment.QCategory:     "Marketplace / Two-sided platform",
		assessment.QDescription:  "Dog walkers on demand",
		assessment.QCoreFeatures: []any{"booking", "payments"},
		assessment.QGoal:         map[string]any{"goal": "100 walks"},
	}
	rep := assessment.NewEngine(policy.Default()).Evaluate(r)
	in := InputFromReport(rep, r)
	assert.Equal(t, rep.Result.Route, in.Route)
	assert.Equal(t, "Dog walkers on demand", in.Description)
	assert.Equal(t, "100 walks", in.Goal)
	assert.Equal(t, rep.Estimate.TechStackSuggestion, in.TechStack)
	assert.Contains(t, in.ComplexityNote, "score")
}

func TestParseReply(t *testing.T) {
	res, err := parseReply("Here you go:\n```json\n{\"tech_stack\":\"Next.js\",\"narrative\":\"Go.\",\"complexity_reasoning\":\"Few features.\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Next.js", res.TechStack)
	assert.Equal(t, SourceAnthropic, res.Source)

	for _, bad := range []string{"", "no json here", "{not json}", `{"complexity_reasoning":"only"}`} {
		_, err := parseReply(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewAnthropicEnricher_RequiresKey(t *testing.T) {
	_, err := NewAnthropicEnricher(AnthropicConfig{APIKey: "  "})
	assert.Error(t, err)
}

func messagesServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"boom"}}`))
			return
		}
		body, _ := json.Marshal(map[string]any{
			"id":            "msg_test",
			"type":          "message",
			"role":          "assistant",
			"model":         "claude-sonnet-4-5",
			"stop_reason":   "end_turn",
			"stop_sequence": nil,
			"content":       []map[string]any{{"type": "text", "text": text}},
			"usage":         map[string]any{"input_tokens": 10, "output_tokens": 20},
		})
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnthropicEnricher_Enrich(t *testing.T) {
	srv := messagesServer(t, http.StatusOK, `{"tech_stack":"Bubble + Stripe Connect","narrative":"Launch in one city.","complexity_reasoning":"Payments add scope."}`)
	e, err := NewAnthropicEnricher(AnthropicConfig{APIKey: "test-key", BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	res := Apply(context.Background(), e, sampleInput())
	assert.Equal(t, SourceAnthropic, res.Source)
	assert.Equal(t, "Bubble + Stripe Connect", res.TechStack)
	assert.Equal(t, "Launch in one city.", res.Narrative)
}

func TestAnthropicEnricher_ServerErrorFallsBack(t *testing.T) {
	srv := messagesServer(t, http.StatusInternalServerError, "")
	e, err := NewAnthropicEnricher(AnthropicConfig{APIKey: "test-key", BaseURL: srv.URL, MaxRetries: -1})
	require.NoError(t, err)

	_, err = e.Enrich(context.Background(), sampleInput())
	require.Error(t, err)

	res := Apply(context.Background(), e, sampleInput())
	assert.Equal(t, SourceTemplate, res.Source)
}

func TestAnthropicEnricher_RetryConfig(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After-Ms", "1")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"busy"}}`))
	}))
	t.Cleanup(srv.Close)

	cases := []struct {
		retries  int
		wantHits int32
	}{
		{retries: -1, wantHits: 1},
		{retries: 0, wantHits: 3},
		{retries: 1, wantHits: 2},
	}
	for _, tc := range cases {
		hits.Store(0)
		e, err := NewAnthropicEnricher(AnthropicConfig{APIKey: "test-key", BaseURL: srv.URL, MaxRetries: tc.retries})
		require.NoError(t, err)

		_, err = e.Enrich(context.Background(), sampleInput())
		require.Error(t, err)
		assert.Equal(t, tc.wantHits, hits.Load(), "retries %d", tc.retries)
	}
}
