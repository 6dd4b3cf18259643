package estimation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiring-blueprint/decision/policy"
	"hiring-blueprint/decision/route"
	"hiring-blueprint/decision/verticals"
)

func features(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i))
	}
	return out
}

func TestEstimate_RealisticRangeSpansAllOptions(t *testing.T) {
	e := NewEngine(policy.Default())
	for key := range teamTable {
		for _, n := range []int{0, 1, 3, 5, 9} {
			est := e.Estimate(Request{Route: key.route, Complexity: key.complexity, Features: features(n)})
			require.NotEmpty(t, est.TeamOptions)

			minCost, maxCost := est.TeamOptions[0].TotalCost.Min, est.TeamOptions[0].TotalCost.Max
			minWeeks, maxWeeks := est.TeamOptions[0].Timeline.Min, est.TeamOptions[0].Timeline.Max
			for _, o := range est.TeamOptions {
				assert.LessOrEqual(t, o.TotalCost.Min, o.TotalCost.Max)
				assert.LessOrEqual(t, o.Timeline.Min, o.Timeline.Max)
				minCost = min(minCost, o.TotalCost.Min)
				maxCost = max(maxCost, o.TotalCost.Max)
				minWeeks = min(minWeeks, o.Timeline.Min)
				maxWeeks = max(maxWeeks, o.Timeline.Max)
			}
			assert.Equal(t, minCost, est.BudgetMin, "%v/%v", key.route, key.complexity)
			assert.Equal(t, maxCost, est.BudgetMax, "%v/%v", key.route, key.complexity)
			assert.Equal(t, Weeks{Min: minWeeks, Max: maxWeeks}, est.TimelineWeeks)
		}
	}
}

func TestEstimate_RangeIsNotSeniorAlone(t *testing.T) {
	e := NewEngine(policy.Default())
	est := e.Estimate(Request{Route: route.Custom, Complexity: route.Standard, Features: features(3)})
	assert.Equal(t, "1 Senior", est.SeniorEstimate.Name)
	assert.Equal(t, int64(25000), est.SeniorEstimate.TotalCost.Min)
	assert.Equal(t, int64(25000), est.BudgetMin)
	assert.Equal(t, int64(70000), est.BudgetMax)
	assert.NotEqual(t, est.SeniorEstimate.TotalCost.Max, est.BudgetMax)
}

func TestEstimate_FeatureFactorBendsTable(t *testing.T) {
	e := NewEngine(policy.Default())
	est := e.Estimate(Request{Route: route.NoCode, Complexity: route.Simple, Features: features(2)})
	assert.Equal(t, "0.94", est.FeatureFactor)

	solo, ok := est.Option("1 Senior")
	require.True(t, ok)
	assert.Equal(t, int64(3800), solo.TotalCost.Min)
	assert.Equal(t, int64(7500), solo.TotalCost.Max)
	assert.Equal(t, int64(3300), est.BudgetMin)
	assert.Equal(t, int64(7500), est.BudgetMax)
}

func TestFeatureFactor_Clamped(t *testing.T) {
	e := NewEngine(policy.Default())
	assert.Equal(t, "0.88", e.FeatureFactor(0).StringFixed(2))
	assert.Equal(t, "1.00", e.FeatureFactor(3).StringFixed(2))
	assert.Equal(t, "1.12", e.FeatureFactor(5).StringFixed(2))
	assert.Equal(t, "1.30", e.FeatureFactor(20).StringFixed(2))
}

func TestEstimate_SeniorFallbackUsesHourlyRate(t *testing.T) {
	e := NewEngine(policy.Default())
	est := e.Estimate(Request{Route: route.Custom, Complexity: route.Complex, Features: features(3)})

	// custom/complex has no solo-senior scenario: 18 weeks x 40h x $107.
	assert.Equal(t, "1 Senior ($107/hr estimate)", est.SeniorEstimate.Name)
	assert.Equal(t, int64(77000), est.SeniorEstimate.TotalCost.Min)
	assert.Equal(t, int64(115500), est.SeniorEstimate.TotalCost.Max)
	assert.Equal(t, Weeks{Min: 18, Max: 26}, est.SeniorEstimate.Timeline)
	assert.Equal(t, int64(107), est.HourlyRate)
}

func TestEstimate_RecommendedOptionFollowsTimeline(t *testing.T) {
	e := NewEngine(policy.Default())
	req := Request{Route: route.Custom, Complexity: route.Complex, Features: features(3)}

	req.Timeline = "ASAP (under 4 weeks)"
	assert.Equal(t, "2 Senior + 1 Mid + 1 Junior QA", e.Estimate(req).RecommendedOption)

	req.Timeline = "3-6 months"
	assert.Equal(t, "1 Senior + 1 Junior", e.Estimate(req).RecommendedOption)

	req.Timeline = ""
	est := e.Estimate(req)
	assert.Equal(t, "1 Senior + 1 Junior", est.RecommendedOption)
	assert.Equal(t, 2, est.Recommended().Headcount())
}

func TestEstimate_TemplateTextOnly(t *testing.T) {
	e := NewEngine(policy.Default())
	base := Request{Route: route.Hybrid, Complexity: route.Standard, Features: features(3)}
	healthcare := base
	healthcare.Category = "Healthcare/Telemedicine / Wellness"

	a, b := e.Estimate(base), e.Estimate(healthcare)
	assert.Equal(t, a.TeamOptions, b.TeamOptions)
	assert.Equal(t, a.Range(), b.Range())
	assert.Equal(t, verticals.Other, a.Vertical)
	assert.Equal(t, verticals.Healthcare, b.Vertical)
	assert.NotEqual(t, a.TechStackSuggestion, b.TechStackSuggestion)
}

func TestEstimate_DescriptionResolvesVerticalWhenCategoryUnknown(t *testing.T) {
	e := NewEngine(policy.Default())
	est := e.Estimate(Request{
		Route:       route.NoCode,
		Complexity:  route.Simple,
		Category:    "Something else",
		Description: "An online course marketplace for yoga teachers",
	})
	assert.Equal(t, verticals.Marketplace, est.Vertical)
}

func TestEstimate_UnknownKeyFallsBack(t *testing.T) {
	e := NewEngine(policy.Default())
	est := e.Estimate(Request{})
	assert.Len(t, est.TeamOptions, 3)
	assert.Equal(t, int64(107), est.HourlyRate)
}

func TestBaseOptions_ReturnsCopy(t *testing.T) {
	a := baseOptions(route.NoCode, route.Simple)
	a[0].Members[0].Count = 99
	b := baseOptions(route.NoCode, route.Simple)
	assert.Equal(t, 1, b[0].Members[0].Count)
}

func TestParseTimeline(t *testing.T) {
	tests := []struct {
		answer    string
		weeks     int
		unlimited bool
		urgent    bool
	}{
		{"ASAP (under 4 weeks)", 4, false, true},
		{"1-2 months", 8, false, true},
		{"2-3 months", 12, false, false},
		{"3-6 months", 24, false, false},
		{"6+ months", 0, true, false},
		{"Flexible", 0, false, false},
		{"", 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			tl := ParseTimeline(tt.answer)
			assert.Equal(t, tt.weeks, tl.Weeks)
			assert.Equal(t, tt.unlimited, tl.Unlimited)
			assert.Equal(t, tt.urgent, tl.Urgent())
		})
	}
}
