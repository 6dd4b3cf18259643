// Package estimation provides the Cost Estimator.
// It maps a route and complexity tier onto a discrete table of hiring
// scenarios, bends the table by feature count and reports the realistic range
// across every scenario.
package estimation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"hiring-blueprint/decision/policy"
	"hiring-blueprint/decision/route"
	"hiring-blueprint/decision/verticals"
	"hiring-blueprint/pkg/money"
)

// hoursPerWeek is the billable week used by the hourly fallback.
const hoursPerWeek = 40

// Engine is the Cost Estimator. It is stateless and safe for concurrent use.
type Engine struct {
	policy policy.EstimationPolicy
}

// NewEngine creates a new estimation engine
func NewEngine(p policy.Policy) *Engine {
	return &Engine{policy: p.Estimation}
}

// Request contains inputs for cost estimation
type Request struct {
	Route       route.Route
	Complexity  route.Complexity
	Features    []string
	Timeline    string // raw timeline answer
	Description string // free-text project description
	Category    string
}

// CostEstimate is the estimator output.
type CostEstimate struct {
	// Realistic range across every team option
	BudgetMin     int64 `json:"budget_min"`
	BudgetMax     int64 `json:"budget_max"`
	TimelineWeeks Weeks `json:"timeline_weeks"`

	TeamOptions       []TeamOption `json:"team_options"`
	SeniorEstimate    TeamOption   `json:"senior_estimate"`
	RecommendedOption string       `json:"recommended_option"`

	// Model inputs
	HourlyRate    int64  `json:"hourly_rate"`
	FeatureCount  int    `json:"feature_count"`
	FeatureFactor string `json:"feature_factor"`

	// Presentation text from the vertical template
	Vertical            verticals.ID `json:"vertical"`
	TechStackSuggestion string       `json:"tech_stack_suggestion"`
	RouteGuidance       string       `json:"route_guidance"`
}

// Range returns the realistic budget range.
func (c *CostEstimate) Range() money.Range {
	return money.Range{Min: c.BudgetMin, Max: c.BudgetMax}
}

// Option returns the named team option.
func (c *CostEstimate) Option(name string) (TeamOption, bool) {
	for _, o := range c.TeamOptions {
		if o.Name == name {
			return o, true
		}
	}
	return TeamOption{}, false
}

// Recommended returns the recommended team option.
func (c *CostEstimate) Recommended() TeamOption {
	if o, ok := c.Option(c.RecommendedOption); ok {
		return o
	}
	return c.SeniorEstimate
}

// HourlyRate is the blended hourly rate for a route.
func (e *Engine) HourlyRate(r route.Route) int64 {
	switch r {
	case route.NoCode:
		return e.policy.HourlyRateNoCode
	case route.Hybrid:
		return e.policy.HourlyRateHybrid
	default:
		return e.policy.HourlyRateCustom
	}
}

// FeatureFactor is the multiplier applied to the baseline table for n
// features: one step per feature away from the baseline, clamped.
func (e *Engine) FeatureFactor(n int) decimal.Decimal {
	p := e.policy
	f := decimal.NewFromFloat(1).Add(
		decimal.NewFromFloat(p.PerFeatureAdjust).Mul(decimal.NewFromInt(int64(n - p.BaselineFeatures))),
	)
	lo := decimal.NewFromFloat(p.MinFeatureFactor)
	hi := decimal.NewFromFloat(p.MaxFeatureFactor)
	if f.LessThan(lo) {
		return lo
	}
	if f.GreaterThan(hi) {
		return hi
	}
	return f
}

// Estimate produces the cost estimate. It never fails: unknown routes or
// tiers fall back to the custom/standard table.
func (e *Engine) Estimate(req Request) *CostEstimate {
	factor := e.FeatureFactor(len(req.Features))
	options := baseOptions(req.Route, req.Complexity)
	for i := range options {
		options[i] = scaleOption(options[i], factor)
	}

	result := &CostEstimate{
		TeamOptions:   options,
		HourlyRate:    e.HourlyRate(req.Route),
		FeatureCount:  len(req.Features),
		FeatureFactor: factor.StringFixed(2),
	}

	costs := make([]money.Range, len(options))
	for i, o := range options {
		costs[i] = o.TotalCost
	}
	span := money.Span(costs...)
	result.BudgetMin, result.BudgetMax = span.Min, span.Max
	result.TimelineWeeks = spanWeeks(options)

	result.SeniorEstimate = e.seniorEstimate(options, result.HourlyRate)
	result.RecommendedOption = recommend(options, ParseTimeline(req.Timeline))

	vertical := verticals.Resolve(req.Category)
	if vertical == verticals.Other && req.Description != "" {
		vertical = verticals.Resolve(req.Description)
	}
	tpl := verticals.Get(vertical).ForRoute(string(req.Route))
	result.Vertical = vertical
	result.TechStackSuggestion = tpl.TechStackSuggestion
	result.RouteGuidance = tpl.RouteGuidance

	return result
}

// seniorEstimate returns the solo-senior scenario, or derives one from the
// hourly rate over the cheapest option's timeline when the table has none.
func (e *Engine) seniorEstimate(options []TeamOption, rate int64) TeamOption {
	for _, o := range options {
		if o.IsSoloSenior() {
			return o
		}
	}

	weeks := Weeks{Min: 1, Max: 1}
	if len(options) > 0 {
		weeks = cheapest(options).Timeline
	}
	costMin := money.Mul(rate*hoursPerWeek*int64(weeks.Min), decimal.NewFromInt(1), -2)
	costMax := money.Mul(costMin, decimal.NewFromFloat(e.policy.FallbackSpreadRatio), -2)
	role := "Software engineer"
	if len(options) > 0 && len(options[0].Members) > 0 {
		role = options[0].Members[0].Role
	}
	return TeamOption{
		Name:      fmt.Sprintf("1 Senior (%s/hr estimate)", money.FormatUSD(rate)),
		Members:   []Member{{Level: Senior, Count: 1, Role: role}},
		TotalCost: money.NewRange(costMin, costMax),
		Timeline:  weeks,
	}
}

func scaleOption(o TeamOption, factor decimal.Decimal) TeamOption {
	o.TotalCost = o.TotalCost.Scale(factor, -2)
	o.Timeline = Weeks{
		Min: scaleWeeks(o.Timeline.Min, factor),
		Max: scaleWeeks(o.Timeline.Max, factor),
	}
	return o
}

func scaleWeeks(w int, factor decimal.Decimal) int {
	scaled := int(decimal.NewFromInt(int64(w)).Mul(factor).Round(0).IntPart())
	if scaled < 1 {
		return 1
	}
	return scaled
}

func spanWeeks(options []TeamOption) Weeks {
	if len(options) == 0 {
		return Weeks{}
	}
	out := options[0].Timeline
	for _, o := range options[1:] {
		if o.Timeline.Min < out.Min {
			out.Min = o.Timeline.Min
		}
		if o.Timeline.Max > out.Max {
			out.Max = o.Timeline.Max
		}
	}
	return out
}

// recommend picks the fastest option for urgent deadlines and the cheapest
// otherwise. Ties break on the other dimension, then on name.
func recommend(options []TeamOption, t Timeline) string {
	if len(options) == 0 {
		return ""
	}
	if t.Urgent() {
		return fastest(options).Name
	}
	return cheapest(options).Name
}

func cheapest(options []TeamOption) TeamOption {
	sorted := append([]TeamOption(nil), options...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.TotalCost.Min != b.TotalCost.Min {
			return a.TotalCost.Min < b.TotalCost.Min
		}
		return a.Timeline.Min < b.Timeline.Min
	})
	return sorted[0]
}

func fastest(options []TeamOption) TeamOption {
	sorted := append([]TeamOption(nil), options...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Timeline.Min != b.Timeline.Min {
			return a.Timeline.Min < b.Timeline.Min
		}
		return a.TotalCost.Min < b.TotalCost.Min
	})
	return sorted[0]
}
