// Package phasing splits a feature list into MVP, Growth and Scale releases
// and spreads the build cost across them.
//
// Phase costs are weighted shares of an hourly total. When the shares are
// applied to a team option, the proportions are preserved against that
// option's own total and allocated with largest-remainder rounding, so the
// three phase costs of every option add up to exactly that option's total.
package phasing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"hiring-blueprint/decision/estimation"
	"hiring-blueprint/decision/policy"
	"hiring-blueprint/decision/route"
	"hiring-blueprint/pkg/money"
	"hiring-blueprint/pkg/ratio"
)

// Request contains the phaser inputs.
type Request struct {
	Features    []string
	DayOne      []string // features that must ship in the MVP
	Category    string
	Route       route.Route
	Complexity  route.Complexity
	HourlyRate  int64
	Description string

	// Timeline is the overall estimate; phase weeks are shares of it. When
	// zero, weeks are derived from phase hours instead.
	Timeline estimation.Weeks
}

// Breakdown is the phased plan.
type Breakdown struct {
	MVPFeatures    []string `json:"mvp_features"`
	Phase2Features []string `json:"phase2_features"`
	Phase3Features []string `json:"phase3_features"`

	MVPCostEstimate    money.Range `json:"mvp_cost_estimate"`
	Phase2CostEstimate money.Range `json:"phase2_cost_estimate"`
	Phase3CostEstimate money.Range `json:"phase3_cost_estimate"`
	TotalCostEstimate  money.Range `json:"total_cost_estimate"`

	MVPWeeks    estimation.Weeks `json:"mvp_weeks"`
	Phase2Weeks estimation.Weeks `json:"phase2_weeks"`
	Phase3Weeks estimation.Weeks `json:"phase3_weeks"`

	TotalHours     int64  `json:"total_hours"`
	Recommendation string `json:"recommendation"`

	TeamOptionCosts []TeamOptionPhases `json:"team_option_costs,omitempty"`
}

// TeamOptionPhases is a breakdown re-derived for one team option.
type TeamOptionPhases struct {
	Name   string      `json:"name"`
	Total  money.Range `json:"total"`
	MVP    money.Range `json:"mvp"`
	Phase2 money.Range `json:"phase2"`
	Phase3 money.Range `json:"phase3"`
}

// Sum returns the sum of the three phase costs.
func (t TeamOptionPhases) Sum() money.Range {
	return t.MVP.Add(t.Phase2).Add(t.Phase3)
}

// Phaser is the MVP Phaser. It is stateless and safe for concurrent use.
type Phaser struct {
	policy policy.PhasingPolicy
}

// NewPhaser creates a phaser for the given policy.
func NewPhaser(p policy.Policy) *Phaser {
	return &Phaser{policy: p.Phasing}
}

// HoursPerUnit is the build effort of one weight unit for a complexity tier.
func (p *Phaser) HoursPerUnit(c route.Complexity) int64 {
	switch c {
	case route.Simple:
		return int64(p.policy.HoursPerUnitSimple)
	case route.Complex:
		return int64(p.policy.HoursPerUnitComplex)
	default:
		return int64(p.policy.HoursPerUnitStandard)
	}
}

// Partition splits features into three disjoint stages. Blank entries and
// repeats are dropped; every other feature lands in exactly one stage.
// Day-one features always stay in the MVP, and the rest of the MVP cap goes
// to keyword-classified core features in input order.
func (p *Phaser) Partition(all, dayOne []string) (mvp, growth, scale []string) {
	forced := make(map[string]bool, len(dayOne))
	for _, f := range dayOne {
		forced[strings.TrimSpace(f)] = true
	}

	seen := make(map[string]bool, len(all))
	var items []string
	reserved := 0
	for _, f := range all {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		items = append(items, f)
		if forced[f] {
			reserved++
		}
	}
	room := p.policy.MaxMVPFeatures - reserved

	var overflow []string
	for _, f := range items {
		if forced[f] {
			mvp = append(mvp, f)
			continue
		}
		switch classify(f) {
		case StageMVP:
			if room > 0 {
				mvp = append(mvp, f)
				room--
			} else {
				overflow = append(overflow, f)
			}
		case StageGrowth:
			growth = append(growth, f)
		default:
			scale = append(scale, f)
		}
	}
	growth = append(overflow, growth...)

	// The MVP must ship something.
	if len(mvp) == 0 {
		switch {
		case len(growth) > 0:
			mvp, growth = growth[:1], growth[1:]
		case len(scale) > 0:
			mvp, scale = scale[:1], scale[1:]
		}
	}
	return nonNil(mvp), nonNil(growth), nonNil(scale)
}

// Phase builds the breakdown.
func (p *Phaser) Phase(req Request) *Breakdown {
	mvp, growth, scale := p.Partition(req.Features, req.DayOne)
	b := &Breakdown{
		MVPFeatures:    mvp,
		Phase2Features: growth,
		Phase3Features: scale,
	}

	weights := []float64{p.weight(mvp), p.weight(growth), p.weight(scale)}
	totalWeight := weights[0] + weights[1] + weights[2]

	hours := decimal.NewFromFloat(totalWeight).Mul(decimal.NewFromInt(p.HoursPerUnit(req.Complexity)))
	b.TotalHours = hours.Round(0).IntPart()
	totalMin := hours.Mul(decimal.NewFromInt(req.HourlyRate)).Round(-2).IntPart()
	totalMax := money.Mul(totalMin, decimal.NewFromFloat(p.policy.MaxSpreadRatio), -2)
	b.TotalCostEstimate = money.NewRange(totalMin, totalMax)

	mins := ratio.Allocate(b.TotalCostEstimate.Min, weights)
	maxs := ratio.Allocate(b.TotalCostEstimate.Max, weights)
	b.MVPCostEstimate = money.Range{Min: mins[0], Max: maxs[0]}
	b.Phase2CostEstimate = money.Range{Min: mins[1], Max: maxs[1]}
	b.Phase3CostEstimate = money.Range{Min: mins[2], Max: maxs[2]}

	weeks := p.phaseWeeks(req.Timeline, weights, b.TotalHours)
	b.MVPWeeks, b.Phase2Weeks, b.Phase3Weeks = weeks[0], weeks[1], weeks[2]

	b.Recommendation = recommendation(b)
	return b
}

// ForTeamOptions re-derives the phase costs for each team option by applying
// the breakdown's phase proportions to the option's own total. A zero total
// yields zero shares.
func (b *Breakdown) ForTeamOptions(options []estimation.TeamOption) []TeamOptionPhases {
	minShares := []float64{
		ratio.Share(float64(b.MVPCostEstimate.Min), float64(b.TotalCostEstimate.Min)),
		ratio.Share(float64(b.Phase2CostEstimate.Min), float64(b.TotalCostEstimate.Min)),
		ratio.Share(float64(b.Phase3CostEstimate.Min), float64(b.TotalCostEstimate.Min)),
	}
	maxShares := []float64{
		ratio.Share(float64(b.MVPCostEstimate.Max), float64(b.TotalCostEstimate.Max)),
		ratio.Share(float64(b.Phase2CostEstimate.Max), float64(b.TotalCostEstimate.Max)),
		ratio.Share(float64(b.Phase3CostEstimate.Max), float64(b.TotalCostEstimate.Max)),
	}

	out := make([]TeamOptionPhases, 0, len(options))
	for _, o := range options {
		mins := ratio.Allocate(o.TotalCost.Min, minShares)
		maxs := ratio.Allocate(o.TotalCost.Max, maxShares)
		out = append(out, TeamOptionPhases{
			Name:   o.Name,
			Total:  o.TotalCost,
			MVP:    money.Range{Min: mins[0], Max: maxs[0]},
			Phase2: money.Range{Min: mins[1], Max: maxs[1]},
			Phase3: money.Range{Min: mins[2], Max: maxs[2]},
		})
	}
	return out
}

// WithTeamOptions attaches ForTeamOptions to the breakdown.
func (b *Breakdown) WithTeamOptions(options []estimation.TeamOption) *Breakdown {
	b.TeamOptionCosts = b.ForTeamOptions(options)
	return b
}

// Features returns every feature in phase order.
func (b *Breakdown) Features() []string {
	out := make([]string, 0, len(b.MVPFeatures)+len(b.Phase2Features)+len(b.Phase3Features))
	out = append(out, b.MVPFeatures...)
	out = append(out, b.Phase2Features...)
	return append(out, b.Phase3Features...)
}

func (p *Phaser) weight(features []string) float64 {
	var w float64
	for _, f := range features {
		if isHeavy(f) {
			w += p.policy.HeavyFeatureWeight
		} else {
			w++
		}
	}
	return w
}

func (p *Phaser) phaseWeeks(total estimation.Weeks, weights []float64, totalHours int64) []estimation.Weeks {
	out := make([]estimation.Weeks, len(weights))
	if total.Max > 0 {
		mins := ratio.Allocate(int64(total.Min), weights)
		maxs := ratio.Allocate(int64(total.Max), weights)
		for i := range weights {
			if weights[i] == 0 {
				continue
			}
			out[i] = estimation.Weeks{Min: atLeastOne(mins[i]), Max: atLeastOne(maxs[i])}
		}
		return out
	}

	// One developer at 40 hours a week.
	hours := ratio.Allocate(totalHours, weights)
	for i := range weights {
		if weights[i] == 0 {
			continue
		}
		minWeeks := int((hours[i] + 39) / 40)
		maxWeeks := int(decimal.NewFromInt(int64(minWeeks)).Mul(decimal.NewFromFloat(p.policy.MaxSpreadRatio)).Ceil().IntPart())
		out[i] = estimation.Weeks{Min: atLeastOne(int64(minWeeks)), Max: atLeastOne(int64(maxWeeks))}
	}
	return out
}

func recommendation(b *Breakdown) string {
	if len(b.MVPFeatures) == 0 {
		return "Add at least one core feature to plan an MVP."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Launch an MVP with %s (%s, about %d-%d weeks).",
		joinList(b.MVPFeatures), b.MVPCostEstimate, b.MVPWeeks.Min, b.MVPWeeks.Max)
	if len(b.Phase2Features) > 0 {
		fmt.Fprintf(&sb, " Add %s in the Growth phase once early users validate the core (%s).",
			joinList(b.Phase2Features), b.Phase2CostEstimate)
	}
	if len(b.Phase3Features) > 0 {
		fmt.Fprintf(&sb, " Hold %s for the Scale phase (%s).",
			joinList(b.Phase3Features), b.Phase3CostEstimate)
	}
	return sb.String()
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func atLeastOne(v int64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
