// Package optimizer provides the Cost Optimizer.
// It compares the user's stated budget, deadline and team size with the
// realistic estimate and labels each gap. Recommendations are templates keyed
// by gap category; no cost is recomputed here beyond what the estimator and
// phaser already produced.
package optimizer

import (
	"fmt"
	"strings"

	"hiring-blueprint/decision/estimation"
	"hiring-blueprint/decision/phasing"
	"hiring-blueprint/decision/policy"
	"hiring-blueprint/decision/route"
	"hiring-blueprint/decision/verticals"
	"hiring-blueprint/pkg/money"
)

// Category tags a recommendation.
type Category string

const (
	CategoryBudget   Category = "budget"
	CategoryTimeline Category = "timeline"
	CategoryTeam     Category = "team"
	CategoryScope    Category = "scope"
)

// Recommendation is one optimisation suggestion.
type Recommendation struct {
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Impact      string   `json:"impact"`
	Savings     string   `json:"savings"`
}

// PhaseSummary describes one release of the MVP approach.
type PhaseSummary struct {
	Description string           `json:"description"`
	Cost        money.Range      `json:"cost"`
	Timeline    estimation.Weeks `json:"timeline"`
	Features    []string         `json:"features"`
}

// MVPApproach stages the build. Later phases are omitted when they hold no
// features.
type MVPApproach struct {
	Phase1 PhaseSummary  `json:"phase1"`
	Phase2 *PhaseSummary `json:"phase2,omitempty"`
	Phase3 *PhaseSummary `json:"phase3,omitempty"`
}

// AlternativeTechStack suggests a leaner route.
type AlternativeTechStack struct {
	Current   string `json:"current"`
	Suggested string `json:"suggested"`
	Reasoning string `json:"reasoning"`
	Savings   string `json:"savings"`
}

// Plan is the optimizer output. It is never nil, even when every gap is none.
type Plan struct {
	BudgetGap            BudgetGap             `json:"budget_gap"`
	TimelineGap          TimelineGap           `json:"timeline_gap"`
	TeamSizeGap          TeamSizeGap           `json:"team_size_gap"`
	Recommendations      []Recommendation      `json:"recommendations"`
	MVPApproach          MVPApproach           `json:"mvp_approach"`
	AlternativeTechStack *AlternativeTechStack `json:"alternative_tech_stack,omitempty"`
}

// HasGaps reports whether any dimension is short.
func (p *Plan) HasGaps() bool {
	return p.BudgetGap.Severity != SeverityNone ||
		p.TimelineGap.Severity != SeverityNone ||
		p.TeamSizeGap.Severity != SeverityNone
}

// Request contains the optimizer inputs.
type Request struct {
	Route        route.Route
	Complexity   route.Complexity
	Category     string
	UserBudget   route.Budget
	UserTimeline estimation.Timeline
	UserTeamSize int // 0 when unknown
	Features     []string
	Goal         string

	Estimate  *estimation.CostEstimate
	Breakdown *phasing.Breakdown

	// LeanerEstimate is the estimate for Route.Leaner(); it prices the
	// alternative stack and may be nil.
	LeanerEstimate *estimation.CostEstimate
}

// Engine is the Cost Optimizer.
type Engine struct {
	gaps policy.GapPolicy
}

// NewEngine creates a new optimizer
func NewEngine(p policy.Policy) *Engine {
	return &Engine{gaps: p.Gaps}
}

// Optimize builds the plan. A missing estimate or breakdown yields a plan
// with no gaps.
func (e *Engine) Optimize(req Request) *Plan {
	est := req.Estimate
	if est == nil {
		est = &estimation.CostEstimate{}
	}
	breakdown := req.Breakdown
	if breakdown == nil {
		breakdown = &phasing.Breakdown{}
	}

	plan := &Plan{
		BudgetGap:       e.budgetGap(req.UserBudget, est),
		TimelineGap:     e.timelineGap(req.UserTimeline, est),
		TeamSizeGap:     e.teamGap(req.UserTeamSize, est),
		Recommendations: make([]Recommendation, 0),
		MVPApproach:     mvpApproach(breakdown, est),
	}

	plan.Recommendations = append(plan.Recommendations, budgetRecommendations(req, plan, est, breakdown)...)
	plan.Recommendations = append(plan.Recommendations, timelineRecommendations(plan, est, breakdown)...)
	plan.Recommendations = append(plan.Recommendations, teamRecommendations(req, plan, est)...)
	plan.Recommendations = append(plan.Recommendations, scopeRecommendations(req, plan, breakdown)...)

	if plan.BudgetGap.Severity != SeverityNone {
		tpl := templateFor(req, est)
		if leaner, ok := leanerRoute(req.Route, tpl); ok {
			plan.AlternativeTechStack = alternativeStack(req, est, tpl, leaner)
		}
	}
	return plan
}

func templateFor(req Request, est *estimation.CostEstimate) verticals.Template {
	if est.Vertical != "" {
		return verticals.Get(est.Vertical)
	}
	return verticals.Lookup(req.Category)
}

// leanerRoute returns the cheaper route worth suggesting. Verticals that rule
// out no-code stop at hybrid.
func leanerRoute(r route.Route, tpl verticals.Template) (route.Route, bool) {
	if r == route.NoCode {
		return r, false
	}
	leaner := r.Leaner()
	if leaner == route.NoCode && !tpl.NoCodeAllowed() {
		return r, false
	}
	return leaner, true
}

// ===== RECOMMENDATION TEMPLATES =====

func budgetRecommendations(req Request, plan *Plan, est *estimation.CostEstimate, b *phasing.Breakdown) []Recommendation {
	gap := plan.BudgetGap
	if gap.Severity == SeverityNone {
		return nil
	}
	var recs []Recommendation

	if cheapest, ok := cheapestOption(est.TeamOptions); ok {
		rec := est.Recommended()
		savings := "Already the leanest option"
		if rec.TotalCost.Min > cheapest.TotalCost.Min {
			savings = "Save " + money.FormatUSD(rec.TotalCost.Min-cheapest.TotalCost.Min) + " at the low end"
		}
		recs = append(recs, Recommendation{
			Category:    CategoryBudget,
			Title:       "Start with the leanest team",
			Description: fmt.Sprintf("A %s team is the cheapest realistic option at %s.", cheapest.Name, cheapest.TotalCost),
			Impact:      "medium",
			Savings:     savings,
		})
	}

	phased := phaseCostsFor(b, est.RecommendedOption)
	if deferred := phased.Phase2.Add(phased.Phase3); !deferred.IsZero() {
		recs = append(recs, Recommendation{
			Category:    CategoryBudget,
			Title:       "Fund the MVP first",
			Description: fmt.Sprintf("Budget %s for the MVP and raise or earn the rest before the later phases.", phased.MVP),
			Impact:      "high",
			Savings:     "Defers " + deferred.String(),
		})
	}

	if gap.Severity == SeveritySevere {
		desc := fmt.Sprintf("Your budget is %d%% below the realistic minimum of %s.", gap.ShortfallPercent, money.FormatUSD(gap.RealisticMin))
		if leaner, ok := leanerRoute(req.Route, templateFor(req, est)); ok {
			desc += fmt.Sprintf(" A %s build lowers the floor considerably.", leaner)
		}
		recs = append(recs, Recommendation{
			Category:    CategoryBudget,
			Title:       "Close the funding gap",
			Description: desc,
			Impact:      "high",
			Savings:     "Need " + money.FormatUSD(gap.Shortfall) + " more",
		})
	}
	return recs
}

func timelineRecommendations(plan *Plan, est *estimation.CostEstimate, b *phasing.Breakdown) []Recommendation {
	gap := plan.TimelineGap
	if gap.Severity == SeverityNone {
		return nil
	}
	var recs []Recommendation

	if fast, ok := fastestOption(est.TeamOptions); ok && fast.Name != est.RecommendedOption {
		recs = append(recs, Recommendation{
			Category:    CategoryTimeline,
			Title:       "Add hands to parallelise",
			Description: fmt.Sprintf("A %s team can ship in %d-%d weeks.", fast.Name, fast.Timeline.Min, fast.Timeline.Max),
			Impact:      "medium",
			Savings:     fmt.Sprintf("Ships from week %d", fast.Timeline.Min),
		})
	}

	if len(b.Phase2Features)+len(b.Phase3Features) > 0 && b.MVPWeeks.Min > 0 {
		saved := gap.RealisticMinWeeks - b.MVPWeeks.Min
		if saved < 0 {
			saved = 0
		}
		recs = append(recs, Recommendation{
			Category:    CategoryTimeline,
			Title:       "Launch the MVP on its own",
			Description: fmt.Sprintf("Ship the %d MVP features first in about %d-%d weeks.", len(b.MVPFeatures), b.MVPWeeks.Min, b.MVPWeeks.Max),
			Impact:      "high",
			Savings:     fmt.Sprintf("About %d weeks sooner to launch", saved),
		})
	}

	if gap.Severity == SeveritySevere {
		recs = append(recs, Recommendation{
			Category:    CategoryTimeline,
			Title:       "Reset the deadline",
			Description: fmt.Sprintf("%d weeks is %d%% short of the fastest realistic build; plan for at least %d weeks.", gap.UserWeeks, gap.ShortfallPercent, gap.RealisticMinWeeks),
			Impact:      "high",
			Savings:     "Avoids rushed, costly rework",
		})
	}
	return recs
}

func teamRecommendations(req Request, plan *Plan, est *estimation.CostEstimate) []Recommendation {
	gap := plan.TeamSizeGap
	if gap.Severity == SeverityNone {
		return nil
	}
	rec := est.Recommended()
	roles := make([]string, 0, len(rec.Members))
	for _, m := range rec.Members {
		roles = append(roles, fmt.Sprintf("%d %s %s", m.Count, m.Level, strings.ToLower(m.Role)))
	}
	recs := []Recommendation{{
		Category:    CategoryTeam,
		Title:       "Staff to the recommended team",
		Description: fmt.Sprintf("The %s plan assumes %s.", rec.Name, strings.Join(roles, ", ")),
		Impact:      "medium",
		Savings:     fmt.Sprintf("Avoids about %d%% schedule slip", gap.ShortfallPercent),
	}}
	if gap.Severity == SeveritySevere {
		recs = append(recs, Recommendation{
			Category:    CategoryTeam,
			Title:       "Bring in fractional help",
			Description: fmt.Sprintf("With %d of %d people, add a fractional senior or a small agency for the %s build.", gap.UserTeamSize, gap.RecommendedTeamSize, req.Route),
			Impact:      "high",
			Savings:     "Senior time only where it matters",
		})
	}
	return recs
}

func scopeRecommendations(req Request, plan *Plan, b *phasing.Breakdown) []Recommendation {
	if !plan.HasGaps() || len(b.MVPFeatures) == 0 {
		return nil
	}
	desc := fmt.Sprintf("Keep the first release to %s.", strings.Join(b.MVPFeatures, ", "))
	if goal := strings.TrimSpace(req.Goal); goal != "" {
		desc += " Measure it against your goal: " + goal + "."
	}
	savings := "Smallest launchable scope"
	if n := len(b.Phase2Features) + len(b.Phase3Features); n > 0 {
		savings = fmt.Sprintf("Defers %d features", n)
	}
	return []Recommendation{{
		Category:    CategoryScope,
		Title:       "Cut scope to the core",
		Description: desc,
		Impact:      "high",
		Savings:     savings,
	}}
}

func alternativeStack(req Request, est *estimation.CostEstimate, tpl verticals.Template, leaner route.Route) *AlternativeTechStack {
	alt := &AlternativeTechStack{
		Current:   tpl.ForRoute(string(req.Route)).TechStackSuggestion,
		Suggested: tpl.ForRoute(string(leaner)).TechStackSuggestion,
		Reasoning: fmt.Sprintf("A %s approach covers most of the scope with managed building blocks. %s",
			leaner, tpl.ForRoute(string(leaner)).RouteGuidance),
	}
	if le := req.LeanerEstimate; le != nil && le.BudgetMin < est.BudgetMin {
		alt.Savings = fmt.Sprintf("%s-%s lower", money.FormatUSD(est.BudgetMin-le.BudgetMin), money.FormatUSD(nonNegative(est.BudgetMax-le.BudgetMax)))
	}
	return alt
}

// ===== MVP APPROACH =====

func mvpApproach(b *phasing.Breakdown, est *estimation.CostEstimate) MVPApproach {
	costs := phaseCostsFor(b, est.RecommendedOption)
	a := MVPApproach{
		Phase1: PhaseSummary{
			Description: "MVP: launch the core workflow to first users",
			Cost:        costs.MVP,
			Timeline:    b.MVPWeeks,
			Features:    nonNil(b.MVPFeatures),
		},
	}
	if len(b.Phase2Features) > 0 {
		a.Phase2 = &PhaseSummary{
			Description: "Growth: retention and integrations once the core is validated",
			Cost:        costs.Phase2,
			Timeline:    b.Phase2Weeks,
			Features:    b.Phase2Features,
		}
	}
	if len(b.Phase3Features) > 0 {
		a.Phase3 = &PhaseSummary{
			Description: "Scale: advanced capabilities for a proven product",
			Cost:        costs.Phase3,
			Timeline:    b.Phase3Weeks,
			Features:    b.Phase3Features,
		}
	}
	return a
}

// phaseCostsFor prefers the named team option's re-derived phase costs and
// falls back to the breakdown's own estimates.
func phaseCostsFor(b *phasing.Breakdown, option string) phasing.TeamOptionPhases {
	for _, tp := range b.TeamOptionCosts {
		if tp.Name == option {
			return tp
		}
	}
	return phasing.TeamOptionPhases{
		Name:   "estimate",
		Total:  b.TotalCostEstimate,
		MVP:    b.MVPCostEstimate,
		Phase2: b.Phase2CostEstimate,
		Phase3: b.Phase3CostEstimate,
	}
}

func cheapestOption(options []estimation.TeamOption) (estimation.TeamOption, bool) {
	if len(options) == 0 {
		return estimation.TeamOption{}, false
	}
	best := options[0]
	for _, o := range options[1:] {
		if o.TotalCost.Min < best.TotalCost.Min {
			best = o
		}
	}
	return best, true
}

func fastestOption(options []estimation.TeamOption) (estimation.TeamOption, bool) {
	if len(options) == 0 {
		return estimation.TeamOption{}, false
	}
	best := options[0]
	for _, o := range options[1:] {
		if o.Timeline.Min < best.Timeline.Min {
			best = o
		}
	}
	return best, true
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
