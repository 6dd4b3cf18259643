// Package assessment runs the full decision pipeline over questionnaire
// responses: feature normalization, route and complexity classification, cost
// estimation, MVP phasing and cost optimization.
//
// Evaluate is a pure function of its input. It never fails: missing or
// malformed answers degrade to the weakest signal for their dimension.
package assessment

import (
	"fmt"
	"strings"

	"hiring-blueprint/decision/estimation"
	"hiring-blueprint/decision/features"
	"hiring-blueprint/decision/optimizer"
	"hiring-blueprint/decision/phasing"
	"hiring-blueprint/decision/policy"
	"hiring-blueprint/decision/route"
	"hiring-blueprint/decision/verticals"
)

// RouteResult is the headline classification shown to the user and stored
// with the responses.
type RouteResult struct {
	Route          route.Route      `json:"route"`
	Complexity     route.Complexity `json:"complexity"`
	Recommendation string           `json:"recommendation"`
	Reasoning      string           `json:"reasoning"`
	DevRole        string           `json:"dev_role"`
	ProjectType    string           `json:"project_type"`
	Timeline       string           `json:"timeline"`
	BudgetRange    string           `json:"budget_range"`
	TopFeatures    []string         `json:"top_features"`
}

// Report is everything derived from one set of responses.
type Report struct {
	Result         RouteResult              `json:"result"`
	Signals        route.Signals            `json:"signals"`
	RouteDecision  route.Decision           `json:"route_decision"`
	Complexity     route.ComplexityDecision `json:"complexity_decision"`
	CoreFeatures   []string                 `json:"core_features"`
	AllFeatures    []string                 `json:"all_features"`
	Estimate       *estimation.CostEstimate `json:"estimate"`
	LeanerEstimate *estimation.CostEstimate `json:"leaner_estimate,omitempty"`
	Breakdown      *phasing.Breakdown       `json:"breakdown"`
	Plan           *optimizer.Plan          `json:"plan"`
	Progress       ProgressReport           `json:"progress"`
	Contact        Contact                  `json:"contact"`
}

// Engine wires the decision components together. It is safe for concurrent
// use.
type Engine struct {
	catalog    *features.Catalog
	classifier *route.Classifier
	estimator  *estimation.Engine
	phaser     *phasing.Phaser
	optimizer  *optimizer.Engine
}

// NewEngine creates an engine for the given policy with the default feature
// catalog.
func NewEngine(p policy.Policy) *Engine {
	return &Engine{
		catalog:    features.DefaultCatalog,
		classifier: route.NewClassifier(p),
		estimator:  estimation.NewEngine(p),
		phaser:     phasing.NewPhaser(p),
		optimizer:  optimizer.NewEngine(p),
	}
}

// WithCatalog swaps the feature catalog.
func (e *Engine) WithCatalog(c *features.Catalog) *Engine {
	e.catalog = c
	return e
}

// Signals extracts the classifier inputs.
func (e *Engine) Signals(r Responses) route.Signals {
	selected, _ := r.DayOneNeeds()
	category := r.String(QCategory)
	vertical := verticals.Resolve(category)
	return route.Signals{
		Budget:       route.ParseBudget(r.String(QBudget)),
		Platform:     route.ParsePlatform(r.String(QPlatform)),
		Preference:   route.ParsePreference(r.String(QBuildPref)),
		FeatureCount: len(e.catalog.Normalize(r[QCoreFeatures])),
		Needs:        route.ParseNeeds(selected),
		Vertical:     vertical,
	}
}

// Classify returns only the RouteResult.
func (e *Engine) Classify(r Responses) RouteResult {
	return e.Evaluate(r).Result
}

// Estimate runs the estimator for responses.
func (e *Engine) Estimate(r Responses) *estimation.CostEstimate {
	return e.Evaluate(r).Estimate
}

// Evaluate runs the whole pipeline.
func (e *Engine) Evaluate(r Responses) *Report {
	if r == nil {
		r = Responses{}
	}
	core := e.catalog.Normalize(r[QCoreFeatures])
	signals := e.Signals(r)
	decision := e.classifier.Classify(signals)
	complexity := e.classifier.Complexity(signals)

	selected, otherNeeds := r.DayOneNeeds()
	dayOne := append(append([]string{}, selected...), otherNeeds...)
	coreLabels := dedupe(e.catalog.Labels(core))
	all := dedupe(append(append(append([]string{}, coreLabels...), dayOne...), r.Strings(QExtraFeatures)...))

	estReq := estimation.Request{
		Route:       decision.Route,
		Complexity:  complexity.Complexity,
		Features:    core,
		Timeline:    r.String(QTimeline),
		Description: r.String(QDescription),
		Category:    r.String(QCategory),
	}
	estimate := e.estimator.Estimate(estReq)

	var leaner *estimation.CostEstimate
	if decision.Route != route.NoCode && (decision.Route.Leaner() != route.NoCode || verticals.Get(estimate.Vertical).NoCodeAllowed()) {
		lr := estReq
		lr.Route = decision.Route.Leaner()
		leaner = e.estimator.Estimate(lr)
	}

	breakdown := e.phaser.Phase(phasing.Request{
		Features:    all,
		DayOne:      dayOne,
		Category:    r.String(QCategory),
		Route:       decision.Route,
		Complexity:  complexity.Complexity,
		HourlyRate:  estimate.HourlyRate,
		Description: r.String(QDescription),
		Timeline:    estimate.TimelineWeeks,
	}).WithTeamOptions(estimate.TeamOptions)

	plan := e.optimizer.Optimize(optimizer.Request{
		Route:          decision.Route,
		Complexity:     complexity.Complexity,
		Category:       r.String(QCategory),
		UserBudget:     signals.Budget,
		UserTimeline:   estimation.ParseTimeline(r.String(QTimeline)),
		UserTeamSize:   ParseTeamSize(r.String(QTeamSize)),
		Features:       all,
		Goal:           r.Field(QGoal, "goal"),
		Estimate:       estimate,
		Breakdown:      breakdown,
		LeanerEstimate: leaner,
	})

	return &Report{
		Result:         e.routeResult(signals, decision, complexity, estimate, coreLabels),
		Signals:        signals,
		RouteDecision:  decision,
		Complexity:     complexity,
		CoreFeatures:   core,
		AllFeatures:    all,
		Estimate:       estimate,
		LeanerEstimate: leaner,
		Breakdown:      breakdown,
		Plan:           plan,
		Progress:       Progress(r),
		Contact:        r.Contact(),
	}
}

func (e *Engine) routeResult(s route.Signals, d route.Decision, c route.ComplexityDecision, est *estimation.CostEstimate, top []string) RouteResult {
	tpl := verticals.Get(est.Vertical)
	return RouteResult{
		Route:          d.Route,
		Complexity:     c.Complexity,
		Recommendation: recommendationText(d.Route, c.Complexity, tpl),
		Reasoning:      fmt.Sprintf("%s Complexity score %d (%s).", d.Reasoning, c.Score, c.Complexity),
		DevRole:        devRole(d.Route, s.Needs.Mobile),
		ProjectType:    tpl.Label,
		Timeline:       fmt.Sprintf("%d-%d weeks", est.TimelineWeeks.Min, est.TimelineWeeks.Max),
		BudgetRange:    est.Range().String(),
		TopFeatures:    top,
	}
}

func recommendationText(r route.Route, c route.Complexity, tpl verticals.Template) string {
	var lead string
	switch r {
	case route.NoCode:
		lead = "Build with no-code tools"
	case route.Hybrid:
		lead = "Combine no-code building blocks with custom code"
	default:
		lead = "Build with custom code"
	}
	kind := "software"
	if tpl.ID != verticals.Other {
		kind = strings.ToLower(tpl.Label)
	}
	return fmt.Sprintf("%s for a %s %s project. %s", lead, c, kind, tpl.ForRoute(string(r)).RouteGuidance)
}

func devRole(r route.Route, mobile bool) string {
	switch r {
	case route.NoCode:
		return "No-code developer (Bubble, Webflow or similar)"
	case route.Hybrid:
		if mobile {
			return "Full-stack developer with no-code and mobile experience"
		}
		return "Full-stack developer with no-code experience"
	default:
		if mobile {
			return "Senior full-stack engineer with mobile (React Native or Flutter) experience"
		}
		return "Senior full-stack engineer"
	}
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
