// Package route classifies a project into a build route and a complexity tier.
//
// Both classifiers are points-based and deterministic. Route classification
// adds weighted contributions into a no-code suitability score and then applies
// hard overrides in a fixed precedence order; the overrides are evaluated
// independently of the numeric score.
package route

import (
	"fmt"
	"strings"

	"hiring-blueprint/decision/policy"
	"hiring-blueprint/decision/verticals"
)

// Route is the recommended development approach.
type Route string

const (
	NoCode Route = "no-code"
	Hybrid Route = "hybrid"
	Custom Route = "custom"
)

// Rank orders routes from least to most engineering effort.
func (r Route) Rank() int {
	switch r {
	case NoCode:
		return 0
	case Hybrid:
		return 1
	default:
		return 2
	}
}

// Leaner returns the next cheaper route, or the route itself for no-code.
func (r Route) Leaner() Route {
	switch r {
	case Custom:
		return Hybrid
	default:
		return NoCode
	}
}

// Contribution is one scored signal.
type Contribution struct {
	Signal string `json:"signal"`
	Detail string `json:"detail"`
	Points int    `json:"points"`
}

// Decision is the route classification result.
type Decision struct {
	Route         Route          `json:"route"`
	Score         int            `json:"score"`
	Contributions []Contribution `json:"contributions"`
	Overrides     []string       `json:"overrides"`
	Reasoning     string         `json:"reasoning"`
}

// Classifier scores Signals with a policy. It holds no mutable state and is
// safe for concurrent use.
type Classifier struct {
	route      policy.RouteWeights
	complexity policy.ComplexityWeights
}

// NewClassifier creates a classifier for the given policy.
func NewClassifier(p policy.Policy) *Classifier {
	return &Classifier{
		route:      p.Route,
		complexity: p.Complexity,
	}
}

// Score computes the no-code suitability score and its contributions.
func (c *Classifier) Score(s Signals) (int, []Contribution) {
	w := c.route
	var contribs []Contribution
	add := func(signal, detail string, points int) {
		if points == 0 {
			return
		}
		contribs = append(contribs, Contribution{Signal: signal, Detail: detail, Points: points})
	}

	switch s.Budget.Tier {
	case BudgetLowest:
		add("budget", "budget under $5,000", w.BudgetLowest)
	case BudgetLow:
		add("budget", "budget $5,000-$10,000", w.BudgetLow)
	case BudgetMid:
		add("budget", "budget $10,000-$20,000", w.BudgetMid)
	}

	switch s.Platform {
	case PlatformWebOnly:
		add("platform", "web-only platform", w.PlatformWebOnly)
	case PlatformNotSure:
		add("platform", "platform not decided", w.PlatformNotSure)
	case PlatformOther:
		add("platform", "mobile or native platform", w.PlatformOther)
	}

	switch s.Preference {
	case PreferenceNoCode:
		add("build_preference", "prefers no-code", w.PreferNoCode)
	case PreferenceCustom:
		add("build_preference", "prefers custom code", w.PreferCustom)
	}

	switch {
	case s.FeatureCount <= w.FewFeaturesMax:
		add("feature_count", fmt.Sprintf("%d core features", s.FeatureCount), w.FewFeatures)
	case s.FeatureCount >= w.ManyFeaturesMin:
		add("feature_count", fmt.Sprintf("%d core features", s.FeatureCount), w.ManyFeatures)
	}

	if s.Needs.RealTime {
		add("real_time", "real-time requirement", w.RealTime)
	}
	if s.Needs.Compliance {
		add("compliance", "compliance requirement", w.Compliance)
	}
	if s.Needs.Mobile {
		add("mobile", "mobile app requirement", w.Mobile)
	}
	if s.Needs.Integrations {
		add("integrations", "third-party integrations", w.Integrations)
	}
	if verticals.Get(s.Vertical).CustomPreferred {
		add("custom_vertical", "vertical favours custom builds", w.CustomVertical)
	}

	score := 0
	for _, ct := range contribs {
		score += ct.Points
	}
	return score, contribs
}

// Classify returns the route for the signals.
func (c *Classifier) Classify(s Signals) Decision {
	score, contribs := c.Score(s)
	d := Decision{Score: score, Contributions: contribs}
	vertical := verticals.Get(s.Vertical)

	// Hard overrides come first and are final.
	forced := false
	switch {
	case s.Needs.Compliance || s.Needs.Mobile:
		d.Route = Custom
		forced = true
		if s.Needs.Compliance {
			d.Overrides = append(d.Overrides, "compliance requirements need a custom build")
		}
		if s.Needs.Mobile {
			d.Overrides = append(d.Overrides, "a mobile app requirement needs a custom build")
		}
	case s.Needs.RealTime:
		d.Route = Custom
		forced = true
		d.Overrides = append(d.Overrides, "real-time sync needs a custom build")
	case score >= c.route.NoCodeThreshold:
		d.Route = NoCode
	case score >= c.route.HybridThreshold:
		d.Route = Hybrid
	default:
		d.Route = Custom
	}

	if !forced && vertical.ComplianceHeavy {
		if s.Preference == PreferenceNoCode && score >= c.route.RegulatedNoCode {
			if d.Route != Hybrid {
				d.Overrides = append(d.Overrides, vertical.Label+" is regulated; downgraded to hybrid at most")
			}
			d.Route = Hybrid
		} else {
			if d.Route != Custom {
				d.Overrides = append(d.Overrides, vertical.Label+" is regulated and needs a custom build")
			}
			d.Route = Custom
		}
	}

	if vertical.CustomPreferred && d.Route == NoCode {
		d.Route = Hybrid
		d.Overrides = append(d.Overrides, vertical.Label+" is never built fully no-code")
	}

	d.Reasoning = describe(d)
	return d
}

func describe(d Decision) string {
	var b strings.Builder
	fmt.Fprintf(&b, "No-code suitability score %d", d.Score)
	if len(d.Contributions) > 0 {
		parts := make([]string, len(d.Contributions))
		for i, ct := range d.Contributions {
			parts[i] = fmt.Sprintf("%s (%+d)", ct.Detail, ct.Points)
		}
		b.WriteString(": ")
		b.WriteString(strings.Join(parts, ", "))
	}
	b.WriteString(".")
	for _, o := range d.Overrides {
		b.WriteString(" Override: ")
		b.WriteString(o)
		b.WriteString(".")
	}
	fmt.Fprintf(&b, " Recommended route: %s.", d.Route)
	return b.String()
}
