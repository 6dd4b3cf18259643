package route

import (
	"fmt"

	"hiring-blueprint/decision/verticals"
)

// Complexity is the coarse project-size tier.
type Complexity string

const (
	Simple   Complexity = "simple"
	Standard Complexity = "standard"
	Complex  Complexity = "complex"
)

// ComplexityDecision is the complexity classification result.
type ComplexityDecision struct {
	Complexity    Complexity     `json:"complexity"`
	Score         int            `json:"score"`
	Contributions []Contribution `json:"contributions"`
}

// Complexity scores project size. It is computed independently of the route:
// a forced-custom project can still be simple.
func (c *Classifier) Complexity(s Signals) ComplexityDecision {
	w := c.complexity
	var d ComplexityDecision
	add := func(signal, detail string, points int) {
		if points == 0 {
			return
		}
		d.Contributions = append(d.Contributions, Contribution{Signal: signal, Detail: detail, Points: points})
		d.Score += points
	}

	features := s.FeatureCount
	if features > w.FeatureCap {
		features = w.FeatureCap
	}
	if features < 0 {
		features = 0
	}
	add("feature_count", fmt.Sprintf("%d core features", s.FeatureCount), features)

	if s.Needs.Integrations {
		add("integrations", "third-party integrations", w.Integrations)
	}
	if s.Needs.Payments {
		add("payments", "payments", w.Payments)
	}
	if s.Needs.Auth {
		add("auth", "user authentication", w.Auth)
	}
	if s.Needs.AdminDashboard {
		add("admin_dashboard", "admin dashboard", w.AdminDashboard)
	}
	if s.Needs.RealTime {
		add("real_time", "real-time features", w.RealTime)
	}
	if s.Needs.Mobile {
		add("mobile", "mobile app", w.Mobile)
	}
	if s.Needs.Compliance {
		add("compliance", "compliance", w.Compliance)
	}
	if verticals.Get(s.Vertical).ComplianceHeavy {
		add("regulated_vertical", "regulated vertical", w.RegulatedVertical)
	}

	switch {
	case d.Score <= w.SimpleMax:
		d.Complexity = Simple
	case d.Score >= w.ComplexMin:
		d.Complexity = Complex
	default:
		d.Complexity = Standard
	}
	return d
}
