package optimizer

import (
	"math"

	"hiring-blueprint/decision/estimation"
	"hiring-blueprint/decision/route"
	"hiring-blueprint/pkg/ratio"
)

// Severity grades a gap between stated constraints and the estimate.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Rank orders severities from none to severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityModerate:
		return 1
	case SeveritySevere:
		return 2
	default:
		return 0
	}
}

// BudgetGap compares the stated budget ceiling with the realistic minimum.
type BudgetGap struct {
	Severity         Severity `json:"severity"`
	UserBudgetMax    int64    `json:"user_budget_max"`
	RealisticMin     int64    `json:"realistic_min"`
	RealisticMax     int64    `json:"realistic_max"`
	Shortfall        int64    `json:"shortfall"`
	ShortfallPercent int      `json:"shortfall_percent"`
	IsOverBudget     bool     `json:"is_over_budget"`
}

// TimelineGap compares the stated deadline with the fastest realistic build.
type TimelineGap struct {
	Severity          Severity `json:"severity"`
	UserWeeks         int      `json:"user_weeks"`
	RealisticMinWeeks int      `json:"realistic_min_weeks"`
	RealisticMaxWeeks int      `json:"realistic_max_weeks"`
	ShortfallWeeks    int      `json:"shortfall_weeks"`
	ShortfallPercent  int      `json:"shortfall_percent"`
	IsTooAggressive   bool     `json:"is_too_aggressive"`
}

// TeamSizeGap compares the planned headcount with the recommended team.
type TeamSizeGap struct {
	Severity            Severity `json:"severity"`
	UserTeamSize        int      `json:"user_team_size"`
	RecommendedTeamSize int      `json:"recommended_team_size"`
	RecommendedTeam     string   `json:"recommended_team"`
	Shortfall           int      `json:"shortfall"`
	ShortfallPercent    int      `json:"shortfall_percent"`
	IsTooSmall          bool     `json:"is_too_small"`
}

// grade buckets a shortfall fraction: zero is none, up to tolerance is
// moderate, beyond it severe.
func grade(shortfall, tolerance float64) Severity {
	switch {
	case shortfall <= 0:
		return SeverityNone
	case shortfall <= tolerance:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}

func percent(f float64) int {
	return int(math.Round(f * 100))
}

// budgetGap grades a budget. Unknown and open-ended budgets are never short.
func (e *Engine) budgetGap(b route.Budget, est *estimation.CostEstimate) BudgetGap {
	g := BudgetGap{
		Severity:      SeverityNone,
		UserBudgetMax: b.Max,
		RealisticMin:  est.BudgetMin,
		RealisticMax:  est.BudgetMax,
	}
	if !b.Known() || b.Unbounded || b.Max <= 0 {
		return g
	}
	short := ratio.Shortfall(float64(b.Max), float64(est.BudgetMin))
	g.Severity = grade(short, e.gaps.BudgetModerate)
	if g.Severity != SeverityNone {
		g.IsOverBudget = true
		g.Shortfall = est.BudgetMin - b.Max
		g.ShortfallPercent = percent(short)
	}
	return g
}

// timelineGap grades a deadline. Flexible and open-ended deadlines are never
// short.
func (e *Engine) timelineGap(t estimation.Timeline, est *estimation.CostEstimate) TimelineGap {
	g := TimelineGap{
		Severity:          SeverityNone,
		UserWeeks:         t.Weeks,
		RealisticMinWeeks: est.TimelineWeeks.Min,
		RealisticMaxWeeks: est.TimelineWeeks.Max,
	}
	if !t.Known() {
		return g
	}
	short := ratio.Shortfall(float64(t.Weeks), float64(est.TimelineWeeks.Min))
	g.Severity = grade(short, e.gaps.TimelineModerate)
	if g.Severity != SeverityNone {
		g.IsTooAggressive = true
		g.ShortfallWeeks = est.TimelineWeeks.Min - t.Weeks
		g.ShortfallPercent = percent(short)
	}
	return g
}

// teamGap grades a planned headcount. Zero means unknown.
func (e *Engine) teamGap(size int, est *estimation.CostEstimate) TeamSizeGap {
	rec := est.Recommended()
	g := TeamSizeGap{
		Severity:            SeverityNone,
		UserTeamSize:        size,
		RecommendedTeamSize: rec.Headcount(),
		RecommendedTeam:     rec.Name,
	}
	if size <= 0 {
		return g
	}
	short := ratio.Shortfall(float64(size), float64(g.RecommendedTeamSize))
	g.Severity = grade(short, e.gaps.TeamModerate)
	if g.Severity != SeverityNone {
		g.IsTooSmall = true
		g.Shortfall = g.RecommendedTeamSize - size
		g.ShortfallPercent = percent(short)
	}
	return g
}
