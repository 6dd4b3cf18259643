// Package enrichment refines the deterministic assessment with narrative text.
//
// Enrichment is strictly additive. Every Enricher carries a pure Fallback, and
// Apply returns the fallback whenever the live call fails, so the core result
// never waits on or depends on an external model.
package enrichment

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"hiring-blueprint/decision/assessment"
	"hiring-blueprint/decision/route"
)

// Sources reported on Result.
const (
	SourceTemplate  = "template"
	SourceAnthropic = "anthropic"
)

// Input is the slice of an assessment an enricher sees.
type Input struct {
	Route          route.Route      `json:"route"`
	Complexity     route.Complexity `json:"complexity"`
	ProjectType    string           `json:"project_type"`
	Description    string           `json:"description"`
	Problem        string           `json:"problem"`
	Goal           string           `json:"goal"`
	Features       []string         `json:"features"`
	TechStack      string           `json:"tech_stack"`
	RouteGuidance  string           `json:"route_guidance"`
	Reasoning      string           `json:"reasoning"`
	ComplexityNote string           `json:"complexity_note"`
	BudgetRange    string           `json:"budget_range"`
	Timeline       string           `json:"timeline"`
}

// Result is the enrichment output.
type Result struct {
	TechStack           string `json:"tech_stack"`
	Narrative           string `json:"narrative"`
	ComplexityReasoning string `json:"complexity_reasoning"`
	Source              string `json:"source"`
}

// Enricher produces narrative text for an assessment.
type Enricher interface {
	Enrich(ctx context.Context, in Input) (Result, error)
	Fallback(in Input) Result
}

// InputFromReport builds an Input from an evaluated report and its responses.
func InputFromReport(rep *assessment.Report, r assessment.Responses) Input {
	in := Input{
		Route:       rep.Result.Route,
		Complexity:  rep.Result.Complexity,
		ProjectType: rep.Result.ProjectType,
		Description: r.String(assessment.QDescription),
		Problem:     r.Field(assessment.QProblem, "problem"),
		Goal:        r.Field(assessment.QGoal, "goal"),
		Features:    rep.AllFeatures,
		Reasoning:   rep.RouteDecision.Reasoning,
		BudgetRange: rep.Result.BudgetRange,
		Timeline:    rep.Result.Timeline,
	}
	if rep.Estimate != nil {
		in.TechStack = rep.Estimate.TechStackSuggestion
		in.RouteGuidance = rep.Estimate.RouteGuidance
	}
	details := make([]string, 0, len(rep.Complexity.Contributions))
	for _, c := range rep.Complexity.Contributions {
		details = append(details, fmt.Sprintf("%s (+%d)", c.Detail, c.Points))
	}
	in.ComplexityNote = fmt.Sprintf("score %d from %s", rep.Complexity.Score, strings.Join(details, ", "))
	return in
}

// Apply runs the enricher and falls back to its template text on any error.
// A nil enricher uses TemplateEnricher.
func Apply(ctx context.Context, e Enricher, in Input) Result {
	if e == nil {
		e = TemplateEnricher{}
	}
	res, err := e.Enrich(ctx, in)
	if err != nil {
		log.Warn().Err(err).Str("route", string(in.Route)).Msg("Enrichment failed, using template text")
		return e.Fallback(in)
	}
	fb := e.Fallback(in)
	if strings.TrimSpace(res.TechStack) == "" {
		res.TechStack = fb.TechStack
	}
	if strings.TrimSpace(res.Narrative) == "" {
		res.Narrative = fb.Narrative
	}
	if strings.TrimSpace(res.ComplexityReasoning) == "" {
		res.ComplexityReasoning = fb.ComplexityReasoning
	}
	return res
}

// TemplateEnricher is the deterministic enricher. Enrich never fails.
type TemplateEnricher struct{}

// Enrich returns the template text.
func (TemplateEnricher) Enrich(_ context.Context, in Input) (Result, error) {
	return TemplateEnricher{}.Fallback(in), nil
}

// Fallback builds narrative text from the deterministic result.
func (TemplateEnricher) Fallback(in Input) Result {
	var narrative strings.Builder
	fmt.Fprintf(&narrative, "We recommend a %s build for this %s project.", in.Route, in.Complexity)
	if in.RouteGuidance != "" {
		narrative.WriteString(" ")
		narrative.WriteString(in.RouteGuidance)
	}
	if in.BudgetRange != "" && in.Timeline != "" {
		fmt.Fprintf(&narrative, " Expect %s over %s.", in.BudgetRange, in.Timeline)
	}
	if in.Goal != "" {
		fmt.Fprintf(&narrative, " Measure the first release against: %s.", in.Goal)
	}

	reasoning := fmt.Sprintf("Rated %s", in.Complexity)
	if in.ComplexityNote != "" {
		reasoning += " (" + in.ComplexityNote + ")"
	}
	reasoning += "."

	return Result{
		TechStack:           in.TechStack,
		Narrative:           narrative.String(),
		ComplexityReasoning: reasoning,
		Source:              SourceTemplate,
	}
}
