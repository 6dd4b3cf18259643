package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"hiring-blueprint/decision/assessment"
	"hiring-blueprint/decision/enrichment"
	"hiring-blueprint/decision/optimizer"
	"hiring-blueprint/decision/verticals"
	"hiring-blueprint/pkg/money"
)

// =============================================================================
// OUTPUT FORMATTERS
// =============================================================================

// JSONOutput is the assess command's JSON document.
type JSONOutput struct {
	Report     *assessment.Report `json:"report"`
	Enrichment *enrichment.Result `json:"enrichment,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func outputJSON(w io.Writer, rep *assessment.Report, enriched *enrichment.Result) error {
	return writeJSON(w, JSONOutput{Report: rep, Enrichment: enriched})
}

const boxWidth = 63

func boxLine(w io.Writer, left, right string) {
	fmt.Fprintf(w, "%s%s%s\n", left, strings.Repeat("═", boxWidth), right)
}

func boxRow(w io.Writer, label, value string) {
	fmt.Fprintf(w, "║  %-22s %-37s ║\n", truncate(label, 22), truncate(value, 37))
}

func boxText(w io.Writer, text string) {
	fmt.Fprintf(w, "║  %-60s ║\n", truncate(text, 60))
}

func outputTable(w io.Writer, rep *assessment.Report, enriched *enrichment.Result) error {
	res := rep.Result
	est := rep.Estimate

	fmt.Fprintln(w)
	boxLine(w, "╔", "╗")
	boxText(w, "HIRING BLUEPRINT")
	boxLine(w, "╠", "╣")
	boxRow(w, "Project type:", res.ProjectType)
	boxRow(w, "Route:", string(res.Route))
	boxRow(w, "Complexity:", string(res.Complexity))
	boxRow(w, "Budget range:", res.BudgetRange)
	boxRow(w, "Timeline:", res.Timeline)
	boxRow(w, "Hire:", res.DevRole)
	if est != nil {
		boxRow(w, "Recommended team:", est.RecommendedOption)
	}
	boxLine(w, "╠", "╣")

	if est != nil {
		boxText(w, "TEAM OPTIONS")
		boxLine(w, "╠", "╣")
		for _, o := range est.TeamOptions {
			boxRow(w, o.Name, fmt.Sprintf("%s, %d-%d wks", o.TotalCost, o.Timeline.Min, o.Timeline.Max))
		}
		boxLine(w, "╠", "╣")
	}

	if b := rep.Breakdown; b != nil {
		boxText(w, "MVP PHASING")
		boxLine(w, "╠", "╣")
		boxRow(w, "MVP", fmt.Sprintf("%s (%d features)", b.MVPCostEstimate, len(b.MVPFeatures)))
		boxRow(w, "Phase 2", fmt.Sprintf("%s (%d features)", b.Phase2CostEstimate, len(b.Phase2Features)))
		boxRow(w, "Phase 3", fmt.Sprintf("%s (%d features)", b.Phase3CostEstimate, len(b.Phase3Features)))
		boxLine(w, "╠", "╣")
	}

	if p := rep.Plan; p != nil && p.HasGaps() {
		boxText(w, "GAPS")
		boxLine(w, "╠", "╣")
		boxRow(w, "Budget", severityLabel(p.BudgetGap.Severity))
		boxRow(w, "Timeline", severityLabel(p.TimelineGap.Severity))
		boxRow(w, "Team size", severityLabel(p.TeamSizeGap.Severity))
		for _, r := range p.Recommendations {
			boxText(w, "- "+r.Title)
		}
		boxLine(w, "╠", "╣")
	}

	if enriched != nil {
		boxRow(w, "Suggested stack:", enriched.TechStack)
	}
	boxLine(w, "╚", "╝")
	return nil
}

func outputMarkdown(w io.Writer, rep *assessment.Report, enriched *enrichment.Result) error {
	res := rep.Result
	fmt.Fprintln(w, "## Hiring Blueprint")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "|--------|-------|")
	fmt.Fprintf(w, "| **Project type** | %s |\n", res.ProjectType)
	fmt.Fprintf(w, "| **Route** | %s |\n", res.Route)
	fmt.Fprintf(w, "| **Complexity** | %s |\n", res.Complexity)
	fmt.Fprintf(w, "| **Budget range** | %s |\n", res.BudgetRange)
	fmt.Fprintf(w, "| **Timeline** | %s |\n", res.Timeline)
	fmt.Fprintf(w, "| **Hire** | %s |\n", res.DevRole)

	fmt.Fprintln(w)
	fmt.Fprintln(w, res.Recommendation)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "_%s_\n", res.Reasoning)

	if est := rep.Estimate; est != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "### Team Options")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Team | Cost | Timeline |")
		fmt.Fprintln(w, "|------|------|----------|")
		for _, o := range est.TeamOptions {
			name := o.Name
			if o.Name == est.RecommendedOption {
				name = "**" + name + "** (recommended)"
			}
			fmt.Fprintf(w, "| %s | %s | %d-%d weeks |\n", name, o.TotalCost, o.Timeline.Min, o.Timeline.Max)
		}
	}

	if b := rep.Breakdown; b != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "### MVP Phasing")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Phase | Cost | Weeks | Features |")
		fmt.Fprintln(w, "|-------|------|-------|----------|")
		phaseRow(w, "MVP", b.MVPCostEstimate, b.MVPWeeks.Min, b.MVPWeeks.Max, b.MVPFeatures)
		phaseRow(w, "Phase 2", b.Phase2CostEstimate, b.Phase2Weeks.Min, b.Phase2Weeks.Max, b.Phase2Features)
		phaseRow(w, "Phase 3", b.Phase3CostEstimate, b.Phase3Weeks.Min, b.Phase3Weeks.Max, b.Phase3Features)
		fmt.Fprintln(w)
		fmt.Fprintln(w, b.Recommendation)
	}

	if p := rep.Plan; p != nil && p.HasGaps() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "### Closing the Gaps")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Budget gap: %s · Timeline gap: %s · Team gap: %s\n\n",
			p.BudgetGap.Severity, p.TimelineGap.Severity, p.TeamSizeGap.Severity)
		for _, r := range p.Recommendations {
			fmt.Fprintf(w, "- **%s** (%s): %s\n", r.Title, r.Category, r.Description)
		}
		if alt := p.AlternativeTechStack; alt != nil {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "Alternative stack: %s (%s)\n", alt.Suggested, alt.Savings)
		}
	}

	if enriched != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "### Guidance")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "**Suggested stack:** %s\n\n", enriched.TechStack)
		fmt.Fprintln(w, enriched.Narrative)
	}
	return nil
}

func phaseRow(w io.Writer, name string, cost money.Range, minWeeks, maxWeeks int, features []string) {
	fmt.Fprintf(w, "| %s | %s | %d-%d | %s |\n", name, cost, minWeeks, maxWeeks, strings.Join(features, ", "))
}

func outputQuestions(w io.Writer, qs []assessment.Question) error {
	section := assessment.Section("")
	for _, q := range qs {
		if q.Section != section {
			section = q.Section
			fmt.Fprintf(w, "\nSection %s\n", section)
		}
		req := ""
		if q.Required {
			req = " *"
		}
		fmt.Fprintf(w, "  %2d. [%s] %s%s\n", q.ID, q.Kind, q.Title, req)
		if len(q.Fields) > 0 {
			fmt.Fprintf(w, "      fields: %s\n", strings.Join(q.Fields, ", "))
		}
	}
	return nil
}

func outputVerticals(w io.Writer, ts []verticals.Template) error {
	for _, t := range ts {
		flags := []string{}
		if t.ComplianceHeavy {
			flags = append(flags, "compliance-heavy")
		}
		if t.CustomPreferred {
			flags = append(flags, "custom-preferred")
		}
		line := fmt.Sprintf("%-12s %s", t.ID, t.Label)
		if len(flags) > 0 {
			line += " (" + strings.Join(flags, ", ") + ")"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func severityLabel(s optimizer.Severity) string {
	if s == optimizer.SeverityNone {
		return "-"
	}
	return string(s)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
