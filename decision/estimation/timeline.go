package estimation

import (
	"regexp"
	"strconv"
	"strings"
)

// urgentWeeks is the stated deadline at or under which the fastest team
// option is recommended.
const urgentWeeks = 8

// Timeline is a parsed timeline answer. Weeks is the stated deadline; it is
// zero when the answer is unknown ("Flexible") or unlimited ("6+ months").
type Timeline struct {
	Answer    string `json:"answer"`
	Weeks     int    `json:"weeks"`
	Unlimited bool   `json:"unlimited"`
}

// Known reports whether the answer stated a usable deadline.
func (t Timeline) Known() bool {
	return t.Weeks > 0
}

// Urgent reports whether the deadline calls for the fastest team.
func (t Timeline) Urgent() bool {
	return t.Known() && t.Weeks <= urgentWeeks
}

var numberRe = regexp.MustCompile(`\d+`)

// ParseTimeline reads answers such as "ASAP (under 4 weeks)", "1-2 months",
// "3-6 months", "6+ months" and "Flexible". Ranges resolve to their upper
// bound; months count as four weeks.
func ParseTimeline(answer string) Timeline {
	t := Timeline{Answer: answer}
	lower := strings.ToLower(strings.TrimSpace(answer))
	if lower == "" || strings.Contains(lower, "flexible") || strings.Contains(lower, "not sure") {
		return t
	}
	if strings.Contains(lower, "+") || strings.Contains(lower, "or more") || strings.Contains(lower, "no rush") {
		t.Unlimited = true
		return t
	}

	nums := numberRe.FindAllString(lower, -1)
	if len(nums) == 0 {
		if strings.Contains(lower, "asap") {
			t.Weeks = 4
		}
		return t
	}
	n, err := strconv.Atoi(nums[len(nums)-1])
	if err != nil {
		return t
	}
	switch {
	case strings.Contains(lower, "month"):
		t.Weeks = n * 4
	case strings.Contains(lower, "year"):
		t.Weeks = n * 52
	default:
		t.Weeks = n
	}
	return t
}
