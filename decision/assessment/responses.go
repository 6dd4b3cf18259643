package assessment

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"hiring-blueprint/decision/features"
)

// Responses maps question ID to answer. Answers are strings, string arrays
// or small objects, the shapes produced by decoding the form's JSON.
type Responses map[int]any

// String returns a single-choice or text answer, trimmed. Non-string answers
// read as empty.
func (r Responses) String(id int) string {
	s, _ := r[id].(string)
	return strings.TrimSpace(s)
}

// Strings returns an array answer with blanks dropped. A plain string answer
// is split as free text.
func (r Responses) Strings(id int) []string {
	return stringList(r[id])
}

// Field returns one field of an object answer.
func (r Responses) Field(id int, key string) string {
	obj, ok := r[id].(map[string]any)
	if !ok {
		if sm, ok := r[id].(map[string]string); ok {
			return strings.TrimSpace(sm[key])
		}
		return ""
	}
	s, _ := obj[key].(string)
	return strings.TrimSpace(s)
}

// DayOneNeeds returns the selected day-one options and any free-text extras.
// Question 14 arrives either as {selected, other} or as a plain array.
func (r Responses) DayOneNeeds() (selected []string, other []string) {
	switch v := r[QDayOneNeeds].(type) {
	case map[string]any:
		return selectedList(v["selected"]), stringList(v["other"])
	case map[string]string:
		return selectedList(v["selected"]), stringList(v["other"])
	case []any, []string:
		return stringList(v), nil
	default:
		return nil, nil
	}
}

// Answered reports whether a question has a non-empty answer.
func (r Responses) Answered(id int) bool {
	return !isEmpty(r[id])
}

// Contact returns question 15.
func (r Responses) Contact() Contact {
	return Contact{
		FirstName:   r.Field(QContact, "first_name"),
		LastName:    r.Field(QContact, "last_name"),
		Email:       strings.ToLower(r.Field(QContact, "email")),
		ProjectName: r.Field(QContact, "project_name"),
	}
}

// Contact is the lead captured on question 15.
type Contact struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	ProjectName string `json:"project_name"`
}

// Clone returns a shallow copy.
func (r Responses) Clone() Responses {
	out := make(Responses, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// selectedList reads the "selected" part of question 14. A single string may
// join several options, and the option labels themselves contain commas, so
// known labels are taken out whole before the remainder is split.
func selectedList(v any) []string {
	s, ok := v.(string)
	if !ok {
		return stringList(v)
	}
	type hit struct {
		at    int
		label string
	}
	var hits []hit
	for _, label := range DayOneOptions {
		if i := strings.Index(s, label); i >= 0 {
			hits = append(hits, hit{i, label})
			s = s[:i] + strings.Repeat(",", len(label)) + s[i+len(label):]
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].at < hits[j].at })

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.label)
	}
	return append(out, features.SplitFreeText(s)...)
}

func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		return features.SplitFreeText(t)
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	default:
		return nil
	}
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(stringList(t)) == 0
	case []any:
		return len(stringList(t)) == 0
	case map[string]any:
		for _, fv := range t {
			if !isEmpty(fv) {
				return false
			}
		}
		return true
	case map[string]string:
		for _, fv := range t {
			if strings.TrimSpace(fv) != "" {
				return false
			}
		}
		return true
	default:
		return false
	}
}

var leadingNumber = regexp.MustCompile(`\d+`)

// ParseTeamSize reads a planned headcount such as "2 developers" or
// "3+ developers". Unknown answers read as 0.
func ParseTeamSize(answer string) int {
	lower := strings.ToLower(strings.TrimSpace(answer))
	if lower == "" || strings.Contains(lower, "not sure") {
		return 0
	}
	if n := leadingNumber.FindString(lower); n != "" {
		v, err := strconv.Atoi(n)
		if err == nil {
			return v
		}
	}
	switch {
	case strings.Contains(lower, "solo"), strings.Contains(lower, "just me"), strings.Contains(lower, "one"):
		return 1
	case strings.Contains(lower, "two"):
		return 2
	default:
		return 0
	}
}
