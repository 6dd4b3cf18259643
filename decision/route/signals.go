package route

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"hiring-blueprint/decision/verticals"
)

// Signals are the questionnaire facts the classifiers score. Zero values are
// the weakest signal for every dimension.
type Signals struct {
	Budget       Budget       `json:"budget"`
	Platform     Platform     `json:"platform"`
	Preference   Preference   `json:"build_preference"`
	FeatureCount int          `json:"feature_count"`
	Needs        Needs        `json:"day_one_needs"`
	Vertical     verticals.ID `json:"vertical"`
}

// Needs are the day-one requirement flags.
type Needs struct {
	Payments       bool `json:"payments"`
	Auth           bool `json:"auth"`
	RealTime       bool `json:"real_time"`
	Compliance     bool `json:"compliance"`
	Mobile         bool `json:"mobile"`
	Integrations   bool `json:"integrations"`
	AdminDashboard bool `json:"admin_dashboard"`
}

// Any reports whether at least one flag is set.
func (n Needs) Any() bool {
	return n.Payments || n.Auth || n.RealTime || n.Compliance || n.Mobile || n.Integrations || n.AdminDashboard
}

// needLabels are the day-one options offered on the form, matched whole.
var needLabels = map[string]func(*Needs){
	"payments / subscriptions":        func(n *Needs) { n.Payments = true },
	"user authentication":             func(n *Needs) { n.Auth = true },
	"real-time chat or updates":       func(n *Needs) { n.RealTime = true },
	"compliance (hipaa, soc 2, gdpr)": func(n *Needs) { n.Compliance = true },
	"mobile app (native or pwa)":      func(n *Needs) { n.Mobile = true },
	"third-party integrations":        func(n *Needs) { n.Integrations = true },
	"admin dashboard":                 func(n *Needs) { n.AdminDashboard = true },
}

var needKeywords = []struct {
	keywords []string
	set      func(*Needs)
}{
	{[]string{"payment", "checkout", "billing"}, func(n *Needs) { n.Payments = true }},
	{[]string{"auth", "login", "sign in", "user account"}, func(n *Needs) { n.Auth = true }},
	{[]string{"real time", "realtime"}, func(n *Needs) { n.RealTime = true }},
	{[]string{"compliance", "hipaa", "gdpr", "pci", "soc 2", "soc2"}, func(n *Needs) { n.Compliance = true }},
	{[]string{"mobile app", "native app", "pwa", "ios", "android"}, func(n *Needs) { n.Mobile = true }},
	{[]string{"integration"}, func(n *Needs) { n.Integrations = true }},
	{[]string{"admin"}, func(n *Needs) { n.AdminDashboard = true }},
}

// ParseNeeds maps day-one labels to flags. Form options match exactly; any
// other label is matched by whole-word keyword and may set several flags.
// Unrecognised labels are ignored.
func ParseNeeds(items []string) Needs {
	var n Needs
	for _, item := range items {
		if set, ok := needLabels[strings.ToLower(strings.TrimSpace(item))]; ok {
			set(&n)
			continue
		}
		words := needWords(item)
		for _, k := range needKeywords {
			for _, kw := range k.keywords {
				if hasKeyword(words, needWords(kw)) {
					k.set(&n)
					break
				}
			}
		}
	}
	return n
}

func needWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// hasKeyword reports whether kw occurs as a run of words. The final keyword
// word may be a prefix when it is longer than three letters, so "payment"
// matches "payments" while "ios" never matches "scenarios".
func hasKeyword(words, kw []string) bool {
	if len(kw) == 0 {
		return false
	}
	for i := 0; i+len(kw) <= len(words); i++ {
		ok := true
		for j, k := range kw {
			w := words[i+j]
			if j == len(kw)-1 && len(k) > 3 {
				ok = strings.HasPrefix(w, k)
			} else {
				ok = w == k
			}
			if !ok {
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// ===== BUDGET =====

// BudgetTier orders budget bands from cheapest to most generous.
type BudgetTier int

const (
	BudgetUnknown BudgetTier = iota
	BudgetLowest             // under $5k
	BudgetLow                // $5k - $10k
	BudgetMid                // $10k - $20k
	BudgetHigh               // above $20k
)

func (t BudgetTier) String() string {
	switch t {
	case BudgetLowest:
		return "lowest"
	case BudgetLow:
		return "low"
	case BudgetMid:
		return "mid"
	case BudgetHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalText encodes the tier by name.
func (t BudgetTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Budget is a parsed budget answer. Max is zero when the band has no upper
// bound ("$80,000+") or the answer is unknown.
type Budget struct {
	Answer    string     `json:"answer"`
	Tier      BudgetTier `json:"tier"`
	Min       int64      `json:"min"`
	Max       int64      `json:"max"`
	Unbounded bool       `json:"unbounded"`
}

// Known reports whether the answer named a usable band.
func (b Budget) Known() bool {
	return b.Tier != BudgetUnknown
}

var amountRe = regexp.MustCompile(`\$?\s*(\d[\d,]*(?:\.\d+)?)\s*(k|K)?`)

// ParseBudget reads a budget band answer such as "Under $5,000",
// "$10,000 - $20,000" or "$80,000+". Anything without a dollar amount
// ("Not sure yet", "") is BudgetUnknown.
func ParseBudget(answer string) Budget {
	b := Budget{Answer: answer}
	lower := strings.ToLower(strings.TrimSpace(answer))
	amounts := parseAmounts(lower)
	if len(amounts) == 0 {
		return b
	}

	switch {
	case strings.HasPrefix(lower, "under") || strings.HasPrefix(lower, "less than") || strings.HasPrefix(lower, "<"):
		b.Max = amounts[0]
	case strings.HasSuffix(lower, "+") || strings.Contains(lower, "or more") || strings.HasPrefix(lower, "over"):
		b.Min = amounts[0]
		b.Unbounded = true
	case len(amounts) >= 2:
		b.Min, b.Max = amounts[0], amounts[1]
		if b.Min > b.Max {
			b.Min, b.Max = b.Max, b.Min
		}
	default:
		b.Min, b.Max = amounts[0], amounts[0]
	}

	b.Tier = tierFor(b)
	return b
}

func tierFor(b Budget) BudgetTier {
	if b.Unbounded {
		return BudgetHigh
	}
	switch {
	case b.Max <= 5000:
		return BudgetLowest
	case b.Max <= 10000:
		return BudgetLow
	case b.Max <= 20000:
		return BudgetMid
	default:
		return BudgetHigh
	}
}

func parseAmounts(s string) []int64 {
	var out []int64
	for _, m := range amountRe.FindAllStringSubmatch(s, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		if m[2] != "" {
			v *= 1000
		}
		out = append(out, int64(v))
	}
	return out
}

// ===== PLATFORM =====

// Platform is the target platform answer.
type Platform string

const (
	PlatformUnknown Platform = ""
	PlatformWebOnly Platform = "web-only"
	PlatformNotSure Platform = "not-sure"
	// PlatformOther covers every mobile-inclusive or native choice.
	PlatformOther Platform = "other"
)

// ParsePlatform maps "Web only", "Web + Mobile", "Mobile only" and
// "Not sure" answers.
func ParsePlatform(answer string) Platform {
	lower := strings.ToLower(strings.TrimSpace(answer))
	switch {
	case lower == "":
		return PlatformUnknown
	case strings.Contains(lower, "not sure"), strings.Contains(lower, "unsure"):
		return PlatformNotSure
	case strings.Contains(lower, "web only"), lower == "web", lower == "web app":
		return PlatformWebOnly
	default:
		return PlatformOther
	}
}

// ===== BUILD PREFERENCE =====

// Preference is the stated build approach.
type Preference string

const (
	PreferenceNone   Preference = ""
	PreferenceNoCode Preference = "no-code"
	PreferenceCustom Preference = "custom"
	PreferenceHybrid Preference = "hybrid"
	PreferenceEither Preference = "either"
)

// ParsePreference maps "No-code", "Custom code", "Hybrid" and
// "Open to either" answers.
func ParsePreference(answer string) Preference {
	lower := strings.ToLower(strings.TrimSpace(answer))
	switch {
	case lower == "":
		return PreferenceNone
	case strings.Contains(lower, "no-code"), strings.Contains(lower, "no code"), strings.Contains(lower, "nocode"), strings.Contains(lower, "low-code"):
		return PreferenceNoCode
	case strings.Contains(lower, "custom"):
		return PreferenceCustom
	case strings.Contains(lower, "hybrid"):
		return PreferenceHybrid
	case strings.Contains(lower, "either"), strings.Contains(lower, "open"), strings.Contains(lower, "not sure"):
		return PreferenceEither
	default:
		return PreferenceNone
	}
}
