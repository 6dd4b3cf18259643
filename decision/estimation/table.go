package estimation

import (
	"hiring-blueprint/decision/route"
	"hiring-blueprint/pkg/money"
)

// Level is a seniority level.
type Level string

const (
	Junior Level = "junior"
	Mid    Level = "mid"
	Senior Level = "senior"
)

// Member is one role on a team option.
type Member struct {
	Level Level  `json:"level"`
	Count int    `json:"count"`
	Role  string `json:"role"`
}

// Weeks is an inclusive timeline band in weeks.
type Weeks struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// TeamOption is one discrete staffing scenario.
type TeamOption struct {
	Name      string      `json:"name"`
	Members   []Member    `json:"members"`
	TotalCost money.Range `json:"total_cost"`
	Timeline  Weeks       `json:"timeline"`
}

// Headcount is the number of people on the team.
func (o TeamOption) Headcount() int {
	n := 0
	for _, m := range o.Members {
		n += m.Count
	}
	return n
}

// IsSoloSenior reports whether the option is a single senior developer.
func (o TeamOption) IsSoloSenior() bool {
	return len(o.Members) == 1 && o.Members[0].Level == Senior && o.Members[0].Count == 1
}

type tableKey struct {
	route      route.Route
	complexity route.Complexity
}

func option(name string, costMin, costMax int64, weeksMin, weeksMax int, members ...Member) TeamOption {
	return TeamOption{
		Name:      name,
		Members:   members,
		TotalCost: money.NewRange(costMin, costMax),
		Timeline:  Weeks{Min: weeksMin, Max: weeksMax},
	}
}

func m(level Level, count int, role string) Member {
	return Member{Level: level, Count: count, Role: role}
}

const (
	noCodeDev  = "No-code developer"
	fullStack  = "Full-stack developer"
	engineer   = "Software engineer"
	qaEngineer = "QA engineer"
)

// teamTable holds the hiring scenarios per (route, complexity), cheapest first.
// Amounts are baseline USD for three core features.
var teamTable = map[tableKey][]TeamOption{
	{route.NoCode, route.Simple}: {
		option("1 Senior", 4000, 8000, 3, 6, m(Senior, 1, noCodeDev)),
		option("1 Mid + 1 Junior", 3500, 7000, 4, 7, m(Mid, 1, noCodeDev), m(Junior, 1, noCodeDev)),
	},
	{route.NoCode, route.Standard}: {
		option("1 Senior", 8000, 15000, 6, 10, m(Senior, 1, noCodeDev)),
		option("1 Senior + 1 Junior", 10000, 18000, 5, 8, m(Senior, 1, noCodeDev), m(Junior, 1, noCodeDev)),
	},
	{route.NoCode, route.Complex}: {
		option("1 Senior", 15000, 25000, 10, 16, m(Senior, 1, noCodeDev)),
		option("1 Senior + 1 Junior", 18000, 30000, 8, 12, m(Senior, 1, noCodeDev), m(Junior, 1, noCodeDev)),
		option("2 Senior", 24000, 38000, 6, 10, m(Senior, 2, noCodeDev)),
	},
	{route.Hybrid, route.Simple}: {
		option("1 Senior", 8000, 15000, 5, 8, m(Senior, 1, fullStack)),
		option("1 Senior + 1 Junior", 10000, 18000, 4, 7, m(Senior, 1, fullStack), m(Junior, 1, noCodeDev)),
	},
	{route.Hybrid, route.Standard}: {
		option("1 Senior", 15000, 28000, 8, 14, m(Senior, 1, fullStack)),
		option("1 Senior + 1 Junior", 18000, 32000, 7, 11, m(Senior, 1, fullStack), m(Junior, 1, noCodeDev)),
		option("2 Senior", 26000, 42000, 5, 9, m(Senior, 2, fullStack)),
	},
	{route.Hybrid, route.Complex}: {
		option("1 Senior + 1 Junior", 30000, 50000, 12, 18, m(Senior, 1, fullStack), m(Junior, 1, fullStack)),
		option("2 Senior", 40000, 65000, 9, 14, m(Senior, 2, fullStack)),
		option("2 Senior + 1 Mid", 55000, 85000, 7, 11, m(Senior, 2, fullStack), m(Mid, 1, fullStack)),
	},
	{route.Custom, route.Simple}: {
		option("1 Senior", 12000, 22000, 6, 10, m(Senior, 1, engineer)),
		option("1 Senior + 1 Junior", 15000, 26000, 5, 8, m(Senior, 1, engineer), m(Junior, 1, engineer)),
	},
	{route.Custom, route.Standard}: {
		option("1 Senior", 25000, 45000, 12, 18, m(Senior, 1, engineer)),
		option("1 Senior + 1 Junior", 30000, 50000, 10, 14, m(Senior, 1, engineer), m(Junior, 1, engineer)),
		option("2 Senior", 45000, 70000, 7, 11, m(Senior, 2, engineer)),
	},
	{route.Custom, route.Complex}: {
		option("1 Senior + 1 Junior", 50000, 85000, 18, 26, m(Senior, 1, engineer), m(Junior, 1, engineer)),
		option("2 Senior", 70000, 110000, 14, 20, m(Senior, 2, engineer)),
		option("2 Senior + 1 Mid + 1 Junior QA", 95000, 150000, 10, 16,
			m(Senior, 2, engineer), m(Mid, 1, engineer), m(Junior, 1, qaEngineer)),
	},
}

// baseOptions returns a copy of the scenarios for a route and complexity,
// falling back to custom/standard for unknown keys.
func baseOptions(r route.Route, c route.Complexity) []TeamOption {
	opts, ok := teamTable[tableKey{r, c}]
	if !ok {
		opts = teamTable[tableKey{route.Custom, route.Standard}]
	}
	out := make([]TeamOption, len(opts))
	for i, o := range opts {
		o.Members = append([]Member(nil), o.Members...)
		out[i] = o
	}
	return out
}
