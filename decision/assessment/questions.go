package assessment

// Section groups questions in the form.
type Section string

const (
	SectionA Section = "A" // About the project
	SectionB Section = "B" // Build approach and constraints
	SectionC Section = "C" // Goals, must-haves and contact
	SectionD Section = "D" // Team and hiring
	SectionE Section = "E" // Launch and operations
)

// Kind is the answer shape of a question.
type Kind string

const (
	KindSingle Kind = "single" // one string
	KindMulti  Kind = "multi"  // string array
	KindText   Kind = "text"   // free text
	KindObject Kind = "object" // object with named fields
)

// Question IDs referenced by the engine.
const (
	QCategory       = 1
	QDescription    = 2
	QTargetUsers    = 3
	QCoreFeatures   = 4
	QPlatform       = 5
	QBuildPref      = 6
	QBudget         = 7
	QTimeline       = 8
	QTeamSize       = 9
	QTechBackground = 10
	QWorkingStyle   = 11
	QProblem        = 12
	QGoal           = 13
	QDayOneNeeds    = 14
	QContact        = 15
	QExtraFeatures  = 16
)

// Question is one form question.
type Question struct {
	ID       int      `json:"id"`
	Section  Section  `json:"section"`
	Title    string   `json:"title"`
	Kind     Kind     `json:"kind"`
	Options  []string `json:"options,omitempty"`
	Fields   []string `json:"fields,omitempty"`
	Required bool     `json:"required"`
}

// Day-one need options offered on question 14.
var DayOneOptions = []string{
	"Payments / subscriptions",
	"User authentication",
	"Real-time chat or updates",
	"Compliance (HIPAA, SOC 2, GDPR)",
	"Mobile app (native or PWA)",
	"Third-party integrations",
	"Admin dashboard",
}

var questions = []Question{
	{ID: QCategory, Section: SectionA, Title: "What kind of product are you building?", Kind: KindSingle, Required: true, Options: []string{
		"SaaS / B2B Tool", "Marketplace / Two-sided platform", "E-commerce / Retail", "Fintech/Banking / Payments",
		"Healthcare/Telemedicine / Wellness", "EdTech / Learning platform", "Social / Community",
		"Analytics/Data Platform", "API/Backend service", "Internal tool / Operations", "Other",
	}},
	{ID: QDescription, Section: SectionA, Title: "Describe your project in a few sentences.", Kind: KindText, Required: true},
	{ID: QTargetUsers, Section: SectionA, Title: "Who are your target users?", Kind: KindText},
	{ID: QCoreFeatures, Section: SectionA, Title: "List up to five core features, most important first.", Kind: KindObject, Required: true,
		Fields: []string{"feature1", "feature2", "feature3", "feature4", "feature5"}},
	{ID: QPlatform, Section: SectionA, Title: "Which platforms do you need?", Kind: KindSingle, Required: true,
		Options: []string{"Web only", "Web + Mobile", "Mobile only", "Not sure"}},

	{ID: QBuildPref, Section: SectionB, Title: "Do you have a build preference?", Kind: KindSingle, Required: true,
		Options: []string{"No-code", "Custom code", "Open to either", "Hybrid"}},
	{ID: QBudget, Section: SectionB, Title: "What is your budget for the first version?", Kind: KindSingle, Required: true,
		Options: []string{"Under $5,000", "$5,000 - $10,000", "$10,000 - $20,000", "$20,000 - $40,000", "$40,000 - $80,000", "$80,000+", "Not sure yet"}},
	{ID: QTimeline, Section: SectionB, Title: "When do you need to launch?", Kind: KindSingle, Required: true,
		Options: []string{"ASAP (under 4 weeks)", "1-2 months", "2-3 months", "3-6 months", "6+ months", "Flexible"}},
	{ID: QTeamSize, Section: SectionB, Title: "How many developers are you planning to hire?", Kind: KindSingle,
		Options: []string{"1 developer", "2 developers", "3+ developers", "Not sure"}},
	{ID: QTechBackground, Section: SectionB, Title: "How technical are you?", Kind: KindSingle,
		Options: []string{"Non-technical", "Somewhat technical", "Technical (can review code)", "Developer"}},

	{ID: QWorkingStyle, Section: SectionC, Title: "How do you prefer to work with your developer?", Kind: KindObject,
		Fields: []string{"preference", "timezone"}},
	{ID: QProblem, Section: SectionC, Title: "What problem are you solving, and how?", Kind: KindObject, Required: true,
		Fields: []string{"problem", "solution"}},
	{ID: QGoal, Section: SectionC, Title: "What does success look like in the first 90 days?", Kind: KindObject,
		Fields: []string{"goal", "metric"}},
	{ID: QDayOneNeeds, Section: SectionC, Title: "Which of these do you need on day one?", Kind: KindObject,
		Fields: []string{"selected", "other"}, Options: DayOneOptions},
	{ID: QContact, Section: SectionC, Title: "Where should we send your blueprint?", Kind: KindObject, Required: true,
		Fields: []string{"first_name", "last_name", "email", "project_name"}},
	{ID: QExtraFeatures, Section: SectionC, Title: "Any nice-to-have features for later?", Kind: KindText},

	{ID: 17, Section: SectionD, Title: "Have you hired developers before?", Kind: KindSingle,
		Options: []string{"Never", "Once or twice", "Regularly"}},
	{ID: 18, Section: SectionD, Title: "What engagement model do you prefer?", Kind: KindSingle,
		Options: []string{"Full-time hire", "Contract / freelance", "Agency", "Not sure"}},
	{ID: 19, Section: SectionD, Title: "Where are you open to hiring from?", Kind: KindMulti,
		Options: []string{"Local", "Same timezone", "Anywhere", "Nearshore", "Offshore"}},
	{ID: 20, Section: SectionD, Title: "Which skills must your developer have?", Kind: KindMulti},
	{ID: 21, Section: SectionD, Title: "How will you manage the work?", Kind: KindSingle,
		Options: []string{"I will manage directly", "I need a developer who self-manages", "I will hire a project manager"}},
	{ID: 22, Section: SectionD, Title: "Do you have designs ready?", Kind: KindSingle,
		Options: []string{"Finished designs", "Wireframes", "Sketches or references", "Nothing yet"}},

	{ID: 23, Section: SectionE, Title: "Is there existing code or a prototype?", Kind: KindSingle,
		Options: []string{"No, starting fresh", "No-code prototype", "Partial codebase", "Live product"}},
	{ID: 24, Section: SectionE, Title: "How many users do you expect in the first year?", Kind: KindSingle,
		Options: []string{"Under 100", "100 - 1,000", "1,000 - 10,000", "10,000+"}},
	{ID: 25, Section: SectionE, Title: "Who will maintain the product after launch?", Kind: KindSingle,
		Options: []string{"The same developer", "An in-house team", "An agency", "Not decided"}},
	{ID: 26, Section: SectionE, Title: "Where must user data be hosted?", Kind: KindSingle,
		Options: []string{"Anywhere", "United States", "European Union", "Other region"}},
	{ID: 27, Section: SectionE, Title: "How is the project funded?", Kind: KindSingle,
		Options: []string{"Bootstrapped", "Friends and family", "Pre-seed / seed", "Series A+", "Corporate budget"}},
	{ID: 28, Section: SectionE, Title: "Anything else we should know?", Kind: KindText},
}

// Questions returns the form definition in order. The slice is a copy.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// QuestionByID returns a question definition.
func QuestionByID(id int) (Question, bool) {
	if id < 1 || id > len(questions) {
		return Question{}, false
	}
	return questions[id-1], true
}

// Sections returns the section identifiers in order.
func Sections() []Section {
	return []Section{SectionA, SectionB, SectionC, SectionD, SectionE}
}
