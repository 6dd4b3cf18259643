// Package verticals maps product categories to route-specific tech stack
// suggestions and guidance text. The table is presentation-only: nothing in
// it feeds numeric decisions.
package verticals

import "strings"

// ID identifies a vertical.
type ID string

const (
	SaaS        ID = "saas"
	Marketplace ID = "marketplace"
	Ecommerce   ID = "ecommerce"
	Fintech     ID = "fintech"
	Healthcare  ID = "healthcare"
	EdTech      ID = "edtech"
	Social      ID = "social"
	Analytics   ID = "analytics"
	API         ID = "api"
	Internal    ID = "internal"
	Other       ID = "other"
)

// Route keys used by the template table. They mirror route.Route values.
const (
	RouteNoCode = "no-code"
	RouteHybrid = "hybrid"
	RouteCustom = "custom"
)

// RouteTemplate is the text attached to one route of a vertical.
type RouteTemplate struct {
	TechStackSuggestion string `json:"tech_stack_suggestion"`
	RouteGuidance       string `json:"route_guidance"`
}

// Template describes a vertical.
type Template struct {
	ID    ID     `json:"id"`
	Label string `json:"label"`

	// ComplianceHeavy verticals carry regulatory obligations that no-code
	// platforms cannot satisfy on their own.
	ComplianceHeavy bool `json:"compliance_heavy"`
	// CustomPreferred verticals are never recommended a pure no-code build.
	CustomPreferred bool `json:"custom_preferred"`

	Routes map[string]RouteTemplate `json:"routes"`
}

// NoCodeAllowed reports whether a pure no-code build may be recommended.
func (t Template) NoCodeAllowed() bool {
	return !t.ComplianceHeavy && !t.CustomPreferred
}

// ForRoute returns the route text, falling back to the custom route text and
// then to the Other vertical.
func (t Template) ForRoute(route string) RouteTemplate {
	if rt, ok := t.Routes[route]; ok {
		return rt
	}
	if rt, ok := t.Routes[RouteCustom]; ok {
		return rt
	}
	return templates[Other].Routes[RouteCustom]
}

// matcher pairs a vertical with the lowercase keywords that identify it in a
// free-form category answer. Order matters: the first match wins.
type matcher struct {
	id       ID
	keywords []string
}

var matchers = []matcher{
	{Fintech, []string{"fintech", "banking", "finance", "payments platform", "insurtech"}},
	{Healthcare, []string{"healthcare", "telemedicine", "health", "medical", "wellness"}},
	{Analytics, []string{"analytics", "data platform", "business intelligence"}},
	{API, []string{"api/backend", "api / backend", "backend service", "api service", "developer tool"}},
	{Marketplace, []string{"marketplace", "two-sided"}},
	{Ecommerce, []string{"e-commerce", "ecommerce", "retail", "online store"}},
	{EdTech, []string{"edtech", "education", "learning", "course"}},
	{Social, []string{"social", "community"}},
	{Internal, []string{"internal tool", "operations", "back-office", "back office"}},
	{SaaS, []string{"saas", "b2b", "productivity"}},
}

// Resolve maps a category answer (label, ID or free text) to a vertical ID.
// Blank or unrecognised categories resolve to Other.
func Resolve(category string) ID {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return Other
	}
	if _, ok := templates[ID(c)]; ok {
		return ID(c)
	}
	for _, m := range matchers {
		for _, kw := range m.keywords {
			if strings.Contains(c, kw) {
				return m.id
			}
		}
	}
	return Other
}

// Lookup returns the template for a category answer.
func Lookup(category string) Template {
	return templates[Resolve(category)]
}

// Get returns the template for a vertical ID, or Other when unknown.
func Get(id ID) Template {
	if t, ok := templates[id]; ok {
		return t
	}
	return templates[Other]
}

// All returns every template in display order.
func All() []Template {
	order := []ID{SaaS, Marketplace, Ecommerce, Fintech, Healthcare, EdTech, Social, Analytics, API, Internal, Other}
	out := make([]Template, 0, len(order))
	for _, id := range order {
		out = append(out, templates[id])
	}
	return out
}

var templates = map[ID]Template{
	SaaS: {
		ID:    SaaS,
		Label: "SaaS / B2B Tool",
		Routes: map[string]RouteTemplate{
			RouteNoCode: {
				TechStackSuggestion: "Bubble or Softr for the app, Stripe for subscriptions, Airtable or Xano as the data layer",
				RouteGuidance:       "Validate the workflow with a no-code build and real paying teams before committing to custom engineering.",
			},
			RouteHybrid: {
				TechStackSuggestion: "Next.js front end on Supabase (auth + Postgres), Stripe Billing, n8n or Zapier for back-office automation",
				RouteGuidance:       "Own the core product code but lean on managed auth, billing and automation to keep the first release small.",
			},
			RouteCustom: {
				TechStackSuggestion: "React/Next.js, Go or Node.js API, PostgreSQL, Stripe Billing, deployed on AWS or Render",
				RouteGuidance:       "Invest in multi-tenant data modelling and role-based access from day one; they are expensive to retrofit.",
			},
		},
	},
	Marketplace: {
		ID:    Marketplace,
		Label: "Marketplace / Two-sided platform",
		Routes: map[string]RouteTemplate{
			RouteNoCode: {
				TechStackSuggestion: "Sharetribe or Bubble marketplace template, Stripe Connect for payouts",
				RouteGuidance:       "Solve the chicken-and-egg problem manually first; a template marketplace is enough to prove liquidity.",
			},
			RouteHybrid: {
				TechStackSuggestion: "Next.js with Supabase, Stripe Connect, Algolia search, Postmark for transactional email",
				RouteGuidance:       "Keep listings, search and payouts on managed services and build only the matching logic yourself.",
			},
			RouteCustom: {
				TechStackSuggestion: "React/Next.js, Node.js or Go services, PostgreSQL, Elasticsearch, Stripe Connect",
				RouteGuidance:       "Design trust and safety (reviews, disputes, payouts) as first-class domains, not add-ons.",
			},
		},
	},
	Ecommerce: {
		ID:    Ecommerce,
		Label: "E-commerce / Retail",
		Routes: map[string]RouteTemplate{
			RouteNoCode: {
				TechStackSuggestion: "Shopify with curated apps, Klaviyo for email, Shopify Payments",
				RouteGuidance:       "Most stores never need custom code; start on Shopify and customise the theme.",
			},
			RouteHybrid: {
				TechStackSuggestion: "Headless Shopify or Medusa with a Next.js storefront, Stripe, Algolia",
				RouteGuidance:       "Go headless only where the storefront experience is the differentiator.",
			},
			RouteCustom: {
				TechStackSuggestion: "Next.js storefront, Go or Node.js commerce services, PostgreSQL, Stripe, Redis",
				RouteGuidance:       "Custom commerce pays off for unusual catalogs, pricing or fulfilment flows; everything else should stay off the shelf.",
			},
		},
	},
	Fintech: {
		ID:              Fintech,
		Label:           "Fintech/Banking / Payments",
		ComplianceHeavy: true,
		Routes: map[string]RouteTemplate{
			RouteNoCode: {
				TechStackSuggestion: "Bubble prototype with Plaid sandbox and Stripe; not suitable for production money movement",
				RouteGuidance:       "Use no-code only for a clickable prototype to validate demand with regulators and partners.",
			},
			RouteHybrid: {
				TechStackSuggestion: "Next.js front end, Supabase for non-sensitive data, Plaid, Stripe Treasury or Unit for regulated flows",
				RouteGuidance:       "Delegate custody and KYC to a licensed banking-as-a-service partner and keep sensitive data out of low-code tools.",
			},
			RouteCustom: {
				TechStackSuggestion: "React, Go or Java services, PostgreSQL with encryption at rest, Plaid, Unit or Synapse, SOC 2-ready AWS setup",
				RouteGuidance:       "Budget for audit logging, encryption and a compliance review in every phase.",
			},
		},
	},
	Healthcare: {
		ID:              Healthcare,
		Label:           "Healthcare/Telemedicine / Wellness",
		ComplianceHeavy: true,
		Routes: map[string]RouteTemplate{
			RouteNoCode: {
				TechStackSuggestion: "Prototype only: Bubble with mock data; no PHI outside HIPAA-eligible services",
				RouteGuidance:       "A no-code prototype can validate the care workflow, but real patient data needs a BAA-covered stack.",
			},
			RouteHybrid: {
				TechStackSuggestion: "Next.js front end, Healthie or Medplum for clinical data, Twilio Video, Aptible hosting",
				RouteGuidance:       "Let a HIPAA-compliant health platform hold PHI and build the patient experience around it.",
			},
			RouteCustom: {
				TechStackSuggestion: "React, Node.js or Go API, PostgreSQL on HIPAA-eligible AWS, FHIR integration, Twilio Video",
				RouteGuidance:       "Sign BAAs with every vendor, log every PHI access and plan a security review before launch.",
			},
		},
	},
	EdTech: {
		ID:    EdTech,
		Label: "EdTech / Learning platform",
		Routes: map[string]RouteTemplate{
			RouteNoCode: {
				TechStackSuggestion: "Teachable, Thinkific or Circle, with Zapier for enrolment automation",
				RouteGuidance:       "Course platforms cover most learning products; build only when pedagogy demands it.",
			},
			RouteHybrid: {
				TechStackSuggestion: "Next.js with Supabase, Mux for video, Stripe, an LMS plugin for quizzes",
				RouteGuidance:       "Use managed video and payments and focus engineering on the learning experience.",
			},
			RouteCustom: {
				TechStackSuggestion: "React, Node.js or Go API, PostgreSQL, Mux video, Stripe, LTI integration",
				RouteGuidance:       "Model courses, cohorts and progress carefully; reporting for institutions drives most later work.",
			},
		},
	},
	Social: {
		ID:    Social,
		Label: "Social / Community",
		Routes: map[string]RouteTemplate{
			RouteNoCode: {
				TechStackSuggestion: "Circle or Bettermode, with Memberstack and Stripe for paid tiers",
				RouteGuidance:       "Prove engagement with an off-the-shelf community before building feeds.",
			},
			RouteHybrid: {
				TechStackSuggestion: "Next.js with Supabase realtime, Stream for feeds and chat, Cloudinary for media",
				RouteGuidance:       "Feeds and chat are solved problems; buy them and build what makes the community unique.",
			},
			RouteCustom: {
				TechStackSuggestion: "React Native or Flutter, Go or Elixir services, PostgreSQL, Redis, WebSockets",
				RouteGuidance:       "Plan moderation and abuse handling early; they dominate operating cost at scale.",
			},
		},
	},
	Analytics: {
		ID:              Analytics,
		Label:           "Analytics/Data Platform",
		CustomPreferred: true,
		Routes: map[string]RouteTemplate{
			RouteNoCode: {
				TechStackSuggestion: "Retool or Metabase on a managed warehouse for internal validation",
				RouteGuidance:       "BI tools can prove which metrics matter, but a data product needs its own pipeline.",
			},
			RouteHybrid: {
				TechStackSuggestion: "Next.js front end, dbt + Snowflake or BigQuery, Metabase embedding, Airbyte for ingestion",
				RouteGuidance:       "Assemble proven data tooling and build the differentiating models and UI on top.",
			},
			RouteCustom: {
				TechStackSuggestion: "React, Go or Python services, ClickHouse or BigQuery, Kafka for ingestion, dbt",
				RouteGuidance:       "Data volume and latency requirements drive architecture; benchmark early with realistic data.",
			},
		},
	},
	API: {
		ID:              API,
		Label:           "API/Backend service",
		CustomPreferred: true,
		Routes: map[string]RouteTemplate{
			RouteNoCode: {
				TechStackSuggestion: "Xano or Supabase edge functions for an internal proof of concept",
				RouteGuidance:       "A backend-as-a-service can mock the API contract while you validate demand.",
			},
			RouteHybrid: {
				TechStackSuggestion: "Supabase or Firebase for storage and auth, serverless functions for business logic, Kong or Zuplo gateway",
				RouteGuidance:       "Lean on managed gateways and auth; write the domain logic yourself.",
			},
			RouteCustom: {
				TechStackSuggestion: "Go or Node.js service, PostgreSQL, Redis, OpenAPI-first design, deployed on Kubernetes or Fly.io",
				RouteGuidance:       "Treat the API contract, versioning and rate limits as the product.",
			},
		},
	},
	Internal: {
		ID:    Internal,
		Label: "Internal tool / Operations",
		Routes: map[string]RouteTemplate{
			RouteNoCode: {
				TechStackSuggestion: "Retool, Airtable Interfaces or Glide on top of existing data",
				RouteGuidance:       "Internal tools rarely justify custom code; start with an internal-tool builder.",
			},
			RouteHybrid: {
				TechStackSuggestion: "Retool front end over a small custom API, PostgreSQL, n8n workflows",
				RouteGuidance:       "Write code only for the integrations and rules the builder cannot express.",
			},
			RouteCustom: {
				TechStackSuggestion: "React admin front end, Go or Node.js API, PostgreSQL, SSO via Okta or Google Workspace",
				RouteGuidance:       "Prioritise SSO, audit trails and permissions over polish.",
			},
		},
	},
	Other: {
		ID:    Other,
		Label: "Other",
		Routes: map[string]RouteTemplate{
			RouteNoCode: {
				TechStackSuggestion: "Bubble or Webflow with Airtable, Stripe and Zapier",
				RouteGuidance:       "Start with the fastest path to real users and revisit the stack once demand is proven.",
			},
			RouteHybrid: {
				TechStackSuggestion: "Next.js on Supabase with Stripe and managed email",
				RouteGuidance:       "Combine managed building blocks with a thin layer of custom code.",
			},
			RouteCustom: {
				TechStackSuggestion: "React/Next.js, Node.js or Go API, PostgreSQL, deployed on a managed cloud platform",
				RouteGuidance:       "Scope a focused MVP and hire senior engineers for the architecture decisions.",
			},
		},
	},
}
