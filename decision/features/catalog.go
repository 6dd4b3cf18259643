// Package features provides the feature catalog and the normalizer for the
// "core features" questionnaire answer.
package features

import "sort"

// Common is the catalog category holding features offered for every vertical.
const Common = "common"

// Catalog maps category -> feature ID -> display label.
type Catalog struct {
	categories map[string]map[string]string
	index      map[string]string // feature ID -> label across all categories
}

// NewCatalog builds a catalog from a category table.
func NewCatalog(categories map[string]map[string]string) *Catalog {
	c := &Catalog{
		categories: make(map[string]map[string]string, len(categories)),
		index:      make(map[string]string),
	}
	for category, feats := range categories {
		copied := make(map[string]string, len(feats))
		for id, label := range feats {
			copied[id] = label
			if _, exists := c.index[id]; !exists {
				c.index[id] = label
			}
		}
		c.categories[category] = copied
	}
	return c
}

// IsKnown reports whether id is a catalog feature ID in any category.
func (c *Catalog) IsKnown(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Label returns the display label for a feature. Free-text features are
// returned unchanged.
func (c *Catalog) Label(id string) string {
	if label, ok := c.index[id]; ok {
		return label
	}
	return id
}

// Labels maps Label over a feature list.
func (c *Catalog) Labels(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = c.Label(id)
	}
	return out
}

// ForCategory returns the feature IDs offered for a category (its own
// features followed by the common ones), sorted within each group.
func (c *Catalog) ForCategory(category string) []string {
	own := sortedKeys(c.categories[category])
	if category == Common {
		return own
	}
	return append(own, sortedKeys(c.categories[Common])...)
}

// Categories returns the catalog category names in sorted order.
func (c *Catalog) Categories() []string {
	return sortedKeys(c.categories)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultCatalog is the production feature catalog.
var DefaultCatalog = NewCatalog(map[string]map[string]string{
	Common: {
		"user_auth":                "User accounts & login",
		"user_profiles":            "User profiles",
		"admin_dashboard":          "Admin dashboard",
		"notifications":            "Email & push notifications",
		"search":                   "Search & filtering",
		"file_uploads":             "File & image uploads",
		"payments":                 "Payments & checkout",
		"messaging":                "In-app messaging",
		"analytics_dashboard":      "Analytics & reporting",
		"third_party_integrations": "Third-party integrations",
		"onboarding":               "Guided onboarding",
	},
	"saas": {
		"subscriptions":    "Subscription billing",
		"team_workspaces":  "Team workspaces",
		"role_permissions": "Roles & permissions",
		"api_access":       "Public API access",
		"usage_billing":    "Usage-based billing",
		"reporting":        "Custom reports",
	},
	"marketplace": {
		"listings":        "Listings",
		"vendor_profiles": "Vendor profiles",
		"booking":         "Booking & reservations",
		"reviews_ratings": "Reviews & ratings",
		"escrow_payouts":  "Escrow & payouts",
		"matching":        "Buyer/seller matching",
	},
	"ecommerce": {
		"product_catalog": "Product catalog",
		"shopping_cart":   "Shopping cart",
		"inventory":       "Inventory management",
		"order_tracking":  "Order tracking",
		"discounts":       "Discounts & coupons",
		"recommendations": "Product recommendations",
	},
	"fintech": {
		"account_linking":  "Bank account linking",
		"transactions":     "Transaction history",
		"kyc_verification": "KYC / identity verification",
		"budgeting_tools":  "Budgeting tools",
		"fraud_detection":  "Fraud detection",
		"statements":       "Statements & exports",
	},
	"healthcare": {
		"patient_records":        "Patient records",
		"appointment_scheduling": "Appointment scheduling",
		"video_consultations":    "Video consultations",
		"prescriptions":          "E-prescriptions",
		"hipaa_audit_log":        "HIPAA audit logging",
		"care_plans":             "Care plans",
	},
	"edtech": {
		"course_builder":    "Course builder",
		"video_lessons":     "Video lessons",
		"quizzes":           "Quizzes & assessments",
		"progress_tracking": "Progress tracking",
		"certificates":      "Certificates",
		"cohort_management": "Cohort management",
	},
	"social": {
		"activity_feed": "Activity feed",
		"user_posts":    "User posts",
		"follows":       "Follows & connections",
		"groups":        "Groups & communities",
		"moderation":    "Content moderation",
		"live_chat":     "Live chat",
	},
	"analytics": {
		"data_ingestion": "Data ingestion pipelines",
		"dashboards":     "Interactive dashboards",
		"custom_reports": "Custom report builder",
		"data_export":    "Data export",
		"alerts":         "Threshold alerts",
		"ml_insights":    "ML-driven insights",
	},
	"api": {
		"rest_api":       "REST API",
		"webhooks":       "Webhooks",
		"api_keys":       "API key management",
		"rate_limiting":  "Rate limiting",
		"developer_docs": "Developer documentation",
		"sdk_generation": "Client SDKs",
	},
	"internal": {
		"workflow_automation": "Workflow automation",
		"approvals":           "Approval flows",
		"data_tables":         "Editable data tables",
		"audit_trail":         "Audit trail",
		"sso":                 "Single sign-on",
		"spreadsheet_import":  "Spreadsheet import",
	},
})
