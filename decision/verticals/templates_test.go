package verticals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := map[string]ID{
		"Fintech/Banking / Payments":         Fintech,
		"Healthcare/Telemedicine / Wellness": Healthcare,
		"Analytics/Data Platform":            Analytics,
		"API/Backend service":                API,
		"Marketplace / Two-sided platform":   Marketplace,
		"E-commerce / Retail":                Ecommerce,
		"SaaS / B2B Tool":                    SaaS,
		"saas":                               SaaS,
		"Internal tool / Operations":         Internal,
		"Something brand new":                Other,
		"":                                   Other,
	}
	for in, want := range tests {
		assert.Equal(t, want, Resolve(in), "category %q", in)
	}
}

func TestTraits(t *testing.T) {
	assert.True(t, Get(Fintech).ComplianceHeavy)
	assert.True(t, Get(Healthcare).ComplianceHeavy)
	assert.True(t, Get(Analytics).CustomPreferred)
	assert.True(t, Get(API).CustomPreferred)
	assert.False(t, Get(SaaS).ComplianceHeavy)
	assert.False(t, Get(Other).CustomPreferred)
}

func TestLookup_UnknownFallsBackToOther(t *testing.T) {
	tpl := Lookup("Underwater basket weaving")
	assert.Equal(t, Other, tpl.ID)
	assert.NotEmpty(t, tpl.ForRoute(RouteHybrid).TechStackSuggestion)
	assert.Equal(t, Other, Get("nope").ID)
}

func TestAll_EveryTemplateCoversEveryRoute(t *testing.T) {
	all := All()
	assert.Len(t, all, 11)
	for _, tpl := range all {
		for _, r := range []string{RouteNoCode, RouteHybrid, RouteCustom} {
			rt, ok := tpl.Routes[r]
			if assert.True(t, ok, "%s missing %s", tpl.ID, r) {
				assert.NotEmpty(t, rt.TechStackSuggestion)
				assert.NotEmpty(t, rt.RouteGuidance)
			}
		}
	}
}

func TestForRoute_UnknownRouteUsesCustom(t *testing.T) {
	tpl := Get(SaaS)
	assert.Equal(t, tpl.Routes[RouteCustom], tpl.ForRoute("quantum"))
}
