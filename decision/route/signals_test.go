package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBudget(t *testing.T) {
	tests := []struct {
		answer    string
		tier      BudgetTier
		min, max  int64
		unbounded bool
	}{
		{"Under $5,000", BudgetLowest, 0, 5000, false},
		{"$5,000 - $10,000", BudgetLow, 5000, 10000, false},
		{"$10,000 - $20,000", BudgetMid, 10000, 20000, false},
		{"$20,000 - $40,000", BudgetHigh, 20000, 40000, false},
		{"$80,000+", BudgetHigh, 80000, 0, true},
		{"$15k-$8k", BudgetMid, 8000, 15000, false},
		{"Not sure yet", BudgetUnknown, 0, 0, false},
		{"", BudgetUnknown, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			b := ParseBudget(tt.answer)
			assert.Equal(t, tt.tier, b.Tier)
			assert.Equal(t, tt.min, b.Min)
			assert.Equal(t, tt.max, b.Max)
			assert.Equal(t, tt.unbounded, b.Unbounded)
			assert.Equal(t, tt.tier != BudgetUnknown, b.Known())
		})
	}
}

func TestParsePlatform(t *testing.T) {
	assert.Equal(t, PlatformWebOnly, ParsePlatform("Web only"))
	assert.Equal(t, PlatformOther, ParsePlatform("Web + Mobile"))
	assert.Equal(t, PlatformOther, ParsePlatform("Mobile only"))
	assert.Equal(t, PlatformNotSure, ParsePlatform("Not sure"))
	assert.Equal(t, PlatformUnknown, ParsePlatform("  "))
}

func TestParsePreference(t *testing.T) {
	assert.Equal(t, PreferenceNoCode, ParsePreference("No-code"))
	assert.Equal(t, PreferenceCustom, ParsePreference("Custom code"))
	assert.Equal(t, PreferenceHybrid, ParsePreference("Hybrid"))
	assert.Equal(t, PreferenceEither, ParsePreference("Open to either"))
	assert.Equal(t, PreferenceNone, ParsePreference(""))
}

func TestParseNeeds(t *testing.T) {
	n := ParseNeeds([]string{
		"Payments / subscriptions",
		"User authentication",
		"Real-time chat or updates",
		"Compliance (HIPAA, SOC 2, GDPR)",
		"Admin dashboard",
		"Something unrelated",
	})
	assert.True(t, n.Payments)
	assert.True(t, n.Auth)
	assert.True(t, n.RealTime)
	assert.True(t, n.Compliance)
	assert.True(t, n.AdminDashboard)
	assert.False(t, n.Mobile)
	assert.False(t, n.Integrations)
	assert.True(t, n.Any())
	assert.False(t, ParseNeeds(nil).Any())
}

func TestParseNeeds_FormLabelsSetOneFlagEach(t *testing.T) {
	for label := range needLabels {
		n := ParseNeeds([]string{label})
		set := 0
		for _, b := range []bool{n.Payments, n.Auth, n.RealTime, n.Compliance, n.Mobile, n.Integrations, n.AdminDashboard} {
			if b {
				set++
			}
		}
		assert.Equal(t, 1, set, label)
	}
}

func TestParseNeeds_KeywordsMatchWholeWords(t *testing.T) {
	assert.False(t, ParseNeeds([]string{"Mobile-responsive web"}).Mobile)
	assert.False(t, ParseNeeds([]string{"Usage scenarios"}).Mobile)
	assert.True(t, ParseNeeds([]string{"iOS and Android apps"}).Mobile)
	assert.True(t, ParseNeeds([]string{"Real-time updates"}).RealTime)
	assert.True(t, ParseNeeds([]string{"PCI DSS, SOC 2"}).Compliance)
	assert.True(t, ParseNeeds([]string{"Stripe payments, admin panel"}).AdminDashboard)
}

