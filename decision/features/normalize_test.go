package features

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Normalize ---

func TestNormalize_ArrayKnownFirst(t *testing.T) {
	raw := []any{"Loyalty points", "user_auth", "Gift cards", "payments"}
	got := Normalize(raw)
	assert.Equal(t, []string{"user_auth", "payments", "Loyalty points", "Gift cards"}, got)
}

func TestNormalize_ObjectSlotsInPositionOrder(t *testing.T) {
	raw := map[string]any{
		"feature3": "search",
		"feature1": "booking",
		"feature2": "Calendar sync",
	}
	got := Normalize(raw)
	assert.Equal(t, []string{"booking", "search", "Calendar sync"}, got)
}

func TestNormalize_SplitsFreeText(t *testing.T) {
	raw := []string{"messaging", "Referral codes, Dark mode\nOffline mode ,  "}
	got := Normalize(raw)
	assert.Equal(t, []string{"messaging", "Referral codes", "Dark mode", "Offline mode"}, got)
}

func TestNormalize_DeduplicatesExactMatches(t *testing.T) {
	raw := []any{"search", "search", "Export", "Export", "export"}
	got := Normalize(raw)
	// De-duplication is case-sensitive.
	assert.Equal(t, []string{"search", "Export", "export"}, got)
}

func TestNormalize_CapsAtFive(t *testing.T) {
	raw := []any{"a", "b", "user_auth", "c", "d", "payments", "e", "search"}
	got := Normalize(raw)
	require.Len(t, got, MaxCoreFeatures)
	assert.Equal(t, []string{"user_auth", "payments", "search", "a", "b"}, got)
}

func TestNormalize_DropsNonStrings(t *testing.T) {
	raw := []any{42, nil, "", "   ", map[string]any{"x": 1}, "search", true}
	assert.Equal(t, []string{"search"}, Normalize(raw))
}

func TestNormalize_EmptyInputs(t *testing.T) {
	for _, raw := range []any{nil, []any{}, map[string]any{}, "", 17} {
		got := Normalize(raw)
		require.NotNil(t, got, "input %#v", raw)
		assert.Empty(t, got, "input %#v", raw)
	}
}

func TestNormalize_MixedObjectWithSelectedAndOther(t *testing.T) {
	raw := map[string]any{
		"feature1": "Smart reminders",
		"selected": []any{"notifications", "user_auth"},
		"other":    "Widgets, notifications",
	}
	got := Normalize(raw)
	assert.Equal(t, []string{"notifications", "user_auth", "Smart reminders", "Widgets"}, got)
}

func TestNormalize_BoundProperty(t *testing.T) {
	inputs := []any{
		[]any{"a", "a", "b", "c", "d", "e", "f", "g"},
		map[string]any{"feature1": "x,y,z", "feature2": "x", "feature5": "q\nr"},
		[]string{"payments", "payments", "search, search", "user_auth"},
	}
	for i, raw := range inputs {
		t.Run(fmt.Sprintf("input_%d", i), func(t *testing.T) {
			got := Normalize(raw)
			assert.LessOrEqual(t, len(got), MaxCoreFeatures)
			seen := map[string]bool{}
			for _, f := range got {
				assert.NotEmpty(t, f)
				assert.False(t, seen[f], "duplicate %q", f)
				seen[f] = true
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := []any{"Referral codes", "payments", "search"}
	first := Normalize(raw)
	second := Normalize(first)
	assert.Equal(t, first, second)
}

// --- Catalog ---

func TestCatalog_LabelFallsBackToInput(t *testing.T) {
	assert.Equal(t, "Payments & checkout", DefaultCatalog.Label("payments"))
	assert.Equal(t, "Gift cards", DefaultCatalog.Label("Gift cards"))
}

func TestCatalog_ForCategoryIncludesCommon(t *testing.T) {
	ids := DefaultCatalog.ForCategory("healthcare")
	assert.Contains(t, ids, "patient_records")
	assert.Contains(t, ids, "user_auth")

	unknown := DefaultCatalog.ForCategory("no-such-category")
	assert.Contains(t, unknown, "user_auth")
}

func TestSplitFreeText(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitFreeText(" a ,b\r\n c,,"))
	assert.Empty(t, SplitFreeText(" , \n"))
}
