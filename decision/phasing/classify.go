package phasing

import (
	"strings"
	"unicode"
)

// Stage is a release-scope bucket.
type Stage int

const (
	StageMVP Stage = iota
	StageGrowth
	StageScale
)

func (s Stage) String() string {
	switch s {
	case StageGrowth:
		return "Growth"
	case StageScale:
		return "Scale"
	default:
		return "MVP"
	}
}

var (
	mvpKeywords = []string{
		"auth", "login", "sign up", "signup", "account", "profile", "payment", "checkout",
		"listing", "booking", "dashboard", "search", "cart", "catalog", "onboarding", "upload",
	}
	growthKeywords = []string{
		"notification", "integration", "messaging", "chat", "review", "rating", "analytics",
		"reporting", "report", "export", "email", "coupon", "discount", "webhook", "subscription",
	}
	scaleKeywords = []string{
		"ai", "ml", "machine learning", "recommendation", "multi-language", "localization",
		"white-label", "api access", "public api", "video",
		"offline", "sdk", "marketplace expansion", "fraud",
	}
	heavyKeywords = []string{
		"payment", "real-time", "realtime", "integration", "ai", "ml", "video",
		"compliance", "hipaa", "escrow",
	}
)

// tokens lowercases s and splits it into words on anything that is not a
// letter or digit, so "real-time" reads as "real time" and the catalog ID
// "user_auth" as "user auth".
func tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// matches reports whether any keyword occurs in the feature. Keywords of
// three letters or fewer must match a whole word; longer keywords match a
// word prefix, so "notification" matches "notifications". Multi-word
// keywords match a run of words.
func matches(feature string, keywords []string) bool {
	words := tokens(feature)
	if len(words) == 0 {
		return false
	}
	for _, kw := range keywords {
		kwWords := tokens(kw)
		if len(kwWords) == 0 {
			continue
		}
		for i := 0; i+len(kwWords) <= len(words); i++ {
			if wordsMatch(words[i:i+len(kwWords)], kwWords) {
				return true
			}
		}
	}
	return false
}

func wordsMatch(words, kw []string) bool {
	for i, k := range kw {
		last := i == len(kw)-1
		switch {
		case len(k) <= 3 || !last:
			if words[i] != k {
				return false
			}
		default:
			if !strings.HasPrefix(words[i], k) {
				return false
			}
		}
	}
	return true
}

// classify assigns a feature to a stage by keyword. Scale keywords win, then
// MVP core keywords, then growth keywords; unmatched features are MVP.
func classify(feature string) Stage {
	switch {
	case matches(feature, scaleKeywords):
		return StageScale
	case matches(feature, mvpKeywords):
		return StageMVP
	case matches(feature, growthKeywords):
		return StageGrowth
	default:
		return StageMVP
	}
}

// isHeavy reports whether a feature carries extra build weight.
func isHeavy(feature string) bool {
	return matches(feature, heavyKeywords)
}
