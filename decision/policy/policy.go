// Package policy holds the tunable scoring policy for the decision engines.
// Every point value and threshold used by route/complexity classification,
// feature-count cost adjustment, phase hour units and gap severity lives here
// so that business rules can change without touching the engines.
package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy is the full set of scoring constants.
type Policy struct {
	Route      RouteWeights      `yaml:"route" json:"route"`
	Complexity ComplexityWeights `yaml:"complexity" json:"complexity"`
	Estimation EstimationPolicy  `yaml:"estimation" json:"estimation"`
	Phasing    PhasingPolicy     `yaml:"phasing" json:"phasing"`
	Gaps       GapPolicy         `yaml:"gaps" json:"gaps"`
}

// RouteWeights are the no-code suitability score contributions.
type RouteWeights struct {
	BudgetLowest int `yaml:"budget_lowest" json:"budget_lowest"`
	BudgetLow    int `yaml:"budget_low" json:"budget_low"`
	BudgetMid    int `yaml:"budget_mid" json:"budget_mid"`

	PlatformWebOnly int `yaml:"platform_web_only" json:"platform_web_only"`
	PlatformNotSure int `yaml:"platform_not_sure" json:"platform_not_sure"`
	PlatformOther   int `yaml:"platform_other" json:"platform_other"`

	PreferNoCode int `yaml:"prefer_no_code" json:"prefer_no_code"`
	PreferCustom int `yaml:"prefer_custom" json:"prefer_custom"`

	FewFeaturesMax  int `yaml:"few_features_max" json:"few_features_max"`
	FewFeatures     int `yaml:"few_features" json:"few_features"`
	ManyFeaturesMin int `yaml:"many_features_min" json:"many_features_min"`
	ManyFeatures    int `yaml:"many_features" json:"many_features"`
	RealTime        int `yaml:"real_time" json:"real_time"`
	Compliance      int `yaml:"compliance" json:"compliance"`
	Mobile          int `yaml:"mobile" json:"mobile"`
	Integrations    int `yaml:"integrations" json:"integrations"`
	CustomVertical  int `yaml:"custom_vertical" json:"custom_vertical"`
	NoCodeThreshold int `yaml:"no_code_threshold" json:"no_code_threshold"`
	HybridThreshold int `yaml:"hybrid_threshold" json:"hybrid_threshold"`
	RegulatedNoCode int `yaml:"regulated_no_code_min_score" json:"regulated_no_code_min_score"`
}

// ComplexityWeights are the complexity score contributions and buckets.
type ComplexityWeights struct {
	FeatureCap        int `yaml:"feature_cap" json:"feature_cap"`
	Integrations      int `yaml:"integrations" json:"integrations"`
	Payments          int `yaml:"payments" json:"payments"`
	Auth              int `yaml:"auth" json:"auth"`
	AdminDashboard    int `yaml:"admin_dashboard" json:"admin_dashboard"`
	RealTime          int `yaml:"real_time" json:"real_time"`
	Mobile            int `yaml:"mobile" json:"mobile"`
	Compliance        int `yaml:"compliance" json:"compliance"`
	RegulatedVertical int `yaml:"regulated_vertical" json:"regulated_vertical"`
	SimpleMax         int `yaml:"simple_max" json:"simple_max"`
	ComplexMin        int `yaml:"complex_min" json:"complex_min"`
}

// EstimationPolicy tunes how feature count bends the team-option table.
type EstimationPolicy struct {
	BaselineFeatures    int     `yaml:"baseline_features" json:"baseline_features"`
	PerFeatureAdjust    float64 `yaml:"per_feature_adjust" json:"per_feature_adjust"`
	MinFeatureFactor    float64 `yaml:"min_feature_factor" json:"min_feature_factor"`
	MaxFeatureFactor    float64 `yaml:"max_feature_factor" json:"max_feature_factor"`
	HourlyRateNoCode    int64   `yaml:"hourly_rate_no_code" json:"hourly_rate_no_code"`
	HourlyRateHybrid    int64   `yaml:"hourly_rate_hybrid" json:"hourly_rate_hybrid"`
	HourlyRateCustom    int64   `yaml:"hourly_rate_custom" json:"hourly_rate_custom"`
	FallbackSpreadRatio float64 `yaml:"fallback_spread_ratio" json:"fallback_spread_ratio"`
}

// PhasingPolicy tunes the hourly cost model behind the phase breakdown.
type PhasingPolicy struct {
	HoursPerUnitSimple   int     `yaml:"hours_per_unit_simple" json:"hours_per_unit_simple"`
	HoursPerUnitStandard int     `yaml:"hours_per_unit_standard" json:"hours_per_unit_standard"`
	HoursPerUnitComplex  int     `yaml:"hours_per_unit_complex" json:"hours_per_unit_complex"`
	MaxSpreadRatio       float64 `yaml:"max_spread_ratio" json:"max_spread_ratio"`
	HeavyFeatureWeight   float64 `yaml:"heavy_feature_weight" json:"heavy_feature_weight"`
	MaxMVPFeatures       int     `yaml:"max_mvp_features" json:"max_mvp_features"`
}

// GapPolicy holds the shortfall fractions separating moderate from severe.
// A shortfall of zero is always "none"; up to the tolerance is "moderate";
// anything beyond is "severe".
type GapPolicy struct {
	BudgetModerate   float64 `yaml:"budget_moderate" json:"budget_moderate"`
	TimelineModerate float64 `yaml:"timeline_moderate" json:"timeline_moderate"`
	TeamModerate     float64 `yaml:"team_moderate" json:"team_moderate"`
}

// Default returns the production policy.
func Default() Policy {
	return Policy{
		Route: RouteWeights{
			BudgetLowest:    3,
			BudgetLow:       2,
			BudgetMid:       1,
			PlatformWebOnly: 3,
			PlatformNotSure: 1,
			PlatformOther:   -4,
			PreferNoCode:    3,
			PreferCustom:    -3,
			FewFeaturesMax:  3,
			FewFeatures:     2,
			ManyFeaturesMin: 5,
			ManyFeatures:    -1,
			RealTime:        -4,
			Compliance:      -5,
			Mobile:          -5,
			Integrations:    -2,
			CustomVertical:  -2,
			NoCodeThreshold: 7,
			HybridThreshold: 3,
			RegulatedNoCode: 10,
		},
		Complexity: ComplexityWeights{
			FeatureCap:        5,
			Integrations:      1,
			Payments:          1,
			Auth:              1,
			AdminDashboard:    1,
			RealTime:          2,
			Mobile:            2,
			Compliance:        2,
			RegulatedVertical: 2,
			SimpleMax:         4,
			ComplexMin:        8,
		},
		Estimation: EstimationPolicy{
			BaselineFeatures:    3,
			PerFeatureAdjust:    0.06,
			MinFeatureFactor:    0.88,
			MaxFeatureFactor:    1.30,
			HourlyRateNoCode:    90,
			HourlyRateHybrid:    105,
			HourlyRateCustom:    107,
			FallbackSpreadRatio: 1.5,
		},
		Phasing: PhasingPolicy{
			HoursPerUnitSimple:   40,
			HoursPerUnitStandard: 60,
			HoursPerUnitComplex:  80,
			MaxSpreadRatio:       1.5,
			HeavyFeatureWeight:   1.5,
			MaxMVPFeatures:       5,
		},
		Gaps: GapPolicy{
			BudgetModerate:   0.40,
			TimelineModerate: 0.50,
			TeamModerate:     0.50,
		},
	}
}

// Load reads a YAML policy file and overlays it onto the defaults, so a file
// only needs to name the values it changes.
func Load(path string) (Policy, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("invalid policy file %s: %w", path, err)
	}
	return p, nil
}

// Validate enforces the ordering constraints the engines rely on.
func (p Policy) Validate() error {
	if p.Route.NoCodeThreshold <= p.Route.HybridThreshold {
		return fmt.Errorf("route.no_code_threshold (%d) must exceed route.hybrid_threshold (%d)",
			p.Route.NoCodeThreshold, p.Route.HybridThreshold)
	}
	if p.Route.BudgetLowest < p.Route.BudgetLow || p.Route.BudgetLow < p.Route.BudgetMid || p.Route.BudgetMid < 0 {
		return fmt.Errorf("route budget weights must be non-increasing from lowest to mid and non-negative")
	}
	if p.Complexity.SimpleMax >= p.Complexity.ComplexMin {
		return fmt.Errorf("complexity.simple_max (%d) must be below complexity.complex_min (%d)",
			p.Complexity.SimpleMax, p.Complexity.ComplexMin)
	}
	if p.Complexity.FeatureCap <= 0 {
		return fmt.Errorf("complexity.feature_cap must be positive")
	}
	for name, v := range map[string]float64{
		"gaps.budget_moderate":   p.Gaps.BudgetModerate,
		"gaps.timeline_moderate": p.Gaps.TimelineModerate,
		"gaps.team_moderate":     p.Gaps.TeamModerate,
	} {
		if v <= 0 || v >= 1 {
			return fmt.Errorf("%s must be in (0, 1), got %.2f", name, v)
		}
	}
	if p.Estimation.MinFeatureFactor <= 0 || p.Estimation.MinFeatureFactor > p.Estimation.MaxFeatureFactor {
		return fmt.Errorf("estimation feature factor bounds are inverted")
	}
	if p.Phasing.MaxMVPFeatures <= 0 {
		return fmt.Errorf("phasing.max_mvp_features must be positive")
	}
	return nil
}
