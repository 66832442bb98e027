package methodology

import (
	"math"
	"strings"
)

// Standard identifies a carbon certification body
type Standard string

const (
	StandardVerra                  Standard = "Verra"
	StandardGoldStandard           Standard = "Gold Standard"
	StandardAmericanCarbonRegistry Standard = "American Carbon Registry"
	StandardClimateActionReserve   Standard = "Climate Action Reserve"
)

// Standards returns the supported standards in reporting order
func Standards() []Standard {
	return []Standard{
		StandardVerra,
		StandardGoldStandard,
		StandardAmericanCarbonRegistry,
		StandardClimateActionReserve,
	}
}

// Key returns the lower-cased, whitespace-stripped form used as a map key
// in feasibility results ("Gold Standard" -> "goldstandard").
func (s Standard) Key() string {
	return strings.ToLower(strings.Join(strings.Fields(string(s)), ""))
}

// Valid reports whether s is one of the supported standards
func (s Standard) Valid() bool {
	for _, std := range Standards() {
		if s == std {
			return true
		}
	}
	return false
}

// ParseStandard resolves a display name or key to a Standard
func ParseStandard(value string) (Standard, error) {
	key := Standard(value).Key()
	for _, std := range Standards() {
		if std.Key() == key {
			return std, nil
		}
	}
	return "", &UnknownStandardError{Value: value}
}

// Methodology represents a carbon credit methodology as published by a standard
type Methodology struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Standard     Standard `json:"standard" yaml:"standard"`
	ProjectTypes []string `json:"project_types" yaml:"project_types"`
	Countries    []string `json:"countries" yaml:"countries"`
	// Scale bounds in hectares. MaxScale <= 0 means unbounded.
	MinScale     float64  `json:"min_scale" yaml:"min_scale"`
	MaxScale     float64  `json:"max_scale" yaml:"max_scale"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	Requirements []string `json:"requirements" yaml:"requirements"`
	Exclusions   []string `json:"exclusions" yaml:"exclusions"`

	// Informational only; never scored.
	MonitoringRequirements    []string `json:"monitoring_requirements,omitempty" yaml:"monitoring_requirements,omitempty"`
	BaselineRequirements      []string `json:"baseline_requirements,omitempty" yaml:"baseline_requirements,omitempty"`
	AdditionalityRequirements []string `json:"additionality_requirements,omitempty" yaml:"additionality_requirements,omitempty"`
}

// clone returns a deep copy so catalog entries cannot be mutated through
// slices handed out to callers.
func (m Methodology) clone() Methodology {
	m.ProjectTypes = cloneStrings(m.ProjectTypes)
	m.Countries = cloneStrings(m.Countries)
	m.Technologies = cloneStrings(m.Technologies)
	m.Requirements = cloneStrings(m.Requirements)
	m.Exclusions = cloneStrings(m.Exclusions)
	m.MonitoringRequirements = cloneStrings(m.MonitoringRequirements)
	m.BaselineRequirements = cloneStrings(m.BaselineRequirements)
	m.AdditionalityRequirements = cloneStrings(m.AdditionalityRequirements)
	return m
}

// ProjectDescriptor describes a candidate project as collected by the
// onboarding forms. Every field is optional; pointer fields distinguish
// "not provided" from a zero value.
type ProjectDescriptor struct {
	Name                    string   `json:"name,omitempty"`
	Description             string   `json:"description,omitempty"`
	ProjectType             string   `json:"project_type,omitempty"`
	Country                 string   `json:"country,omitempty"`
	LandArea                *float64 `json:"land_area,omitempty"` // hectares
	Technology              string   `json:"technology,omitempty"`
	Developer               string   `json:"developer,omitempty"`
	LandOwnership           *bool    `json:"land_ownership,omitempty"`
	MonitoringPlan          *bool    `json:"monitoring_plan,omitempty"`
	LandUse                 string   `json:"land_use,omitempty"`
	AdditionalityEvidence   *bool    `json:"additionality_evidence,omitempty"`
	StakeholderConsultation *bool    `json:"stakeholder_consultation,omitempty"`
	CreditingPeriodYears    *int     `json:"crediting_period_years,omitempty"`
	RecentClearing          *bool    `json:"recent_clearing,omitempty"`
	RegulatoryMandate       *bool    `json:"regulatory_mandate,omitempty"`
	// Boundary is an optional GeoJSON feature or geometry. The engine never
	// reads it; the matching service derives LandArea from it.
	Boundary string `json:"boundary,omitempty"`
}

// Area returns the land area in hectares. Absent, negative, NaN and
// infinite values count as 0.
func (p ProjectDescriptor) Area() float64 {
	if p.LandArea == nil || *p.LandArea < 0 || math.IsNaN(*p.LandArea) || math.IsInf(*p.LandArea, 0) {
		return 0
	}
	return *p.LandArea
}

// MethodologyMatch is the scored outcome of one methodology against a project
type MethodologyMatch struct {
	MethodologyID string   `json:"methodology_id"`
	Name          string   `json:"name"`
	Standard      Standard `json:"standard"`
	Eligibility   bool     `json:"eligibility"`
	Reasoning     string   `json:"reasoning"`
	Improvements  []string `json:"improvements"`
	MatchScore    float64  `json:"match_score"`
	Requirements  []string `json:"requirements"`
	Exclusions    []string `json:"exclusions"`
}

// FeasibilityResult rolls match results up to a single standard
type FeasibilityResult struct {
	Standard              string   `json:"standard"`
	Eligible              bool     `json:"eligible"`
	Score                 int      `json:"score"`
	Reasoning             string   `json:"reasoning"`
	Improvements          []string `json:"improvements"`
	Requirements          []string `json:"requirements"`
	Exclusions            []string `json:"exclusions"`
	BestMethodologyID     string   `json:"best_methodology_id,omitempty"`
	EligibleMethodologies []string `json:"eligible_methodologies"`
}

// OverallKey is the feasibility map key of the cross-standard summary
const OverallKey = "overall"

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
