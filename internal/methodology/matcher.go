package methodology

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Factor weights
const (
	projectTypeMatchPoints    = 25.0
	projectTypeMismatchPoints = 5.0
	countryMatchPoints        = 20.0
	countryMismatchPenalty    = -10.0
	scaleWithinPoints         = 25.0
	scalePartialMaxPoints     = 15.0
	scaleAbovePoints          = 15.0
	technologyMatchPoints     = 20.0
	technologyMismatchPoints  = 5.0
	requirementsPoints        = 10.0
	missingRequirementPenalty = 2.0

	// EligibilityThreshold is the minimum score for an eligible match
	EligibilityThreshold = 50.0
)

// Matcher scores projects against a methodology catalog. A Matcher holds no
// mutable state and may be shared between goroutines.
type Matcher struct {
	catalog          *Catalog
	requirementRules []RequirementRule
	exclusionRules   []ExclusionRule
	logger           *zap.Logger
}

// Option configures a Matcher
type Option func(*Matcher)

// WithLogger sets the logger used for per-evaluation debug output
func WithLogger(logger *zap.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRequirementRules replaces the built-in requirement rules
func WithRequirementRules(rules []RequirementRule) Option {
	return func(m *Matcher) {
		m.requirementRules = append([]RequirementRule(nil), rules...)
	}
}

// WithExclusionRules replaces the built-in exclusion rules
func WithExclusionRules(rules []ExclusionRule) Option {
	return func(m *Matcher) {
		m.exclusionRules = append([]ExclusionRule(nil), rules...)
	}
}

// NewMatcher creates a matcher over catalog. A nil catalog selects the
// default catalog.
func NewMatcher(catalog *Catalog, opts ...Option) *Matcher {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	m := &Matcher{
		catalog:          catalog,
		requirementRules: DefaultRequirementRules(),
		exclusionRules:   DefaultExclusionRules(),
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalog returns the catalog the matcher scores against
func (m *Matcher) Catalog() *Catalog {
	return m.catalog
}

// MatchMethodologies scores every methodology in the catalog, drops fully
// excluded (zero score) results and returns the rest by descending score.
// Equal scores keep catalog order.
func (m *Matcher) MatchMethodologies(project ProjectDescriptor, mode Mode) ([]MethodologyMatch, error) {
	mode, err := ParseMode(string(mode))
	if err != nil {
		return nil, err
	}
	return m.rank(project, mode), nil
}

// Evaluate scores a single methodology against the project
func (m *Matcher) Evaluate(methodology Methodology, project ProjectDescriptor, mode Mode) (MethodologyMatch, error) {
	mode, err := ParseMode(string(mode))
	if err != nil {
		return MethodologyMatch{}, err
	}
	return m.evaluate(methodology, project, mode), nil
}

func (m *Matcher) rank(project ProjectDescriptor, mode Mode) []MethodologyMatch {
	matches := make([]MethodologyMatch, 0, m.catalog.Len())
	for _, methodology := range m.catalog.methodologies {
		match := m.evaluate(methodology, project, mode)
		if match.MatchScore == 0 {
			continue
		}
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	return matches
}

// evaluation accumulates factor contributions in evaluation order
type evaluation struct {
	score        float64
	reasons      []string
	improvements []string
	ineligible   bool
}

func (e *evaluation) add(points float64, reason string) {
	e.score += points
	e.reasons = append(e.reasons, reason)
}

func (e *evaluation) suggest(improvement string) {
	e.improvements = append(e.improvements, improvement)
}

func (m *Matcher) evaluate(methodology Methodology, project ProjectDescriptor, mode Mode) MethodologyMatch {
	eval := &evaluation{improvements: []string{}}

	scoreProjectType(eval, methodology, project)
	scoreCountry(eval, methodology, project)
	scoreScale(eval, methodology, project)

	if mode == ModePrecise {
		if strings.TrimSpace(project.Technology) != "" {
			scoreTechnology(eval, methodology, project)
		}
		m.scoreRequirements(eval, methodology, project)
	}

	excluded := m.applyExclusions(eval, methodology, project)

	score := clampScore(eval.score)
	match := MethodologyMatch{
		MethodologyID: methodology.ID,
		Name:          methodology.Name,
		Standard:      methodology.Standard,
		Eligibility:   !excluded && !eval.ineligible && score >= EligibilityThreshold,
		Reasoning:     strings.TrimSpace(strings.Join(eval.reasons, " ")),
		Improvements:  eval.improvements,
		MatchScore:    score,
		Requirements:  orEmpty(methodology.Requirements),
		Exclusions:    orEmpty(methodology.Exclusions),
	}

	m.logger.Debug("Methodology evaluated",
		zap.String("methodology_id", methodology.ID),
		zap.String("mode", string(mode)),
		zap.Float64("score", match.MatchScore),
		zap.Bool("eligible", match.Eligibility),
		zap.Bool("excluded", excluded))

	return match
}

func scoreProjectType(eval *evaluation, methodology Methodology, project ProjectDescriptor) {
	if containsValue(methodology.ProjectTypes, project.ProjectType) {
		eval.add(projectTypeMatchPoints,
			fmt.Sprintf("Project type %s is covered by this methodology.", label(project.ProjectType)))
		return
	}
	eval.add(projectTypeMismatchPoints,
		fmt.Sprintf("Project type %s is not listed for this methodology; consider whether a different project type better describes the activity.", label(project.ProjectType)))
}

func scoreCountry(eval *evaluation, methodology Methodology, project ProjectDescriptor) {
	if containsValue(methodology.Countries, project.Country) {
		eval.add(countryMatchPoints,
			fmt.Sprintf("Country %s is eligible under this methodology.", label(project.Country)))
		return
	}
	eval.ineligible = true
	eval.add(countryMismatchPenalty,
		fmt.Sprintf("Country %s is not eligible under this methodology.", label(project.Country)))
}

func scoreScale(eval *evaluation, methodology Methodology, project ProjectDescriptor) {
	area := project.Area()
	bounded := methodology.MaxScale > 0

	switch {
	case area < methodology.MinScale:
		partial := math.Min(scalePartialMaxPoints, scalePartialMaxPoints*area/methodology.MinScale)
		eval.ineligible = true
		eval.add(partial, fmt.Sprintf("Project scale of %s hectares is below the %s hectare minimum.",
			formatNumber(area), formatNumber(methodology.MinScale)))
		eval.suggest(fmt.Sprintf("Increase project scale to at least %s hectares", formatNumber(methodology.MinScale)))
	case bounded && area > methodology.MaxScale:
		eval.add(scaleAbovePoints, fmt.Sprintf("Project scale of %s hectares exceeds the %s hectare maximum.",
			formatNumber(area), formatNumber(methodology.MaxScale)))
		eval.suggest(fmt.Sprintf("Consider splitting the project into units of at most %s hectares", formatNumber(methodology.MaxScale)))
	default:
		eval.add(scaleWithinPoints, fmt.Sprintf("Project scale of %s hectares is within the accepted range.", formatNumber(area)))
	}
}

func scoreTechnology(eval *evaluation, methodology Methodology, project ProjectDescriptor) {
	technology := strings.ToLower(project.Technology)
	for _, keyword := range methodology.Technologies {
		kw := normalize(keyword)
		if kw != "" && strings.Contains(technology, kw) {
			eval.add(technologyMatchPoints, "Technology aligns with this methodology.")
			return
		}
	}
	eval.add(technologyMismatchPoints, "Technology may not align with this methodology.")
	eval.suggest("Review technology compatibility with the methodology's eligible technologies")
}

func (m *Matcher) scoreRequirements(eval *evaluation, methodology Methodology, project ProjectDescriptor) {
	var missing []string
	for _, requirement := range methodology.Requirements {
		if !RequirementSatisfied(m.requirementRules, requirement, project) {
			missing = append(missing, requirement)
		}
	}

	if len(missing) == 0 {
		eval.add(requirementsPoints, "All listed requirements appear to be satisfied.")
		return
	}

	points := math.Max(0, requirementsPoints-missingRequirementPenalty*float64(len(missing)))
	eval.add(points, fmt.Sprintf("%d of %d requirements are not yet evidenced.", len(missing), len(methodology.Requirements)))
	for _, requirement := range missing {
		eval.suggest("Address: " + requirement)
	}
}

// applyExclusions runs last and overrides every earlier contribution
func (m *Matcher) applyExclusions(eval *evaluation, methodology Methodology, project ProjectDescriptor) bool {
	var triggered []string
	for _, exclusion := range methodology.Exclusions {
		if ExclusionFires(m.exclusionRules, exclusion, project) {
			triggered = append(triggered, exclusion)
		}
	}
	if len(triggered) == 0 {
		return false
	}

	eval.score = 0
	eval.ineligible = true
	eval.reasons = append(eval.reasons,
		fmt.Sprintf("Project triggers exclusion conditions: %s.", strings.Join(triggered, "; ")))
	return true
}

func clampScore(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

func containsValue(values []string, value string) bool {
	target := normalize(value)
	if target == "" {
		return false
	}
	for _, v := range values {
		if normalize(v) == target {
			return true
		}
	}
	return false
}

func label(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(not specified)"
	}
	return strconv.Quote(strings.TrimSpace(value))
}

// formatNumber prints the shortest decimal form: 100, 1.5, 0.25
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return cloneStrings(values)
}
