package methodology

import "strings"

// RequirementRule marks a free-text requirement as satisfied when its text
// contains any of Keywords and Satisfied reports true for the project.
type RequirementRule struct {
	Name      string
	Keywords  []string
	Satisfied func(p ProjectDescriptor) bool
}

// ExclusionRule fires a free-text exclusion when its text contains any of
// Keywords and Fires reports true for the project.
type ExclusionRule struct {
	Name     string
	Keywords []string
	Fires    func(p ProjectDescriptor) bool
}

// DefaultRequirementRules returns the built-in requirement rules. A
// requirement naming several concerns must satisfy every matching rule.
func DefaultRequirementRules() []RequirementRule {
	return []RequirementRule{
		{
			Name:     "ownership",
			Keywords: []string{"owner", "title", "tenure"},
			Satisfied: func(p ProjectDescriptor) bool {
				return strings.TrimSpace(p.Developer) != "" || isTrue(p.LandOwnership)
			},
		},
		{
			Name:      "monitoring",
			Keywords:  []string{"monitoring"},
			Satisfied: func(p ProjectDescriptor) bool { return isTrue(p.MonitoringPlan) },
		},
		{
			Name:      "baseline",
			Keywords:  []string{"baseline"},
			Satisfied: func(p ProjectDescriptor) bool { return p.Area() > 0 },
		},
		{
			Name:      "additionality",
			Keywords:  []string{"additionality"},
			Satisfied: func(p ProjectDescriptor) bool { return isTrue(p.AdditionalityEvidence) },
		},
		{
			Name:      "stakeholder",
			Keywords:  []string{"stakeholder", "consultation", "community"},
			Satisfied: func(p ProjectDescriptor) bool { return isTrue(p.StakeholderConsultation) },
		},
		{
			Name:     "crediting-period",
			Keywords: []string{"crediting period", "permanence"},
			Satisfied: func(p ProjectDescriptor) bool {
				return p.CreditingPeriodYears != nil && *p.CreditingPeriodYears > 0
			},
		},
		{
			Name:      "technology",
			Keywords:  []string{"technology", "equipment"},
			Satisfied: func(p ProjectDescriptor) bool { return strings.TrimSpace(p.Technology) != "" },
		},
	}
}

// DefaultExclusionRules returns the built-in exclusion rules. An exclusion
// naming several conditions fires when any matching rule fires.
func DefaultExclusionRules() []ExclusionRule {
	return []ExclusionRule{
		{
			Name:     "protected-area",
			Keywords: []string{"protected"},
			Fires:    landUseIs("protected"),
		},
		{
			Name:     "primary-forest",
			Keywords: []string{"primary"},
			Fires:    landUseIs("primary-forest"),
		},
		{
			Name:     "peatland",
			Keywords: []string{"peat"},
			Fires:    landUseIs("peatland"),
		},
		{
			Name:     "wetland",
			Keywords: []string{"wetland"},
			Fires:    landUseIs("wetland"),
		},
		{
			Name:     "recent-clearing",
			Keywords: []string{"cleared", "deforest"},
			Fires:    func(p ProjectDescriptor) bool { return isTrue(p.RecentClearing) },
		},
		{
			Name:     "regulatory-mandate",
			Keywords: []string{"mandated", "legally required", "regulation"},
			Fires:    func(p ProjectDescriptor) bool { return isTrue(p.RegulatoryMandate) },
		},
	}
}

// RequirementSatisfied applies rules to one requirement. It is satisfied
// only when at least one rule matches the text and every matching rule is
// satisfied.
func RequirementSatisfied(rules []RequirementRule, requirement string, p ProjectDescriptor) bool {
	text := strings.ToLower(requirement)
	matched := false
	for _, rule := range rules {
		if !containsAny(text, rule.Keywords) {
			continue
		}
		if !rule.Satisfied(p) {
			return false
		}
		matched = true
	}
	return matched
}

// ExclusionFires applies rules to one exclusion. It fires when any rule
// matching the text fires. Text that matches no rule never fires.
func ExclusionFires(rules []ExclusionRule, exclusion string, p ProjectDescriptor) bool {
	text := strings.ToLower(exclusion)
	for _, rule := range rules {
		if containsAny(text, rule.Keywords) && rule.Fires(p) {
			return true
		}
	}
	return false
}

func landUseIs(value string) func(p ProjectDescriptor) bool {
	return func(p ProjectDescriptor) bool {
		return normalize(p.LandUse) == value
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
