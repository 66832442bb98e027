package methodology

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

const noCompatibleReasoning = "No compatible methodologies found for this standard"

// AssessFeasibility scores the project in precise mode and rolls the ranked
// matches up per standard. The result is keyed by Standard.Key() and carries
// an additional OverallKey entry summarising every standard.
func (m *Matcher) AssessFeasibility(project ProjectDescriptor) map[string]FeasibilityResult {
	matches := m.rank(project, ModePrecise)
	standards := Standards()
	results := make(map[string]FeasibilityResult, len(standards)+1)

	var (
		eligibleStandards int
		eligibleScoreSum  int
		allEligible       = []string{}
	)

	for _, standard := range standards {
		result := aggregateStandard(standard, filterByStandard(matches, standard))
		results[standard.Key()] = result

		if result.Eligible {
			eligibleStandards++
			eligibleScoreSum += result.Score
			allEligible = append(allEligible, result.EligibleMethodologies...)
		}
	}

	overall := FeasibilityResult{
		Standard:              OverallKey,
		Eligible:              eligibleStandards > 0,
		Reasoning:             fmt.Sprintf("%d of %d standards have eligible methodologies", eligibleStandards, len(standards)),
		Improvements:          []string{},
		Requirements:          []string{},
		Exclusions:            []string{},
		EligibleMethodologies: allEligible,
	}
	if eligibleStandards > 0 {
		overall.Score = roundScore(float64(eligibleScoreSum) / float64(eligibleStandards))
	}
	if len(matches) > 0 {
		overall.BestMethodologyID = matches[0].MethodologyID
	}
	results[OverallKey] = overall

	m.logger.Debug("Feasibility assessed",
		zap.Int("matches", len(matches)),
		zap.Int("eligible_standards", eligibleStandards),
		zap.Int("overall_score", overall.Score))

	return results
}

// aggregateStandard expects matches already filtered to standard and sorted
// by descending score.
func aggregateStandard(standard Standard, matches []MethodologyMatch) FeasibilityResult {
	if len(matches) == 0 {
		return FeasibilityResult{
			Standard:              string(standard),
			Reasoning:             noCompatibleReasoning,
			Improvements:          []string{},
			Requirements:          []string{},
			Exclusions:            []string{},
			EligibleMethodologies: []string{},
		}
	}

	top := matches[0]
	result := FeasibilityResult{
		Standard:              string(standard),
		Improvements:          cloneStrings(top.Improvements),
		Requirements:          cloneStrings(top.Requirements),
		Exclusions:            cloneStrings(top.Exclusions),
		BestMethodologyID:     top.MethodologyID,
		EligibleMethodologies: []string{},
	}

	var sum float64
	for _, match := range matches {
		if match.Eligibility {
			sum += match.MatchScore
			result.EligibleMethodologies = append(result.EligibleMethodologies, match.MethodologyID)
		}
	}

	if n := len(result.EligibleMethodologies); n > 0 {
		result.Eligible = true
		result.Score = roundScore(sum / float64(n))
		result.Reasoning = fmt.Sprintf("%d eligible methodology(ies) found", n)
		return result
	}

	result.Score = roundScore(top.MatchScore)
	result.Reasoning = top.Reasoning
	return result
}

func filterByStandard(matches []MethodologyMatch, standard Standard) []MethodologyMatch {
	var out []MethodologyMatch
	for _, match := range matches {
		if match.Standard == standard {
			out = append(out, match)
		}
	}
	return out
}

func roundScore(score float64) int {
	return int(math.Round(clampScore(score)))
}
