package services

import (
	"math"
	"strings"
)

// SkillMatchResult splits a job's requirements against a candidate's
// skills. Matched and Missing partition the mandatory set exactly;
// optional-skill matches are tracked separately and never affect the
// percentage.
type SkillMatchResult struct {
	Matched         []string `json:"matched_skills"`
	MatchedOptional []string `json:"matched_optional_skills"`
	Missing         []string `json:"missing_skills"`
	MatchPercentage int      `json:"match_percentage"`
}

type SkillMatcher interface {
	Match(candidateSkills, mandatorySkills, optionalSkills []string) SkillMatchResult
}

type skillMatcher struct{}

func NewSkillMatcher() SkillMatcher {
	return &skillMatcher{}
}

// Match implements SkillMatcher. Skills compare equal after case folding,
// punctuation/whitespace folding and synonym normalization; a job skill
// also counts as matched when it appears as a substring of a candidate
// skill or vice versa, which covers multi-word variants like "REST APIs"
// against "REST API".
func (m *skillMatcher) Match(candidateSkills, mandatorySkills, optionalSkills []string) SkillMatchResult {
	folded := make([]string, 0, len(candidateSkills))
	for _, skill := range candidateSkills {
		if f := foldSkill(NormalizeSkill(skill)); f != "" {
			folded = append(folded, f)
		}
	}

	result := SkillMatchResult{
		Matched:         []string{},
		MatchedOptional: []string{},
		Missing:         []string{},
	}

	matchedMandatory := 0
	for _, jobSkill := range mandatorySkills {
		if skillPresent(folded, jobSkill) {
			result.Matched = append(result.Matched, jobSkill)
			matchedMandatory++
		} else {
			result.Missing = append(result.Missing, jobSkill)
		}
	}

	for _, jobSkill := range optionalSkills {
		if skillPresent(folded, jobSkill) {
			result.MatchedOptional = append(result.MatchedOptional, jobSkill)
		}
	}

	if len(mandatorySkills) == 0 {
		// No requirement means full credit.
		result.MatchPercentage = 100
	} else {
		pct := float64(matchedMandatory) / float64(len(mandatorySkills)) * 100
		result.MatchPercentage = int(math.Round(pct))
	}

	return result
}

func skillPresent(foldedCandidateSkills []string, jobSkill string) bool {
	jobFolded := foldSkill(NormalizeSkill(jobSkill))
	if jobFolded == "" {
		return false
	}
	for _, candidate := range foldedCandidateSkills {
		if candidate == jobFolded ||
			strings.Contains(candidate, jobFolded) ||
			strings.Contains(jobFolded, candidate) {
			return true
		}
	}
	return false
}
