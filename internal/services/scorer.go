package services

import (
	"math"
	"strings"

	"alfredoptarigan/ats-engine/internal/config"
	"alfredoptarigan/ats-engine/internal/models"
)

// ScoreCalculator computes the deterministic heuristic scores. For fixed
// inputs the output is identical on every call: no randomness, no clock.
type ScoreCalculator interface {
	Score(profile *models.CandidateProfile, job *models.JobDescription, match SkillMatchResult) models.ScoreBreakdown
	Recommend(finalScore int) models.Recommendation
	InferRoleLevel(job *models.JobDescription) models.RoleLevel
}

type scoreCalculator struct {
	cfg config.ScoringConfig
}

func NewScoreCalculator(cfg config.ScoringConfig) ScoreCalculator {
	return &scoreCalculator{cfg: cfg}
}

// Score implements ScoreCalculator.
func (s *scoreCalculator) Score(profile *models.CandidateProfile, job *models.JobDescription, match SkillMatchResult) models.ScoreBreakdown {
	breakdown := models.ScoreBreakdown{
		SkillsScore:     clampScore(match.MatchPercentage),
		ExperienceScore: experienceScore(profile, job),
		EducationScore:  educationScore(profile, job),
	}

	final := s.cfg.SkillsWeight*float64(breakdown.SkillsScore) +
		s.cfg.ExperienceWeight*float64(breakdown.ExperienceScore) +
		s.cfg.EducationWeight*float64(breakdown.EducationScore)
	breakdown.FinalScore = clampScore(int(math.Round(final)))

	return breakdown
}

// Recommend implements ScoreCalculator. This threshold rule is the
// deterministic authority whenever no well-formed model recommendation is
// available.
func (s *scoreCalculator) Recommend(finalScore int) models.Recommendation {
	switch {
	case finalScore >= s.cfg.StrongFitThreshold:
		return models.StrongFit
	case finalScore >= s.cfg.PartialFitThreshold:
		return models.PartialFit
	default:
		return models.WeakFit
	}
}

func experienceScore(profile *models.CandidateProfile, job *models.JobDescription) int {
	if job.MinExperienceYears == nil || *job.MinExperienceYears == 0 {
		return 100
	}
	// Unverifiable experience gets the conservative default.
	if profile.ExperienceYears == nil {
		return 0
	}
	ratio := float64(*profile.ExperienceYears) / float64(*job.MinExperienceYears)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	return clampScore(int(math.Round(ratio * 100)))
}

// degreeLevels groups equivalent degree spellings; an exact education match
// means the candidate holds a degree at a level the requirement names.
var degreeLevels = map[string][]string{
	"phd":       {"phd", "ph.d", "doctorate", "doctor of philosophy"},
	"masters":   {"master", "m.s", "ms ", "msc", "m.sc", "mba", "m.b.a", "mtech", "m.tech", "m.a"},
	"bachelors": {"bachelor", "b.s", "bs ", "bsc", "b.sc", "btech", "b.tech", "b.a", "ba "},
	"associate": {"associate", "a.s", "a.a"},
	"diploma":   {"diploma", "certificate", "certification"},
}

func educationScore(profile *models.CandidateProfile, job *models.JobDescription) int {
	requirement := strings.ToLower(strings.TrimSpace(job.EducationRequirements))
	if requirement == "" {
		return 100
	}

	education := strings.ToLower(strings.Join(profile.Education, "\n"))
	if education == "" {
		return 20
	}

	// Exact: requirement and candidate name the same degree level.
	for _, spellings := range degreeLevels {
		requirementHas := false
		educationHas := false
		for _, spelling := range spellings {
			if strings.Contains(requirement, spelling) {
				requirementHas = true
			}
			if strings.Contains(education, spelling) {
				educationHas = true
			}
		}
		if requirementHas && educationHas {
			return 100
		}
	}

	// Partial: related-field keyword overlap.
	for _, token := range strings.FieldsFunc(requirement, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) {
		if len(token) < 4 || educationStopwords[token] {
			continue
		}
		if strings.Contains(education, token) {
			return 60
		}
	}

	return 20
}

var educationStopwords = map[string]bool{
	"degree": true, "field": true, "related": true, "required": true,
	"preferred": true, "equivalent": true, "with": true, "from": true,
}

// roleLevelIndicators drives role-level inference from the JD text and
// minimum experience requirement.
var roleLevelIndicators = []struct {
	level    models.RoleLevel
	keywords []string
	minYears int
	maxYears int
}{
	{models.LevelIntern, []string{"intern", "internship", "trainee", "student"}, 0, 1},
	{models.LevelJunior, []string{"junior", "associate", "graduate", "entry level", "entry-level", "fresher"}, 0, 2},
	{models.LevelMid, []string{"mid-level", "mid level", "intermediate"}, 2, 5},
	{models.LevelSenior, []string{"senior", "sr.", "experienced", "expert"}, 5, 10},
	{models.LevelLead, []string{"lead", "principal", "staff", "architect", "manager", "head", "director"}, 8, 20},
}

// InferRoleLevel implements ScoreCalculator. Defaults to Mid when the JD
// gives no signal.
func (s *scoreCalculator) InferRoleLevel(job *models.JobDescription) models.RoleLevel {
	jdText := strings.ToLower(job.Title + " " + job.Description)

	best := models.LevelMid
	bestScore := 0
	for _, indicator := range roleLevelIndicators {
		score := 0
		for _, keyword := range indicator.keywords {
			if strings.Contains(jdText, keyword) {
				score += 2
			}
		}
		if job.MinExperienceYears != nil {
			years := *job.MinExperienceYears
			if years >= indicator.minYears && years <= indicator.maxYears {
				score += 3
			}
		}
		if score > bestScore {
			bestScore = score
			best = indicator.level
		}
	}

	return best
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
