package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/ats-engine/internal/config"
	"alfredoptarigan/ats-engine/internal/models"
)

func defaultScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		SkillsWeight:        0.5,
		ExperienceWeight:    0.3,
		EducationWeight:     0.2,
		StrongFitThreshold:  80,
		PartialFitThreshold: 55,
	}
}

func intPtr(v int) *int {
	return &v
}

func TestScoreIsDeterministic(t *testing.T) {
	scorer := NewScoreCalculator(defaultScoringConfig())
	profile := &models.CandidateProfile{
		ExperienceYears: intPtr(3),
		Education:       []string{"B.Sc. Computer Science"},
	}
	job := &models.JobDescription{
		MinExperienceYears:    intPtr(3),
		EducationRequirements: "Bachelor's degree in Computer Science",
	}
	match := SkillMatchResult{MatchPercentage: 33}

	first := scorer.Score(profile, job, match)
	second := scorer.Score(profile, job, match)

	assert.Equal(t, first, second)
}

func TestScoreWeightedComposite(t *testing.T) {
	scorer := NewScoreCalculator(defaultScoringConfig())
	profile := &models.CandidateProfile{
		ExperienceYears: intPtr(3),
	}
	job := &models.JobDescription{
		MinExperienceYears: intPtr(3),
	}
	match := SkillMatchResult{MatchPercentage: 33}

	breakdown := scorer.Score(profile, job, match)

	assert.Equal(t, 33, breakdown.SkillsScore)
	assert.Equal(t, 100, breakdown.ExperienceScore)
	assert.Equal(t, 100, breakdown.EducationScore)
	// 0.5*33 + 0.3*100 + 0.2*100 = 66.5
	assert.Equal(t, 67, breakdown.FinalScore)
}

func TestExperienceScoreNoRequirement(t *testing.T) {
	scorer := NewScoreCalculator(defaultScoringConfig())

	breakdown := scorer.Score(&models.CandidateProfile{}, &models.JobDescription{}, SkillMatchResult{})

	assert.Equal(t, 100, breakdown.ExperienceScore)
}

func TestExperienceScoreUnknownCandidateExperience(t *testing.T) {
	scorer := NewScoreCalculator(defaultScoringConfig())
	job := &models.JobDescription{MinExperienceYears: intPtr(5)}

	breakdown := scorer.Score(&models.CandidateProfile{}, job, SkillMatchResult{})

	assert.Equal(t, 0, breakdown.ExperienceScore)
}

func TestExperienceScoreProportional(t *testing.T) {
	scorer := NewScoreCalculator(defaultScoringConfig())
	job := &models.JobDescription{MinExperienceYears: intPtr(4)}

	half := scorer.Score(&models.CandidateProfile{ExperienceYears: intPtr(2)}, job, SkillMatchResult{})
	over := scorer.Score(&models.CandidateProfile{ExperienceYears: intPtr(10)}, job, SkillMatchResult{})

	assert.Equal(t, 50, half.ExperienceScore)
	assert.Equal(t, 100, over.ExperienceScore)
}

func TestEducationScoreLevels(t *testing.T) {
	scorer := NewScoreCalculator(defaultScoringConfig())
	job := &models.JobDescription{
		EducationRequirements: "Bachelor's degree in Computer Science",
	}

	exact := scorer.Score(&models.CandidateProfile{
		Education: []string{"B.Sc. in Computer Science, State University"},
	}, job, SkillMatchResult{})
	partial := scorer.Score(&models.CandidateProfile{
		Education: []string{"Certificate in computer networking"},
	}, job, SkillMatchResult{})
	none := scorer.Score(&models.CandidateProfile{
		Education: []string{"High School"},
	}, job, SkillMatchResult{})
	missing := scorer.Score(&models.CandidateProfile{}, job, SkillMatchResult{})

	assert.Equal(t, 100, exact.EducationScore)
	assert.Equal(t, 60, partial.EducationScore)
	assert.Equal(t, 20, none.EducationScore)
	assert.Equal(t, 20, missing.EducationScore)
}

func TestEducationScoreNoRequirement(t *testing.T) {
	scorer := NewScoreCalculator(defaultScoringConfig())

	breakdown := scorer.Score(&models.CandidateProfile{}, &models.JobDescription{}, SkillMatchResult{})

	assert.Equal(t, 100, breakdown.EducationScore)
}

func TestScoresStayInRange(t *testing.T) {
	scorer := NewScoreCalculator(defaultScoringConfig())
	job := &models.JobDescription{
		MinExperienceYears:    intPtr(10),
		EducationRequirements: "PhD in Physics",
	}

	breakdown := scorer.Score(&models.CandidateProfile{}, job, SkillMatchResult{MatchPercentage: 100})

	for _, score := range []int{
		breakdown.SkillsScore,
		breakdown.ExperienceScore,
		breakdown.EducationScore,
		breakdown.FinalScore,
	} {
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestRecommendThresholds(t *testing.T) {
	scorer := NewScoreCalculator(defaultScoringConfig())

	assert.Equal(t, models.StrongFit, scorer.Recommend(80))
	assert.Equal(t, models.StrongFit, scorer.Recommend(100))
	assert.Equal(t, models.PartialFit, scorer.Recommend(79))
	assert.Equal(t, models.PartialFit, scorer.Recommend(55))
	assert.Equal(t, models.WeakFit, scorer.Recommend(54))
	assert.Equal(t, models.WeakFit, scorer.Recommend(0))
}

func TestInferRoleLevel(t *testing.T) {
	scorer := NewScoreCalculator(defaultScoringConfig())

	senior := scorer.InferRoleLevel(&models.JobDescription{
		Title:              "Senior Backend Engineer",
		MinExperienceYears: intPtr(6),
	})
	intern := scorer.InferRoleLevel(&models.JobDescription{
		Title: "Software Engineering Intern",
	})
	fallback := scorer.InferRoleLevel(&models.JobDescription{
		Title: "Software Engineer",
	})

	assert.Equal(t, models.LevelSenior, senior)
	assert.Equal(t, models.LevelIntern, intern)
	assert.Equal(t, models.LevelMid, fallback)
}
