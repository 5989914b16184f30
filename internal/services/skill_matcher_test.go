package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPartitionsMandatorySkills(t *testing.T) {
	matcher := NewSkillMatcher()

	result := matcher.Match(
		[]string{"Python", "Docker"},
		[]string{"Python", "FastAPI", "AWS"},
		nil,
	)

	assert.Equal(t, []string{"Python"}, result.Matched)
	assert.Equal(t, []string{"FastAPI", "AWS"}, result.Missing)
	assert.Equal(t, 33, result.MatchPercentage)
}

func TestMatchEmptyMandatoryMeansFullCredit(t *testing.T) {
	matcher := NewSkillMatcher()

	result := matcher.Match([]string{"Python"}, nil, []string{"Docker"})

	assert.Equal(t, 100, result.MatchPercentage)
	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Missing)
}

func TestMatchResolvesSynonyms(t *testing.T) {
	matcher := NewSkillMatcher()

	result := matcher.Match(
		[]string{"js", "k8s", "postgres"},
		[]string{"JavaScript", "Kubernetes", "PostgreSQL"},
		nil,
	)

	assert.Equal(t, []string{"JavaScript", "Kubernetes", "PostgreSQL"}, result.Matched)
	assert.Empty(t, result.Missing)
	assert.Equal(t, 100, result.MatchPercentage)
}

func TestMatchIsCaseAndPunctuationInsensitive(t *testing.T) {
	matcher := NewSkillMatcher()

	result := matcher.Match(
		[]string{"node js", "REST APIs"},
		[]string{"Node.js", "REST API"},
		nil,
	)

	assert.Equal(t, []string{"Node.js", "REST API"}, result.Matched)
	assert.Empty(t, result.Missing)
}

func TestMatchOptionalSkillsDoNotAffectPercentage(t *testing.T) {
	matcher := NewSkillMatcher()

	result := matcher.Match(
		[]string{"Python", "Terraform"},
		[]string{"Python", "Go"},
		[]string{"Terraform", "Ansible"},
	)

	assert.Equal(t, []string{"Terraform"}, result.MatchedOptional)
	assert.Equal(t, 50, result.MatchPercentage)
}

func TestMatchNoCandidateSkills(t *testing.T) {
	matcher := NewSkillMatcher()

	result := matcher.Match(nil, []string{"Python", "Go"}, nil)

	assert.Empty(t, result.Matched)
	assert.Equal(t, []string{"Python", "Go"}, result.Missing)
	assert.Equal(t, 0, result.MatchPercentage)
}
