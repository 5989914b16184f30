package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `John Smith
john.smith@example.com
555-123-4567

SUMMARY
Backend engineer with 5 years of experience building APIs.

SKILLS
Python, Docker, PostgreSQL, REST API

EXPERIENCE
Acme Corp, Backend Engineer

EDUCATION
B.Sc. in Computer Science, State University`

func TestParseExtractsAllFields(t *testing.T) {
	parser := NewResumeParserService()

	profile := parser.Parse(sampleResume, "John Smith", nil)

	assert.Equal(t, "John Smith", profile.Name)
	assert.Equal(t, "john.smith@example.com", profile.Email)
	assert.Equal(t, "555-123-4567", profile.Phone)
	require.NotNil(t, profile.ExperienceYears)
	assert.Equal(t, 5, *profile.ExperienceYears)
	assert.ElementsMatch(t, []string{"Python", "Docker", "PostgreSQL", "REST API"}, profile.Skills)
	require.Len(t, profile.Education, 1)
	assert.Contains(t, profile.Education[0], "B.Sc. in Computer Science")
	assert.Contains(t, profile.ExperienceSummary, "5 years of experience")
	assert.Equal(t, sampleResume, profile.RawText)
}

func TestParseNeverFailsOnSparseText(t *testing.T) {
	parser := NewResumeParserService()

	profile := parser.Parse("Just a short note with nothing useful in it.", "Jane Doe", nil)

	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Empty(t, profile.Email)
	assert.Empty(t, profile.Phone)
	assert.Nil(t, profile.ExperienceYears)
	assert.Empty(t, profile.Skills)
	assert.Empty(t, profile.Education)
	assert.NotEmpty(t, profile.ExperienceSummary)
}

func TestParseTakesMaxExperienceMention(t *testing.T) {
	parser := NewResumeParserService()

	text := "3 years of experience with Go. Previously 7 years of experience in Java."
	profile := parser.Parse(text, "Sam Lee", nil)

	require.NotNil(t, profile.ExperienceYears)
	assert.Equal(t, 7, *profile.ExperienceYears)
}

func TestParseUsesJobVocabulary(t *testing.T) {
	parser := NewResumeParserService()

	text := "Built data pipelines on Snowflake and dbt for analytics teams."
	profile := parser.Parse(text, "Ana Cruz", []string{"Snowflake", "Airflow"})

	assert.Contains(t, profile.Skills, "Snowflake")
	assert.NotContains(t, profile.Skills, "Airflow")
}

func TestParseScopesMatchingToSkillsSection(t *testing.T) {
	parser := NewResumeParserService()

	text := `SKILLS
Python, SQL

EXPERIENCE
Deployed services with Docker on a daily basis.`

	profile := parser.Parse(text, "Lee Chen", nil)

	// A skills section confines matching to the section; mentions
	// elsewhere in the document do not count.
	assert.ElementsMatch(t, []string{"Python", "SQL"}, profile.Skills)
	assert.NotContains(t, profile.Skills, "Docker")
}

func TestParseMatchesWholeWordsOnly(t *testing.T) {
	parser := NewResumeParserService()

	// "PostgreSQL" must not register the standalone "SQL" skill.
	profile := parser.Parse("Worked with PostgreSQL daily.", "Kim Park", nil)

	assert.Contains(t, profile.Skills, "PostgreSQL")
	assert.NotContains(t, profile.Skills, "SQL")
}
