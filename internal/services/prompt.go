package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/ats-engine/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildEvaluationPrompt creates the prompt for a single-candidate
// evaluation. The heuristic scores are included so the model grounds its
// commentary in them instead of inventing its own numbers.
func (pb *PromptBuilder) BuildEvaluationPrompt(
	job *models.JobDescription,
	profile *models.CandidateProfile,
	match SkillMatchResult,
	scores models.ScoreBreakdown,
	retrievedContext string,
) string {
	if retrievedContext == "" {
		retrievedContext = "No additional context retrieved."
	}

	return fmt.Sprintf(`You are an AI-powered ATS evaluation engine. Evaluate the candidate strictly based on the provided resume data and job description.

RULES:
- Use ONLY the provided information
- Do NOT hallucinate or assume missing details
- Normalize skill synonyms (e.g., JS and JavaScript are the same skill)
- Be objective and unbiased
- Return ONLY valid JSON

JOB DESCRIPTION:
Title: %s
%s

MANDATORY SKILLS: %s
OPTIONAL SKILLS: %s

CANDIDATE PROFILE:
Name: %s
Skills: %s
Experience: %s
Education: %s

MATCHED SKILLS (computed): %s
MISSING SKILLS (computed): %s

HEURISTIC SCORES (computed, 0-100):
skills=%d experience=%d education=%d final=%d

RELEVANT RESUME EXCERPTS:
%s

Return your response in the following JSON format:
{
  "strengths": ["list of 2-4 key strengths with matched-skill commentary"],
  "weaknesses": ["list of 1-3 weaknesses or gaps"],
  "summary": "<narrative assessment, 3-5 sentences>",
  "recommendation": "<one of: Strong Fit, Partial Fit, Weak Fit>",
  "confidence_note": "<brief justification based on resume evidence>"
}

Return ONLY the JSON object, no other text.`,
		job.Title,
		job.Description,
		strings.Join(job.MandatorySkills, ", "),
		strings.Join(job.OptionalSkills, ", "),
		profile.Name,
		strings.Join(profile.Skills, ", "),
		profile.ExperienceSummary,
		strings.Join(profile.Education, "; "),
		strings.Join(match.Matched, ", "),
		strings.Join(match.Missing, ", "),
		scores.SkillsScore,
		scores.ExperienceScore,
		scores.EducationScore,
		scores.FinalScore,
		retrievedContext,
	)
}

// BuildComparisonPrompt creates the pooled prompt that asks the model to
// rank every supplied candidate for the same job.
func (pb *PromptBuilder) BuildComparisonPrompt(
	job *models.JobDescription,
	evaluations []models.EvaluationResult,
) string {
	var candidateBlocks []string
	for _, eval := range evaluations {
		candidateBlocks = append(candidateBlocks, fmt.Sprintf(
			"CANDIDATE %s (%s):\nFinal score: %d\nMatched skills: %s\nMissing skills: %s\nSummary: %s",
			eval.CandidateID,
			eval.CandidateName,
			eval.Scores.FinalScore,
			strings.Join(eval.MatchedSkills, ", "),
			strings.Join(eval.MissingSkills, ", "),
			eval.Summary,
		))
	}

	return fmt.Sprintf(`You are an expert technical hiring manager comparing candidates for the same role.

JOB DESCRIPTION:
Title: %s
%s

CANDIDATES:
%s

Rank ALL candidates from best to worst fit. Every candidate above must appear exactly once in the ranking.

Return your response in the following JSON format:
{
  "ranking": [
    {
      "candidate_id": "<id exactly as given above>",
      "candidate_name": "<name>",
      "match_score": <0-100>,
      "key_advantages": ["short bullet-style strings"],
      "key_gaps": ["short bullet-style strings"]
    }
  ],
  "best_candidate": "<candidate_name of ranking[0]>"
}

RULES:
- ranking must be sorted by match_score (highest first)
- match_score must be 0-100
- Do NOT repeat resume text
- Return ONLY the JSON object, no other text.`,
		job.Title,
		job.Description,
		strings.Join(candidateBlocks, "\n\n"),
	)
}
