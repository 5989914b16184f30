package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-engine/internal/models"
)

func TestParseEvaluationResponseStripsMarkdownFence(t *testing.T) {
	raw := "Here is my analysis:\n```json\n{\"summary\": \"Looks good.\", \"strengths\": [\"Python\"]}\n```"

	eval, err := parseEvaluationResponse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Looks good.", eval.Summary)
	assert.Equal(t, []string{"Python"}, eval.Strengths)
}

func TestParseEvaluationResponseRejectsMissingSummary(t *testing.T) {
	_, err := parseEvaluationResponse(`{"strengths": ["Python"]}`)
	assert.Error(t, err)
}

func TestParseEvaluationResponseRejectsNonJSON(t *testing.T) {
	_, err := parseEvaluationResponse("The candidate seems fine to me.")
	assert.Error(t, err)
}

func TestParseComparisonResponse(t *testing.T) {
	raw := `{"ranking": [{"candidate_id": "CAND-1", "match_score": 88}], "best_candidate": "A"}`

	comparison, err := parseComparisonResponse(raw)
	require.NoError(t, err)

	require.Len(t, comparison.Ranking, 1)
	assert.Equal(t, "CAND-1", comparison.Ranking[0].CandidateID)
	assert.Equal(t, float64(88), comparison.Ranking[0].MatchScore)
}

func TestParseComparisonResponseRejectsOutOfRangeScore(t *testing.T) {
	_, err := parseComparisonResponse(`{"ranking": [{"candidate_id": "CAND-1", "match_score": 140}]}`)
	assert.Error(t, err)
}

func TestExtractLabeledEvaluation(t *testing.T) {
	raw := `Strengths:
- Strong Python skills
- Ships reliably
Weaknesses:
- Little cloud experience
Summary: A dependable backend developer.
Recommendation: Partial Fit`

	eval, ok := extractLabeledEvaluation(raw)
	require.True(t, ok)

	assert.Equal(t, []string{"Strong Python skills", "Ships reliably"}, eval.Strengths)
	assert.Equal(t, []string{"Little cloud experience"}, eval.Weaknesses)
	assert.Equal(t, "A dependable backend developer.", eval.Summary)
	assert.Equal(t, "Partial Fit", eval.Recommendation)
}

func TestExtractLabeledEvaluationNothingUsable(t *testing.T) {
	_, ok := extractLabeledEvaluation("I am unable to evaluate this candidate.")
	assert.False(t, ok)
}

func TestNormalizeRecommendation(t *testing.T) {
	cases := []struct {
		raw  string
		want models.Recommendation
		ok   bool
	}{
		{"Strong Fit", models.StrongFit, true},
		{"strong fit", models.StrongFit, true},
		{"Partial Fit", models.PartialFit, true},
		{"Moderate Fit", models.PartialFit, true},
		{"Weak Fit", models.WeakFit, true},
		{"Hire immediately", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := normalizeRecommendation(tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}
