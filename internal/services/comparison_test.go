package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-engine/internal/models"
	"alfredoptarigan/ats-engine/internal/repositories"
)

type comparisonFixture struct {
	comparison ComparisonService
	gemini     *fakeGemini
}

// newComparisonFixture backs the comparison with an evaluator whose model
// always fails, so the underlying evaluations are deterministic:
// CAND-1 scores 67 and CAND-2 scores 100.
func newComparisonFixture(t *testing.T, gemini *fakeGemini) *comparisonFixture {
	t.Helper()

	evalFixture := newEvaluatorFixture(t, &fakeGemini{err: errors.New("model down")})

	jobRepo := repositories.NewMemoryJobRepository()
	require.NoError(t, jobRepo.Upsert(&models.JobDescription{
		ID:              "JD-1",
		Title:           "Backend Engineer",
		MandatorySkills: []string{"Python", "FastAPI", "AWS"},
	}))

	comparison := NewComparisonService(
		jobRepo,
		evalFixture.resultCache,
		evalFixture.evaluator,
		gemini,
		NewPromptBuilder(),
		2,
		time.Second,
	)

	return &comparisonFixture{comparison: comparison, gemini: gemini}
}

const wellFormedComparison = `{
  "ranking": [
    {
      "candidate_id": "CAND-1",
      "candidate_name": "Alex Morgan",
      "match_score": 72,
      "key_advantages": ["Hands-on Python"],
      "key_gaps": ["No AWS"]
    },
    {
      "candidate_id": "CAND-2",
      "candidate_name": "Blake Rivera",
      "match_score": 95,
      "key_advantages": ["Full stack coverage"],
      "key_gaps": []
    }
  ],
  "best_candidate": "Alex Morgan"
}`

func TestCompareRequiresTwoCandidates(t *testing.T) {
	f := newComparisonFixture(t, &fakeGemini{})

	_, err := f.comparison.Compare(context.Background(), "JD-1", []string{"CAND-1"})

	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	assert.Zero(t, f.gemini.calls)
}

func TestCompareKeepsModelRanking(t *testing.T) {
	f := newComparisonFixture(t, &fakeGemini{response: wellFormedComparison})

	result, err := f.comparison.Compare(context.Background(), "JD-1", []string{"CAND-1", "CAND-2"})
	require.NoError(t, err)

	assert.False(t, result.Degraded)
	require.Len(t, result.Ranking, 2)
	assert.Equal(t, "CAND-1", result.Ranking[0].CandidateID)
	assert.Equal(t, 72, result.Ranking[0].MatchScore)
	assert.Equal(t, []string{"Hands-on Python"}, result.Ranking[0].KeyAdvantages)
	assert.Equal(t, "Alex Morgan", result.BestCandidate)
	assert.Equal(t, "CAND-1", result.BestCandidateID)
}

func TestCompareBestCandidateIsTopRankedEntry(t *testing.T) {
	// The model claims the second entry is best; the first ranking entry
	// stays authoritative.
	response := `{
	  "ranking": [
	    {"candidate_id": "CAND-2", "candidate_name": "Blake Rivera", "match_score": 95},
	    {"candidate_id": "CAND-1", "candidate_name": "Alex Morgan", "match_score": 72.9}
	  ],
	  "best_candidate": "Alex Morgan"
	}`
	f := newComparisonFixture(t, &fakeGemini{response: response})

	result, err := f.comparison.Compare(context.Background(), "JD-1", []string{"CAND-1", "CAND-2"})
	require.NoError(t, err)

	assert.False(t, result.Degraded)
	require.Len(t, result.Ranking, 2)
	assert.Equal(t, "Blake Rivera", result.BestCandidate)
	assert.Equal(t, "CAND-2", result.BestCandidateID)
	// Fractional model scores round rather than truncate.
	assert.Equal(t, 73, result.Ranking[1].MatchScore)
}

func TestCompareFallsBackWhenModelOmitsCandidates(t *testing.T) {
	partial := `{
	  "ranking": [
	    {"candidate_id": "CAND-1", "match_score": 90}
	  ],
	  "best_candidate": "Alex Morgan"
	}`
	f := newComparisonFixture(t, &fakeGemini{response: partial})

	result, err := f.comparison.Compare(context.Background(), "JD-1", []string{"CAND-1", "CAND-2"})
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	require.Len(t, result.Ranking, 2)
	assert.Equal(t, "CAND-2", result.Ranking[0].CandidateID)
	assert.Equal(t, 100, result.Ranking[0].MatchScore)
	assert.Equal(t, "Blake Rivera", result.BestCandidate)
}

func TestCompareFallsBackWhenModelInventsCandidate(t *testing.T) {
	invented := `{
	  "ranking": [
	    {"candidate_id": "CAND-1", "match_score": 90},
	    {"candidate_id": "CAND-99", "match_score": 80}
	  ]
	}`
	f := newComparisonFixture(t, &fakeGemini{response: invented})

	result, err := f.comparison.Compare(context.Background(), "JD-1", []string{"CAND-1", "CAND-2"})
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	require.Len(t, result.Ranking, 2)
	assert.Equal(t, "CAND-2", result.Ranking[0].CandidateID)
	assert.Equal(t, "CAND-1", result.Ranking[1].CandidateID)
}

func TestCompareFallsBackWhenModelUnavailable(t *testing.T) {
	f := newComparisonFixture(t, &fakeGemini{err: errors.New("deadline exceeded")})

	result, err := f.comparison.Compare(context.Background(), "JD-1", []string{"CAND-1", "CAND-2"})
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	require.Len(t, result.Ranking, 2)
	assert.Equal(t, "CAND-2", result.Ranking[0].CandidateID)
	assert.Equal(t, []string{"Python", "FastAPI", "AWS"}, result.Ranking[0].KeyAdvantages)
	assert.Equal(t, []string{"FastAPI", "AWS"}, result.Ranking[1].KeyGaps)
}

func TestCompareUnknownJob(t *testing.T) {
	f := newComparisonFixture(t, &fakeGemini{})

	_, err := f.comparison.Compare(context.Background(), "JD-missing", []string{"CAND-1", "CAND-2"})

	assert.ErrorIs(t, err, models.ErrNotFound)
}
