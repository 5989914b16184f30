package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-engine/internal/config"
	"alfredoptarigan/ats-engine/internal/models"
	"alfredoptarigan/ats-engine/internal/repositories"
)

type fakeGemini struct {
	response string
	err      error
	calls    int
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return make([]float32, 768), nil
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxAttempts int) (string, error) {
	f.calls++
	return f.response, f.err
}

type fakeRetrieval struct{}

func (f *fakeRetrieval) IndexResume(ctx context.Context, jobID, candidateID, resumeText string) (int, error) {
	return 0, nil
}

func (f *fakeRetrieval) CandidateContext(ctx context.Context, jobID, candidateID, queryText string) string {
	return ""
}

func (f *fakeRetrieval) RemoveJob(ctx context.Context, jobID string)                    {}
func (f *fakeRetrieval) RemoveCandidate(ctx context.Context, jobID, candidateID string) {}

type evaluatorFixture struct {
	evaluator   EvaluatorService
	gemini      *fakeGemini
	resultCache repositories.ResultCache
}

func newEvaluatorFixture(t *testing.T, gemini *fakeGemini) *evaluatorFixture {
	t.Helper()

	jobRepo := repositories.NewMemoryJobRepository()
	candRepo := repositories.NewMemoryCandidateRepository()
	resultCache := repositories.NewResultCache()

	three := 3
	require.NoError(t, jobRepo.Upsert(&models.JobDescription{
		ID:                 "JD-1",
		Title:              "Backend Engineer",
		Description:        "Build and run backend services.",
		MandatorySkills:    []string{"Python", "FastAPI", "AWS"},
		MinExperienceYears: &three,
	}))

	five := 5
	require.NoError(t, candRepo.Upsert(&models.CandidateProfile{
		CandidateID:     "CAND-1",
		JobID:           "JD-1",
		Name:            "Alex Morgan",
		Skills:          []string{"Python", "Docker"},
		ExperienceYears: &three,
	}))
	require.NoError(t, candRepo.Upsert(&models.CandidateProfile{
		CandidateID:     "CAND-2",
		JobID:           "JD-1",
		Name:            "Blake Rivera",
		Skills:          []string{"Python", "FastAPI", "AWS"},
		ExperienceYears: &five,
	}))

	evaluator := NewEvaluatorService(
		jobRepo,
		candRepo,
		resultCache,
		NewSkillMatcher(),
		NewScoreCalculator(defaultScoringConfig()),
		&fakeRetrieval{},
		gemini,
		NewPromptBuilder(),
		config.WorkerConfig{Concurrency: 2, RetryMaxAttempts: 2},
		time.Second,
	)

	return &evaluatorFixture{
		evaluator:   evaluator,
		gemini:      gemini,
		resultCache: resultCache,
	}
}

const wellFormedEvaluation = "```json\n" + `{
  "strengths": ["Solid Python background"],
  "weaknesses": ["No cloud exposure"],
  "summary": "A capable backend developer.",
  "recommendation": "Strong Fit",
  "confidence_note": "Resume context was complete."
}` + "\n```"

func TestEvaluateOneUsesModelQualitativeFields(t *testing.T) {
	f := newEvaluatorFixture(t, &fakeGemini{response: wellFormedEvaluation})

	result, err := f.evaluator.EvaluateOne(context.Background(), "JD-1", "CAND-1")
	require.NoError(t, err)

	assert.False(t, result.Degraded)
	assert.Equal(t, []string{"Solid Python background"}, result.Strengths)
	assert.Equal(t, "A capable backend developer.", result.Summary)
	assert.Equal(t, models.StrongFit, result.Recommendation)
	assert.Equal(t, "Resume context was complete.", result.ConfidenceNote)

	// The skill sets stay deterministic regardless of the model output.
	assert.Equal(t, []string{"Python"}, result.MatchedSkills)
	assert.Equal(t, []string{"FastAPI", "AWS"}, result.MissingSkills)
	assert.Equal(t, 33, result.Scores.SkillsScore)
	assert.Equal(t, 67, result.Scores.FinalScore)
}

func TestEvaluateOneCachesResult(t *testing.T) {
	f := newEvaluatorFixture(t, &fakeGemini{response: wellFormedEvaluation})

	_, err := f.evaluator.EvaluateOne(context.Background(), "JD-1", "CAND-1")
	require.NoError(t, err)

	cached, err := f.resultCache.Get("JD-1", "CAND-1")
	require.NoError(t, err)
	assert.Equal(t, "CAND-1", cached.CandidateID)
}

func TestEvaluateOneDegradesWhenModelUnavailable(t *testing.T) {
	f := newEvaluatorFixture(t, &fakeGemini{err: errors.New("deadline exceeded")})

	result, err := f.evaluator.EvaluateOne(context.Background(), "JD-1", "CAND-1")
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	assert.Contains(t, result.ConfidenceNote, "unavailable")
	// skills 33, experience 100, education 100 -> 67 -> Partial Fit
	assert.Equal(t, 67, result.Scores.FinalScore)
	assert.Equal(t, models.PartialFit, result.Recommendation)
	assert.NotEmpty(t, result.Summary)
}

func TestEvaluateOneDegradesOnUnreadableResponse(t *testing.T) {
	f := newEvaluatorFixture(t, &fakeGemini{response: "I cannot answer that."})

	result, err := f.evaluator.EvaluateOne(context.Background(), "JD-1", "CAND-1")
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	assert.Equal(t, models.PartialFit, result.Recommendation)
}

func TestEvaluateOneRecoversLabeledText(t *testing.T) {
	response := "Summary: Excellent backend engineer.\nRecommendation: Strong Fit"
	f := newEvaluatorFixture(t, &fakeGemini{response: response})

	result, err := f.evaluator.EvaluateOne(context.Background(), "JD-1", "CAND-1")
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	assert.Equal(t, "Excellent backend engineer.", result.Summary)
	assert.Equal(t, models.StrongFit, result.Recommendation)
}

func TestEvaluateOneFallsBackToThresholdRecommendation(t *testing.T) {
	response := `{"summary": "Fine.", "recommendation": "Hire immediately"}`
	f := newEvaluatorFixture(t, &fakeGemini{response: response})

	result, err := f.evaluator.EvaluateOne(context.Background(), "JD-1", "CAND-1")
	require.NoError(t, err)

	assert.False(t, result.Degraded)
	assert.Equal(t, models.PartialFit, result.Recommendation)
}

func TestEvaluateAllRanksByFinalScore(t *testing.T) {
	f := newEvaluatorFixture(t, &fakeGemini{response: wellFormedEvaluation})

	response, err := f.evaluator.EvaluateAll(context.Background(), "JD-1", nil)
	require.NoError(t, err)

	assert.Equal(t, "JD-1", response.JobID)
	assert.Equal(t, 2, response.TotalCandidates)
	require.Len(t, response.Candidates, 2)
	assert.Equal(t, "CAND-2", response.Candidates[0].CandidateID)
	assert.Equal(t, 100, response.Candidates[0].Scores.FinalScore)
	assert.Equal(t, "CAND-1", response.Candidates[1].CandidateID)
}

func TestEvaluateAllUnknownJob(t *testing.T) {
	f := newEvaluatorFixture(t, &fakeGemini{response: wellFormedEvaluation})

	_, err := f.evaluator.EvaluateAll(context.Background(), "JD-missing", nil)

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestEvaluateAllUnknownCandidate(t *testing.T) {
	f := newEvaluatorFixture(t, &fakeGemini{response: wellFormedEvaluation})

	_, err := f.evaluator.EvaluateAll(context.Background(), "JD-1", []string{"CAND-1", "CAND-missing"})

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCandidateDetail(t *testing.T) {
	f := newEvaluatorFixture(t, &fakeGemini{response: wellFormedEvaluation})

	detail, err := f.evaluator.CandidateDetail("JD-1", "CAND-1")
	require.NoError(t, err)

	assert.Equal(t, "Alex Morgan", detail.Name)
	assert.Equal(t, []string{"Python"}, detail.MatchedSkills)
	assert.Equal(t, []string{"FastAPI", "AWS"}, detail.MissingSkills)
	assert.Equal(t, 33, detail.MatchPercentage)
	assert.Zero(t, f.gemini.calls)
}
