package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"alfredoptarigan/ats-engine/internal/models"
	"alfredoptarigan/ats-engine/internal/repositories"
)

// ComparisonService ranks evaluated candidates against each other for one
// job. The model proposes the ranking; if it omits, duplicates or invents
// candidates the service falls back to a deterministic ranking so the
// output always covers exactly the requested set.
type ComparisonService interface {
	Compare(ctx context.Context, jobID string, candidateIDs []string) (*models.ComparisonResult, error)
}

type comparisonService struct {
	jobRepo     repositories.JobRepository
	resultCache repositories.ResultCache
	evaluator   EvaluatorService
	gemini      GeminiService
	prompts     *PromptBuilder
	retryMax    int
	timeout     time.Duration
}

func NewComparisonService(
	jobRepo repositories.JobRepository,
	resultCache repositories.ResultCache,
	evaluator EvaluatorService,
	gemini GeminiService,
	prompts *PromptBuilder,
	retryMax int,
	timeout time.Duration,
) ComparisonService {
	return &comparisonService{
		jobRepo:     jobRepo,
		resultCache: resultCache,
		evaluator:   evaluator,
		gemini:      gemini,
		prompts:     prompts,
		retryMax:    retryMax,
		timeout:     timeout,
	}
}

// Compare implements ComparisonService. Candidates without a cached
// evaluation are evaluated first, so comparison never ranks stale air.
func (c *comparisonService) Compare(ctx context.Context, jobID string, candidateIDs []string) (*models.ComparisonResult, error) {
	if len(candidateIDs) < 2 {
		return nil, fmt.Errorf("comparison requires at least two candidates, got %d: %w", len(candidateIDs), models.ErrInvalidArgument)
	}

	job, err := c.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	evaluations := make([]models.EvaluationResult, 0, len(candidateIDs))
	for _, candidateID := range candidateIDs {
		eval, err := c.resultCache.Get(jobID, candidateID)
		if err != nil {
			eval, err = c.evaluator.EvaluateOne(ctx, jobID, candidateID)
			if err != nil {
				return nil, err
			}
		}
		evaluations = append(evaluations, *eval)
	}

	prompt := c.prompts.BuildComparisonPrompt(job, evaluations)

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	raw, err := c.gemini.GenerateTextWithRetry(callCtx, prompt, 0.3, c.retryMax)
	cancel()
	if err != nil {
		log.Printf("⚠️  AI comparison failed for job %s: %v\n", jobID, err)
		return c.deterministicComparison(job.ID, evaluations), nil
	}

	comparison, parseErr := parseComparisonResponse(raw)
	if parseErr != nil {
		log.Printf("⚠️  Malformed AI comparison for job %s: %v\n", jobID, parseErr)
		return c.deterministicComparison(job.ID, evaluations), nil
	}

	ranking, ok := c.buildRanking(comparison, evaluations)
	if !ok {
		log.Printf("⚠️  AI comparison for job %s did not cover the candidate set, using deterministic ranking\n", jobID)
		return c.deterministicComparison(job.ID, evaluations), nil
	}

	// The model's best_candidate field is advisory only; the first ranking
	// entry is authoritative.
	return &models.ComparisonResult{
		JobID:           job.ID,
		Ranking:         ranking,
		BestCandidate:   ranking[0].CandidateName,
		BestCandidateID: ranking[0].CandidateID,
		ComparedAt:      time.Now(),
	}, nil
}

// buildRanking validates that the model ranked exactly the evaluated set,
// with no omissions, duplicates or inventions. Names, advantages and gaps
// are backfilled from the evaluations when the model left them out.
func (c *comparisonService) buildRanking(comparison *llmComparison, evaluations []models.EvaluationResult) ([]models.RankingEntry, bool) {
	if len(comparison.Ranking) != len(evaluations) {
		return nil, false
	}

	byID := make(map[string]*models.EvaluationResult, len(evaluations))
	for i := range evaluations {
		byID[evaluations[i].CandidateID] = &evaluations[i]
	}

	seen := make(map[string]bool, len(evaluations))
	ranking := make([]models.RankingEntry, 0, len(comparison.Ranking))
	for _, entry := range comparison.Ranking {
		eval, known := byID[entry.CandidateID]
		if !known || seen[entry.CandidateID] {
			return nil, false
		}
		seen[entry.CandidateID] = true

		ranked := models.RankingEntry{
			CandidateID:   entry.CandidateID,
			CandidateName: entry.CandidateName,
			MatchScore:    clampScore(int(math.Round(entry.MatchScore))),
			KeyAdvantages: entry.KeyAdvantages,
			KeyGaps:       entry.KeyGaps,
		}
		if ranked.CandidateName == "" {
			ranked.CandidateName = eval.CandidateName
		}
		if len(ranked.KeyAdvantages) == 0 {
			ranked.KeyAdvantages = eval.MatchedSkills
		}
		if len(ranked.KeyGaps) == 0 {
			ranked.KeyGaps = eval.MissingSkills
		}
		ranking = append(ranking, ranked)
	}

	return ranking, true
}

// deterministicComparison ranks by final score descending with candidate
// ID as the tie break. Advantages and gaps come straight from the skill
// match.
func (c *comparisonService) deterministicComparison(jobID string, evaluations []models.EvaluationResult) *models.ComparisonResult {
	sorted := make([]models.EvaluationResult, len(evaluations))
	copy(sorted, evaluations)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Scores.FinalScore != sorted[j].Scores.FinalScore {
			return sorted[i].Scores.FinalScore > sorted[j].Scores.FinalScore
		}
		return sorted[i].CandidateID < sorted[j].CandidateID
	})

	ranking := make([]models.RankingEntry, 0, len(sorted))
	for _, eval := range sorted {
		ranking = append(ranking, models.RankingEntry{
			CandidateID:   eval.CandidateID,
			CandidateName: eval.CandidateName,
			MatchScore:    eval.Scores.FinalScore,
			KeyAdvantages: eval.MatchedSkills,
			KeyGaps:       eval.MissingSkills,
		})
	}

	return &models.ComparisonResult{
		JobID:           jobID,
		Ranking:         ranking,
		BestCandidate:   ranking[0].CandidateName,
		BestCandidateID: ranking[0].CandidateID,
		Degraded:        true,
		ComparedAt:      time.Now(),
	}
}
