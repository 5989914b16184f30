package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"alfredoptarigan/ats-engine/internal/config"
	"alfredoptarigan/ats-engine/internal/models"
	"alfredoptarigan/ats-engine/internal/repositories"
)

// EvaluatorService runs the evaluation pipeline: skill match, heuristic
// scoring, retrieval-grounded LLM assessment. An unreachable model never
// fails an evaluation; the result degrades to heuristics-only and says so
// in its confidence note.
type EvaluatorService interface {
	EvaluateAll(ctx context.Context, jobID string, candidateIDs []string) (*models.EvaluationResponse, error)
	EvaluateOne(ctx context.Context, jobID, candidateID string) (*models.EvaluationResult, error)
	CandidateDetail(jobID, candidateID string) (*models.CandidateDetailResponse, error)
}

type evaluatorService struct {
	jobRepo     repositories.JobRepository
	candRepo    repositories.CandidateRepository
	resultCache repositories.ResultCache
	matcher     SkillMatcher
	scorer      ScoreCalculator
	retriever   RetrievalService
	gemini      GeminiService
	prompts     *PromptBuilder
	workerCfg   config.WorkerConfig
	timeout     time.Duration
}

func NewEvaluatorService(
	jobRepo repositories.JobRepository,
	candRepo repositories.CandidateRepository,
	resultCache repositories.ResultCache,
	matcher SkillMatcher,
	scorer ScoreCalculator,
	retriever RetrievalService,
	gemini GeminiService,
	prompts *PromptBuilder,
	workerCfg config.WorkerConfig,
	timeout time.Duration,
) EvaluatorService {
	return &evaluatorService{
		jobRepo:     jobRepo,
		candRepo:    candRepo,
		resultCache: resultCache,
		matcher:     matcher,
		scorer:      scorer,
		retriever:   retriever,
		gemini:      gemini,
		prompts:     prompts,
		workerCfg:   workerCfg,
		timeout:     timeout,
	}
}

// EvaluateAll implements EvaluatorService. With an empty candidateIDs it
// evaluates every candidate registered for the job. Candidates are
// processed concurrently and the response is ordered by final score
// descending, candidate ID ascending on ties.
func (e *evaluatorService) EvaluateAll(ctx context.Context, jobID string, candidateIDs []string) (*models.EvaluationResponse, error) {
	job, err := e.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	profiles, err := e.resolveCandidates(jobID, candidateIDs)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no candidates registered for job %s: %w", jobID, models.ErrInvalidArgument)
	}

	log.Printf("🚀 Evaluating %d candidates for job %s\n", len(profiles), jobID)

	results := make([]models.EvaluationResult, len(profiles))
	runBounded(ctx, e.workerCfg.Concurrency, len(profiles), func(taskCtx context.Context, i int) {
		results[i] = e.evaluateCandidate(taskCtx, job, &profiles[i])
	})

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Scores.FinalScore != results[j].Scores.FinalScore {
			return results[i].Scores.FinalScore > results[j].Scores.FinalScore
		}
		return results[i].CandidateID < results[j].CandidateID
	})

	return &models.EvaluationResponse{
		JobID:           job.ID,
		JobTitle:        job.Title,
		RoleLevel:       e.scorer.InferRoleLevel(job),
		TotalCandidates: len(results),
		EvaluatedAt:     time.Now(),
		Candidates:      results,
	}, nil
}

// EvaluateOne implements EvaluatorService.
func (e *evaluatorService) EvaluateOne(ctx context.Context, jobID, candidateID string) (*models.EvaluationResult, error) {
	job, err := e.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	profile, err := e.candRepo.FindByID(jobID, candidateID)
	if err != nil {
		return nil, err
	}

	result := e.evaluateCandidate(ctx, job, profile)
	return &result, nil
}

// CandidateDetail implements EvaluatorService. It joins the stored
// profile with its skill match against the job without touching the
// model.
func (e *evaluatorService) CandidateDetail(jobID, candidateID string) (*models.CandidateDetailResponse, error) {
	job, err := e.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	profile, err := e.candRepo.FindByID(jobID, candidateID)
	if err != nil {
		return nil, err
	}

	match := e.matcher.Match(profile.Skills, job.MandatorySkills, job.OptionalSkills)
	return &models.CandidateDetailResponse{
		CandidateProfile:      *profile,
		MatchedSkills:         match.Matched,
		MatchedOptionalSkills: match.MatchedOptional,
		MissingSkills:         match.Missing,
		MatchPercentage:       match.MatchPercentage,
	}, nil
}

func (e *evaluatorService) resolveCandidates(jobID string, candidateIDs []string) ([]models.CandidateProfile, error) {
	if len(candidateIDs) == 0 {
		return e.candRepo.FindByJob(jobID)
	}

	profiles := make([]models.CandidateProfile, 0, len(candidateIDs))
	for _, candidateID := range candidateIDs {
		profile, err := e.candRepo.FindByID(jobID, candidateID)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

// evaluateCandidate runs the full pipeline for one candidate. The matched
// and missing skill sets, the scores and the role level always come from
// the deterministic stages; the model only contributes the qualitative
// fields.
func (e *evaluatorService) evaluateCandidate(ctx context.Context, job *models.JobDescription, profile *models.CandidateProfile) models.EvaluationResult {
	match := e.matcher.Match(profile.Skills, job.MandatorySkills, job.OptionalSkills)
	scores := e.scorer.Score(profile, job, match)

	result := models.EvaluationResult{
		JobID:                 job.ID,
		CandidateID:           profile.CandidateID,
		CandidateName:         profile.Name,
		RoleLevel:             e.scorer.InferRoleLevel(job),
		Scores:                scores,
		MatchedSkills:         match.Matched,
		MatchedOptionalSkills: match.MatchedOptional,
		MissingSkills:         match.Missing,
		EvaluatedAt:           time.Now(),
	}

	query := job.Title + " " + strings.Join(job.MandatorySkills, " ")
	retrievedContext := e.retriever.CandidateContext(ctx, job.ID, profile.CandidateID, query)

	prompt := e.prompts.BuildEvaluationPrompt(job, profile, match, scores, retrievedContext)

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	raw, err := e.gemini.GenerateTextWithRetry(callCtx, prompt, 0.3, e.workerCfg.RetryMaxAttempts)
	cancel()
	if err != nil {
		log.Printf("⚠️  AI evaluation failed for candidate %s: %v\n", profile.CandidateID, err)
		e.applyHeuristicFallback(&result)
		e.resultCache.Put(&result)
		return result
	}

	eval, parseErr := parseEvaluationResponse(raw)
	if parseErr != nil {
		log.Printf("⚠️  Malformed AI response for candidate %s: %v\n", profile.CandidateID, parseErr)
		fallback, ok := extractLabeledEvaluation(raw)
		if !ok {
			e.applyHeuristicFallback(&result)
			e.resultCache.Put(&result)
			return result
		}
		eval = fallback
		result.Degraded = true
	}

	result.Strengths = eval.Strengths
	result.Weaknesses = eval.Weaknesses
	result.Summary = eval.Summary
	result.ConfidenceNote = eval.ConfidenceNote
	if result.Summary == "" {
		result.Summary = heuristicSummary(match, scores)
	}

	if rec, ok := normalizeRecommendation(eval.Recommendation); ok {
		result.Recommendation = rec
	} else {
		result.Recommendation = e.scorer.Recommend(scores.FinalScore)
	}

	if result.Degraded && result.ConfidenceNote == "" {
		result.ConfidenceNote = "AI response was partially readable; qualitative fields may be incomplete."
	}

	e.resultCache.Put(&result)
	return result
}

// applyHeuristicFallback fills the qualitative fields from the
// deterministic stages when the model contributed nothing.
func (e *evaluatorService) applyHeuristicFallback(result *models.EvaluationResult) {
	result.Degraded = true
	result.Summary = heuristicSummary(
		SkillMatchResult{
			Matched:         result.MatchedSkills,
			Missing:         result.MissingSkills,
			MatchPercentage: result.Scores.SkillsScore,
		},
		result.Scores,
	)
	result.Recommendation = e.scorer.Recommend(result.Scores.FinalScore)
	result.ConfidenceNote = "AI evaluation unavailable; assessment is based on heuristic scoring only."
	if len(result.MatchedSkills) > 0 {
		result.Strengths = []string{"Covers required skills: " + strings.Join(result.MatchedSkills, ", ")}
	}
	if len(result.MissingSkills) > 0 {
		result.Weaknesses = []string{"Missing required skills: " + strings.Join(result.MissingSkills, ", ")}
	}
}

func heuristicSummary(match SkillMatchResult, scores models.ScoreBreakdown) string {
	return fmt.Sprintf(
		"Candidate matches %d of %d required skills (%d%%) with a composite score of %d/100.",
		len(match.Matched),
		len(match.Matched)+len(match.Missing),
		match.MatchPercentage,
		scores.FinalScore,
	)
}
