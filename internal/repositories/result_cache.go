package repositories

import (
	"fmt"
	"sort"
	"sync"

	"alfredoptarigan/ats-engine/internal/models"
)

// ResultCache keeps the derived evaluation results. Entries are transient
// and always recomputable from the job and candidate registries;
// re-evaluation overwrites with last-write-wins semantics.
type ResultCache interface {
	Put(result *models.EvaluationResult)
	Get(jobID, candidateID string) (*models.EvaluationResult, error)
	ListByJob(jobID string) []models.EvaluationResult
	Invalidate(jobID, candidateID string)
	InvalidateJob(jobID string)
}

type resultCache struct {
	mu      sync.RWMutex
	results map[string]map[string]models.EvaluationResult
}

func NewResultCache() ResultCache {
	return &resultCache{
		results: make(map[string]map[string]models.EvaluationResult),
	}
}

// Put implements ResultCache.
func (c *resultCache) Put(result *models.EvaluationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.results[result.JobID] == nil {
		c.results[result.JobID] = make(map[string]models.EvaluationResult)
	}
	c.results[result.JobID][result.CandidateID] = *result
}

// Get implements ResultCache.
func (c *resultCache) Get(jobID, candidateID string) (*models.EvaluationResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.results[jobID][candidateID]
	if !ok {
		return nil, fmt.Errorf("evaluation for candidate %s: %w", candidateID, models.ErrNotFound)
	}
	return &result, nil
}

// ListByJob implements ResultCache. Results come back ordered by final
// score descending with candidate_id as the reproducible tie-breaker.
func (c *resultCache) ListByJob(jobID string) []models.EvaluationResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	results := make([]models.EvaluationResult, 0, len(c.results[jobID]))
	for _, result := range c.results[jobID] {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Scores.FinalScore != results[j].Scores.FinalScore {
			return results[i].Scores.FinalScore > results[j].Scores.FinalScore
		}
		return results[i].CandidateID < results[j].CandidateID
	})
	return results
}

// Invalidate implements ResultCache.
func (c *resultCache) Invalidate(jobID, candidateID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results[jobID], candidateID)
}

// InvalidateJob implements ResultCache.
func (c *resultCache) InvalidateJob(jobID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results, jobID)
}
