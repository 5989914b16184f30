package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"alfredoptarigan/ats-engine/internal/config"
)

// RetrievalService grounds evaluations with resume chunks pulled from the
// vector store. Retrieval is best-effort: an unreachable or empty store
// yields an empty context, never a failed evaluation.
type RetrievalService interface {
	IndexResume(ctx context.Context, jobID, candidateID, resumeText string) (int, error)
	CandidateContext(ctx context.Context, jobID, candidateID, queryText string) string
	RemoveJob(ctx context.Context, jobID string)
	RemoveCandidate(ctx context.Context, jobID, candidateID string)
}

type retrievalService struct {
	gemini  GeminiService
	qdrant  QdrantService
	chunker TextChunker
	cfg     config.RetrievalConfig
	timeout time.Duration
}

func NewRetrievalService(
	gemini GeminiService,
	qdrant QdrantService,
	chunker TextChunker,
	cfg config.RetrievalConfig,
	timeout time.Duration,
) RetrievalService {
	return &retrievalService{
		gemini:  gemini,
		qdrant:  qdrant,
		chunker: chunker,
		cfg:     cfg,
		timeout: timeout,
	}
}

// IndexResume implements RetrievalService. Returns the number of chunks
// stored.
func (r *retrievalService) IndexResume(ctx context.Context, jobID, candidateID, resumeText string) (int, error) {
	chunks := r.chunker.ChunkText(resumeText, r.cfg.ChunkSize, r.cfg.ChunkOverlap)

	stored := 0
	for i, chunk := range chunks {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		embedding, err := r.gemini.GenerateEmbedding(callCtx, chunk)
		if err != nil {
			cancel()
			return stored, fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}

		if err := r.qdrant.UpsertChunk(callCtx, jobID, candidateID, chunk, i, embedding); err != nil {
			cancel()
			return stored, fmt.Errorf("failed to store chunk %d: %w", i, err)
		}
		cancel()
		stored++
	}

	return stored, nil
}

// CandidateContext implements RetrievalService. The job description text is
// the similarity query; the candidate's most relevant chunks come back
// joined into a single context block.
func (r *retrievalService) CandidateContext(ctx context.Context, jobID, candidateID, queryText string) string {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	embedding, err := r.gemini.GenerateEmbedding(callCtx, queryText)
	if err != nil {
		log.Printf("⚠️  Failed to embed retrieval query for %s: %v", candidateID, err)
		return ""
	}

	results, err := r.qdrant.SearchSimilar(callCtx, embedding, jobID, candidateID, r.cfg.TopK)
	if err != nil {
		log.Printf("⚠️  Vector search failed for %s: %v", candidateID, err)
		return ""
	}

	return FormatRetrievedContext(results)
}

// RemoveJob implements RetrievalService.
func (r *retrievalService) RemoveJob(ctx context.Context, jobID string) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.qdrant.DeleteByJob(callCtx, jobID); err != nil {
		log.Printf("⚠️  Failed to delete vector data for job %s: %v", jobID, err)
	}
}

// RemoveCandidate implements RetrievalService.
func (r *retrievalService) RemoveCandidate(ctx context.Context, jobID, candidateID string) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.qdrant.DeleteCandidate(callCtx, jobID, candidateID); err != nil {
		log.Printf("⚠️  Failed to delete vector data for candidate %s: %v", candidateID, err)
	}
}

// FormatRetrievedContext joins search hits into a prompt-ready block.
func FormatRetrievedContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
