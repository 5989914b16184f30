package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// QdrantService stores resume chunks and answers similarity queries
// scoped to a (job, candidate) pair.
type QdrantService interface {
	InitCollection() error
	UpsertChunk(ctx context.Context, jobID, candidateID, text string, chunkIndex int, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, jobID, candidateID string, limit int) ([]SearchResult, error)
	DeleteByJob(ctx context.Context, jobID string) error
	DeleteCandidate(ctx context.Context, jobID, candidateID string) error
}

type SearchResult struct {
	ID          string
	Score       float32
	Text        string
	JobID       string
	CandidateID string
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string) (QdrantService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertChunk implements QdrantService.
func (q *qdrantService) UpsertChunk(ctx context.Context, jobID, candidateID, text string, chunkIndex int, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"job_id":       jobID,
			"candidate_id": candidateID,
			"chunk_index":  chunkIndex,
			"text":         text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements QdrantService.
func (q *qdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, jobID, candidateID string, limit int) ([]SearchResult, error) {
	var conditions []*qdrant.Condition
	if jobID != "" {
		conditions = append(conditions, qdrant.NewMatch("job_id", jobID))
	}
	if candidateID != "" {
		conditions = append(conditions, qdrant.NewMatch("candidate_id", candidateID))
	}

	var filter *qdrant.Filter
	if len(conditions) > 0 {
		filter = &qdrant.Filter{Must: conditions}
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []SearchResult
	for _, point := range searchResult {
		payload := point.Payload

		result := SearchResult{
			Score: point.Score,
		}

		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				result.Text = val.StringValue
			}
		}

		if jid, ok := payload["job_id"]; ok {
			if val, ok := jid.GetKind().(*qdrant.Value_StringValue); ok {
				result.JobID = val.StringValue
			}
		}

		if cid, ok := payload["candidate_id"]; ok {
			if val, ok := cid.GetKind().(*qdrant.Value_StringValue); ok {
				result.CandidateID = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// DeleteByJob implements QdrantService.
func (q *qdrantService) DeleteByJob(ctx context.Context, jobID string) error {
	return q.deleteByFilter(ctx, &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("job_id", jobID),
		},
	})
}

// DeleteCandidate implements QdrantService.
func (q *qdrantService) DeleteCandidate(ctx context.Context, jobID, candidateID string) error {
	return q.deleteByFilter(ctx, &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("job_id", jobID),
			qdrant.NewMatch("candidate_id", candidateID),
		},
	})
}

func (q *qdrantService) deleteByFilter(ctx context.Context, filter *qdrant.Filter) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete points: %w", err)
	}

	return nil
}
