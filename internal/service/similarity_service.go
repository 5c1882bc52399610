package service

import (
	"context"
	"math"

	"loan-triage-be/internal/entity"
	"loan-triage-be/internal/pkg/logger"
	"loan-triage-be/internal/repository/contract"
	"loan-triage-be/pkg/embedding"
)

type ISimilarityService interface {
	// FindSimilar returns the first stored record (in insertion order)
	// whose embedding is at least threshold similar to text, or nil when
	// no record qualifies.
	FindSimilar(ctx context.Context, text string, threshold float64) (*entity.SimilarityMatch, error)
}

type similarityService struct {
	recordRepo        contract.IRequestRecordRepository
	embeddingProvider embedding.EmbeddingProvider
	log               logger.ILogger
}

func NewSimilarityService(
	recordRepo contract.IRequestRecordRepository,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) ISimilarityService {
	return &similarityService{
		recordRepo:        recordRepo,
		embeddingProvider: embeddingProvider,
		log:               log,
	}
}

func (s *similarityService) FindSimilar(ctx context.Context, text string, threshold float64) (*entity.SimilarityMatch, error) {
	records, err := s.recordRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	queryEmbedding, err := s.embeddingProvider.Generate(ctx, text)
	if err != nil {
		return nil, err
	}
	s.log.Info("similarity", "scanning stored requests", map[string]interface{}{
		"records":   len(records),
		"threshold": threshold,
	})

	// Insertion order matters: the earliest record over the threshold
	// wins, not the closest one.
	for _, record := range records {
		recordEmbedding := record.Embedding
		if recordEmbedding == nil {
			// The background embedder has not caught up yet, embed
			// inline and persist so the next scan is cheap.
			recordEmbedding, err = s.embeddingProvider.Generate(ctx, record.Text)
			if err != nil {
				return nil, err
			}
			if updateErr := s.recordRepo.UpdateEmbedding(ctx, record.Id, recordEmbedding); updateErr != nil {
				s.log.Warn("similarity", "failed to backfill embedding", map[string]interface{}{
					"record_id": record.Id,
					"error":     updateErr.Error(),
				})
			}
		}

		similarity := cosineSimilarity(queryEmbedding, recordEmbedding)
		s.log.Debug("similarity", "scored stored request", map[string]interface{}{
			"record_id":  record.Id,
			"similarity": similarity,
		})
		if similarity >= threshold {
			return &entity.SimilarityMatch{
				Text:           record.Text,
				RequestType:    record.RequestType,
				SubRequestType: record.SubRequestType,
				Similarity:     similarity,
			}, nil
		}
	}

	return nil, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
