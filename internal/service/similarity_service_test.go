package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-triage-be/internal/entity"
	"loan-triage-be/internal/pkg/logger"
	"loan-triage-be/internal/testutil"
)

func noopLogger() logger.ILogger {
	return logger.NewZapLogger("/dev/null", true)
}

// Vectors are chosen so that cosine similarity with the (1, 0) query axis is
// easy to read off: (cos θ, sin θ).
func similarityFixtureRepo() *testutil.MockRequestRecordRepository {
	return &testutil.MockRequestRecordRepository{
		FindAllFunc: func(ctx context.Context) ([]*entity.RequestRecord, error) {
			return []*entity.RequestRecord{
				{Id: 1, Text: "a", RequestType: "Adjustment", Embedding: []float32{0.65, 0.76}},
				{Id: 2, Text: "b", RequestType: "Fee Payment", SubRequestType: "Ongoing Fee", Embedding: []float32{0.80, 0.60}},
				{Id: 3, Text: "c", RequestType: "AU Transfer", Embedding: []float32{0.90, 0.44}},
			}, nil
		},
	}
}

func TestFindSimilarReturnsFirstMatchInInsertionOrder(t *testing.T) {
	repo := similarityFixtureRepo()
	embedder := &testutil.MockEmbeddingProvider{
		GenerateFunc: func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0}, nil
		},
	}
	svc := NewSimilarityService(repo, embedder, noopLogger())

	// Record 3 scores highest (0.90) but record 2 (0.80) crosses the
	// threshold first.
	match, err := svc.FindSimilar(context.Background(), "query", 0.7)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "b", match.Text)
	assert.Equal(t, "Fee Payment", match.RequestType)
	assert.Equal(t, "Ongoing Fee", match.SubRequestType)
	assert.InDelta(t, 0.80, match.Similarity, 0.001)
}

func TestFindSimilarNoMatchBelowThreshold(t *testing.T) {
	repo := similarityFixtureRepo()
	embedder := &testutil.MockEmbeddingProvider{
		GenerateFunc: func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0}, nil
		},
	}
	svc := NewSimilarityService(repo, embedder, noopLogger())

	match, err := svc.FindSimilar(context.Background(), "query", 0.95)
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestFindSimilarEmptyStoreSkipsEmbedding(t *testing.T) {
	repo := &testutil.MockRequestRecordRepository{
		FindAllFunc: func(ctx context.Context) ([]*entity.RequestRecord, error) {
			return nil, nil
		},
	}
	embedder := &testutil.MockEmbeddingProvider{}
	svc := NewSimilarityService(repo, embedder, noopLogger())

	match, err := svc.FindSimilar(context.Background(), "query", 0.7)
	require.NoError(t, err)
	assert.Nil(t, match)
	assert.Equal(t, 0, embedder.GenerateCalls)
}

func TestFindSimilarBackfillsMissingEmbedding(t *testing.T) {
	var backfilledID int64
	repo := &testutil.MockRequestRecordRepository{
		FindAllFunc: func(ctx context.Context) ([]*entity.RequestRecord, error) {
			return []*entity.RequestRecord{
				{Id: 7, Text: "stored text", RequestType: "Adjustment", Embedding: nil},
			}, nil
		},
		UpdateEmbeddingFunc: func(ctx context.Context, id int64, embedding []float32) error {
			backfilledID = id
			return nil
		},
	}
	embedder := &testutil.MockEmbeddingProvider{
		GenerateFunc: func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0}, nil
		},
	}
	svc := NewSimilarityService(repo, embedder, noopLogger())

	match, err := svc.FindSimilar(context.Background(), "query", 0.7)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "stored text", match.Text)
	assert.Equal(t, int64(7), backfilledID)
	// One call for the query, one for the record.
	assert.Equal(t, 2, embedder.GenerateCalls)
}

func TestFindSimilarPropagatesEmbeddingError(t *testing.T) {
	repo := similarityFixtureRepo()
	boom := errors.New("embedding backend down")
	embedder := &testutil.MockEmbeddingProvider{
		GenerateFunc: func(ctx context.Context, text string) ([]float32, error) {
			return nil, boom
		},
	}
	svc := NewSimilarityService(repo, embedder, noopLogger())

	_, err := svc.FindSimilar(context.Background(), "query", 0.7)
	assert.ErrorIs(t, err, boom)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	// Degenerate inputs score zero instead of dividing by zero.
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 0}))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
}
