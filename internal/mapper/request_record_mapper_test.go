package mapper

import (
	"testing"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-triage-be/internal/entity"
	"loan-triage-be/internal/model"
)

func TestRoundTripWithEmbedding(t *testing.T) {
	now := time.Now()
	e := &entity.RequestRecord{
		Id:             42,
		Text:           "pay the fee",
		RequestType:    "Fee Payment",
		SubRequestType: "Ongoing Fee",
		Embedding:      []float32{0.1, 0.2, 0.3},
		CreatedAt:      now,
	}

	m := ToRequestRecordModel(e)
	require.NotNil(t, m.Embedding)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, m.Embedding.Slice())

	back := ToRequestRecordEntity(m)
	assert.Equal(t, e, back)
}

func TestNilEmbeddingStaysNil(t *testing.T) {
	e := &entity.RequestRecord{Id: 1, Text: "x"}

	m := ToRequestRecordModel(e)
	assert.Nil(t, m.Embedding)

	back := ToRequestRecordEntity(m)
	assert.Nil(t, back.Embedding)
}

func TestNilRecords(t *testing.T) {
	assert.Nil(t, ToRequestRecordModel(nil))
	assert.Nil(t, ToRequestRecordEntity(nil))
}

func TestToRequestRecordEntities(t *testing.T) {
	vec := pgvector.NewVector([]float32{1})
	models := []model.RequestRecord{
		{Id: 1, Text: "a"},
		{Id: 2, Text: "b", Embedding: &vec},
	}

	entities := ToRequestRecordEntities(models)
	require.Len(t, entities, 2)
	assert.Nil(t, entities[0].Embedding)
	assert.Equal(t, []float32{1}, entities[1].Embedding)
}
