package mapper

import (
	"github.com/pgvector/pgvector-go"

	"loan-triage-be/internal/entity"
	"loan-triage-be/internal/model"
)

func ToRequestRecordEntity(m *model.RequestRecord) *entity.RequestRecord {
	if m == nil {
		return nil
	}

	var embedding []float32
	if m.Embedding != nil {
		embedding = m.Embedding.Slice()
	}

	return &entity.RequestRecord{
		Id:             m.Id,
		Text:           m.Text,
		RequestType:    m.RequestType,
		SubRequestType: m.SubRequestType,
		Embedding:      embedding,
		CreatedAt:      m.CreatedAt,
	}
}

func ToRequestRecordModel(e *entity.RequestRecord) *model.RequestRecord {
	if e == nil {
		return nil
	}

	var embedding *pgvector.Vector
	if e.Embedding != nil {
		vec := pgvector.NewVector(e.Embedding)
		embedding = &vec
	}

	return &model.RequestRecord{
		Id:             e.Id,
		Text:           e.Text,
		RequestType:    e.RequestType,
		SubRequestType: e.SubRequestType,
		Embedding:      embedding,
		CreatedAt:      e.CreatedAt,
	}
}

func ToRequestRecordEntities(models []model.RequestRecord) []*entity.RequestRecord {
	entities := make([]*entity.RequestRecord, len(models))
	for i := range models {
		entities[i] = ToRequestRecordEntity(&models[i])
	}
	return entities
}
