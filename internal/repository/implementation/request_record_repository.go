package implementation

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"loan-triage-be/internal/entity"
	"loan-triage-be/internal/mapper"
	"loan-triage-be/internal/model"
	"loan-triage-be/internal/repository/contract"
)

type requestRecordRepository struct {
	db *gorm.DB
}

func NewRequestRecordRepository(db *gorm.DB) contract.IRequestRecordRepository {
	return &requestRecordRepository{db: db}
}

func (r *requestRecordRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS requests (
			id SERIAL PRIMARY KEY,
			text TEXT NOT NULL,
			request_type VARCHAR(255),
			sub_request_type VARCHAR(255),
			created_at TIMESTAMP DEFAULT NOW()
		)`,
		`ALTER TABLE requests ADD COLUMN IF NOT EXISTS embedding vector`,
	}

	for _, stmt := range statements {
		if err := r.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *requestRecordRepository) Create(ctx context.Context, record *entity.RequestRecord) error {
	m := mapper.ToRequestRecordModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	record.Id = m.Id
	record.CreatedAt = m.CreatedAt
	return nil
}

func (r *requestRecordRepository) FindAll(ctx context.Context) ([]*entity.RequestRecord, error) {
	var models []model.RequestRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapper.ToRequestRecordEntities(models), nil
}

func (r *requestRecordRepository) UpdateEmbedding(ctx context.Context, id int64, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	return r.db.WithContext(ctx).
		Model(&model.RequestRecord{}).
		Where("id = ?", id).
		Update("embedding", &vec).Error
}
