package contract

import (
	"context"

	"loan-triage-be/internal/entity"
)

type IRequestRecordRepository interface {
	// EnsureSchema creates the requests table and vector extension if
	// they do not exist yet. Idempotent.
	EnsureSchema(ctx context.Context) error

	// Create appends a record and fills in its generated Id and CreatedAt.
	Create(ctx context.Context, record *entity.RequestRecord) error

	// FindAll returns every stored record in insertion (id) order.
	FindAll(ctx context.Context) ([]*entity.RequestRecord, error)

	// UpdateEmbedding stores the vector for an existing record.
	UpdateEmbedding(ctx context.Context, id int64, embedding []float32) error
}
