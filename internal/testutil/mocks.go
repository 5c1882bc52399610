package testutil

import (
	"context"

	"loan-triage-be/internal/dto"
	"loan-triage-be/internal/entity"
	"loan-triage-be/pkg/llm"
)

// MockLLMProvider implements llm.LLMProvider with overridable behavior.
type MockLLMProvider struct {
	ChatFunc     func(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error)
	GenerateFunc func(ctx context.Context, prompt string, options ...llm.Option) (string, error)
	ChatCalls    int
}

func (m *MockLLMProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	m.ChatCalls++
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, history, options...)
	}
	return "", nil
}

func (m *MockLLMProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, options...)
	}
	return m.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

// MockEmbeddingProvider implements embedding.EmbeddingProvider.
type MockEmbeddingProvider struct {
	GenerateFunc  func(ctx context.Context, text string) ([]float32, error)
	GenerateCalls int
}

func (m *MockEmbeddingProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	m.GenerateCalls++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, text)
	}
	return []float32{1, 0, 0}, nil
}

// MockRequestRecordRepository implements contract.IRequestRecordRepository.
type MockRequestRecordRepository struct {
	EnsureSchemaFunc    func(ctx context.Context) error
	CreateFunc          func(ctx context.Context, record *entity.RequestRecord) error
	FindAllFunc         func(ctx context.Context) ([]*entity.RequestRecord, error)
	UpdateEmbeddingFunc func(ctx context.Context, id int64, embedding []float32) error

	Created []*entity.RequestRecord
}

func (m *MockRequestRecordRepository) EnsureSchema(ctx context.Context) error {
	if m.EnsureSchemaFunc != nil {
		return m.EnsureSchemaFunc(ctx)
	}
	return nil
}

func (m *MockRequestRecordRepository) Create(ctx context.Context, record *entity.RequestRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	record.Id = int64(len(m.Created) + 1)
	m.Created = append(m.Created, record)
	return nil
}

func (m *MockRequestRecordRepository) FindAll(ctx context.Context) ([]*entity.RequestRecord, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockRequestRecordRepository) UpdateEmbedding(ctx context.Context, id int64, embedding []float32) error {
	if m.UpdateEmbeddingFunc != nil {
		return m.UpdateEmbeddingFunc(ctx, id, embedding)
	}
	return nil
}

// MockSimilarityService implements service.ISimilarityService.
type MockSimilarityService struct {
	FindSimilarFunc func(ctx context.Context, text string, threshold float64) (*entity.SimilarityMatch, error)
}

func (m *MockSimilarityService) FindSimilar(ctx context.Context, text string, threshold float64) (*entity.SimilarityMatch, error) {
	if m.FindSimilarFunc != nil {
		return m.FindSimilarFunc(ctx, text, threshold)
	}
	return nil, nil
}

// MockPublisherService implements service.IPublisherService.
type MockPublisherService struct {
	PublishFunc func(topic string, payload []byte) error
	Published   [][]byte
}

func (m *MockPublisherService) Publish(topic string, payload []byte) error {
	m.Published = append(m.Published, payload)
	if m.PublishFunc != nil {
		return m.PublishFunc(topic, payload)
	}
	return nil
}

// MockClassificationService implements service.IClassificationService.
type MockClassificationService struct {
	ClassifyDocumentFunc func(ctx context.Context, emailPath string, attachmentPaths []string) (*dto.ClassificationResponse, error)
	ClassifyTextFunc     func(ctx context.Context, text string) (*dto.ClassificationResponse, error)
	ListRequestsFunc     func(ctx context.Context) (*dto.ListRequestsResponse, error)
}

func (m *MockClassificationService) ClassifyDocument(ctx context.Context, emailPath string, attachmentPaths []string) (*dto.ClassificationResponse, error) {
	if m.ClassifyDocumentFunc != nil {
		return m.ClassifyDocumentFunc(ctx, emailPath, attachmentPaths)
	}
	return &dto.ClassificationResponse{}, nil
}

func (m *MockClassificationService) ClassifyText(ctx context.Context, text string) (*dto.ClassificationResponse, error) {
	if m.ClassifyTextFunc != nil {
		return m.ClassifyTextFunc(ctx, text)
	}
	return &dto.ClassificationResponse{}, nil
}

func (m *MockClassificationService) ListRequests(ctx context.Context) (*dto.ListRequestsResponse, error) {
	if m.ListRequestsFunc != nil {
		return m.ListRequestsFunc(ctx)
	}
	return &dto.ListRequestsResponse{}, nil
}
