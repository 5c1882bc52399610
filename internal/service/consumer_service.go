package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"loan-triage-be/internal/dto"
	"loan-triage-be/internal/repository/contract"
	"loan-triage-be/pkg/embedding"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	recordRepo        contract.IRequestRecordRepository
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	recordRepo contract.IRequestRecordRepository,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		recordRepo:        recordRepo,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedRequestMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Generating embedding for request %d (text length: %d)", payload.RequestId, len(payload.Text))

	vector, err := cs.embeddingProvider.Generate(ctx, payload.Text)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for request %d: %v", payload.RequestId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	if err := cs.recordRepo.UpdateEmbedding(ctx, payload.RequestId, vector); err != nil {
		log.Printf("[ERROR] Failed to store embedding for request %d: %v", payload.RequestId, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Embedding stored for request %d", payload.RequestId)
	msg.Ack()
}
