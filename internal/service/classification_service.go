package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"loan-triage-be/internal/constant"
	"loan-triage-be/internal/dto"
	"loan-triage-be/internal/entity"
	"loan-triage-be/internal/pkg/logger"
	"loan-triage-be/internal/repository/contract"
	"loan-triage-be/pkg/classify"
	"loan-triage-be/pkg/events"
	"loan-triage-be/pkg/extract"
	pktNats "loan-triage-be/pkg/nats"
)

type IClassificationService interface {
	// ClassifyDocument runs the full pipeline on an uploaded email file
	// plus optional attachments.
	ClassifyDocument(ctx context.Context, emailPath string, attachmentPaths []string) (*dto.ClassificationResponse, error)

	// ClassifyText runs the pipeline on raw text, skipping extraction.
	ClassifyText(ctx context.Context, text string) (*dto.ClassificationResponse, error)

	// ListRequests returns every stored request in insertion order.
	ListRequests(ctx context.Context) (*dto.ListRequestsResponse, error)
}

type classificationService struct {
	recordRepo        contract.IRequestRecordRepository
	similarityService ISimilarityService
	contextService    IContextService
	classifier        *classify.Classifier
	taxonomy          classify.Taxonomy
	publisherService  IPublisherService
	embedTopic        string
	eventPublisher    *pktNats.Publisher
	threshold         float64
	log               logger.ILogger
}

func NewClassificationService(
	recordRepo contract.IRequestRecordRepository,
	similarityService ISimilarityService,
	contextService IContextService,
	classifier *classify.Classifier,
	taxonomy classify.Taxonomy,
	publisherService IPublisherService,
	embedTopic string,
	eventPublisher *pktNats.Publisher,
	threshold float64,
	log logger.ILogger,
) IClassificationService {
	return &classificationService{
		recordRepo:        recordRepo,
		similarityService: similarityService,
		contextService:    contextService,
		classifier:        classifier,
		taxonomy:          taxonomy,
		publisherService:  publisherService,
		embedTopic:        embedTopic,
		eventPublisher:    eventPublisher,
		threshold:         threshold,
		log:               log,
	}
}

func (s *classificationService) ClassifyDocument(ctx context.Context, emailPath string, attachmentPaths []string) (*dto.ClassificationResponse, error) {
	if err := s.recordRepo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	s.log.Info("classification", "requests table ensured", nil)

	emailDoc, err := extract.FromFile(emailPath)
	if err != nil {
		return nil, err
	}
	emailText := emailDoc.Text
	s.log.Info("classification", "email text extracted", map[string]interface{}{
		"path":   emailPath,
		"format": string(emailDoc.Format),
		"failed": emailDoc.Failed(),
		"chars":  len(emailText),
	})

	// Duplicate detection considers the email body only. Attachments are
	// folded in afterwards for classification and storage.
	match, err := s.similarityService.FindSimilar(ctx, emailText, s.threshold)
	if err != nil {
		return nil, err
	}
	if match != nil {
		s.logSimilarFound(match)
		return s.duplicateResponse(ctx, emailText, match), nil
	}
	s.log.Info("classification", "no similar case found", nil)

	fullText := emailText
	if attachmentText := s.extractAttachments(attachmentPaths); attachmentText != "" {
		fullText += fmt.Sprintf(constant.AttachmentContextFormat, attachmentText)
	}

	return s.classifyAndPersist(ctx, fullText)
}

func (s *classificationService) ClassifyText(ctx context.Context, text string) (*dto.ClassificationResponse, error) {
	if err := s.recordRepo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	s.log.Info("classification", "requests table ensured", nil)

	match, err := s.similarityService.FindSimilar(ctx, text, s.threshold)
	if err != nil {
		return nil, err
	}
	if match != nil {
		s.logSimilarFound(match)
		return s.duplicateResponse(ctx, text, match), nil
	}
	s.log.Info("classification", "no similar case found", nil)

	return s.classifyAndPersist(ctx, text)
}

func (s *classificationService) logSimilarFound(match *entity.SimilarityMatch) {
	s.log.Info("classification", "similar case found", map[string]interface{}{
		"similarity":       match.Similarity,
		"request_type":     match.RequestType,
		"sub_request_type": match.SubRequestType,
	})
}

func (s *classificationService) ListRequests(ctx context.Context) (*dto.ListRequestsResponse, error) {
	if err := s.recordRepo.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	records, err := s.recordRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RequestRecordResponse, len(records))
	for i, record := range records {
		responses[i] = dto.RequestRecordResponse{
			Id:             record.Id,
			Text:           record.Text,
			RequestType:    record.RequestType,
			SubRequestType: record.SubRequestType,
			HasEmbedding:   record.Embedding != nil,
			CreatedAt:      record.CreatedAt,
		}
	}

	return &dto.ListRequestsResponse{
		Requests: responses,
		Total:    len(responses),
	}, nil
}

// extractAttachments concatenates the text of every readable attachment.
// Extraction soft-failures keep their placeholder text so the model still
// sees that an attachment existed.
func (s *classificationService) extractAttachments(paths []string) string {
	var parts []string
	for _, path := range paths {
		doc, err := extract.FromFile(path)
		if err != nil {
			s.log.Warn("classification", "skipping unsupported attachment", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
		s.log.Info("classification", "attachment processed", map[string]interface{}{
			"path":   path,
			"format": string(doc.Format),
			"failed": doc.Failed(),
		})
		parts = append(parts, doc.Text)
	}
	return strings.Join(parts, "\n")
}

func (s *classificationService) classifyAndPersist(ctx context.Context, text string) (*dto.ClassificationResponse, error) {
	examples, err := s.contextService.BuildContext(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info("classification", "context built", map[string]interface{}{
		"examples": len(examples),
	})

	result, err := s.classifier.Classify(ctx, text, s.taxonomy, examples)
	if err != nil {
		return nil, err
	}
	s.log.Info("classification", "request classified", map[string]interface{}{
		"request_type":     result.RequestType,
		"sub_request_type": result.SubRequestType,
	})

	record := &entity.RequestRecord{
		Text:           text,
		RequestType:    result.RequestType,
		SubRequestType: result.SubRequestType,
		CreatedAt:      time.Now(),
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		// The caller already has a verdict; a failed append must not
		// turn into a failed classification.
		s.log.Error("classification", "failed to persist classified request", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		s.log.Info("classification", "record persisted", map[string]interface{}{
			"record_id": record.Id,
		})
		s.publishEmbedMessage(record)
		s.publishClassifiedEvent(ctx, record)
	}

	return &dto.ClassificationResponse{
		ExtractedText:  text,
		DuplicateFound: false,
		RequestType:    result.RequestType,
		SubRequestType: result.SubRequestType,
		Reasoning:      result.Reasoning,
	}, nil
}

func (s *classificationService) duplicateResponse(ctx context.Context, text string, match *entity.SimilarityMatch) *dto.ClassificationResponse {
	if err := s.eventPublisher.Publish(ctx, events.NewDuplicateDetectedEvent(match.Similarity, match.RequestType, match.SubRequestType)); err != nil {
		s.log.Warn("classification", "failed to publish duplicate event", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return &dto.ClassificationResponse{
		ExtractedText:  text,
		DuplicateFound: true,
		RequestType:    match.RequestType,
		SubRequestType: match.SubRequestType,
		SimilarText:    match.Text,
		Similarity:     match.Similarity,
	}
}

func (s *classificationService) publishEmbedMessage(record *entity.RequestRecord) {
	payload, err := json.Marshal(dto.PublishEmbedRequestMessage{
		RequestId: record.Id,
		Text:      record.Text,
	})
	if err != nil {
		s.log.Error("classification", "failed to marshal embed message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if err := s.publisherService.Publish(s.embedTopic, payload); err != nil {
		s.log.Error("classification", "failed to publish embed message", map[string]interface{}{
			"record_id": record.Id,
			"error":     err.Error(),
		})
	}
}

func (s *classificationService) publishClassifiedEvent(ctx context.Context, record *entity.RequestRecord) {
	event := events.NewRequestClassifiedEvent(record.Id, record.RequestType, record.SubRequestType)
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.log.Warn("classification", "failed to publish classified event", map[string]interface{}{
			"record_id": record.Id,
			"error":     err.Error(),
		})
	}
}
