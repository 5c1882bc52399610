package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"loan-triage-be/internal/pkg/logger"
	"loan-triage-be/internal/repository/contract"
	"loan-triage-be/pkg/classify"
	"loan-triage-be/pkg/extract"
	"loan-triage-be/pkg/llm"
)

const bootstrapCacheKey = "bootstrap_examples"

type IContextService interface {
	// BuildContext assembles the few-shot examples for a classification
	// call: labelled bootstrap documents first, then every stored record
	// in insertion order.
	BuildContext(ctx context.Context) ([]classify.Example, error)
}

type contextService struct {
	recordRepo contract.IRequestRecordRepository
	classifier *classify.Classifier
	taxonomy   classify.Taxonomy
	sampleDir  string
	cache      *gocache.Cache
	log        logger.ILogger
}

func NewContextService(
	recordRepo contract.IRequestRecordRepository,
	classifier *classify.Classifier,
	taxonomy classify.Taxonomy,
	sampleDir string,
	cacheTTL time.Duration,
	log logger.ILogger,
) IContextService {
	return &contextService{
		recordRepo: recordRepo,
		classifier: classifier,
		taxonomy:   taxonomy,
		sampleDir:  sampleDir,
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
		log:        log,
	}
}

func (s *contextService) BuildContext(ctx context.Context) ([]classify.Example, error) {
	bootstrap, err := s.bootstrapExamples(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	examples := make([]classify.Example, 0, len(bootstrap)+len(records))
	examples = append(examples, bootstrap...)
	for _, record := range records {
		examples = append(examples, classify.Example{
			Text:           record.Text,
			RequestType:    record.RequestType,
			SubRequestType: record.SubRequestType,
		})
	}

	s.log.Info("context", "classification context assembled", map[string]interface{}{
		"bootstrap": len(bootstrap),
		"records":   len(records),
	})
	return examples, nil
}

// bootstrapExamples labels every readable document in the sample dataset
// directory. Labelling burns one model call per document, so the result is
// cached for the configured TTL.
func (s *contextService) bootstrapExamples(ctx context.Context) ([]classify.Example, error) {
	if cached, found := s.cache.Get(bootstrapCacheKey); found {
		s.log.Debug("context", "bootstrap examples served from cache", nil)
		return cached.([]classify.Example), nil
	}

	entries, err := os.ReadDir(s.sampleDir)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Warn("context", "sample dataset directory not found", map[string]interface{}{
				"dir": s.sampleDir,
			})
			return nil, nil
		}
		return nil, err
	}

	var examples []classify.Example
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(s.sampleDir, entry.Name())
		doc, err := extract.FromFile(path)
		if err != nil {
			s.log.Warn("context", "skipping unreadable sample document", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
		if doc.Failed() {
			s.log.Warn("context", "skipping sample document with extraction failure", map[string]interface{}{
				"path":   path,
				"reason": doc.Failure.Reason,
			})
			continue
		}

		label, err := s.classifier.Label(ctx, doc.Text, s.taxonomy)
		if err != nil {
			// A rate limit poisons every remaining call in this pass,
			// abort instead of hammering the backend.
			var rateErr *llm.RateLimitError
			if errors.As(err, &rateErr) {
				return nil, rateErr
			}
			s.log.Warn("context", "skipping sample document that failed labelling", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}

		examples = append(examples, classify.Example{
			Text:           doc.Text,
			RequestType:    label.RequestType,
			SubRequestType: label.SubRequestType,
		})
	}

	s.log.Info("context", "bootstrap examples labelled", map[string]interface{}{
		"dir":      s.sampleDir,
		"examples": len(examples),
	})
	s.cache.Set(bootstrapCacheKey, examples, gocache.DefaultExpiration)
	return examples, nil
}
