package bootstrap

import (
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"loan-triage-be/internal/config"
	"loan-triage-be/internal/constant"
	"loan-triage-be/internal/controller"
	"loan-triage-be/internal/pkg/logger"
	"loan-triage-be/internal/repository/implementation"
	"loan-triage-be/internal/service"
	"loan-triage-be/pkg/classify"
	"loan-triage-be/pkg/embedding"
	"loan-triage-be/pkg/llm/factory"
	pktNats "loan-triage-be/pkg/nats"
)

type Container struct {
	// Controllers
	ClassificationController controller.IClassificationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Core Facades
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider, err := embedding.NewEmbeddingProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Keys.GoogleGemini,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaEmbeddingModel,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s", cfg.Ai.EmbeddingProvider)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Keys.GoogleGemini,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 5. Repositories
	recordRepo := implementation.NewRequestRecordRepository(db)

	// 6. Services
	taxonomy := constant.DefaultTaxonomy()
	classifier := classify.NewClassifier(llmProvider)

	similarityService := service.NewSimilarityService(recordRepo, embeddingProvider, sysLogger)
	contextService := service.NewContextService(
		recordRepo,
		classifier,
		taxonomy,
		cfg.Classifier.SampleDatasetDir,
		time.Duration(cfg.Classifier.BootstrapCacheTTLMin)*time.Minute,
		sysLogger,
	)
	publisherService := service.NewPublisherService(pubSub)
	classificationService := service.NewClassificationService(
		recordRepo,
		similarityService,
		contextService,
		classifier,
		taxonomy,
		publisherService,
		cfg.Classifier.ClassifiedTopic,
		natsPub,
		cfg.Classifier.SimilarityThreshold,
		sysLogger,
	)
	consumerService := service.NewConsumerService(pubSub, cfg.Classifier.ClassifiedTopic, recordRepo, embeddingProvider)

	// 7. Controllers
	classificationController := controller.NewClassificationController(classificationService, cfg.App.UploadDir)

	return &Container{
		ClassificationController: classificationController,
		ConsumerService:          consumerService,
		Logger:                   sysLogger,
	}
}
