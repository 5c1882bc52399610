package factory

import (
	"fmt"

	"loan-triage-be/pkg/llm"
	"loan-triage-be/pkg/llm/gemini"
	"loan-triage-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, geminiAPIKey, ollamaBaseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini":
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(geminiAPIKey, modelName), nil
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
