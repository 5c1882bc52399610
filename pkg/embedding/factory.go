package embedding

import "fmt"

func NewEmbeddingProvider(providerType, geminiAPIKey, ollamaBaseURL, ollamaModel string) (EmbeddingProvider, error) {
	switch providerType {
	case "gemini":
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini embedding provider requires GOOGLE_GEMINI_API_KEY")
		}
		return NewGeminiProvider(geminiAPIKey, ""), nil
	case "ollama":
		return NewOllamaProvider(ollamaBaseURL, ollamaModel), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", providerType)
	}
}
