/*
Package config resolves evaluation settings from config files and the
environment. Precedence: explicit config keys, then provider-specific
environment variables, then defaults. A missing embedding credential is a
valid state: the caller runs with the local similarity approximation.
*/
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/notewell/notewell/internal/llm"
)

// LoadEnvFile loads a .env file into the process environment when one
// exists. A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadLLMConfig resolves the provider configuration used for embeddings
// and end-to-end extraction. It never errors on a missing API key; the
// caller decides between remote and local mode via HasCredential.
func LoadLLMConfig() (llm.Config, error) {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = string(llm.DefaultProvider)
	}
	llmProvider, err := llm.ValidateProvider(provider)
	if err != nil {
		return llm.Config{}, fmt.Errorf("invalid provider: %w", err)
	}

	model := viper.GetString("llm.model")
	if model == "" {
		model = llm.DefaultModelForProvider(llmProvider)
	}

	baseURL := viper.GetString("llm.baseURL")
	if baseURL == "" && llmProvider == llm.ProviderOllama {
		baseURL = llm.DefaultOllamaURL
	}

	embeddingModel := viper.GetString("llm.embeddingModel")
	if embeddingModel == "" {
		switch llmProvider {
		case llm.ProviderOpenAI:
			embeddingModel = llm.DefaultOpenAIEmbeddingModel
		case llm.ProviderOllama:
			embeddingModel = llm.DefaultOllamaEmbeddingModel
		}
	}

	return llm.Config{
		Provider:       llmProvider,
		Model:          model,
		EmbeddingModel: embeddingModel,
		APIKey:         ResolveAPIKey(llmProvider),
		BaseURL:        baseURL,
	}, nil
}

// ResolveAPIKey returns the API key for a provider: per-provider config
// key first, then the provider's environment variable.
func ResolveAPIKey(provider llm.Provider) string {
	if key := strings.TrimSpace(viper.GetString(fmt.Sprintf("llm.apiKeys.%s", provider))); key != "" {
		return key
	}
	return providerEnvKey(provider)
}

func providerEnvKey(provider llm.Provider) string {
	switch provider {
	case llm.ProviderOpenAI:
		return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	case llm.ProviderAnthropic:
		return strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	case llm.ProviderGemini:
		key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		if key == "" {
			key = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
		}
		return key
	default:
		return ""
	}
}
