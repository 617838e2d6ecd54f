package assistant

import (
	"strings"

	"github.com/scan-io-git/testforge/pkg/shared/config"
	errors "github.com/scan-io-git/testforge/pkg/shared/errors"
)

// Environment variables consulted when the config leaves a field empty.
const (
	EnvProvider    = "TESTFORGE_AI_PROVIDER"
	EnvOpenAIKey   = "OPENAI_API_KEY"
	EnvGeminiKey   = "GEMINI_API_KEY"
	EnvOpenAIModel = "OPENAI_MODEL"
	EnvGeminiModel = "GEMINI_MODEL"
)

const (
	DefaultOpenAIModel = "gpt-3.5-turbo"
	DefaultGeminiModel = "gemini-2.0-flash"

	geminiKeyPrefix = "AIza"
)

// Settings is the resolved provider selection.
type Settings struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// Remote reports whether a remote provider should be tried at all.
func (s Settings) Remote() bool {
	return s.APIKey != "" && s.Provider != ProviderCanned
}

// ResolveSettings applies the precedence explicit > environment > default to
// every field. getenv is usually os.Getenv.
func ResolveSettings(explicit config.Assistant, getenv func(string) string) (Settings, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	openAIKey, geminiKey := getenv(EnvOpenAIKey), getenv(EnvGeminiKey)

	provider := strings.ToLower(strings.TrimSpace(first(explicit.Provider, getenv(EnvProvider))))
	if provider == "" {
		provider = ProviderOpenAI
		if geminiKey != "" && openAIKey == "" {
			provider = ProviderGemini
		}
	}
	switch provider {
	case ProviderOpenAI, ProviderGemini, ProviderCanned:
	default:
		return Settings{}, errors.NewUnsupportedOptionError("assistant provider", provider,
			[]string{ProviderOpenAI, ProviderGemini, ProviderCanned})
	}

	var key string
	if provider == ProviderGemini {
		key = first(explicit.APIKey, geminiKey, openAIKey)
	} else {
		key = first(explicit.APIKey, openAIKey, geminiKey)
	}
	if provider == ProviderOpenAI && strings.HasPrefix(key, geminiKeyPrefix) {
		provider = ProviderGemini
	}

	var model string
	if provider == ProviderGemini {
		model = NormalizeGeminiModel(first(explicit.Model, getenv(EnvGeminiModel), DefaultGeminiModel))
	} else {
		model = first(explicit.Model, getenv(EnvOpenAIModel), DefaultOpenAIModel)
	}

	return Settings{
		Provider: provider,
		APIKey:   key,
		Model:    model,
		BaseURL:  explicit.BaseURL,
	}, nil
}

// NormalizeGeminiModel fixes the common "gemin-" misspelling.
func NormalizeGeminiModel(model string) string {
	if strings.HasPrefix(model, "gemin-") {
		return "gemini-" + strings.TrimPrefix(model, "gemin-")
	}
	return model
}

func first(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
