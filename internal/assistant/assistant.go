package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 64

// Answer is the reply to one question.
type Answer struct {
	Text     string `json:"answer"`
	Provider string `json:"provider"`
	Cached   bool   `json:"cached,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Assistant tries the remote provider first and falls back to canned answers.
// Remote answers are cached by question.
type Assistant struct {
	remote Provider
	local  Canned
	cache  *lru.Cache[string, string]
	logger hclog.Logger
}

// New creates an Assistant. remote may be nil, in which case only canned
// answers are served.
func New(remote Provider, cacheSize int, logger hclog.Logger) (*Assistant, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create answer cache: %w", err)
	}

	return &Assistant{remote: remote, cache: cache, logger: logger}, nil
}

// NewProvider builds the remote provider selected by s, or nil when s does not
// call for one.
func NewProvider(ctx context.Context, s Settings, client *resty.Client) (Provider, error) {
	if !s.Remote() {
		return nil, nil
	}

	switch s.Provider {
	case ProviderGemini:
		p, err := NewGeminiProvider(ctx, s.APIKey, s.Model, s.BaseURL, client.GetClient())
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return NewOpenAIProvider(client, s.APIKey, s.Model, s.BaseURL), nil
	}
}

// Ask answers question. It never fails because of the remote provider: errors
// and empty replies are logged and answered locally.
func (a *Assistant) Ask(ctx context.Context, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, fmt.Errorf("question is empty")
	}

	if a.remote != nil {
		key := a.remote.Name() + "\x00" + strings.ToLower(question)
		if text, ok := a.cache.Get(key); ok {
			return Answer{Text: text, Provider: a.remote.Name(), Cached: true}, nil
		}

		text, err := a.remote.Complete(ctx, question)
		switch {
		case err != nil:
			a.logger.Warn("remote provider failed, using built-in answers", "provider", a.remote.Name(), "err", err)
		case strings.TrimSpace(text) == "":
			a.logger.Warn("remote provider returned an empty answer, using built-in answers", "provider", a.remote.Name())
		default:
			a.cache.Add(key, text)
			return Answer{Text: text, Provider: a.remote.Name()}, nil
		}

		text, _ = a.local.Complete(ctx, question)
		return Answer{Text: text, Provider: a.local.Name(), Fallback: true}, nil
	}

	text, _ := a.local.Complete(ctx, question)
	return Answer{Text: text, Provider: a.local.Name()}, nil
}
