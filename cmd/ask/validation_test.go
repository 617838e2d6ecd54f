package ask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/pkg/shared/config"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
)

func TestValidate(t *testing.T) {
	AppConfig = config.Default()
	AppConfig.Assistant.Provider = "openai"
	AppConfig.Assistant.Model = "gpt-4o-mini"
	defer func() { AppConfig = nil }()

	question, explicit, err := validate(&RunOptions{Format: render.FormatText, Provider: "gemini"}, []string{"how", "do", "I", "scan?"})
	require.NoError(t, err)
	assert.Equal(t, "how do I scan?", question)
	assert.Equal(t, "gemini", explicit.Provider)
	assert.Equal(t, "gpt-4o-mini", explicit.Model)
	assert.Equal(t, 64, explicit.CacheSize)

	_, _, err = validate(&RunOptions{Format: render.FormatText}, []string{"  "})
	assert.EqualError(t, err, "a question must be specified")

	_, _, err = validate(&RunOptions{Format: render.FormatSARIF}, []string{"hi"})
	assert.ErrorIs(t, err, errors.ErrUnsupportedOption)
}
