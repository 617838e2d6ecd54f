package httpclient

import (
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/testforge/pkg/shared/config"
)

func TestApplyHTTPClientConfigDefaults(t *testing.T) {
	cfg := applyHTTPClientConfig(nil)
	assert.Equal(t, config.DefaultRestyConfig().RetryCount, cfg.RetryCount)
	assert.Equal(t, config.DefaultRestyConfig().Timeout, cfg.Timeout)
	assert.False(t, cfg.TLSClientConfig.InsecureSkipVerify)
}

func TestApplyHTTPClientConfigOverrides(t *testing.T) {
	verify := false
	cfg := applyHTTPClientConfig(&config.HTTPClient{
		RetryCount:      4,
		Timeout:         5 * time.Second,
		TLSClientConfig: config.TLSClientConfig{Verify: &verify},
		Proxy:           config.Proxy{Host: "http://proxy.local", Port: 3128},
	})

	assert.Equal(t, 4, cfg.RetryCount)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, config.DefaultRestyConfig().RetryWaitTime, cfg.RetryWaitTime)
	assert.True(t, cfg.TLSClientConfig.InsecureSkipVerify)
	assert.Equal(t, "http://proxy.local:3128", cfg.Proxy)
}

func TestInitializeRestyClient(t *testing.T) {
	client := InitializeRestyClient(hclog.NewNullLogger(), config.Default())
	assert.NotNil(t, client)
	assert.Equal(t, config.DefaultRestyConfig().RetryCount, client.RetryCount)
}
