package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/config"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY",
		"OPENAI_BASE_URL", "ANTHROPIC_BASE_URL", "GEMINI_BASE_URL",
		"LITELLM_PROXY_URL", "PORTKEY_BASE_URL", "HELICONE_BASE_URL",
		"MODEL",
	} {
		t.Setenv(name, "")
	}
}

func TestDetectEndpointDefaults(t *testing.T) {
	clearProviderEnv(t)

	e := config.DetectEndpoint("")
	require.Equal(t, config.ProviderOpenAI, e.Provider)
	require.Equal(t, "https://api.openai.com", e.BaseURL)
	require.Equal(t, "gpt-3.5-turbo", e.Model)
	require.False(t, e.Valid())
	require.Contains(t, e.MissingVars(), "OPENAI_API_KEY")
}

func TestDetectEndpointAutoDetectsAnthropic(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "key-123")

	e := config.DetectEndpoint("")
	require.Equal(t, config.ProviderAnthropic, e.Provider)
	require.Equal(t, "https://api.anthropic.com", e.BaseURL)
	require.Equal(t, "claude-3-5-sonnet-20241022", e.Model)
	require.True(t, e.Valid())
}

func TestDetectEndpointGatewayOverride(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "key-123")
	t.Setenv("LITELLM_PROXY_URL", "http://localhost:4000")

	e := config.DetectEndpoint(config.ProviderOpenAI)
	require.Equal(t, "http://localhost:4000", e.BaseURL)
}

func TestDetectEndpointModelEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "key-123")
	t.Setenv("MODEL", "gpt-4o")

	e := config.DetectEndpoint(config.ProviderOpenAI)
	require.Equal(t, "gpt-4o", e.Model)
}

func TestParseProvider(t *testing.T) {
	p, err := config.ParseProvider("anthropic")
	require.NoError(t, err)
	require.Equal(t, config.ProviderAnthropic, p)

	p, err = config.ParseProvider("")
	require.NoError(t, err)
	require.Empty(t, p)

	_, err = config.ParseProvider("cohere")
	require.Error(t, err)
}
