package config

import (
	"fmt"
	"os"
	"strings"
)

// Provider names accepted by --provider and the config file.
const (
	ProviderOpenAI    = "openai-compatible"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Endpoint is a fully resolved probe target: provider, base URL, key, model.
type Endpoint struct {
	Provider string
	BaseURL  string
	APIKey   string
	Model    string
	// KeyVar is the environment variable the key was (or should be) read
	// from, for error messages.
	KeyVar string
}

// Valid reports whether the endpoint has enough configuration for a probe.
func (e Endpoint) Valid() bool {
	return e.BaseURL != "" && e.APIKey != ""
}

// MissingVars names the environment variables still needed, for the
// "set X or run interactively" error message.
func (e Endpoint) MissingVars() string {
	var missing []string
	if e.BaseURL == "" {
		missing = append(missing, baseURLVar(e.Provider))
	}
	if e.APIKey == "" {
		missing = append(missing, keyVar(e.Provider))
	}
	return strings.Join(missing, ", ")
}

// DetectEndpoint resolves the probe endpoint from the environment. An empty
// provider is auto-detected from which API key variables are set, defaulting
// to openai-compatible. For OpenAI-compatible setups, common gateway proxy
// variables (LiteLLM, Portkey, Helicone) override the base URL.
func DetectEndpoint(provider string) Endpoint {
	if provider == "" {
		provider = detectProvider()
	}

	e := Endpoint{Provider: provider, KeyVar: keyVar(provider)}
	e.APIKey = os.Getenv(e.KeyVar)
	e.Model = os.Getenv("MODEL")

	switch provider {
	case ProviderAnthropic:
		e.BaseURL = envOr("ANTHROPIC_BASE_URL", "https://api.anthropic.com")
		if e.Model == "" {
			e.Model = "claude-3-5-sonnet-20241022"
		}
	case ProviderGemini:
		e.BaseURL = envOr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
		if e.Model == "" {
			e.Model = "gemini-pro"
		}
	default:
		e.BaseURL = envOr("OPENAI_BASE_URL", "https://api.openai.com")
		for _, gatewayVar := range []string{"LITELLM_PROXY_URL", "PORTKEY_BASE_URL", "HELICONE_BASE_URL"} {
			if url := os.Getenv(gatewayVar); url != "" {
				e.BaseURL = url
				break
			}
		}
		if e.Model == "" {
			e.Model = "gpt-3.5-turbo"
		}
	}
	return e
}

func detectProvider() string {
	switch {
	case os.Getenv("OPENAI_API_KEY") != "":
		return ProviderOpenAI
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		return ProviderAnthropic
	case os.Getenv("GEMINI_API_KEY") != "":
		return ProviderGemini
	default:
		return ProviderOpenAI
	}
}

func keyVar(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

func baseURLVar(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "ANTHROPIC_BASE_URL"
	case ProviderGemini:
		return "GEMINI_BASE_URL"
	default:
		return "OPENAI_BASE_URL"
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// ValidProvider reports whether name is a recognized provider value.
func ValidProvider(name string) bool {
	switch name {
	case "", ProviderOpenAI, ProviderAnthropic, ProviderGemini:
		return true
	default:
		return false
	}
}

// ParseProvider validates a --provider flag value.
func ParseProvider(name string) (string, error) {
	if !ValidProvider(name) {
		return "", fmt.Errorf("unknown provider %q (want %s, %s, or %s)", name, ProviderOpenAI, ProviderAnthropic, ProviderGemini)
	}
	return name, nil
}
