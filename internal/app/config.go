package app

import (
	"os"

	"copilot-agent/pkg/utils"
)

// Config holds everything the relay reads from the environment. It is
// loaded once at process start and passed by reference; nothing re-reads
// the environment afterwards.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string
	// LogMode selects the request presentation mode (quiet, compact, full).
	LogMode string
	// GitHubAPIURL is the identity API host. Empty selects api.github.com.
	GitHubAPIURL string
	// CompletionURL is the upstream chat-completions endpoint. Empty
	// selects the GitHub Copilot endpoint.
	CompletionURL string
	// SessionSecret enables the relay session gate when non-empty.
	SessionSecret string
	// DisableAuth bypasses the session gate regardless of SessionSecret.
	DisableAuth bool
	// StripeAPIKey and StripeSubscriptionItem enable usage metering when
	// both are non-empty.
	StripeAPIKey           string
	StripeSubscriptionItem string
}

// ConfigFromEnv builds the process configuration from environment
// variables, applying defaults where unset.
func ConfigFromEnv() *Config {
	disableAuth := os.Getenv("DISABLE_AUTH")

	return &Config{
		Port:                   utils.GetEnvWithDefault("PORT", "3000"),
		LogMode:                utils.GetEnvWithDefault("LOG_MODE", "compact"),
		GitHubAPIURL:           os.Getenv("GITHUB_API_URL"),
		CompletionURL:          os.Getenv("COPILOT_COMPLETION_URL"),
		SessionSecret:          os.Getenv("RELAY_SESSION_SECRET"),
		DisableAuth:            disableAuth == "true" || disableAuth == "1",
		StripeAPIKey:           os.Getenv("STRIPE_API_KEY"),
		StripeSubscriptionItem: os.Getenv("STRIPE_SUBSCRIPTION_ITEM"),
	}
}
