// Package utils provides small helpers shared across the relay.
package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// GetEnvWithDefault retrieves an environment variable or returns a default
// value if not set.
//
// Parameters:
//   - name: The name of the environment variable
//   - defaultValue: The default value to return if the environment variable is not set
//
// Returns the value of the environment variable, or the default value if not set.
func GetEnvWithDefault(name, defaultValue string) string {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}
	return value
}

// MaskToken redacts a credential for logging, keeping just enough of the
// prefix and suffix to correlate log lines.
//
// Parameters:
//   - token: The credential to mask
//
// Returns the masked form, or "(empty)" for an empty credential.
func MaskToken(token string) string {
	if token == "" {
		return "(empty)"
	}
	if len(token) < 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// NewRequestID generates a unique identifier for an upstream API call,
// combining a timestamp with a random suffix so IDs sort chronologically.
func NewRequestID() string {
	return fmt.Sprintf("%s-%s", time.Now().UTC().Format("20060102T150405.000Z"), uuid.New().String()[:8])
}
