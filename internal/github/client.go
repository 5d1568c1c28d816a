// Package github resolves the acting user's identity against the GitHub API
// using the delegated token forwarded by the Copilot platform.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"copilot-agent/pkg/models"
)

// DefaultAPIURL is the public GitHub REST API host.
const DefaultAPIURL = "https://api.github.com"

// ErrMissingCredential is returned when identity resolution is attempted
// without a delegated token.
var ErrMissingCredential = errors.New("missing delegated credential")

// Client calls the GitHub identity API. The zero value is not usable; use
// NewClient.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient creates a GitHub API client. An empty apiURL selects the public
// GitHub host; tests point it at a local server.
func NewClient(apiURL string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{},
	}
}

// CurrentUser resolves the login of the user the token was delegated for.
// It makes exactly one outbound call per invocation and never retries; any
// failure (transport error, non-2xx status) aborts the whole request
// upstream of us, since continuing would mis-attribute the augmentation.
//
// Parameters:
//   - ctx: Request-scoped context; canceled when the inbound client disconnects
//   - token: The delegated credential from the X-GitHub-Token header
//
// Returns the resolved identity or an error.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, ErrMissingCredential
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "copilot-agent")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("identity API returned %s: %s", resp.Status, string(body))
	}

	var identity models.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("decoding identity response: %w", err)
	}
	if identity.Login == "" {
		return nil, errors.New("identity response missing login")
	}

	return &identity, nil
}
