// Package agent implements the completion relay and the conversation
// augmentation for the SOLID reviewer.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"copilot-agent/pkg/models"
	"copilot-agent/pkg/utils"
)

// DefaultCompletionURL is the GitHub Copilot chat-completions endpoint.
const DefaultCompletionURL = "https://api.githubcopilot.com/chat/completions"

// ErrUpstreamStatus is wrapped into errors returned when the completion API
// answers with a failure status before streaming begins.
var ErrUpstreamStatus = errors.New("upstream completion API returned failure status")

// Service relays completion requests to the upstream streaming API. It does
// not parse, buffer or transform the streamed payload.
type Service struct {
	completionURL string
	httpClient    *http.Client
}

// NewService creates a completion relay. An empty completionURL selects the
// GitHub Copilot endpoint; tests point it at a local server.
func NewService(completionURL string) *Service {
	if completionURL == "" {
		completionURL = DefaultCompletionURL
	}
	return &Service{
		completionURL: completionURL,
		httpClient:    &http.Client{},
	}
}

// Complete issues one streamed completion request on behalf of the user the
// token was delegated for and hands back the raw response body. The caller
// owns the returned reader and must close it; bytes read from it are the
// upstream's own streaming protocol, untouched.
//
// An error is returned only for failures before streaming begins (transport
// error or non-2xx status). Once the reader is handed over, a mid-stream
// drop simply ends it; there is no replay once bytes have been forwarded.
func (s *Service) Complete(ctx context.Context, token string, req models.CompletionRequest) (io.ReadCloser, error) {
	req.Stream = true

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.completionURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create completion request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("User-Agent", "copilot-agent")
	httpReq.Header.Set("X-Request-ID", utils.NewRequestID())

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s: %s", ErrUpstreamStatus, resp.Status, string(errBody))
	}

	return resp.Body, nil
}

// BuildCompletionRequest lifts the caller's generation parameters onto the
// augmented conversation. Absent parameters stay absent; the upstream
// service is authoritative for defaults.
func BuildCompletionRequest(chat *models.ChatRequest, turns []models.Turn) models.CompletionRequest {
	return models.CompletionRequest{
		Messages:    turns,
		Temperature: chat.Temperature,
		TopP:        chat.TopP,
		MaxTokens:   chat.MaxTokens,
		Stream:      true,
	}
}
