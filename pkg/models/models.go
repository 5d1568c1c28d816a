// Package models defines the wire types shared by the agent relay: the
// inbound chat payload sent by the Copilot platform, the outbound completion
// payload sent upstream, and the identity resolved for the acting user.
package models

import (
	"encoding/json"
	"fmt"
)

// Turn is one message in a conversation. Role is an open string in practice;
// the platform sends "system", "user" and "assistant".
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	// CopilotReferences carries the structured context the client attached
	// to this turn. The relay forwards them verbatim; only the log
	// presenter looks inside.
	CopilotReferences []Reference `json:"copilot_references,omitempty"`
}

// Reference is a structured contextual attachment to a Turn. Data is a
// tagged union keyed by Type; use Payload to decode it.
type Reference struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	IsImplicit bool            `json:"is_implicit"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// Reference discriminator values.
const (
	ReferenceTypeRepository = "repository"
	ReferenceTypeFile       = "file"
	ReferenceTypeSelection  = "selection"
)

// RepositoryData is the payload of a "repository" reference.
type RepositoryData struct {
	Name       string `json:"name"`
	OwnerLogin string `json:"ownerLogin"`
	Visibility string `json:"visibility,omitempty"`
}

// FileData is the payload of a "file" reference.
type FileData struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
	Content  string `json:"content,omitempty"`
}

// Position is a cursor location inside a file.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// SelectionData is the payload of a "selection" reference.
type SelectionData struct {
	Start   Position `json:"start"`
	End     Position `json:"end"`
	Content string   `json:"content,omitempty"`
}

// Payload decodes the reference's Data according to its Type. It returns
// *RepositoryData, *FileData or *SelectionData for the known discriminators
// and an error for anything else, so callers that branch on type stay
// exhaustive.
func (r Reference) Payload() (interface{}, error) {
	switch r.Type {
	case ReferenceTypeRepository:
		var data RepositoryData
		if err := json.Unmarshal(r.Data, &data); err != nil {
			return nil, fmt.Errorf("decoding repository reference %q: %w", r.ID, err)
		}
		return &data, nil
	case ReferenceTypeFile:
		var data FileData
		if err := json.Unmarshal(r.Data, &data); err != nil {
			return nil, fmt.Errorf("decoding file reference %q: %w", r.ID, err)
		}
		return &data, nil
	case ReferenceTypeSelection:
		var data SelectionData
		if err := json.Unmarshal(r.Data, &data); err != nil {
			return nil, fmt.Errorf("decoding selection reference %q: %w", r.ID, err)
		}
		return &data, nil
	default:
		return nil, fmt.Errorf("unknown reference type %q", r.Type)
	}
}

// ChatRequest is the body of POST / as sent by the Copilot platform.
// Generation parameters are opaque to the relay: pointers so that absent
// fields stay absent upstream, never defaulted or validated here.
type ChatRequest struct {
	Messages        []Turn   `json:"messages"`
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"top_p,omitempty"`
	MaxTokens       *int     `json:"max_tokens,omitempty"`
	CopilotThreadID string   `json:"copilot_thread_id,omitempty"`
	Agent           string   `json:"agent,omitempty"`
}

// CompletionRequest is the body the relay posts to the upstream
// chat-completions endpoint. Stream is always true.
type CompletionRequest struct {
	Messages    []Turn   `json:"messages"`
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Stream      bool     `json:"stream"`
}

// Identity is the acting user as resolved from the identity API. It lives
// for one request and is used only to build personalization text.
type Identity struct {
	Login string `json:"login"`
}
