package models

import (
	"encoding/json"
	"testing"
)

func TestReferencePayload(t *testing.T) {
	tests := []struct {
		name    string
		ref     Reference
		wantErr bool
		check   func(t *testing.T, payload interface{})
	}{
		{
			name: "repository reference",
			ref: Reference{
				Type: ReferenceTypeRepository,
				ID:   "octo/spoon-knife",
				Data: json.RawMessage(`{"name":"spoon-knife","ownerLogin":"octo","visibility":"public"}`),
			},
			check: func(t *testing.T, payload interface{}) {
				data, ok := payload.(*RepositoryData)
				if !ok {
					t.Fatalf("Payload() returned %T, want *RepositoryData", payload)
				}
				if data.OwnerLogin != "octo" || data.Name != "spoon-knife" {
					t.Errorf("Payload() = %+v, want octo/spoon-knife", data)
				}
			},
		},
		{
			name: "file reference",
			ref: Reference{
				Type: ReferenceTypeFile,
				ID:   "main.go",
				Data: json.RawMessage(`{"path":"cmd/main.go","language":"go"}`),
			},
			check: func(t *testing.T, payload interface{}) {
				data, ok := payload.(*FileData)
				if !ok {
					t.Fatalf("Payload() returned %T, want *FileData", payload)
				}
				if data.Path != "cmd/main.go" || data.Language != "go" {
					t.Errorf("Payload() = %+v", data)
				}
			},
		},
		{
			name: "selection reference",
			ref: Reference{
				Type: ReferenceTypeSelection,
				ID:   "sel-1",
				Data: json.RawMessage(`{"start":{"line":1,"col":0},"end":{"line":4,"col":10},"content":"type T struct{}"}`),
			},
			check: func(t *testing.T, payload interface{}) {
				data, ok := payload.(*SelectionData)
				if !ok {
					t.Fatalf("Payload() returned %T, want *SelectionData", payload)
				}
				if data.Start.Line != 1 || data.End.Col != 10 {
					t.Errorf("Payload() = %+v", data)
				}
			},
		},
		{
			name:    "unknown type",
			ref:     Reference{Type: "workspace", ID: "x", Data: json.RawMessage(`{}`)},
			wantErr: true,
		},
		{
			name:    "malformed payload",
			ref:     Reference{Type: ReferenceTypeFile, ID: "x", Data: json.RawMessage(`{`)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := tt.ref.Payload()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Payload() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Payload() unexpected error: %v", err)
			}
			tt.check(t, payload)
		})
	}
}

func TestChatRequestParameterRoundTrip(t *testing.T) {
	// Absent generation parameters must stay absent after re-encoding; the
	// upstream service owns the defaults.
	var req ChatRequest
	if err := json.Unmarshal([]byte(`{"messages":[{"role":"user","content":"hi"}]}`), &req); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	encoded, err := json.Marshal(CompletionRequest{
		Messages:    req.Messages,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
		Stream:      true,
	})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, field := range []string{"temperature", "top_p", "max_tokens"} {
		if _, ok := decoded[field]; ok {
			t.Errorf("field %q should be absent when not supplied", field)
		}
	}
	if decoded["stream"] != true {
		t.Error("stream must always be true")
	}
}
