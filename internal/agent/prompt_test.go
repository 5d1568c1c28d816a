package agent

import (
	"reflect"
	"strings"
	"testing"

	"copilot-agent/pkg/models"
)

func TestAugmentOrdering(t *testing.T) {
	original := []models.Turn{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third"},
	}

	got := Augment("octocat", original)

	if len(got) != len(original)+2 {
		t.Fatalf("Augment() returned %d turns, want %d", len(got), len(original)+2)
	}

	// The personalization instruction must come first so it takes
	// precedence over the persona when the model reads system turns in
	// order.
	if got[0].Role != "system" || !strings.Contains(got[0].Content, "@octocat") {
		t.Errorf("turn 0 = %+v, want system personalization turn", got[0])
	}
	if got[1].Role != "system" || got[1].Content != personaPrompt {
		t.Errorf("turn 1 = %+v, want system persona turn", got[1])
	}

	for i, turn := range original {
		if !reflect.DeepEqual(got[i+2], turn) {
			t.Errorf("turn %d = %+v, want original %+v", i+2, got[i+2], turn)
		}
	}
}

func TestAugmentPersonalizationMentionsLoginOnce(t *testing.T) {
	got := Augment("mona", []models.Turn{{Role: "user", Content: "hi"}})

	if n := strings.Count(got[0].Content, "@mona"); n != 1 {
		t.Errorf("personalization turn mentions @mona %d times, want 1: %q", n, got[0].Content)
	}
}

func TestAugmentDoesNotMutateOriginal(t *testing.T) {
	original := []models.Turn{
		{Role: "user", Content: "keep me"},
	}

	_ = Augment("octocat", original)

	if len(original) != 1 || original[0].Content != "keep me" || original[0].Role != "user" {
		t.Errorf("original conversation mutated: %+v", original)
	}
}

func TestAugmentSingleTurn(t *testing.T) {
	got := Augment("octocat", []models.Turn{{Role: "user", Content: "only"}})

	if len(got) != 3 {
		t.Fatalf("Augment() returned %d turns, want 3", len(got))
	}
	if got[2].Content != "only" {
		t.Errorf("last turn = %+v, want the original", got[2])
	}
}
