package agent

import (
	"fmt"

	"copilot-agent/pkg/models"
)

// personaPrompt fixes the assistant's reviewing persona. It is prepended
// first so the personalization instruction ends up ahead of it: the model
// reads system turns in order and the greeting rule must take precedence.
const personaPrompt = "You are a meticulous software design reviewer. " +
	"Evaluate every piece of code the user shares against the SOLID principles " +
	"of object-oriented design: Single Responsibility, Open/Closed, Liskov " +
	"Substitution, Interface Segregation and Dependency Inversion. Name the " +
	"principle behind each remark."

// personalizationPrompt returns the instruction that makes the assistant
// open every reply by addressing the resolved user.
func personalizationPrompt(login string) string {
	return fmt.Sprintf("Start every response with the user's name, which is @%s", login)
}

// Augment returns a new conversation with the reviewer persona and the
// personalization instruction prepended, in that final order:
//
//	[personalization, persona, ...original turns]
//
// The original slice and its turns are never mutated; callers must ensure
// the conversation is non-empty before invoking.
func Augment(login string, turns []models.Turn) []models.Turn {
	augmented := make([]models.Turn, 0, len(turns)+2)
	augmented = append(augmented,
		models.Turn{Role: "system", Content: personalizationPrompt(login)},
		models.Turn{Role: "system", Content: personaPrompt},
	)
	return append(augmented, turns...)
}
