package core

import "context"

// AssistantService is an external text-completion collaborator.
// Callers must treat it as best-effort and substitute a safe fallback on failure.
type AssistantService interface {
	Chat(ctx context.Context, message, userContext, additionalContext string) (string, error)
}
