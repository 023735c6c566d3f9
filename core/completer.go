package core

import "context"

// CompletionRequest captures one generative exchange: a system prompt,
// prior conversation turns and the new user message.
type CompletionRequest struct {
	SystemPrompt string
	History      []Message
	UserMessage  string
}

// Completion is the single explicit result shape returned by every
// Completer. Provider-specific response layouts are resolved inside the
// adapter, never probed by orchestration logic.
type Completion struct {
	Text string
}

// Completer is the generative collaborator: synchronous request/response,
// one exchange per call. Blank completion text is not an error here; the
// orchestrator substitutes a deterministic fallback for degenerate output.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}
