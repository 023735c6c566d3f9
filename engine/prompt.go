package engine

import (
	"fmt"
	"strings"

	"github.com/hupe1980/ragmesh/core"
)

// DefaultPersona is the system prompt opening used when the caller does not
// supply one.
const DefaultPersona = "You are a creative worldbuilding assistant for writers."

// groundedInstruction closes the system prompt on the grounded path.
const groundedInstruction = "Use that context when answering the user. " +
	"Be consistent and engaging. Keep to concise answers unless asked for longer text."

// buildSystemPrompt assembles the system prompt. On the grounded path the
// kept candidates' texts are embedded verbatim, separated by blank lines, in
// ranking order. On the memory-only path the persona stands alone and the
// conversation carries itself.
func buildSystemPrompt(persona string, kept []core.ScoredCandidate) string {
	if len(kept) == 0 {
		return persona
	}
	texts := make([]string, len(kept))
	for i, c := range kept {
		texts[i] = c.Text
	}
	var sb strings.Builder
	sb.WriteString(persona)
	sb.WriteString("\nHere is some relevant context to help you answer:\n")
	sb.WriteString(strings.Join(texts, "\n\n"))
	sb.WriteString("\n\n")
	sb.WriteString(groundedInstruction)
	return sb.String()
}

// insufficientContextText is the deterministic stand-in for a blank or
// whitespace-only completion.
func insufficientContextText(tenant core.TenantKey) string {
	return fmt.Sprintf(
		"I don't have enough context about '%s' to answer that question. "+
			"Please make sure you have uploaded content for this project.",
		tenant.ProjectFolder,
	)
}
