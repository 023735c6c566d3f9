package core

// EstimateTokens estimates the token count for a text using a Unicode-aware
// heuristic: ASCII characters weigh ~4 per token, non-ASCII (CJK, Cyrillic,
// emoji) ~1 per token.
func EstimateTokens(text string) int {
	weight := 0
	for _, r := range text {
		if r <= 127 {
			weight++
		} else {
			weight += 4
		}
	}
	return (weight + 3) / 4
}

// TruncateHistory trims a conversation to the given message and token
// budgets, dropping oldest messages first. The most recent messages are
// always preserved. Limits <= 0 disable the respective bound.
func TruncateHistory(history []Message, tokenLimit, messageLimit int) []Message {
	if len(history) == 0 {
		return history
	}
	if messageLimit > 0 && len(history) > messageLimit {
		history = history[len(history)-messageLimit:]
	}
	if tokenLimit <= 0 {
		return history
	}
	total := 0
	for _, msg := range history {
		total += EstimateTokens(msg.Content)
	}
	for total > tokenLimit && len(history) > 1 {
		total -= EstimateTokens(history[0].Content)
		history = history[1:]
	}
	return history
}
