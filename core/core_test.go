package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantKeyValidate(t *testing.T) {
	require.NoError(t, TenantKey{UserID: "u1", ProjectFolder: "p1"}.Validate())
	assert.ErrorIs(t, TenantKey{ProjectFolder: "p1"}.Validate(), ErrMissingUserID)
	assert.ErrorIs(t, TenantKey{UserID: "u1"}.Validate(), ErrMissingProjectFolder)
}

func TestTenantKeyMatches(t *testing.T) {
	tenant := TenantKey{UserID: "u1", ProjectFolder: "p1"}
	assert.True(t, tenant.Matches(ChunkMetadata{UserID: "u1", ProjectFolder: "p1", Filename: "a.md"}))
	assert.False(t, tenant.Matches(ChunkMetadata{UserID: "u2", ProjectFolder: "p1"}))
	assert.False(t, tenant.Matches(ChunkMetadata{UserID: "u1", ProjectFolder: "other"}))
}

func TestRetrievalOutcomeGrounded(t *testing.T) {
	assert.False(t, RetrievalOutcome{}.Grounded())
	assert.True(t, RetrievalOutcome{Kept: []ScoredCandidate{{}}}.Grounded())
}

func TestKindOf(t *testing.T) {
	err := &Error{Kind: KindUnavailable, Op: "search", Err: errors.New("down")}
	wrapped := errors.New("outer: " + err.Error())
	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(wrapped))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 0, EstimateTokens(""))
	// one CJK rune weighs a full token
	assert.Equal(t, 1, EstimateTokens("界"))
}

func TestTruncateHistoryMessageLimit(t *testing.T) {
	history := []Message{
		NewMessage(RoleUser, "one"),
		NewMessage(RoleAssistant, "two"),
		NewMessage(RoleUser, "three"),
	}
	got := TruncateHistory(history, 0, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "two", got[0].Content)
	assert.Equal(t, "three", got[1].Content)
}

func TestTruncateHistoryTokenLimit(t *testing.T) {
	big := strings.Repeat("x", 400) // ~100 tokens
	history := []Message{
		NewMessage(RoleUser, big),
		NewMessage(RoleAssistant, big),
		NewMessage(RoleUser, "tail"),
	}
	got := TruncateHistory(history, 110, 0)
	require.NotEmpty(t, got)
	assert.Equal(t, "tail", got[len(got)-1].Content)
	assert.Less(t, len(got), 3)
}
