package testutil

import (
	"fmt"

	"github.com/hupe1980/ragmesh/core"
)

// Candidate builds a retrieval candidate carrying the tenant's metadata.
// The source path is derived from the filename in the ingestion layout.
func Candidate(id string, tenant core.TenantKey, text string, vectorScore float64, filename string) core.Candidate {
	return core.Candidate{
		ID:   id,
		Text: text,
		Metadata: core.ChunkMetadata{
			UserID:        tenant.UserID,
			ProjectFolder: tenant.ProjectFolder,
			Filename:      filename,
			Source:        fmt.Sprintf("users/%s/%s/%s", tenant.UserID, tenant.ProjectFolder, filename),
		},
		VectorScore: vectorScore,
	}
}

// Turns builds an alternating user/assistant history of n round trips.
func Turns(n int) []core.Message {
	msgs := make([]core.Message, 0, 2*n)
	for i := 0; i < n; i++ {
		msgs = append(msgs,
			core.NewMessage(core.RoleUser, fmt.Sprintf("question %d", i+1)),
			core.NewMessage(core.RoleAssistant, fmt.Sprintf("answer %d", i+1)),
		)
	}
	return msgs
}
