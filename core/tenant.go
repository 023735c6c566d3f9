package core

import "fmt"

// TenantKey is the (user id, project folder) pair scoping every retrieval
// and every memory lookup. It is immutable per request. Every stored chunk
// and every retrieved candidate must carry this pair in its metadata;
// cross-tenant leakage is a correctness violation.
type TenantKey struct {
	UserID        string `json:"user_id"`
	ProjectFolder string `json:"project_folder"`
}

// Validate reports whether both components of the key are present.
func (t TenantKey) Validate() error {
	if t.UserID == "" {
		return ErrMissingUserID
	}
	if t.ProjectFolder == "" {
		return ErrMissingProjectFolder
	}
	return nil
}

// String renders the key in "user/project" form for log scoping.
func (t TenantKey) String() string {
	return fmt.Sprintf("%s/%s", t.UserID, t.ProjectFolder)
}

// Matches reports whether the given chunk metadata belongs to this tenant.
func (t TenantKey) Matches(meta ChunkMetadata) bool {
	return meta.UserID == t.UserID && meta.ProjectFolder == t.ProjectFolder
}
