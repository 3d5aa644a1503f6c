package store

import "fmt"

// Paths builds the fixed hierarchical path scheme of the remote store.
// All application data lives under artifacts/{appID}; per-user progress is
// partitioned by user identifier, while credentials and global stats sit in
// the shared public/data subtree.
type Paths struct {
	AppID string
}

// ProgressCollection is the per-user progress subtree.
func (p Paths) ProgressCollection(userID string) string {
	return fmt.Sprintf("artifacts/%s/users/%s/progress", p.AppID, userID)
}

// ProgressDoc addresses a single progress point by its deterministic doc id.
func (p Paths) ProgressDoc(userID, docID string) string {
	return fmt.Sprintf("artifacts/%s/users/%s/progress/%s", p.AppID, userID, docID)
}

// CredentialDoc addresses a user's credential record.
func (p Paths) CredentialDoc(userID string) string {
	return fmt.Sprintf("artifacts/%s/public/data/users/%s", p.AppID, userID)
}

// GlobalStatsDoc addresses the single shared stats record.
func (p Paths) GlobalStatsDoc() string {
	return fmt.Sprintf("artifacts/%s/public/data/stats/global", p.AppID)
}
