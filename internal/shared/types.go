package shared

// Task types processed by cmd/worker.
const (
	// TypeCleanupOrphanPost reconciles a post that was persisted, failed to
	// publish, and whose compensating delete also failed.
	TypeCleanupOrphanPost = "post:cleanup_orphan"
)

// OrphanPostPayload identifies the unpublished post left behind by a
// double failure of the publish-then-compensate protocol.
type OrphanPostPayload struct {
	PostID int64 `json:"postId"`
}
