package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/Shot-your-pet/publications-groupe9/internal/domains/post/repository"
	"github.com/Shot-your-pet/publications-groupe9/internal/shared"
)

// CleanupOrphanHandler deletes posts that were persisted but never
// announced on the bus, and whose in-request compensating delete failed.
// Returning an error makes asynq retry with backoff.
type CleanupOrphanHandler struct {
	postRepo repository.PostRepository
}

func NewCleanupOrphanHandler(postRepo repository.PostRepository) *CleanupOrphanHandler {
	return &CleanupOrphanHandler{postRepo: postRepo}
}

func (h *CleanupOrphanHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OrphanPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal orphan payload: %w", err)
	}

	if err := h.postRepo.DeleteByID(ctx, payload.PostID); err != nil {
		log.Error().
			Int64("post_id", payload.PostID).
			Err(err).
			Msg("Orphan cleanup attempt failed")
		return err
	}

	log.Info().
		Int64("post_id", payload.PostID).
		Msg("Orphaned post reconciled")

	return nil
}
