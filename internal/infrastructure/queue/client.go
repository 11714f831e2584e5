package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Shot-your-pet/publications-groupe9/internal/shared"
)

// Client enqueues background tasks for cmd/worker.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

// EnqueueOrphanCleanup schedules the out-of-band deletion of an orphaned,
// unpublished post. Called when the compensating delete itself failed, so
// the first attempt is delayed to let the storage outage pass.
func (c *Client) EnqueueOrphanCleanup(ctx context.Context, postID int64) error {
	payload, err := json.Marshal(shared.OrphanPostPayload{PostID: postID})
	if err != nil {
		return fmt.Errorf("failed to marshal orphan cleanup payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeCleanupOrphanPost, payload)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue("cleanup"),
		asynq.MaxRetry(10),
		asynq.ProcessIn(1*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue orphan cleanup: %w", err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
