package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Shot-your-pet/publications-groupe9/internal/domains/challenge"
	"github.com/Shot-your-pet/publications-groupe9/internal/domains/post/model"
)

// PostService is the publication workflow.
type PostService interface {
	// CreatePostForUser publishes the user's post for the currently active
	// challenge. Failures are typed *model.PostError values; a post is
	// returned only after it is both stored and announced on the bus.
	CreatePostForUser(ctx context.Context, userID uuid.UUID, content *string, imageID int64) (*model.Post, error)

	GetPost(ctx context.Context, id int64) (*model.Post, error)
	GetPublishedPosts(ctx context.Context, page, limit int) ([]*model.Post, error)
	RemovePost(ctx context.Context, id int64) error
}

// ChallengeProvider yields the currently active daily challenge, nil when
// no challenge window is open.
type ChallengeProvider interface {
	Current(ctx context.Context) (*challenge.DailyChallenge, error)
}

// IDGenerator allocates unique post identifiers.
type IDGenerator interface {
	NextID(datacenterID int64) int64
}

// EventPublisher announces a stored post on the message bus.
type EventPublisher interface {
	PublishPostCreated(ctx context.Context, post *model.Post) error
}

// OrphanQueue schedules out-of-band cleanup of posts whose compensating
// delete failed.
type OrphanQueue interface {
	EnqueueOrphanCleanup(ctx context.Context, postID int64) error
}

// TimeProvider abstracts the publication timestamp source so it can be
// fixed in tests.
type TimeProvider interface {
	Now() time.Time
}

type systemTimeProvider struct{}

func (systemTimeProvider) Now() time.Time { return time.Now().UTC() }

// SystemTimeProvider returns the wall-clock TimeProvider.
func SystemTimeProvider() TimeProvider { return systemTimeProvider{} }
