package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Shot-your-pet/publications-groupe9/internal/domains/post/model"
)

// PostRepository is the durable storage port for posts.
type PostRepository interface {
	// Save appends a new post. It returns
	// model.ErrChallengeAlreadyCompleted when the (author_id, challenge_id)
	// uniqueness backstop rejects the row.
	Save(ctx context.Context, post *model.Post) error

	FindByID(ctx context.Context, id int64) (*model.Post, error)

	// FindPublishedPage returns the posts carrying an image, ordered by id
	// descending (ids are time-sorted, so newest first).
	FindPublishedPage(ctx context.Context, page, limit int) ([]*model.Post, error)

	ExistsByAuthorAndChallenge(ctx context.Context, authorID, challengeID uuid.UUID) (bool, error)

	DeleteByID(ctx context.Context, id int64) error
}
