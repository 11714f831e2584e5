package model

import (
	"time"

	"github.com/google/uuid"
)

// Post is a user publication answering a daily challenge. It is created
// once by the post service and immutable afterwards; the only deletion
// performed here is the compensating delete when the bus announcement of a
// freshly stored post fails.
type Post struct {
	ID          int64
	AuthorID    uuid.UUID
	ChallengeID uuid.UUID
	Content     *string
	PublishedAt time.Time
	ImageID     int64
}
