package bus

import (
	"time"

	"github.com/google/uuid"

	"github.com/Shot-your-pet/publications-groupe9/internal/domains/post/model"
)

// Event kinds sharing the timeline subject. Downstream consumers switch on
// the envelope's type discriminator.
const (
	EventTypeNewPublication = "new_publication"
	EventTypeLike           = "like"
)

// PublicationEvent is the envelope every timeline message travels in:
//
//	{"type": "new_publication", "content": {...}}
//
// The field names and layout are the wire contract with the timeline and
// feed services; they must not change.
type PublicationEvent struct {
	Type    string `json:"type"`
	Content any    `json:"content"`
}

// PostEvent is the content payload announcing a freshly published post.
type PostEvent struct {
	ID          int64     `json:"id"`
	AuthorID    uuid.UUID `json:"author_id"`
	ChallengeID uuid.UUID `json:"challenge_id"`
	Content     *string   `json:"content"`
	PublishedAt time.Time `json:"date"`
	ImageID     int64     `json:"image_id"`
}

// LikeEvent is the content payload announcing a like. It is produced by the
// interaction service but shares this envelope and subject; the shape is
// kept here so consumers of the timeline subject have a single contract.
type LikeEvent struct {
	AuthorID uuid.UUID `json:"author_id"`
	PostID   int64     `json:"post_id"`
}

// NewPostPublicationEvent projects a stored post into its wire event.
func NewPostPublicationEvent(post *model.Post) PublicationEvent {
	return PublicationEvent{
		Type: EventTypeNewPublication,
		Content: PostEvent{
			ID:          post.ID,
			AuthorID:    post.AuthorID,
			ChallengeID: post.ChallengeID,
			Content:     post.Content,
			PublishedAt: post.PublishedAt,
			ImageID:     post.ImageID,
		},
	}
}

// NewLikePublicationEvent wraps a like into the shared envelope.
func NewLikePublicationEvent(authorID uuid.UUID, postID int64) PublicationEvent {
	return PublicationEvent{
		Type:    EventTypeLike,
		Content: LikeEvent{AuthorID: authorID, PostID: postID},
	}
}
