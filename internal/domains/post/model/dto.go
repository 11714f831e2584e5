package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreatePostRequest is the body of POST /posts. The challenge is resolved
// server side; the image id comes from the media service upload that
// precedes the call.
type CreatePostRequest struct {
	Content *string `json:"content"`
	ImageID int64   `json:"image_id" binding:"required"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.When(r.Content != nil,
				validation.Length(0, 500).Error("content must be at most 500 characters"),
			),
		),
		validation.Field(&r.ImageID,
			validation.Required.Error("image_id is required"),
			validation.Min(int64(1)).Error("image_id must be positive"),
		),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

// PostResponse mirrors the external naming convention used across the
// Shot Your Pet APIs (snake_case, published_at).
type PostResponse struct {
	ID          int64     `json:"id"`
	AuthorID    uuid.UUID `json:"author_id"`
	ChallengeID uuid.UUID `json:"challenge_id"`
	Content     *string   `json:"content"`
	PublishedAt time.Time `json:"published_at"`
	ImageID     int64     `json:"image_id"`
}

func NewPostResponse(p *Post) *PostResponse {
	return &PostResponse{
		ID:          p.ID,
		AuthorID:    p.AuthorID,
		ChallengeID: p.ChallengeID,
		Content:     p.Content,
		PublishedAt: p.PublishedAt,
		ImageID:     p.ImageID,
	}
}

func NewPostListResponse(posts []*Post) []*PostResponse {
	out := make([]*PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostResponse(p))
	}
	return out
}
