package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Shot-your-pet/publications-groupe9/internal/domains/post/model"
	"github.com/Shot-your-pet/publications-groupe9/internal/domains/post/repository"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type postService struct {
	postRepo     repository.PostRepository
	challenges   ChallengeProvider
	idGen        IDGenerator
	publisher    EventPublisher
	orphanQueue  OrphanQueue
	time         TimeProvider
	datacenterID int64
}

func NewPostService(
	postRepo repository.PostRepository,
	challenges ChallengeProvider,
	idGen IDGenerator,
	publisher EventPublisher,
	orphanQueue OrphanQueue,
	timeProvider TimeProvider,
	datacenterID int64,
) PostService {
	return &postService{
		postRepo:     postRepo,
		challenges:   challenges,
		idGen:        idGen,
		publisher:    publisher,
		orphanQueue:  orphanQueue,
		time:         timeProvider,
		datacenterID: datacenterID,
	}
}

// =====================================================
// CREATE POST
// =====================================================

// CreatePostForUser runs the store-then-publish protocol:
//
//	absent -> persisted -> (published | compensated-deleted)
//
// The existence check and the insert are not one transaction; two
// concurrent requests for the same (user, challenge) pair can both pass the
// check. The unique constraint on (author_id, challenge_id) is the backstop
// and surfaces through Save as ErrChallengeAlreadyCompleted.
func (s *postService) CreatePostForUser(
	ctx context.Context,
	userID uuid.UUID,
	content *string,
	imageID int64,
) (*model.Post, error) {
	// Step 1: resolve the active challenge
	currentChallenge, err := s.challenges.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current challenge: %w", err)
	}
	if currentChallenge == nil {
		return nil, model.NewNoActiveChallengeError()
	}

	// Step 2: at most one post per (author, challenge)
	exists, err := s.postRepo.ExistsByAuthorAndChallenge(ctx, userID, currentChallenge.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing post: %w", err)
	}
	if exists {
		return nil, model.NewChallengeCompletedError()
	}

	// Steps 3-4: allocate the id and capture the publication instant
	post := &model.Post{
		ID:          s.idGen.NextID(s.datacenterID),
		AuthorID:    userID,
		ChallengeID: currentChallenge.ID,
		Content:     content,
		PublishedAt: s.time.Now(),
		ImageID:     imageID,
	}

	// Step 5: persist; storage failures are fatal to the request
	if err := s.postRepo.Save(ctx, post); err != nil {
		if errors.Is(err, model.ErrChallengeAlreadyCompleted) {
			return nil, model.NewChallengeCompletedError()
		}
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	// Step 6: announce on the bus, synchronously
	if err := s.publisher.PublishPostCreated(ctx, post); err != nil {
		// Step 7: compensating delete, then surface the publish failure
		s.compensate(ctx, post.ID, err)
		return nil, model.NewPublishFailedError(err)
	}

	return post, nil
}

// compensate rolls back the stored post after a failed publish. The delete
// is best-effort and never retried in-request; when it fails too, the
// orphan is logged distinctly and handed to the cleanup queue so it can be
// reconciled out-of-band.
func (s *postService) compensate(ctx context.Context, postID int64, publishErr error) {
	err := s.postRepo.DeleteByID(ctx, postID)
	if err == nil {
		log.Warn().
			Int64("post_id", postID).
			Err(publishErr).
			Msg("Publish failed, post rolled back")
		return
	}

	log.Error().
		Int64("post_id", postID).
		AnErr("publish_error", publishErr).
		AnErr("delete_error", err).
		Str("error_code", model.ErrCodeCompensationFailed).
		Msg("Compensating delete failed, orphaned post left in store")

	if enqErr := s.orphanQueue.EnqueueOrphanCleanup(ctx, postID); enqErr != nil {
		log.Error().
			Int64("post_id", postID).
			Err(enqErr).
			Msg("Failed to enqueue orphan cleanup")
	}
}

// =====================================================
// READ
// =====================================================

func (s *postService) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return nil, model.NewPostNotFoundError()
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

func (s *postService) GetPublishedPosts(ctx context.Context, page, limit int) ([]*model.Post, error) {
	posts, err := s.postRepo.FindPublishedPage(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list published posts: %w", err)
	}
	return posts, nil
}

// =====================================================
// DELETE
// =====================================================

func (s *postService) RemovePost(ctx context.Context, id int64) error {
	if err := s.postRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to remove post: %w", err)
	}
	return nil
}
