package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shot-your-pet/publications-groupe9/internal/domains/challenge"
	"github.com/Shot-your-pet/publications-groupe9/internal/domains/post/model"
)

// =====================================================
// FAKES
// =====================================================

type fakeRepo struct {
	existing    bool
	existsErr   error
	saveErr     error
	deleteErr   error
	findResult  *model.Post
	findErr     error
	pageResult  []*model.Post
	pageErr     error
	existsCalls int
	saved       []*model.Post
	deleted     []int64
	pageArgs    [2]int
}

func (r *fakeRepo) Save(_ context.Context, post *model.Post) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, post)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, _ int64) (*model.Post, error) {
	return r.findResult, r.findErr
}

func (r *fakeRepo) FindPublishedPage(_ context.Context, page, limit int) ([]*model.Post, error) {
	r.pageArgs = [2]int{page, limit}
	return r.pageResult, r.pageErr
}

func (r *fakeRepo) ExistsByAuthorAndChallenge(_ context.Context, _, _ uuid.UUID) (bool, error) {
	r.existsCalls++
	return r.existing, r.existsErr
}

func (r *fakeRepo) DeleteByID(_ context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	return r.deleteErr
}

type fakeChallenges struct {
	current *challenge.DailyChallenge
	err     error
}

func (c *fakeChallenges) Current(_ context.Context) (*challenge.DailyChallenge, error) {
	return c.current, c.err
}

type fakeIDGen struct {
	next        int64
	datacenters []int64
}

func (g *fakeIDGen) NextID(datacenterID int64) int64 {
	g.datacenters = append(g.datacenters, datacenterID)
	return g.next
}

type fakePublisher struct {
	err       error
	published []*model.Post
}

func (p *fakePublisher) PublishPostCreated(_ context.Context, post *model.Post) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, post)
	return nil
}

type fakeOrphanQueue struct {
	err      error
	enqueued []int64
}

func (q *fakeOrphanQueue) EnqueueOrphanCleanup(_ context.Context, postID int64) error {
	q.enqueued = append(q.enqueued, postID)
	return q.err
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

// =====================================================
// FIXTURE
// =====================================================

type fixture struct {
	repo       *fakeRepo
	challenges *fakeChallenges
	idGen      *fakeIDGen
	publisher  *fakePublisher
	queue      *fakeOrphanQueue
	now        time.Time
	svc        PostService
}

func newFixture() *fixture {
	now := time.Date(2025, 3, 12, 14, 3, 2, 0, time.UTC)
	f := &fixture{
		repo: &fakeRepo{},
		challenges: &fakeChallenges{
			current: &challenge.DailyChallenge{
				ID:        uuid.New(),
				StartDate: now.Add(-time.Hour),
				EndDate:   now.Add(time.Hour),
				Challenge: challenge.Challenge{Title: "foo", Description: "bar"},
			},
		},
		idGen:     &fakeIDGen{next: 125},
		publisher: &fakePublisher{},
		queue:     &fakeOrphanQueue{},
		now:       now,
	}
	f.svc = NewPostService(f.repo, f.challenges, f.idGen, f.publisher, f.queue, fixedTime{now}, 0)
	return f
}

func strPtr(s string) *string { return &s }

// =====================================================
// CREATE
// =====================================================

func TestCreatePostForUser_Success(t *testing.T) {
	f := newFixture()
	userID := uuid.New()

	post, err := f.svc.CreatePostForUser(context.Background(), userID, strPtr("hello"), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(125), post.ID)
	assert.Equal(t, userID, post.AuthorID)
	assert.Equal(t, f.challenges.current.ID, post.ChallengeID)
	assert.Equal(t, "hello", *post.Content)
	assert.Equal(t, f.now, post.PublishedAt)
	assert.Equal(t, int64(42), post.ImageID)

	require.Len(t, f.repo.saved, 1)
	assert.Equal(t, post, f.repo.saved[0])
	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, post, f.publisher.published[0])
	assert.Empty(t, f.repo.deleted)
}

func TestCreatePostForUser_WithoutContent(t *testing.T) {
	f := newFixture()

	post, err := f.svc.CreatePostForUser(context.Background(), uuid.New(), nil, 7)

	require.NoError(t, err)
	assert.Nil(t, post.Content)
	require.Len(t, f.repo.saved, 1)
}

func TestCreatePostForUser_UsesConfiguredDatacenter(t *testing.T) {
	f := newFixture()
	f.svc = NewPostService(f.repo, f.challenges, f.idGen, f.publisher, f.queue, fixedTime{f.now}, 3)

	_, err := f.svc.CreatePostForUser(context.Background(), uuid.New(), nil, 7)

	require.NoError(t, err)
	assert.Equal(t, []int64{3}, f.idGen.datacenters)
}

func TestCreatePostForUser_NoActiveChallenge(t *testing.T) {
	f := newFixture()
	f.challenges.current = nil

	_, err := f.svc.CreatePostForUser(context.Background(), uuid.New(), strPtr("hello"), 42)

	require.ErrorIs(t, err, model.ErrNoActiveChallenge)
	assert.Zero(t, f.repo.existsCalls, "store must not be touched")
	assert.Empty(t, f.repo.saved)
	assert.Empty(t, f.publisher.published)
}

func TestCreatePostForUser_ChallengeFetchError(t *testing.T) {
	f := newFixture()
	f.challenges.current = nil
	f.challenges.err = errors.New("bus timeout")

	_, err := f.svc.CreatePostForUser(context.Background(), uuid.New(), nil, 42)

	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNoActiveChallenge)
	assert.Empty(t, f.repo.saved)
}

func TestCreatePostForUser_AlreadyCompleted(t *testing.T) {
	f := newFixture()
	f.repo.existing = true

	_, err := f.svc.CreatePostForUser(context.Background(), uuid.New(), strPtr("hello"), 42)

	require.ErrorIs(t, err, model.ErrChallengeAlreadyCompleted)
	assert.Empty(t, f.repo.saved, "save must not be called")
	assert.Empty(t, f.publisher.published, "publish must not be called")
}

func TestCreatePostForUser_UniqueConstraintBackstop(t *testing.T) {
	f := newFixture()
	// Both racers passed the existence check; the second insert hits the
	// DB constraint.
	f.repo.saveErr = model.ErrChallengeAlreadyCompleted

	_, err := f.svc.CreatePostForUser(context.Background(), uuid.New(), nil, 42)

	require.ErrorIs(t, err, model.ErrChallengeAlreadyCompleted)
	var postErr *model.PostError
	require.ErrorAs(t, err, &postErr)
	assert.Equal(t, model.ErrCodeChallengeCompleted, postErr.Code)
}

func TestCreatePostForUser_StorageFailureIsFatal(t *testing.T) {
	f := newFixture()
	f.repo.saveErr = errors.New("connection reset")

	_, err := f.svc.CreatePostForUser(context.Background(), uuid.New(), nil, 42)

	require.Error(t, err)
	var postErr *model.PostError
	assert.False(t, errors.As(err, &postErr), "storage failures are surfaced as-is")
	assert.Empty(t, f.publisher.published)
	assert.Empty(t, f.repo.deleted, "nothing to compensate")
}

// =====================================================
// COMPENSATION
// =====================================================

func TestCreatePostForUser_PublishFailureCompensates(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker unavailable")

	_, err := f.svc.CreatePostForUser(context.Background(), uuid.New(), strPtr("hello"), 42)

	require.ErrorIs(t, err, model.ErrPublishFailed)
	require.Len(t, f.repo.saved, 1)
	assert.Equal(t, []int64{125}, f.repo.deleted, "exactly one compensating delete")
	assert.Empty(t, f.queue.enqueued, "successful delete needs no reconciliation")
}

func TestCreatePostForUser_CompensationFailureStillSurfacesPublishError(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker unavailable")
	f.repo.deleteErr = errors.New("storage down too")

	_, err := f.svc.CreatePostForUser(context.Background(), uuid.New(), nil, 42)

	// The caller always receives the publish failure
	require.ErrorIs(t, err, model.ErrPublishFailed)
	assert.Equal(t, []int64{125}, f.repo.deleted, "the delete is not retried in-request")
	assert.Equal(t, []int64{125}, f.queue.enqueued, "orphan handed to the cleanup queue")
}

func TestCreatePostForUser_EnqueueFailureDoesNotMaskPublishError(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker unavailable")
	f.repo.deleteErr = errors.New("storage down too")
	f.queue.err = errors.New("redis down as well")

	_, err := f.svc.CreatePostForUser(context.Background(), uuid.New(), nil, 42)

	require.ErrorIs(t, err, model.ErrPublishFailed)
}

// =====================================================
// READ / DELETE
// =====================================================

func TestGetPost_Found(t *testing.T) {
	f := newFixture()
	want := &model.Post{ID: 99, AuthorID: uuid.New(), ChallengeID: uuid.New(), PublishedAt: f.now, ImageID: 3}
	f.repo.findResult = want

	got, err := f.svc.GetPost(context.Background(), 99)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetPost_NotFound(t *testing.T) {
	f := newFixture()
	f.repo.findErr = model.ErrPostNotFound

	_, err := f.svc.GetPost(context.Background(), 99)

	require.ErrorIs(t, err, model.ErrPostNotFound)
	var postErr *model.PostError
	require.ErrorAs(t, err, &postErr)
	assert.Equal(t, model.ErrCodePostNotFound, postErr.Code)
}

func TestGetPublishedPosts_PassesPageThrough(t *testing.T) {
	f := newFixture()
	f.repo.pageResult = []*model.Post{{ID: 2}, {ID: 1}}

	posts, err := f.svc.GetPublishedPosts(context.Background(), 1, 5)

	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, [2]int{1, 5}, f.repo.pageArgs)
}

func TestRemovePost_DelegatesToRepository(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.svc.RemovePost(context.Background(), 77))
	assert.Equal(t, []int64{77}, f.repo.deleted)
}
