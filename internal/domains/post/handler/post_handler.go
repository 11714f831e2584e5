package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shot-your-pet/publications-groupe9/internal/domains/post/model"
	"github.com/Shot-your-pet/publications-groupe9/internal/domains/post/service"
	"github.com/Shot-your-pet/publications-groupe9/internal/shared/response"
)

// =====================================================
// POST HANDLER
// =====================================================

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// getUserID extracts the authenticated user id set by the auth middleware.
func getUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// CreatePost publishes a post for the active daily challenge
// POST /api/v1/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	post, err := h.postService.CreatePostForUser(c.Request.Context(), userID, req.Content, req.ImageID)
	if err != nil {
		statusCode, errCode := mapPostError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, model.NewPostResponse(post))
}

// GetPost returns a single post
// GET /api/v1/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		statusCode, errCode := mapPostError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, model.NewPostResponse(post))
}

// ListPublishedPosts returns a page of published posts, newest first
// GET /api/v1/posts?page=0&limit=20
func (h *PostHandler) ListPublishedPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		response.BadRequest(c, "invalid page")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		response.BadRequest(c, "invalid limit")
		return
	}

	posts, err := h.postService.GetPublishedPosts(c.Request.Context(), page, limit)
	if err != nil {
		response.InternalServerError(c, "failed to list posts")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, model.NewPostListResponse(posts), &response.Meta{
		Page:  page,
		Limit: limit,
	})
}

// mapPostError translates workflow failures to HTTP status codes.
func mapPostError(err error) (int, string) {
	var postErr *model.PostError
	if !errors.As(err, &postErr) {
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}

	switch postErr.Code {
	case model.ErrCodeNoActiveChallenge:
		return http.StatusNotFound, postErr.Code
	case model.ErrCodeChallengeCompleted:
		return http.StatusConflict, postErr.Code
	case model.ErrCodePostNotFound:
		return http.StatusNotFound, postErr.Code
	case model.ErrCodePublishFailed:
		return http.StatusServiceUnavailable, postErr.Code
	default:
		return http.StatusInternalServerError, postErr.Code
	}
}
