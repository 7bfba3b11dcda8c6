package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/service"
	"github.com/news-api/internal/validation"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListComments handles GET /api/articles/:article_id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	articleID, err := validation.ParseID("article_id", c.Param("article_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	raw := validation.FlattenQuery(c.Request.URL.Query())
	comments, err := h.services.Comment.ListForArticle(c.Request.Context(), articleID, raw)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// AddComment handles POST /api/articles/:article_id/comments
func (h *CommentHandler) AddComment(c *gin.Context) {
	articleID, err := validation.ParseID("article_id", c.Param("article_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.NewComment
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	comment, err := h.services.Comment.AddComment(c.Request.Context(), articleID, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// UpdateVotes handles PATCH /api/comments/:comment_id
func (h *CommentHandler) UpdateVotes(c *gin.Context) {
	id, err := validation.ParseID("comment_id", c.Param("comment_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.VoteUpdate
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	comment, err := h.services.Comment.UpdateVotes(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// DeleteComment handles DELETE /api/comments/:comment_id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := validation.ParseID("comment_id", c.Param("comment_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.services.Comment.DeleteComment(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
