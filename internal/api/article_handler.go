package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/metrics"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/service"
	"github.com/news-api/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// ListArticles handles GET /api/articles
// Query: topic, sort_by, order, limit, p
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	raw := validation.FlattenQuery(c.Request.URL.Query())

	page, err := h.services.Article.ListArticles(c.Request.Context(), raw)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	metrics.RecordListing(len(page.Articles))
	c.JSON(http.StatusOK, page)
}

// GetArticle handles GET /api/articles/:article_id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := validation.ParseID("article_id", c.Param("article_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	article, err := h.services.Article.GetArticle(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// CreateArticle handles POST /api/articles
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req models.NewArticle
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	article, err := h.services.Article.CreateArticle(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// UpdateVotes handles PATCH /api/articles/:article_id
func (h *ArticleHandler) UpdateVotes(c *gin.Context) {
	id, err := validation.ParseID("article_id", c.Param("article_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.VoteUpdate
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	article, err := h.services.Article.UpdateVotes(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updatedArticle": article})
}

// DeleteArticle handles DELETE /api/articles/:article_id
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, err := validation.ParseID("article_id", c.Param("article_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.services.Article.DeleteArticle(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
