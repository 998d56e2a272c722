package api

import (
	"net/http"
	"strconv"

	"github.com/blog-store-api/internal/models"
	"github.com/blog-store-api/internal/service"
	"github.com/gin-gonic/gin"
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

// ListArticles handles GET /v1/articles
// Non-numeric paging and filter values are treated as absent.
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	includeAll, _ := strconv.ParseBool(c.Query("includeAllStatuses"))
	q := models.ArticleQuery{
		CategoryID:         queryInt(c, "categoryId"),
		TagID:              queryInt(c, "tagId"),
		Status:             c.Query("status"),
		IncludeAllStatuses: includeAll,
		Page:               queryInt(c, "page"),
		PageSize:           queryInt(c, "pageSize"),
	}
	if q.Status != "" && !models.ValidStatuses[q.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: draft, published"})
		return
	}

	c.JSON(http.StatusOK, h.services.Article.ListArticles(c.Request.Context(), q))
}

// GetArticle handles GET /v1/articles/:id[?format=html]
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	article, err := h.services.Article.GetArticle(c.Request.Context(), id, c.Query("format") == "html")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// CreateArticle handles POST /v1/articles
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.services.Article.CreateArticle(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// UpdateArticle handles PUT /v1/articles/:id
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.services.Article.UpdateArticle(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// DeleteArticle handles DELETE /v1/articles/:id
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.services.Article.DeleteArticle(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateArticleViews handles POST /v1/articles/:id/views
func (h *ArticleHandler) UpdateArticleViews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	article, err := h.services.Article.UpdateArticleViews(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": article.ID, "viewCount": article.ViewCount})
}
