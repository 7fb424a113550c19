package httpHandler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kb-server/entities"
	"kb-server/middlewares"
	"kb-server/repositories"
	"kb-server/usecases"
)

// ArticleService is what the article endpoints need from the use case layer.
type ArticleService interface {
	Create(authorID string, in usecases.CreateArticleInput) (*entities.Article, error)
	GetByID(id, authorID string) (*entities.Article, error)
	List(authorID string, filters repositories.ArticleFilters) (*repositories.PaginatedArticles, error)
	Update(id, authorID string, in usecases.UpdateArticleInput) (*entities.Article, error)
	Delete(id, authorID string) error
}

type ArticleHandler struct {
	service ArticleService
}

func NewArticleHandler(service ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

type createArticleRequest struct {
	Title string   `json:"title" binding:"required,max=200"`
	Body  string   `json:"body" binding:"required"`
	Tags  []string `json:"tags"`
}

type updateArticleRequest struct {
	Title *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Body  *string  `json:"body" binding:"omitempty,min=1"`
	Tags  []string `json:"tags"`
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req createArticleRequest
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.service.Create(middlewares.UserID(c), usecases.CreateArticleInput{
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	})
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, "Article created successfully", article)
}

// List handles GET /api/articles
func (h *ArticleHandler) List(c *gin.Context) {
	filters := repositories.ArticleFilters{
		Search: c.Query("search"),
		Tags:   splitTags(c.Query("tags")),
	}

	var fieldErrors []FieldError
	if page, ok := intQuery(c, "page"); ok {
		filters.Page = page
	} else {
		fieldErrors = append(fieldErrors, FieldError{Field: "page", Message: "Page must be a number"})
	}
	if limit, ok := intQuery(c, "limit"); ok {
		filters.Limit = limit
	} else {
		fieldErrors = append(fieldErrors, FieldError{Field: "limit", Message: "Limit must be a number"})
	}
	if len(fieldErrors) > 0 {
		validationFailed(c, fieldErrors)
		return
	}

	result, err := h.service.List(middlewares.UserID(c), filters)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "", result)
}

// Get handles GET /api/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	article, err := h.service.GetByID(id, middlewares.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "", article)
}

// Update handles PUT /api/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	var req updateArticleRequest
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.service.Update(id, middlewares.UserID(c), usecases.UpdateArticleInput{
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	})
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Article updated successfully", article)
}

// Delete handles DELETE /api/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id, middlewares.UserID(c)); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Article deleted successfully", nil)
}

// articleID validates the :id path parameter and answers 400 itself when
// it is not a canonical uuid.
func articleID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		validationFailed(c, []FieldError{{Field: "id", Message: "Invalid article ID"}})
		return "", false
	}
	return id, true
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
