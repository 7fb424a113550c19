package httpHandler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"kb-server/middlewares"
)

// SummarizeService is what the AI endpoint needs from the use case layer.
type SummarizeService interface {
	Summarize(ctx context.Context, articleID, userID string) (string, error)
}

type AIHandler struct {
	service SummarizeService
}

func NewAIHandler(service SummarizeService) *AIHandler {
	return &AIHandler{service: service}
}

// Summarize handles POST /api/ai/summarize/:id
func (h *AIHandler) Summarize(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	summary, err := h.service.Summarize(c.Request.Context(), id, middlewares.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Article summarized successfully", gin.H{"summary": summary})
}
