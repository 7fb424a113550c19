package usecases

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"kb-server/repositories"
)

// SummaryClient produces a short summary of an article via an external
// language-model API.
type SummaryClient interface {
	Summarize(ctx context.Context, title, body string) (string, error)
}

type SummarizeUseCase struct {
	articles repositories.ArticleRepository
	client   SummaryClient
	log      *logrus.Logger
}

func NewSummarizeUseCase(articles repositories.ArticleRepository, client SummaryClient, log *logrus.Logger) *SummarizeUseCase {
	return &SummarizeUseCase{
		articles: articles,
		client:   client,
		log:      log,
	}
}

// Summarize returns the article's summary, computing and persisting it on
// first call. An upstream failure degrades to a local heuristic instead of
// surfacing; a stored summary short-circuits without touching the upstream
// at all, even if the content changed since.
func (uc *SummarizeUseCase) Summarize(ctx context.Context, articleID, userID string) (string, error) {
	article, err := uc.articles.FindByID(articleID, userID)
	if err != nil {
		return "", err
	}
	if article == nil {
		return "", NotFound("Article not found or you do not have permission to access it")
	}

	if article.Summary != nil && *article.Summary != "" {
		return *article.Summary, nil
	}

	summary, err := uc.client.Summarize(ctx, article.Title, article.Body)
	if err != nil {
		uc.log.WithError(err).Warn("summarization API failed, using fallback summary")
		summary = fallbackSummary(article.Title, article.Body)
	}

	if err := uc.articles.UpdateSummary(articleID, summary); err != nil {
		return "", err
	}

	return summary, nil
}

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]+`)

// fallbackSummary takes the first two sentence-terminated spans of the
// body, or a fixed templated sentence when they are too short to stand
// alone. Spans are joined as matched, so interior whitespace survives;
// only the ends are trimmed.
func fallbackSummary(title, body string) string {
	sentences := sentenceRe.FindAllString(body, 2)
	joined := strings.TrimSpace(strings.Join(sentences, " "))
	if len(joined) > 20 {
		return joined
	}

	return fmt.Sprintf("This article titled %q provides insights and information on the topic. "+
		"The content covers key concepts and important details relevant to the subject matter discussed.", title)
}
