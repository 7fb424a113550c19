package usecases

import (
	"strings"

	"kb-server/entities"
	"kb-server/repositories"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// CreateArticleInput is the validated payload for a new article.
type CreateArticleInput struct {
	Title string
	Body  string
	Tags  []string
}

// UpdateArticleInput is a partial update; nil means "leave unchanged".
type UpdateArticleInput struct {
	Title *string
	Body  *string
	Tags  []string
}

type ArticleUseCase struct {
	articles repositories.ArticleRepository
}

func NewArticleUseCase(articles repositories.ArticleRepository) *ArticleUseCase {
	return &ArticleUseCase{articles: articles}
}

// Create persists a new article for the author, dropping blank tags.
func (uc *ArticleUseCase) Create(authorID string, in CreateArticleInput) (*entities.Article, error) {
	article := &entities.Article{
		Title:    in.Title,
		Body:     in.Body,
		Tags:     sanitizeTags(in.Tags),
		AuthorID: authorID,
	}

	if err := uc.articles.Create(article); err != nil {
		return nil, err
	}
	return article, nil
}

// GetByID loads an article scoped to its owner. A row owned by someone
// else is indistinguishable from a missing one.
func (uc *ArticleUseCase) GetByID(id, authorID string) (*entities.Article, error) {
	article, err := uc.articles.FindByID(id, authorID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, NotFound("Article not found or you do not have permission to access it")
	}
	return article, nil
}

// List returns the author's articles, newest first, with pagination
// clamped to sane bounds.
func (uc *ArticleUseCase) List(authorID string, filters repositories.ArticleFilters) (*repositories.PaginatedArticles, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = defaultPageSize
	}
	if filters.Limit > maxPageSize {
		filters.Limit = maxPageSize
	}

	return uc.articles.FindByAuthor(authorID, filters)
}

// Update writes the supplied fields, then re-reads the full record.
func (uc *ArticleUseCase) Update(id, authorID string, in UpdateArticleInput) (*entities.Article, error) {
	update := repositories.ArticleUpdate{
		Title: in.Title,
		Body:  in.Body,
	}
	if in.Tags != nil {
		update.Tags = sanitizeTags(in.Tags)
	}

	affected, err := uc.articles.Update(id, authorID, update)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, NotFound("Article not found or you do not have permission to update it")
	}

	return uc.GetByID(id, authorID)
}

// Delete removes the article if the caller owns it.
func (uc *ArticleUseCase) Delete(id, authorID string) error {
	affected, err := uc.articles.Delete(id, authorID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NotFound("Article not found or you do not have permission to delete it")
	}
	return nil
}

// sanitizeTags drops empty and whitespace-only tags, keeping surviving
// values verbatim.
func sanitizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) != "" {
			out = append(out, tag)
		}
	}
	return out
}
