package repositories

import (
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"kb-server/db"
	"kb-server/entities"
)

type articlePgRepository struct {
	db db.Database
}

func NewArticlePgRepository(database db.Database) ArticleRepository {
	return &articlePgRepository{db: database}
}

func (r *articlePgRepository) Create(article *entities.Article) error {
	if err := r.db.GetDB().Create(article).Error; err != nil {
		return err
	}
	// re-read with the author join so responses carry {id, email}
	return r.db.GetDB().Preload("Author").Where("id = ?", article.ID).First(article).Error
}

func (r *articlePgRepository) FindByID(id, authorID string) (*entities.Article, error) {
	var article entities.Article
	err := r.db.GetDB().Preload("Author").
		Where("id = ? AND author_id = ?", id, authorID).
		First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articlePgRepository) FindByAuthor(authorID string, filters ArticleFilters) (*PaginatedArticles, error) {
	offset := pageOffset(filters.Page, filters.Limit)

	var (
		articles []entities.Article
		total    int64
	)

	// page and count are independent reads; a write between them is an
	// accepted staleness window
	g := new(errgroup.Group)
	g.Go(func() error {
		return r.scopedQuery(authorID, filters).
			Preload("Author").
			Order("created_at DESC").
			Offset(offset).
			Limit(filters.Limit).
			Find(&articles).Error
	})
	g.Go(func() error {
		return r.scopedQuery(authorID, filters).
			Model(&entities.Article{}).
			Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if articles == nil {
		articles = []entities.Article{}
	}

	return &PaginatedArticles{
		Articles:   articles,
		Pagination: paginationFor(total, filters.Page, filters.Limit),
	}, nil
}

// pageOffset is the row offset for a 1-based page.
func pageOffset(page, limit int) int {
	return (page - 1) * limit
}

// paginationFor summarizes a result window; pages is ceil(total/limit).
func paginationFor(total int64, page, limit int) Pagination {
	return Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: int((total + int64(limit) - 1) / int64(limit)),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes pattern metacharacters so the search term only
// matches literally inside ILIKE.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *articlePgRepository) scopedQuery(authorID string, filters ArticleFilters) *gorm.DB {
	q := r.db.GetDB().Where("author_id = ?", authorID)

	if filters.Search != "" {
		like := "%" + escapeLike(filters.Search) + "%"
		q = q.Where(r.db.GetDB().Where("title ILIKE ?", like).Or("body ILIKE ?", like))
	}
	if len(filters.Tags) > 0 {
		q = q.Where("tags && ?", pq.Array(filters.Tags))
	}

	return q
}

func (r *articlePgRepository) Update(id, authorID string, update ArticleUpdate) (int64, error) {
	values := map[string]interface{}{
		"updated_at": time.Now().Format(time.RFC3339),
	}
	if update.Title != nil {
		values["title"] = *update.Title
	}
	if update.Body != nil {
		values["body"] = *update.Body
	}
	if update.Tags != nil {
		values["tags"] = pq.StringArray(update.Tags)
	}

	res := r.db.GetDB().Model(&entities.Article{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Updates(values)
	return res.RowsAffected, res.Error
}

func (r *articlePgRepository) Delete(id, authorID string) (int64, error) {
	res := r.db.GetDB().
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&entities.Article{})
	return res.RowsAffected, res.Error
}

func (r *articlePgRepository) UpdateSummary(id, summary string) error {
	return r.db.GetDB().Model(&entities.Article{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"summary":    summary,
			"updated_at": time.Now().Format(time.RFC3339),
		}).Error
}
