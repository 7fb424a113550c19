package repositories

import "kb-server/entities"

// ArticleFilters narrows a listing. Zero values mean "not supplied";
// clamping of page/limit happens in the use case layer.
type ArticleFilters struct {
	Search string
	Tags   []string
	Page   int
	Limit  int
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type PaginatedArticles struct {
	Articles   []entities.Article `json:"articles"`
	Pagination Pagination         `json:"pagination"`
}

// ArticleUpdate carries a partial update; nil pointers leave the stored
// field untouched, a nil Tags slice leaves tags untouched.
type ArticleUpdate struct {
	Title *string
	Body  *string
	Tags  []string
}

type UserRepository interface {
	Create(user *entities.User) error
	FindByEmail(email string) (*entities.User, error)
	FindByID(id string) (*entities.User, error)
	ExistsByEmail(email string) (bool, error)
}

type ArticleRepository interface {
	Create(article *entities.Article) error
	// FindByID returns (nil, nil) when no row matches the (id, authorID)
	// scope, deliberately indistinguishable from a foreign owner's row.
	FindByID(id, authorID string) (*entities.Article, error)
	FindByAuthor(authorID string, filters ArticleFilters) (*PaginatedArticles, error)
	// Update reports how many scoped rows were written; zero means absent
	// or owned by someone else.
	Update(id, authorID string, update ArticleUpdate) (int64, error)
	Delete(id, authorID string) (int64, error)
	UpdateSummary(id, summary string) error
}
