package usecases

import (
	"context"

	"kb-server/entities"
	"kb-server/repositories"
)

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	users     map[string]*entities.User
	createErr error
	findErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (f *fakeUserRepo) Create(user *entities.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.users[email], nil
}

func (f *fakeUserRepo) FindByID(id string) (*entities.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

// fakeArticleRepo records calls and returns canned results.
type fakeArticleRepo struct {
	created []*entities.Article

	findResult *entities.Article
	findErr    error

	listResult  *repositories.PaginatedArticles
	listFilters repositories.ArticleFilters

	updateAffected int64
	updateErr      error
	lastUpdate     repositories.ArticleUpdate

	deleteAffected int64

	summaries     map[string]string
	summaryCalled int
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{summaries: make(map[string]string)}
}

func (f *fakeArticleRepo) Create(article *entities.Article) error {
	if article.ID == "" {
		article.ID = "article-1"
	}
	f.created = append(f.created, article)
	return nil
}

func (f *fakeArticleRepo) FindByID(id, authorID string) (*entities.Article, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.findResult != nil && f.findResult.ID == id && f.findResult.AuthorID == authorID {
		return f.findResult, nil
	}
	return nil, nil
}

func (f *fakeArticleRepo) FindByAuthor(authorID string, filters repositories.ArticleFilters) (*repositories.PaginatedArticles, error) {
	f.listFilters = filters
	if f.listResult != nil {
		return f.listResult, nil
	}
	return &repositories.PaginatedArticles{
		Articles: []entities.Article{},
		Pagination: repositories.Pagination{
			Page:  filters.Page,
			Limit: filters.Limit,
		},
	}, nil
}

func (f *fakeArticleRepo) Update(id, authorID string, update repositories.ArticleUpdate) (int64, error) {
	f.lastUpdate = update
	return f.updateAffected, f.updateErr
}

func (f *fakeArticleRepo) Delete(id, authorID string) (int64, error) {
	return f.deleteAffected, nil
}

func (f *fakeArticleRepo) UpdateSummary(id, summary string) error {
	f.summaryCalled++
	f.summaries[id] = summary
	if f.findResult != nil && f.findResult.ID == id {
		f.findResult.Summary = &summary
	}
	return nil
}

// fakeSummaryClient counts invocations and returns a canned result.
type fakeSummaryClient struct {
	calls  int
	result string
	err    error
}

func (f *fakeSummaryClient) Summarize(ctx context.Context, title, body string) (string, error) {
	f.calls++
	return f.result, f.err
}
