package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-server/entities"
	"kb-server/repositories"
)

func TestCreate_SanitizesTags(t *testing.T) {
	repo := newFakeArticleRepo()
	uc := NewArticleUseCase(repo)

	article, err := uc.Create("author-1", CreateArticleInput{
		Title: "Testing",
		Body:  "Body text.",
		Tags:  []string{"test", "", "  ", "article"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"test", "article"}, []string(article.Tags))
	assert.Equal(t, "author-1", article.AuthorID)
}

func TestGetByID_NotFoundAndForeignOwnerCollapse(t *testing.T) {
	repo := newFakeArticleRepo()
	repo.findResult = &entities.Article{ID: "a-1", AuthorID: "owner"}
	uc := NewArticleUseCase(repo)

	_, missingErr := uc.GetByID("a-missing", "owner")
	_, foreignErr := uc.GetByID("a-1", "intruder")

	require.Error(t, missingErr)
	require.Error(t, foreignErr)
	assert.Equal(t, missingErr.Error(), foreignErr.Error())
	assert.Equal(t, KindNotFound, KindOf(missingErr))
	assert.Equal(t, KindNotFound, KindOf(foreignErr))

	got, err := uc.GetByID("a-1", "owner")
	require.NoError(t, err)
	assert.Equal(t, "a-1", got.ID)
}

func TestList_Clamping(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults", 0, 0, 1, 10},
		{"limit above max", 1, 500, 1, 50},
		{"page below one", 0, 20, 1, 20},
		{"negative values", -3, -1, 1, 10},
		{"in range untouched", 2, 25, 2, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeArticleRepo()
			uc := NewArticleUseCase(repo)

			_, err := uc.List("author-1", repositories.ArticleFilters{Page: tt.page, Limit: tt.limit})
			require.NoError(t, err)

			assert.Equal(t, tt.wantPage, repo.listFilters.Page)
			assert.Equal(t, tt.wantLimit, repo.listFilters.Limit)
		})
	}
}

func TestList_PassesThroughSearchAndTags(t *testing.T) {
	repo := newFakeArticleRepo()
	uc := NewArticleUseCase(repo)

	_, err := uc.List("author-1", repositories.ArticleFilters{
		Search: "golang",
		Tags:   []string{"go", "web"},
	})
	require.NoError(t, err)

	assert.Equal(t, "golang", repo.listFilters.Search)
	assert.Equal(t, []string{"go", "web"}, repo.listFilters.Tags)
}

func TestUpdate_NotFoundWhenNoRowsAffected(t *testing.T) {
	repo := newFakeArticleRepo()
	repo.updateAffected = 0
	uc := NewArticleUseCase(repo)

	title := "New title"
	_, err := uc.Update("a-1", "author-1", UpdateArticleInput{Title: &title})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Contains(t, err.Error(), "not found or you do not have permission to update it")
}

func TestUpdate_ResanitizesTagsAndRereads(t *testing.T) {
	repo := newFakeArticleRepo()
	repo.updateAffected = 1
	repo.findResult = &entities.Article{ID: "a-1", AuthorID: "author-1", Title: "New title"}
	uc := NewArticleUseCase(repo)

	title := "New title"
	got, err := uc.Update("a-1", "author-1", UpdateArticleInput{
		Title: &title,
		Tags:  []string{" ", "kept"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"kept"}, []string(repo.lastUpdate.Tags))
	require.NotNil(t, repo.lastUpdate.Title)
	assert.Equal(t, "New title", *repo.lastUpdate.Title)
	assert.Nil(t, repo.lastUpdate.Body)
	assert.Equal(t, "a-1", got.ID)
}

func TestDelete_NotFoundWhenNoRowsAffected(t *testing.T) {
	repo := newFakeArticleRepo()
	repo.deleteAffected = 0
	uc := NewArticleUseCase(repo)

	err := uc.Delete("a-1", "author-1")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))

	repo.deleteAffected = 1
	require.NoError(t, uc.Delete("a-1", "author-1"))
}
