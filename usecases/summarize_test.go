package usecases

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-server/entities"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSummarize_NotFound(t *testing.T) {
	repo := newFakeArticleRepo()
	client := &fakeSummaryClient{}
	uc := NewSummarizeUseCase(repo, client, quietLogger())

	_, err := uc.Summarize(context.Background(), "missing", "user-1")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Zero(t, client.calls)
}

func TestSummarize_LiveCallPersisted(t *testing.T) {
	repo := newFakeArticleRepo()
	repo.findResult = &entities.Article{ID: "a-1", AuthorID: "user-1", Title: "Go", Body: "Go is a language."}
	client := &fakeSummaryClient{result: "A short summary."}
	uc := NewSummarizeUseCase(repo, client, quietLogger())

	summary, err := uc.Summarize(context.Background(), "a-1", "user-1")
	require.NoError(t, err)

	assert.Equal(t, "A short summary.", summary)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "A short summary.", repo.summaries["a-1"])
}

func TestSummarize_SecondCallShortCircuits(t *testing.T) {
	repo := newFakeArticleRepo()
	repo.findResult = &entities.Article{ID: "a-1", AuthorID: "user-1", Title: "Go", Body: "Go is a language."}
	client := &fakeSummaryClient{result: "A short summary."}
	uc := NewSummarizeUseCase(repo, client, quietLogger())

	first, err := uc.Summarize(context.Background(), "a-1", "user-1")
	require.NoError(t, err)

	// content changes after the first summarization
	repo.findResult.Body = "Completely different body now."

	second, err := uc.Summarize(context.Background(), "a-1", "user-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.calls, "no new external call on the second invocation")
	assert.Equal(t, 1, repo.summaryCalled, "summary persisted exactly once")
}

func TestSummarize_FallbackOnUpstreamFailure(t *testing.T) {
	repo := newFakeArticleRepo()
	repo.findResult = &entities.Article{
		ID:       "a-1",
		AuthorID: "user-1",
		Title:    "Concurrency",
		Body:     "Goroutines are cheap. Channels coordinate them. Select multiplexes.",
	}
	client := &fakeSummaryClient{err: errors.New("upstream down")}
	uc := NewSummarizeUseCase(repo, client, quietLogger())

	summary, err := uc.Summarize(context.Background(), "a-1", "user-1")
	require.NoError(t, err)

	assert.Equal(t, "Goroutines are cheap.  Channels coordinate them.", summary)
	assert.Equal(t, summary, repo.summaries["a-1"], "fallback value is persisted")
}

func TestFallbackSummary(t *testing.T) {
	tests := []struct {
		name  string
		title string
		body  string
		want  string
	}{
		{
			// the second span carries its leading space, so two spaces
			// separate the sentences in the output
			name:  "first two sentences",
			title: "T",
			body:  "First sentence here. Second sentence here. Third one is dropped.",
			want:  "First sentence here.  Second sentence here.",
		},
		{
			name:  "no space between sentences stays tight",
			title: "T",
			body:  "First sentence here.Second sentence here.Third one is dropped.",
			want:  "First sentence here. Second sentence here.",
		},
		{
			name:  "single long sentence",
			title: "T",
			body:  "Only one sentence but a reasonably long one.",
			want:  "Only one sentence but a reasonably long one.",
		},
		{
			name:  "too short falls back to template",
			title: "Brevity",
			body:  "Short.",
			want: `This article titled "Brevity" provides insights and information on the topic. ` +
				"The content covers key concepts and important details relevant to the subject matter discussed.",
		},
		{
			name:  "no terminated sentences",
			title: "Rough notes",
			body:  "just a fragment without punctuation",
			want: `This article titled "Rough notes" provides insights and information on the topic. ` +
				"The content covers key concepts and important details relevant to the subject matter discussed.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fallbackSummary(tt.title, tt.body))
		})
	}
}
