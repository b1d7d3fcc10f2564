package portfolio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

func TestProjectFeedUseCase(t *testing.T) {
	s := sampleSnapshot()
	s.Projects = []portfolio.Project{
		{Title: "Live One", Description: "Demo'd", LiveDemoLink: "https://demo", GithubLink: "https://gh/1", Technologies: []string{"Go", "htmx"}},
		{Title: "Code Only", GithubLink: "https://gh/2"},
		{Title: "Nothing"},
	}
	uc := NewProjectFeedUseCase(&fakeSource{snapshot: s}, "https://jane.dev/", logger.NewNopLogger())

	feed, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Jane Q Doe - Projects", feed.Title)
	assert.Equal(t, "https://jane.dev/", feed.Link.Href)
	require.Len(t, feed.Items, 3)
	assert.Equal(t, "https://demo", feed.Items[0].Link.Href)
	assert.Equal(t, "Demo'd (Go, htmx)", feed.Items[0].Description)
	assert.Equal(t, "https://jane.dev/#live-one", feed.Items[0].Id)
	assert.Equal(t, "https://gh/2", feed.Items[1].Link.Href)
	assert.Equal(t, "https://jane.dev/#projects", feed.Items[2].Link.Href)

	rss, err := feed.ToRss()
	require.NoError(t, err)
	assert.Contains(t, rss, "<title>Live One</title>")
}

func TestProjectFeedUseCase_SourceError(t *testing.T) {
	uc := NewProjectFeedUseCase(&fakeSource{err: apperror.NewFetchFailed("down", nil)}, "https://jane.dev", logger.NewNopLogger())

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, apperror.ErrFetchFailed)
}

func TestProjectFeedUseCase_NothingReturned(t *testing.T) {
	uc := NewProjectFeedUseCase(&fakeSource{}, "https://jane.dev", logger.NewNopLogger())

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, apperror.ErrMissingProfileData)
}
