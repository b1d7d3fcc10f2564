package portfolio

import (
	"context"
	"strings"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type ProjectFeedUseCase struct {
	source  portfolio.Source
	siteURL string
	logger  logger.Logger
}

func NewProjectFeedUseCase(source portfolio.Source, siteURL string, log logger.Logger) *ProjectFeedUseCase {
	return &ProjectFeedUseCase{
		source:  source,
		siteURL: strings.TrimRight(siteURL, "/"),
		logger:  log,
	}
}

func (uc *ProjectFeedUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	s, err := uc.source.FetchSnapshot(ctx)
	if err != nil {
		uc.logger.Error("Failed to load portfolio for RSS", err)
		return nil, err
	}
	if s == nil {
		return nil, apperror.NewMissingProfileData(portfolio.MissingAllData)
	}

	p := s.Profile
	feed := &feeds.Feed{
		Title:       p.FullName + " - Projects",
		Link:        &feeds.Link{Href: uc.siteURL + "/"},
		Description: p.ShortBio,
		Author:      &feeds.Author{Name: p.FullName, Email: p.Email},
		Created:     s.FetchedAt,
	}

	feed.Items = make([]*feeds.Item, 0, len(s.Projects))
	for _, project := range s.Projects {
		link := project.LiveDemoLink
		if link == "" {
			link = project.GithubLink
		}
		if link == "" {
			link = uc.siteURL + "/#projects"
		}
		description := project.Description
		if len(project.Technologies) > 0 {
			description += " (" + strings.Join(project.Technologies, ", ") + ")"
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          uc.siteURL + "/#" + Slug(project.Title),
			Title:       project.Title,
			Link:        &feeds.Link{Href: link},
			Description: description,
			Created:     s.FetchedAt,
		})
	}

	uc.logger.Info("Project feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
