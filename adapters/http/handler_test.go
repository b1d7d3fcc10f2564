package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	analyticsUC "github.com/khoahotran/portfolio/internal/application/usecase/analytics"
	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio/internal/domain/analytics"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type stubSource struct {
	snapshot *portfolio.Snapshot
	err      error
}

func (s *stubSource) FetchSnapshot(context.Context) (*portfolio.Snapshot, error) {
	return s.snapshot, s.err
}

type stubImages struct{}

func (stubImages) URL(ref portfolio.ImageRef, width, height int) (string, error) {
	return fmt.Sprintf("https://img.test/%s?w=%d&h=%d", ref.AssetRef, width, height), nil
}

type chanPublisher struct {
	events chan analytics.ViewEvent
}

func (p *chanPublisher) PublishView(_ context.Context, ev analytics.ViewEvent) error {
	p.events <- ev
	return nil
}

type stubCounter struct{}

func (stubCounter) Increment(context.Context, analytics.ViewEvent) (bool, error) { return true, nil }

func (stubCounter) Totals(context.Context, time.Time) (*analytics.Totals, error) {
	return &analytics.Totals{Total: 42, Today: 5, ByPath: map[string]int64{"/": 42}}, nil
}

type stubRepo struct{}

func (stubRepo) AddView(context.Context, analytics.ViewEvent) (bool, error) { return true, nil }

func (stubRepo) ListRange(_ context.Context, _, to time.Time) ([]analytics.DailyViews, error) {
	return []analytics.DailyViews{{Day: to, Path: "/", Views: 5}}, nil
}

func janeDoe() *portfolio.Snapshot {
	return &portfolio.Snapshot{
		Profile: portfolio.Profile{
			FullName:   "Jane Doe",
			Role:       "Engineer",
			Email:      "jane@example.com",
			ResumeLink: "https://example.com/cv.pdf",
			SocialLinks: []portfolio.SocialLink{
				{Platform: "github", URL: "https://github.com/jane"},
			},
		},
		Experience: []portfolio.Experience{
			{Company: "Acme", Role: "Developer", StartDate: "2023-01-01", EndDate: "present"},
		},
		Projects: []portfolio.Project{
			{Title: "Portfolio Site", Description: "This site", Technologies: []string{"Go", "htmx"}, GithubLink: "https://github.com/jane/site"},
		},
		Skills: []portfolio.Skill{
			{SkillName: "Go", Category: "Backend", Proficiency: "Expert"},
		},
		Education: []portfolio.Education{},
		FetchedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

type HandlerTestSuite struct {
	suite.Suite
	source    *stubSource
	publisher *chanPublisher
	router    *gin.Engine
}

func (s *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *HandlerTestSuite) SetupTest() {
	log := logger.NewNopLogger()
	s.source = &stubSource{snapshot: janeDoe()}
	s.publisher = &chanPublisher{events: make(chan analytics.ViewEvent, 4)}

	builder := portfolioUC.NewViewBuilder(stubImages{}, portfolioUC.RenderedScale, portfolioUC.DefaultLayoutPolicy)
	loadUC := portfolioUC.NewLoadPortfolioUseCase(s.source, builder, log)
	feedUC := portfolioUC.NewProjectFeedUseCase(s.source, "https://jane.example", log)
	trackUC := analyticsUC.NewTrackViewUseCase(s.publisher, log)
	statsUC := analyticsUC.NewViewStatsUseCase(stubCounter{}, stubRepo{}, log)

	tmpl, err := LoadTemplates()
	s.Require().NoError(err)

	s.router = NewRouter(Handlers{
		Page:      NewPageHandler(loadUC, trackUC, log),
		Portfolio: NewPortfolioHandler(loadUC, log),
		Feed:      NewFeedHandler(feedUC, log),
		Stats:     NewStatsHandler(statsUC, log),
	}, tmpl, log)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) Test_Shell_RendersLoadingState() {
	w := s.get("/")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `hx-get="/sections"`)
	s.Contains(w.Body.String(), `data-state="loading"`)
	s.Contains(w.Body.String(), "Loading portfolio...")
}

func (s *HandlerTestSuite) Test_Sections_Ready() {
	w := s.get("/sections")

	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, `data-state="ready"`)
	s.Contains(body, "Jane Doe")
	s.Contains(body, "Currently at Acme")
	s.Contains(body, `href="mailto:jane@example.com"`)
	s.Contains(body, `id="portfolio-site"`)
	s.Contains(body, placeholderSrc())
	s.Contains(body, `rel="noopener noreferrer"`)
	s.NotContains(body, `id="education"`, "empty lists render no section")

	select {
	case ev := <-s.publisher.events:
		s.Equal("/", ev.Path)
	case <-time.After(2 * time.Second):
		s.Fail("expected a view event")
	}
}

func (s *HandlerTestSuite) Test_Sections_MissingProfile() {
	s.source.snapshot, s.source.err = nil, apperror.NewMissingProfileData(portfolio.MissingAboutMe)

	w := s.get("/sections")

	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, `data-state="failed"`)
	s.Contains(body, "Connection Successful, but...")
	s.Contains(body, "About Me section")
	s.Contains(body, "Next Steps:")
	s.Empty(s.publisher.events)
}

func (s *HandlerTestSuite) Test_Sections_NothingReturned() {
	s.source.snapshot, s.source.err = nil, nil

	w := s.get("/sections")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "nothing was returned")
}

func (s *HandlerTestSuite) Test_Sections_FetchFailedShowsTechnicalError() {
	s.source.snapshot, s.source.err = nil, apperror.NewFetchFailed("sanity responded 401", errors.New("sanity responded 401: Unauthorized"))

	w := s.get("/sections")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Technical Error: sanity responded 401: Unauthorized")
}

func (s *HandlerTestSuite) Test_GetPortfolio() {
	w := s.get("/api/portfolio")
	s.Require().Equal(http.StatusOK, w.Code)

	var dto PortfolioDTO
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &dto))
	s.Equal("Jane Doe", dto.Profile.FullName)
	s.Equal("JD", dto.Profile.Initials)
	s.True(dto.Status.Employed)
	s.Equal("Currently at Acme", dto.Status.Label)
	s.Require().Len(dto.SkillGroups, 1)
	s.Equal(100, dto.SkillGroups[0].Skills[0].Percent)
	s.Require().Len(dto.Projects, 1)
	s.Equal("portfolio-site", dto.Projects[0].Slug)
	s.NotNil(dto.Education)
}

func (s *HandlerTestSuite) Test_GetPortfolio_ErrorStatus() {
	tests := []struct {
		err    error
		status int
	}{
		{apperror.NewConfigurationInvalid("bad project id", nil), http.StatusInternalServerError},
		{apperror.NewFetchFailed("timeout", errors.New("timeout")), http.StatusBadGateway},
		{apperror.NewMissingProfileData(portfolio.MissingAllData), http.StatusNotFound},
	}
	for _, tt := range tests {
		s.source.snapshot, s.source.err = nil, tt.err

		w := s.get("/api/portfolio")

		s.Equal(tt.status, w.Code, tt.err.Error())
		var body map[string]any
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.NotEmpty(body["error"])
	}
}

func (s *HandlerTestSuite) Test_ProjectFeed() {
	w := s.get("/projects.rss")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Type"), "application/rss+xml")
	s.Contains(w.Body.String(), "<title>Jane Doe - Projects</title>")
	s.Contains(w.Body.String(), "Portfolio Site")
}

func (s *HandlerTestSuite) Test_ProjectFeed_Error() {
	s.source.snapshot, s.source.err = nil, apperror.NewFetchFailed("down", nil)

	w := s.get("/projects.rss")

	s.Equal(http.StatusBadGateway, w.Code)
}

func (s *HandlerTestSuite) Test_ViewStats() {
	w := s.get("/api/stats/views?days=3")
	s.Require().Equal(http.StatusOK, w.Code)

	var dto ViewStatsDTO
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &dto))
	s.Equal(int64(42), dto.Total)
	s.Equal(int64(5), dto.Today)
	s.Require().Len(dto.Daily, 1)
	s.Equal(int64(5), dto.Daily[0].Views)

	s.Equal(http.StatusBadRequest, s.get("/api/stats/views?days=abc").Code)
	s.Equal(http.StatusBadRequest, s.get("/api/stats/views?days=365").Code)
}

func (s *HandlerTestSuite) Test_HealthAndStatic() {
	s.Equal(http.StatusOK, s.get("/api/health").Code)

	w := s.get("/static/placeholder-profile.svg")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "<svg")
}

func (s *HandlerTestSuite) Test_ViewStats_AnalyticsDisabled() {
	log := logger.NewNopLogger()
	tmpl, err := LoadTemplates()
	s.Require().NoError(err)
	loadUC := portfolioUC.NewLoadPortfolioUseCase(s.source,
		portfolioUC.NewViewBuilder(stubImages{}, portfolioUC.RenderedScale, portfolioUC.DefaultLayoutPolicy), log)
	router := NewRouter(Handlers{
		Page:      NewPageHandler(loadUC, analyticsUC.NewTrackViewUseCase(s.publisher, log), log),
		Portfolio: NewPortfolioHandler(loadUC, log),
		Feed:      NewFeedHandler(portfolioUC.NewProjectFeedUseCase(s.source, "https://jane.example", log), log),
	}, tmpl, log)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats/views", nil))

	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.Contains(w.Body.String(), "view analytics is disabled")
}

func (s *HandlerTestSuite) Test_UnknownRoute() {
	w := s.get("/api/nope")

	s.Equal(http.StatusNotFound, w.Code)
	s.Contains(w.Body.String(), "route with identifier '/api/nope' was not found")
}

func placeholderSrc() string {
	return `src="` + portfolioUC.PlaceholderProfileImage + `"`
}
