package portfolio

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

const (
	PlaceholderProfileImage = "/static/placeholder-profile.svg"

	profileImageSize   = 800
	projectImageWidth  = 800
	projectImageHeight = 450
)

type SocialLinkView struct {
	Platform string
	URL      string
	Icon     string
}

type ProfileView struct {
	FullName    string
	Initials    string
	Role        string
	ShortBio    string
	ImageURL    string
	Email       string
	MailtoURL   string
	Location    string
	ResumeLink  string
	SocialLinks []SocialLinkView
}

type SkillView struct {
	Name        string
	Proficiency string
	Percent     int
	Tone        string
}

type SkillGroupView struct {
	Key    string
	Label  string
	Wide   bool
	Skills []SkillView
}

type ProjectView struct {
	Title        string
	Slug         string
	Description  string
	Technologies []string
	ImageURL     string
	GithubLink   string
	LiveDemoLink string
}

type ExperienceView struct {
	Company      string
	Role         string
	Location     string
	Period       string
	Current      bool
	Description  string
	Technologies []string
}

type EducationView struct {
	Institution string
	Degree      string
	Major       string
	Period      string
}

// PageView is everything the page renders, already ordered, grouped and scored.
type PageView struct {
	Profile     ProfileView
	Status      EmploymentStatus
	SkillGroups []SkillGroupView
	Projects    []ProjectView
	Experience  []ExperienceView
	Education   []EducationView
	Year        int
	FetchedAt   time.Time
}

func (v PageView) HasSkills() bool     { return len(v.SkillGroups) > 0 }
func (v PageView) HasProjects() bool   { return len(v.Projects) > 0 }
func (v PageView) HasExperience() bool { return len(v.Experience) > 0 }
func (v PageView) HasEducation() bool  { return len(v.Education) > 0 }

// ViewBuilder turns a Snapshot into a PageView. Build has no side effects: the same
// snapshot always yields the same view.
type ViewBuilder struct {
	images service.ImageURLBuilder
	scale  ProficiencyScale
	layout LayoutPolicy
}

func NewViewBuilder(images service.ImageURLBuilder, scale ProficiencyScale, layout LayoutPolicy) *ViewBuilder {
	return &ViewBuilder{images: images, scale: scale, layout: layout}
}

func (b *ViewBuilder) Build(s *portfolio.Snapshot) PageView {
	v := PageView{
		Profile:     b.profile(s.Profile),
		Status:      DeriveEmploymentStatus(s.Experience),
		SkillGroups: b.skillGroups(s.Skills),
		Projects:    make([]ProjectView, 0, len(s.Projects)),
		Experience:  make([]ExperienceView, 0, len(s.Experience)),
		Education:   make([]EducationView, 0, len(s.Education)),
		Year:        s.FetchedAt.Year(),
		FetchedAt:   s.FetchedAt,
	}
	for _, p := range s.Projects {
		v.Projects = append(v.Projects, b.project(p))
	}
	for _, e := range SortExperience(s.Experience) {
		v.Experience = append(v.Experience, ExperienceView{
			Company:      e.Company,
			Role:         e.Role,
			Location:     e.Location,
			Period:       period(e.StartDate, e.EndDate),
			Current:      e.IsCurrent(),
			Description:  e.Description,
			Technologies: e.Technologies,
		})
	}
	for _, e := range SortEducation(s.Education) {
		v.Education = append(v.Education, EducationView{
			Institution: e.Institution,
			Degree:      e.Degree,
			Major:       e.Major,
			Period:      period(e.StartDate, e.EndDate),
		})
	}
	return v
}

func (b *ViewBuilder) profile(p portfolio.Profile) ProfileView {
	v := ProfileView{
		FullName:    p.FullName,
		Initials:    Initials(p.FullName),
		Role:        p.Role,
		ShortBio:    p.ShortBio,
		ImageURL:    PlaceholderProfileImage,
		Email:       p.Email,
		Location:    p.Location,
		ResumeLink:  p.ResumeLink,
		SocialLinks: make([]SocialLinkView, 0, len(p.SocialLinks)),
	}
	if p.Email != "" {
		v.MailtoURL = "mailto:" + p.Email
	}
	if url, ok := b.imageURL(p.ProfilePicture, profileImageSize, profileImageSize); ok {
		v.ImageURL = url
	}
	for _, l := range p.SocialLinks {
		v.SocialLinks = append(v.SocialLinks, SocialLinkView{Platform: l.Platform, URL: l.URL, Icon: l.Icon()})
	}
	return v
}

func (b *ViewBuilder) project(p portfolio.Project) ProjectView {
	v := ProjectView{
		Title:        p.Title,
		Slug:         Slug(p.Title),
		Description:  p.Description,
		Technologies: p.Technologies,
		GithubLink:   p.GithubLink,
		LiveDemoLink: p.LiveDemoLink,
	}
	if url, ok := b.imageURL(p.Image, projectImageWidth, projectImageHeight); ok {
		v.ImageURL = url
	}
	return v
}

func (b *ViewBuilder) imageURL(ref portfolio.ImageRef, width, height int) (string, bool) {
	if ref.IsZero() || b.images == nil {
		return "", false
	}
	url, err := b.images.URL(ref, width, height)
	if err != nil || url == "" {
		return "", false
	}
	return url, true
}

func (b *ViewBuilder) skillGroups(skills []portfolio.Skill) []SkillGroupView {
	groups := GroupSkills(skills)
	out := make([]SkillGroupView, len(groups))
	for i, g := range groups {
		views := make([]SkillView, len(g.Skills))
		for j, s := range g.Skills {
			views[j] = SkillView{
				Name:        s.SkillName,
				Proficiency: s.Proficiency,
				Percent:     b.scale.Percent(s.Proficiency),
				Tone:        ProficiencyTone(s.Proficiency),
			}
		}
		out[i] = SkillGroupView{
			Key:    g.Key,
			Label:  g.Label,
			Wide:   b.layout.Wide(i, len(groups)),
			Skills: views,
		}
	}
	return out
}

// Initials takes the first letter of every word of a name.
func Initials(name string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		sb.WriteRune(r)
	}
	return sb.String()
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slug lower-cases a title and replaces whitespace runs with "-".
func Slug(title string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
}

func period(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case portfolio.IsOngoing(end):
		return start + " - Present"
	default:
		return start + " - " + end
	}
}
