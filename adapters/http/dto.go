package http

import (
	"time"

	analyticsUC "github.com/khoahotran/portfolio/internal/application/usecase/analytics"
	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
)

// Portfolio DTOs

type SocialLinkDTO struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
}

type ProfileDTO struct {
	FullName    string          `json:"full_name"`
	Initials    string          `json:"initials"`
	Role        string          `json:"role"`
	ShortBio    string          `json:"short_bio,omitempty"`
	ImageURL    string          `json:"image_url"`
	Email       string          `json:"email,omitempty"`
	Location    string          `json:"location,omitempty"`
	ResumeLink  string          `json:"resume_link,omitempty"`
	SocialLinks []SocialLinkDTO `json:"social_links"`
}

type SkillDTO struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
	Percent     int    `json:"percent"`
}

type SkillGroupDTO struct {
	Key    string     `json:"key"`
	Label  string     `json:"label"`
	Wide   bool       `json:"wide"`
	Skills []SkillDTO `json:"skills"`
}

type ProjectDTO struct {
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
	ImageURL     string   `json:"image_url,omitempty"`
	GithubLink   string   `json:"github_link,omitempty"`
	LiveDemoLink string   `json:"live_demo_link,omitempty"`
}

type ExperienceDTO struct {
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Location     string   `json:"location,omitempty"`
	Period       string   `json:"period"`
	Current      bool     `json:"current"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
}

type EducationDTO struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Major       string `json:"major,omitempty"`
	Period      string `json:"period"`
}

type EmploymentStatusDTO struct {
	Employed bool   `json:"employed"`
	Company  string `json:"company,omitempty"`
	Role     string `json:"role,omitempty"`
	Label    string `json:"label"`
}

type PortfolioDTO struct {
	Profile     ProfileDTO          `json:"profile"`
	Status      EmploymentStatusDTO `json:"status"`
	SkillGroups []SkillGroupDTO     `json:"skill_groups"`
	Projects    []ProjectDTO        `json:"projects"`
	Experience  []ExperienceDTO     `json:"experience"`
	Education   []EducationDTO      `json:"education"`
	FetchedAt   time.Time           `json:"fetched_at"`
}

func ToPortfolioDTO(v portfolioUC.PageView) PortfolioDTO {
	p := v.Profile
	dto := PortfolioDTO{
		Profile: ProfileDTO{
			FullName:    p.FullName,
			Initials:    p.Initials,
			Role:        p.Role,
			ShortBio:    p.ShortBio,
			ImageURL:    p.ImageURL,
			Email:       p.Email,
			Location:    p.Location,
			ResumeLink:  p.ResumeLink,
			SocialLinks: make([]SocialLinkDTO, len(p.SocialLinks)),
		},
		Status: EmploymentStatusDTO{
			Employed: v.Status.Employed,
			Company:  v.Status.Company,
			Role:     v.Status.Role,
			Label:    v.Status.Label(),
		},
		SkillGroups: make([]SkillGroupDTO, len(v.SkillGroups)),
		Projects:    make([]ProjectDTO, len(v.Projects)),
		Experience:  make([]ExperienceDTO, len(v.Experience)),
		Education:   make([]EducationDTO, len(v.Education)),
		FetchedAt:   v.FetchedAt,
	}
	for i, l := range p.SocialLinks {
		dto.Profile.SocialLinks[i] = SocialLinkDTO{Platform: l.Platform, URL: l.URL, Icon: l.Icon}
	}
	for i, g := range v.SkillGroups {
		skills := make([]SkillDTO, len(g.Skills))
		for j, s := range g.Skills {
			skills[j] = SkillDTO{Name: s.Name, Proficiency: s.Proficiency, Percent: s.Percent}
		}
		dto.SkillGroups[i] = SkillGroupDTO{Key: g.Key, Label: g.Label, Wide: g.Wide, Skills: skills}
	}
	for i, pr := range v.Projects {
		dto.Projects[i] = ProjectDTO{
			Title:        pr.Title,
			Slug:         pr.Slug,
			Description:  pr.Description,
			Technologies: pr.Technologies,
			ImageURL:     pr.ImageURL,
			GithubLink:   pr.GithubLink,
			LiveDemoLink: pr.LiveDemoLink,
		}
	}
	for i, e := range v.Experience {
		dto.Experience[i] = ExperienceDTO{
			Company:      e.Company,
			Role:         e.Role,
			Location:     e.Location,
			Period:       e.Period,
			Current:      e.Current,
			Description:  e.Description,
			Technologies: e.Technologies,
		}
	}
	for i, e := range v.Education {
		dto.Education[i] = EducationDTO{Institution: e.Institution, Degree: e.Degree, Major: e.Major, Period: e.Period}
	}
	return dto
}

// Analytics DTOs

type DailyViewsDTO struct {
	Day   string `json:"day"`
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

type ViewStatsDTO struct {
	Total  int64            `json:"total"`
	Today  int64            `json:"today"`
	ByPath map[string]int64 `json:"by_path"`
	Daily  []DailyViewsDTO  `json:"daily"`
}

func ToViewStatsDTO(out *analyticsUC.ViewStatsOutput) ViewStatsDTO {
	dto := ViewStatsDTO{
		Total:  out.Totals.Total,
		Today:  out.Totals.Today,
		ByPath: out.Totals.ByPath,
		Daily:  make([]DailyViewsDTO, len(out.Daily)),
	}
	for i, d := range out.Daily {
		dto.Daily[i] = DailyViewsDTO{Day: d.Day.Format("2006-01-02"), Path: d.Path, Views: d.Views}
	}
	return dto
}
