package portfolio

import (
	"context"
	"strings"
	"time"
)

// ImageRef is an opaque image reference as stored by the content repository.
// AssetRef holds the asset id ("image-<id>-<w>x<h>-<fmt>"), URL a dereferenced asset URL.
type ImageRef struct {
	AssetRef string `json:"assetRef,omitempty"`
	URL      string `json:"url,omitempty"`
}

func (r ImageRef) IsZero() bool {
	return r.AssetRef == "" && r.URL == ""
}

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

const (
	PlatformGitHub   = "github"
	PlatformLinkedIn = "linkedin"
	PlatformTwitter  = "twitter"
	PlatformGeneric  = "link"
)

// Icon maps the authored platform name to a known icon, or to the generic link icon.
func (l SocialLink) Icon() string {
	switch strings.ToLower(strings.TrimSpace(l.Platform)) {
	case PlatformGitHub:
		return PlatformGitHub
	case PlatformLinkedIn:
		return PlatformLinkedIn
	case PlatformTwitter, "x":
		return PlatformTwitter
	default:
		return PlatformGeneric
	}
}

type Profile struct {
	FullName       string       `json:"fullName"`
	Role           string       `json:"role"`
	ShortBio       string       `json:"shortBio"`
	ProfilePicture ImageRef     `json:"profilePicture"`
	Email          string       `json:"email"`
	Location       string       `json:"location"`
	ResumeLink     string       `json:"resumeLink"`
	SocialLinks    []SocialLink `json:"socialLinks"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Major       string `json:"major"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

type Experience struct {
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// IsCurrent reports whether the position has no end date or ends "present".
func (e Experience) IsCurrent() bool {
	return IsOngoing(e.EndDate)
}

type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Image        ImageRef `json:"image"`
	GithubLink   string   `json:"githubLink"`
	LiveDemoLink string   `json:"liveDemoLink"`
}

type Skill struct {
	SkillName   string `json:"skillName"`
	Category    string `json:"category"`
	Proficiency string `json:"proficiency"`
}

// Snapshot is the normalized document graph of a single page load. It is built once and
// only read afterwards.
type Snapshot struct {
	Profile    Profile      `json:"profile"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
	Skills     []Skill      `json:"skills"`
	FetchedAt  time.Time    `json:"fetchedAt"`
}

// Source fetches the whole document graph in one round trip.
type Source interface {
	FetchSnapshot(ctx context.Context) (*Snapshot, error)
}
