package portfolio

import (
	"errors"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/khoahotran/portfolio/pkg/apperror"
)

var ErrMalformedDocument = errors.New("content document is not valid JSON")

// What a MissingProfileData error reports as absent.
const (
	MissingAllData       = "All Data"
	MissingAboutMe       = "About Me section"
	MissingProfileFields = "About Me fields (fullName, role)"
)

// Resolve returns the first candidate of a canonical field that is present and not null.
// The zero Result (Exists() == false) means no candidate matched.
func (t AliasTable) Resolve(doc gjson.Result, canonical string) gjson.Result {
	return t.resolve(doc, canonical, func(gjson.Result) bool { return true })
}

func (t AliasTable) resolve(doc gjson.Result, canonical string, accept func(gjson.Result) bool) gjson.Result {
	f, ok := t.Field(canonical)
	if !ok {
		f = FieldAliases{Canonical: canonical}
	}
	for _, path := range f.Candidates() {
		r := doc.Get(path)
		if r.Exists() && r.Type != gjson.Null && accept(r) {
			return r
		}
	}
	return gjson.Result{}
}

func isScalar(r gjson.Result) bool {
	return !r.IsObject() && !r.IsArray()
}

func (t AliasTable) text(doc gjson.Result, canonical string) string {
	return strings.TrimSpace(t.resolve(doc, canonical, isScalar).String())
}

func (t AliasTable) list(doc gjson.Result, canonical string) []string {
	r := t.resolve(doc, canonical, func(r gjson.Result) bool {
		return r.IsArray() || r.Type == gjson.String
	})
	out := make([]string, 0)
	if r.Type == gjson.String {
		for _, part := range strings.Split(r.String(), ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	for _, item := range r.Array() {
		if !isScalar(item) || item.Type == gjson.Null {
			continue
		}
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (t AliasTable) image(doc gjson.Result, canonical string) ImageRef {
	r := t.resolve(doc, canonical, func(r gjson.Result) bool {
		return !imageFrom(r).IsZero()
	})
	return imageFrom(r)
}

func imageFrom(r gjson.Result) ImageRef {
	switch {
	case r.IsObject():
		return ImageRef{
			AssetRef: strings.TrimSpace(r.Get("asset._ref").String()),
			URL:      strings.TrimSpace(r.Get("asset.url").String()),
		}
	case r.Type == gjson.String:
		s := strings.TrimSpace(r.String())
		if strings.HasPrefix(s, "image-") {
			return ImageRef{AssetRef: s}
		}
		return ImageRef{URL: s}
	}
	return ImageRef{}
}

// Normalize turns the raw query result into a Snapshot. A null result, a missing profile
// document or a profile without fullName or role is a MissingProfileData error.
func Normalize(raw []byte, fetchedAt time.Time) (*Snapshot, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformedDocument
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, apperror.NewMissingProfileData(MissingAllData)
	}

	about := root.Get(ProfileAliases.Key)
	if !about.IsObject() {
		return nil, apperror.NewMissingProfileData(MissingAboutMe)
	}
	profile := normalizeProfile(about)
	if profile.FullName == "" || profile.Role == "" {
		return nil, apperror.NewMissingProfileData(MissingProfileFields)
	}

	s := &Snapshot{
		Profile:    profile,
		Education:  make([]Education, 0),
		Experience: make([]Experience, 0),
		Projects:   make([]Project, 0),
		Skills:     make([]Skill, 0),
		FetchedAt:  fetchedAt,
	}
	eachDocument(root.Get(EducationAliases.Key), func(doc gjson.Result) {
		s.Education = append(s.Education, normalizeEducation(doc))
	})
	eachDocument(root.Get(ExperienceAliases.Key), func(doc gjson.Result) {
		s.Experience = append(s.Experience, normalizeExperience(doc))
	})
	eachDocument(root.Get(ProjectAliases.Key), func(doc gjson.Result) {
		s.Projects = append(s.Projects, normalizeProject(doc))
	})
	eachDocument(root.Get(SkillAliases.Key), func(doc gjson.Result) {
		s.Skills = append(s.Skills, normalizeSkill(doc))
	})
	return s, nil
}

func eachDocument(list gjson.Result, fn func(doc gjson.Result)) {
	if !list.IsArray() {
		return
	}
	for _, doc := range list.Array() {
		if doc.IsObject() {
			fn(doc)
		}
	}
}

func normalizeProfile(doc gjson.Result) Profile {
	t := ProfileAliases
	p := Profile{
		FullName:       t.text(doc, "fullName"),
		Role:           t.text(doc, "role"),
		ShortBio:       t.text(doc, "shortBio"),
		ProfilePicture: t.image(doc, "profilePicture"),
		Email:          t.text(doc, "email"),
		Location:       t.text(doc, "location"),
		ResumeLink:     t.text(doc, "resumeLink"),
		SocialLinks:    make([]SocialLink, 0),
	}
	links := t.resolve(doc, "socialLinks", func(r gjson.Result) bool { return r.IsArray() })
	for _, l := range links.Array() {
		link := SocialLink{
			Platform: strings.TrimSpace(l.Get("platform").String()),
			URL:      strings.TrimSpace(l.Get("url").String()),
		}
		if link.URL != "" {
			p.SocialLinks = append(p.SocialLinks, link)
		}
	}
	return p
}

func normalizeEducation(doc gjson.Result) Education {
	t := EducationAliases
	return Education{
		Institution: t.text(doc, "institution"),
		Degree:      t.text(doc, "degree"),
		Major:       t.text(doc, "major"),
		StartDate:   t.text(doc, "startDate"),
		EndDate:     t.text(doc, "endDate"),
	}
}

func normalizeExperience(doc gjson.Result) Experience {
	t := ExperienceAliases
	return Experience{
		Company:      t.text(doc, "company"),
		Role:         t.text(doc, "role"),
		Location:     t.text(doc, "location"),
		StartDate:    t.text(doc, "startDate"),
		EndDate:      t.text(doc, "endDate"),
		Description:  t.text(doc, "description"),
		Technologies: t.list(doc, "technologies"),
	}
}

func normalizeProject(doc gjson.Result) Project {
	t := ProjectAliases
	return Project{
		Title:        t.text(doc, "title"),
		Description:  t.text(doc, "description"),
		Technologies: t.list(doc, "technologies"),
		Image:        t.image(doc, "image"),
		GithubLink:   t.text(doc, "githubLink"),
		LiveDemoLink: t.text(doc, "liveDemoLink"),
	}
}

func normalizeSkill(doc gjson.Result) Skill {
	t := SkillAliases
	return Skill{
		SkillName:   t.text(doc, "skillName"),
		Category:    t.text(doc, "category"),
		Proficiency: t.text(doc, "proficiency"),
	}
}
