package portfolio

import (
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

type startKey struct {
	t  time.Time
	ok bool
}

// compareStart orders most recent first; unparseable dates go last and tie with each other.
func compareStart(a, b startKey) int {
	switch {
	case a.ok && b.ok:
		return b.t.Compare(a.t)
	case a.ok:
		return -1
	case b.ok:
		return 1
	default:
		return 0
	}
}

func sortByStart[T any](in []T, start func(T) string) []T {
	type keyed struct {
		item T
		key  startKey
	}
	ks := make([]keyed, len(in))
	for i, item := range in {
		t, ok := portfolio.ParseDate(start(item))
		ks[i] = keyed{item: item, key: startKey{t: t, ok: ok}}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int { return compareStart(a.key, b.key) })

	out := make([]T, len(ks))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}

// SortExperience returns a copy ordered by start date, most recent first.
func SortExperience(in []portfolio.Experience) []portfolio.Experience {
	return sortByStart(in, func(e portfolio.Experience) string { return e.StartDate })
}

// SortEducation returns a copy ordered by start date, most recent first.
func SortEducation(in []portfolio.Education) []portfolio.Education {
	return sortByStart(in, func(e portfolio.Education) string { return e.StartDate })
}

// Preferred skill category order. Other categories follow in first-seen order.
var CategoryOrder = []string{"frontend", "backend", "database", "devops", "other"}

var categoryLabels = map[string]string{
	"frontend": "Frontend",
	"backend":  "Backend",
	"database": "Database",
	"devops":   "DevOps",
	"other":    "Other",
}

type SkillGroup struct {
	Key    string
	Label  string
	Skills []portfolio.Skill
}

func categoryKey(category string) string {
	key := strings.ToLower(strings.TrimSpace(category))
	if key == "" {
		return "other"
	}
	return key
}

func categoryLabel(key, firstSeen string) string {
	if label, ok := categoryLabels[key]; ok {
		return label
	}
	firstSeen = strings.TrimSpace(firstSeen)
	r, size := utf8.DecodeRuneInString(firstSeen)
	return string(unicode.ToUpper(r)) + firstSeen[size:]
}

func categoryRank(key string) int {
	if i := slices.Index(CategoryOrder, key); i >= 0 {
		return i
	}
	return len(CategoryOrder)
}

// GroupSkills partitions skills by case-insensitive category. Skills keep their input order
// inside a group; groups follow CategoryOrder, then unknown categories in first-seen order.
func GroupSkills(skills []portfolio.Skill) []SkillGroup {
	groups := make([]SkillGroup, 0)
	index := map[string]int{}
	for _, s := range skills {
		key := categoryKey(s.Category)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, SkillGroup{Key: key, Label: categoryLabel(key, s.Category)})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}

	groups = slices.DeleteFunc(groups, func(g SkillGroup) bool { return len(g.Skills) == 0 })
	slices.SortStableFunc(groups, func(a, b SkillGroup) int {
		return categoryRank(a.Key) - categoryRank(b.Key)
	})
	return groups
}

// DefaultProficiencyPercent is used for missing or unknown proficiency levels.
const DefaultProficiencyPercent = 50

// ProficiencyScale maps proficiency levels to a display percentage.
type ProficiencyScale struct {
	Name         string
	Beginner     int
	Intermediate int
	Advanced     int
	Expert       int
}

var (
	QuartileScale = ProficiencyScale{Name: "quartile", Beginner: 25, Intermediate: 50, Advanced: 75, Expert: 100}
	RenderedScale = ProficiencyScale{Name: "rendered", Beginner: 40, Intermediate: 60, Advanced: 80, Expert: 100}
)

// ScaleByName returns the named scale; unknown names fall back to RenderedScale with ok false.
func ScaleByName(name string) (ProficiencyScale, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case QuartileScale.Name:
		return QuartileScale, true
	case RenderedScale.Name:
		return RenderedScale, true
	}
	return RenderedScale, false
}

func (s ProficiencyScale) Percent(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "beginner":
		return s.Beginner
	case "intermediate":
		return s.Intermediate
	case "advanced":
		return s.Advanced
	case "expert":
		return s.Expert
	}
	return DefaultProficiencyPercent
}

// ProficiencyTone is the color family of a level's progress bar.
func ProficiencyTone(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "expert":
		return "purple"
	case "advanced":
		return "cyan"
	case "beginner":
		return "gray"
	}
	return "blue"
}

type EmploymentStatus struct {
	Employed bool   `json:"employed"`
	Company  string `json:"company,omitempty"`
	Role     string `json:"role,omitempty"`
}

func (s EmploymentStatus) Label() string {
	if !s.Employed {
		return "Open to opportunities"
	}
	if s.Company == "" {
		return "Currently employed"
	}
	return "Currently at " + s.Company
}

// DeriveEmploymentStatus picks the most recent position without an end date (or ending
// "present"). No such position means open to opportunities.
func DeriveEmploymentStatus(experience []portfolio.Experience) EmploymentStatus {
	for _, e := range SortExperience(experience) {
		if e.IsCurrent() {
			return EmploymentStatus{Employed: true, Company: e.Company, Role: e.Role}
		}
	}
	return EmploymentStatus{}
}

// LayoutPolicy decides which skill groups get a wide grid cell.
type LayoutPolicy struct {
	WideWhenGroups int
	WideCount      int
}

var DefaultLayoutPolicy = LayoutPolicy{WideWhenGroups: 5, WideCount: 2}

func (p LayoutPolicy) Wide(index, total int) bool {
	return p.WideWhenGroups > 0 && total == p.WideWhenGroups && index < p.WideCount
}
