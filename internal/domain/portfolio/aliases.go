package portfolio

// FieldAliases lists the source names of one canonical field, highest priority first.
// The canonical name itself is always tried before the aliases. Dotted aliases address
// nested values.
type FieldAliases struct {
	Canonical string
	Aliases   []string
}

// Candidates returns the canonical name followed by its aliases.
func (f FieldAliases) Candidates() []string {
	return append([]string{f.Canonical}, f.Aliases...)
}

// AliasTable declares how one entity type is found in the content repository and how its
// fields are resolved.
type AliasTable struct {
	Key      string
	DocTypes []string
	Single   bool
	Fields   []FieldAliases
}

// Field returns the aliases declared for a canonical field.
func (t AliasTable) Field(canonical string) (FieldAliases, bool) {
	for _, f := range t.Fields {
		if f.Canonical == canonical {
			return f, true
		}
	}
	return FieldAliases{}, false
}

var ProfileAliases = AliasTable{
	Key:      "aboutMe",
	DocTypes: []string{"about", "aboutMe"},
	Single:   true,
	Fields: []FieldAliases{
		{Canonical: "fullName", Aliases: []string{"name"}},
		{Canonical: "role", Aliases: []string{"title", "jobTitle"}},
		{Canonical: "shortBio", Aliases: []string{"bio", "description"}},
		{Canonical: "profilePicture", Aliases: []string{"profileImage"}},
		{Canonical: "email"},
		{Canonical: "location"},
		{Canonical: "resumeLink", Aliases: []string{"resumeUrl", "resume.asset.url", "resume", "cv.asset.url", "cv"}},
		{Canonical: "socialLinks"},
	},
}

var EducationAliases = AliasTable{
	Key:      "education",
	DocTypes: []string{"education"},
	Fields: []FieldAliases{
		{Canonical: "institution", Aliases: []string{"Institution"}},
		{Canonical: "degree", Aliases: []string{"Degree"}},
		{Canonical: "major", Aliases: []string{"Major"}},
		{Canonical: "startDate", Aliases: []string{"StartDate"}},
		{Canonical: "endDate", Aliases: []string{"EndDate"}},
	},
}

var ExperienceAliases = AliasTable{
	Key:      "experience",
	DocTypes: []string{"experience"},
	Fields: []FieldAliases{
		{Canonical: "company"},
		{Canonical: "role", Aliases: []string{"position", "title"}},
		{Canonical: "location"},
		{Canonical: "startDate"},
		{Canonical: "endDate"},
		{Canonical: "description"},
		{Canonical: "technologies", Aliases: []string{"techStack"}},
	},
}

var ProjectAliases = AliasTable{
	Key:      "projects",
	DocTypes: []string{"project"},
	Fields: []FieldAliases{
		{Canonical: "title", Aliases: []string{"name"}},
		{Canonical: "description"},
		{Canonical: "technologies", Aliases: []string{"techStack"}},
		{Canonical: "image", Aliases: []string{"projectImage"}},
		{Canonical: "githubLink", Aliases: []string{"github"}},
		{Canonical: "liveDemoLink", Aliases: []string{"demoLink", "demo", "liveLink"}},
	},
}

var SkillAliases = AliasTable{
	Key:      "skills",
	DocTypes: []string{"skill"},
	Fields: []FieldAliases{
		{Canonical: "skillName", Aliases: []string{"name", "title"}},
		{Canonical: "category"},
		{Canonical: "proficiency", Aliases: []string{"level"}},
	},
}

// Tables returns every alias table in query order.
func Tables() []AliasTable {
	return []AliasTable{ProfileAliases, EducationAliases, ExperienceAliases, ProjectAliases, SkillAliases}
}
