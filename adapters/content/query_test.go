package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

func TestBuildQuery_Profile(t *testing.T) {
	q := BuildQuery(portfolio.ProfileAliases)

	assert.Equal(t,
		`{"aboutMe": *[_type in ["about", "aboutMe"]][0]{..., "resume": coalesce(resume{..., asset->}, resume), "cv": coalesce(cv{..., asset->}, cv)}}`,
		q)
}

func TestBuildQuery_ListTables(t *testing.T) {
	q := BuildQuery(portfolio.ProjectAliases, portfolio.SkillAliases)

	assert.Equal(t, `{"projects": *[_type in ["project"]]{...}, "skills": *[_type in ["skill"]]{...}}`, q)
}

func TestBuildQuery_AllTables(t *testing.T) {
	q := BuildQuery(portfolio.Tables()...)

	for _, key := range []string{`"aboutMe":`, `"education":`, `"experience":`, `"projects":`, `"skills":`} {
		assert.Contains(t, q, key)
	}
	assert.NotContains(t, q, `"projects": *[_type in ["project"]][0]`)
}
