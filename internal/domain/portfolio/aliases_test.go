package portfolio

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func jsonFields(v any) map[string]bool {
	fields := map[string]bool{}
	typ := reflect.TypeOf(v)
	for i := 0; i < typ.NumField(); i++ {
		name, _, _ := strings.Cut(typ.Field(i).Tag.Get("json"), ",")
		fields[name] = true
	}
	return fields
}

// Every canonical field of an alias table must exist on the record it fills, and every
// record field must be declared in its table.
func TestAliasTables_MatchRecords(t *testing.T) {
	records := map[string]any{
		ProfileAliases.Key:    Profile{},
		EducationAliases.Key:  Education{},
		ExperienceAliases.Key: Experience{},
		ProjectAliases.Key:    Project{},
		SkillAliases.Key:      Skill{},
	}

	for _, table := range Tables() {
		record, ok := records[table.Key]
		if !assert.True(t, ok, "no record for table %q", table.Key) {
			continue
		}
		fields := jsonFields(record)
		declared := map[string]bool{}
		for _, f := range table.Fields {
			assert.True(t, fields[f.Canonical], "%s: canonical field %q not on record", table.Key, f.Canonical)
			assert.False(t, declared[f.Canonical], "%s: %q declared twice", table.Key, f.Canonical)
			declared[f.Canonical] = true
		}
		assert.Len(t, declared, len(fields), "%s: record fields and table differ", table.Key)
		assert.NotEmpty(t, table.DocTypes)
	}
}

func TestFieldAliases_Candidates(t *testing.T) {
	f, ok := ProjectAliases.Field("liveDemoLink")
	assert.True(t, ok)
	assert.Equal(t, []string{"liveDemoLink", "demoLink", "demo", "liveLink"}, f.Candidates())

	_, ok = ProjectAliases.Field("unknown")
	assert.False(t, ok)
}
