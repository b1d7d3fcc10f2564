package content

import (
	"fmt"
	"strings"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

// BuildQuery renders one GROQ query that fetches every entity table in a single round
// trip. Each document is returned whole; aliases that reach through an asset reference
// (resume.asset.url) get a projection that dereferences the asset.
func BuildQuery(tables ...portfolio.AliasTable) string {
	parts := make([]string, 0, len(tables))
	for _, t := range tables {
		parts = append(parts, fmt.Sprintf("%q: %s", t.Key, tableQuery(t)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func tableQuery(t portfolio.AliasTable) string {
	types := make([]string, len(t.DocTypes))
	for i, dt := range t.DocTypes {
		types[i] = fmt.Sprintf("%q", dt)
	}

	var sb strings.Builder
	sb.WriteString("*[_type in [")
	sb.WriteString(strings.Join(types, ", "))
	sb.WriteString("]]")
	if t.Single {
		sb.WriteString("[0]")
	}
	sb.WriteString(projection(t))
	return sb.String()
}

func projection(t portfolio.AliasTable) string {
	fields := []string{"..."}
	for _, root := range assetRoots(t) {
		fields = append(fields, fmt.Sprintf("%q: coalesce(%s{..., asset->}, %s)", root, root, root))
	}
	return "{" + strings.Join(fields, ", ") + "}"
}

// assetRoots lists, in declaration order, the top-level attributes some candidate path
// reads through "<root>.asset.".
func assetRoots(t portfolio.AliasTable) []string {
	var roots []string
	seen := map[string]bool{}
	for _, f := range t.Fields {
		for _, path := range f.Candidates() {
			root, rest, ok := strings.Cut(path, ".")
			if !ok || !strings.HasPrefix(rest, "asset.") || seen[root] {
				continue
			}
			seen[root] = true
			roots = append(roots, root)
		}
	}
	return roots
}
