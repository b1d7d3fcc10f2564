package media_storage

import (
	"fmt"
	"regexp"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

// image-{id}-{width}x{height}-{format}
var assetRefPattern = regexp.MustCompile(`^image-([A-Za-z0-9]+)-(\d+x\d+)-([a-z0-9]+)$`)

type sanityImageAdapter struct {
	projectID string
	dataset   string
}

func NewSanityImageAdapter(cfg config.Config) service.ImageURLBuilder {
	return &sanityImageAdapter{projectID: cfg.Content.ProjectID, dataset: cfg.Content.Dataset}
}

// URL resolves a reference against the Sanity image CDN. A reference that already carries
// a URL is returned unchanged.
func (a *sanityImageAdapter) URL(ref portfolio.ImageRef, width, height int) (string, error) {
	if ref.URL != "" {
		return ref.URL, nil
	}
	m := assetRefPattern.FindStringSubmatch(ref.AssetRef)
	if m == nil {
		return "", fmt.Errorf("malformed image asset reference %q", ref.AssetRef)
	}
	return fmt.Sprintf("https://cdn.sanity.io/images/%s/%s/%s-%s.%s?w=%d&h=%d",
		a.projectID, a.dataset, m[1], m[2], m[3], width, height), nil
}
