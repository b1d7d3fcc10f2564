package media_storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/logger"
)

func testConfig() config.Config {
	var cfg config.Config
	cfg.Content.ProjectID = "abc123"
	cfg.Content.Dataset = "production"
	cfg.Media.Provider = config.MediaProviderSanity
	return cfg
}

func TestSanityImageAdapter_URL(t *testing.T) {
	a := NewSanityImageAdapter(testConfig())

	u, err := a.URL(portfolio.ImageRef{AssetRef: "image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg"}, 800, 800)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.sanity.io/images/abc123/production/Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000.jpg?w=800&h=800", u)

	u, err = a.URL(portfolio.ImageRef{URL: "https://example.com/me.png"}, 800, 800)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/me.png", u)

	_, err = a.URL(portfolio.ImageRef{AssetRef: "file-abc-pdf"}, 800, 800)
	assert.Error(t, err)
}

func TestNewImageURLBuilder(t *testing.T) {
	cfg := testConfig()
	b, err := NewImageURLBuilder(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	assert.IsType(t, &sanityImageAdapter{}, b)

	cfg.Media.Provider = config.MediaProviderCloudinary
	_, err = NewImageURLBuilder(cfg, logger.NewNopLogger())
	assert.Error(t, err)

	cfg.Cloudinary.CloudName = "demo"
	b, err = NewImageURLBuilder(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	assert.IsType(t, &cloudinaryAdapter{}, b)
}

func TestCloudinaryAdapter_URL(t *testing.T) {
	cfg := testConfig()
	cfg.Cloudinary.CloudName = "demo"
	b, err := NewCloudinaryAdapter(cfg, NewSanityImageAdapter(cfg), logger.NewNopLogger())
	require.NoError(t, err)

	u, err := b.URL(portfolio.ImageRef{AssetRef: "image-abc-1200x800-png"}, 800, 450)
	require.NoError(t, err)
	assert.Contains(t, u, "res.cloudinary.com/demo/image/fetch/")
	assert.Contains(t, u, "c_fill,w_800,h_450")
	assert.Contains(t, u, "cdn.sanity.io")

	_, err = b.URL(portfolio.ImageRef{AssetRef: "nope"}, 800, 450)
	assert.Error(t, err)
}
