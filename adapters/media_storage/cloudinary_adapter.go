package media_storage

import (
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type cloudinaryAdapter struct {
	cld    *cloudinary.Cloudinary
	origin service.ImageURLBuilder
}

// NewCloudinaryAdapter delivers origin image URLs through Cloudinary fetch, cropped to the
// requested size.
func NewCloudinaryAdapter(cfg config.Config, origin service.ImageURLBuilder, log logger.Logger) (service.ImageURLBuilder, error) {
	if cfg.Cloudinary.CloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud_name has not config")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}

	log.Info("Cloudinary image delivery initialized")
	return &cloudinaryAdapter{cld: cld, origin: origin}, nil
}

func (a *cloudinaryAdapter) URL(ref portfolio.ImageRef, width, height int) (string, error) {
	src, err := a.origin.URL(ref, width, height)
	if err != nil {
		return "", err
	}

	img, err := a.cld.Image(src)
	if err != nil {
		return "", fmt.Errorf("failed to create cloudinary asset: %w", err)
	}
	img.DeliveryType = api.Fetch
	img.Transformation = fmt.Sprintf("c_fill,w_%d,h_%d", width, height)

	u, err := img.String()
	if err != nil {
		return "", fmt.Errorf("failed to build cloudinary url: %w", err)
	}
	return u, nil
}

// NewImageURLBuilder picks the image delivery configured by media.provider.
func NewImageURLBuilder(cfg config.Config, log logger.Logger) (service.ImageURLBuilder, error) {
	origin := NewSanityImageAdapter(cfg)
	if cfg.Media.Provider == config.MediaProviderCloudinary {
		return NewCloudinaryAdapter(cfg, origin, log)
	}
	return origin, nil
}
