package service

import (
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

// ImageURLBuilder resolves an image reference to a concrete URL of the given size.
// It never touches image bytes.
type ImageURLBuilder interface {
	URL(ref portfolio.ImageRef, width, height int) (string, error)
}
