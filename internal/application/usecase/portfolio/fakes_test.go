package portfolio

import (
	"context"
	"errors"
	"fmt"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

type fakeSource struct {
	snapshot *portfolio.Snapshot
	err      error
	calls    int
}

func (f *fakeSource) FetchSnapshot(ctx context.Context) (*portfolio.Snapshot, error) {
	f.calls++
	return f.snapshot, f.err
}

type fakeImages struct{}

func (fakeImages) URL(ref portfolio.ImageRef, width, height int) (string, error) {
	if ref.AssetRef == "broken" {
		return "", errors.New("bad ref")
	}
	return fmt.Sprintf("https://img.test/%s?w=%d&h=%d", ref.AssetRef, width, height), nil
}
