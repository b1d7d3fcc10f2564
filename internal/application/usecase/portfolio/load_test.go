package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

func TestLoad_Transitions(t *testing.T) {
	l := NewLoad()
	assert.Equal(t, StateLoading, l.State())

	require.NoError(t, l.Complete(sampleSnapshot(), nil))
	assert.Equal(t, StateReady, l.State())
	assert.NoError(t, l.Err())

	assert.ErrorIs(t, l.Complete(nil, errors.New("late")), ErrLoadCompleted)
	assert.Equal(t, StateReady, l.State())
}

func TestLoad_Failed(t *testing.T) {
	l := NewLoad()
	cause := apperror.NewFetchFailed("boom", nil)
	require.NoError(t, l.Complete(nil, cause))
	assert.Equal(t, StateFailed, l.State())
	assert.Equal(t, cause, l.Err())

	empty := NewLoad()
	require.NoError(t, empty.Complete(nil, nil))
	assert.Equal(t, StateFailed, empty.State())
	assert.ErrorIs(t, empty.Err(), apperror.ErrMissingProfileData)
}

func TestLoadState_String(t *testing.T) {
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "failed", StateFailed.String())
}

func TestLoadPortfolioUseCase_Ready(t *testing.T) {
	src := &fakeSource{snapshot: sampleSnapshot()}
	uc := NewLoadPortfolioUseCase(src, NewViewBuilder(fakeImages{}, RenderedScale, DefaultLayoutPolicy), logger.NewNopLogger())

	out, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, StateReady, out.Load.State())
	assert.Equal(t, "Jane Q Doe", out.Load.View().Profile.FullName)
	assert.Equal(t, src.snapshot, out.Load.Snapshot())
}

func TestLoadPortfolioUseCase_Failed(t *testing.T) {
	for _, cause := range []error{
		apperror.NewConfigurationInvalid("bad id", nil),
		apperror.NewFetchFailed("timeout", nil),
		apperror.NewMissingProfileData(portfolio.MissingAboutMe),
	} {
		src := &fakeSource{err: cause}
		uc := NewLoadPortfolioUseCase(src, NewViewBuilder(nil, RenderedScale, DefaultLayoutPolicy), logger.NewNopLogger())

		out, err := uc.Execute(context.Background())

		assert.Equal(t, cause, err)
		require.NotNil(t, out)
		assert.Equal(t, StateFailed, out.Load.State())
		assert.Equal(t, 1, src.calls)
	}
}
