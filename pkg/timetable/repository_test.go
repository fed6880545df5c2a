package timetable

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	dataset *Dataset
	err     error
}

func (s staticSource) Load(ctx context.Context) (*Dataset, error) {
	return s.dataset, s.err
}

func TestRepositoryNotLoaded(t *testing.T) {
	repository := NewRepository()

	_, err := repository.Current()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.False(t, repository.Loaded())
}

func TestRepositorySwap(t *testing.T) {
	assert := assert.New(t)

	repository := NewRepository()
	first := testDataset()
	second := testDataset()
	second.Version = "second"

	assert.Nil(repository.Swap(first))

	captured, err := repository.Current()
	require.NoError(t, err)

	assert.Same(first, repository.Swap(second))

	current, err := repository.Current()
	require.NoError(t, err)
	assert.Equal("second", current.Version)
	assert.Equal("test", captured.Version)
}

func TestRepositoryLoad(t *testing.T) {
	repository := NewRepository()

	err := repository.Load(context.Background(), staticSource{err: ErrDatasetNotFound})
	assert.ErrorIs(t, err, ErrDatasetNotFound)
	assert.False(t, repository.Loaded())

	err = repository.Load(context.Background(), staticSource{dataset: testDataset()})
	require.NoError(t, err)
	assert.True(t, repository.Loaded())

	err = repository.Load(context.Background(), staticSource{err: errors.New("boom")})
	assert.Error(t, err)
	assert.True(t, repository.Loaded())
}
