package timetable

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

var ErrNotLoaded = errors.New("timetable not loaded")

// Repository holds the active Dataset. Planning calls take the current dataset once and use it
// for the whole call so a concurrent Swap is never observed half way through.
type Repository struct {
	current atomic.Pointer[Dataset]
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Current() (*Dataset, error) {
	dataset := r.current.Load()
	if dataset == nil {
		return nil, ErrNotLoaded
	}

	return dataset, nil
}

func (r *Repository) Loaded() bool {
	return r.current.Load() != nil
}

// Swap publishes a new dataset and returns the one it replaced
func (r *Repository) Swap(dataset *Dataset) *Dataset {
	previous := r.current.Swap(dataset)

	log.Info().
		Str("version", dataset.Version).
		Int("trips", len(dataset.Timetable)).
		Int("stops", len(dataset.Stops)).
		Int("routes", len(dataset.Routes)).
		Msg("Timetable dataset published")

	return previous
}

func (r *Repository) Load(ctx context.Context, source Source) error {
	dataset, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading timetable: %w", err)
	}

	r.Swap(dataset)

	return nil
}
