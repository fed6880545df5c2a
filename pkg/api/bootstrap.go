package api

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/dataimporter/formats/gtfs"
	"github.com/travigo/planner/pkg/dataimporter/manager"
	"github.com/travigo/planner/pkg/timetable"
)

type BootstrapOptions struct {
	SourceKind     string
	DataDirectory  string
	InputDirectory string
}

// Bootstrap loads the initial dataset. A file source with no processed timetable is first built
// from the GTFS input directory when every required file is there. Having nothing to load is not
// an error, the planner answers 503 until a dataset is published.
func Bootstrap(ctx context.Context, repository *timetable.Repository, options BootstrapOptions) error {
	source, err := timetable.NewSource(options.SourceKind, options.DataDirectory)
	if err != nil {
		return err
	}

	if directorySource, ok := source.(*timetable.DirectorySource); ok && !directorySource.Exists() {
		missing := gtfs.MissingFiles(options.InputDirectory)
		if len(missing) > 0 {
			log.Warn().Str("in", options.InputDirectory).Strs("missing", missing).Msg("No timetable and no GTFS input, call /core/preprocess once the GTFS files are in place")
			return nil
		}

		log.Info().Str("in", options.InputDirectory).Str("out", options.DataDirectory).Msg("Preprocessing GTFS input")

		dataset, err := manager.Preprocess(ctx, manager.PreprocessOptions{
			Input:  options.InputDirectory,
			Output: options.DataDirectory,
		})
		if err != nil {
			return err
		}

		repository.Swap(dataset)
		return nil
	}

	err = repository.Load(ctx, source)
	if errors.Is(err, timetable.ErrDatasetNotFound) {
		log.Warn().Err(err).Msg("No timetable dataset loaded")
		return nil
	}

	return err
}
