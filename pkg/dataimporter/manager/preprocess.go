package manager

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/dataimporter/formats/gtfs"
	"github.com/travigo/planner/pkg/events"
	"github.com/travigo/planner/pkg/timetable"
)

type PreprocessOptions struct {
	// Input is either an unpacked feed directory or a zip archive
	Input  string
	Output string

	IncludeRouteTypes []int

	// GeneratedAt stamps the dataset, now when zero
	GeneratedAt time.Time

	StoreInMongo bool

	// Notify announces the new dataset on the dataset events queues when set
	Notify rmq.Connection
}

// Preprocess converts a GTFS feed into a timetable dataset and publishes it to the configured outputs
func Preprocess(ctx context.Context, options PreprocessOptions) (*timetable.Dataset, error) {
	startTime := time.Now()

	schedule := &gtfs.Schedule{}

	info, err := os.Stat(options.Input)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		err = schedule.ParseDirectory(options.Input)
	} else {
		var file *os.File
		file, err = os.Open(options.Input)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		err = schedule.ParseFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing gtfs feed %s: %w", options.Input, err)
	}

	includeRouteTypes := options.IncludeRouteTypes
	if len(includeRouteTypes) == 0 {
		includeRouteTypes = gtfs.DefaultRouteTypes
	}

	dataset := schedule.Convert(gtfs.ConvertOptions{
		IncludeRouteTypes: includeRouteTypes,
		StopNamePrefixes:  gtfs.DefaultStopNamePrefixes,
		GeneratedAt:       options.GeneratedAt,
	})

	sourceKind := timetable.SourceKindFile

	if options.Output != "" {
		if err := timetable.WriteDirectory(options.Output, dataset); err != nil {
			return nil, err
		}
	}

	if options.StoreInMongo {
		if err := (&timetable.MongoSource{}).Store(ctx, dataset); err != nil {
			return nil, err
		}
		sourceKind = timetable.SourceKindMongo
	}

	if options.Notify != nil {
		err := events.PublishDatasetImported(options.Notify, ctdf.DatasetImportedEvent{
			Version:   dataset.Version,
			Directory: options.Output,
			Source:    sourceKind,
			Stats:     dataset.Stats,
		})
		if err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("version", dataset.Version).
		Int("routes", dataset.Stats.TotalRoutes).
		Int("trips", dataset.Stats.TotalTrips).
		Int("stops", dataset.Stats.TotalStops).
		Str("output", options.Output).
		Msgf("Preprocess took %s", time.Since(startTime).String())

	return dataset, nil
}
