package timetable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/travigo/planner/pkg/ctdf"
)

var ErrDatasetNotFound = errors.New("timetable dataset not found")

type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

const (
	SourceKindFile  = "file"
	SourceKindMongo = "mongo"
)

// NewSource returns the source for a kind, the directory is only used by file sources
func NewSource(kind string, directory string) (Source, error) {
	switch kind {
	case SourceKindFile, "":
		return &DirectorySource{Directory: directory}, nil
	case SourceKindMongo:
		return &MongoSource{}, nil
	default:
		return nil, fmt.Errorf("unknown timetable source %q", kind)
	}
}

const (
	RoutesFile    = "routes.json"
	StopsFile     = "stops.json"
	ShapesFile    = "shapes.json"
	TimetableFile = "timetable.json"
	CalendarFile  = "calendar.json"
	StatsFile     = "stats.json"
)

// DirectorySource reads the processed JSON files written by the GTFS importer
type DirectorySource struct {
	Directory string
}

func (s *DirectorySource) Exists() bool {
	_, err := os.Stat(filepath.Join(s.Directory, TimetableFile))
	return err == nil
}

func (s *DirectorySource) Load(ctx context.Context) (*Dataset, error) {
	if !s.Exists() {
		return nil, fmt.Errorf("%s in %s: %w", TimetableFile, s.Directory, ErrDatasetNotFound)
	}

	var routes map[string]*ctdf.Route
	var stops map[string]*ctdf.Stop
	var trips map[string]*ctdf.Trip
	var shapes map[string]ctdf.Shape
	var calendar ctdf.ServiceCalendar
	var stats ctdf.DatasetStats

	required := map[string]interface{}{
		RoutesFile:    &routes,
		StopsFile:     &stops,
		TimetableFile: &trips,
		CalendarFile:  &calendar,
	}
	optional := map[string]interface{}{
		ShapesFile: &shapes,
		StatsFile:  &stats,
	}

	for fileName, destination := range required {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := s.readFile(fileName, destination); err != nil {
			return nil, err
		}
	}
	for fileName, destination := range optional {
		err := s.readFile(fileName, destination)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	version := stats.Version
	if version == "" {
		version = stats.GeneratedAt
	}
	if version == "" {
		info, err := os.Stat(filepath.Join(s.Directory, TimetableFile))
		if err != nil {
			return nil, err
		}
		version = info.ModTime().UTC().Format(time.RFC3339Nano)
	}

	return NewDataset(version, routes, stops, trips, shapes, calendar, stats), nil
}

func (s *DirectorySource) readFile(fileName string, destination interface{}) error {
	file, err := os.Open(filepath.Join(s.Directory, fileName))
	if err != nil {
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(destination); err != nil {
		return fmt.Errorf("decoding %s: %w", fileName, err)
	}

	return nil
}

// WriteDirectory writes the dataset in the layout DirectorySource reads
func WriteDirectory(directory string, dataset *Dataset) error {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return err
	}

	for _, name := range []string{"routes", "shapes", "stops", "timetable", "calendar", "stats"} {
		document, _ := dataset.Document(name)

		output, err := json.MarshalIndent(document, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s: %w", name, err)
		}

		if err := os.WriteFile(filepath.Join(directory, name+".json"), output, 0o644); err != nil {
			return err
		}
	}

	return nil
}
