package gtfs

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

// RequiredFiles must all be present before a feed directory is converted
var RequiredFiles = []string{
	"routes.txt",
	"trips.txt",
	"stops.txt",
	"shapes.txt",
	"stop_times.txt",
	"calendar_dates.txt",
}

type Schedule struct {
	Agencies      []Agency
	Stops         []Stop
	Routes        []Route
	Trips         []Trip
	StopTimes     []StopTime
	CalendarDates []CalendarDate
	Shapes        []Shape
}

func init() {
	// Allow us to ignore those naughty records that have missing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		return r
	})
}

func (g *Schedule) fileMap() map[string]interface{} {
	return map[string]interface{}{
		"agency.txt":         &g.Agencies,
		"stops.txt":          &g.Stops,
		"routes.txt":         &g.Routes,
		"trips.txt":          &g.Trips,
		"stop_times.txt":     &g.StopTimes,
		"calendar_dates.txt": &g.CalendarDates,
		"shapes.txt":         &g.Shapes,
	}
}

// MissingFiles lists the required feed files not found in directory
func MissingFiles(directory string) []string {
	missing := []string{}

	for _, fileName := range RequiredFiles {
		info, err := os.Stat(filepath.Join(directory, fileName))
		if err != nil || info.IsDir() {
			missing = append(missing, fileName)
		}
	}

	return missing
}

// ParseDirectory reads an unpacked feed
func (g *Schedule) ParseDirectory(directory string) error {
	if missing := MissingFiles(directory); len(missing) > 0 {
		return fmt.Errorf("gtfs files missing from %s: %v", directory, missing)
	}

	for fileName, destination := range g.fileMap() {
		file, err := os.Open(filepath.Join(directory, fileName))
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return err
		}

		err = g.parseCSV(fileName, file, destination)
		file.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

// ParseFile reads a zipped feed
func (g *Schedule) ParseFile(reader io.Reader) error {
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return err
	}

	fileMap := g.fileMap()
	found := map[string]bool{}

	for _, zipFile := range archive.File {
		fileName := filepath.Base(zipFile.Name)

		destination, exists := fileMap[fileName]
		if !exists {
			log.Debug().Str("file", zipFile.Name).Msg("Ignoring gtfs file")
			continue
		}

		fileReader, err := zipFile.Open()
		if err != nil {
			return err
		}

		err = g.parseCSV(fileName, fileReader, destination)
		fileReader.Close()

		if err != nil {
			return err
		}
		found[fileName] = true
	}

	for _, fileName := range RequiredFiles {
		if !found[fileName] {
			return fmt.Errorf("gtfs archive is missing %s", fileName)
		}
	}

	return nil
}

func (g *Schedule) parseCSV(fileName string, reader io.Reader, destination interface{}) error {
	log.Info().Str("file", fileName).Msg("Loading file")

	if err := gocsv.Unmarshal(skipByteOrderMark(reader), destination); err != nil {
		log.Error().Str("file", fileName).Err(err).Msg("Failed to parse csv file")
		return fmt.Errorf("parsing %s: %w", fileName, err)
	}

	return nil
}

func skipByteOrderMark(reader io.Reader) io.Reader {
	buffered := bufio.NewReader(reader)

	if mark, err := buffered.Peek(3); err == nil && bytes.Equal(mark, []byte{0xEF, 0xBB, 0xBF}) {
		buffered.Discard(3)
	}

	return buffered
}
