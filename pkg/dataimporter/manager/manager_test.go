package manager

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/planner/pkg/dataimporter/datasets"
	"github.com/travigo/planner/pkg/events"
	"github.com/travigo/planner/pkg/planner"
	"github.com/travigo/planner/pkg/timetable"
)

var testFeed = map[string]string{
	"routes.txt": "route_id,route_short_name,route_long_name,route_type,route_color\n" +
		"R1,RV,Regionale Veloce,2,ff0000\n" +
		"M1,M,Metro,1,\n",
	"trips.txt": "route_id,service_id,trip_id,trip_headsign,shape_id\n" +
		"R1,S1,T1,Bravo,\n" +
		"M1,S1,T2,Alpha,\n",
	"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
		"A,Stazione di Alpha,45.0,9.0\n" +
		"B,Bravo,45.1,9.1\n",
	"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
		"UNUSED,45.0,9.0,1\n",
	"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		"T1,08:00:00,08:00:00,A,1\n" +
		"T1,08:30:00,08:30:00,B,2\n" +
		"T2,09:00:00,09:00:00,B,1\n" +
		"T2,09:10:00,09:10:00,A,2\n",
	"calendar_dates.txt": "service_id,date,exception_type\n" +
		"S1,20240501,1\n",
}

func writeFeed(t *testing.T) string {
	directory := t.TempDir()

	for name, content := range testFeed {
		require.NoError(t, os.WriteFile(filepath.Join(directory, name), []byte(content), 0o644))
	}

	return directory
}

func zipFeed(t *testing.T) []byte {
	var buffer bytes.Buffer
	writer := zip.NewWriter(&buffer)

	for name, content := range testFeed {
		fileWriter, err := writer.Create("feed/" + name)
		require.NoError(t, err)
		_, err = fileWriter.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return buffer.Bytes()
}

func TestParseRegistry(t *testing.T) {
	assert := assert.New(t)

	registry := `
identifier: it-trenord
region: it
provider:
  name: Trenord
  website: https://www.trenord.it
sourceauthentication:
  header:
    x-api-key: secret
datasets:
  - identifier: gtfs-schedule
    source: https://example.com/gtfs.zip
    includeroutetypes: [2]
    refreshinterval: PT6H
---
identifier: local
provider:
  name: Local
datasets:
  - identifier: resources
    source: resources
    unpackbundle: none
`

	registered, err := ParseRegistry(strings.NewReader(registry))
	require.NoError(t, err)
	require.Len(t, registered, 2)

	trenord := registered[0]
	assert.Equal("it-trenord-gtfs-schedule", trenord.Identifier)
	assert.Equal("it-trenord", trenord.DataSourceRef)
	assert.Equal("Trenord", trenord.Provider.Name)
	assert.Equal(datasets.DataSetFormatGTFSSchedule, trenord.Format)
	assert.Equal(datasets.BundleFormatZIP, trenord.UnpackBundle)
	assert.Equal([]int{2}, trenord.IncludeRouteTypes)
	assert.Equal("secret", trenord.SourceAuthentication.Header["x-api-key"])

	refresh, err := trenord.RefreshDuration(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(6*time.Hour, refresh)

	local := registered[1]
	assert.Equal("local-resources", local.Identifier)
	assert.Equal(datasets.BundleFormatNone, local.UnpackBundle)

	refresh, err = local.RefreshDuration(time.Now())
	require.NoError(t, err)
	assert.Zero(refresh)
}

func TestParseRegistryInvalid(t *testing.T) {
	_, err := ParseRegistry(strings.NewReader("datasets: [}"))
	assert.Error(t, err)
}

func TestGetDataset(t *testing.T) {
	directory := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(directory, "local.yaml"), []byte("identifier: local\ndatasets:\n  - identifier: feed\n    source: resources\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(directory, "README.md"), []byte("ignored"), 0o644))

	previous := RegistryDirectory
	RegistryDirectory = directory
	defer func() { RegistryDirectory = previous }()

	dataset, err := GetDataset("local-feed")
	require.NoError(t, err)
	assert.Equal(t, "resources", dataset.Source)

	_, err = GetDataset("missing")
	assert.ErrorIs(t, err, ErrDatasetNotRegistered)
}

func TestPreprocessDirectory(t *testing.T) {
	assert := assert.New(t)

	output := t.TempDir()

	dataset, err := Preprocess(context.Background(), PreprocessOptions{
		Input:  writeFeed(t),
		Output: output,
	})
	require.NoError(t, err)

	// Default route types drop the metro
	assert.Equal(1, dataset.Stats.TotalRoutes)
	assert.Equal(1, dataset.Stats.TotalTrips)

	loaded, err := (&timetable.DirectorySource{Directory: output}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(dataset.Version, loaded.Version)
	assert.Equal("Alpha", loaded.StopName("A"))
	assert.NotNil(loaded.Trip("T1"))
}

func TestPreprocessRouteTypes(t *testing.T) {
	dataset, err := Preprocess(context.Background(), PreprocessOptions{
		Input:             writeFeed(t),
		IncludeRouteTypes: []int{1},
	})
	require.NoError(t, err)

	assert.NotNil(t, dataset.Trip("T2"))
	assert.Nil(t, dataset.Trip("T1"))
}

func TestPreprocessSameInstantReplansOnNewDataset(t *testing.T) {
	assert := assert.New(t)

	input := writeFeed(t)
	generatedAt := time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC)

	repository := timetable.NewRepository()
	journeyPlanner := planner.NewPlanner(repository, planner.NewStreamCache(4))
	query := planner.Query{Origin: "A", Destination: "B", Date: "2024-05-01"}

	railDataset, err := Preprocess(context.Background(), PreprocessOptions{Input: input, GeneratedAt: generatedAt})
	require.NoError(t, err)
	repository.Swap(railDataset)

	itinerary, err := journeyPlanner.Plan(context.Background(), query)
	require.NoError(t, err)
	assert.True(itinerary.Found)
	assert.Equal([]string{"T1"}, itinerary.UniqueTrips)

	metroDataset, err := Preprocess(context.Background(), PreprocessOptions{Input: input, GeneratedAt: generatedAt, IncludeRouteTypes: []int{1}})
	require.NoError(t, err)
	assert.NotEqual(railDataset.Version, metroDataset.Version)
	repository.Swap(metroDataset)

	itinerary, err = journeyPlanner.Plan(context.Background(), query)
	require.NoError(t, err)
	assert.False(itinerary.Found)
	assert.Empty(itinerary.UniqueTrips)
}

func TestPreprocessMissingInput(t *testing.T) {
	_, err := Preprocess(context.Background(), PreprocessOptions{Input: filepath.Join(t.TempDir(), "nothing")})
	assert.Error(t, err)
}

func TestPreprocessNotifies(t *testing.T) {
	redisServer := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})

	connection, err := rmq.OpenConnectionWithRedisClient("test", client, nil)
	require.NoError(t, err)

	queue, err := connection.OpenQueue(events.DatasetQueuePrefix + "-test")
	require.NoError(t, err)

	_, err = Preprocess(context.Background(), PreprocessOptions{
		Input:  writeFeed(t),
		Output: t.TempDir(),
		Notify: connection,
	})
	require.NoError(t, err)

	ready, err := queue.ReadyCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), ready)
}

func TestImportDatasetDownload(t *testing.T) {
	archive := zipFeed(t)

	var apiKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.URL.Query().Get("key")
		w.Write(archive)
	}))
	defer server.Close()

	dataset := &datasets.DataSet{
		Identifier:   "test-feed",
		Format:       datasets.DataSetFormatGTFSSchedule,
		Source:       server.URL + "/gtfs.zip",
		UnpackBundle: datasets.BundleFormatZIP,
		SourceAuthentication: datasets.SourceAuthentication{
			Query: map[string]string{"key": "secret"},
		},
		IncludeRouteTypes: []int{1, 2},
	}

	imported, err := ImportDataset(context.Background(), dataset, PreprocessOptions{})
	require.NoError(t, err)

	assert.Equal(t, "secret", apiKey)
	assert.Equal(t, 2, imported.Stats.TotalTrips)
}

func TestImportDatasetDownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := ImportDataset(context.Background(), &datasets.DataSet{
		Format: datasets.DataSetFormatGTFSSchedule,
		Source: server.URL + "/gtfs.zip",
	}, PreprocessOptions{})
	assert.ErrorContains(t, err, "403")
}

func TestImportDatasetUnknownFormat(t *testing.T) {
	_, err := ImportDataset(context.Background(), &datasets.DataSet{Format: "gb-cif"}, PreprocessOptions{})
	assert.ErrorContains(t, err, "unrecognised format")
}
