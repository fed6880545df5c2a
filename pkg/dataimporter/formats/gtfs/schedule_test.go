package gtfs

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/planner/pkg/ctdf"
)

var testFeed = map[string]string{
	"routes.txt": "\xEF\xBB\xBFroute_id,agency_id,route_short_name,route_long_name,route_type,route_color\n" +
		"R1,AG,RV,Regionale Veloce,2,ff0000\n" +
		"B1,AG,12,Bus dodici,3,\n" +
		"F1,AG,T,Traghetto,4,#00ff00\n",
	"trips.txt": "route_id,service_id,trip_id,trip_headsign,shape_id\n" +
		"R1,S1,T1,Milano,SH1\n" +
		"B1,S2,T2,Centro,\n" +
		"F1,S1,T3,Isola,SH2\n",
	"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
		"A,Stazione di Alpha,45.0,9.0\n" +
		"B,Bravo,45.1,9.1\n" +
		"C,Charlie,45.2,9.2\n",
	"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
		"SH1,45.1,9.1,2\n" +
		"SH1,45.0,9.0,1\n" +
		"SH2,40.0,8.0,1\n",
	"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		"T1,08:30:00,08:30:00,B,2\n" +
		"T1,08:00:00,08:00:00,A,1\n" +
		"T2,09:00:00,09:00:00,B,1\n" +
		"T2,09:20:30,09:21:00,C,2\n" +
		"T3,10:00:00,10:00:00,A,1\n",
	"calendar_dates.txt": "service_id,date,exception_type\n" +
		"S1,20240501,1\n" +
		"S1,20240502,2\n" +
		"S2,20240501,1\n",
}

func writeFeed(t *testing.T, files map[string]string) string {
	directory := t.TempDir()

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(directory, name), []byte(content), 0o644))
	}

	return directory
}

func TestScheduleConvert(t *testing.T) {
	assert := assert.New(t)

	schedule := &Schedule{}
	require.NoError(t, schedule.ParseDirectory(writeFeed(t, testFeed)))

	generatedAt := time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC)
	dataset := schedule.Convert(ConvertOptions{
		IncludeRouteTypes: DefaultRouteTypes,
		StopNamePrefixes:  DefaultStopNamePrefixes,
		GeneratedAt:       generatedAt,
	})

	// Routes
	assert.Len(dataset.Routes, 2)
	assert.Nil(dataset.Route("F1"))
	assert.Equal(&ctdf.Route{ID: "R1", ShortName: "RV", LongName: "Regionale Veloce", Colour: "#ff0000", Type: "2", Mode: ctdf.TransportModeTrain}, dataset.Route("R1"))
	assert.Equal(ctdf.DefaultRouteColour, dataset.Route("B1").Colour)
	assert.Equal(ctdf.TransportModeBus, dataset.Route("B1").Mode)

	// Stops
	assert.Len(dataset.Stops, 3)
	assert.Equal("Alpha", dataset.Stop("A").Name)
	assert.Equal("Stazione di Alpha", dataset.Stop("A").FullName)
	assert.Equal(45.0, dataset.Stop("A").Latitude)

	// Trips
	assert.Len(dataset.Timetable, 2)
	assert.Nil(dataset.Trip("T3"))

	railTrip := dataset.Trip("T1")
	require.NotNil(t, railTrip)
	assert.Equal("A", railTrip.Stops[0].StopID)
	assert.Equal("B", railTrip.Stops[1].StopID)
	assert.Equal("08:00:00", railTrip.Departure)
	assert.Equal("08:30:00", railTrip.Arrival)
	assert.Equal(30, railTrip.DurationMinutes)
	assert.Equal(2, railTrip.StopCount)
	assert.Equal("Milano", railTrip.Headsign)
	assert.Equal("SH1", railTrip.ShapeID)
	assert.Equal(map[string]int{"2024-05-01": 1, "2024-05-02": 2}, railTrip.ServiceDates)

	busTrip := dataset.Trip("T2")
	require.NotNil(t, busTrip)
	assert.Equal(20, busTrip.DurationMinutes)
	assert.Equal(ctdf.GeneratedShapeID("T2"), busTrip.ShapeID)

	// Shapes
	assert.Equal(ctdf.Shape{{45.0, 9.0}, {45.1, 9.1}}, dataset.Shapes["SH1"])
	assert.Equal(ctdf.Shape{{45.1, 9.1}, {45.2, 9.2}}, dataset.Shapes["generated_T2"])
	assert.NotContains(dataset.Shapes, "SH2")

	// Calendar and stats
	assert.True(dataset.ServiceActive(busTrip, "2024-05-01"))
	assert.False(dataset.ServiceActive(railTrip, "2024-05-02"))
	assert.Equal(2, dataset.Stats.TotalRoutes)
	assert.Equal(2, dataset.Stats.TotalTrips)
	assert.Equal(3, dataset.Stats.TotalStops)
	assert.Equal(2, dataset.Stats.TotalShapes)
	assert.Equal("2024-04-30T12:00:00Z", dataset.Stats.GeneratedAt)
	assert.Equal(dataset.Stats.Version, dataset.Version)
	assert.True(strings.HasPrefix(dataset.Version, "2024-04-30T12:00:00Z-"))
}

func TestScheduleConvertVersion(t *testing.T) {
	assert := assert.New(t)

	schedule := &Schedule{}
	require.NoError(t, schedule.ParseDirectory(writeFeed(t, testFeed)))

	generatedAt := time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC)

	rail := schedule.Convert(ConvertOptions{IncludeRouteTypes: []int{2}, GeneratedAt: generatedAt})
	railAgain := schedule.Convert(ConvertOptions{IncludeRouteTypes: []int{2}, GeneratedAt: generatedAt})
	bus := schedule.Convert(ConvertOptions{IncludeRouteTypes: []int{3}, GeneratedAt: generatedAt})

	assert.Equal(rail.Version, railAgain.Version)
	assert.NotEqual(rail.Version, bus.Version)
}

func TestScheduleConvertAllRouteTypes(t *testing.T) {
	schedule := &Schedule{}
	require.NoError(t, schedule.ParseDirectory(writeFeed(t, testFeed)))

	dataset := schedule.Convert(ConvertOptions{})

	assert.Len(t, dataset.Routes, 3)
	assert.Equal(t, ctdf.TransportModeFerry, dataset.Route("F1").Mode)

	ferryTrip := dataset.Trip("T3")
	require.NotNil(t, ferryTrip)
	assert.Equal(t, "SH2", ferryTrip.ShapeID)
	assert.Equal(t, 0, ferryTrip.DurationMinutes)
}

func TestScheduleDefaultShape(t *testing.T) {
	feed := map[string]string{}
	for name, content := range testFeed {
		feed[name] = content
	}
	feed["stops.txt"] = "stop_id,stop_name,stop_lat,stop_lon\n"

	schedule := &Schedule{}
	require.NoError(t, schedule.ParseDirectory(writeFeed(t, feed)))

	dataset := schedule.Convert(ConvertOptions{IncludeRouteTypes: DefaultRouteTypes})

	assert.Equal(t, ctdf.DefaultShapeID, dataset.Trip("T2").ShapeID)
	assert.Empty(t, dataset.Stops)
}

func TestParseDirectoryMissingFiles(t *testing.T) {
	directory := writeFeed(t, map[string]string{"routes.txt": testFeed["routes.txt"]})

	assert.ElementsMatch(t, []string{"trips.txt", "stops.txt", "shapes.txt", "stop_times.txt", "calendar_dates.txt"}, MissingFiles(directory))

	schedule := &Schedule{}
	assert.Error(t, schedule.ParseDirectory(directory))
}

func TestParseFileZip(t *testing.T) {
	var archive bytes.Buffer

	writer := zip.NewWriter(&archive)
	for name, content := range testFeed {
		file, err := writer.Create("feed/" + name)
		require.NoError(t, err)
		_, err = file.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	schedule := &Schedule{}
	require.NoError(t, schedule.ParseFile(&archive))

	assert.Len(t, schedule.Routes, 3)
	assert.Len(t, schedule.StopTimes, 5)
	assert.Equal(t, "R1", schedule.Routes[0].ID)
}

func TestRouteColour(t *testing.T) {
	assert.Equal(t, "#3388ff", routeColour(""))
	assert.Equal(t, "#abcdef", routeColour("abcdef"))
	assert.Equal(t, "#abcdef", routeColour(" #abcdef "))
}
