package planner

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/timetable"
	"github.com/urfave/cli/v2"
)

func TestPlanCommand(t *testing.T) {
	directory := t.TempDir()
	require.NoError(t, timetable.WriteDirectory(directory, networkDataset()))

	var output bytes.Buffer
	app := &cli.App{
		Writer:   &output,
		Commands: []*cli.Command{RegisterCLI()},
	}

	err := app.Run([]string{"planner", "plan", "--data", directory, "--origin", "A", "--destination", "F", "--date", "20240501", "--optimize", "transfers"})
	require.NoError(t, err)

	var itinerary ctdf.Itinerary
	require.NoError(t, json.Unmarshal(output.Bytes(), &itinerary))

	assert.True(t, itinerary.Found)
	assert.Equal(t, SolverFewestTransfers, itinerary.Solver)
	assert.Equal(t, 0, itinerary.Transfers)
	assert.Equal(t, []string{"T3"}, itinerary.UniqueTrips)
}

func TestPlanCommandInvalidQuery(t *testing.T) {
	directory := t.TempDir()
	require.NoError(t, timetable.WriteDirectory(directory, networkDataset()))

	app := &cli.App{
		Writer:   &bytes.Buffer{},
		Commands: []*cli.Command{RegisterCLI()},
	}

	err := app.Run([]string{"planner", "plan", "--data", directory, "--origin", "A", "--destination", "F", "--date", "2024-05-01", "--depart-after", "25:00"})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}
