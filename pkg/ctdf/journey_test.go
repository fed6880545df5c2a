package ctdf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopVisitUnmarshalNullTimes(t *testing.T) {
	var visit StopVisit
	require.NoError(t, json.Unmarshal([]byte(`["B", null, "08:30:00", 2]`), &visit))

	assert.Equal(t, StopVisit{StopID: "B", ArrivalTime: "08:30:00", Sequence: 2}, visit)
}

func TestStopVisitUnmarshalWithoutSequence(t *testing.T) {
	var visit StopVisit
	require.NoError(t, json.Unmarshal([]byte(`["A", "08:00:00", "07:59:00"]`), &visit))

	assert.Equal(t, StopVisit{StopID: "A", DepartureTime: "08:00:00", ArrivalTime: "07:59:00"}, visit)
}

func TestStopVisitUnmarshalWrongTypes(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "numeric departure", data: `["A", 800, "08:00:00", 1]`},
		{name: "numeric arrival", data: `["A", "08:00:00", 800, 1]`},
		{name: "string sequence", data: `["A", "08:00:00", "08:00:00", "first"]`},
		{name: "too short", data: `["A", "08:00:00"]`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var visit StopVisit
			assert.Error(t, json.Unmarshal([]byte(test.data), &visit))
		})
	}
}
