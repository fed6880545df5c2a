package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/timetable"
)

type countingSource struct {
	loads    int
	versions []string
}

func (s *countingSource) Load(ctx context.Context) (*timetable.Dataset, error) {
	s.loads++
	version := s.versions[len(s.versions)-1]
	return timetable.NewDataset(version, nil, nil, nil, nil, nil, ctdf.DatasetStats{}), nil
}

func eventPayload(t *testing.T, eventType ctdf.EventType, version string) string {
	payload, err := json.Marshal(ctdf.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Body:      ctdf.DatasetImportedEvent{Version: version, Directory: "gtfs-out"},
	})
	require.NoError(t, err)

	return string(payload)
}

func TestDatasetConsumerReloadsLatest(t *testing.T) {
	assert := assert.New(t)

	repository := timetable.NewRepository()
	source := &countingSource{}

	consumer := &DatasetConsumer{
		Repository: repository,
		SourceFor: func(event ctdf.DatasetImportedEvent) timetable.Source {
			source.versions = append(source.versions, event.Version)
			return source
		},
	}

	first := rmq.NewTestDeliveryString(eventPayload(t, ctdf.EventTypeDatasetImported, "v1"))
	second := rmq.NewTestDeliveryString(eventPayload(t, ctdf.EventTypeDatasetImported, "v2"))
	garbage := rmq.NewTestDeliveryString("not json")

	consumer.Consume(rmq.Deliveries{first, garbage, second})

	assert.Equal(1, source.loads)
	current, err := repository.Current()
	require.NoError(t, err)
	assert.Equal("v2", current.Version)

	assert.Equal(rmq.Acked, first.State)
	assert.Equal(rmq.Acked, second.State)
	assert.Equal(rmq.Acked, garbage.State)

	// Same version again doesn't trigger another load
	consumer.Consume(rmq.Deliveries{rmq.NewTestDeliveryString(eventPayload(t, ctdf.EventTypeDatasetImported, "v2"))})
	assert.Equal(1, source.loads)
}

func TestDatasetConsumerIgnoresOtherEvents(t *testing.T) {
	repository := timetable.NewRepository()

	consumer := &DatasetConsumer{
		Repository: repository,
		SourceFor: func(event ctdf.DatasetImportedEvent) timetable.Source {
			t.Fatal("no source should be needed")
			return nil
		},
	}

	consumer.Consume(rmq.Deliveries{rmq.NewTestDeliveryString(eventPayload(t, "SomethingElse", "v1"))})

	assert.False(t, repository.Loaded())
}
