package events

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/ctdf"
)

// Every api instance opens its own queue with this prefix so each of them sees every event
const DatasetQueuePrefix = "planner-dataset-events"

type datasetEventMessage struct {
	Type      ctdf.EventType
	Timestamp time.Time
	Body      ctdf.DatasetImportedEvent
}

// PublishDatasetImported pushes the event onto every open dataset events queue
func PublishDatasetImported(connection rmq.Connection, event ctdf.DatasetImportedEvent) error {
	eventBytes, err := json.Marshal(ctdf.Event{
		Type:      ctdf.EventTypeDatasetImported,
		Timestamp: time.Now(),
		Body:      event,
	})
	if err != nil {
		return err
	}

	queueNames, err := connection.GetOpenQueues()
	if err != nil {
		return err
	}

	published := 0
	for _, queueName := range queueNames {
		if !strings.HasPrefix(queueName, DatasetQueuePrefix) {
			continue
		}

		queue, err := connection.OpenQueue(queueName)
		if err != nil {
			return err
		}

		if err := queue.PublishBytes(eventBytes); err != nil {
			return err
		}
		published++
	}

	log.Info().Str("version", event.Version).Int("queues", published).Msg("Published dataset imported event")

	return nil
}
