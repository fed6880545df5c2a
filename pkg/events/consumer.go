package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/timetable"
)

// DatasetConsumer reloads the repository whenever a new dataset has been imported
type DatasetConsumer struct {
	Repository *timetable.Repository

	// SourceFor picks where the announced dataset should be loaded from
	SourceFor func(ctdf.DatasetImportedEvent) timetable.Source
}

func (c *DatasetConsumer) Consume(batch rmq.Deliveries) {
	var latest *ctdf.DatasetImportedEvent

	for _, payload := range batch.Payloads() {
		var message datasetEventMessage
		if err := json.Unmarshal([]byte(payload), &message); err != nil {
			log.Error().Err(err).Msg("Failed to decode dataset event")
			continue
		}

		if message.Type != ctdf.EventTypeDatasetImported {
			continue
		}

		event := message.Body
		latest = &event
	}

	// Only the newest dataset in a batch is worth loading
	if latest != nil {
		c.reload(*latest)
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack dataset event")
		}
	}
}

func (c *DatasetConsumer) reload(event ctdf.DatasetImportedEvent) {
	if current, err := c.Repository.Current(); err == nil && current.Version == event.Version {
		log.Debug().Str("version", event.Version).Msg("Dataset already loaded")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := c.Repository.Load(ctx, c.SourceFor(event)); err != nil {
		log.Error().Err(err).Str("version", event.Version).Msg("Failed to reload dataset")
	}
}

// StartDatasetConsumer opens this instance's queue and starts consuming from it
func StartDatasetConsumer(connection rmq.Connection, consumer *DatasetConsumer) (rmq.Queue, error) {
	hostname, _ := os.Hostname()
	queueName := fmt.Sprintf("%s-%s-%d", DatasetQueuePrefix, hostname, os.Getpid())

	queue, err := connection.OpenQueue(queueName)
	if err != nil {
		return nil, err
	}

	if err := queue.StartConsuming(10, 1*time.Second); err != nil {
		return nil, err
	}

	if _, err := queue.AddBatchConsumer("dataset-reload", 10, 2*time.Second, consumer); err != nil {
		return nil, err
	}

	log.Info().Str("queue", queueName).Msg("Listening for dataset events")

	return queue, nil
}
