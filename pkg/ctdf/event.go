package ctdf

import (
	"time"
)

type Event struct {
	Type      EventType
	Timestamp time.Time
	Body      interface{}
}

type EventType string

const (
	EventTypeDatasetImported EventType = "DatasetImported"
)

type DatasetImportedEvent struct {
	Version   string
	Directory string
	Source    string
	Stats     DatasetStats
}
