package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/elastic_client"
	"github.com/travigo/planner/pkg/timetable"
	"golang.org/x/exp/slices"
)

const StopsIndexPrefix = "travigo-planner-stops-"

type stopDocument struct {
	PrimaryIdentifier string
	Name              string
	FullName          string
	Location          [2]float64
	TransportModes    []ctdf.TransportMode
	DatasetVersion    string
}

func IndexStops(ctx context.Context, dataset *timetable.Dataset) error {
	indexName := fmt.Sprintf("%s%d", StopsIndexPrefix, time.Now().Unix())

	if err := createStopIndex(ctx, indexName); err != nil {
		return err
	}

	modes := stopModes(dataset)

	for _, stop := range dataset.AllStops() {
		jsonStop, _ := json.Marshal(stopDocument{
			PrimaryIdentifier: stop.ID,
			Name:              stop.Name,
			FullName:          stop.FullName,
			Location:          [2]float64{stop.Longitude, stop.Latitude},
			TransportModes:    modes[stop.ID],
			DatasetVersion:    dataset.Version,
		})

		elastic_client.IndexRequest(indexName, stop.ID, bytes.NewReader(jsonStop))
	}

	log.Info().Int("stops", len(dataset.Stops)).Str("index", indexName).Msg("Sent all index requests to queue")

	elastic_client.WaitUntilQueueEmpty()

	return deleteOldIndexes(ctx, StopsIndexPrefix+"*", indexName)
}

// stopModes lists the modes of every route calling at each stop
func stopModes(dataset *timetable.Dataset) map[string][]ctdf.TransportMode {
	seen := map[string]map[ctdf.TransportMode]bool{}

	for _, trip := range dataset.Trips() {
		mode := ctdf.TransportModeUnknown
		if route := dataset.Route(trip.RouteID); route != nil {
			mode = route.Mode
		}

		for _, visit := range trip.Stops {
			if seen[visit.StopID] == nil {
				seen[visit.StopID] = map[ctdf.TransportMode]bool{}
			}
			seen[visit.StopID][mode] = true
		}
	}

	modes := map[string][]ctdf.TransportMode{}
	for stopID, stopModes := range seen {
		list := make([]ctdf.TransportMode, 0, len(stopModes))
		for mode := range stopModes {
			list = append(list, mode)
		}
		slices.Sort(list)
		modes[stopID] = list
	}

	return modes
}

func createStopIndex(ctx context.Context, indexName string) error {
	mapping := `{
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 1
		},
		"mappings": {
			"properties": {
				"PrimaryIdentifier": {
					"type": "keyword"
				},
				"Name": {
					"type": "text",
					"fields": {
						"keyword": {
							"type": "keyword",
							"ignore_above": 256
						},
						"search_as_you_type": {
							"type": "search_as_you_type"
						}
					}
				},
				"FullName": {
					"type": "text"
				},
				"Location": {
					"type": "geo_point"
				},
				"TransportModes": {
					"type": "keyword"
				},
				"DatasetVersion": {
					"type": "keyword"
				}
			}
		}
	}`

	indexReq := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(mapping),
	}

	resp, err := indexReq.Do(ctx, elastic_client.Client)
	if err != nil {
		return fmt.Errorf("creating index %s: %w", indexName, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		responseBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("creating index %s: %s %s", indexName, resp.Status(), string(responseBytes))
	}

	return nil
}
