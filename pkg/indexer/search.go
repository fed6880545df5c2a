package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/elastic_client"
	"github.com/travigo/planner/pkg/timetable"
)

var ErrSearchUnavailable = errors.New("stop search index not configured")

type StopSearchResult struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	FullName       string               `json:"full_name"`
	TransportModes []ctdf.TransportMode `json:"modes,omitempty"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source stopDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchStops runs a search-as-you-type query against the stops index
func SearchStops(ctx context.Context, name string, limit int) ([]StopSearchResult, error) {
	if elastic_client.Client == nil {
		return nil, ErrSearchUnavailable
	}

	var queryBytes bytes.Buffer
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query": name,
				"type":  "bool_prefix",
				"fields": []string{
					"Name.search_as_you_type",
					"Name.search_as_you_type._2gram",
					"Name.search_as_you_type._3gram",
				},
			},
		},
	}
	json.NewEncoder(&queryBytes).Encode(query)

	res, err := elastic_client.Client.Search(
		elastic_client.Client.Search.WithContext(ctx),
		elastic_client.Client.Search.WithIndex(StopsIndexPrefix+"*"),
		elastic_client.Client.Search.WithBody(&queryBytes),
		elastic_client.Client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("stop search failed: %s", res.Status())
	}

	var response searchResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, err
	}

	results := make([]StopSearchResult, 0, len(response.Hits.Hits))
	for _, hit := range response.Hits.Hits {
		results = append(results, StopSearchResult{
			ID:             hit.Source.PrimaryIdentifier,
			Name:           hit.Source.Name,
			FullName:       hit.Source.FullName,
			TransportModes: hit.Source.TransportModes,
		})
	}

	return results, nil
}

// SearchDataset is the in memory fallback used when no search index is configured
func SearchDataset(dataset *timetable.Dataset, name string, limit int) []StopSearchResult {
	needle := strings.ToLower(strings.TrimSpace(name))
	results := []StopSearchResult{}

	if needle == "" {
		return results
	}

	for _, stop := range dataset.AllStops() {
		if !strings.Contains(strings.ToLower(stop.Name), needle) && !strings.Contains(strings.ToLower(stop.FullName), needle) {
			continue
		}

		results = append(results, StopSearchResult{
			ID:       stop.ID,
			Name:     stop.Name,
			FullName: stop.FullName,
		})

		if limit > 0 && len(results) >= limit {
			break
		}
	}

	return results
}
