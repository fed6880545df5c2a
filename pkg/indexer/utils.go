package indexer

import (
	"context"
	"encoding/json"
	"io"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/elastic_client"
)

func deleteOldIndexes(ctx context.Context, indexWildcard string, indexName string) error {
	catReq := esapi.CatIndicesRequest{
		Index:  []string{indexWildcard},
		Format: "json",
	}

	resp, err := catReq.Do(ctx, elastic_client.Client)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var indexes []struct {
		Index string `json:"index"`
	}

	responseBytes, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(responseBytes, &indexes); err != nil {
		return err
	}

	for _, index := range indexes {
		if index.Index == indexName {
			continue
		}

		deleteReq := esapi.IndicesDeleteRequest{
			Index: []string{index.Index},
		}

		deleteResp, err := deleteReq.Do(ctx, elastic_client.Client)
		if err != nil {
			return err
		}
		deleteResp.Body.Close()

		log.Info().Str("index", index.Index).Msg("Delete old index")
	}

	return nil
}
