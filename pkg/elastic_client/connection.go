package elastic_client

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/util"
)

var Client *elasticsearch.Client
var bulkIndexer esutil.BulkIndexer

func Connect(required bool) error {
	env := util.GetEnvironmentVariables()

	if env["TRAVIGO_ELASTICSEARCH_ADDRESS"] == "" && !required {
		log.Info().Msg("Skipping Elasticsearch setup")
		return nil
	} else if env["TRAVIGO_ELASTICSEARCH_ADDRESS"] == "" && required {
		log.Fatal().Msg("Elasticsearch configuration not set")
	}

	// Naughty disable TLS verify on ES endpoint
	tp := http.DefaultTransport.(*http.Transport).Clone()
	tp.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	retryBackoff := backoff.NewExponentialBackOff()

	return ConnectWithConfig(elasticsearch.Config{
		Addresses: []string{env["TRAVIGO_ELASTICSEARCH_ADDRESS"]},
		Username:  env["TRAVIGO_ELASTICSEARCH_USERNAME"],
		Password:  env["TRAVIGO_ELASTICSEARCH_PASSWORD"],
		Transport: tp,

		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},
		MaxRetries: 5,
	})
}

func ConnectWithConfig(config elasticsearch.Config) error {
	es, err := elasticsearch.NewClient(config)
	if err != nil {
		return err
	}

	_, err = es.Info()
	if err != nil {
		return err
	}

	Client = es

	bulkIndexer, err = esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        es,               // The Elasticsearch client
		FlushInterval: 15 * time.Second, // The periodic flush interval
	})
	if err != nil {
		return err
	}

	log.Info().Strs("addresses", config.Addresses).Msg("Elasticsearch client setup")

	return nil
}

func IndexRequest(indexName string, documentID string, document io.ReadSeeker) {
	if Client == nil {
		return
	}

	bulkIndexer.Add(
		context.Background(),
		esutil.BulkIndexerItem{
			Index:      indexName,
			Action:     "index",
			DocumentID: documentID,
			Body:       document,
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					log.Error().Err(err).Str("indexName", indexName).Msg("Failed to index document")
				} else {
					log.Error().Str("type", res.Error.Type).Str("reason", res.Error.Reason).Msg("Failed to index document")
				}
			},
		},
	)
}

func WaitUntilQueueEmpty() {
	if bulkIndexer == nil {
		return
	}

	bulkIndexer.Close(context.Background())

	stats := bulkIndexer.Stats()
	log.Info().Uint64("indexed", stats.NumIndexed).Uint64("failed", stats.NumFailed).Msg("Bulk indexer closed")
}
