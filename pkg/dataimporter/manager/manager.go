package manager

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/dataimporter/datasets"
	"github.com/travigo/planner/pkg/timetable"
)

// ImportDataset fetches a registered feed and preprocesses it, options.Input is replaced by the feed location
func ImportDataset(ctx context.Context, dataset *datasets.DataSet, options PreprocessOptions) (*timetable.Dataset, error) {
	log.Info().Str("id", dataset.Identifier).Str("source", dataset.Source).Msg("Importing dataset")

	if dataset.Format != datasets.DataSetFormatGTFSSchedule {
		return nil, fmt.Errorf("unrecognised format %s", dataset.Format)
	}

	source := dataset.Source
	if isValidUrl(dataset.Source) {
		tempFile, _, err := tempDownloadFile(ctx, dataset)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tempFile.Name())

		source = tempFile.Name()
	}

	if dataset.UnpackBundle == datasets.BundleFormatNone {
		if info, err := os.Stat(source); err == nil && !info.IsDir() {
			return nil, fmt.Errorf("dataset %s is not bundled but %s is a file", dataset.Identifier, source)
		}
	}

	if len(options.IncludeRouteTypes) == 0 {
		options.IncludeRouteTypes = dataset.IncludeRouteTypes
	}
	options.Input = source

	return Preprocess(ctx, options)
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

func tempDownloadFile(ctx context.Context, dataset *datasets.DataSet) (*os.File, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", dataset.Source, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("user-agent", "curl/7.54.1")

	for key, value := range dataset.SourceAuthentication.Header {
		req.Header.Set(key, value)
	}

	if len(dataset.SourceAuthentication.Query) > 0 {
		query := req.URL.Query()
		for key, value := range dataset.SourceAuthentication.Query {
			query.Set(key, value)
		}
		req.URL.RawQuery = query.Encode()
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("downloading %s: %s", dataset.Source, resp.Status)
	}

	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	fileExtension := filepath.Ext(dataset.Source)
	if err == nil {
		fileExtension = filepath.Ext(params["filename"])
	}

	tmpFile, err := os.CreateTemp(os.TempDir(), "travigo-planner-importer-")
	if err != nil {
		return nil, "", err
	}
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		os.Remove(tmpFile.Name())
		return nil, "", err
	}

	return tmpFile, fileExtension, nil
}
