package manager

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/dataimporter/datasets"
	"gopkg.in/yaml.v3"
)

var RegistryDirectory = "data/datasets/"

var ErrDatasetNotRegistered = errors.New("dataset could not be found")

// ParseRegistry reads every datasource document in a yaml stream
func ParseRegistry(reader io.Reader) ([]datasets.DataSet, error) {
	var registeredDatasets []datasets.DataSet

	decoder := yaml.NewDecoder(reader)

	for {
		var datasource datasets.DataSource
		err := decoder.Decode(&datasource)
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		for _, dataset := range datasource.Datasets {
			dataset.Identifier = fmt.Sprintf("%s-%s", datasource.Identifier, dataset.Identifier)
			dataset.DataSourceRef = datasource.Identifier
			dataset.Provider = datasource.Provider

			if datasource.SourceAuthentication != nil && dataset.SourceAuthentication.Header == nil && dataset.SourceAuthentication.Query == nil {
				dataset.SourceAuthentication = *datasource.SourceAuthentication
			}

			if dataset.Format == "" {
				dataset.Format = datasets.DataSetFormatGTFSSchedule
			}
			if dataset.UnpackBundle == "" {
				dataset.UnpackBundle = datasets.BundleFormatZIP
			}

			registeredDatasets = append(registeredDatasets, dataset)
		}
	}

	return registeredDatasets, nil
}

func GetRegisteredDataSets() ([]datasets.DataSet, error) {
	var registeredDatasets []datasets.DataSet

	err := filepath.Walk(RegistryDirectory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading datasets file")

			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			fileDatasets, err := ParseRegistry(file)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			registeredDatasets = append(registeredDatasets, fileDatasets...)

			return nil
		})

	return registeredDatasets, err
}

func GetDataset(identifier string) (datasets.DataSet, error) {
	registered, err := GetRegisteredDataSets()
	if err != nil {
		return datasets.DataSet{}, err
	}

	for _, dataset := range registered {
		if dataset.Identifier == identifier {
			return dataset, nil
		}
	}

	return datasets.DataSet{}, fmt.Errorf("%s: %w", identifier, ErrDatasetNotRegistered)
}
