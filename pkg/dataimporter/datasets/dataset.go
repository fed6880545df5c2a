package datasets

import (
	"time"

	iso8601 "github.com/senseyeio/duration"
)

type DataSet struct {
	Identifier    string
	DataSourceRef string `json:"-"`
	Format        DataSetFormat

	Provider Provider

	Source               string
	SourceAuthentication SourceAuthentication `json:"-"`

	UnpackBundle BundleFormat

	// GTFS route types to keep, the importer defaults are used when empty
	IncludeRouteTypes []int

	// ISO 8601 duration, eg PT6H
	RefreshInterval string
}

type SourceAuthentication struct {
	Query  map[string]string
	Header map[string]string
}

type DataSetFormat string

const (
	DataSetFormatGTFSSchedule DataSetFormat = "gtfs-schedule"
)

type Provider struct {
	Name    string
	Website string
}

type BundleFormat string

const (
	BundleFormatNone BundleFormat = "none"
	BundleFormatZIP  BundleFormat = "zip"
)

// RefreshDuration resolves the refresh interval relative to from, zero when unset
func (d *DataSet) RefreshDuration(from time.Time) (time.Duration, error) {
	if d.RefreshInterval == "" {
		return 0, nil
	}

	interval, err := iso8601.ParseISO8601(d.RefreshInterval)
	if err != nil {
		return 0, err
	}

	return interval.Shift(from).Sub(from), nil
}
