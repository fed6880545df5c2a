package timetable

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/ctdf"
)

const versionDigestLength = 12

// BuildVersion identifies a build by its generation time and a digest of its records.
// Builds with different records never share a version, even when generated in the same instant.
func BuildVersion(generatedAt time.Time, routes map[string]*ctdf.Route, stops map[string]*ctdf.Stop, trips map[string]*ctdf.Trip, shapes map[string]ctdf.Shape, calendar ctdf.ServiceCalendar) string {
	timestamp := generatedAt.UTC().Format(time.RFC3339Nano)

	digest := sha256.New()
	encoder := json.NewEncoder(digest)
	for _, records := range []interface{}{routes, stops, trips, shapes, calendar} {
		if err := encoder.Encode(records); err != nil {
			log.Warn().Err(err).Msg("Could not digest dataset, using the generation time as version")
			return timestamp
		}
	}

	return timestamp + "-" + hex.EncodeToString(digest.Sum(nil))[:versionDigestLength]
}
