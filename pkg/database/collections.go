package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	RoutesCollection   = "routes"
	StopsCollection    = "stops"
	TripsCollection    = "trips"
	ShapesCollection   = "shapes"
	CalendarCollection = "calendar"
	DatasetsCollection = "datasets"
)

func createIndexes() {
	for _, collection := range []string{RoutesCollection, StopsCollection, TripsCollection, ShapesCollection, CalendarCollection} {
		createIdentifierIndex(collection)
	}

	tripsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "serviceid", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "routeid", Value: 1}},
		},
	}

	_, err := GetCollection(TripsCollection).Indexes().CreateMany(context.Background(), tripsIndex, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Str("collection", TripsCollection).Msg("Creating Index")
	}
}

func createIdentifierIndex(collection string) {
	index := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
	}

	_, err := GetCollection(collection).Indexes().CreateMany(context.Background(), index, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Str("collection", collection).Msg("Creating Index")
	}
}
