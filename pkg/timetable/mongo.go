package timetable

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoBatchSize = 1000

type shapeRecord struct {
	PrimaryIdentifier string `bson:"primaryidentifier"`
	Points            ctdf.Shape
}

type calendarRecord struct {
	PrimaryIdentifier string `bson:"primaryidentifier"`
	Dates             map[string]int
}

type datasetRecord struct {
	Version    string
	Stats      ctdf.DatasetStats
	ImportedAt time.Time
}

// MongoSource loads and stores datasets in the collections set up by the database package
type MongoSource struct{}

func (s *MongoSource) Load(ctx context.Context) (*Dataset, error) {
	var latest datasetRecord
	err := database.GetCollection(database.DatasetsCollection).FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "importedat", Value: -1}})).Decode(&latest)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("no dataset recorded in mongo: %w", ErrDatasetNotFound)
	} else if err != nil {
		return nil, err
	}

	routes := map[string]*ctdf.Route{}
	if err := loadCollection(ctx, database.RoutesCollection, func(cursor *mongo.Cursor) error {
		var route ctdf.Route
		if err := cursor.Decode(&route); err != nil {
			return err
		}
		routes[route.ID] = &route
		return nil
	}); err != nil {
		return nil, err
	}

	stops := map[string]*ctdf.Stop{}
	if err := loadCollection(ctx, database.StopsCollection, func(cursor *mongo.Cursor) error {
		var stop ctdf.Stop
		if err := cursor.Decode(&stop); err != nil {
			return err
		}
		stops[stop.ID] = &stop
		return nil
	}); err != nil {
		return nil, err
	}

	trips := map[string]*ctdf.Trip{}
	if err := loadCollection(ctx, database.TripsCollection, func(cursor *mongo.Cursor) error {
		var trip ctdf.Trip
		if err := cursor.Decode(&trip); err != nil {
			return err
		}
		trips[trip.ID] = &trip
		return nil
	}); err != nil {
		return nil, err
	}

	shapes := map[string]ctdf.Shape{}
	if err := loadCollection(ctx, database.ShapesCollection, func(cursor *mongo.Cursor) error {
		var shape shapeRecord
		if err := cursor.Decode(&shape); err != nil {
			return err
		}
		shapes[shape.PrimaryIdentifier] = shape.Points
		return nil
	}); err != nil {
		return nil, err
	}

	calendar := ctdf.ServiceCalendar{}
	if err := loadCollection(ctx, database.CalendarCollection, func(cursor *mongo.Cursor) error {
		var service calendarRecord
		if err := cursor.Decode(&service); err != nil {
			return err
		}
		calendar[service.PrimaryIdentifier] = service.Dates
		return nil
	}); err != nil {
		return nil, err
	}

	return NewDataset(latest.Version, routes, stops, trips, shapes, calendar, latest.Stats), nil
}

func loadCollection(ctx context.Context, collection string, decode func(*mongo.Cursor) error) error {
	cursor, err := database.GetCollection(collection).Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("reading %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		if err := decode(cursor); err != nil {
			return fmt.Errorf("decoding %s: %w", collection, err)
		}
	}

	return cursor.Err()
}

// Store upserts every record of the dataset and then records the dataset version
func (s *MongoSource) Store(ctx context.Context, dataset *Dataset) error {
	writes := map[string][]mongo.WriteModel{}

	for id, route := range dataset.Routes {
		writes[database.RoutesCollection] = append(writes[database.RoutesCollection], upsertModel(id, route))
	}
	for id, stop := range dataset.Stops {
		writes[database.StopsCollection] = append(writes[database.StopsCollection], upsertModel(id, stop))
	}
	for id, trip := range dataset.Timetable {
		writes[database.TripsCollection] = append(writes[database.TripsCollection], upsertModel(id, trip))
	}
	for id, shape := range dataset.Shapes {
		writes[database.ShapesCollection] = append(writes[database.ShapesCollection], upsertModel(id, shapeRecord{PrimaryIdentifier: id, Points: shape}))
	}
	for id, dates := range dataset.Calendar {
		writes[database.CalendarCollection] = append(writes[database.CalendarCollection], upsertModel(id, calendarRecord{PrimaryIdentifier: id, Dates: dates}))
	}

	for collectionName, models := range writes {
		collection := database.GetCollection(collectionName)

		for start := 0; start < len(models); start += mongoBatchSize {
			end := min(start+mongoBatchSize, len(models))

			log.Info().Str("collection", collectionName).Int("length", end-start).Msg("Bulk write")
			if _, err := collection.BulkWrite(ctx, models[start:end], options.BulkWrite().SetOrdered(false)); err != nil {
				return fmt.Errorf("bulk write %s: %w", collectionName, err)
			}
		}
	}

	_, err := database.GetCollection(database.DatasetsCollection).InsertOne(ctx, datasetRecord{
		Version:    dataset.Version,
		Stats:      dataset.Stats,
		ImportedAt: time.Now(),
	})

	return err
}

func upsertModel(id string, record interface{}) mongo.WriteModel {
	bsonRep, _ := bson.Marshal(bson.M{"$set": record})

	updateModel := mongo.NewUpdateOneModel()
	updateModel.SetFilter(bson.M{"primaryidentifier": id})
	updateModel.SetUpdate(bsonRep)
	updateModel.SetUpsert(true)

	return updateModel
}
