package plancache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/planner"
)

const DefaultExpiration = 90 * time.Minute

// Cache stores planned itineraries in redis keyed by dataset version and query
type Cache struct {
	Cache *cache.Cache[string]
}

func New(client *redis.Client, expiration time.Duration) *Cache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &Cache{
		Cache: cache.New[string](redisStore),
	}
}

// Key expects a query returned by planner.Query.Normalise
func Key(version string, query planner.Query) string {
	return strings.Join([]string{
		"planner",
		version,
		query.Origin,
		query.Destination,
		query.Date,
		query.DepartAfter,
		query.Optimize,
	}, ":")
}

func (c *Cache) Get(ctx context.Context, key string) (*ctdf.Itinerary, bool) {
	cached, err := c.Cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var itinerary ctdf.Itinerary
	if err := json.Unmarshal([]byte(cached), &itinerary); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to decode cached itinerary")
		return nil, false
	}

	return &itinerary, true
}

func (c *Cache) Set(ctx context.Context, key string, itinerary *ctdf.Itinerary) error {
	itineraryJSON, err := json.Marshal(itinerary)
	if err != nil {
		return err
	}

	return c.Cache.Set(ctx, key, string(itineraryJSON))
}
