package planner

import (
	"sync"

	"github.com/travigo/planner/pkg/timetable"
	"golang.org/x/sync/singleflight"
)

// StreamCache keeps built connection streams per dataset version and service date. Cached
// streams are shared between requests and must be treated as read only.
type StreamCache struct {
	size int

	lock    sync.Mutex
	entries map[string]ConnectionStream
	order   []string

	group singleflight.Group
}

func NewStreamCache(size int) *StreamCache {
	return &StreamCache{
		size:    size,
		entries: map[string]ConnectionStream{},
	}
}

func (c *StreamCache) Get(dataset *timetable.Dataset, date string) ConnectionStream {
	if c.size <= 0 {
		return BuildConnections(dataset, date)
	}

	key := dataset.Version + "/" + date

	if stream, exists := c.lookup(key); exists {
		return stream
	}

	stream, _, _ := c.group.Do(key, func() (interface{}, error) {
		if stream, exists := c.lookup(key); exists {
			return stream, nil
		}

		stream := BuildConnections(dataset, date)
		c.store(key, stream)

		return stream, nil
	})

	return stream.(ConnectionStream)
}

func (c *StreamCache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return len(c.entries)
}

func (c *StreamCache) lookup(key string) (ConnectionStream, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	stream, exists := c.entries[key]
	return stream, exists
}

// store evicts the oldest entry once the cache is full
func (c *StreamCache) store(key string, stream ConnectionStream) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if _, exists := c.entries[key]; exists {
		return
	}

	for len(c.order) >= c.size {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}

	c.entries[key] = stream
	c.order = append(c.order, key)
}
