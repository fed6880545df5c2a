package dataimporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRouteTypes(t *testing.T) {
	routeTypes, err := ParseRouteTypes("2, 3,,109")
	assert.NoError(t, err)
	assert.Equal(t, []int{2, 3, 109}, routeTypes)

	routeTypes, err = ParseRouteTypes("")
	assert.NoError(t, err)
	assert.Empty(t, routeTypes)

	_, err = ParseRouteTypes("2,rail")
	assert.Error(t, err)
}
