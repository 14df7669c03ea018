package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/alter-ego/internal/entities"
)

func TestCollection_AppendKeepsOrder(t *testing.T) {
	c := entities.NewCollection(nil)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	c.Append(entities.CollectionEntry{ID: "a", Destination: entities.DestinationDouz, CreatedAt: base})
	c.Append(entities.CollectionEntry{ID: "b", Destination: entities.DestinationTunis, CreatedAt: base.Add(time.Hour)})

	all := c.All()
	assert.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)

	all[0].ID = "mutated"
	assert.Equal(t, "a", c.All()[0].ID)
}

func TestCollection_CitiesVisitedIgnoresCase(t *testing.T) {
	c := entities.NewCollection([]entities.CollectionEntry{
		{ID: "1", Destination: "Sousse"},
		{ID: "2", Destination: "sousse"},
		{ID: "3", Destination: "Djerba"},
	})

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.CitiesVisited())
	assert.Equal(t, 0, entities.NewCollection(nil).CitiesVisited())
}
